package mongo

import (
	"strings"
	"time"

	"github.com/reviewly/api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffDocument is the stored shape of a staff member.
type StaffDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	Name       string             `bson:"name"`
	PhotoURL   string             `bson:"photoUrl,omitempty"`
	EmployeeID string             `bson:"employeeId"`
	Gender     string             `bson:"gender"`
	Active     bool               `bson:"active"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// RatingsDocument holds the five category scores.
type RatingsDocument struct {
	Attention     int `bson:"atencion"`
	Cleanliness   int `bson:"limpieza"`
	Speed         int `bson:"rapidez"`
	MenuKnowledge int `bson:"conocimientoMenu"`
	Presentation  int `bson:"presentacion"`
}

// CategoryCommentsDocument holds the optional per-category comments.
type CategoryCommentsDocument struct {
	Attention     string `bson:"atencion,omitempty"`
	Cleanliness   string `bson:"limpieza,omitempty"`
	Speed         string `bson:"rapidez,omitempty"`
	MenuKnowledge string `bson:"conocimientoMenu,omitempty"`
	Presentation  string `bson:"presentacion,omitempty"`
}

// ReviewDocument is a stored review. Waitress references a StaffDocument.
type ReviewDocument struct {
	ID               primitive.ObjectID       `bson:"_id"`
	Waitress         primitive.ObjectID       `bson:"waitress"`
	Ratings          RatingsDocument          `bson:"ratings"`
	Rating           float64                  `bson:"rating"`
	CategoryComments CategoryCommentsDocument `bson:"categoryComments,omitempty"`
	Comment          string                   `bson:"comment,omitempty"`
	CustomerName     string                   `bson:"customerName,omitempty"`
	IPAddress        string                   `bson:"ipAddress"`
	CreatedAt        time.Time                `bson:"createdAt"`
	UpdatedAt        time.Time                `bson:"updatedAt"`
}

// CustomerDocument is a customer with its weekly log.
type CustomerDocument struct {
	ID         primitive.ObjectID `bson:"_id"`
	Name       string             `bson:"name"`
	Document   string             `bson:"document,omitempty"`
	Phone      string             `bson:"phone,omitempty"`
	Email      string             `bson:"email,omitempty"`
	WeekStates []string           `bson:"weekStates"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// AccountDocument is a back-office account. Password always holds a bcrypt hash.
type AccountDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func mapStaffDocument(doc StaffDocument) domain.StaffMember {
	gender := domain.Gender(doc.Gender)
	if gender != domain.GenderWaiter {
		gender = domain.GenderWaitress
	}
	return domain.StaffMember{
		ID:         doc.ID.Hex(),
		Name:       doc.Name,
		PhotoURL:   doc.PhotoURL,
		EmployeeID: doc.EmployeeID,
		Gender:     gender,
		Active:     doc.Active,
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:      doc.ID.Hex(),
		StaffID: doc.Waitress.Hex(),
		Scores: domain.CategoryScores{
			Attention:     doc.Ratings.Attention,
			Cleanliness:   doc.Ratings.Cleanliness,
			Speed:         doc.Ratings.Speed,
			MenuKnowledge: doc.Ratings.MenuKnowledge,
			Presentation:  doc.Ratings.Presentation,
		},
		Rating: doc.Rating,
		Comments: domain.CategoryComments{
			Attention:     doc.CategoryComments.Attention,
			Cleanliness:   doc.CategoryComments.Cleanliness,
			Speed:         doc.CategoryComments.Speed,
			MenuKnowledge: doc.CategoryComments.MenuKnowledge,
			Presentation:  doc.CategoryComments.Presentation,
		},
		Comment:      doc.Comment,
		CustomerName: doc.CustomerName,
		IPAddress:    doc.IPAddress,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func buildReviewDocument(review *domain.Review, staffID primitive.ObjectID) ReviewDocument {
	return ReviewDocument{
		ID:       primitive.NewObjectID(),
		Waitress: staffID,
		Ratings: RatingsDocument{
			Attention:     review.Scores.Attention,
			Cleanliness:   review.Scores.Cleanliness,
			Speed:         review.Scores.Speed,
			MenuKnowledge: review.Scores.MenuKnowledge,
			Presentation:  review.Scores.Presentation,
		},
		Rating: review.Rating,
		CategoryComments: CategoryCommentsDocument{
			Attention:     review.Comments.Attention,
			Cleanliness:   review.Comments.Cleanliness,
			Speed:         review.Comments.Speed,
			MenuKnowledge: review.Comments.MenuKnowledge,
			Presentation:  review.Comments.Presentation,
		},
		Comment:      review.Comment,
		CustomerName: review.CustomerName,
		IPAddress:    review.IPAddress,
		CreatedAt:    review.CreatedAt.UTC(),
		UpdatedAt:    review.UpdatedAt.UTC(),
	}
}

func mapCustomerDocument(doc CustomerDocument) domain.Customer {
	states := make([]domain.WeekState, 0, len(doc.WeekStates))
	for _, s := range doc.WeekStates {
		states = append(states, domain.WeekState(s))
	}
	return domain.Customer{
		ID:         doc.ID.Hex(),
		Name:       doc.Name,
		Document:   doc.Document,
		Phone:      doc.Phone,
		Email:      doc.Email,
		WeekStates: domain.NormalizeWeekStates(states),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}
}

func weekStateStrings(states []domain.WeekState) []string {
	out := make([]string, 0, len(states))
	for _, s := range states {
		out = append(out, string(s))
	}
	return out
}

func mapAccountDocument(doc AccountDocument) domain.Account {
	return domain.Account{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		Role:         domain.Role(doc.Role),
		Active:       doc.Active,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

// parseObjectID converts a hex id. A malformed id never matches anything.
func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return objectID, nil
}

// parseObjectIDs drops malformed ids.
func parseObjectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id)); err == nil {
			out = append(out, objectID)
		}
	}
	return out
}
