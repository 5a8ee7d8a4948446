package common

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reviewly/api/internal/domain"
)

// RequireObjectID rejects path ids that cannot be a stored document id.
func RequireObjectID(id, label string) (string, error) {
	id = strings.TrimSpace(id)
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", domain.NewValidationError("id", label+" inválido")
	}
	return id, nil
}

// StaffView is the wire form of a staff member.
type StaffView struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	PhotoURL   string    `json:"photoUrl,omitempty"`
	EmployeeID string    `json:"employeeId"`
	Gender     string    `json:"gender"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RatedStaffView adds the live rating summary.
type RatedStaffView struct {
	StaffView
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

func NewStaffView(m domain.StaffMember) StaffView {
	return StaffView{
		ID:         m.ID,
		Name:       m.Name,
		PhotoURL:   m.PhotoURL,
		EmployeeID: m.EmployeeID,
		Gender:     string(m.Gender),
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func NewRatedStaffViews(staff []domain.RatedStaff) []RatedStaffView {
	out := make([]RatedStaffView, 0, len(staff))
	for _, s := range staff {
		out = append(out, NewRatedStaffView(s))
	}
	return out
}

func NewRatedStaffView(s domain.RatedStaff) RatedStaffView {
	return RatedStaffView{
		StaffView:     NewStaffView(s.StaffMember),
		AverageRating: s.Rating.Average,
		ReviewCount:   s.Rating.Count,
	}
}

// RatingsView carries the five category scores.
type RatingsView struct {
	Attention     int `json:"atencion"`
	Cleanliness   int `json:"limpieza"`
	Speed         int `json:"rapidez"`
	MenuKnowledge int `json:"conocimientoMenu"`
	Presentation  int `json:"presentacion"`
}

type CategoryCommentsView struct {
	Attention     string `json:"atencion,omitempty"`
	Cleanliness   string `json:"limpieza,omitempty"`
	Speed         string `json:"rapidez,omitempty"`
	MenuKnowledge string `json:"conocimientoMenu,omitempty"`
	Presentation  string `json:"presentacion,omitempty"`
}

// ReviewView is the public wire form of a review. It never carries the submitter address.
type ReviewView struct {
	ID               string               `json:"_id"`
	Waitress         any                  `json:"waitress"`
	Ratings          RatingsView          `json:"ratings"`
	Rating           float64              `json:"rating"`
	CategoryComments CategoryCommentsView `json:"categoryComments"`
	Comment          string               `json:"comment,omitempty"`
	CustomerName     string               `json:"customerName,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

func NewReviewView(r domain.Review) ReviewView {
	return ReviewView{
		ID:       r.ID,
		Waitress: r.StaffID,
		Ratings: RatingsView{
			Attention:     r.Scores.Attention,
			Cleanliness:   r.Scores.Cleanliness,
			Speed:         r.Scores.Speed,
			MenuKnowledge: r.Scores.MenuKnowledge,
			Presentation:  r.Scores.Presentation,
		},
		Rating: r.Rating,
		CategoryComments: CategoryCommentsView{
			Attention:     r.Comments.Attention,
			Cleanliness:   r.Comments.Cleanliness,
			Speed:         r.Comments.Speed,
			MenuKnowledge: r.Comments.MenuKnowledge,
			Presentation:  r.Comments.Presentation,
		},
		Comment:      r.Comment,
		CustomerName: r.CustomerName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func NewReviewViews(reviews []domain.Review) []ReviewView {
	out := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewView(r))
	}
	return out
}

// SummaryView is the wire form of an aggregate.
type SummaryView struct {
	TotalReviews       int           `json:"totalReviews"`
	AverageRating      float64       `json:"averageRating"`
	CategoryAverages   CategoryMeans `json:"categoryAverages"`
	RatingDistribution map[int]int   `json:"ratingDistribution"`
}

type CategoryMeans struct {
	Attention     float64 `json:"atencion"`
	Cleanliness   float64 `json:"limpieza"`
	Speed         float64 `json:"rapidez"`
	MenuKnowledge float64 `json:"conocimientoMenu"`
	Presentation  float64 `json:"presentacion"`
}

func NewSummaryView(s domain.Summary) SummaryView {
	distribution := s.Distribution
	if distribution == nil {
		distribution = domain.EmptyDistribution()
	}
	return SummaryView{
		TotalReviews:  s.Count,
		AverageRating: s.Average,
		CategoryAverages: CategoryMeans{
			Attention:     s.Categories.Attention,
			Cleanliness:   s.Categories.Cleanliness,
			Speed:         s.Categories.Speed,
			MenuKnowledge: s.Categories.MenuKnowledge,
			Presentation:  s.Categories.Presentation,
		},
		RatingDistribution: distribution,
	}
}
