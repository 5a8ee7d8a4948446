package domain

import (
	"fmt"
	"time"
)

const (
	MinScore              = 1
	MaxScore              = 5
	CategoryCommentMax    = 300
	ReviewCommentMax      = 500
	ReviewCustomerNameMax = 100
)

// Category names double as wire field names.
const (
	CategoryAttention     = "atencion"
	CategoryCleanliness   = "limpieza"
	CategorySpeed         = "rapidez"
	CategoryMenuKnowledge = "conocimientoMenu"
	CategoryPresentation  = "presentacion"
)

// CategoryScores holds the five integer scores of one review.
type CategoryScores struct {
	Attention     int
	Cleanliness   int
	Speed         int
	MenuKnowledge int
	Presentation  int
}

type scoreField struct {
	name  string
	value int
}

func (s CategoryScores) fields() []scoreField {
	return []scoreField{
		{CategoryAttention, s.Attention},
		{CategoryCleanliness, s.Cleanliness},
		{CategorySpeed, s.Speed},
		{CategoryMenuKnowledge, s.MenuKnowledge},
		{CategoryPresentation, s.Presentation},
	}
}

// Validate requires every score to be present and within [MinScore, MaxScore].
func (s CategoryScores) Validate() error {
	for _, f := range s.fields() {
		if f.value < MinScore || f.value > MaxScore {
			return NewValidationError("ratings."+f.name,
				fmt.Sprintf("Calificación de %s inválida (debe estar entre %d y %d)", f.name, MinScore, MaxScore))
		}
	}
	return nil
}

// CategoryComments holds the optional free text per category.
type CategoryComments struct {
	Attention     string
	Cleanliness   string
	Speed         string
	MenuKnowledge string
	Presentation  string
}

// Normalize trims every comment and checks the per-category limit.
func (c CategoryComments) Normalize() (CategoryComments, error) {
	targets := []struct {
		name  string
		value *string
	}{
		{CategoryAttention, &c.Attention},
		{CategoryCleanliness, &c.Cleanliness},
		{CategorySpeed, &c.Speed},
		{CategoryMenuKnowledge, &c.MenuKnowledge},
		{CategoryPresentation, &c.Presentation},
	}
	for _, t := range targets {
		v, err := OptionalText("categoryComments."+t.name, "El comentario de "+t.name, *t.value, CategoryCommentMax)
		if err != nil {
			return CategoryComments{}, err
		}
		*t.value = v
	}
	return c, nil
}

// Review is one anonymous rating of a staff member.
type Review struct {
	ID           string
	StaffID      string
	Scores       CategoryScores
	Rating       float64
	Comments     CategoryComments
	Comment      string
	CustomerName string
	IPAddress    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Submission is the public input for a new review.
type Submission struct {
	StaffID      string
	Scores       CategoryScores
	Comments     CategoryComments
	Comment      string
	CustomerName string
}

// NewReview validates a submission and derives the scalar rating. The address is attached verbatim.
func NewReview(sub Submission, address string, now time.Time) (Review, error) {
	if err := sub.Scores.Validate(); err != nil {
		return Review{}, err
	}
	comments, err := sub.Comments.Normalize()
	if err != nil {
		return Review{}, err
	}
	comment, err := OptionalText("comment", "El comentario", sub.Comment, ReviewCommentMax)
	if err != nil {
		return Review{}, err
	}
	customer, err := OptionalText("customerName", "El nombre del cliente", sub.CustomerName, ReviewCustomerNameMax)
	if err != nil {
		return Review{}, err
	}
	return Review{
		StaffID:      sub.StaffID,
		Scores:       sub.Scores,
		Rating:       ComputeScalar(sub.Scores),
		Comments:     comments,
		Comment:      comment,
		CustomerName: customer,
		IPAddress:    address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
