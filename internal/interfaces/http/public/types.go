package public

import (
	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

type ratingsPayload struct {
	Attention     int `json:"atencion"`
	Cleanliness   int `json:"limpieza"`
	Speed         int `json:"rapidez"`
	MenuKnowledge int `json:"conocimientoMenu"`
	Presentation  int `json:"presentacion"`
}

type categoryCommentsPayload struct {
	Attention     string `json:"atencion"`
	Cleanliness   string `json:"limpieza"`
	Speed         string `json:"rapidez"`
	MenuKnowledge string `json:"conocimientoMenu"`
	Presentation  string `json:"presentacion"`
}

type submitReviewRequest struct {
	WaitressID       string                  `json:"waitressId" validate:"required"`
	Ratings          *ratingsPayload         `json:"ratings" validate:"required"`
	CategoryComments categoryCommentsPayload `json:"categoryComments"`
	Comment          string                  `json:"comment"`
	CustomerName     string                  `json:"customerName"`
}

func (req submitReviewRequest) toSubmission(staffID string) domain.Submission {
	return domain.Submission{
		StaffID: staffID,
		Scores: domain.CategoryScores{
			Attention:     req.Ratings.Attention,
			Cleanliness:   req.Ratings.Cleanliness,
			Speed:         req.Ratings.Speed,
			MenuKnowledge: req.Ratings.MenuKnowledge,
			Presentation:  req.Ratings.Presentation,
		},
		Comments: domain.CategoryComments{
			Attention:     req.CategoryComments.Attention,
			Cleanliness:   req.CategoryComments.Cleanliness,
			Speed:         req.CategoryComments.Speed,
			MenuKnowledge: req.CategoryComments.MenuKnowledge,
			Presentation:  req.CategoryComments.Presentation,
		},
		Comment:      req.Comment,
		CustomerName: req.CustomerName,
	}
}

type submitReviewResponse struct {
	Message string            `json:"message"`
	Review  common.ReviewView `json:"review"`
}

type duplicateResponse struct {
	Duplicate bool   `json:"duplicate"`
	Message   string `json:"message,omitempty"`
}

type reviewListResponse struct {
	Reviews    []common.ReviewView `json:"reviews"`
	Pagination common.Pagination   `json:"pagination"`
}
