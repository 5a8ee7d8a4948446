package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
	publicapp "github.com/reviewly/api/internal/public/application"
)

const (
	reviewListDefaultLimit = 10
	msgReviewThanks        = "¡Gracias por tu reseña!"
	msgReviewRequired      = "ID de mesera y calificaciones son requeridas"
)

var submitMessages = common.Messages{
	NotFound: "Personal no encontrado",
	Failure:  "Error al enviar reseña",
}

func (h *Handler) reviewSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req submitReviewRequest
		if err := common.DecodeJSON(r, &req, msgReviewRequired); err != nil {
			common.WriteError(h.logger, w, err, submitMessages)
			return
		}
		staffID, err := common.RequireObjectID(req.WaitressID, "ID de personal")
		if err != nil {
			common.WriteError(h.logger, w, err, submitMessages)
			return
		}

		address := common.ClientAddress(r)
		review, err := h.submissions.Submit(ctx, req.toSubmission(staffID), address)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateSubmission) {
				common.WriteJSON(h.logger, w, http.StatusTooManyRequests, duplicateResponse{
					Duplicate: true,
					Message:   common.MsgDuplicateReview,
				})
				return
			}
			common.WriteError(h.logger, w, err, submitMessages)
			return
		}

		h.logger.Info().Str("review", review.ID).Str("staff", review.StaffID).Msg("review accepted")
		common.WriteJSON(h.logger, w, http.StatusCreated, submitReviewResponse{
			Message: msgReviewThanks,
			Review:  common.NewReviewView(*review),
		})
	}
}

// duplicateCheckHandler is the form preflight. The staff id in the path does not narrow the check.
func (h *Handler) duplicateCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		blocked, err := h.submissions.IsBlocked(ctx, common.ClientAddress(r))
		if err != nil {
			common.WriteError(h.logger, w, err, common.Messages{Failure: "Error al verificar reseña"})
			return
		}
		if blocked {
			common.WriteJSON(h.logger, w, http.StatusTooManyRequests, duplicateResponse{
				Duplicate: true,
				Message:   common.MsgDuplicateReview,
			})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, duplicateResponse{Duplicate: false})
	}
}

func (h *Handler) staffReviewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		failure := common.Messages{Failure: "Error al obtener reseñas"}
		staffID, err := common.RequireObjectID(chi.URLParam(r, "waitressId"), "ID de personal")
		if err != nil {
			common.WriteError(h.logger, w, err, failure)
			return
		}

		page, limit := common.PageParams(r.URL.Query(), reviewListDefaultLimit)
		reviews, total, err := h.submissions.ListByStaff(ctx, staffID, publicapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, err, failure)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, reviewListResponse{
			Reviews:    common.NewReviewViews(reviews),
			Pagination: common.NewPagination(total, page, limit),
		})
	}
}
