package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

const reviewListDefaultLimit = 20

func (h *Handler) reviewListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		query := r.URL.Query()
		page, limit := common.PageParams(query, reviewListDefaultLimit)
		filter := adminapp.ReviewFilter{StaffID: strings.TrimSpace(query.Get("waitressId"))}
		if stars, ok := common.ParsePositiveInt(query.Get("rating"), 0); ok && stars <= domain.MaxScore {
			filter.Stars = stars
		}

		items, total, err := h.reviews.List(ctx, filter, adminapp.Paging{Page: page, Limit: limit})
		if err != nil {
			common.WriteError(h.logger, w, err, common.Messages{Failure: "Error al obtener reseñas"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminReviewListResponse{
			Reviews:    newAdminReviewViews(items),
			Pagination: common.NewPagination(total, page, limit),
		})
	}
}

func (h *Handler) reviewDeleteHandler() http.HandlerFunc {
	msgs := common.Messages{NotFound: "Reseña no encontrada", Failure: "Error al eliminar reseña"}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de reseña")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		if err := h.reviews.Delete(ctx, id); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, messageResponse{Message: "Reseña eliminada exitosamente"})
	}
}

func (h *Handler) overallStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		stats, err := h.reviews.Overall(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err, common.Messages{Failure: "Error al obtener estadísticas"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, overallStatsResponse{
			SummaryView:     common.NewSummaryView(stats.Summary),
			TotalWaitresses: stats.ActiveStaff,
			RecentReviews:   newAdminReviewViews(stats.RecentReviews),
		})
	}
}
