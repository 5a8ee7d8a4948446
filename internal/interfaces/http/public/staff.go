package public

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

var staffMessages = common.Messages{
	NotFound: "Personal no encontrado",
	Failure:  "Error al obtener personal",
}

func (h *Handler) staffListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		staff, err := h.staff.ListActive(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err, staffMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewRatedStaffViews(staff))
	}
}

// staffDetailHandler hides inactive members unless the caller is staff management.
func (h *Handler) staffDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de personal")
		if err != nil {
			common.WriteError(h.logger, w, err, staffMessages)
			return
		}

		includeInactive := false
		if identity := common.IdentityFromContext(r.Context()); identity != nil {
			includeInactive = identity.HasRole(domain.RoleAdmin, domain.RoleManager)
		}

		member, err := h.staff.Detail(ctx, id, includeInactive)
		if err != nil {
			common.WriteError(h.logger, w, err, staffMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewRatedStaffView(*member))
	}
}
