package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

var staffMessages = common.Messages{
	NotFound: "Personal no encontrado",
	Conflict: "El código de empleado ya existe",
}

func (h *Handler) staffListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		staff, err := h.staff.List(ctx)
		if err != nil {
			msgs := staffMessages
			msgs.Failure = "Error al obtener personal"
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewRatedStaffViews(staff))
	}
}

func (h *Handler) staffCreateHandler() http.HandlerFunc {
	msgs := staffMessages
	msgs.Failure = "Error al crear personal"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req staffCreateRequest
		if err := common.DecodeJSON(r, &req, "El nombre es requerido"); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		member, err := h.staff.Create(ctx, adminapp.CreateStaffCommand{
			Name:     req.Name,
			PhotoURL: req.PhotoURL,
			Gender:   req.Gender,
			Active:   req.Active,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, staffResponse{
			Message:  "Personal creado exitosamente",
			Waitress: common.NewStaffView(*member),
		})
	}
}

func (h *Handler) staffUpdateHandler() http.HandlerFunc {
	msgs := staffMessages
	msgs.Failure = "Error al actualizar personal"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de personal")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		var req staffUpdateRequest
		if err := common.DecodeJSON(r, &req, common.MsgInvalidJSON); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		member, err := h.staff.Update(ctx, id, adminapp.UpdateStaffCommand{
			Name:     req.Name,
			PhotoURL: req.PhotoURL,
			Gender:   req.Gender,
			Active:   req.Active,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, staffResponse{
			Message:  "Personal actualizado exitosamente",
			Waitress: common.NewStaffView(*member),
		})
	}
}

// staffDeleteHandler hard-deletes the member together with every review that references it.
func (h *Handler) staffDeleteHandler() http.HandlerFunc {
	msgs := staffMessages
	msgs.Failure = "Error al eliminar personal"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de personal")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		if err := h.staff.Delete(ctx, id); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		h.logger.Info().Str("staff", id).Msg("staff member deleted")
		common.WriteJSON(h.logger, w, http.StatusOK, messageResponse{Message: "Personal eliminado exitosamente"})
	}
}

func (h *Handler) staffStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		msgs := common.Messages{Failure: "Error al obtener estadísticas"}
		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de personal")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		summary, err := h.staff.Stats(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewSummaryView(summary))
	}
}
