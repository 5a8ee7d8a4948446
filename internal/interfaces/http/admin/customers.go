package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

var customerMessages = common.Messages{NotFound: "Cliente no encontrado"}

func (h *Handler) customerListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		customers, err := h.customers.List(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err, common.Messages{Failure: "Error al obtener clientes"})
			return
		}
		views := make([]customerView, 0, len(customers))
		for _, c := range customers {
			views = append(views, newCustomerView(c))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, views)
	}
}

func (h *Handler) customerDetailHandler() http.HandlerFunc {
	msgs := customerMessages
	msgs.Failure = "Error al obtener cliente"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de cliente")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		customer, err := h.customers.Detail(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, newCustomerView(*customer))
	}
}

func (h *Handler) customerCreateHandler() http.HandlerFunc {
	msgs := customerMessages
	msgs.Failure = "Error al crear cliente"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req customerCreateRequest
		if err := common.DecodeJSON(r, &req, "El nombre del cliente es requerido"); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		customer, err := h.customers.Create(ctx, adminapp.CustomerCommand{
			Name:     req.Name,
			Document: req.Document,
			Phone:    req.Phone,
			Email:    req.Email,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, customerResponse{
			Message:  "Cliente creado exitosamente",
			Customer: newCustomerView(*customer),
		})
	}
}

func (h *Handler) customerUpdateHandler() http.HandlerFunc {
	msgs := customerMessages
	msgs.Failure = "Error al actualizar cliente"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de cliente")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		var req customerUpdateRequest
		if err := common.DecodeJSON(r, &req, "No hay datos para actualizar"); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		customer, err := h.customers.Update(ctx, id, adminapp.UpdateCustomerCommand{
			Name:     req.Name,
			Document: req.Document,
			Phone:    req.Phone,
			Email:    req.Email,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, customerResponse{
			Message:  "Cliente actualizado",
			Customer: newCustomerView(*customer),
		})
	}
}

func (h *Handler) customerDeleteHandler() http.HandlerFunc {
	msgs := customerMessages
	msgs.Failure = "Error al eliminar cliente"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de cliente")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		if err := h.customers.Delete(ctx, id); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, messageResponse{Message: "Cliente eliminado"})
	}
}

func (h *Handler) customerWeekHandler() http.HandlerFunc {
	msgs := customerMessages
	msgs.Failure = "Error al actualizar semana"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de cliente")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		index, convErr := strconv.Atoi(chi.URLParam(r, "weekIndex"))
		if convErr != nil {
			common.WriteError(h.logger, w, domain.ValidateWeekIndex(-1), msgs)
			return
		}
		var req weekStateRequest
		if err := common.DecodeJSON(r, &req, "El estado de semana es inválido"); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		customer, err := h.customers.SetWeek(ctx, id, index, req.State)
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, customerResponse{
			Message:  "Semana actualizada",
			Customer: newCustomerView(*customer),
		})
	}
}
