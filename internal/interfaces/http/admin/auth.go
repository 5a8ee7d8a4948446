package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

const (
	msgLoginRequired    = "Por favor ingrese usuario y contraseña"
	msgRegisterRequired = "Por favor complete todos los campos requeridos"
	msgAccountRequired  = "Todos los campos son requeridos"
)

var accountMessages = common.Messages{
	NotFound: "Usuario no encontrado",
	Conflict: "El usuario o email ya existe",
	Failure:  "Error en el servidor",
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		address := common.ClientAddress(r)
		if h.limiter != nil {
			allowed, err := h.limiter.Allow(ctx, address)
			if err != nil {
				h.logger.Warn().Err(err).Msg("login limiter unavailable")
			} else if !allowed {
				common.WriteMessage(h.logger, w, http.StatusTooManyRequests, common.MsgTooManyLogins)
				return
			}
		}

		var req loginRequest
		if err := common.DecodeJSON(r, &req, msgLoginRequired); err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}

		token, account, err := h.accounts.Login(ctx, req.Username, req.Password)
		if err != nil {
			h.logger.Info().Str("username", req.Username).Str("address", address).Err(err).Msg("login rejected")
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, loginResponse{Token: token, User: newSessionUser(*account)})
	}
}

// registerHandler is open while no account exists; afterwards only admins may use it.
func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req accountCreateRequest
		if err := common.DecodeJSON(r, &req, msgRegisterRequired); err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		account, err := h.accounts.Register(ctx, common.IdentityFromContext(r.Context()), req.command())
		if err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, accountResponse{
			Message: "Administrador creado exitosamente",
			User:    newAccountView(*account),
		})
	}
}

func (h *Handler) verifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		identity := common.IdentityFromContext(r.Context())
		account, err := h.accounts.Verify(ctx, *identity)
		if err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, verifyResponse{Status: "ok", User: newSessionUser(*account)})
	}
}

func (h *Handler) userListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		accounts, err := h.accounts.List(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err, common.Messages{Failure: "Error al obtener usuarios"})
			return
		}
		views := make([]accountView, 0, len(accounts))
		for _, a := range accounts {
			views = append(views, newAccountView(a))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, accountListResponse{Users: views, Total: len(views)})
	}
}

func (h *Handler) userDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de usuario")
		if err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		account, err := h.accounts.Detail(ctx, id)
		if err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, accountResponse{User: newAccountView(*account)})
	}
}

func (h *Handler) userCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		var req accountCreateRequest
		if err := common.DecodeJSON(r, &req, msgAccountRequired); err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		account, err := h.accounts.Create(ctx, req.command())
		if err != nil {
			common.WriteError(h.logger, w, err, accountMessages)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, accountResponse{
			Message: "Usuario creado exitosamente",
			User:    newAccountView(*account),
		})
	}
}

func (h *Handler) userUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		msgs := accountMessages
		msgs.SelfLockout = "No puedes cambiar tu propio rol ni desactivarte"

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de usuario")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		var req accountUpdateRequest
		if err := common.DecodeJSON(r, &req, msgAccountRequired); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		actor := common.IdentityFromContext(r.Context())
		account, err := h.accounts.Update(ctx, *actor, id, adminapp.UpdateAccountCommand{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			Active:   req.Active,
		})
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, accountResponse{
			Message: "Usuario actualizado exitosamente",
			User:    newAccountView(*account),
		})
	}
}

func (h *Handler) userActivationHandler(active bool) http.HandlerFunc {
	msgs := accountMessages
	msgs.SelfLockout = "No puedes desactivarte a ti mismo"
	done := "Usuario desactivado exitosamente"
	if active {
		done = "Usuario activado exitosamente"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de usuario")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		actor := common.IdentityFromContext(r.Context())
		account, err := h.accounts.SetActive(ctx, *actor, id, active)
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, accountResponse{Message: done, User: newAccountView(*account)})
	}
}

func (h *Handler) userDeleteHandler() http.HandlerFunc {
	msgs := accountMessages
	msgs.SelfLockout = "No puedes eliminarte a ti mismo"

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.RequestTimeout)
		defer cancel()

		id, err := common.RequireObjectID(chi.URLParam(r, "id"), "ID de usuario")
		if err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		actor := common.IdentityFromContext(r.Context())
		if err := h.accounts.Delete(ctx, *actor, id); err != nil {
			common.WriteError(h.logger, w, err, msgs)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, messageResponse{Message: "Usuario eliminado permanentemente"})
	}
}
