package common

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/reviewly/api/internal/apierror"
	"github.com/reviewly/api/internal/domain"
)

const (
	MsgUnauthorized       = "No autorizado"
	MsgNoToken            = "No hay token, autorización denegada"
	MsgInvalidToken       = "Token inválido"
	MsgForbidden          = "No tienes permisos para realizar esta acción"
	MsgInvalidCredentials = "Credenciales inválidas"
	MsgInactiveAccount    = "Usuario inactivo"
	MsgDuplicateReview    = "Ya has calificado a nuestro personal en esta visita"
	MsgTooManyLogins      = "Demasiados intentos de inicio de sesión. Intenta de nuevo en un minuto."
	MsgRouteNotFound      = "Ruta no encontrada"
	MsgServerError        = "Error en el servidor"
)

// Messages holds the route-specific texts for the errors whose wording depends on the resource.
type Messages struct {
	NotFound    string
	Conflict    string
	SelfLockout string
	Failure     string
}

func (m Messages) withDefaults() Messages {
	if m.NotFound == "" {
		m.NotFound = "Recurso no encontrado"
	}
	if m.Conflict == "" {
		m.Conflict = "El registro ya existe"
	}
	if m.SelfLockout == "" {
		m.SelfLockout = "No puedes realizar esta acción sobre tu propia cuenta"
	}
	if m.Failure == "" {
		m.Failure = MsgServerError
	}
	return m
}

// StatusFor maps an application error onto its HTTP status.
func StatusFor(err error) int {
	var bindErr *BindError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &bindErr), domain.IsValidation(err),
		errors.Is(err, domain.ErrSelfLockout), errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInactiveAccount):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the envelope for err. Unexpected errors are logged and answered with msgs.Failure.
func WriteError(logger zerolog.Logger, w http.ResponseWriter, err error, msgs Messages) {
	msgs = msgs.withDefaults()
	status := StatusFor(err)

	var bindErr *BindError
	if errors.As(err, &bindErr) {
		WriteJSON(logger, w, status, apierror.NewValidation(bindErr.Message, bindErr.Fields))
		return
	}
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		WriteMessage(logger, w, status, validation.Message)
		return
	}

	var msg string
	switch {
	case errors.Is(err, domain.ErrSelfLockout):
		msg = msgs.SelfLockout
	case errors.Is(err, domain.ErrAlreadyExists):
		msg = msgs.Conflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		msg = MsgInvalidCredentials
	case errors.Is(err, domain.ErrInactiveAccount):
		msg = MsgInactiveAccount
	case errors.Is(err, domain.ErrUnauthenticated):
		msg = MsgUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		msg = MsgForbidden
	case errors.Is(err, domain.ErrNotFound):
		msg = msgs.NotFound
	case errors.Is(err, domain.ErrDuplicateSubmission):
		msg = MsgDuplicateReview
	default:
		logger.Error().Err(err).Msg(msgs.Failure)
		msg = msgs.Failure
	}
	WriteMessage(logger, w, status, msg)
}
