package public

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/reviewly/api/internal/interfaces/http/common"
	publicapp "github.com/reviewly/api/internal/public/application"
)

// Handler wires the QR-code facing endpoints to application services.
type Handler struct {
	logger      zerolog.Logger
	staff       publicapp.StaffQueryService
	submissions publicapp.SubmissionService
	auth        *common.Authenticator
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger      zerolog.Logger
	Staff       publicapp.StaffQueryService
	Submissions publicapp.SubmissionService
	Auth        *common.Authenticator
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:      cfg.Logger,
		staff:       cfg.Staff,
		submissions: cfg.Submissions,
		auth:        cfg.Auth,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/waitresses", h.staffListHandler())
	r.With(h.auth.Optional).Get("/waitresses/{id}", h.staffDetailHandler())
	r.Post("/reviews", h.reviewSubmitHandler())
	r.Get("/reviews/check-duplicate/{waitressId}", h.duplicateCheckHandler())
	r.Get("/reviews/waitress/{waitressId}", h.staffReviewsHandler())
}
