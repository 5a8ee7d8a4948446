package admin

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
)

// LoginLimiter throttles login attempts per client address.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Handler wires back-office HTTP endpoints to application services.
type Handler struct {
	logger    zerolog.Logger
	staff     adminapp.StaffService
	reviews   adminapp.ReviewService
	customers adminapp.CustomerService
	accounts  adminapp.AccountService
	auth      *common.Authenticator
	limiter   LoginLimiter
}

// Config provides dependencies for Handler. Limiter may be nil to disable login throttling.
type Config struct {
	Logger    zerolog.Logger
	Staff     adminapp.StaffService
	Reviews   adminapp.ReviewService
	Customers adminapp.CustomerService
	Accounts  adminapp.AccountService
	Auth      *common.Authenticator
	Limiter   LoginLimiter
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		staff:     cfg.Staff,
		reviews:   cfg.Reviews,
		customers: cfg.Customers,
		accounts:  cfg.Accounts,
		auth:      cfg.Auth,
		limiter:   cfg.Limiter,
	}
}

// Register mounts back-office routes onto router. Paths are flat under /waitresses and
// /reviews because the public handler shares those prefixes.
func (h *Handler) Register(r chi.Router) {
	adminOnly := h.auth.RequireRoles(domain.RoleAdmin)
	management := h.auth.RequireRoles(domain.RoleAdmin, domain.RoleManager)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.loginHandler())
		r.With(h.auth.Optional).Post("/register", h.registerHandler())
		r.With(h.auth.Require).Get("/verify", h.verifyHandler())

		r.Group(func(r chi.Router) {
			r.Use(h.auth.Require, adminOnly)
			r.Get("/users", h.userListHandler())
			r.Post("/users", h.userCreateHandler())
			r.Get("/users/{id}", h.userDetailHandler())
			r.Put("/users/{id}", h.userUpdateHandler())
			r.Patch("/users/{id}/activate", h.userActivationHandler(true))
			r.Patch("/users/{id}/deactivate", h.userActivationHandler(false))
			r.Delete("/users/{id}", h.userDeleteHandler())
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(h.auth.Require)

		r.Get("/waitresses/{id}/stats", h.staffStatsHandler())
		r.Get("/reviews", h.reviewListHandler())
		r.Get("/reviews/stats/overall", h.overallStatsHandler())

		r.With(management).Get("/waitresses/admin/all", h.staffListHandler())
		r.With(management).Post("/waitresses", h.staffCreateHandler())
		r.With(management).Put("/waitresses/{id}", h.staffUpdateHandler())
		r.With(adminOnly).Delete("/waitresses/{id}", h.staffDeleteHandler())
		r.With(management).Delete("/reviews/{id}", h.reviewDeleteHandler())
	})

	r.Route("/customers", func(r chi.Router) {
		r.Use(h.auth.Require, management)
		r.Get("/", h.customerListHandler())
		r.Post("/", h.customerCreateHandler())
		r.Get("/{id}", h.customerDetailHandler())
		r.Put("/{id}", h.customerUpdateHandler())
		r.Delete("/{id}", h.customerDeleteHandler())
		r.Patch("/{id}/weeks/{weekIndex}", h.customerWeekHandler())
	})
}
