package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swgui "github.com/swaggest/swgui/v5cdn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	adminapp "github.com/reviewly/api/internal/admin/application"
	"github.com/reviewly/api/internal/auth"
	"github.com/reviewly/api/internal/config"
	mongodoc "github.com/reviewly/api/internal/infrastructure/mongo"
	"github.com/reviewly/api/internal/infrastructure/ratelimit"
	redisinfra "github.com/reviewly/api/internal/infrastructure/redis"
	adminhttp "github.com/reviewly/api/internal/interfaces/http/admin"
	"github.com/reviewly/api/internal/interfaces/http/common"
	publichttp "github.com/reviewly/api/internal/interfaces/http/public"
	publicapp "github.com/reviewly/api/internal/public/application"
)

const (
	serviceName = "reviewly-api"
	apiVersion  = "1.0.0"
)

//go:embed openapi.yaml
var openapi []byte

type pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Server owns the HTTP lifecycle and is the composition root for the public and admin handlers.
type Server struct {
	logger         zerolog.Logger
	client         *mongo.Client
	db             pinger
	addr           string
	allowedOrigins []string
	public         *publichttp.Handler
	admin          *adminhttp.Handler
	redis          *goredis.Client
	stopLimiter    context.CancelFunc
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM or a listener failure.
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           otelhttp.NewHandler(s.Router(), serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		errChan <- httpServer.ListenAndServe()
	}()

	err := waitForShutdown(httpServer, errChan, s.logger)
	s.shutdown(context.Background())
	return err
}

// Router builds the full route tree. Everything lives under /api.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		common.WriteMessage(s.logger, w, http.StatusNotFound, common.MsgRouteNotFound)
	}
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthHandler())
		r.Get("/docs", redirectToDocs)
		r.Get("/docs/openapi.yaml", s.openapiHandler())
		r.Handle("/docs/*", swgui.New("Reviewly API", "/api/docs/openapi.yaml", "/api/docs/"))

		s.public.Register(r)
		s.admin.Register(r)
	})
	return router
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info().
					Str("requestId", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("latency", time.Since(start)).
					Msg("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// withCORS attaches CORS headers for allowed origins and answers preflight requests.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// healthHandler reports process liveness plus MongoDB reachability.
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:    "OK",
			Message:   "Reviewly API is running",
			Version:   apiVersion,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  "connected",
		}
		status := http.StatusOK
		if err := s.db.Ping(ctx, readpref.Primary()); err != nil {
			s.logger.Warn().Err(err).Msg("health check: mongo ping failed")
			resp.Status = "ERROR"
			resp.Database = "disconnected"
			status = http.StatusServiceUnavailable
		}
		common.WriteJSON(s.logger, w, status, resp)
	}
}

func redirectToDocs(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/docs/", http.StatusFound)
}

func (s *Server) openapiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		if _, err := w.Write(openapi); err != nil {
			s.logger.Error().Err(err).Msg("write openapi document")
		}
	}
}

// shutdown releases MongoDB, Redis and the in-memory limiter janitor.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if s.stopLimiter != nil {
		s.stopLimiter()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("redis close")
		}
	}
	if s.client != nil {
		if err := s.client.Disconnect(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("mongo disconnect")
		}
	}
}

// waitForShutdown blocks on the listener result or an OS signal and drains in-flight requests.
func waitForShutdown(httpServer *http.Server, errChan <-chan error, logger zerolog.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}
	return nil
}

// New wires repositories, services and handlers around an already connected Mongo client.
func New(ctx context.Context, cfg config.Config, client *mongo.Client) (*Server, error) {
	logger := cfg.Logger
	database := client.Database(cfg.MongoDatabase)
	names := mongodoc.Collections{
		Staff:     cfg.StaffCollection,
		Reviews:   cfg.ReviewCollection,
		Customers: cfg.CustomerCollection,
		Accounts:  cfg.AccountCollection,
	}
	if err := mongodoc.EnsureIndexes(ctx, database, names); err != nil {
		logger.Warn().Err(err).Msg("ensure indexes")
	}

	staffRepo := mongodoc.NewStaffRepository(database, names.Staff)
	reviewRepo := mongodoc.NewReviewRepository(database, names.Reviews)
	customerRepo := mongodoc.NewCustomerRepository(database, names.Customers)
	accountRepo := mongodoc.NewAccountRepository(database, names.Accounts)

	tokens, err := auth.NewTokenManager(string(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTExpiration)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	submissions, err := publicapp.NewSubmissionService(reviewRepo, staffRepo, cfg.DuplicateWindow, time.Now)
	if err != nil {
		return nil, fmt.Errorf("submission service: %w", err)
	}
	authenticator := common.NewAuthenticator(logger, tokens)

	srv := &Server{
		logger:         logger,
		client:         client,
		db:             client,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}
	limiter := srv.newLoginLimiter(ctx, cfg)

	srv.public = publichttp.NewHandler(publichttp.Config{
		Logger:      logger,
		Staff:       publicapp.NewStaffQueryService(staffRepo, reviewRepo),
		Submissions: submissions,
		Auth:        authenticator,
	})
	srv.admin = adminhttp.NewHandler(adminhttp.Config{
		Logger:    logger,
		Staff:     adminapp.NewStaffService(staffRepo, reviewRepo, time.Now),
		Reviews:   adminapp.NewReviewService(reviewRepo, staffRepo),
		Customers: adminapp.NewCustomerService(customerRepo, time.Now),
		Accounts:  adminapp.NewAccountService(accountRepo, auth.NewBcryptHasher(), tokens, time.Now),
		Auth:      authenticator,
		Limiter:   limiter,
	})
	return srv, nil
}

// newLoginLimiter prefers Redis so every instance shares counters; without REDIS_URL, or when
// Redis is unreachable at startup, attempts are counted in process.
func (s *Server) newLoginLimiter(ctx context.Context, cfg config.Config) adminhttp.LoginLimiter {
	if cfg.RedisURL != "" {
		client, err := redisinfra.NewClient(ctx, cfg.RedisURL)
		if err == nil {
			s.redis = client
			s.logger.Info().Msg("login limiter backed by redis")
			return redisinfra.NewLoginLimiter(client, cfg.LoginMaxAttempts, cfg.LoginWindow)
		}
		s.logger.Warn().Err(err).Msg("redis unavailable, login limiter falls back to memory")
	}

	limiter := ratelimit.NewMemoryLimiter(cfg.LoginMaxAttempts, cfg.LoginWindow, time.Now)
	janitorCtx, cancel := context.WithCancel(context.Background())
	s.stopLimiter = cancel
	go limiter.Run(janitorCtx, cfg.LoginWindow)
	return limiter
}
