package config

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string
	Env                string
	MongoURI           string
	MongoDatabase      string
	StaffCollection    string
	ReviewCollection   string
	CustomerCollection string
	AccountCollection  string
	Timeout            time.Duration
	JWTSecret          []byte
	JWTIssuer          string
	JWTExpiration      time.Duration
	AllowedOrigins     []string
	RedisURL           string
	LoginMaxAttempts   int
	LoginWindow        time.Duration
	DuplicateWindow    time.Duration
	OTelEnabled        bool
	SeedAdmin          SeedAdmin
	Logger             zerolog.Logger
}

// SeedAdmin is the first account created by cmd/seed.
type SeedAdmin struct {
	Username string
	Email    string
	Password string
}

// Production reports whether APP_ENV is production.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// ErrMissingSecret is returned by Load when JWT_SECRET is empty. The returned Config is still usable
// by tools that never sign tokens.
var ErrMissingSecret = errors.New("JWT_SECRET must be configured")

// Load reads .env (when present) and the environment. JWT_SECRET is the only required key.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "reviewly")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")
	v.SetDefault("STAFF_COLLECTION", "waitresses")
	v.SetDefault("REVIEW_COLLECTION", "reviews")
	v.SetDefault("CUSTOMER_COLLECTION", "customers")
	v.SetDefault("ACCOUNT_COLLECTION", "admins")
	v.SetDefault("JWT_ISSUER", "reviewly-api")
	v.SetDefault("JWT_EXPIRATION", "168h")
	v.SetDefault("API_ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 20)
	v.SetDefault("LOGIN_WINDOW", "1m")
	v.SetDefault("REVIEW_DUPLICATE_WINDOW", "24h")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("SEED_ADMIN_USERNAME", "admin")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@reviewly.local")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")

	secret := strings.TrimSpace(v.GetString("JWT_SECRET"))
	env := strings.TrimSpace(v.GetString("APP_ENV"))
	cfg := Config{
		Addr:               v.GetString("HTTP_ADDR"),
		Env:                env,
		MongoURI:           v.GetString("MONGO_URI"),
		MongoDatabase:      v.GetString("MONGO_DB"),
		StaffCollection:    v.GetString("STAFF_COLLECTION"),
		ReviewCollection:   v.GetString("REVIEW_COLLECTION"),
		CustomerCollection: v.GetString("CUSTOMER_COLLECTION"),
		AccountCollection:  v.GetString("ACCOUNT_COLLECTION"),
		Timeout:            durationOrDefault(v, "MONGO_CONNECT_TIMEOUT", 10*time.Second),
		JWTSecret:          []byte(secret),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		JWTExpiration:      durationOrDefault(v, "JWT_EXPIRATION", 7*24*time.Hour),
		AllowedOrigins:     parseList(v.GetString("API_ALLOWED_ORIGINS"), []string{"*"}),
		RedisURL:           strings.TrimSpace(v.GetString("REDIS_URL")),
		LoginMaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginWindow:        durationOrDefault(v, "LOGIN_WINDOW", time.Minute),
		DuplicateWindow:    durationOrDefault(v, "REVIEW_DUPLICATE_WINDOW", 24*time.Hour),
		OTelEnabled:        v.GetBool("OTEL_ENABLED"),
		SeedAdmin: SeedAdmin{
			Username: v.GetString("SEED_ADMIN_USERNAME"),
			Email:    v.GetString("SEED_ADMIN_EMAIL"),
			Password: v.GetString("SEED_ADMIN_PASSWORD"),
		},
		Logger: NewLogger(env, os.Stdout),
	}
	if cfg.LoginMaxAttempts <= 0 {
		cfg.LoginMaxAttempts = 20
	}
	if secret == "" {
		return cfg, ErrMissingSecret
	}

	cfg.Logger.Info().
		Str("addr", cfg.Addr).
		Str("env", cfg.Env).
		Str("mongoDb", cfg.MongoDatabase).
		Bool("redis", cfg.RedisURL != "").
		Bool("otel", cfg.OTelEnabled).
		Msg("loaded config")
	return cfg, nil
}

// NewLogger returns a JSON logger in production and a console logger otherwise.
func NewLogger(env string, out io.Writer) zerolog.Logger {
	if strings.EqualFold(env, "production") {
		return zerolog.New(out).With().Timestamp().Str("service", "reviewly-api").Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func durationOrDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseList(raw string, fallback []string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
