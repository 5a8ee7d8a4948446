package common

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reviewly/api/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// TokenParser verifies a bearer token and returns its identity.
type TokenParser interface {
	Parse(token string) (domain.Identity, error)
}

// ContextWithIdentity stores the authenticated identity into context.
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the authenticated identity, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	identity, ok := ctx.Value(identityContextKey).(domain.Identity)
	if !ok {
		return nil
	}
	return &identity
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// Authenticator builds the auth middlewares around a TokenParser.
type Authenticator struct {
	logger zerolog.Logger
	tokens TokenParser
}

func NewAuthenticator(logger zerolog.Logger, tokens TokenParser) *Authenticator {
	return &Authenticator{logger: logger, tokens: tokens}
}

// Require rejects requests without a valid bearer token.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			WriteMessage(a.logger, w, http.StatusUnauthorized, MsgNoToken)
			return
		}
		identity, err := a.tokens.Parse(token)
		if err != nil {
			WriteMessage(a.logger, w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// Optional attaches the identity when a valid token is present and otherwise continues anonymously.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if identity, err := a.tokens.Parse(token); err == nil {
				r = r.WithContext(ContextWithIdentity(r.Context(), identity))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRoles must run after Require. It answers 403 when the role is outside roles.
func (a *Authenticator) RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := domain.Authorize(IdentityFromContext(r.Context()), roles...); err != nil {
				WriteError(a.logger, w, err, Messages{})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
