package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/reviewly/api/internal/auth"
	adminhttp "github.com/reviewly/api/internal/interfaces/http/admin"
	"github.com/reviewly/api/internal/interfaces/http/common"
	publichttp "github.com/reviewly/api/internal/interfaces/http/public"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context, *readpref.ReadPref) error { return f.err }

func newTestServer(t *testing.T, db pinger) *Server {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", "reviewly-test", time.Hour)
	require.NoError(t, err)
	authn := common.NewAuthenticator(zerolog.Nop(), tokens)
	return &Server{
		logger:         zerolog.Nop(),
		db:             db,
		allowedOrigins: []string{"https://panel.example.com"},
		public:         publichttp.NewHandler(publichttp.Config{Logger: zerolog.Nop(), Auth: authn}),
		admin:          adminhttp.NewHandler(adminhttp.Config{Logger: zerolog.Nop(), Auth: authn}),
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newTestServer(t, fakePinger{}).Router(), httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "connected", body.Database)
	assert.Equal(t, apiVersion, body.Version)
	assert.NotEmpty(t, body.Timestamp)
}

func TestHealthReportsMongoOutage(t *testing.T) {
	rec := serve(newTestServer(t, fakePinger{err: errors.New("no reachable servers")}).Router(),
		httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"disconnected"`)
}

func TestUnknownRoute(t *testing.T) {
	router := newTestServer(t, fakePinger{}).Router()

	for _, path := range []string{"/nope", "/api/nope", "/api/waitresses/a/b/c"} {
		rec := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"message":"Ruta no encontrada"}`, rec.Body.String(), path)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	router := newTestServer(t, fakePinger{}).Router()

	for _, target := range []struct{ method, path string }{
		{http.MethodGet, "/api/reviews"},
		{http.MethodGet, "/api/customers"},
		{http.MethodGet, "/api/auth/users"},
		{http.MethodDelete, "/api/waitresses/65f000000000000000000001"},
	} {
		rec := serve(router, httptest.NewRequest(target.method, target.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target.path)
	}
}

func TestCORS(t *testing.T) {
	router := newTestServer(t, fakePinger{}).Router()

	req := httptest.NewRequest(http.MethodOptions, "/api/reviews", nil)
	req.Header.Set("Origin", "https://panel.example.com")
	rec := serve(router, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://panel.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(router, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestDocs(t *testing.T) {
	router := newTestServer(t, fakePinger{}).Router()

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/api/docs/openapi.yaml", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/api/docs/", rec.Header().Get("Location"))
}
