package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewly/api/internal/domain"
	"github.com/reviewly/api/internal/interfaces/http/common"
	publicapp "github.com/reviewly/api/internal/public/application"
)

const (
	activeID   = "65f000000000000000000001"
	inactiveID = "65f000000000000000000002"
)

type stubStaff struct{}

func (stubStaff) ListActive(context.Context) ([]domain.RatedStaff, error) {
	return []domain.RatedStaff{{
		StaffMember: domain.StaffMember{ID: activeID, Name: "Ana", Active: true, Gender: domain.GenderWaitress},
		Rating:      domain.StaffRating{Average: 4.5, Count: 2},
	}}, nil
}

func (stubStaff) Detail(_ context.Context, id string, includeInactive bool) (*domain.RatedStaff, error) {
	switch {
	case id == activeID:
		return &domain.RatedStaff{StaffMember: domain.StaffMember{ID: id, Name: "Ana", Active: true}}, nil
	case id == inactiveID && includeInactive:
		return &domain.RatedStaff{StaffMember: domain.StaffMember{ID: id, Name: "Luis"}}, nil
	default:
		return nil, domain.ErrNotFound
	}
}

type stubSubmissions struct {
	blocked   map[string]bool
	addresses []string
}

func (s *stubSubmissions) IsBlocked(_ context.Context, address string) (bool, error) {
	s.addresses = append(s.addresses, address)
	return s.blocked[address], nil
}

func (s *stubSubmissions) Submit(_ context.Context, sub domain.Submission, address string) (*domain.Review, error) {
	s.addresses = append(s.addresses, address)
	if s.blocked[address] {
		return nil, domain.ErrDuplicateSubmission
	}
	review, err := domain.NewReview(sub, address, time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	review.ID = "65f0000000000000000000aa"
	return &review, nil
}

func (s *stubSubmissions) ListByStaff(_ context.Context, staffID string, paging publicapp.Paging) ([]domain.Review, int64, error) {
	return []domain.Review{{ID: "r1", StaffID: staffID, Rating: 4, IPAddress: "10.0.0.1"}}, 11, nil
}

type stubTokens struct{}

func (stubTokens) Parse(token string) (domain.Identity, error) {
	if token == "manager" {
		return domain.Identity{ID: "m1", Username: "mgr", Role: domain.RoleManager}, nil
	}
	return domain.Identity{}, domain.ErrUnauthenticated
}

func newRouter(subs *stubSubmissions) http.Handler {
	h := NewHandler(Config{
		Logger:      zerolog.Nop(),
		Staff:       stubStaff{},
		Submissions: subs,
		Auth:        common.NewAuthenticator(zerolog.Nop(), stubTokens{}),
	})
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var payload map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

const validReview = `{"waitressId":"` + activeID + `","ratings":{"atencion":5,"limpieza":5,"rapidez":5,"conocimientoMenu":5,"presentacion":4},"comment":" genial "}`

func TestSubmitReview(t *testing.T) {
	subs := &stubSubmissions{blocked: map[string]bool{"7.7.7.7": true}}
	router := newRouter(subs)

	rec, body := do(t, router, http.MethodPost, "/reviews", validReview, map[string]string{"X-Forwarded-For": "8.8.8.8, 1.1.1.1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "¡Gracias por tu reseña!", body["message"])
	review := body["review"].(map[string]any)
	assert.Equal(t, 4.8, review["rating"])
	assert.Equal(t, "genial", review["comment"])
	assert.NotContains(t, review, "ipAddress")
	assert.Equal(t, []string{"8.8.8.8"}, subs.addresses)

	rec, body = do(t, router, http.MethodPost, "/reviews", validReview, map[string]string{"X-Real-IP": "7.7.7.7"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, true, body["duplicate"])
	assert.Equal(t, "Ya has calificado a nuestro personal en esta visita", body["message"])
}

func TestSubmitReviewValidation(t *testing.T) {
	router := newRouter(&stubSubmissions{})

	rec, body := do(t, router, http.MethodPost, "/reviews", `{"waitressId":"`+activeID+`"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ID de mesera y calificaciones son requeridas", body["message"])

	rec, body = do(t, router, http.MethodPost, "/reviews", `{"waitressId":"`+activeID+`","ratings":{"atencion":6,"limpieza":5,"rapidez":5,"conocimientoMenu":5,"presentacion":5}}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["message"], "atencion")

	rec, _ = do(t, router, http.MethodPost, "/reviews", `{"waitressId":"zzz","ratings":{}}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicatePreflight(t *testing.T) {
	router := newRouter(&stubSubmissions{blocked: map[string]bool{"9.9.9.9": true}})

	rec, body := do(t, router, http.MethodGet, "/reviews/check-duplicate/"+activeID, "", map[string]string{"CF-Connecting-IP": "1.2.3.4"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["duplicate"])

	rec, body = do(t, router, http.MethodGet, "/reviews/check-duplicate/"+activeID, "", map[string]string{"CF-Connecting-IP": "9.9.9.9"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, true, body["duplicate"])
}

func TestStaffEndpoints(t *testing.T) {
	router := newRouter(&stubSubmissions{})

	rec, _ := do(t, router, http.MethodGet, "/waitresses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, activeID, list[0]["_id"])
	assert.Equal(t, 4.5, list[0]["averageRating"])
	assert.EqualValues(t, 2, list[0]["reviewCount"])

	rec, body := do(t, router, http.MethodGet, "/waitresses/"+inactiveID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Personal no encontrado", body["message"])

	rec, _ = do(t, router, http.MethodGet, "/waitresses/"+inactiveID, "", map[string]string{"Authorization": "Bearer manager"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, router, http.MethodGet, "/waitresses/"+inactiveID, "", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusNotFound, rec.Code, "invalid token falls back to anonymous")
}

func TestStaffReviewsPagination(t *testing.T) {
	router := newRouter(&stubSubmissions{})

	rec, body := do(t, router, http.MethodGet, "/reviews/waitress/"+activeID+"?page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pagination := body["pagination"].(map[string]any)
	assert.EqualValues(t, 11, pagination["total"])
	assert.EqualValues(t, 2, pagination["page"])
	assert.EqualValues(t, 3, pagination["pages"])
	reviews := body["reviews"].([]any)
	assert.NotContains(t, reviews[0].(map[string]any), "ipAddress")
}
