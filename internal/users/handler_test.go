package users

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-studio/lotus/internal/shared"
)

func newTestRouter(repo Repository) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo))
	r := chi.NewRouter()
	r.Route("/api/user", handler.MountRoutes)
	return r
}

func TestHandleGetUser(t *testing.T) {
	repo := newMockRepository()
	now := time.Now().UTC().Truncate(time.Second)
	repo.users[7] = &User{
		ID: 7, Email: "a@x.com", FirstName: "Jane", LastName: "Doe",
		CreatedAt: now, UpdatedAt: now,
	}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/user/7", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "a@x.com", payload["email"])
	assert.Equal(t, "Jane", payload["firstName"])
	assert.Equal(t, "Doe", payload["lastName"])
	assert.NotContains(t, payload, "password")
	assert.NotContains(t, payload, "passwordHash")
}

func TestHandleGetUserErrors(t *testing.T) {
	router := newTestRouter(newMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/user/99", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/user/abc", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHandleDeleteUser(t *testing.T) {
	repo := newMockRepository()
	repo.users[7] = &User{ID: 7, Email: "a@x.com"}
	router := newTestRouter(repo)

	owner := &shared.Principal{ID: 7, Email: "a@x.com"}
	stranger := &shared.Principal{ID: 1, Email: "b@x.com"}

	req := httptest.NewRequest(http.MethodDelete, "/api/user/7", nil)
	req = req.WithContext(shared.ContextWithPrincipal(req.Context(), stranger))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/user/7", nil)
	req = req.WithContext(shared.ContextWithPrincipal(req.Context(), owner))
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, repo.users)
}

func TestHandleDeleteUserUnauthenticated(t *testing.T) {
	repo := newMockRepository()
	repo.users[7] = &User{ID: 7, Email: "a@x.com"}
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/user/7", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Len(t, repo.users, 1)
}
