package sessions

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)
	r := chi.NewRouter()
	r.Route("/api/session", handler.MountRoutes)
	return r
}

func TestHandleGetSession(t *testing.T) {
	svc, repo := newTestService()
	session := addSession(repo, 10)
	session.Users = []int64{7}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/session/10", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "Yoga", payload["name"])
	assert.Equal(t, []any{float64(7)}, payload["users"])
}

func TestHandleGetSessionErrors(t *testing.T) {
	svc, _ := newTestService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/session/99", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/session/a", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHandleCreateSession(t *testing.T) {
	svc, repo := newTestService()
	router := newTestRouter(svc)

	body := `{"name":"Morning Flow","date":"2026-09-01T09:00:00Z","description":"sun salutations"}`
	req := httptest.NewRequest(http.MethodPost, "/api/session/", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.Equal(t, "Morning Flow", payload["name"])
	assert.Equal(t, "sun salutations", payload["description"])
	assert.Equal(t, []any{}, payload["users"])
	assert.Len(t, repo.sessions, 1)
}

func TestHandleCreateSessionValidation(t *testing.T) {
	svc, _ := newTestService()
	router := newTestRouter(svc)

	cases := map[string]string{
		"missing name": `{"date":"2026-09-01T09:00:00Z"}`,
		"missing date": `{"name":"Morning Flow"}`,
		"not json":     `nope`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/session/", strings.NewReader(body))
			res := httptest.NewRecorder()
			router.ServeHTTP(res, req)
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestHandleUpdateSession(t *testing.T) {
	svc, repo := newTestService()
	addSession(repo, 10)
	router := newTestRouter(svc)

	body := `{"name":"Renamed","date":"2026-09-01T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPut, "/api/session/10", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "Renamed", repo.sessions[10].Name)

	req = httptest.NewRequest(http.MethodPut, "/api/session/a", strings.NewReader(body))
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestHandleDeleteSession(t *testing.T) {
	svc, repo := newTestService()
	addSession(repo, 10)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/session/10", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, repo.sessions)

	req = httptest.NewRequest(http.MethodDelete, "/api/session/10", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestHandleParticipate(t *testing.T) {
	svc, repo := newTestService()
	addSession(repo, 10)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/session/10/participate/7", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []int64{7}, repo.sessions[10].Users)

	// Second enroll for the same pair is a 400, not a silent no-op.
	req = httptest.NewRequest(http.MethodPost, "/api/session/10/participate/7", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Len(t, repo.sessions[10].Users, 1)

	req = httptest.NewRequest(http.MethodDelete, "/api/session/10/participate/7", nil)
	res = httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, repo.sessions[10].Users)
}

func TestHandleParticipateErrors(t *testing.T) {
	svc, repo := newTestService()
	addSession(repo, 10)
	router := newTestRouter(svc)

	cases := map[string]struct {
		method string
		path   string
		status int
	}{
		"non numeric ids":          {http.MethodPost, "/api/session/a/participate/b", http.StatusBadRequest},
		"non numeric user id":      {http.MethodPost, "/api/session/10/participate/b", http.StatusBadRequest},
		"missing session":          {http.MethodPost, "/api/session/99/participate/7", http.StatusNotFound},
		"missing user":             {http.MethodPost, "/api/session/10/participate/99", http.StatusNotFound},
		"withdraw not enrolled":    {http.MethodDelete, "/api/session/10/participate/7", http.StatusBadRequest},
		"withdraw missing ids":     {http.MethodDelete, "/api/session/a/participate/b", http.StatusBadRequest},
		"withdraw missing session": {http.MethodDelete, "/api/session/99/participate/7", http.StatusNotFound},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			res := httptest.NewRecorder()
			router.ServeHTTP(res, req)
			assert.Equal(t, tc.status, res.Code)
		})
	}
}

func TestHandleListSessions(t *testing.T) {
	svc, repo := newTestService()
	session := addSession(repo, 10)
	session.Date = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/session/", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var payload []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, "Yoga", payload[0]["name"])
}
