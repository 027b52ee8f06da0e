package auth_test

import (
	"context"
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
	"golang.org/x/crypto/bcrypt"

	"github.com/lotus-studio/lotus/internal/auth"
	"github.com/lotus-studio/lotus/internal/shared"
)

type stubRepo struct {
	users map[string]*auth.User
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: make(map[string]*auth.User)}
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (s *stubRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := s.users[email]
	return ok, nil
}

func (s *stubRepo) CreateUser(ctx context.Context, user *auth.User) error {
	user.ID = int64(len(s.users) + 1)
	s.users[user.Email] = user
	return nil
}

func newAuthRouter(t *testing.T, repo auth.Repository) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := auth.NewService(repo, auth.NewTokenService("test-secret", time.Hour))
	handler := auth.NewHandler(logger, service)
	r := chi.NewRouter()
	r.Route("/api/auth", handler.MountRoutes)
	return r
}

func seedUser(t *testing.T, repo *stubRepo, email, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &auth.User{
		ID:           42,
		Email:        email,
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: string(hash),
	}
	repo.users[email] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := newStubRepo()
	seedUser(t, repo, "jane@studio.test", "test!1234")
	router := newAuthRouter(t, repo)

	body := `{"email":"jane@studio.test","password":"test!1234"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Token     string `json:"token"`
		Type      string `json:"type"`
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Admin     bool   `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload.Token)
	assert.Equal(t, "Bearer", payload.Type)
	assert.Equal(t, int64(42), payload.ID)
	assert.Equal(t, "jane@studio.test", payload.Username)
	assert.Equal(t, "Jane", payload.FirstName)
	assert.Equal(t, "Doe", payload.LastName)
	assert.False(t, payload.Admin)
}

func TestLoginBadCredentials(t *testing.T) {
	repo := newStubRepo()
	seedUser(t, repo, "jane@studio.test", "test!1234")
	router := newAuthRouter(t, repo)

	for _, body := range []string{
		`{"email":"jane@studio.test","password":"wrong"}`,
		`{"email":"nobody@studio.test","password":"test!1234"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.JSONEq(t, `{"message":"Bad credentials"}`, res.Body.String())
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := newStubRepo()
	router := newAuthRouter(t, repo)

	body := `{"email":"new@studio.test","firstName":"New","lastName":"Member","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"message":"User registered successfully!"}`, res.Body.String())
	assert.Contains(t, repo.users, "new@studio.test")
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := newStubRepo()
	seedUser(t, repo, "taken@studio.test", "test!1234")
	router := newAuthRouter(t, repo)

	body := `{"email":"taken@studio.test","firstName":"New","lastName":"Member","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.JSONEq(t, `{"message":"Error: Email is already taken!"}`, res.Body.String())
	assert.Len(t, repo.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(t, newStubRepo())

	cases := map[string]string{
		"short password": `{"email":"a@b.test","firstName":"New","lastName":"Member","password":"short"}`,
		"bad email":      `{"email":"not-an-email","firstName":"New","lastName":"Member","password":"secret123"}`,
		"missing names":  `{"email":"a@b.test","password":"secret123"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
			res := httptest.NewRecorder()
			router.ServeHTTP(res, req)
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}
