package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lotus-studio/lotus/internal/platform/httpx"
	"github.com/lotus-studio/lotus/internal/shared"
)

// Middleware resolves the bearer token on incoming requests into a principal.
type Middleware struct {
	logger *slog.Logger
	tokens *TokenService
	repo   Repository
}

// NewMiddleware constructs the token middleware.
func NewMiddleware(logger *slog.Logger, tokens *TokenService, repo Repository) *Middleware {
	return &Middleware{logger: logger, tokens: tokens, repo: repo}
}

// Authenticate attaches a principal to the request context when a valid
// bearer token is present. Absent, malformed or expired credentials leave
// the request unauthenticated instead of failing it.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || !m.tokens.Validate(token) {
			next.ServeHTTP(w, r)
			return
		}
		email, err := m.tokens.Subject(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := m.repo.FindByEmail(r.Context(), email)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				m.logger.Warn("resolve principal", slog.Any("error", err))
			}
			next.ServeHTTP(w, r)
			return
		}
		ctx := shared.ContextWithPrincipal(r.Context(), user.Principal())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePrincipal rejects unauthenticated requests with 401.
func (m *Middleware) RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shared.PrincipalFromContext(r.Context()) == nil {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, prefix)
	return token, token != ""
}
