package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/lotus-studio/lotus/internal/auth"
	"github.com/lotus-studio/lotus/internal/observability"
	"github.com/lotus-studio/lotus/internal/sessions"
	"github.com/lotus-studio/lotus/internal/teachers"
	"github.com/lotus-studio/lotus/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	AuthMiddleware  *auth.Middleware
	AuthHandler     *auth.Handler
	SessionsHandler *sessions.Handler
	TeachersHandler *teachers.Handler
	UsersHandler    *users.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(params.AuthMiddleware.Authenticate)

		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints get a tighter rate limit than the rest.
			r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			params.AuthHandler.MountRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequirePrincipal)
			r.Route("/session", params.SessionsHandler.MountRoutes)
			r.Route("/teacher", params.TeachersHandler.MountRoutes)
			r.Route("/user", params.UsersHandler.MountRoutes)
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
