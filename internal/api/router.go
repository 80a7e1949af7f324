package api

import (
	"blogboard/internal/api/handler"
	"blogboard/internal/api/middleware"
	"blogboard/internal/common/security"
	"blogboard/internal/domain/repository"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	userHandler *handler.UserHandler,
	sessionRepo repository.SessionRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the Authorization: Bearer token and puts claims in context.
	// Authenticator (below) then enforces them on the protected routes.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	authn := middleware.Authenticator(sessionRepo)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler.RegisterRoutes(v1, authn)

		v1.Route("/posts", func(posts chi.Router) {
			postHandler.RegisterRoutes(posts, authn)
		})

		v1.Route("/users", func(users chi.Router) {
			userHandler.RegisterRoutes(users)
		})
	})

	return r
}
