package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-testkit/internal/api/middleware"
	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/service"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
)

// RouterDeps are the collaborators the router mounts.
type RouterDeps struct {
	Config      *config.Config
	Logger      *slog.Logger
	JWTService  auth.JWTService
	Issuer      auth.CredentialIssuer
	Refresher   auth.CredentialRefresher
	UserService service.UserService
	NoteService service.NoteService
}

// NewRouter builds the application's HTTP handler.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewTraceMiddleware(deps.Logger))

	authHandler := NewAuthHandler(deps.Issuer, deps.Refresher, deps.Config.Auth, deps.Logger)
	visitorHandler := NewVisitorHandler(deps.Config.Testing.AnonymousCookieName)
	userHandler := NewUserHandler(deps.UserService)
	noteHandler := NewNoteHandler(deps.NoteService, deps.Logger)
	authMiddleware := middleware.NewAuthMiddleware(deps.JWTService)

	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/refresh", authHandler.RefreshToken)
	r.Get("/visitors/me", visitorHandler.Me)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/users/me", userHandler.Me)

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", noteHandler.Create)
			r.Get("/", noteHandler.List)
			r.Get("/{id}", noteHandler.Get)
			r.Patch("/{id}", noteHandler.Update)
			r.Delete("/{id}", noteHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			deps.Logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
