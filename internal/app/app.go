// Package app assembles the example application from configuration and an
// open database: stores, services, credential issuance and the HTTP router.
// cmd/server and the test suite build it the same way.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-testkit/internal/api"
	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/sqldb"
	"github.com/phrazzld/scry-testkit/internal/service"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
)

// Application holds the wired dependencies of the example application.
type Application struct {
	Config      *config.Config
	Logger      *slog.Logger
	DB          *sqldb.DB
	UserService *service.UserServiceImpl
	NoteService *service.NoteServiceImpl
	JWTService  auth.JWTService
	Credentials *auth.PasswordCredentialIssuer
	Router      http.Handler
}

// New wires the application on top of an already migrated database.
func New(cfg *config.Config, db *sqldb.DB, logger *slog.Logger) (*Application, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("config and database are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := sqldb.NewUserStore(db, cfg.Auth.BcryptCost)
	noteStore := sqldb.NewNoteStore(db)

	a := &Application{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		UserService: service.NewUserService(userStore, db.DB, logger),
		NoteService: service.NewNoteService(noteStore, db.DB, logger),
		JWTService:  jwtService,
		Credentials: auth.NewPasswordCredentialIssuer(userStore, auth.NewBcryptVerifier(), jwtService),
	}

	a.Router = api.NewRouter(api.RouterDeps{
		Config:      cfg,
		Logger:      logger,
		JWTService:  jwtService,
		Issuer:      a.Credentials,
		Refresher:   a.Credentials,
		UserService: a.UserService,
		NoteService: a.NoteService,
	})

	return a, nil
}
