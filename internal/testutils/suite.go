package testutils

import (
	"context"
	"fmt"

	"github.com/phrazzld/scry-testkit/internal/app"
	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/testdb"
)

// Names of the users behind the "user one" accessors.
const (
	AnonymousUserOneName  = "anonymous_user_one"
	AuthorizedUserOneName = "authorized_user_one"
)

// Suite is the state shared by the tests of one package: the session
// database, the application transport, both user factories and shared data.
type Suite struct {
	Session    *testdb.Session
	App        *app.Application
	Transport  *Transport
	Anonymous  *AnonymousUserFactory
	Authorized *AuthorizedUserFactory
	Data       *SharedData
}

// NewAppSuite opens the session database for cfg.Database and wires the
// example application on top of it. The application logs through the
// logger carried by ctx. Call it from TestMain and Close the
// suite when the tests are done.
func NewAppSuite(ctx context.Context, cfg *config.Config) (*Suite, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	session, err := testdb.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := session.DB()
	if err != nil {
		_ = session.Close(ctx)
		return nil, err
	}

	application, err := app.New(cfg, db, logger.FromContext(ctx))
	if err != nil {
		_ = session.Close(ctx)
		return nil, fmt.Errorf("failed to build application: %w", err)
	}

	transport := NewHandlerTransport(application.Router)
	return &Suite{
		Session:   session,
		App:       application,
		Transport: transport,
		Anonymous: NewAnonymousUserFactory(transport, cfg.Testing.AnonymousCookieName),
		Authorized: NewAuthorizedUserFactory(
			transport,
			application.UserService,
			application.Credentials,
			cfg.Testing,
			cfg.Auth.RefreshCookieName,
		),
		Data: NewSharedData(),
	}, nil
}

// AnonymousUserOne returns the default anonymous visitor.
func (s *Suite) AnonymousUserOne(ctx context.Context, t TestingT) *Client {
	t.Helper()
	return s.Anonymous.GetUser(ctx, t, AnonymousUserOneName)
}

// AuthorizedUserOne returns the default logged-in user.
func (s *Suite) AuthorizedUserOne(ctx context.Context, t TestingT) *Client {
	t.Helper()
	return s.Authorized.GetUser(ctx, t, AuthorizedUserOneName)
}

// NewClient returns a bare client on the suite transport.
func (s *Suite) NewClient(opts ...ClientOption) *Client {
	return NewClient(s.Transport, opts...)
}

// Close destroys the session database.
func (s *Suite) Close(ctx context.Context) error {
	return s.Session.Close(ctx)
}
