package testutils

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/domain"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/redact"
	"github.com/phrazzld/scry-testkit/internal/service/auth"
)

// UserFactory hands out one memoized Client per name.
type UserFactory interface {
	GetUser(ctx context.Context, t TestingT, name string) *Client
}

// UserProvisioner makes sure a user with the given email exists and has the
// given password.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, email, password string) (*domain.User, error)
}

// clientCache memoizes clients by name. Entries live as long as the factory.
type clientCache struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func (c *clientCache) getOrCreate(name string, create func() *Client) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if client, ok := c.clients[name]; ok {
		return client
	}
	client := create()
	if client == nil {
		return nil
	}
	if c.clients == nil {
		c.clients = make(map[string]*Client)
	}
	c.clients[name] = client
	return client
}

// AnonymousUserFactory creates visitors identified only by a cookie whose
// value is the visitor's name.
type AnonymousUserFactory struct {
	transport  *Transport
	cookieName string
	cache      clientCache
}

// NewAnonymousUserFactory creates a factory. An empty cookieName means
// config.DefaultAnonymousCookieName.
func NewAnonymousUserFactory(transport *Transport, cookieName string) *AnonymousUserFactory {
	if cookieName == "" {
		cookieName = config.DefaultAnonymousCookieName
	}
	return &AnonymousUserFactory{transport: transport, cookieName: cookieName}
}

// GetUser returns the visitor called name.
func (f *AnonymousUserFactory) GetUser(_ context.Context, t TestingT, name string) *Client {
	t.Helper()
	return f.cache.getOrCreate(name, func() *Client {
		return NewClient(f.transport,
			WithCookies(map[string]string{f.cookieName: name}),
			WithUID(name),
		)
	})
}

// AuthorizedUserFactory creates logged-in users. The first request for a name
// provisions the account and logs it in through the credential issuer.
type AuthorizedUserFactory struct {
	transport         *Transport
	users             UserProvisioner
	issuer            auth.CredentialIssuer
	emailDomain       string
	password          string
	refreshCookieName string
	cache             clientCache
}

// NewAuthorizedUserFactory creates a factory provisioning users through users
// and logging them in through issuer.
func NewAuthorizedUserFactory(
	transport *Transport,
	users UserProvisioner,
	issuer auth.CredentialIssuer,
	testingCfg config.TestingConfig,
	refreshCookieName string,
) *AuthorizedUserFactory {
	f := &AuthorizedUserFactory{
		transport:         transport,
		users:             users,
		issuer:            issuer,
		emailDomain:       testingCfg.EmailDomain,
		password:          testingCfg.UserPassword,
		refreshCookieName: refreshCookieName,
	}
	if f.emailDomain == "" {
		f.emailDomain = config.DefaultEmailDomain
	}
	if f.password == "" {
		f.password = config.DefaultUserPassword
	}
	if f.refreshCookieName == "" {
		f.refreshCookieName = config.DefaultRefreshCookieName
	}
	return f
}

// EmailFor returns the address used for the user called name.
func (f *AuthorizedUserFactory) EmailFor(name string) string {
	return fmt.Sprintf("%s@%s", name, f.emailDomain)
}

// GetUser returns the logged-in user called name.
func (f *AuthorizedUserFactory) GetUser(ctx context.Context, t TestingT, name string) *Client {
	t.Helper()
	return f.cache.getOrCreate(name, func() *Client {
		return f.login(ctx, t, name)
	})
}

func (f *AuthorizedUserFactory) login(ctx context.Context, t TestingT, name string) *Client {
	t.Helper()
	email := f.EmailFor(name)

	user, err := f.users.EnsureUser(ctx, email, f.password)
	if err != nil {
		fail(t, "failed to provision user %q: %v", name, redact.Error(err))
		return nil
	}

	creds, err := f.issuer.Issue(ctx, email, f.password)
	if err != nil {
		fail(t, "failed to log in user %q: %v", name, redact.Error(err))
		return nil
	}

	logger.FromContext(ctx).Debug("authorized test user created",
		"name", name,
		"user_id", user.ID.String(),
		"organization_id", creds.OrganizationID.String())

	return NewClient(f.transport,
		WithHeaders(map[string]string{"Authorization": "Bearer " + creds.AccessToken}),
		WithCookies(map[string]string{f.refreshCookieName: creds.RefreshToken}),
		WithEmail(email),
		WithPassword(f.password),
		WithUID(user.ID.String()),
		WithOrganizationID(creds.OrganizationID),
		WithOrganizationName(name),
	)
}
