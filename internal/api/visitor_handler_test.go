package api_test

import (
	"testing"

	"github.com/phrazzld/scry-testkit/internal/api"
	"github.com/phrazzld/scry-testkit/internal/api/shared"
	"github.com/stretchr/testify/assert"
)

func TestVisitorMe(t *testing.T) {
	ctx := testContext()
	visitor := suite.AnonymousUserOne(ctx, t)

	c := visitor.Get(ctx, t, "/visitors/me").IsSuccess()

	assert.Equal(t, visitor.UID, c.KeyValue("visitor_id"))
	session := c.HasCookie(api.SessionCookieName)
	assert.Equal(t, session, visitor.Cookies()[api.SessionCookieName])

	// The session cookie is sent back on the next call and replaced.
	c = visitor.Get(ctx, t, "/visitors/me").IsSuccess()
	assert.NotEqual(t, session, c.HasCookie(api.SessionCookieName))
}

func TestVisitorMe_DistinctVisitors(t *testing.T) {
	ctx := testContext()
	two := suite.Anonymous.GetUser(ctx, t, "anonymous_user_two")

	c := two.Get(ctx, t, "/visitors/me").IsSuccess()
	assert.Equal(t, "anonymous_user_two", c.KeyValue("visitor_id"))
	assert.NotEqual(t, suite.AnonymousUserOne(ctx, t).UID, two.UID)
}

func TestVisitorMe_RequiresCookie(t *testing.T) {
	ctx := testContext()
	suite.NewClient().Get(ctx, t, "/visitors/me").
		IsClientError().
		CheckException(shared.AnonymousIDRequiredException)
}
