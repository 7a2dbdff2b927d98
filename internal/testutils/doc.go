// Package testutils is an end-to-end test toolkit for the example
// application.
//
// A test talks to the application through a Client that carries headers,
// cookies and an identity, and inspects each reply with a ResponseChecker
// whose methods fail the test on any mismatch. Clients come from memoizing
// factories: AnonymousUserFactory for cookie-identified visitors and
// AuthorizedUserFactory for users logged in through an auth.CredentialIssuer.
// SharedData passes values between ordered tests.
//
// A Suite bundles all of the above with the session database. Build it once
// in TestMain and hand it to tests explicitly:
//
//	var suite *testutils.Suite
//
//	func TestMain(m *testing.M) {
//	    var err error
//	    suite, err = testutils.NewAppSuite(context.Background(), cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    code := m.Run()
//	    _ = suite.Close(context.Background())
//	    os.Exit(code)
//	}
//
//	func TestProfile(t *testing.T) {
//	    user := suite.AuthorizedUserOne(ctx, t)
//	    user.Get(ctx, t, "/users/me").IsSuccess().KeyValue("email")
//	}
package testutils
