package api_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/testdb"
	"github.com/phrazzld/scry-testkit/internal/testutils"
)

const testJWTSecret = "api-test-secret-that-is-at-least-32-chars"

var suite *testutils.Suite

func testContext() context.Context {
	return logger.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMain(m *testing.M) {
	ctx := testContext()

	cfg, err := config.Load(config.WithOverride("auth.jwt_secret", testJWTSecret))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.Database = testdb.ConfigFromEnv(cfg.Database)

	suite, err = testutils.NewAppSuite(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build test suite: %v", err)
	}

	code := m.Run()

	if err := suite.Close(ctx); err != nil {
		log.Printf("failed to close test suite: %v", err)
	}
	os.Exit(code)
}
