package testdb

import (
	"os"
	"testing"
	"time"

	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/sqldb"
)

// GetTestDatabaseURL returns the database URL for tests.
// It checks DATABASE_URL and SCRY_TEST_DB_URL environment variables
// in that order, returning the first non-empty value.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("SCRY_TEST_DB_URL")
}

// IsIntegrationTestEnvironment reports whether a PostgreSQL test database is
// configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ConfigFromEnv switches base to PostgreSQL when a test database URL is set
// in the environment and returns base unchanged otherwise.
func ConfigFromEnv(base config.DatabaseConfig) config.DatabaseConfig {
	if dbURL := GetTestDatabaseURL(); dbURL != "" {
		return config.DatabaseConfig{Driver: string(sqldb.DialectPostgres), URL: dbURL}
	}
	return base
}

// ciEnvVars are set by the common CI providers.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS", "CIRCLECI"}

// IsCI reports whether the tests run on a CI provider.
func IsCI() bool {
	for _, name := range ciEnvVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// Bounds on opening and migrating the session database. CI databases are
// often still starting when the tests begin.
const (
	localConnectTimeout = 10 * time.Second
	ciConnectTimeout    = 60 * time.Second
)

func connectTimeout() time.Duration {
	if IsCI() {
		return ciConnectTimeout
	}
	return localConnectTimeout
}

// SkipIfNoPostgres skips t unless a PostgreSQL test database is configured.
func SkipIfNoPostgres(t testing.TB) {
	t.Helper()
	if !IsIntegrationTestEnvironment() {
		t.Skip("no PostgreSQL test database configured (set DATABASE_URL or SCRY_TEST_DB_URL)")
	}
}
