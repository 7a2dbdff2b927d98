package sqldb

import (
	"context"
	"testing"

	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/stretchr/testify/require"
)

func newMemoryDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{Driver: string(DialectSQLite), URL: MemoryURL})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}
