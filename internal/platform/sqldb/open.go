package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/redact"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Dialect identifies the SQL flavour a connection speaks.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "pgx"
)

// MemoryURL is the SQLite URL for a private in-memory database.
const MemoryURL = ":memory:"

const pingTimeout = 5 * time.Second

// DB couples an open handle with the dialect it was opened for.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	log := logger.FromContext(ctx)
	dialect := Dialect(cfg.Driver)

	dsn := cfg.URL
	switch dialect {
	case DialectSQLite:
		if dsn == "" {
			dsn = MemoryURL
		}
		if !strings.Contains(dsn, "_pragma=foreign_keys") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=foreign_keys(1)"
		}
	case DialectPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("database url is required for driver %q", cfg.Driver)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %s", redact.Error(err))
	}

	if dialect == DialectSQLite && isMemory(cfg.URL) {
		// Every new connection to :memory: gets its own empty database.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	log.Info("database connection established",
		slog.String("driver", string(dialect)),
		slog.String("url", redact.String(dsn)))

	return &DB{DB: db, Dialect: dialect}, nil
}

func isMemory(url string) bool {
	return url == "" || strings.HasPrefix(url, MemoryURL) || strings.Contains(url, "mode=memory")
}
