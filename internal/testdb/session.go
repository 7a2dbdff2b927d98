package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phrazzld/scry-testkit/internal/config"
	"github.com/phrazzld/scry-testkit/internal/platform/logger"
	"github.com/phrazzld/scry-testkit/internal/platform/sqldb"
)

// TestTimeout bounds each transaction a test opens through WithTx.
const TestTimeout = 10 * time.Second

// ErrSessionClosed is reported when a closed session is used.
var ErrSessionClosed = errors.New("test database session is closed")

// TestingT is the part of *testing.T a Session needs.
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	FailNow()
}

// Session owns the database for one test binary.
type Session struct {
	mu     sync.RWMutex
	db     *sqldb.DB
	closed bool
}

// Open creates the session database and brings its schema up to date.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout())
	defer cancel()

	db, err := sqldb.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	if err := sqldb.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	logger.FromContext(ctx).Debug("test database session opened", "driver", string(db.Dialect))
	return &Session{db: db}, nil
}

// DB returns the session database, or ErrSessionClosed.
func (s *Session) DB() (*sqldb.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.db, nil
}

// Use grants function-scoped access to the session database and fails the
// test if the session is already closed.
func (s *Session) Use(t TestingT) *sqldb.DB {
	t.Helper()

	db, err := s.DB()
	if err != nil {
		t.Errorf("cannot use test database: %v", err)
		t.FailNow()
	}
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, also
// when fn panics. fn must issue every query through tx: an in-memory SQLite
// session has a single connection, which the transaction holds.
func (s *Session) WithTx(t TestingT, fn func(tx *sql.Tx)) {
	t.Helper()

	db := s.Use(t)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Errorf("failed to begin transaction: %v", err)
		t.FailNow()
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(tx)
}

// Close destroys the session database. PostgreSQL schemas are migrated
// down to zero first; an in-memory SQLite database vanishes with its
// connection. Closing twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var resetErr error
	if s.db.Dialect == sqldb.DialectPostgres {
		resetErr = sqldb.Reset(ctx, s.db)
	}
	closeErr := s.db.Close()

	logger.FromContext(ctx).Debug("test database session closed")
	return errors.Join(resetErr, closeErr)
}
