// Package testdb manages the session-scoped test database.
//
// A Session is opened once per test binary, usually in TestMain, and closed
// when the binary finishes. Opening creates the database (a private
// in-memory SQLite instance unless a PostgreSQL URL is configured) and
// applies the embedded migrations; closing destroys it. Individual tests
// borrow the session with Use, or run isolated work in a transaction that is
// always rolled back with WithTx:
//
//	func TestMain(m *testing.M) {
//	    session, err := testdb.Open(context.Background(), testdb.ConfigFromEnv(cfg.Database))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    code := m.Run()
//	    _ = session.Close(context.Background())
//	    os.Exit(code)
//	}
//
//	func TestSomething(t *testing.T) {
//	    session.WithTx(t, func(tx *sql.Tx) {
//	        // queries against tx only
//	    })
//	}
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string, selects the pgx driver
//   - SCRY_TEST_DB_URL: alternative PostgreSQL connection string
package testdb
