// Package sqldb provides the database/sql backed implementations of the
// store interfaces. It runs against SQLite (modernc.org/sqlite, used for
// in-memory test sessions) and PostgreSQL (pgx stdlib driver), applies the
// embedded goose migrations and maps driver errors onto store sentinels.
package sqldb
