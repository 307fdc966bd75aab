// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/rincon/internal/db"
)

// NewDB returns a migrated in-memory SQLite database closed at test cleanup.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := db.Init("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	return conn
}
