package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	t.Run("postgres database name overrides the DSN path", func(t *testing.T) {
		dsn, err := buildDSN(Config{
			Driver: "postgres",
			DSN:    "postgres://u:p@db.local:5432/postgres?sslmode=disable",
			Name:   "mywallet",
		})
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@db.local:5432/mywallet?sslmode=disable", dsn)
	})

	t.Run("sqlite falls back to the database name as file path", func(t *testing.T) {
		dsn, err := buildDSN(Config{Driver: "sqlite", Name: "wallet.db"})
		require.NoError(t, err)
		assert.Equal(t, "wallet.db", dsn)
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		_, err := buildDSN(Config{Driver: "oracle"})
		assert.Error(t, err)
	})
}

func TestConnectDefaultsTimeout(t *testing.T) {
	// a zero-value timeout must not produce an already-expired ping context
	db, err := Connect(Config{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Ping())
}

func TestConnectAndUniqueViolation(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", DSN: ":memory:", MaxConns: 1})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE t (email text); CREATE UNIQUE INDEX idx_t_email ON t (email);`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO t (email) VALUES ('ana@x.com')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO t (email) VALUES ('ana@x.com')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(context.Canceled))
}
