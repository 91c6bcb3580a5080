package session

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	sessionrepo "mywallet-api/internal/session/repo"
	userentity "mywallet-api/internal/user/entity"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sessionrepo.NewSessionRepo(db).EnsureTable(context.Background()))
	return db
}

func testUser() *userentity.User {
	return &userentity.User{ID: "usr_1", Name: "Ana", Email: "ana@x.com", PasswordHash: "$2a$10$x"}
}

func TestCreateAndResolve(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newTestDB(t), nil)

	sess, err := svc.Create(ctx, testUser())
	require.NoError(t, err)
	assert.Len(t, sess.Token, 36, "token is a UUID string")
	assert.Equal(t, "usr_1", sess.UserID)
	assert.Equal(t, "Ana", sess.Name)
	assert.Equal(t, "ana@x.com", sess.Email)

	resolved, err := svc.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, resolved.UserID)
	assert.Equal(t, sess.Email, resolved.Email)
}

func TestTokensAreUniquePerLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newTestDB(t), nil)

	seen := map[string]bool{}
	for range 10 {
		sess, err := svc.Create(ctx, testUser())
		require.NoError(t, err)
		assert.False(t, seen[sess.Token], "token reissued")
		seen[sess.Token] = true
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc := NewSessionService(newTestDB(t), nil)

	_, err := svc.Resolve(context.Background(), "never-issued")
	assert.ErrorIs(t, err, ErrNoSession)
}
