package user

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	userrepo "mywallet-api/internal/user/repo"
	"mywallet-api/pkg/validate"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// a single in-memory sqlite connection, shared by all statements
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, userrepo.NewUserRepo(db).EnsureTable(context.Background()))
	return db
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("stores identity and hashes password", func(t *testing.T) {
		svc := NewUserService(newTestDB(t), nil, nil)

		u, err := svc.Register(ctx, "Ana", "ana@x.com", "password1")
		require.NoError(t, err)
		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Ana", u.Name)
		assert.Equal(t, "ana@x.com", u.Email)
		assert.NotEqual(t, "password1", u.PasswordHash, "plaintext must never be persisted")
		assert.True(t, BcryptHasher{}.Verify(u.PasswordHash, "password1"))
	})

	t.Run("enumerates every violated rule", func(t *testing.T) {
		svc := NewUserService(newTestDB(t), nil, nil)

		_, err := svc.Register(ctx, "", "not-an-email", "short")
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		require.Len(t, verrs, 3)
		fields := []string{verrs[0].Field, verrs[1].Field, verrs[2].Field}
		assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := NewUserService(newTestDB(t), nil, nil)

		_, err := svc.Register(ctx, "Ana", "ana@x.com", "password1")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "Other Ana", "ana@x.com", "password2")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("email is normalized", func(t *testing.T) {
		svc := NewUserService(newTestDB(t), nil, nil)

		u, err := svc.Register(ctx, "Ana", "  ANA@X.COM ", "password1")
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", u.Email)

		_, err = svc.Register(ctx, "Ana", "ana@x.com", "password1")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *UserService {
		svc := NewUserService(newTestDB(t), nil, nil)
		_, err := svc.Register(ctx, "Ana", "ana@x.com", "password1")
		require.NoError(t, err)
		return svc
	}

	t.Run("correct credentials return the stored identity", func(t *testing.T) {
		svc := setup(t)
		u, err := svc.Authenticate(ctx, "ana@x.com", "password1")
		require.NoError(t, err)
		assert.Equal(t, "Ana", u.Name)
		assert.NotEmpty(t, u.PasswordHash)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		svc := setup(t)
		_, err := svc.Authenticate(ctx, "nobody@x.com", "password1")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("wrong password is distinguishable from unknown email", func(t *testing.T) {
		svc := setup(t)
		_, err := svc.Authenticate(ctx, "ana@x.com", "wrongpassword")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("invalid payload is rejected before lookup", func(t *testing.T) {
		svc := setup(t)
		_, err := svc.Authenticate(ctx, "", "short")
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})
}
