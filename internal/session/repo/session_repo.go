package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"mywallet-api/internal/session/entity"
)

// SessionRepo persists opaque bearer tokens mapped to a user identity.
type SessionRepo struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// EnsureTable creates the sessions table if not exists (idempotent).
func (r *SessionRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  token varchar(36) PRIMARY KEY,
  user_id varchar(32) NOT NULL,
  name text NOT NULL,
  email text NOT NULL,
  created_at bigint NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Save persists a session record binding token to identity.
func (r *SessionRepo) Save(ctx context.Context, s *entity.Session) error {
	q := r.db.Rebind(`INSERT INTO sessions (token, user_id, name, email, created_at) VALUES (?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, s.Token, s.UserID, s.Name, s.Email, s.CreatedAt)
	return err
}

// GetByToken returns the session for token or sql.ErrNoRows.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	q := r.db.Rebind(`SELECT token, user_id, name, email, created_at FROM sessions WHERE token = ?`)
	var row entity.Session
	if err := r.db.GetContext(ctx, &row, q, token); err != nil {
		return nil, err
	}
	return &row, nil
}
