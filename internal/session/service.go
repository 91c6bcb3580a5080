package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mywallet-api/internal/session/entity"
	sessionrepo "mywallet-api/internal/session/repo"
	userentity "mywallet-api/internal/user/entity"
)

// ErrNoSession is returned when a token matches no stored session. The guard
// treats it as "unauthenticated", never as a server failure.
var ErrNoSession = errors.New("no session for token")

// SessionService issues and resolves opaque bearer tokens.
type SessionService struct {
	repo *sessionrepo.SessionRepo
}

func NewSessionService(db *sqlx.DB, r *sessionrepo.SessionRepo) *SessionService {
	if r == nil {
		r = sessionrepo.NewSessionRepo(db)
	}
	return &SessionService{repo: r}
}

// Create generates a cryptographically random UUIDv4 token, persists the
// token-to-identity binding and returns it with the denormalized name/email
// for immediate client use. No expiry is attached.
func (s *SessionService) Create(ctx context.Context, u *userentity.User) (*entity.Session, error) {
	sess := &entity.Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Resolve returns the session for token, or ErrNoSession when the token is
// unknown.
func (s *SessionService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	return sess, nil
}
