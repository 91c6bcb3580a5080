package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmoiron/sqlx"

	"mywallet-api/internal/user/entity"
	userrepo "mywallet-api/internal/user/repo"
	"mywallet-api/pkg/database"
	"mywallet-api/pkg/utilities"
	"mywallet-api/pkg/validate"
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// minPasswordLen is the minimum accepted password length on sign-up and login.
const minPasswordLen = 8

// UserService orchestrates identity registration and credential checking.
type UserService struct {
	repo   *userrepo.UserRepo
	hasher PasswordHasher
}

func NewUserService(db *sqlx.DB, r *userrepo.UserRepo, hasher PasswordHasher) *UserService {
	if r == nil {
		r = userrepo.NewUserRepo(db)
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	return &UserService{repo: r, hasher: hasher}
}

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("incorrect password")
)

// Register validates the sign-up payload, hashes the password and stores a
// new identity. The returned user carries the hash; callers respond with the
// public projection only. A duplicate email yields ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	var verrs validate.Errors
	if name == "" {
		verrs.Add("name", "is required")
	}
	if email == "" {
		verrs.Add("email", "is required")
	} else if !validate.IsEmail(email) {
		verrs.Add("email", "must be a valid email")
	}
	if password == "" {
		verrs.Add("password", "is required")
	} else if len(password) < minPasswordLen {
		verrs.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		ID:           utilities.NewRecordID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// concurrent sign-up with the same email between lookup and insert
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate validates the login payload, looks the identity up by email
// and verifies the password against the stored bcrypt hash.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)

	var verrs validate.Errors
	if email == "" {
		verrs.Add("email", "is required")
	} else if !validate.IsEmail(email) {
		verrs.Add("email", "must be a valid email")
	}
	if password == "" {
		verrs.Add("password", "is required")
	} else if len(password) < minPasswordLen {
		verrs.Add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
