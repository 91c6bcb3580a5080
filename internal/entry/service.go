package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mywallet-api/internal/entry/entity"
	entryrepo "mywallet-api/internal/entry/repo"
	"mywallet-api/pkg/utilities"
	"mywallet-api/pkg/validate"
)

var (
	ErrNotFound  = errors.New("entry not found")
	ErrForbidden = errors.New("entry owned by another user")
)

// CreateInput is the validated shape of an entry-registration payload.
// Value is a pointer so a missing number is distinguishable from zero.
type CreateInput struct {
	Date        string
	Description string
	Type        string
	Value       *float64
}

// UpdateAck mirrors the store's update acknowledgement: how many rows the id
// matched and how many were written.
type UpdateAck struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteAck reports how many rows a delete removed. Zero is a valid outcome.
type DeleteAck struct {
	DeletedCount int64 `json:"deletedCount"`
}

const minDescriptionLen = 3

// EntryService orchestrates the lifecycle of financial entries, scoped to the
// identity resolved from the caller's session.
type EntryService struct {
	repo *entryrepo.EntryRepo
}

func NewEntryService(db *sqlx.DB, r *entryrepo.EntryRepo) *EntryService {
	if r == nil {
		r = entryrepo.NewEntryRepo(db)
	}
	return &EntryService{repo: r}
}

// Create validates the payload, persists the entry owned by userID and
// fetches the stored row back by its assigned id so store defaults are
// reflected in the response.
func (s *EntryService) Create(ctx context.Context, userID string, in CreateInput) (*entity.Entry, error) {
	var verrs validate.Errors
	if in.Date == "" {
		verrs.Add("date", "is required")
	}
	if in.Description == "" {
		verrs.Add("description", "is required")
	} else if len(in.Description) < minDescriptionLen {
		verrs.Add("description", fmt.Sprintf("must be at least %d characters", minDescriptionLen))
	}
	if in.Type == "" {
		verrs.Add("type", "is required")
	}
	if in.Value == nil {
		verrs.Add("value", "is required and must be a number")
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	e := &entity.Entry{
		ID:          utilities.NewRecordID(),
		Date:        in.Date,
		Description: in.Description,
		Type:        in.Type,
		Value:       *in.Value,
		UserID:      userID,
		CreatedAt:   time.Now().Unix(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	stored, err := s.repo.GetByID(ctx, e.ID)
	if err != nil {
		return nil, fmt.Errorf("read back entry: %w", err)
	}
	return stored, nil
}

// List returns every entry owned by userID, in insertion order. The slice is
// never nil so handlers always render a JSON array.
func (s *EntryService) List(ctx context.Context, userID string) ([]entity.Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// updatableColumns maps payload field names to their storage columns.
// user_id is deliberately absent: ownership is fixed at creation.
var updatableColumns = map[string]string{
	"date":        "entry_date",
	"description": "description",
	"type":        "entry_type",
	"value":       "value",
}

// Update applies a partial overwrite of the supplied fields to the entry.
// The entry must exist (ErrNotFound) and belong to userID (ErrForbidden).
// Supplied fields are validated with the creation rules; unknown fields are
// rejected. Returns the store's acknowledgement, not the updated document.
func (s *EntryService) Update(ctx context.Context, userID, entryID string, fields map[string]any) (UpdateAck, error) {
	cols := make(map[string]any, len(fields))
	var verrs validate.Errors
	for name, v := range fields {
		col, ok := updatableColumns[name]
		if !ok {
			verrs.Add(name, "is not an updatable field")
			continue
		}
		switch name {
		case "value":
			n, ok := v.(float64)
			if !ok {
				verrs.Add(name, "must be a number")
				continue
			}
			cols[col] = n
		case "description":
			str, ok := v.(string)
			if !ok || len(str) < minDescriptionLen {
				verrs.Add(name, fmt.Sprintf("must be a string of at least %d characters", minDescriptionLen))
				continue
			}
			cols[col] = str
		default: // date, type
			str, ok := v.(string)
			if !ok || str == "" {
				verrs.Add(name, "must be a non-empty string")
				continue
			}
			cols[col] = str
		}
	}
	if err := verrs.OrNil(); err != nil {
		return UpdateAck{}, err
	}

	stored, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UpdateAck{}, ErrNotFound
		}
		return UpdateAck{}, fmt.Errorf("lookup entry: %w", err)
	}
	if stored.UserID != userID {
		return UpdateAck{}, ErrForbidden
	}

	// An empty partial body matches the entry but writes nothing.
	modified, err := s.repo.UpdateFields(ctx, entryID, cols)
	if err != nil {
		return UpdateAck{}, fmt.Errorf("update entry: %w", err)
	}
	return UpdateAck{MatchedCount: 1, ModifiedCount: modified}, nil
}

// Delete removes the entry if it exists and belongs to userID. Deleting a
// nonexistent id succeeds vacuously with a zero count.
func (s *EntryService) Delete(ctx context.Context, userID, entryID string) (DeleteAck, error) {
	stored, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DeleteAck{DeletedCount: 0}, nil
		}
		return DeleteAck{}, fmt.Errorf("lookup entry: %w", err)
	}
	if stored.UserID != userID {
		return DeleteAck{}, ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, entryID)
	if err != nil {
		return DeleteAck{}, fmt.Errorf("delete entry: %w", err)
	}
	return DeleteAck{DeletedCount: deleted}, nil
}
