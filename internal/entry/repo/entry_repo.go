package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"mywallet-api/internal/entry/entity"
)

// EntryRepo provides data access for the entries table using sqlx.
type EntryRepo struct {
	db *sqlx.DB
}

func NewEntryRepo(db *sqlx.DB) *EntryRepo { return &EntryRepo{db: db} }

// EnsureTable creates the entries table if not exists (idempotent).
// `date` and `type` are stored under prefixed column names to stay clear of
// SQL type keywords.
func (r *EntryRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
  id varchar(32) PRIMARY KEY,
  entry_date text NOT NULL,
  description text NOT NULL,
  entry_type text NOT NULL,
  value double precision NOT NULL,
  user_id varchar(32) NOT NULL,
  created_at bigint NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_user_id ON entries (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Insert persists a new entry row.
func (r *EntryRepo) Insert(ctx context.Context, e *entity.Entry) error {
	q := r.db.Rebind(`INSERT INTO entries (id, entry_date, description, entry_type, value, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q, e.ID, e.Date, e.Description, e.Type, e.Value, e.UserID, e.CreatedAt)
	return err
}

// GetByID fetches an entry row or sql.ErrNoRows.
func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	q := r.db.Rebind(`SELECT id, entry_date, description, entry_type, value, user_id, created_at
		FROM entries WHERE id = ?`)
	var row entity.Entry
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByUser returns all entries owned by userID in insertion order.
func (r *EntryRepo) ListByUser(ctx context.Context, userID string) ([]entity.Entry, error) {
	q := r.db.Rebind(`SELECT id, entry_date, description, entry_type, value, user_id, created_at
		FROM entries WHERE user_id = ? ORDER BY created_at, id`)
	rows := []entity.Entry{}
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFields applies a partial overwrite of the given columns and returns
// the number of rows affected. Column names must come from the service's
// whitelist; values are always bound as parameters.
func (r *EntryRepo) UpdateFields(ctx context.Context, id string, cols map[string]any) (int64, error) {
	if len(cols) == 0 {
		return 0, nil
	}
	set := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for col, v := range cols {
		set = append(set, col+" = ?")
		args = append(args, v)
	}
	args = append(args, id)
	q := r.db.Rebind(fmt.Sprintf("UPDATE entries SET %s WHERE id = ?", strings.Join(set, ", ")))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes an entry by id and returns the number of rows affected.
// Deleting a nonexistent id affects zero rows rather than failing.
func (r *EntryRepo) Delete(ctx context.Context, id string) (int64, error) {
	q := r.db.Rebind(`DELETE FROM entries WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
