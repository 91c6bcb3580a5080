package entity

// Entry is a single dated financial record (income or expense) owned by
// exactly one user identity. Ownership is fixed at creation from the session
// that performed the write.
type Entry struct {
	ID          string  `db:"id" json:"id"`
	Date        string  `db:"entry_date" json:"date"`
	Description string  `db:"description" json:"description"`
	Type        string  `db:"entry_type" json:"type"`
	Value       float64 `db:"value" json:"value"`
	UserID      string  `db:"user_id" json:"userId"`
	CreatedAt   int64   `db:"created_at" json:"-"`
}
