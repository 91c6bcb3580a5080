package entity

// User represents an identity row in the `users` table. Identities are
// created on sign-up and never mutated or deleted afterwards.
type User struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

// PublicView is the projection returned to clients. The password hash never
// leaves the service layer.
type PublicView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicView {
	return PublicView{Name: u.Name, Email: u.Email}
}
