package entity

// Session binds an opaque bearer token to the identity that was authenticated
// when the token was issued. Name and email are denormalized at login time so
// the client response needs no second lookup. Sessions never expire and are
// never deleted; a user may hold any number of them concurrently.
type Session struct {
	Token     string `db:"token"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	CreatedAt int64  `db:"created_at"`
}
