package models

// User represents an application account stored in the users table. The
// password hash never leaves the server.
type User struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	PasswordHash string `db:"password" json:"-"`
}
