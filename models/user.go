package models

import "time"

// User represents a registered account used for authentication and
// authorization. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Email is the globally unique, format-validated address the user
	// registers and logs in with. It doubles as the subject claim of
	// issued session tokens.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to any external response and never logged.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
