package models

import "time"

// User represents an account entity used for authentication and task ownership.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user,
	// assigned by the database on creation.
	ID int64 `json:"id" msgpack:"id"`

	// Username is the unique user identifier used during authentication.
	// Length is restricted to 3-20 characters at the transport layer.
	Username string `json:"username" msgpack:"username"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never serialized to JSON; cached copies retain it so that
	// credential checks can be served through the cache-aside path.
	PasswordHash string `json:"-" msgpack:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`

	// Tasks holds the tasks owned by this user. Populated only when the
	// repository loads the relation; embedded task entries never carry
	// an owner snapshot of their own.
	Tasks []Task `json:"tasks,omitempty" msgpack:"tasks,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the client-visible projection of a [User]. It structurally
// cannot carry a password hash, so values of this type are always safe to
// serialize or embed in cached task entries.
type PublicUser struct {
	ID        int64     `json:"id" msgpack:"id"`
	Username  string    `json:"username" msgpack:"username"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}

// Public returns the output-safe view of the user with credential
// data stripped.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
