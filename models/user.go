package models

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents an account entity used for authentication.
// PasswordHash holds an argon2id PHC string and is never returned to API
// callers; use [User.View].
type User struct {
	// ID is a UUIDv7 string generated by the application.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier, stored lower-cased.
	Email string `json:"email"`

	// PasswordHash is the encoded argon2id hash of the user's credential.
	PasswordHash string `json:"password_hash"`

	// Verified is set once the user has proven possession of the email via OTP.
	Verified bool `json:"verified"`

	// Role defaults to [RoleUser].
	Role Role `json:"role"`

	// MustChangePassword is raised when a temporary credential was issued.
	MustChangePassword bool `json:"must_change_password"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// View returns the public representation of the user.
func (u User) View() UserView {
	return UserView{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Verified:           u.Verified,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// UserView is the user payload returned to API callers. It never carries
// credential data.
type UserView struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               Role      `json:"role"`
	Verified           bool      `json:"verified"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt"`
}
