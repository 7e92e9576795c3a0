package domain

import "time"

// User is an account on the platform. Only the bcrypt hash of the
// password and the sha256 hash of an outstanding reset token are ever
// persisted.
type User struct {
	ID           int64
	Email        string
	PasswordHash string

	// Verified is kept for forward compatibility with email
	// verification; no current flow reads it.
	Verified bool

	// Both reset fields are set together or nil together.
	ResetPasswordTokenHash *string
	ResetPasswordExpires   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Public returns the projection of the user that is safe to put in a
// response body.
func (u *User) Public() UserPublic {
	return UserPublic{ID: u.ID, Email: u.Email}
}

type UserPublic struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
