package domain

import "time"

// RefreshToken is one active session for a user. The raw token never
// touches the database; TokenHash is sha256 of the signed token string.
// A revoked session is deleted, never flagged.
type RefreshToken struct {
	ID        int64
	UserID    int64
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}
