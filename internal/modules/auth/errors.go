package auth

import "errors"

var (
	// ErrInvalidCredentials is returned both for an unknown email and a
	// wrong password so the two cases are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidResetToken   = errors.New("invalid reset token")
	ErrResetTokenExpired   = errors.New("reset token expired")
	ErrUnauthorized        = errors.New("unauthorized")
)
