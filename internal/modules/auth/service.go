package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"
	"eventhub/internal/pkg/mail"
	"eventhub/internal/pkg/token"
	"eventhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains all business logic for authentication
type Service struct {
	users           UserRepositoryInterface
	sessions        SessionRepositoryInterface
	tokens          tokenService
	mailer          mail.Mailer
	refreshTTL      time.Duration
	resetTTL        time.Duration
	maxSessions     int
	frontendBaseURL string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ResetRequestResult carries the reset link back to the handler only
// when no mail transport is configured (developer/offline mode).
type ResetRequestResult struct {
	DevMode   bool
	ResetLink string
}

func NewService(
	users UserRepositoryInterface,
	sessions SessionRepositoryInterface,
	tokens tokenService,
	mailer mail.Mailer,
	refreshTTL time.Duration,
	resetTTL time.Duration,
	maxSessions int,
	frontendBaseURL string,
) *Service {
	if resetTTL <= 0 {
		resetTTL = token.DefaultResetTTL
	}
	if maxSessions <= 0 {
		maxSessions = 10
	}
	return &Service{
		users:           users,
		sessions:        sessions,
		tokens:          tokens,
		mailer:          mailer,
		refreshTTL:      refreshTTL,
		resetTTL:        resetTTL,
		maxSessions:     maxSessions,
		frontendBaseURL: frontendBaseURL,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*domain.User, *TokenPair, error) {
	email := repository.NormalizeEmail(req.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailAlreadyExists
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, repository.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.openSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	return user, pair, nil
}

// openSession issues both tokens and records the refresh token as an
// active session, evicting the oldest sessions beyond the cap.
func (s *Service) openSession(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.sessions.Create(ctx, &domain.RefreshToken{
		UserID:    userID,
		TokenHash: token.HashToken(refresh),
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL),
	}); err != nil {
		return nil, err
	}

	if err := s.sessions.EvictOldest(ctx, userID, s.maxSessions); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid, still-registered refresh token for a new
// access token. The refresh token itself is not rotated.
func (s *Service) Refresh(ctx context.Context, refreshRaw string) (string, error) {
	userID, err := s.tokens.ParseRefresh(refreshRaw)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	// Signature validity is not enough: logout removes the session row,
	// which must invalidate the token server-side.
	active, err := s.sessions.Exists(ctx, userID, token.HashToken(refreshRaw))
	if err != nil {
		return "", err
	}
	if !active {
		return "", ErrInvalidRefreshToken
	}

	return s.tokens.IssueAccess(userID)
}

// Logout revokes the single session behind the presented refresh token.
// An undecodable token is not an error; other sessions stay valid.
func (s *Service) Logout(ctx context.Context, refreshRaw string) error {
	userID, err := s.tokens.ParseRefresh(refreshRaw)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteByHash(ctx, userID, token.HashToken(refreshRaw))
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// ResolveAccessToken validates a raw access token and loads its user.
// Used by the /me fallback path when no middleware ran before the
// handler.
func (s *Service) ResolveAccessToken(ctx context.Context, accessRaw string) (*domain.User, error) {
	userID, err := s.tokens.ParseAccess(accessRaw)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.CurrentUser(ctx, userID)
}

// RequestReset starts the password-reset flow. Whether or not the
// account exists the caller gets the same outcome shape, so the result
// never reveals account existence.
func (s *Service) RequestReset(ctx context.Context, email string) (*ResetRequestResult, error) {
	user, err := s.users.GetByEmail(ctx, repository.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ResetRequestResult{}, nil
		}
		return nil, err
	}

	raw, hash, err := token.NewResetToken()
	if err != nil {
		return nil, err
	}

	// Any earlier outstanding reset is overwritten.
	expires := time.Now().Add(s.resetTTL)
	user.ResetPasswordTokenHash = &hash
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s&id=%d", s.frontendBaseURL, raw, user.ID)
	msg := mail.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Text:    "Reset link: " + resetLink,
		HTML:    fmt.Sprintf(`<p>Click the link to reset your password:</p><p><a href="%s">%s</a></p>`, resetLink, resetLink),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			return &ResetRequestResult{DevMode: true, ResetLink: resetLink}, nil
		}
		return nil, err
	}

	return &ResetRequestResult{}, nil
}

// ResetPassword consumes a reset token. The outstanding reset is
// cleared on success, and every active session of the user is revoked
// so a stolen refresh token does not survive the new password.
func (s *Service) ResetPassword(ctx context.Context, userID int64, rawToken, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if user.ResetPasswordTokenHash == nil || user.ResetPasswordExpires == nil {
		return ErrInvalidResetToken
	}
	if user.ResetPasswordExpires.Before(time.Now()) {
		return ErrResetTokenExpired
	}
	if token.HashToken(rawToken) != *user.ResetPasswordTokenHash {
		return ErrInvalidResetToken
	}

	hashed, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	user.ResetPasswordTokenHash = nil
	user.ResetPasswordExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
