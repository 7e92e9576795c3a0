package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("access secret is not configured")
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
	DefaultResetTTL   = time.Hour
)

// Config holds the signing material for the token service. Secrets are
// injected once at construction instead of being read from the
// environment per call.
type Config struct {
	AccessSecret  string
	RefreshSecret string // falls back to AccessSecret when empty
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Service issues and verifies the three token kinds: short-lived access
// JWTs, longer-lived refresh JWTs signed with a separate secret, and
// random single-use reset tokens of which only a hash is kept.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(cfg Config) (*Service, error) {
	if cfg.AccessSecret == "" {
		return nil, ErrMissingSecret
	}
	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.AccessSecret
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Service{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}, nil
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) IssueAccess(userID int64) (string, error) {
	return sign(userID, s.accessSecret, s.accessTTL)
}

func (s *Service) IssueRefresh(userID int64) (string, error) {
	return sign(userID, s.refreshSecret, s.refreshTTL)
}

// ParseAccess returns the subject user id of a valid access token.
func (s *Service) ParseAccess(tokenStr string) (int64, error) {
	return parse(tokenStr, s.accessSecret)
}

// ParseRefresh checks signature and expiry only; presence in the
// session store is the caller's concern.
func (s *Service) ParseRefresh(tokenStr string) (int64, error) {
	return parse(tokenStr, s.refreshSecret)
}

// sign stamps a unique jti on every token. iat and exp have second
// precision, so without it two sessions opened in the same second would
// collide on the hashed token.
func sign(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func parse(tokenStr string, secret []byte) (int64, error) {
	t, err := jwtlib.ParseWithClaims(tokenStr, &jwtlib.RegisteredClaims{}, func(t *jwtlib.Token) (any, error) {
		if t.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := t.Claims.(*jwtlib.RegisteredClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// NewResetToken generates a 32-byte random reset token. The raw hex
// value goes out in the email link, only the hash is persisted.
func NewResetToken() (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashToken(raw), nil
}

// HashToken is the deterministic one-way hash used to compare a
// presented token against the stored hash.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
