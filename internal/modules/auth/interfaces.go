package auth

import (
	"context"

	"eventhub/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

// SessionRepositoryInterface — storage for active refresh tokens
type SessionRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	Exists(ctx context.Context, userID int64, tokenHash string) (bool, error)
	DeleteByHash(ctx context.Context, userID int64, tokenHash string) error
	DeleteByUser(ctx context.Context, userID int64) error
	EvictOldest(ctx context.Context, userID int64, keep int) error
}

type tokenService interface {
	IssueAccess(userID int64) (string, error)
	IssueRefresh(userID int64) (string, error)
	ParseAccess(tokenStr string) (int64, error)
	ParseRefresh(tokenStr string) (int64, error)
}
