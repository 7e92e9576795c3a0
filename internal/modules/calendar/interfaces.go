package calendar

import (
	"context"

	"eventhub/internal/domain"
)

// RepositoryInterface — only the persistence methods the service needs
type RepositoryInterface interface {
	ListAll(ctx context.Context) ([]*domain.Calendar, error)
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Calendar, error)
	GetByID(ctx context.Context, id int64) (*domain.Calendar, error)
	Create(ctx context.Context, cal *domain.Calendar) error
	Update(ctx context.Context, cal *domain.Calendar) error
	Delete(ctx context.Context, id int64) error
}
