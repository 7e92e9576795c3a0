package event

import (
	"context"

	"eventhub/internal/domain"
)

type EventRepositoryInterface interface {
	ListAll(ctx context.Context) ([]*domain.Event, error)
	ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Event, error)
	ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, ev *domain.Event) error
	Update(ctx context.Context, ev *domain.Event) error
	Delete(ctx context.Context, id int64) error
}

type SubscriptionRepositoryInterface interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error)
	ExistsByEventAndEmail(ctx context.Context, eventID int64, email string) (bool, error)
	ListByUserOrEmail(ctx context.Context, userID int64, email string) ([]*domain.Subscription, error)
}
