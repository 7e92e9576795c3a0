package repository

import (
	"context"

	"eventhub/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *SubscriptionRepository) ExistsByEventAndUser(ctx context.Context, eventID, userID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count)
	return count > 0, tx.Error
}

func (r *SubscriptionRepository) ExistsByEventAndEmail(ctx context.Context, eventID int64, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Subscription{}).
		Where("event_id = ? AND email = ?", eventID, NormalizeEmail(email)).
		Count(&count)
	return count > 0, tx.Error
}

// ListByUserOrEmail picks up both account subscriptions and earlier
// anonymous ones made with the same address.
func (r *SubscriptionRepository) ListByUserOrEmail(ctx context.Context, userID int64, email string) ([]*domain.Subscription, error) {
	var subs []*domain.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR email = ?", userID, NormalizeEmail(email)).
		Find(&subs).Error
	return subs, err
}
