package repository

import (
	"context"

	"eventhub/internal/domain"

	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.WithContext(ctx).Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.WithContext(ctx).
		Where("calendar_id = ?", calendarID).
		Order("date ASC, time ASC").
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) ListByIDs(ctx context.Context, ids []int64) ([]*domain.Event, error) {
	if len(ids) == 0 {
		return []*domain.Event{}, nil
	}
	var events []*domain.Event
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var ev domain.Event
	if err := r.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepository) Create(ctx context.Context, ev *domain.Event) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *EventRepository) Update(ctx context.Context, ev *domain.Event) error {
	return r.db.WithContext(ctx).Save(ev).Error
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Event{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
