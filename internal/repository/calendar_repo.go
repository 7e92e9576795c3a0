package repository

import (
	"context"

	"eventhub/internal/domain"

	"gorm.io/gorm"
)

type CalendarRepository struct {
	db *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

func (r *CalendarRepository) ListAll(ctx context.Context) ([]*domain.Calendar, error) {
	var calendars []*domain.Calendar
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&calendars).Error
	return calendars, err
}

func (r *CalendarRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Calendar, error) {
	var calendars []*domain.Calendar
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&calendars).Error
	return calendars, err
}

func (r *CalendarRepository) GetByID(ctx context.Context, id int64) (*domain.Calendar, error) {
	var cal domain.Calendar
	if err := r.db.WithContext(ctx).First(&cal, id).Error; err != nil {
		return nil, err
	}
	return &cal, nil
}

func (r *CalendarRepository) Create(ctx context.Context, cal *domain.Calendar) error {
	return r.db.WithContext(ctx).Create(cal).Error
}

func (r *CalendarRepository) Update(ctx context.Context, cal *domain.Calendar) error {
	return r.db.WithContext(ctx).Save(cal).Error
}

func (r *CalendarRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Calendar{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
