package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventhub/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	calendars RepositoryInterface
}

func NewService(calendars RepositoryInterface) *Service {
	return &Service{calendars: calendars}
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Calendar, error) {
	return s.calendars.ListAll(ctx)
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]*domain.Calendar, error) {
	return s.calendars.ListByOwner(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Calendar, error) {
	cal, err := s.calendars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cal, nil
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*domain.Calendar, error) {
	cal := &domain.Calendar{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       req.Color,
		Visibility:  domain.Visibility(req.Visibility),
		StartDate:   time.Now(),
		CreatedBy:   userID,
	}
	if cal.Color == "" {
		cal.Color = domain.DefaultCalendarColor
	}
	if cal.Visibility == "" {
		cal.Visibility = domain.VisibilityPrivate
	}
	if req.StartDate != "" {
		if t, err := time.Parse(time.RFC3339, req.StartDate); err == nil {
			cal.StartDate = t
		}
	}

	if err := s.calendars.Create(ctx, cal); err != nil {
		return nil, err
	}
	return cal, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateRequest) (*domain.Calendar, error) {
	cal, err := s.ownedCalendar(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		cal.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		cal.Description = *req.Description
	}
	if req.Color != nil {
		cal.Color = *req.Color
	}
	if req.Visibility != nil {
		cal.Visibility = domain.Visibility(*req.Visibility)
	}
	if req.StartDate != nil {
		if t, err := time.Parse(time.RFC3339, *req.StartDate); err == nil {
			cal.StartDate = t
		}
	}

	if err := s.calendars.Update(ctx, cal); err != nil {
		return nil, err
	}
	return cal, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.ownedCalendar(ctx, userID, id); err != nil {
		return err
	}
	return s.calendars.Delete(ctx, id)
}

func (s *Service) ownedCalendar(ctx context.Context, userID, id int64) (*domain.Calendar, error) {
	cal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cal.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return cal, nil
}
