package event

import (
	"context"
	"errors"
	"time"

	"eventhub/internal/domain"
	"eventhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	events        EventRepositoryInterface
	subscriptions SubscriptionRepositoryInterface
}

func NewService(events EventRepositoryInterface, subscriptions SubscriptionRepositoryInterface) *Service {
	return &Service{events: events, subscriptions: subscriptions}
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return s.events.ListAll(ctx)
}

func (s *Service) ListByCalendar(ctx context.Context, calendarID int64) ([]*domain.Event, error) {
	return s.events.ListByCalendar(ctx, calendarID)
}

func (s *Service) ListByCreator(ctx context.Context, userID int64) ([]*domain.Event, error) {
	return s.events.ListByCreator(ctx, userID)
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*domain.Event, error) {
	ev := &domain.Event{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		CreatedBy:   userID,
		CalendarID:  req.CalendarID,
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateRequest) (*domain.Event, error) {
	ev, err := s.ownedEvent(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Date != nil {
		ev.Date = *req.Date
	}
	if req.Time != nil {
		ev.Time = *req.Time
	}
	if req.Location != nil {
		ev.Location = *req.Location
	}
	if req.Category != nil {
		ev.Category = *req.Category
	}
	if req.Description != nil {
		ev.Description = *req.Description
	}
	if req.Image != nil {
		ev.Image = *req.Image
	}
	if req.CalendarID != nil {
		ev.CalendarID = req.CalendarID
	}

	if err := s.events.Update(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.ownedEvent(ctx, userID, id); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}

// Subscribe records interest in an event. A logged-in subscriber is
// keyed by account (their account email wins over any submitted one),
// an anonymous one by email.
func (s *Service) Subscribe(ctx context.Context, eventID int64, userID int64, userEmail, email string) error {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	subEmail := email
	if userID != 0 {
		subEmail = userEmail
	}
	subEmail = repository.NormalizeEmail(subEmail)
	if subEmail == "" {
		return ErrEmailRequired
	}

	var (
		exists bool
		err    error
	)
	if userID != 0 {
		exists, err = s.subscriptions.ExistsByEventAndUser(ctx, eventID, userID)
	} else {
		exists, err = s.subscriptions.ExistsByEventAndEmail(ctx, eventID, subEmail)
	}
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadySubscribed
	}

	sub := &domain.Subscription{
		ID:           uuid.NewString(),
		EventID:      eventID,
		Email:        subEmail,
		SubscribedAt: time.Now(),
	}
	if userID != 0 {
		sub.UserID = &userID
	}
	return s.subscriptions.Create(ctx, sub)
}

// IsSubscribed checks by account first, then by email.
func (s *Service) IsSubscribed(ctx context.Context, eventID, userID int64, email string) (bool, error) {
	if userID != 0 {
		exists, err := s.subscriptions.ExistsByEventAndUser(ctx, eventID, userID)
		if err != nil {
			return false, err
		}
		if exists {
			return true, nil
		}
	}
	if email == "" {
		return false, nil
	}
	return s.subscriptions.ExistsByEventAndEmail(ctx, eventID, email)
}

// MyEvents merges the events a user created with the ones they
// subscribed to, created first, without duplicates.
func (s *Service) MyEvents(ctx context.Context, userID int64, email string) ([]*domain.Event, error) {
	created, err := s.events.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subscriptions.ListByUserOrEmail(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(created))
	merged := make([]*domain.Event, 0, len(created)+len(subs))
	for _, ev := range created {
		seen[ev.ID] = true
		merged = append(merged, ev)
	}

	var subscribedIDs []int64
	for _, sub := range subs {
		if !seen[sub.EventID] {
			seen[sub.EventID] = true
			subscribedIDs = append(subscribedIDs, sub.EventID)
		}
	}

	subscribed, err := s.events.ListByIDs(ctx, subscribedIDs)
	if err != nil {
		return nil, err
	}
	merged = append(merged, subscribed...)

	return merged, nil
}

func (s *Service) ownedEvent(ctx context.Context, userID, id int64) (*domain.Event, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ev.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return ev, nil
}
