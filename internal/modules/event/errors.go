package event

import "errors"

var (
	ErrNotFound          = errors.New("event not found")
	ErrForbidden         = errors.New("not the event owner")
	ErrAlreadySubscribed = errors.New("already subscribed to this event")
	ErrEmailRequired     = errors.New("email required for subscription")
)
