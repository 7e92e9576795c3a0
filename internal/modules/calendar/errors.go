package calendar

import "errors"

var (
	ErrNotFound  = errors.New("calendar not found")
	ErrForbidden = errors.New("not the calendar owner")
)
