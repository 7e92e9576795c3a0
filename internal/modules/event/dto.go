package event

type CreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CalendarID  *int64 `json:"calendar_id"`
}

type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	CalendarID  *int64  `json:"calendar_id,omitempty"`
}

type SubscribeRequest struct {
	EventID int64  `json:"eventId" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type CheckSubscriptionRequest struct {
	EventID int64  `json:"eventId" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
}
