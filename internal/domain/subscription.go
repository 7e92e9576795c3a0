package domain

import "time"

// Subscription links an email (and, for logged-in subscribers, a user
// id) to an event. Anonymous subscriptions carry only the email.
type Subscription struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	EventID      int64     `gorm:"column:event_id;index" json:"event_id"`
	Email        string    `gorm:"column:email;index" json:"email"`
	UserID       *int64    `gorm:"column:user_id;index" json:"user_id,omitempty"`
	SubscribedAt time.Time `gorm:"column:subscribed_at" json:"subscribed_at"`
}

func (Subscription) TableName() string { return "subscriptions" }
