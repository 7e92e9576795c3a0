package domain

import "time"

// Event is a published entry in a calendar. Date and Time stay as the
// display strings the client submitted ("Oct 25, 2025", "6:00 PM"),
// sorting is by insertion order within a calendar.
type Event struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Title       string    `gorm:"column:title" json:"title"`
	Date        string    `gorm:"column:date" json:"date"`
	Time        string    `gorm:"column:time" json:"time"`
	Location    string    `gorm:"column:location" json:"location"`
	Category    string    `gorm:"column:category" json:"category,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	Image       string    `gorm:"column:image" json:"image,omitempty"`
	CreatedBy   int64     `gorm:"column:created_by;index" json:"created_by"`
	CalendarID  *int64    `gorm:"column:calendar_id;index" json:"calendar_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Event) TableName() string { return "events" }
