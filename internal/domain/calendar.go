package domain

import "time"

// Visibility of a calendar
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

const DefaultCalendarColor = "#ec4899"

type Calendar struct {
	ID          int64      `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	Color       string     `gorm:"column:color" json:"color"`
	Visibility  Visibility `gorm:"column:visibility" json:"visibility"`
	StartDate   time.Time  `gorm:"column:start_date" json:"start_date"`
	CreatedBy   int64      `gorm:"column:created_by;index" json:"created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Calendar) TableName() string { return "calendars" }
