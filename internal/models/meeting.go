package models

import (
	"time"

	"gorm.io/gorm"
)

// RecurrenceType represents how often a meeting repeats
type RecurrenceType string

const (
	RecurrenceNone     RecurrenceType = "none"
	RecurrenceWeekly   RecurrenceType = "weekly"
	RecurrenceBiweekly RecurrenceType = "biweekly"
	RecurrenceMonthly  RecurrenceType = "monthly"
)

// Meeting represents one scheduled meeting occurrence. Recurring meetings are
// stored as materialized rows sharing a SeriesID; a standalone meeting has a
// nil SeriesID and nil series fields.
type Meeting struct {
	ID          string    `gorm:"primaryKey;size:50" json:"id"`
	GroupID     string    `gorm:"size:50;not null;index" json:"group_id"`
	Title       string    `gorm:"size:120;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:255" json:"location"`
	Timezone    string    `gorm:"size:64" json:"timezone"` // display label only, dates are stored UTC
	DateTime    time.Time `gorm:"not null;index" json:"date_time"`
	SeriesID    *string   `gorm:"size:50;index" json:"series_id"`
	SeriesIndex *int      `json:"series_index"` // 1-based position within the series
	SeriesTotal *int      `json:"series_total"` // series size at creation time
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// IsPartOfSeries reports whether this occurrence belongs to a recurring series
func (m *Meeting) IsPartOfSeries() bool {
	return m.SeriesID != nil
}

// BeforeCreate hook is called before creating a new meeting
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Meeting model
func (Meeting) TableName() string {
	return "meeting"
}

// CreateMeetingRequest represents the data needed to schedule a meeting or a series
type CreateMeetingRequest struct {
	GroupID        string         `json:"group_id" binding:"required"`
	Title          string         `json:"title" binding:"required,max=120"`
	Description    string         `json:"description"`
	Location       string         `json:"location"`
	PlaceID        string         `json:"place_id"`
	Timezone       string         `json:"timezone"`
	DateTime       time.Time      `json:"date_time" binding:"required"`
	RecurrenceType RecurrenceType `json:"recurrence_type" binding:"required,oneof=none weekly biweekly monthly"`
	Occurrences    int            `json:"occurrences" binding:"omitempty,min=1,max=52"`
	Attendees      []string       `json:"attendees"`
}
