package models

import (
	"time"

	"gorm.io/datatypes"
)

// SeriesChangeLog records one skip operation as an audit row. Changes holds
// the full transformation (date shifts and attendee status changes) as JSON
// so any consumer can replay it against a cached view.
type SeriesChangeLog struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	SeriesID  string         `gorm:"size:50;not null;index" json:"series_id"`
	MeetingID string         `gorm:"size:50;not null" json:"meeting_id"` // the skipped occurrence
	Actor     string         `gorm:"size:30;not null" json:"actor"`
	Changes   datatypes.JSON `gorm:"type:jsonb" json:"changes"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name for the SeriesChangeLog model
func (SeriesChangeLog) TableName() string {
	return "series_change_log"
}
