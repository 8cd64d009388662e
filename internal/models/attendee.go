package models

import "time"

// RSVPStatus represents an attendee's response to a meeting
type RSVPStatus string

const (
	StatusInvited  RSVPStatus = "invited"
	StatusAccepted RSVPStatus = "accepted"
	StatusDeclined RSVPStatus = "declined"
	StatusMaybe    RSVPStatus = "maybe"
)

// AttendeeRecord represents one attendee's relationship to one meeting
// occurrence. IsSeriesRSVP marks the status as the attendee's standing
// preference for the whole series rather than a response for this date only.
type AttendeeRecord struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MeetingID    string     `gorm:"size:50;not null;uniqueIndex:idx_attendee_meeting_user" json:"meeting_id"`
	Username     string     `gorm:"size:30;not null;uniqueIndex:idx_attendee_meeting_user;index" json:"username"`
	Status       RSVPStatus `gorm:"size:10;not null;default:'invited'" json:"status"`
	IsSeriesRSVP bool       `gorm:"not null;default:false" json:"is_series_rsvp"`
	RespondedAt  *time.Time `json:"responded_at"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the AttendeeRecord model
func (AttendeeRecord) TableName() string {
	return "attendee_record"
}

// RSVPRequest represents a response to a single meeting or a whole series
type RSVPRequest struct {
	Status RSVPStatus `json:"status" binding:"required,oneof=accepted declined maybe"`
}
