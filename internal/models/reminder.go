package models

import "time"

// ReminderToken is a single-use authorization artifact gating one reminder
// send. A token is usable only while ExpiresAt is in the future and
// ConfirmedAt is null; ConfirmedAt is set at most once per token.
type ReminderToken struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MeetingID           string     `gorm:"size:50;not null;index" json:"meeting_id"`
	LeaderUsername      string     `gorm:"size:30;not null" json:"leader_username"`
	Token               string     `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt           time.Time  `gorm:"not null" json:"expires_at"`
	ReminderSentAt      *time.Time `json:"reminder_sent_at"`
	ConfirmedAt         *time.Time `json:"confirmed_at"`
	AttendeeEmailSentAt *time.Time `json:"attendee_email_sent_at"`
	CustomDescription   string     `gorm:"type:text" json:"custom_description"`
	CustomMessage       string     `gorm:"type:text" json:"custom_message"`
	CreatedAt           time.Time  `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the ReminderToken model
func (ReminderToken) TableName() string {
	return "reminder_token"
}

// ConfirmReminderRequest carries the optional overrides a leader can attach
// when confirming a reminder
type ConfirmReminderRequest struct {
	CustomDescription string `json:"custom_description" binding:"max=2000"`
	CustomMessage     string `json:"custom_message" binding:"max=2000"`
}
