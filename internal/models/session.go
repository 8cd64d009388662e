package models

import "time"

// Session represents an authenticated browser session. Rows are written by
// the identity service at login; this server only validates them.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Username  string    `gorm:"size:30;not null;index" json:"username"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "session"
}
