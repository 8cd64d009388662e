package models

import "time"

// Account represents a user account. Accounts are provisioned by the
// identity service; this server only reads them for display names and
// email delivery.
type Account struct {
	Username  string    `gorm:"primaryKey;size:30;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName  string    `gorm:"size:100" json:"full_name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "account"
}
