package models

import (
	"time"

	"gorm.io/gorm"
)

// Group represents a group that holds meetings
type Group struct {
	ID             string    `gorm:"primaryKey;size:50" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	LeaderUsername string    `gorm:"size:30;not null;index" json:"leader_username"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new group
func (g *Group) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Group model
func (Group) TableName() string {
	return "group"
}

// CreateGroupRequest represents the data needed to create a new group
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}
