package auth

import (
	"fmt"
	"huddle/internal/database"
	"huddle/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// SessionCookieName is the name of the cookie that stores the session ID
	SessionCookieName = "huddle_session"
)

// GetSession retrieves the current session from the request. Sessions are
// written by the identity service; this server only reads and validates them.
func GetSession(c *gin.Context) (*models.Session, error) {
	// Get the session ID from the cookie
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, fmt.Errorf("session cookie not found: %w", err)
	}

	// Get the session from the database
	db := database.GetDB()
	var session models.Session
	if err := db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to retrieve session: %w", err)
	}

	// Check if the session has expired
	if session.IsExpired() {
		return nil, fmt.Errorf("session expired")
	}

	return &session, nil
}
