package database

import (
	"errors"
	"fmt"
	"time"

	"huddle/internal/models"

	"gorm.io/gorm"
)

// TokenStore is the GORM-backed implementation of the reminder token
// lifecycle's persistence contract.
type TokenStore struct {
	db *gorm.DB
}

// NewTokenStore creates a token store over the given connection
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// CreateToken persists a new reminder token
func (s *TokenStore) CreateToken(token *models.ReminderToken) error {
	return s.db.Create(token).Error
}

// TokenByValue resolves a token string; a missing token returns (nil, nil)
func (s *TokenStore) TokenByValue(token string) (*models.ReminderToken, error) {
	var row models.ReminderToken
	if err := s.db.Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch token: %w", err)
	}
	return &row, nil
}

// TokenForMeeting returns the token issued for a meeting, if any
func (s *TokenStore) TokenForMeeting(meetingID string) (*models.ReminderToken, error) {
	var row models.ReminderToken
	if err := s.db.Where("meeting_id = ?", meetingID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch token for meeting: %w", err)
	}
	return &row, nil
}

// MarkReminderSent records when the confirmation request went to the leader
func (s *TokenStore) MarkReminderSent(id uint, at time.Time) error {
	return s.db.Model(&models.ReminderToken{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at).Error
}

// ConfirmIfUnconfirmed claims the token with a single conditional UPDATE
// keyed on confirmed_at still being null, so two racing confirmations cannot
// both succeed
func (s *TokenStore) ConfirmIfUnconfirmed(id uint, at time.Time, customDescription, customMessage string) (bool, error) {
	result := s.db.Model(&models.ReminderToken{}).
		Where("id = ? AND confirmed_at IS NULL", id).
		Updates(map[string]interface{}{
			"confirmed_at":       at,
			"custom_description": customDescription,
			"custom_message":     customMessage,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to confirm token: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ReleaseConfirmation clears confirmed_at so the token becomes confirmable
// again after a downstream send failure
func (s *TokenStore) ReleaseConfirmation(id uint) error {
	return s.db.Model(&models.ReminderToken{}).
		Where("id = ?", id).
		Update("confirmed_at", nil).Error
}

// MarkAttendeeEmailSent records when the attendee email actually went out
func (s *TokenStore) MarkAttendeeEmailSent(id uint, at time.Time) error {
	return s.db.Model(&models.ReminderToken{}).
		Where("id = ?", id).
		Update("attendee_email_sent_at", at).Error
}

// DeleteExpiredUnconfirmed purges tokens that expired before the cutoff
// without ever being confirmed
func (s *TokenStore) DeleteExpiredUnconfirmed(before time.Time) (int64, error) {
	result := s.db.Where("expires_at < ? AND confirmed_at IS NULL", before).
		Delete(&models.ReminderToken{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}
