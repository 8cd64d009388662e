package database

import (
	"errors"
	"fmt"
	"time"

	"huddle/internal/models"
	"huddle/internal/schedule"

	"gorm.io/gorm"
)

// AttendanceStore is the GORM-backed implementation of the engine's
// attendance ledger contract.
type AttendanceStore struct {
	db *gorm.DB
}

// NewAttendanceStore creates an attendance store over the given connection
func NewAttendanceStore(db *gorm.DB) *AttendanceStore {
	return &AttendanceStore{db: db}
}

// RecordsForMeetings returns all attendee records for a set of occurrence ids
func (s *AttendanceStore) RecordsForMeetings(meetingIDs []string) ([]models.AttendeeRecord, error) {
	var records []models.AttendeeRecord
	if len(meetingIDs) == 0 {
		return records, nil
	}
	if err := s.db.Where("meeting_id IN ?", meetingIDs).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attendee records: %w", err)
	}
	return records, nil
}

// RecordFor returns the record for one (occurrence, attendee) pair
func (s *AttendanceStore) RecordFor(meetingID, username string) (*models.AttendeeRecord, error) {
	var record models.AttendeeRecord
	if err := s.db.Where("meeting_id = ? AND username = ?", meetingID, username).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &schedule.NotFoundError{Kind: "attendee record", ID: username}
		}
		return nil, fmt.Errorf("failed to fetch attendee record: %w", err)
	}
	return &record, nil
}

// CreateRecords persists a batch of attendee records
func (s *AttendanceStore) CreateRecords(records []models.AttendeeRecord) error {
	return s.db.Create(&records).Error
}

// SetRecordStatus rewrites one record's status and scope flag, leaving the
// response time untouched
func (s *AttendanceStore) SetRecordStatus(id uint, status models.RSVPStatus, isSeriesRSVP bool) error {
	return s.db.Model(&models.AttendeeRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"is_series_rsvp": isSeriesRSVP,
			"updated_at":     time.Now(),
		}).Error
}

// RecordResponse rewrites one record's status, scope flag, and response time
func (s *AttendanceStore) RecordResponse(id uint, status models.RSVPStatus, isSeriesRSVP bool, respondedAt time.Time) error {
	return s.db.Model(&models.AttendeeRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"is_series_rsvp": isSeriesRSVP,
			"responded_at":   respondedAt,
			"updated_at":     time.Now(),
		}).Error
}

// RecordSeriesResponse batch-updates one attendee's records across a set of
// occurrence ids, marking them series-scoped
func (s *AttendanceStore) RecordSeriesResponse(username string, meetingIDs []string, status models.RSVPStatus, respondedAt time.Time) (int64, error) {
	if len(meetingIDs) == 0 {
		return 0, nil
	}
	result := s.db.Model(&models.AttendeeRecord{}).
		Where("username = ? AND meeting_id IN ?", username, meetingIDs).
		Updates(map[string]interface{}{
			"status":         status,
			"is_series_rsvp": true,
			"responded_at":   respondedAt,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update attendee records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
