package database

import (
	"errors"
	"fmt"
	"time"

	"huddle/internal/models"
	"huddle/internal/schedule"

	"gorm.io/gorm"
)

// MeetingStore is the GORM-backed implementation of the engine's meeting
// access contract.
type MeetingStore struct {
	db *gorm.DB
}

// NewMeetingStore creates a meeting store over the given connection
func NewMeetingStore(db *gorm.DB) *MeetingStore {
	return &MeetingStore{db: db}
}

// MeetingByID returns one occurrence by id
func (s *MeetingStore) MeetingByID(id string) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := s.db.Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &schedule.NotFoundError{Kind: "meeting", ID: id}
		}
		return nil, fmt.Errorf("failed to fetch meeting: %w", err)
	}
	return &meeting, nil
}

// SeriesMeetings returns every occurrence of a series ordered by series index
func (s *MeetingStore) SeriesMeetings(seriesID string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := s.db.Where("series_id = ?", seriesID).
		Order("series_index ASC").
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch series: %w", err)
	}
	return meetings, nil
}

// GroupMeetings returns every meeting of a group ordered by date
func (s *MeetingStore) GroupMeetings(groupID string) ([]models.Meeting, error) {
	var meetings []models.Meeting
	if err := s.db.Where("group_id = ?", groupID).
		Order("date_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch group meetings: %w", err)
	}
	return meetings, nil
}

// CreateMeetings persists a batch of occurrences
func (s *MeetingStore) CreateMeetings(meetings []models.Meeting) error {
	return s.db.Create(&meetings).Error
}

// UpdateMeetingDate rewrites one occurrence's date
func (s *MeetingStore) UpdateMeetingDate(id string, date time.Time) error {
	return s.db.Model(&models.Meeting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"date_time":  date,
			"updated_at": time.Now(),
		}).Error
}

// DeleteSeries removes every occurrence of a series along with its attendee
// records
func (s *MeetingStore) DeleteSeries(seriesID string) error {
	var meetingIDs []string
	if err := s.db.Model(&models.Meeting{}).
		Where("series_id = ?", seriesID).
		Pluck("id", &meetingIDs).Error; err != nil {
		return fmt.Errorf("failed to resolve series occurrences: %w", err)
	}

	if len(meetingIDs) > 0 {
		if err := s.db.Where("meeting_id IN ?", meetingIDs).
			Delete(&models.AttendeeRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete attendee records: %w", err)
		}
	}

	return s.db.Where("series_id = ?", seriesID).Delete(&models.Meeting{}).Error
}
