package schedule

import (
	"fmt"

	"huddle/internal/models"

	"github.com/google/uuid"
)

// CreateSeries expands a meeting request into dated occurrences, persists
// them, and seeds an invited attendee record for every attendee on every
// occurrence. A RecurrenceNone request produces a single standalone meeting
// with nil series fields.
func (e *Engine) CreateSeries(req models.CreateMeetingRequest) ([]models.Meeting, error) {
	count := req.Occurrences
	if req.RecurrenceType == models.RecurrenceNone {
		count = 1
	}

	dates, err := GenerateOccurrenceDates(req.DateTime, req.RecurrenceType, count)
	if err != nil {
		return nil, err
	}

	var seriesID *string
	if req.RecurrenceType != models.RecurrenceNone {
		id := uuid.NewString()
		seriesID = &id
	}

	total := len(dates)
	meetings := make([]models.Meeting, 0, total)
	for i, date := range dates {
		meeting := models.Meeting{
			ID:          uuid.NewString(),
			GroupID:     req.GroupID,
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			Timezone:    req.Timezone,
			DateTime:    date,
			SeriesID:    seriesID,
		}
		if seriesID != nil {
			index := i + 1
			seriesTotal := total
			meeting.SeriesIndex = &index
			meeting.SeriesTotal = &seriesTotal
		}
		meetings = append(meetings, meeting)
	}

	if err := e.meetings.CreateMeetings(meetings); err != nil {
		return nil, fmt.Errorf("failed to create meetings: %w", err)
	}

	if len(req.Attendees) > 0 {
		records := make([]models.AttendeeRecord, 0, len(meetings)*len(req.Attendees))
		for _, meeting := range meetings {
			for _, username := range req.Attendees {
				records = append(records, models.AttendeeRecord{
					MeetingID:    meeting.ID,
					Username:     username,
					Status:       models.StatusInvited,
					IsSeriesRSVP: false,
				})
			}
		}
		if err := e.ledger.CreateRecords(records); err != nil {
			return nil, fmt.Errorf("failed to seed attendee records: %w", err)
		}
	}

	return meetings, nil
}

// DeleteSeries removes every occurrence of a series.
func (e *Engine) DeleteSeries(seriesID string) error {
	series, err := e.meetings.SeriesMeetings(seriesID)
	if err != nil {
		return fmt.Errorf("failed to load series: %w", err)
	}
	if len(series) == 0 {
		return &NotFoundError{Kind: "series", ID: seriesID}
	}
	return e.meetings.DeleteSeries(seriesID)
}
