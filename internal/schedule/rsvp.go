package schedule

import (
	"fmt"

	"huddle/internal/models"
)

// RSVPSingleOccurrence records an attendee's response for one specific dated
// occurrence. The record becomes occurrence-scoped regardless of prior state.
func (e *Engine) RSVPSingleOccurrence(meetingID, username string, status models.RSVPStatus) (*models.AttendeeRecord, error) {
	record, err := e.ledger.RecordFor(meetingID, username)
	if err != nil {
		return nil, err
	}

	respondedAt := e.now()
	if err := e.ledger.RecordResponse(record.ID, status, false, respondedAt); err != nil {
		return nil, fmt.Errorf("failed to record response: %w", err)
	}

	record.Status = status
	record.IsSeriesRSVP = false
	record.RespondedAt = &respondedAt
	return record, nil
}

// RSVPWholeSeries records an attendee's standing preference across every
// occurrence of a series. This is the operation that seeds the series
// preferences the skip reconciliation later reads.
func (e *Engine) RSVPWholeSeries(seriesID, username string, status models.RSVPStatus) (int64, error) {
	series, err := e.meetings.SeriesMeetings(seriesID)
	if err != nil {
		return 0, fmt.Errorf("failed to load series: %w", err)
	}
	if len(series) == 0 {
		return 0, &NotFoundError{Kind: "series", ID: seriesID}
	}

	meetingIDs := make([]string, 0, len(series))
	for _, occ := range series {
		meetingIDs = append(meetingIDs, occ.ID)
	}

	updated, err := e.ledger.RecordSeriesResponse(username, meetingIDs, status, e.now())
	if err != nil {
		return 0, fmt.Errorf("failed to record series response: %w", err)
	}
	if updated == 0 {
		return 0, &NotFoundError{Kind: "attendee", ID: username}
	}
	return updated, nil
}
