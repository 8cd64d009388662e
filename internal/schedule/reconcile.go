package schedule

import (
	"fmt"

	"huddle/internal/models"
)

// SkipMeeting shifts the given occurrence and every later occurrence of its
// series forward by one recurrence interval, reconciling attendee statuses
// along the way. Earlier occurrences are untouched.
//
// The interval is always inferred from the series' first two occurrences,
// regardless of which occurrence is being skipped. For each shifted
// occurrence, an occurrence-scoped response is replaced by the attendee's
// series-level preference when one exists anywhere in the series (the
// earliest occurrence wins), and reset to invited otherwise; series-scoped
// responses carry forward untouched.
//
// Writes are applied sequentially in ascending series index order. A store
// failure halts the loop: occurrences already processed keep their new date
// and reconciled records, later ones are untouched, and the error is
// returned without any rollback.
func (e *Engine) SkipMeeting(meetingID string) (*ChangeSet, error) {
	meeting, err := e.meetings.MeetingByID(meetingID)
	if err != nil {
		return nil, err
	}
	if !meeting.IsPartOfSeries() {
		return nil, &ValidationError{Reason: "standalone meetings cannot be skipped"}
	}

	series, err := e.meetings.SeriesMeetings(*meeting.SeriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}
	if len(series) < 2 {
		return nil, &StateConflictError{Reason: "series frequency undetermined: series has fewer than 2 occurrences"}
	}

	interval := InferInterval(series[0], series[1])

	meetingIDs := make([]string, 0, len(series))
	for _, occ := range series {
		meetingIDs = append(meetingIDs, occ.ID)
	}
	records, err := e.ledger.RecordsForMeetings(meetingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendee records: %w", err)
	}
	recordsByMeeting := groupRecordsByMeeting(records)

	preferences := collectSeriesPreferences(series, recordsByMeeting)

	changes := &ChangeSet{
		SeriesID:   *meeting.SeriesID,
		IntervalMs: interval.Milliseconds(),
	}

	for _, occ := range series {
		if occ.SeriesIndex == nil || *occ.SeriesIndex < *meeting.SeriesIndex {
			continue
		}

		newDate := occ.DateTime.Add(interval)
		if err := e.meetings.UpdateMeetingDate(occ.ID, newDate); err != nil {
			return nil, fmt.Errorf("failed to shift occurrence %s: %w", occ.ID, err)
		}
		changes.Dates = append(changes.Dates, DateChange{
			MeetingID: occ.ID,
			OldDate:   occ.DateTime,
			NewDate:   newDate,
		})

		for _, record := range recordsByMeeting[occ.ID] {
			if record.IsSeriesRSVP {
				// A series-wide commitment already holds for the
				// shifted date.
				continue
			}

			newStatus, isSeries := models.StatusInvited, false
			if preferred, ok := preferences[record.Username]; ok {
				newStatus, isSeries = preferred, true
			}

			if err := e.ledger.SetRecordStatus(record.ID, newStatus, isSeries); err != nil {
				return nil, fmt.Errorf("failed to reconcile attendee %s on occurrence %s: %w", record.Username, occ.ID, err)
			}
			changes.Attendees = append(changes.Attendees, AttendeeChange{
				RecordID:     record.ID,
				MeetingID:    occ.ID,
				Username:     record.Username,
				OldStatus:    record.Status,
				NewStatus:    newStatus,
				IsSeriesRSVP: isSeries,
			})
		}
	}

	return changes, nil
}

// collectSeriesPreferences folds over the series in ascending index order and
// records, for each attendee, the first series-scoped status found. The fold
// order is the precedence rule: a preference recorded on an earlier
// occurrence wins over one recorded later.
func collectSeriesPreferences(series []models.Meeting, recordsByMeeting map[string][]models.AttendeeRecord) map[string]models.RSVPStatus {
	preferences := make(map[string]models.RSVPStatus)
	for _, occ := range series {
		for _, record := range recordsByMeeting[occ.ID] {
			if !record.IsSeriesRSVP {
				continue
			}
			if _, seen := preferences[record.Username]; seen {
				continue
			}
			preferences[record.Username] = record.Status
		}
	}
	return preferences
}

func groupRecordsByMeeting(records []models.AttendeeRecord) map[string][]models.AttendeeRecord {
	grouped := make(map[string][]models.AttendeeRecord)
	for _, record := range records {
		grouped[record.MeetingID] = append(grouped[record.MeetingID], record)
	}
	return grouped
}
