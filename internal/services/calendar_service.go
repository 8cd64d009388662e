package services

import (
	"fmt"
	"time"

	"huddle/internal/models"

	ics "github.com/arran4/golang-ical"
)

// defaultMeetingDuration is used for VEVENT end times; meetings store a
// start instant only.
const defaultMeetingDuration = time.Hour

// BuildGroupCalendar renders a group's meetings as an iCalendar feed.
// Recurring series are emitted as concrete dated VEVENTs, one per stored
// occurrence, matching the materialized-series model — no RRULEs.
func BuildGroupCalendar(group models.Group, meetings []models.Meeting) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//huddle//meeting feed//EN")
	cal.SetName(group.Name)

	for _, meeting := range meetings {
		event := cal.AddEvent(fmt.Sprintf("%s@huddle", meeting.ID))
		event.SetCreatedTime(meeting.CreatedAt)
		event.SetModifiedAt(meeting.UpdatedAt)
		event.SetStartAt(meeting.DateTime)
		event.SetEndAt(meeting.DateTime.Add(defaultMeetingDuration))

		summary := meeting.Title
		if meeting.SeriesIndex != nil && meeting.SeriesTotal != nil {
			summary = fmt.Sprintf("%s (%d/%d)", meeting.Title, *meeting.SeriesIndex, *meeting.SeriesTotal)
		}
		event.SetSummary(summary)

		if meeting.Description != "" {
			event.SetDescription(meeting.Description)
		}
		if meeting.Location != "" {
			event.SetLocation(meeting.Location)
		}
	}

	return cal.Serialize()
}
