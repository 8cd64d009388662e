package schedule

import (
	"time"

	"huddle/internal/models"
)

// MeetingStore is the access contract the engine requires from meeting
// persistence. Implementations provide per-row atomicity only; the engine
// never assumes cross-row transactions.
type MeetingStore interface {
	// MeetingByID returns the occurrence, or a NotFoundError.
	MeetingByID(id string) (*models.Meeting, error)
	// SeriesMeetings returns every occurrence of a series ordered by
	// ascending series index.
	SeriesMeetings(seriesID string) ([]models.Meeting, error)
	// GroupMeetings returns every meeting of a group ordered by date.
	GroupMeetings(groupID string) ([]models.Meeting, error)
	// CreateMeetings persists a batch of occurrences.
	CreateMeetings(meetings []models.Meeting) error
	// UpdateMeetingDate rewrites one occurrence's date.
	UpdateMeetingDate(id string, date time.Time) error
	// DeleteSeries removes every occurrence of a series and its
	// attendee records.
	DeleteSeries(seriesID string) error
}

// AttendanceLedger is the access contract for per-occurrence, per-attendee
// RSVP records.
type AttendanceLedger interface {
	// RecordsForMeetings returns all records for a set of occurrence ids.
	RecordsForMeetings(meetingIDs []string) ([]models.AttendeeRecord, error)
	// RecordFor returns the record for one (occurrence, attendee) pair,
	// or a NotFoundError.
	RecordFor(meetingID, username string) (*models.AttendeeRecord, error)
	// CreateRecords persists a batch of attendee records.
	CreateRecords(records []models.AttendeeRecord) error
	// SetRecordStatus rewrites one record's status and scope flag,
	// leaving responded_at untouched.
	SetRecordStatus(id uint, status models.RSVPStatus, isSeriesRSVP bool) error
	// RecordResponse rewrites one record's status, scope flag, and
	// response time together.
	RecordResponse(id uint, status models.RSVPStatus, isSeriesRSVP bool, respondedAt time.Time) error
	// RecordSeriesResponse batch-updates one attendee's records across a
	// set of occurrence ids, marking them series-scoped, and returns the
	// number of rows touched.
	RecordSeriesResponse(username string, meetingIDs []string, status models.RSVPStatus, respondedAt time.Time) (int64, error)
}

// DateChange describes one occurrence date shift.
type DateChange struct {
	MeetingID string    `json:"meeting_id"`
	OldDate   time.Time `json:"old_date"`
	NewDate   time.Time `json:"new_date"`
}

// AttendeeChange describes one attendee record rewrite.
type AttendeeChange struct {
	RecordID     uint              `json:"record_id"`
	MeetingID    string            `json:"meeting_id"`
	Username     string            `json:"username"`
	OldStatus    models.RSVPStatus `json:"old_status"`
	NewStatus    models.RSVPStatus `json:"new_status"`
	IsSeriesRSVP bool              `json:"is_series_rsvp"`
}

// ChangeSet is the explicit description of everything a skip changed. Any
// caller (UI state, a server cache, a batch job) can apply it without this
// engine assuming a shared mutable meeting list.
type ChangeSet struct {
	SeriesID   string           `json:"series_id"`
	IntervalMs int64            `json:"interval_ms"`
	Dates      []DateChange     `json:"dates"`
	Attendees  []AttendeeChange `json:"attendees"`
}

// Engine implements series generation, the skip algorithm, and the RSVP
// operations over the store contracts.
type Engine struct {
	meetings MeetingStore
	ledger   AttendanceLedger
	now      func() time.Time
}

// NewEngine constructs an Engine over the given stores.
func NewEngine(meetings MeetingStore, ledger AttendanceLedger) *Engine {
	return &Engine{
		meetings: meetings,
		ledger:   ledger,
		now:      time.Now,
	}
}
