package reminders

import "time"

// A meeting is eligible for reminder issuance when its date falls inside a
// window 47 to 49 hours in the future at the moment the scheduler polls. The
// 2-hour width absorbs polling jitter; both bounds are inclusive.
const (
	WindowMin = 47 * time.Hour
	WindowMax = 49 * time.Hour
)

// WithinReminderWindow checks if a meeting date is inside the reminder window
func WithinReminderWindow(meetingDate, now time.Time) bool {
	lead := meetingDate.Sub(now)
	return lead >= WindowMin && lead <= WindowMax
}
