package schedule

import (
	"fmt"
	"time"

	"huddle/internal/models"
)

// MaxOccurrences bounds the number of occurrences a recurring series may be
// created with.
const MaxOccurrences = 52

// GenerateOccurrenceDates expands a start date into the ordered date sequence
// for a series. RecurrenceNone always yields exactly the start date,
// regardless of count. Monthly recurrence uses calendar month arithmetic:
// day-of-month carries over with Go's native normalization on short months
// (Jan 31 + 1 month lands in early March), which is accepted as-is.
func GenerateOccurrenceDates(start time.Time, recurrence models.RecurrenceType, count int) ([]time.Time, error) {
	if recurrence == models.RecurrenceNone {
		return []time.Time{start}, nil
	}

	if count < 1 || count > MaxOccurrences {
		return nil, &ValidationError{Reason: fmt.Sprintf("occurrence count must be between 1 and %d, got %d", MaxOccurrences, count)}
	}

	dates := make([]time.Time, 0, count)
	switch recurrence {
	case models.RecurrenceWeekly:
		for i := 0; i < count; i++ {
			dates = append(dates, start.AddDate(0, 0, 7*i))
		}
	case models.RecurrenceBiweekly:
		for i := 0; i < count; i++ {
			dates = append(dates, start.AddDate(0, 0, 14*i))
		}
	case models.RecurrenceMonthly:
		for i := 0; i < count; i++ {
			dates = append(dates, start.AddDate(0, i, 0))
		}
	default:
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown recurrence type %q", recurrence)}
	}

	return dates, nil
}

// InferInterval returns the gap between two occurrences. Callers use it on
// the first two occurrences of a series to learn "one recurrence interval"
// without re-deriving the original recurrence type.
func InferInterval(a, b models.Meeting) time.Duration {
	return b.DateTime.Sub(a.DateTime)
}
