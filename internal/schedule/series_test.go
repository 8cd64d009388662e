package schedule

import (
	"testing"
	"time"

	"huddle/internal/models"
)

func TestCreateSeries(t *testing.T) {
	start := time.Date(2024, time.June, 3, 18, 30, 0, 0, time.UTC)

	t.Run("recurring request expands into linked occurrences", func(t *testing.T) {
		store := newFakeStore()
		engine := NewEngine(store, store)

		meetings, err := engine.CreateSeries(models.CreateMeetingRequest{
			GroupID:        "g1",
			Title:          "Weekly standup",
			DateTime:       start,
			RecurrenceType: models.RecurrenceBiweekly,
			Occurrences:    3,
			Attendees:      []string{"alice", "bob"},
		})
		if err != nil {
			t.Fatalf("CreateSeries: %v", err)
		}
		if len(meetings) != 3 {
			t.Fatalf("got %d meetings, want 3", len(meetings))
		}

		seriesID := meetings[0].SeriesID
		if seriesID == nil {
			t.Fatal("series id not set")
		}
		for i, meeting := range meetings {
			if meeting.SeriesID == nil || *meeting.SeriesID != *seriesID {
				t.Errorf("meeting %d has a different series id", i)
			}
			if meeting.SeriesIndex == nil || *meeting.SeriesIndex != i+1 {
				t.Errorf("meeting %d series index = %v, want %d", i, meeting.SeriesIndex, i+1)
			}
			if meeting.SeriesTotal == nil || *meeting.SeriesTotal != 3 {
				t.Errorf("meeting %d series total = %v, want 3", i, meeting.SeriesTotal)
			}
			want := start.AddDate(0, 0, 14*i)
			if !meeting.DateTime.Equal(want) {
				t.Errorf("meeting %d date = %v, want %v", i, meeting.DateTime, want)
			}
		}

		// Every attendee is seeded invited on every occurrence.
		for _, meeting := range meetings {
			for _, username := range []string{"alice", "bob"} {
				record := store.record(t, meeting.ID, username)
				if record.Status != models.StatusInvited || record.IsSeriesRSVP {
					t.Errorf("seeded record = %+v, want occurrence-scoped invited", record)
				}
			}
		}
	})

	t.Run("none produces a standalone meeting", func(t *testing.T) {
		store := newFakeStore()
		engine := NewEngine(store, store)

		meetings, err := engine.CreateSeries(models.CreateMeetingRequest{
			GroupID:        "g1",
			Title:          "Kickoff",
			DateTime:       start,
			RecurrenceType: models.RecurrenceNone,
			Occurrences:    10, // ignored for none
		})
		if err != nil {
			t.Fatalf("CreateSeries: %v", err)
		}
		if len(meetings) != 1 {
			t.Fatalf("got %d meetings, want 1", len(meetings))
		}
		m := meetings[0]
		if m.SeriesID != nil || m.SeriesIndex != nil || m.SeriesTotal != nil {
			t.Errorf("standalone meeting carries series fields: %+v", m)
		}
	})

	t.Run("out of range count is rejected", func(t *testing.T) {
		store := newFakeStore()
		engine := NewEngine(store, store)

		_, err := engine.CreateSeries(models.CreateMeetingRequest{
			GroupID:        "g1",
			Title:          "Too many",
			DateTime:       start,
			RecurrenceType: models.RecurrenceWeekly,
			Occurrences:    53,
		})
		if err == nil {
			t.Fatal("CreateSeries accepted 53 occurrences")
		}
		if len(store.meetings) != 0 {
			t.Errorf("meetings persisted despite validation failure")
		}
	})
}

func TestDeleteSeries(t *testing.T) {
	store := newFakeStore()
	seedWeeklySeries(t, store, "alice")
	engine := NewEngine(store, store)

	if err := engine.DeleteSeries("series-1"); err != nil {
		t.Fatalf("DeleteSeries: %v", err)
	}
	if len(store.meetings) != 0 || len(store.records) != 0 {
		t.Errorf("series not fully deleted: %d meetings, %d records", len(store.meetings), len(store.records))
	}

	if err := engine.DeleteSeries("series-1"); err == nil {
		t.Error("deleting a missing series succeeded")
	}
}
