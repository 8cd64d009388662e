package reminders

import (
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"huddle/internal/models"
)

// fakeTokenStore is an in-memory TokenStore whose conditional confirm
// mirrors the production store's single conditional write.
type fakeTokenStore struct {
	rows   map[uint]*models.ReminderToken
	nextID uint
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{rows: make(map[uint]*models.ReminderToken), nextID: 1}
}

func (s *fakeTokenStore) CreateToken(token *models.ReminderToken) error {
	token.ID = s.nextID
	s.nextID++
	row := *token
	s.rows[token.ID] = &row
	return nil
}

func (s *fakeTokenStore) TokenByValue(token string) (*models.ReminderToken, error) {
	for _, row := range s.rows {
		if row.Token == token {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeTokenStore) TokenForMeeting(meetingID string) (*models.ReminderToken, error) {
	for _, row := range s.rows {
		if row.MeetingID == meetingID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeTokenStore) MarkReminderSent(id uint, at time.Time) error {
	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("no such token %d", id)
	}
	row.ReminderSentAt = &at
	return nil
}

func (s *fakeTokenStore) ConfirmIfUnconfirmed(id uint, at time.Time, customDescription, customMessage string) (bool, error) {
	row, ok := s.rows[id]
	if !ok {
		return false, fmt.Errorf("no such token %d", id)
	}
	if row.ConfirmedAt != nil {
		return false, nil
	}
	row.ConfirmedAt = &at
	row.CustomDescription = customDescription
	row.CustomMessage = customMessage
	return true, nil
}

func (s *fakeTokenStore) ReleaseConfirmation(id uint) error {
	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("no such token %d", id)
	}
	row.ConfirmedAt = nil
	return nil
}

func (s *fakeTokenStore) MarkAttendeeEmailSent(id uint, at time.Time) error {
	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("no such token %d", id)
	}
	row.AttendeeEmailSentAt = &at
	return nil
}

func (s *fakeTokenStore) DeleteExpiredUnconfirmed(before time.Time) (int64, error) {
	var purged int64
	for id, row := range s.rows {
		if row.ExpiresAt.Before(before) && row.ConfirmedAt == nil {
			delete(s.rows, id)
			purged++
		}
	}
	return purged, nil
}

func newTestLifecycle(anchor time.Time) (*Lifecycle, *fakeTokenStore) {
	store := newFakeTokenStore()
	lifecycle := NewLifecycle(store)
	lifecycle.now = func() time.Time { return anchor }
	return lifecycle, store
}

func TestIssue(t *testing.T) {
	anchor := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, _ := newTestLifecycle(anchor)

	token, err := lifecycle.Issue("m1", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if len(token.Token) != 64 {
		t.Errorf("token length = %d, want 64", len(token.Token))
	}
	if _, err := hex.DecodeString(token.Token); err != nil {
		t.Errorf("token is not hex: %v", err)
	}
	if !token.ExpiresAt.Equal(anchor.Add(7 * 24 * time.Hour)) {
		t.Errorf("expires_at = %v, want now + 7 days", token.ExpiresAt)
	}
	if token.ReminderSentAt != nil || token.ConfirmedAt != nil {
		t.Errorf("fresh token carries sent/confirmed timestamps")
	}

	// A second token must not collide.
	other, err := lifecycle.Issue("m2", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if other.Token == token.Token {
		t.Error("two issued tokens share the same value")
	}
}

func TestMarkSentIsIdempotent(t *testing.T) {
	anchor := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, store := newTestLifecycle(anchor)

	token, err := lifecycle.Issue("m1", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if err := lifecycle.MarkSent(token); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	first := *token.ReminderSentAt

	lifecycle.now = func() time.Time { return anchor.Add(time.Hour) }
	if err := lifecycle.MarkSent(token); err != nil {
		t.Fatalf("MarkSent again: %v", err)
	}
	if !token.ReminderSentAt.Equal(first) {
		t.Errorf("reminder_sent_at moved on repeat call")
	}
	if !store.rows[token.ID].ReminderSentAt.Equal(first) {
		t.Errorf("stored reminder_sent_at moved on repeat call")
	}
}

func TestValidateOrdering(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, _ := newTestLifecycle(now)

	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)
	confirmed := now.Add(-30 * time.Minute)

	cases := []struct {
		name        string
		token       *models.ReminderToken
		meetingDate time.Time
		want        Verdict
	}{
		{
			name: "missing token",
			want: VerdictNotFound,
		},
		{
			name:        "usable token",
			token:       &models.ReminderToken{ExpiresAt: now.Add(time.Hour)},
			meetingDate: future,
			want:        VerdictOK,
		},
		{
			name:        "expired",
			token:       &models.ReminderToken{ExpiresAt: past},
			meetingDate: future,
			want:        VerdictExpired,
		},
		{
			// Expiry is checked before confirmation: an expired token
			// reports expired even if it was also confirmed.
			name:        "expired and confirmed",
			token:       &models.ReminderToken{ExpiresAt: past, ConfirmedAt: &confirmed},
			meetingDate: future,
			want:        VerdictExpired,
		},
		{
			name:        "already confirmed",
			token:       &models.ReminderToken{ExpiresAt: now.Add(time.Hour), ConfirmedAt: &confirmed},
			meetingDate: future,
			want:        VerdictAlreadyConfirmed,
		},
		{
			// Confirmation is checked before the meeting date.
			name:        "confirmed and meeting passed",
			token:       &models.ReminderToken{ExpiresAt: now.Add(time.Hour), ConfirmedAt: &confirmed},
			meetingDate: past,
			want:        VerdictAlreadyConfirmed,
		},
		{
			name:        "meeting passed",
			token:       &models.ReminderToken{ExpiresAt: now.Add(time.Hour)},
			meetingDate: past,
			want:        VerdictMeetingPassed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lifecycle.Validate(tc.token, tc.meetingDate); got != tc.want {
				t.Errorf("Validate = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestConfirmIsSingleUse(t *testing.T) {
	anchor := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, _ := newTestLifecycle(anchor)
	meetingDate := anchor.Add(48 * time.Hour)

	token, err := lifecycle.Issue("m1", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	verdict, err := lifecycle.Confirm(token, meetingDate, "agenda", "see you there")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if verdict != VerdictOK {
		t.Fatalf("first confirm = %s, want ok", verdict)
	}
	if token.ConfirmedAt == nil || token.CustomDescription != "agenda" {
		t.Errorf("confirm did not record fields: %+v", token)
	}

	verdict, err = lifecycle.Confirm(token, meetingDate, "", "")
	if err != nil {
		t.Fatalf("second Confirm: %v", err)
	}
	if verdict != VerdictAlreadyConfirmed {
		t.Errorf("second confirm = %s, want already_confirmed", verdict)
	}
}

func TestConfirmLosesRaceToConcurrentConfirmation(t *testing.T) {
	anchor := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, _ := newTestLifecycle(anchor)
	meetingDate := anchor.Add(48 * time.Hour)

	token, err := lifecycle.Issue("m1", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Two requests read the token before either confirms. The first
	// claims the row; the second passes validation on its stale read but
	// must be rejected by the conditional write.
	staleRead, err := lifecycle.Lookup(token.Token)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if verdict, err := lifecycle.Confirm(token, meetingDate, "", ""); err != nil || verdict != VerdictOK {
		t.Fatalf("first confirm = %s, %v", verdict, err)
	}

	verdict, err := lifecycle.Confirm(staleRead, meetingDate, "", "")
	if err != nil {
		t.Fatalf("racing Confirm: %v", err)
	}
	if verdict != VerdictAlreadyConfirmed {
		t.Errorf("racing confirm = %s, want already_confirmed", verdict)
	}
}

func TestRollbackMakesTokenConfirmableAgain(t *testing.T) {
	anchor := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, store := newTestLifecycle(anchor)
	meetingDate := anchor.Add(48 * time.Hour)

	token, err := lifecycle.Issue("m1", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if verdict, err := lifecycle.Confirm(token, meetingDate, "", ""); err != nil || verdict != VerdictOK {
		t.Fatalf("confirm = %s, %v", verdict, err)
	}

	// The downstream send failed; the token must become usable again.
	if err := lifecycle.Rollback(token); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if token.ConfirmedAt != nil || store.rows[token.ID].ConfirmedAt != nil {
		t.Fatal("rollback left confirmed_at set")
	}

	verdict, err := lifecycle.Confirm(token, meetingDate, "", "")
	if err != nil {
		t.Fatalf("re-confirm: %v", err)
	}
	if verdict != VerdictOK {
		t.Errorf("re-confirm after rollback = %s, want ok", verdict)
	}
}

func TestDeleteExpiredUnconfirmed(t *testing.T) {
	anchor := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	lifecycle, store := newTestLifecycle(anchor)
	meetingDate := anchor.Add(48 * time.Hour)

	expired, err := lifecycle.Issue("m1", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	kept, err := lifecycle.Issue("m2", "leader")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if verdict, err := lifecycle.Confirm(kept, meetingDate, "", ""); err != nil || verdict != VerdictOK {
		t.Fatalf("confirm = %s, %v", verdict, err)
	}

	purged, err := store.DeleteExpiredUnconfirmed(anchor.Add(8 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("DeleteExpiredUnconfirmed: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
	if _, ok := store.rows[expired.ID]; ok {
		t.Error("expired unconfirmed token survived the purge")
	}
	if _, ok := store.rows[kept.ID]; !ok {
		t.Error("confirmed token was purged")
	}
}
