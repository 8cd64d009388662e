package reminders

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"huddle/internal/models"
)

const (
	// TokenTTL is how long a confirmation token stays usable after issue.
	TokenTTL = 7 * 24 * time.Hour
	// tokenBytes is read from crypto/rand per token; hex-encoded this
	// yields the 64-character token string existing tokens already use.
	tokenBytes = 32
)

// Verdict is the outcome of validating a confirmation token.
type Verdict string

const (
	VerdictOK               Verdict = "ok"
	VerdictNotFound         Verdict = "not_found"
	VerdictExpired          Verdict = "expired"
	VerdictAlreadyConfirmed Verdict = "already_confirmed"
	VerdictMeetingPassed    Verdict = "meeting_passed"
)

// TokenStore is the access contract the lifecycle requires from token
// persistence. ConfirmIfUnconfirmed must be a single atomic conditional
// write keyed on confirmed_at being null, or the double-confirmation guard
// does not hold.
type TokenStore interface {
	CreateToken(token *models.ReminderToken) error
	// TokenByValue returns nil (no error) when the token does not exist.
	TokenByValue(token string) (*models.ReminderToken, error)
	// TokenForMeeting returns nil (no error) when no token exists yet.
	TokenForMeeting(meetingID string) (*models.ReminderToken, error)
	MarkReminderSent(id uint, at time.Time) error
	// ConfirmIfUnconfirmed sets confirmed_at and the content overrides
	// only if confirmed_at is still null, reporting whether the row was
	// claimed.
	ConfirmIfUnconfirmed(id uint, at time.Time, customDescription, customMessage string) (bool, error)
	// ReleaseConfirmation clears confirmed_at so the token becomes
	// confirmable again.
	ReleaseConfirmation(id uint) error
	MarkAttendeeEmailSent(id uint, at time.Time) error
	// DeleteExpiredUnconfirmed purges tokens that expired before the
	// cutoff without ever being confirmed.
	DeleteExpiredUnconfirmed(before time.Time) (int64, error)
}

// Lifecycle manages single-use, time-boxed confirmation tokens gating
// reminder delivery.
type Lifecycle struct {
	store TokenStore
	now   func() time.Time
}

// NewLifecycle constructs a Lifecycle over the given store.
func NewLifecycle(store TokenStore) *Lifecycle {
	return &Lifecycle{
		store: store,
		now:   time.Now,
	}
}

// Issue creates a token authorizing the leader to confirm one reminder for
// one meeting.
func (l *Lifecycle) Issue(meetingID, leaderUsername string) (*models.ReminderToken, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	token := &models.ReminderToken{
		MeetingID:      meetingID,
		LeaderUsername: leaderUsername,
		Token:          hex.EncodeToString(raw),
		ExpiresAt:      l.now().Add(TokenTTL),
		CreatedAt:      l.now(),
	}
	if err := l.store.CreateToken(token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return token, nil
}

// Lookup resolves a token string to its row. A missing token returns
// (nil, nil); Validate turns that into VerdictNotFound.
func (l *Lifecycle) Lookup(token string) (*models.ReminderToken, error) {
	return l.store.TokenByValue(token)
}

// MarkSent records that the confirmation request went out to the leader.
// Calling it on a token already marked sent is a no-op.
func (l *Lifecycle) MarkSent(token *models.ReminderToken) error {
	if token.ReminderSentAt != nil {
		return nil
	}
	at := l.now()
	if err := l.store.MarkReminderSent(token.ID, at); err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	token.ReminderSentAt = &at
	return nil
}

// Validate checks whether a token may still be confirmed. The checks
// short-circuit in a fixed order — not found, expired, already confirmed,
// meeting passed — so an expired token always reports expired even when it
// was also confirmed or its meeting has also passed.
func (l *Lifecycle) Validate(token *models.ReminderToken, meetingDate time.Time) Verdict {
	now := l.now()
	switch {
	case token == nil:
		return VerdictNotFound
	case now.After(token.ExpiresAt):
		return VerdictExpired
	case token.ConfirmedAt != nil:
		return VerdictAlreadyConfirmed
	case now.After(meetingDate):
		return VerdictMeetingPassed
	default:
		return VerdictOK
	}
}

// Confirm consumes a token. It re-runs validation immediately before
// mutating and then claims the row with a conditional write, so the second
// of two racing confirmations observes already_confirmed and is rejected.
func (l *Lifecycle) Confirm(token *models.ReminderToken, meetingDate time.Time, customDescription, customMessage string) (Verdict, error) {
	if verdict := l.Validate(token, meetingDate); verdict != VerdictOK {
		return verdict, nil
	}

	at := l.now()
	claimed, err := l.store.ConfirmIfUnconfirmed(token.ID, at, customDescription, customMessage)
	if err != nil {
		return "", fmt.Errorf("failed to confirm token: %w", err)
	}
	if !claimed {
		// Lost the race to a concurrent confirmation.
		return VerdictAlreadyConfirmed, nil
	}

	token.ConfirmedAt = &at
	token.CustomDescription = customDescription
	token.CustomMessage = customMessage
	return VerdictOK, nil
}

// Rollback clears a confirmation after a downstream send failure. The token
// is not spent until the full confirm-then-notify flow completes.
func (l *Lifecycle) Rollback(token *models.ReminderToken) error {
	if err := l.store.ReleaseConfirmation(token.ID); err != nil {
		return fmt.Errorf("failed to release confirmation: %w", err)
	}
	token.ConfirmedAt = nil
	return nil
}

// MarkDelivered records that the downstream attendee email went out.
func (l *Lifecycle) MarkDelivered(token *models.ReminderToken) error {
	at := l.now()
	if err := l.store.MarkAttendeeEmailSent(token.ID, at); err != nil {
		return fmt.Errorf("failed to mark attendee email sent: %w", err)
	}
	token.AttendeeEmailSentAt = &at
	return nil
}
