package services

import (
	"huddle/internal/database"
	"huddle/internal/models"
	"huddle/internal/reminders"
	"log"
	"time"

	"gorm.io/gorm"
)

type ReminderWorker struct {
	db           *gorm.DB
	emailService *EmailService
	lifecycle    *reminders.Lifecycle
	tokens       reminders.TokenStore
	interval     time.Duration
}

func NewReminderWorker() *ReminderWorker {
	db := database.GetDB()
	tokens := database.NewTokenStore(db)
	return &ReminderWorker{
		db:           db,
		emailService: NewEmailService(),
		lifecycle:    reminders.NewLifecycle(tokens),
		tokens:       tokens,
		interval:     time.Minute * 5, // Check every 5 minutes
	}
}

func (w *ReminderWorker) Start() {
	go w.run()
}

func (w *ReminderWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.checkUpcomingMeetings()
	}
}

func (w *ReminderWorker) checkUpcomingMeetings() {
	now := time.Now()

	// Find meetings inside the reminder window
	var meetings []models.Meeting
	w.db.Where("date_time >= ? AND date_time <= ?",
		now.Add(reminders.WindowMin), now.Add(reminders.WindowMax)).
		Find(&meetings)

	for _, meeting := range meetings {
		if !reminders.WithinReminderWindow(meeting.DateTime, now) {
			continue
		}
		w.processMeeting(meeting)
	}
}

// processMeeting issues a token for the meeting and emails the group leader,
// unless a token already exists (the token row is the dedupe record).
func (w *ReminderWorker) processMeeting(meeting models.Meeting) {
	existing, err := w.tokens.TokenForMeeting(meeting.ID)
	if err != nil {
		log.Printf("Error: Failed to check existing token for meeting %s: %v", meeting.ID, err)
		return
	}
	if existing != nil {
		return
	}

	// Find the group leader and their account
	var group models.Group
	if err := w.db.Where("id = ?", meeting.GroupID).First(&group).Error; err != nil {
		log.Printf("Error: Failed to fetch group %s for meeting %s: %v", meeting.GroupID, meeting.ID, err)
		return
	}

	var leader models.Account
	if err := w.db.Where("username = ?", group.LeaderUsername).First(&leader).Error; err != nil {
		log.Printf("Error: Failed to fetch leader account %s: %v", group.LeaderUsername, err)
		return
	}

	token, err := w.lifecycle.Issue(meeting.ID, leader.Username)
	if err != nil {
		log.Printf("Error: Failed to issue reminder token for meeting %s: %v", meeting.ID, err)
		return
	}

	if err := w.emailService.SendReminderConfirmationRequest(leader, meeting, token.Token); err != nil {
		log.Printf("Error: Failed to send confirmation request for meeting %s: %v", meeting.ID, err)
		return
	}

	if err := w.lifecycle.MarkSent(token); err != nil {
		log.Printf("Warning: Failed to mark reminder sent for meeting %s: %v", meeting.ID, err)
		return
	}

	log.Printf("Issued reminder token for meeting %s, confirmation request sent to %s", meeting.ID, leader.Username)
}
