package handlers

import (
	"huddle/internal/database"
	"huddle/internal/models"
	"huddle/internal/reminders"
	"huddle/internal/services"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// verdictStatus maps validation verdicts onto HTTP statuses
func verdictStatus(verdict reminders.Verdict) int {
	switch verdict {
	case reminders.VerdictNotFound:
		return http.StatusNotFound
	case reminders.VerdictExpired, reminders.VerdictAlreadyConfirmed, reminders.VerdictMeetingPassed:
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}

// resolveToken loads the token row and its meeting. A nil token or deleted
// meeting both surface as not_found.
func resolveToken(c *gin.Context) (*reminders.Lifecycle, *models.ReminderToken, *models.Meeting, bool) {
	db := database.GetDB()
	lifecycle := reminders.NewLifecycle(database.NewTokenStore(db))

	token, err := lifecycle.Lookup(c.Param("token"))
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to look up token", err)
		return nil, nil, nil, false
	}
	if token == nil {
		c.JSON(http.StatusNotFound, gin.H{"verdict": reminders.VerdictNotFound})
		return nil, nil, nil, false
	}

	meeting, err := database.NewMeetingStore(db).MeetingByID(token.MeetingID)
	if err != nil {
		// The meeting (or its whole series) was deleted after issuance.
		c.JSON(http.StatusNotFound, gin.H{"verdict": reminders.VerdictNotFound})
		return nil, nil, nil, false
	}

	return lifecycle, token, meeting, true
}

// PreviewReminder validates a confirmation token so the confirmation form can
// render either the meeting summary or the specific rejection
func PreviewReminder(c *gin.Context) {
	lifecycle, token, meeting, ok := resolveToken(c)
	if !ok {
		return
	}

	verdict := lifecycle.Validate(token, meeting.DateTime)
	if verdict != reminders.VerdictOK {
		c.JSON(verdictStatus(verdict), gin.H{"verdict": verdict})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"verdict": verdict,
		"meeting": meeting,
	})
}

// ConfirmReminder consumes a confirmation token and sends the reminder email
// to the meeting's attendees. If the attendee send fails the confirmation is
// rolled back so the leader can retry.
func ConfirmReminder(c *gin.Context) {
	var request models.ConfirmReminderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	lifecycle, token, meeting, ok := resolveToken(c)
	if !ok {
		return
	}

	verdict, err := lifecycle.Confirm(token, meeting.DateTime, request.CustomDescription, request.CustomMessage)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to confirm reminder", err)
		return
	}
	if verdict != reminders.VerdictOK {
		c.JSON(verdictStatus(verdict), gin.H{"verdict": verdict})
		return
	}

	db := database.GetDB()

	// Everyone who hasn't declined gets the reminder
	records, err := database.NewAttendanceStore(db).RecordsForMeetings([]string{meeting.ID})
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch attendee records", err)
		return
	}
	var usernames []string
	for _, record := range records {
		if record.Status != models.StatusDeclined {
			usernames = append(usernames, record.Username)
		}
	}

	var attendees []models.Account
	if len(usernames) > 0 {
		if err := db.Where("username IN ?", usernames).Find(&attendees).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to fetch attendee accounts", err)
			return
		}
	}

	emailService := services.NewEmailService()
	if err := emailService.SendMeetingReminderToAttendees(*meeting, attendees, token.CustomDescription, token.CustomMessage); err != nil {
		log.Printf("Error: Failed to send reminder for meeting %s, rolling back confirmation: %v", meeting.ID, err)
		if rollbackErr := lifecycle.Rollback(token); rollbackErr != nil {
			log.Printf("Error: Failed to roll back confirmation for meeting %s: %v", meeting.ID, rollbackErr)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send reminder, please try again"})
		return
	}

	if err := lifecycle.MarkDelivered(token); err != nil {
		log.Printf("Warning: Failed to mark attendee email sent for meeting %s: %v", meeting.ID, err)
	}

	log.Printf("Reminder confirmed and sent to %d attendees for meeting %s", len(attendees), meeting.ID)
	c.JSON(http.StatusOK, gin.H{
		"verdict":    reminders.VerdictOK,
		"recipients": len(attendees),
	})
}
