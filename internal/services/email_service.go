package services

import (
	"fmt"
	"huddle/internal/models"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	baseURL   string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	baseURL := os.Getenv("APP_BASE_URL")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
	}
}

// SendReminderConfirmationRequest asks the group leader to approve sending a
// reminder for an upcoming meeting
func (s *EmailService) SendReminderConfirmationRequest(leader models.Account, meeting models.Meeting, token string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(leader.Username, leader.Email)
	subject := fmt.Sprintf("Confirm reminder for %s", meeting.Title)

	confirmURL := fmt.Sprintf("%s/reminders/%s", s.baseURL, token)
	when := meeting.DateTime.Format("Mon Jan 2, 3:04 PM")

	plainContent := fmt.Sprintf("Hello %s, Your meeting %s is coming up on %s. Open %s to confirm sending a reminder to attendees. The link is valid for 7 days.",
		leader.Username, meeting.Title, when, confirmURL)

	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your meeting <strong>%s</strong> is coming up on %s.</p><p><a href=\"%s\">Confirm the reminder</a> to notify attendees. The link is valid for 7 days.</p>",
		leader.Username, meeting.Title, when, confirmURL)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send confirmation request to %s: %d", leader.Email, response.StatusCode)
	}
	return nil
}

// SendMeetingReminderToAttendees sends the reminder email to every attendee
// after the leader confirmed. Custom description/message override the
// meeting's own fields when set.
func (s *EmailService) SendMeetingReminderToAttendees(meeting models.Meeting, attendees []models.Account, customDescription, customMessage string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	subject := fmt.Sprintf("Reminder: %s is coming up", meeting.Title)

	description := meeting.Description
	if customDescription != "" {
		description = customDescription
	}

	when := meeting.DateTime.Format("Mon Jan 2, 3:04 PM")

	// Send individual emails to each attendee
	for _, attendee := range attendees {
		to := mail.NewEmail(attendee.Username, attendee.Email)

		plainContent := fmt.Sprintf("Hello %s, Your meeting %s is coming up on %s at %s. %s",
			attendee.Username, meeting.Title, when, meeting.Location, description)
		htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your meeting <strong>%s</strong> is coming up on %s at %s.</p><p>%s</p>",
			attendee.Username, meeting.Title, when, meeting.Location, description)

		if customMessage != "" {
			plainContent = fmt.Sprintf("%s %s", plainContent, customMessage)
			htmlContent = fmt.Sprintf("%s<p>%s</p>", htmlContent, customMessage)
		}

		message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

		response, err := s.client.Send(message)
		if err != nil {
			return err
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("failed to send email to %s: %d", attendee.Email, response.StatusCode)
		}
	}

	return nil
}
