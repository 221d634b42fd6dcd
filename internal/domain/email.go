package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TalkBookedEmailData holds data for the organizer notification sent after a booking.
type TalkBookedEmailData struct {
	Title       string
	Date        string
	StartTime   string
	EndTime     string
	Speakers    string
	Categories  string
	Description string
}
