package domain

import "context"

// Template names for workflow emails.
const (
	TemplateSpeakerInvite  = "speaker_invite"
	TemplateAttendeeInvite = "attendee_invite"
	TemplateReminderD1     = "reminder_d1"
	TemplateThanks         = "thanks"
)

// Column positions in the EMAILS table.
const (
	EmailColTemplateKey = iota
	EmailColSubject
	EmailColBody
)

// Message is one rendered outgoing email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
	// Template is the template name the message was rendered from; used for logging only.
	Template string
}

// Mailer delivers rendered messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(ctx context.Context, templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WorkflowEmailData is the data every workflow template receives.
type WorkflowEmailData struct {
	Email             string
	Name              string
	EventTitle        string
	EventLocation     string
	ConfirmedDatetime string
	Topic             string
	FormURL           string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSpeakerInvite(ctx context.Context, data *WorkflowEmailData) error
	SendAttendeeInvite(ctx context.Context, data *WorkflowEmailData) error
	SendReminder(ctx context.Context, data *WorkflowEmailData) error
	SendThanks(ctx context.Context, data *WorkflowEmailData) error
}
