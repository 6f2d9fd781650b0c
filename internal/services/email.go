package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventflow/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendSpeakerInvite(ctx context.Context, data *domain.WorkflowEmailData) error {
	return s.send(ctx, domain.TemplateSpeakerInvite, data)
}

func (s *emailService) SendAttendeeInvite(ctx context.Context, data *domain.WorkflowEmailData) error {
	return s.send(ctx, domain.TemplateAttendeeInvite, data)
}

func (s *emailService) SendReminder(ctx context.Context, data *domain.WorkflowEmailData) error {
	return s.send(ctx, domain.TemplateReminderD1, data)
}

func (s *emailService) SendThanks(ctx context.Context, data *domain.WorkflowEmailData) error {
	return s.send(ctx, domain.TemplateThanks, data)
}

func (s *emailService) send(ctx context.Context, template string, data *domain.WorkflowEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", template)
	}
	if data.Email == "" {
		return fmt.Errorf("%w: %s recipient has no email", domain.ErrValidation, template)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(ctx, template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	msg := domain.Message{To: data.Email, Subject: subject, HTML: htmlBody, Text: textBody, Template: template}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.DebugContext(ctx, "email sent", "template", template, "to", data.Email)
	return nil
}
