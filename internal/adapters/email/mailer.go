package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventflow/internal/domain"
)

// Mail providers understood by NewMailer.
const (
	ProviderSES  = "ses"
	ProviderNoop = "noop"
)

const charsetUTF8 = "UTF-8"

// SESConfig holds AWS SES credentials.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig selects and configures a mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewMailer builds the mailer named by cfg.Provider. Anything other than "ses" logs instead of sending.
func NewMailer(cfg MailerConfig, logger *slog.Logger) (domain.Mailer, error) {
	if cfg.Provider != ProviderSES {
		if cfg.Provider != ProviderNoop && cfg.Provider != "" {
			logger.Warn("unknown email provider, emails will only be logged", "provider", cfg.Provider)
		}
		return &logMailer{logger: logger}, nil
	}
	if cfg.SES.Region == "" {
		return nil, fmt.Errorf("ses mailer: region is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("ses mailer: from address is required")
	}
	if cfg.SES.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for SES. Use only in development.")
	}
	client := ses.NewFromConfig(aws.Config{
		Region: cfg.SES.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
		),
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		},
	})
	return newSESMailer(client, sender(cfg.FromName, cfg.FromAddress), logger), nil
}

// sender formats the From header, quoting display names that need it.
func sender(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}

type sesMailer struct {
	client sesAPI
	source string
	logger *slog.Logger
}

func newSESMailer(client sesAPI, source string, logger *slog.Logger) *sesMailer {
	return &sesMailer{client: client, source: source, logger: logger}
}

func (s *sesMailer) Send(ctx context.Context, msg domain.Message) error {
	if msg.HTML == "" && msg.Text == "" {
		return fmt.Errorf("%w: %s email to %s has no body", domain.ErrValidation, msg.Template, msg.To)
	}
	body := &types.Body{Html: content(msg.HTML), Text: content(msg.Text)}
	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(s.source),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message:     &types.Message{Subject: content(msg.Subject), Body: body},
	})
	if err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	s.logger.DebugContext(ctx, "email sent via SES",
		"template", msg.Template, "to", msg.To, "message_id", aws.ToString(out.MessageId))
	return nil
}

// content wraps s as UTF-8 SES content; empty strings are omitted.
func content(s string) *types.Content {
	if s == "" {
		return nil
	}
	return &types.Content{Data: aws.String(s), Charset: aws.String(charsetUTF8)}
}

// logMailer records messages in the log instead of delivering them.
type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(ctx context.Context, msg domain.Message) error {
	m.logger.InfoContext(ctx, "email not delivered (noop provider)",
		"template", msg.Template, "to", msg.To, "subject", msg.Subject)
	return nil
}
