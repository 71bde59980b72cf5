package mailer

import (
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=pkgmocks github.com/promoforge/promoforge/pkg/mailer Mailer

// Mailer sends rendered campaign emails to operator addresses for proofing.
type Mailer interface {
	// SendTestEmail sends one rendered market variant to the given address.
	// senderName overrides the configured from name when non-empty.
	SendTestEmail(to, senderName, subject, htmlBody, altBody string) error
}

// Config holds the SMTP configuration for the mailer.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
}

// SMTPMailer implements Mailer over SMTP.
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config: config,
	}
}

// NewTestSMTPMailer creates a mailer in test mode: messages are logged, no
// SMTP connection is made.
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
	}
}

// SendTestEmail sends the rendered output as a multipart message: the HTML
// body with the plain-text fallback as the alternative part, exactly as the
// campaign would go out.
func (m *SMTPMailer) SendTestEmail(to, senderName, subject, htmlBody, altBody string) error {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	fromName := m.config.FromName
	if senderName != "" {
		fromName = senderName
	}
	if err := msg.FromFormat(fromName, m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set email from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set email recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	msg.AddAlternativeString(mail.TypeTextPlain, altBody)

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	if client == nil {
		log.Printf("Test send to: %s", to)
		log.Printf("From: %s <%s>", fromName, m.config.FromEmail)
		log.Printf("Subject: %s", subject)
		return nil
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send test email: %w", err)
	}
	return nil
}

// createSMTPClient returns nil in test mode; callers treat a nil client as
// "log instead of send".
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// Unauthenticated servers (local relays, port 25) are allowed.
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}
