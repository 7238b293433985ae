// Package mailer sends e-mail notifications over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/example/portfolio-admin/internal/models"
)

// Config holds SMTP settings. Username and Password may be empty for relays
// that do not authenticate.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends messages through one SMTP server.
type SMTPMailer struct {
	cfg  Config
	send sendFunc
}

// NewSMTPMailer validates cfg and returns a mailer.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host cannot be empty")
	}
	if cfg.From == "" || cfg.To == "" {
		return nil, fmt.Errorf("sender and recipient addresses must be provided")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers one message to the configured recipient. Bodies containing
// <html> or <p> are sent as HTML.
func (m *SMTPMailer) Send(ctx context.Context, subject, body string) error {
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	contentType := "text/plain; charset=UTF-8"
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html>") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", m.cfg.To, m.cfg.From, sanitizeHeader(subject), contentType, body))

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.From, []string{m.cfg.To}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NotifyContact tells the site owner about a new contact form message.
func (m *SMTPMailer) NotifyContact(ctx context.Context, c models.Contact) error {
	subject := "New contact message"
	if c.Subject != "" {
		subject += ": " + c.Subject
	}
	body := fmt.Sprintf("From: %s %s <%s>\nReceived: %s\n\n%s\n",
		c.FirstName, c.LastName, c.Email, c.CreatedAt, c.Message)
	return m.Send(ctx, subject, body)
}

func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
