package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/example/portfolio-admin/internal/models"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestMailer(t *testing.T, cfg Config, sendErr error) (*SMTPMailer, *capturedMail) {
	t.Helper()
	m, err := NewSMTPMailer(cfg)
	if err != nil {
		t.Fatalf("NewSMTPMailer: %v", err)
	}
	got := &capturedMail{}
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*got = capturedMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)}
		return sendErr
	}
	return m, got
}

func TestNewSMTPMailerValidation(t *testing.T) {
	if _, err := NewSMTPMailer(Config{From: "a@example.com", To: "b@example.com"}); err == nil {
		t.Error("expected error for missing host")
	}
	if _, err := NewSMTPMailer(Config{Host: "smtp.example.com", From: "a@example.com"}); err == nil {
		t.Error("expected error for missing recipient")
	}
}

func TestNotifyContact(t *testing.T) {
	m, got := newTestMailer(t, Config{
		Host: "smtp.example.com", Username: "user", Password: "pass",
		From: "site@example.com", To: "owner@example.com",
	}, nil)

	err := m.NotifyContact(context.Background(), models.Contact{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
		Subject: "Hello\r\nBcc: evil@example.com", Message: "Nice portfolio",
	})
	if err != nil {
		t.Fatalf("NotifyContact: %v", err)
	}
	if got.addr != "smtp.example.com:587" {
		t.Errorf("addr = %q", got.addr)
	}
	if got.auth == nil {
		t.Error("expected PLAIN auth when a username is set")
	}
	if len(got.to) != 1 || got.to[0] != "owner@example.com" {
		t.Errorf("to = %v", got.to)
	}
	if strings.Contains(got.msg, "\r\nBcc:") {
		t.Error("subject header injection was not neutralized")
	}
	if !strings.Contains(got.msg, "Ada Lovelace <ada@example.com>") || !strings.Contains(got.msg, "text/plain") {
		t.Errorf("unexpected message:\n%s", got.msg)
	}
}

func TestSendError(t *testing.T) {
	m, _ := newTestMailer(t, Config{Host: "smtp.example.com", From: "a@example.com", To: "b@example.com"}, errors.New("refused"))
	if err := m.Send(context.Background(), "s", "<p>hi</p>"); err == nil || !strings.Contains(err.Error(), "refused") {
		t.Errorf("Send err = %v", err)
	}
}
