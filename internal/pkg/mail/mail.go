package mail

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured signals that no SMTP transport is available. Callers
// treat it as "dev mode" and surface the composed content themselves
// instead of retrying.
var ErrNotConfigured = errors.New("mail transport is not configured")

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig is complete when host, user and password are all set.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c SMTPConfig) Complete() bool {
	return c.Host != "" && c.User != "" && c.Password != ""
}

type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = "no-reply@example.com"
	}
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if !m.cfg.Complete() {
		return ErrNotConfigured
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", "<"+uuid.NewString()+">")
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	return d.DialAndSend(gm)
}

// DevMailer logs the message and reports ErrNotConfigured so the caller
// can hand the link back in the response body.
type DevMailer struct{}

func NewDevMailer() *DevMailer { return &DevMailer{} }

func (DevMailer) Send(_ context.Context, msg Message) error {
	zap.L().Info("dev mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return ErrNotConfigured
}
