package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"room_booking/config"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Dispatcher delivers a message or reports why it could not.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// New picks a dispatcher from the SMTP settings. Without an SMTP host
// messages are only logged.
func New(cfg config.SMTPSettings, log *zap.Logger) Dispatcher {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST not set, emails will be logged instead of sent")
		return &LogDispatcher{log: log}
	}
	if cfg.Driver == "email" {
		return NewEmailDispatcher(cfg)
	}
	return NewGomailDispatcher(cfg)
}

type GomailDispatcher struct {
	dialer *gomail.Dialer
	from   string
}

func NewGomailDispatcher(cfg config.SMTPSettings) *GomailDispatcher {
	return &GomailDispatcher{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (d *GomailDispatcher) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", d.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	if err := d.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("gomail send: %w", err)
	}
	return nil
}

// EmailDispatcher sends through net/smtp using jordan-wright/email.
type EmailDispatcher struct {
	addr string
	auth smtp.Auth
	from string
}

func NewEmailDispatcher(cfg config.SMTPSettings) *EmailDispatcher {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &EmailDispatcher{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

func (d *EmailDispatcher) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = d.from
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}
	if err := e.Send(d.addr, d.auth); err != nil {
		return fmt.Errorf("email send: %w", err)
	}
	return nil
}

type LogDispatcher struct {
	log *zap.Logger
}

func (d *LogDispatcher) Send(_ context.Context, msg Message) error {
	d.log.Info("email not sent, no SMTP host configured",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)
	return nil
}
