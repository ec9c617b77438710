package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends plain-text email over SMTP. It implements the notification
// sink used by the order and auth services.
type Mailer struct {
	cfg  Config
	auth smtp.Auth
	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a Mailer from the given SMTP configuration.
func New(cfg Config) *Mailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Mailer{
		cfg:  cfg,
		auth: auth,
		send: smtp.SendMail,
	}
}

// Send delivers a single plain-text message.
func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("mailer: recipient address is empty")
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.cfg.From + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, m.auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
