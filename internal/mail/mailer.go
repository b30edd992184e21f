// Package mail sends transactional notifications over SMTP. Delivery is
// best effort everywhere: callers log failures and never let them affect
// the operation that triggered the message.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"stayhub/internal/config"
)

// Mailer sends booking and contact notifications.
type Mailer interface {
	SendReservationConfirmation(to, firstName, roomTitle string, start, end time.Time, totalPrice int64) error
	SendContactReply(to, name, subject, originalMessage, replyMessage string) error
}

// SMTPMailer sends mail through a plain-auth SMTP relay. When no host is
// configured it logs the message instead, so development environments work
// without a mail server.
type SMTPMailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
}

// NewSMTPMailer creates a mailer from configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.EmailHost,
		port:     cfg.EmailPort,
		user:     cfg.EmailUser,
		password: cfg.EmailPassword,
		from:     cfg.EmailFrom,
	}
}

// SendReservationConfirmation mails the guest after a successful booking.
func (m *SMTPMailer) SendReservationConfirmation(to, firstName, roomTitle string, start, end time.Time, totalPrice int64) error {
	if firstName == "" {
		firstName = "Guest"
	}
	subject := "Your reservation is confirmed"
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your reservation has been processed successfully.\n\n"+
			"Reservation details:\n"+
			"  Room:      %s\n"+
			"  Check-in:  %s\n"+
			"  Check-out: %s\n"+
			"  Total:     %.2f\n\n"+
			"Thank you for choosing us!\n",
		firstName, roomTitle,
		start.Format("02 Jan 2006 15:04"),
		end.Format("02 Jan 2006 15:04"),
		float64(totalPrice)/100,
	)
	return m.send(to, subject, body)
}

// SendContactReply mails the visitor when an admin answers their enquiry.
func (m *SMTPMailer) SendContactReply(to, name, subject, originalMessage, replyMessage string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for your message. Here is our reply:\n\n"+
			"%s\n\n"+
			"Your original message:\n"+
			"%s\n",
		name, replyMessage, originalMessage,
	)
	return m.send(to, "Re: "+subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.host == "" {
		log.Printf("[email] (mock) to=%s subject=%q", to, subject)
		return nil
	}

	// Strip CRLF from header values to keep the message well formed.
	sanitize := func(s string) string {
		return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
	}

	msg := strings.Join([]string{
		"From: " + sanitize(m.from),
		"To: " + sanitize(to),
		"Subject: " + sanitize(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	log.Printf("[email] sent to=%s subject=%q", to, subject)
	return nil
}
