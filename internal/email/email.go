package email

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"tourdesk/config"
	"tourdesk/internal/kafka"
)

// Sender delivers booking notifications over SMTP. When SMTP is not
// configured it degrades to logging, so the worker keeps draining the
// notifications topic in development setups.
type Sender struct {
	cfg config.EmailConfig
}

func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject, body := composeMessage(event)

	if !s.cfg.Configured() {
		log.Printf("email not configured, would send to %s: %s", event.CustomerEmail, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.From, event.CustomerEmail, subject, body)

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{event.CustomerEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func composeMessage(event kafka.BookingEvent) (string, string) {
	switch event.Type {
	case "booking_created":
		return "Your booking request was received",
			fmt.Sprintf("Hi %s,\n\nwe received your booking (ref %s). Our team will confirm it shortly.", event.CustomerName, event.BookingID)
	case "booking_status_changed":
		return fmt.Sprintf("Your booking is now %s", event.Status),
			fmt.Sprintf("Hi %s,\n\nyour booking %s was updated to %q.", event.CustomerName, event.BookingID, event.Status)
	case "booking_deleted":
		return "Your booking was removed",
			fmt.Sprintf("Hi %s,\n\nbooking %s has been removed from our records.", event.CustomerName, event.BookingID)
	default:
		return "Booking update", fmt.Sprintf("Booking %s: %s", event.BookingID, event.Type)
	}
}
