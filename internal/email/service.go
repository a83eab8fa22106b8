package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/clinicdesk/clinic-api/internal/config"
	"github.com/clinicdesk/clinic-api/internal/model"
)

// Service sends clinic notification mail. Callers treat sends as
// best-effort and never fail a booking on a mail error.
type Service interface {
	SendAppointmentConfirmation(ctx context.Context, to string, apt *model.AppointmentDetail) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendAppointmentConfirmation(ctx context.Context, to string, apt *model.AppointmentDetail) error {
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Appointment confirmation")

	when := "to be scheduled"
	if apt.ScheduledOn != nil {
		when = apt.ScheduledOn.Format("Monday, 2 January 2006 at 15:04")
	}
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nYour appointment with %s is booked for %s.\r\n\r\nRegards,\r\nThe clinic team\r\n",
		apt.ClientName, apt.AssignedEmployeeName, when,
	)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}
