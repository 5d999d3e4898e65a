package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/careops/hospital-api/internal/config"
	"github.com/careops/hospital-api/internal/model"
)

type Service interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendAppointmentConfirmation(ctx context.Context, patient *model.Patient, apt *model.Appointment) error
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

func (s *smtpService) SendWelcome(_ context.Context, to string, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Welcome to the hospital portal")
	m.SetBody("text/plain", fmt.Sprintf("Hello %s,\n\nYour account has been created.\n", name))

	return s.dialer.DialAndSend(m)
}

func (s *smtpService) SendAppointmentConfirmation(_ context.Context, patient *model.Patient, apt *model.Appointment) error {
	when := "to be scheduled"
	if apt.ScheduledAt != nil {
		when = apt.ScheduledAt.Format("2006-01-02 15:04")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", patient.Email)
	m.SetHeader("Subject", fmt.Sprintf("Appointment #%d confirmed", apt.ID))
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s %s,\n\nYour appointment #%d is confirmed (%s).\n",
		patient.Name, patient.LastName, apt.ID, when,
	))

	return s.dialer.DialAndSend(m)
}
