package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/wisespend/installment-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPaymentReminder sends a reminder for an upcoming or overdue installment
// payment.
func (s *Sender) SendPaymentReminder(to string, paymentNumber int, dueDate time.Time, amount float64, overdue bool) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if overdue {
		e.Subject = "Overdue Installment Payment"
	} else {
		e.Subject = "Upcoming Installment Payment Reminder"
	}

	body := "Hi,\n\n"
	if overdue {
		body += fmt.Sprintf(
			"Payment #%d of $%.2f was due on %s and is still unpaid.\n"+
				"Please make the payment as soon as possible to avoid late fees.\n",
			paymentNumber, amount, dueDate.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"This is a reminder that payment #%d of $%.2f is due on %s.\n"+
				"Please ensure sufficient funds are available in your account.\n",
			paymentNumber, amount, dueDate.Format("2006-01-02"),
		)
	}
	body += "\nBest regards,\nWiseSpend"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
