package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/wisespend/installment-service/internal/models"
)

// DueFinder supplies the unpaid schedule rows the reminder job cares about.
type DueFinder interface {
	FindPaymentsDueWithin(days int) ([]models.DuePayment, error)
}

// ReminderSender delivers payment reminders.
type ReminderSender interface {
	SendPaymentReminder(to string, paymentNumber int, dueDate time.Time, amount float64, overdue bool) error
}

// Scheduler runs the daily payment-reminder job.
type Scheduler struct {
	cron      *cron.Cron
	repo      DueFinder
	sender    ReminderSender
	log       *logrus.Logger
	lookahead int
	cronSpec  string
}

// New builds a scheduler that reminds about payments due within lookahead
// days, on the given cron spec.
func New(repo DueFinder, sender ReminderSender, log *logrus.Logger, cronSpec string, lookahead int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		repo:      repo,
		sender:    sender,
		log:       log,
		lookahead: lookahead,
		cronSpec:  cronSpec,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cronSpec, s.RunReminderJob); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Reminder scheduler started: %q, lookahead %d days", s.cronSpec, s.lookahead)
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RunReminderJob sends one reminder per due or overdue payment. Send
// failures are logged and skipped; the remaining reminders still go out.
func (s *Scheduler) RunReminderJob() {
	due, err := s.repo.FindPaymentsDueWithin(s.lookahead)
	if err != nil {
		s.log.Errorf("Reminder job failed to load due payments: %v", err)
		return
	}

	sent := 0
	for _, d := range due {
		if d.NotifyEmail == "" {
			continue
		}
		if err := s.sender.SendPaymentReminder(d.NotifyEmail, d.PaymentNumber, d.DueDate, d.Amount, d.Overdue); err != nil {
			s.log.Errorf("Failed to remind %s about installment %s: %v", d.NotifyEmail, d.InstallmentID, err)
			continue
		}
		sent++
	}
	s.log.Infof("Reminder job finished: %d due payments, %d reminders sent", len(due), sent)
}
