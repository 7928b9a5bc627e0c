package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/wisespend/installment-service/internal/models"
)

type stubFinder struct {
	due []models.DuePayment
	err error
}

func (s stubFinder) FindPaymentsDueWithin(days int) ([]models.DuePayment, error) {
	return s.due, s.err
}

type recordingSender struct {
	sent   []string
	failTo string
}

func (r *recordingSender) SendPaymentReminder(to string, paymentNumber int, dueDate time.Time, amount float64, overdue bool) error {
	if to == r.failTo {
		return errors.New("smtp error")
	}
	r.sent = append(r.sent, to)
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func duePayment(email string) models.DuePayment {
	return models.DuePayment{
		InstallmentID: uuid.New(),
		UserID:        "user-1",
		NotifyEmail:   email,
		PaymentNumber: 1,
		DueDate:       time.Now().AddDate(0, 0, 1),
		Amount:        120,
	}
}

func TestRunReminderJob_SendsPerDuePayment(t *testing.T) {
	sender := &recordingSender{}
	s := New(stubFinder{due: []models.DuePayment{
		duePayment("a@example.com"),
		duePayment("b@example.com"),
	}}, sender, quietLogger(), "@daily", 3)

	s.RunReminderJob()

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sent)
}

func TestRunReminderJob_SkipsMissingEmail(t *testing.T) {
	sender := &recordingSender{}
	s := New(stubFinder{due: []models.DuePayment{duePayment("")}}, sender, quietLogger(), "@daily", 3)

	s.RunReminderJob()

	assert.Empty(t, sender.sent)
}

func TestRunReminderJob_ContinuesAfterSendFailure(t *testing.T) {
	sender := &recordingSender{failTo: "a@example.com"}
	s := New(stubFinder{due: []models.DuePayment{
		duePayment("a@example.com"),
		duePayment("b@example.com"),
	}}, sender, quietLogger(), "@daily", 3)

	s.RunReminderJob()

	assert.Equal(t, []string{"b@example.com"}, sender.sent)
}

func TestRunReminderJob_FinderError(t *testing.T) {
	sender := &recordingSender{}
	s := New(stubFinder{err: errors.New("db down")}, sender, quietLogger(), "@daily", 3)

	s.RunReminderJob()

	assert.Empty(t, sender.sent)
}
