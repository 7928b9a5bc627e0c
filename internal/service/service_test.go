package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisespend/installment-service/internal/models"
	"github.com/wisespend/installment-service/internal/repository"
	"github.com/wisespend/installment-service/internal/risk"
)

type mockStore struct {
	created *models.Installment
	failOn  string
}

func (m *mockStore) CreateInstallment(inst *models.Installment) error {
	if m.failOn == "create" {
		return errors.New("create failed")
	}
	m.created = inst
	return nil
}

func (m *mockStore) FindInstallmentByID(id uuid.UUID) (*models.Installment, error) {
	if m.created != nil && m.created.ID == id {
		return m.created, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockStore) FindInstallmentsByUser(userID string) ([]models.Installment, error) {
	if m.created != nil && m.created.UserID == userID {
		return []models.Installment{*m.created}, nil
	}
	return nil, nil
}

func (m *mockStore) MarkPaymentPaid(id uuid.UUID, paymentNumber int) error { return nil }
func (m *mockStore) DeleteInstallment(id uuid.UUID) error                  { return nil }

type fixedRates struct {
	rate float64
	err  error
}

func (f fixedRates) GetKeyRate() (float64, error) { return f.rate, f.err }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func calculatorRequest() models.CalculatorRequest {
	return models.CalculatorRequest{
		PurchaseAmount: 600,
		Category:       "electronics",
		NumPayments:    6,
		InterestRate:   models.Float64(0),
		MonthlyIncome:  models.Float64(5000),
	}
}

func TestCalculateRisk_Comfortable(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{rate: 20}, testLogger())

	asmt, err := svc.CalculateRisk(calculatorRequest())
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelGreen, asmt.RiskLevel)
	assert.Equal(t, 100.0, asmt.MonthlyPayment)
	assert.Len(t, asmt.Schedule, 6)
}

func TestCalculateRisk_DefaultsToKeyRate(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{rate: 21}, testLogger())

	req := calculatorRequest()
	req.InterestRate = nil
	asmt, err := svc.CalculateRisk(req)
	require.NoError(t, err)

	// 21% over 6 payments yields interest, unlike the explicit 0% case.
	assert.Greater(t, asmt.TotalInterest, 0.0)
}

func TestCalculateRisk_KeyRateFailureFallsBackToZero(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{err: errors.New("bank down")}, testLogger())

	req := calculatorRequest()
	req.InterestRate = nil
	asmt, err := svc.CalculateRisk(req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, asmt.TotalInterest)
}

func TestCalculateRisk_UnknownCategory(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{}, testLogger())

	req := calculatorRequest()
	req.Category = "Electronics & Gadgets" // display name, not an API value
	_, err := svc.CalculateRisk(req)
	require.ErrorIs(t, err, risk.ErrInvalidTerms)
}

func TestCalculateRisk_InvalidAmount(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{}, testLogger())

	req := calculatorRequest()
	req.PurchaseAmount = 0
	_, err := svc.CalculateRisk(req)
	require.ErrorIs(t, err, risk.ErrInvalidTerms)
}

func TestCalculateRisk_NoIncomeDegrades(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{}, testLogger())

	req := models.CalculatorRequest{
		PurchaseAmount: 500,
		Category:       "clothing",
		NumPayments:    4,
		InterestRate:   models.Float64(0),
	}
	asmt, err := svc.CalculateRisk(req)
	require.NoError(t, err)
	assert.Nil(t, asmt.Ratios.DTIRatio)
	assert.Contains(t, asmt.PersonalizedMessage, "Based on limited financial information")
}

func TestCreateInstallment_PersistsSchedule(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store, fixedRates{}, testLogger())

	inst, err := svc.CreateInstallment("user-1", "user@example.com", calculatorRequest())
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, inst.ID, store.created.ID)
	assert.Equal(t, models.InstallmentStatusActive, inst.Status)
	assert.Len(t, inst.Payments, 6)
	assert.Equal(t, 100.0, inst.MonthlyPayment)
	assert.Equal(t, models.RiskLevelGreen, inst.RiskLevel)
}

func TestCreateInstallment_RequiresUser(t *testing.T) {
	svc := NewService(&mockStore{}, fixedRates{}, testLogger())

	_, err := svc.CreateInstallment("", "", calculatorRequest())
	require.ErrorIs(t, err, risk.ErrInvalidTerms)
}

func TestCreateInstallment_StoreFailureSurfaces(t *testing.T) {
	svc := NewService(&mockStore{failOn: "create"}, fixedRates{}, testLogger())

	_, err := svc.CreateInstallment("user-1", "", calculatorRequest())
	require.Error(t, err)
}
