package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wisespend/installment-service/internal/models"
)

func TestEngine_ComfortablePurchase(t *testing.T) {
	engine := NewEngine(nil)
	snap := models.FinancialSnapshot{
		MonthlyIncome:  models.Float64(6000),
		CurrentBalance: models.Float64(2500),
	}
	purchase := models.PurchaseRequest{
		Amount:      300,
		Category:    models.CategoryElectronics,
		NumPayments: 6,
	}

	asmt, err := engine.Evaluate(purchase, snap, testStart)
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelGreen, asmt.RiskLevel)
	assert.Equal(t, 0.0, asmt.RiskScore)
	assert.True(t, asmt.RiskLevel.ShouldProceed())
	assert.Empty(t, asmt.RiskFactors)
	assert.Empty(t, asmt.Warnings)
	assert.Equal(t, 50.0, asmt.MonthlyPayment)
	assert.Nil(t, asmt.Alternative)
}

func TestEngine_OverextendedPurchase(t *testing.T) {
	engine := NewEngine(nil)
	snap := models.FinancialSnapshot{
		MonthlyIncome: models.Float64(2000),
		Obligations: models.MonthlyObligations{
			RentPayment:       1000,
			CreditCardPayment: 300,
			OtherLoansPayment: 200,
		},
		ActiveInstallmentsMonthly: 400,
		CreditCardDebt:            true,
	}
	purchase := models.PurchaseRequest{
		Amount:       1200,
		Category:     models.CategoryElectronics,
		NumPayments:  6,
		InterestRate: 15,
	}

	asmt, err := engine.Evaluate(purchase, snap, testStart)
	require.NoError(t, err)

	assert.Equal(t, models.RiskLevelRed, asmt.RiskLevel)
	assert.False(t, asmt.RiskLevel.ShouldProceed())

	// DTI above 0.50 and negative remaining funds both fire as critical.
	require.NotNil(t, asmt.Ratios.DTIRatio)
	assert.Greater(t, *asmt.Ratios.DTIRatio, 0.5)
	critical := findFactor(t, asmt.RiskFactors, FactorDebtToIncome)
	assert.Equal(t, models.SeverityCritical, critical.Severity)
	shortfall := findFactor(t, asmt.RiskFactors, FactorNegativeFunds)
	assert.Equal(t, models.SeverityCritical, shortfall.Severity)

	require.NotNil(t, asmt.Alternative)
	assert.NotEmpty(t, asmt.Warnings)
	require.NotNil(t, asmt.PotentialLateFee)
}

func TestEngine_LoneCriticalFactorGatesThePurchase(t *testing.T) {
	engine := NewEngine(nil)
	// Debt-to-income over 0.50 is the only factor that fires: the payment is
	// a small income share and the monthly budget stays positive.
	snap := models.FinancialSnapshot{
		MonthlyIncome: models.Float64(2000),
		Obligations:   models.MonthlyObligations{OtherLoansPayment: 950},
	}
	purchase := models.PurchaseRequest{
		Amount:      600,
		Category:    models.CategoryElectronics,
		NumPayments: 6,
	}

	asmt, err := engine.Evaluate(purchase, snap, testStart)
	require.NoError(t, err)

	require.Len(t, asmt.RiskFactors, 1)
	assert.Equal(t, models.SeverityCritical, asmt.RiskFactors[0].Severity)
	assert.Equal(t, 35.0, asmt.RiskScore)
	assert.Equal(t, models.RiskLevelOrange, asmt.RiskLevel)
	assert.False(t, asmt.RiskLevel.ShouldProceed())
	require.NotNil(t, asmt.Alternative)
	require.NotNil(t, asmt.PotentialLateFee)
}

func TestEngine_NoIncomeProvided(t *testing.T) {
	engine := NewEngine(nil)
	purchase := models.PurchaseRequest{
		Amount:      500,
		Category:    models.CategoryClothing,
		NumPayments: 4,
	}

	asmt, err := engine.Evaluate(purchase, models.FinancialSnapshot{}, testStart)
	require.NoError(t, err)

	assert.Nil(t, asmt.Ratios.DTIRatio)
	assert.Nil(t, asmt.Ratios.PaymentToIncomeRatio)
	assert.Nil(t, asmt.Ratios.RemainingMonthlyFunds)
	assert.Contains(t, asmt.PersonalizedMessage, "Based on limited financial information")
	assert.NotEmpty(t, asmt.Verdict)
}

func TestEngine_Idempotent(t *testing.T) {
	engine := NewEngine(nil)
	snap := models.FinancialSnapshot{
		MonthlyIncome:           models.Float64(3500),
		CurrentBalance:          models.Float64(400),
		CreditCardDebt:          true,
		ActiveInstallmentsCount: 3,
		Obligations:             models.MonthlyObligations{RentPayment: 900},
	}
	purchase := models.PurchaseRequest{
		Amount:       2400,
		Category:     models.CategoryTravel,
		NumPayments:  12,
		InterestRate: 9.9,
	}

	first, err := engine.Evaluate(purchase, snap, testStart)
	require.NoError(t, err)
	second, err := engine.Evaluate(purchase, snap, testStart)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestEngine_InvalidTermsSurface(t *testing.T) {
	engine := NewEngine(nil)
	_, err := engine.Evaluate(models.PurchaseRequest{Amount: -1, NumPayments: 3},
		models.FinancialSnapshot{}, testStart)
	require.ErrorIs(t, err, ErrInvalidTerms)
}
