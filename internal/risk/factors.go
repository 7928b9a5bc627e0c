package risk

import (
	"fmt"
	"sort"

	"github.com/wisespend/installment-service/internal/models"
)

// Factor names. Each rule produces at most one factor, so names are unique
// within a single assessment.
const (
	FactorDebtToIncome       = "high_debt_to_income"
	FactorPaymentToIncome    = "high_payment_to_income"
	FactorNegativeFunds      = "negative_remaining_funds"
	FactorOverdraftRisk      = "overdraft_risk"
	FactorCreditCardDebt     = "existing_credit_card_debt"
	FactorMortgageConflict   = "mortgage_qualification_risk"
	FactorInstallmentStack   = "installment_stacking"
	FactorYoungHighValue     = "young_high_value_purchase"
	FactorDiscretionaryTight = "discretionary_on_tight_budget"
)

// DTI bands, age-group independent.
const (
	dtiCritical = 0.50
	dtiHigh     = 0.36
	dtiMedium   = 0.28
)

// DetectFactors evaluates every rule independently against the ratios and the
// snapshot. Rules whose inputs are absent simply do not fire. The result is
// sorted by severity descending, ties kept in rule-evaluation order.
func DetectFactors(ratios models.Ratios, snap models.FinancialSnapshot, purchase models.PurchaseRequest) []models.RiskFactor {
	var factors []models.RiskFactor

	if ratios.DTIRatio != nil {
		dti := *ratios.DTIRatio
		switch {
		case dti > dtiCritical:
			factors = append(factors, models.RiskFactor{
				Name:           FactorDebtToIncome,
				Severity:       models.SeverityCritical,
				Message:        "Your total debt payments would exceed half of your income",
				SupportingStat: fmt.Sprintf("debt-to-income %.0f%%", dti*100),
			})
		case dti > dtiHigh:
			factors = append(factors, models.RiskFactor{
				Name:           FactorDebtToIncome,
				Severity:       models.SeverityHigh,
				Message:        "Your debt-to-income ratio is above the recommended 36% limit",
				SupportingStat: fmt.Sprintf("debt-to-income %.0f%%", dti*100),
			})
		case dti > dtiMedium:
			factors = append(factors, models.RiskFactor{
				Name:           FactorDebtToIncome,
				Severity:       models.SeverityMedium,
				Message:        "Your debt-to-income ratio is creeping above a healthy level",
				SupportingStat: fmt.Sprintf("debt-to-income %.0f%%", dti*100),
			})
		}
	}

	if ratios.PaymentToIncomeRatio != nil {
		pti := *ratios.PaymentToIncomeRatio
		switch {
		case pti > 0.15:
			factors = append(factors, models.RiskFactor{
				Name:           FactorPaymentToIncome,
				Severity:       models.SeverityHigh,
				Message:        "This single payment takes a large bite out of your monthly income",
				SupportingStat: fmt.Sprintf("payment is %.0f%% of income", pti*100),
			})
		case pti > 0.10:
			factors = append(factors, models.RiskFactor{
				Name:           FactorPaymentToIncome,
				Severity:       models.SeverityMedium,
				Message:        "This payment is a noticeable share of your monthly income",
				SupportingStat: fmt.Sprintf("payment is %.0f%% of income", pti*100),
			})
		}
	}

	if ratios.RemainingMonthlyFunds != nil && *ratios.RemainingMonthlyFunds < 0 {
		shortfall := -*ratios.RemainingMonthlyFunds
		factors = append(factors, models.RiskFactor{
			Name:           FactorNegativeFunds,
			Severity:       models.SeverityCritical,
			Message:        "Your obligations plus this payment exceed your monthly income",
			SupportingStat: fmt.Sprintf("$%.2f short each month", shortfall),
		})
	}

	if ratios.BalanceAfterFirstPayment != nil && *ratios.BalanceAfterFirstPayment < 0 {
		factors = append(factors, models.RiskFactor{
			Name:           FactorOverdraftRisk,
			Severity:       models.SeverityHigh,
			Message:        "The first payment would push your balance below zero",
			SupportingStat: fmt.Sprintf("balance after first payment $%.2f", *ratios.BalanceAfterFirstPayment),
		})
	}

	if snap.CreditCardDebt {
		factors = append(factors, models.RiskFactor{
			Name:     FactorCreditCardDebt,
			Severity: models.SeverityMedium,
			Message:  "Adding an installment on top of credit card debt compounds your interest costs",
		})
	}

	if snap.PlanningMortgage && ratios.DTIRatio != nil && *ratios.DTIRatio > 0.30 {
		factors = append(factors, models.RiskFactor{
			Name:           FactorMortgageConflict,
			Severity:       models.SeverityHigh,
			Message:        "This debt level could hurt your mortgage qualification",
			SupportingStat: fmt.Sprintf("debt-to-income %.0f%%", *ratios.DTIRatio*100),
		})
	}

	switch {
	case snap.ActiveInstallmentsCount >= 5:
		factors = append(factors, models.RiskFactor{
			Name:           FactorInstallmentStack,
			Severity:       models.SeverityHigh,
			Message:        "You are juggling too many installment plans at once",
			SupportingStat: fmt.Sprintf("%d active installments", snap.ActiveInstallmentsCount),
		})
	case snap.ActiveInstallmentsCount >= 3:
		factors = append(factors, models.RiskFactor{
			Name:           FactorInstallmentStack,
			Severity:       models.SeverityMedium,
			Message:        "Several installment plans are already running",
			SupportingStat: fmt.Sprintf("%d active installments", snap.ActiveInstallmentsCount),
		})
	}

	if snap.AgeGroup == models.AgeGroup18To24 && snap.HasIncome() && purchase.Amount > 3*(*snap.MonthlyIncome) {
		factors = append(factors, models.RiskFactor{
			Name:     FactorYoungHighValue,
			Severity: models.SeverityMedium,
			Message:  "This purchase is large relative to your income at the start of your career",
		})
	}

	if purchase.Category.Discretionary() && snap.HasIncome() &&
		ratios.RemainingMonthlyFunds != nil && *ratios.RemainingMonthlyFunds < 0.1*(*snap.MonthlyIncome) {
		factors = append(factors, models.RiskFactor{
			Name:     FactorDiscretionaryTight,
			Severity: models.SeverityLow,
			Message:  "A non-essential purchase leaves you with a very thin monthly buffer",
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Severity.Rank() > factors[j].Severity.Rank()
	})
	return factors
}
