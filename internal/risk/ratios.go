package risk

import (
	"math"

	"github.com/wisespend/installment-service/internal/models"
)

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ComputeRatios derives the income- and balance-relative metrics for a
// candidate monthly payment. Ratios that need missing inputs stay nil; a
// zero income disables income ratios the same way an absent one does, so no
// division can ever blow up.
func ComputeRatios(monthlyPayment, firstPayment float64, snap models.FinancialSnapshot) models.Ratios {
	var ratios models.Ratios

	committed := snap.Obligations.Total() + snap.ActiveInstallmentsMonthly + monthlyPayment

	if snap.HasIncome() {
		income := *snap.MonthlyIncome
		ratios.DTIRatio = models.Float64(round4(committed / income))
		ratios.PaymentToIncomeRatio = models.Float64(round4(monthlyPayment / income))
		// May be negative: that is a risk signal, not an error.
		ratios.RemainingMonthlyFunds = models.Float64(round2(income - committed))
	}

	if snap.CurrentBalance != nil {
		ratios.BalanceAfterFirstPayment = models.Float64(round2(*snap.CurrentBalance - firstPayment))
	}

	return ratios
}
