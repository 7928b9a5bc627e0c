package risk

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wisespend/installment-service/internal/models"
)

// ErrInvalidTerms indicates malformed purchase terms. The caller must
// re-prompt; retrying with the same input is pointless.
var ErrInvalidTerms = errors.New("invalid purchase terms")

// RateConvention converts an annual percentage rate to a periodic rate.
type RateConvention func(annualPct float64) float64

// MonthlyCompounding is the standard amortizing-loan convention: annual
// percentage divided by 12.
func MonthlyCompounding(annualPct float64) float64 {
	return annualPct / 100 / 12
}

// Plan is the output of the amortization calculator.
type Plan struct {
	Schedule       []models.PaymentScheduleEntry
	MonthlyPayment float64
	TotalInterest  float64
	TotalCost      float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeSchedule builds the payment schedule for the given terms. The first
// payment falls one month after start, subsequent payments monthly. Math runs
// in full precision; displayed values are rounded to 2 decimals and the final
// entry absorbs rounding drift so that principal sums exactly to amount and
// the final remaining balance is exactly zero.
func ComputeSchedule(amount float64, numPayments int, annualRate float64, start time.Time, conv RateConvention) (Plan, error) {
	if amount <= 0 {
		return Plan{}, fmt.Errorf("%w: purchase amount must be positive", ErrInvalidTerms)
	}
	if numPayments < 1 {
		return Plan{}, fmt.Errorf("%w: number of payments must be at least 1", ErrInvalidTerms)
	}
	if annualRate < 0 {
		return Plan{}, fmt.Errorf("%w: interest rate must be non-negative", ErrInvalidTerms)
	}
	if conv == nil {
		conv = MonthlyCompounding
	}

	n := float64(numPayments)
	r := conv(annualRate)

	var payment float64
	if r == 0 {
		payment = amount / n
	} else {
		payment = amount * r / (1 - math.Pow(1+r, -n))
	}

	schedule := make([]models.PaymentScheduleEntry, 0, numPayments)
	balance := amount
	due := start
	totalInterest := 0.0
	principalShown := 0.0

	for i := 1; i <= numPayments; i++ {
		due = due.AddDate(0, 1, 0)

		interest := 0.0
		if r > 0 {
			interest = balance * r
		}
		principal := payment - interest
		balance -= principal
		totalInterest += interest

		// Displayed principal: round each entry, then reconcile the last one
		// against the exact purchase amount.
		var entryPrincipal float64
		if i == numPayments {
			entryPrincipal = round2(amount - principalShown)
		} else {
			entryPrincipal = round2(principal)
		}
		principalShown += entryPrincipal

		entryInterest := round2(interest)
		schedule = append(schedule, models.PaymentScheduleEntry{
			PaymentNumber:    i,
			DueDate:          due,
			Principal:        entryPrincipal,
			Interest:         entryInterest,
			TotalPayment:     round2(entryPrincipal + entryInterest),
			RemainingBalance: round2(amount - principalShown),
		})
	}

	return Plan{
		Schedule:       schedule,
		MonthlyPayment: round2(payment),
		TotalInterest:  round2(totalInterest),
		TotalCost:      round2(amount + totalInterest),
	}, nil
}
