package risk

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wisespend/installment-service/internal/models"
)

// Engine runs the full affordability pipeline: amortization, ratios, factor
// detection, scoring, and composition. It holds no mutable state; a single
// instance is safe for any number of concurrent calls.
type Engine struct {
	conv RateConvention
	log  *logrus.Logger
}

// NewEngine builds an engine with the standard monthly-compounding rate
// convention.
func NewEngine(log *logrus.Logger) *Engine {
	return &Engine{conv: MonthlyCompounding, log: log}
}

// NewEngineWithConvention builds an engine with a custom periodic-rate
// conversion, for callers that need a different amortization convention.
func NewEngineWithConvention(log *logrus.Logger, conv RateConvention) *Engine {
	return &Engine{conv: conv, log: log}
}

// Evaluate computes the risk assessment for a purchase against a financial
// snapshot. Due dates start one month after start; everything else is a pure
// function of the inputs. The only error is ErrInvalidTerms.
func (e *Engine) Evaluate(purchase models.PurchaseRequest, snap models.FinancialSnapshot, start time.Time) (models.RiskAssessment, error) {
	plan, err := ComputeSchedule(purchase.Amount, purchase.NumPayments, purchase.InterestRate, start, e.conv)
	if err != nil {
		return models.RiskAssessment{}, err
	}

	ratios := ComputeRatios(plan.MonthlyPayment, plan.Schedule[0].TotalPayment, snap)
	factors := DetectFactors(ratios, snap, purchase)
	score, level := Score(factors)
	asmt := Compose(level, score, ratios, factors, snap, purchase, plan)

	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"amount":       purchase.Amount,
			"num_payments": purchase.NumPayments,
			"risk_score":   score,
			"risk_level":   level,
			"factors":      len(factors),
		}).Debug("risk assessment computed")
	}
	return asmt, nil
}
