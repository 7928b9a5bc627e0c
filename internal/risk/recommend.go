package risk

import (
	"fmt"
	"math"

	"github.com/wisespend/installment-service/internal/models"
)

// Canonical verdicts, one per risk level.
var verdicts = map[models.RiskLevel]string{
	models.RiskLevelGreen:  "This purchase fits comfortably in your budget",
	models.RiskLevelYellow: "Manageable, but monitor your spending",
	models.RiskLevelOrange: "This could strain your budget — consider alternatives",
	models.RiskLevelRed:    "High risk — this purchase may cause financial hardship",
}

// Risk drivers, used to pick which tips apply.
type driver int

const (
	driverNone driver = iota
	driverDebt
	driverCashFlow
	driverBehavioral
)

var factorDrivers = map[string]driver{
	FactorDebtToIncome:       driverDebt,
	FactorCreditCardDebt:     driverDebt,
	FactorMortgageConflict:   driverDebt,
	FactorInstallmentStack:   driverDebt,
	FactorPaymentToIncome:    driverCashFlow,
	FactorNegativeFunds:      driverCashFlow,
	FactorOverdraftRisk:      driverCashFlow,
	FactorYoungHighValue:     driverBehavioral,
	FactorDiscretionaryTight: driverBehavioral,
}

var driverTips = map[driver][]string{
	driverDebt: {
		"Pay down existing balances before taking on new installments",
		"Keep total debt payments under 36% of your monthly income",
	},
	driverCashFlow: {
		"Build a buffer of at least one month of expenses before committing to new payments",
		"Review subscriptions and recurring charges to free up monthly cash",
	},
	driverBehavioral: {
		"Sleep on large discretionary purchases for a week before committing",
		"Compare total cost across payment plans, not just the monthly amount",
	},
	driverNone: {
		"Keep tracking your spending to stay in this comfortable zone",
	},
}

// Compose assembles the final assessment from the engine's intermediate
// results. It always returns a complete, well-formed value; missing income
// only reduces confidence, it never fails the call.
func Compose(level models.RiskLevel, score float64, ratios models.Ratios, factors []models.RiskFactor,
	snap models.FinancialSnapshot, purchase models.PurchaseRequest, plan Plan) models.RiskAssessment {

	asmt := models.RiskAssessment{
		RiskLevel:      level,
		RiskScore:      score,
		Verdict:        verdicts[level],
		Ratios:         ratios,
		RiskFactors:    factors,
		MonthlyPayment: plan.MonthlyPayment,
		TotalInterest:  plan.TotalInterest,
		TotalCost:      plan.TotalCost,
		Schedule:       plan.Schedule,
	}

	asmt.PersonalizedMessage = personalizedMessage(level, snap, plan)
	asmt.Warnings = warnings(factors)
	asmt.Tips = driverTips[dominantDriver(factors)]
	asmt.Statistics = statistics(ratios, plan, purchase)

	if !level.ShouldProceed() {
		asmt.Alternative = alternative(ratios, snap, purchase, plan)
		fee := round2(plan.MonthlyPayment * 0.05)
		asmt.PotentialLateFee = &fee
		asmt.HiddenCostMessage = fmt.Sprintf(
			"A missed payment could add around $%.2f in late fees on top of $%.2f total interest", fee, plan.TotalInterest)
	}
	if ratios.BalanceAfterFirstPayment != nil && *ratios.BalanceAfterFirstPayment < 0 {
		overdraft := -*ratios.BalanceAfterFirstPayment
		asmt.PotentialOverdraft = &overdraft
		if asmt.HiddenCostMessage == "" {
			asmt.HiddenCostMessage = fmt.Sprintf(
				"The first payment would overdraw your account by $%.2f", overdraft)
		}
	}

	return asmt
}

func personalizedMessage(level models.RiskLevel, snap models.FinancialSnapshot, plan Plan) string {
	if !snap.HasIncome() {
		return fmt.Sprintf(
			"Based on limited financial information, this plan costs $%.2f per month. "+
				"Add your income for a full affordability check.", plan.MonthlyPayment)
	}
	income := *snap.MonthlyIncome
	share := plan.MonthlyPayment / income * 100
	switch level {
	case models.RiskLevelGreen:
		return fmt.Sprintf("At $%.2f per month (%.0f%% of your income), this plan leaves your budget in good shape.",
			plan.MonthlyPayment, share)
	case models.RiskLevelYellow:
		return fmt.Sprintf("The $%.2f monthly payment (%.0f%% of your income) is workable, but keep an eye on other spending.",
			plan.MonthlyPayment, share)
	case models.RiskLevelOrange:
		return fmt.Sprintf("A $%.2f monthly payment (%.0f%% of your income) would stretch your budget. Consider the alternative below.",
			plan.MonthlyPayment, share)
	default:
		return fmt.Sprintf("Taking on $%.2f per month (%.0f%% of your income) on top of your current obligations puts you at serious risk of missed payments.",
			plan.MonthlyPayment, share)
	}
}

func warnings(factors []models.RiskFactor) []string {
	var out []string
	for _, f := range factors {
		if f.Severity == models.SeverityHigh || f.Severity == models.SeverityCritical {
			out = append(out, f.Message)
		}
	}
	return out
}

// dominantDriver picks the driver whose factors carry the most weight.
// Ties resolve debt > cash-flow > behavioral, matching detection order.
func dominantDriver(factors []models.RiskFactor) driver {
	weights := map[driver]float64{}
	for _, f := range factors {
		weights[factorDrivers[f.Name]] += severityWeights[f.Severity]
	}
	best, bestWeight := driverNone, 0.0
	for _, d := range []driver{driverDebt, driverCashFlow, driverBehavioral} {
		if weights[d] > bestWeight {
			best, bestWeight = d, weights[d]
		}
	}
	return best
}

func statistics(ratios models.Ratios, plan Plan, purchase models.PurchaseRequest) []string {
	var stats []string
	if ratios.PaymentToIncomeRatio != nil {
		stats = append(stats, fmt.Sprintf("This payment is %.0f%% of your monthly income", *ratios.PaymentToIncomeRatio*100))
	}
	if ratios.DTIRatio != nil {
		stats = append(stats, fmt.Sprintf("Your total debt load would be %.0f%% of your income", *ratios.DTIRatio*100))
	}
	if ratios.RemainingMonthlyFunds != nil {
		stats = append(stats, fmt.Sprintf("You would have $%.2f left each month after all obligations", *ratios.RemainingMonthlyFunds))
	}
	if plan.TotalInterest > 0 {
		stats = append(stats, fmt.Sprintf("Financing adds $%.2f in interest over %d payments", plan.TotalInterest, purchase.NumPayments))
	}
	return stats
}

// alternative proposes a single way out for orange/red assessments: delay the
// purchase and save cash when the monthly budget is underwater but would
// recover without the new payment, otherwise a cheaper equivalent.
func alternative(ratios models.Ratios, snap models.FinancialSnapshot,
	purchase models.PurchaseRequest, plan Plan) *models.AlternativeRecommendation {

	if ratios.RemainingMonthlyFunds != nil && *ratios.RemainingMonthlyFunds < 0 && snap.HasIncome() {
		// Capacity to save once the new payment is off the table.
		capacity := *ratios.RemainingMonthlyFunds + plan.MonthlyPayment
		if capacity > 0 {
			days := int(math.Ceil(purchase.Amount / (capacity / 30)))
			return &models.AlternativeRecommendation{
				Type:  models.AlternativeDelayAndSave,
				Title: "Wait and pay in cash",
				Description: fmt.Sprintf(
					"Saving $%.2f per month, you could buy this outright in about %d days and skip $%.2f of interest.",
					round2(capacity), days, plan.TotalInterest),
				EstimatedSavings: plan.TotalInterest,
				DaysNeeded:       days,
			}
		}
	}

	savings := round2(purchase.Amount * 0.20)
	return &models.AlternativeRecommendation{
		Type:  models.AlternativeCheaperEquivalent,
		Title: "Look for a more affordable option",
		Description: fmt.Sprintf(
			"A comparable %s purchase around $%.2f would keep roughly $%.2f in your pocket.",
			purchase.Category, round2(purchase.Amount*0.80), savings),
		EstimatedSavings: savings,
	}
}
