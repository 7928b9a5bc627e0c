package models

// Ratios holds the income- and balance-relative metrics. Fields are nil when
// the snapshot did not carry the inputs they need.
type Ratios struct {
	DTIRatio                 *float64 `json:"dti_ratio,omitempty"`
	PaymentToIncomeRatio     *float64 `json:"payment_to_income_ratio,omitempty"`
	RemainingMonthlyFunds    *float64 `json:"remaining_monthly_funds,omitempty"`
	BalanceAfterFirstPayment *float64 `json:"balance_after_first_payment,omitempty"`
}

// Alternative recommendation types.
const (
	AlternativeDelayAndSave      = "delay_and_save"
	AlternativeCheaperEquivalent = "cheaper_alternative"
)

// AlternativeRecommendation suggests what to do instead of an orange/red
// purchase.
type AlternativeRecommendation struct {
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	EstimatedSavings float64 `json:"estimated_savings"`
	DaysNeeded       int     `json:"days_needed,omitempty"`
}

// RiskAssessment is the terminal artifact of a calculation. It is created
// fresh per call and never mutated afterwards.
type RiskAssessment struct {
	RiskLevel           RiskLevel                  `json:"risk_level"`
	RiskScore           float64                    `json:"risk_score"`
	Verdict             string                     `json:"verdict"`
	Ratios              Ratios                     `json:"ratios"`
	RiskFactors         []RiskFactor               `json:"risk_factors"`
	PersonalizedMessage string                     `json:"personalized_message"`
	Warnings            []string                   `json:"warnings"`
	Tips                []string                   `json:"tips"`
	Statistics          []string                   `json:"statistics"`
	Alternative         *AlternativeRecommendation `json:"alternative_recommendation,omitempty"`

	MonthlyPayment float64                `json:"monthly_payment"`
	TotalInterest  float64                `json:"total_interest"`
	TotalCost      float64                `json:"total_cost"`
	Schedule       []PaymentScheduleEntry `json:"payment_schedule"`

	PotentialLateFee   *float64 `json:"potential_late_fee,omitempty"`
	PotentialOverdraft *float64 `json:"potential_overdraft,omitempty"`
	HiddenCostMessage  string   `json:"hidden_cost_message,omitempty"`
}
