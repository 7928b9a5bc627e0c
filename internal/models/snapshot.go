package models

import "fmt"

// AgeGroup is the user's age bracket. The zero value means the caller did not
// provide one; age-dependent rules are skipped in that case.
type AgeGroup string

const (
	AgeGroupUnknown AgeGroup = ""
	AgeGroup18To24  AgeGroup = "18-24"
	AgeGroup25To34  AgeGroup = "25-34"
	AgeGroup35To44  AgeGroup = "35-44"
	AgeGroup45Plus  AgeGroup = "45+"
)

// ParseAgeGroup validates a wire value. An empty string is accepted as unknown.
func ParseAgeGroup(s string) (AgeGroup, error) {
	switch AgeGroup(s) {
	case AgeGroupUnknown, AgeGroup18To24, AgeGroup25To34, AgeGroup35To44, AgeGroup45Plus:
		return AgeGroup(s), nil
	}
	return AgeGroupUnknown, fmt.Errorf("unknown age group: %q", s)
}

// MonthlyObligations holds the user's fixed monthly payments. Absent fields
// default to zero.
type MonthlyObligations struct {
	CreditCardPayment    float64 `json:"credit_card_payment"`
	OtherLoansPayment    float64 `json:"other_loans_payment"`
	RentPayment          float64 `json:"rent_payment"`
	SubscriptionsPayment float64 `json:"subscriptions_payment"`
}

// Total sums all obligation fields.
func (o MonthlyObligations) Total() float64 {
	return o.CreditCardPayment + o.OtherLoansPayment + o.RentPayment + o.SubscriptionsPayment
}

// FinancialSnapshot is the caller-owned view of the user's finances at
// calculation time. Income and balance are pointers so that "not provided" is
// never confused with zero.
type FinancialSnapshot struct {
	MonthlyIncome             *float64           `json:"monthly_income,omitempty"`
	CurrentBalance            *float64           `json:"current_balance,omitempty"`
	AgeGroup                  AgeGroup           `json:"age_group,omitempty"`
	CreditCardDebt            bool               `json:"credit_card_debt"`
	Obligations               MonthlyObligations `json:"other_monthly_obligations"`
	PlanningMortgage          bool               `json:"planning_mortgage"`
	ActiveInstallmentsCount   int                `json:"active_installments_count"`
	ActiveInstallmentsMonthly float64            `json:"active_installments_monthly"`
}

// HasIncome reports whether income-relative ratios can be computed.
func (s FinancialSnapshot) HasIncome() bool {
	return s.MonthlyIncome != nil && *s.MonthlyIncome > 0
}

// Validate rejects negative monetary fields. CurrentBalance may be negative
// (overdraft) and is deliberately not checked.
func (s FinancialSnapshot) Validate() error {
	if s.MonthlyIncome != nil && *s.MonthlyIncome < 0 {
		return fmt.Errorf("monthly_income must be non-negative")
	}
	for name, v := range map[string]float64{
		"credit_card_payment":         s.Obligations.CreditCardPayment,
		"other_loans_payment":         s.Obligations.OtherLoansPayment,
		"rent_payment":                s.Obligations.RentPayment,
		"subscriptions_payment":       s.Obligations.SubscriptionsPayment,
		"active_installments_monthly": s.ActiveInstallmentsMonthly,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if s.ActiveInstallmentsCount < 0 {
		return fmt.Errorf("active_installments_count must be non-negative")
	}
	return nil
}

// Float64 returns a pointer to v, for optional numeric fields.
func Float64(v float64) *float64 {
	return &v
}
