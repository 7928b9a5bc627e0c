package models

import "fmt"

// CalculatorRequest is the wire body of POST /installments/calculator.
// InterestRate is optional; when absent the service substitutes the current
// market rate from the key-rate source.
type CalculatorRequest struct {
	PurchaseAmount            float64            `json:"purchase_amount"`
	Category                  string             `json:"category"`
	NumPayments               int                `json:"num_payments"`
	InterestRate              *float64           `json:"interest_rate,omitempty"`
	MonthlyIncome             *float64           `json:"monthly_income,omitempty"`
	CurrentBalance            *float64           `json:"current_balance,omitempty"`
	AgeGroup                  string             `json:"age_group,omitempty"`
	ActiveInstallmentsCount   int                `json:"active_installments_count"`
	ActiveInstallmentsMonthly float64            `json:"active_installments_monthly"`
	CreditCardDebt            bool               `json:"credit_card_debt"`
	OtherMonthlyObligations   MonthlyObligations `json:"other_monthly_obligations"`
	PlanningMortgage          bool               `json:"planning_mortgage"`
}

// Snapshot builds the validated financial snapshot from the request.
func (r CalculatorRequest) Snapshot() (FinancialSnapshot, error) {
	ageGroup, err := ParseAgeGroup(r.AgeGroup)
	if err != nil {
		return FinancialSnapshot{}, err
	}
	snap := FinancialSnapshot{
		MonthlyIncome:             r.MonthlyIncome,
		CurrentBalance:            r.CurrentBalance,
		AgeGroup:                  ageGroup,
		CreditCardDebt:            r.CreditCardDebt,
		Obligations:               r.OtherMonthlyObligations,
		PlanningMortgage:          r.PlanningMortgage,
		ActiveInstallmentsCount:   r.ActiveInstallmentsCount,
		ActiveInstallmentsMonthly: r.ActiveInstallmentsMonthly,
	}
	if err := snap.Validate(); err != nil {
		return FinancialSnapshot{}, err
	}
	return snap, nil
}

// Purchase builds the validated purchase terms from the request using the
// given annual interest rate.
func (r CalculatorRequest) Purchase(interestRate float64) (PurchaseRequest, error) {
	category, err := ParseCategory(r.Category)
	if err != nil {
		return PurchaseRequest{}, err
	}
	if interestRate < 0 {
		return PurchaseRequest{}, fmt.Errorf("interest_rate must be non-negative")
	}
	return PurchaseRequest{
		Amount:       r.PurchaseAmount,
		Category:     category,
		NumPayments:  r.NumPayments,
		InterestRate: interestRate,
	}, nil
}
