package models

import "time"

// PaymentScheduleEntry is one installment in an amortization schedule.
// Monetary fields are rounded to 2 decimals for display; the schedule builder
// guarantees that principal sums exactly to the purchase amount and that the
// final remaining balance is exactly zero.
type PaymentScheduleEntry struct {
	PaymentNumber    int       `json:"payment_number"`
	DueDate          time.Time `json:"due_date"`
	Principal        float64   `json:"principal"`
	Interest         float64   `json:"interest"`
	TotalPayment     float64   `json:"total_payment"`
	RemainingBalance float64   `json:"remaining_balance"`
}
