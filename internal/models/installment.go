package models

import (
	"time"

	"github.com/google/uuid"
)

// Installment statuses.
const (
	InstallmentStatusActive    = "active"
	InstallmentStatusCompleted = "completed"
)

// Installment is a purchase plan the user accepted and stored.
type Installment struct {
	ID             uuid.UUID `json:"id"`
	UserID         string    `json:"user_id"`
	NotifyEmail    string    `json:"notify_email,omitempty"`
	PurchaseAmount float64   `json:"purchase_amount"`
	Category       Category  `json:"category"`
	NumPayments    int       `json:"num_payments"`
	InterestRate   float64   `json:"interest_rate"`
	MonthlyPayment float64   `json:"monthly_payment"`
	TotalInterest  float64   `json:"total_interest"`
	TotalCost      float64   `json:"total_cost"`
	RiskLevel      RiskLevel `json:"risk_level"`
	RiskScore      float64   `json:"risk_score"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Payments []InstallmentPayment `json:"payments,omitempty"`
}

// InstallmentPayment is one stored schedule row of an installment.
type InstallmentPayment struct {
	ID               uuid.UUID  `json:"id"`
	InstallmentID    uuid.UUID  `json:"installment_id"`
	PaymentNumber    int        `json:"payment_number"`
	DueDate          time.Time  `json:"due_date"`
	Principal        float64    `json:"principal"`
	Interest         float64    `json:"interest"`
	TotalPayment     float64    `json:"total_payment"`
	RemainingBalance float64    `json:"remaining_balance"`
	Paid             bool       `json:"paid"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

// DuePayment is a reminder-job row: an unpaid schedule entry joined with the
// installment it belongs to.
type DuePayment struct {
	InstallmentID uuid.UUID
	UserID        string
	NotifyEmail   string
	PaymentNumber int
	DueDate       time.Time
	Amount        float64
	Overdue       bool
}
