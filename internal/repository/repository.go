package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wisespend/installment-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateInstallment stores an installment and its payment schedule in one
// transaction.
func (r *Repository) CreateInstallment(inst *models.Installment) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO installments (id, user_id, notify_email, purchase_amount, category, num_payments,
			interest_rate, monthly_payment, total_interest, total_cost, risk_level, risk_score, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err = tx.QueryRow(query, inst.ID, inst.UserID, inst.NotifyEmail, inst.PurchaseAmount, inst.Category,
		inst.NumPayments, inst.InterestRate, inst.MonthlyPayment, inst.TotalInterest, inst.TotalCost,
		inst.RiskLevel, inst.RiskScore, inst.Status).
		Scan(&inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create installment: %w", err)
	}

	for i := range inst.Payments {
		p := &inst.Payments[i]
		query := `
			INSERT INTO installment_payments (id, installment_id, payment_number, due_date,
				principal, interest, total_payment, remaining_balance, paid)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`
		if _, err := tx.Exec(query, p.ID, inst.ID, p.PaymentNumber, p.DueDate,
			p.Principal, p.Interest, p.TotalPayment, p.RemainingBalance); err != nil {
			return fmt.Errorf("failed to create payment %d: %w", p.PaymentNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit installment: %w", err)
	}
	return nil
}

// FindInstallmentByID retrieves an installment with its schedule rows
func (r *Repository) FindInstallmentByID(id uuid.UUID) (*models.Installment, error) {
	inst := &models.Installment{}
	query := `
		SELECT id, user_id, notify_email, purchase_amount, category, num_payments, interest_rate,
			monthly_payment, total_interest, total_cost, risk_level, risk_score, status, created_at, updated_at
		FROM installments
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&inst.ID, &inst.UserID, &inst.NotifyEmail, &inst.PurchaseAmount, &inst.Category,
			&inst.NumPayments, &inst.InterestRate, &inst.MonthlyPayment, &inst.TotalInterest,
			&inst.TotalCost, &inst.RiskLevel, &inst.RiskScore, &inst.Status, &inst.CreatedAt, &inst.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installment: %w", err)
	}

	payments, err := r.findPayments(id)
	if err != nil {
		return nil, err
	}
	inst.Payments = payments
	return inst, nil
}

func (r *Repository) findPayments(installmentID uuid.UUID) ([]models.InstallmentPayment, error) {
	query := `
		SELECT id, installment_id, payment_number, due_date, principal, interest,
			total_payment, remaining_balance, paid, paid_at
		FROM installment_payments
		WHERE installment_id = $1
		ORDER BY payment_number`
	rows, err := r.db.Query(query, installmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	defer rows.Close()

	var payments []models.InstallmentPayment
	for rows.Next() {
		var p models.InstallmentPayment
		if err := rows.Scan(&p.ID, &p.InstallmentID, &p.PaymentNumber, &p.DueDate, &p.Principal,
			&p.Interest, &p.TotalPayment, &p.RemainingBalance, &p.Paid, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// FindInstallmentsByUser retrieves all installments of a user, newest first
func (r *Repository) FindInstallmentsByUser(userID string) ([]models.Installment, error) {
	query := `
		SELECT id, user_id, notify_email, purchase_amount, category, num_payments, interest_rate,
			monthly_payment, total_interest, total_cost, risk_level, risk_score, status, created_at, updated_at
		FROM installments
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []models.Installment
	for rows.Next() {
		var inst models.Installment
		if err := rows.Scan(&inst.ID, &inst.UserID, &inst.NotifyEmail, &inst.PurchaseAmount,
			&inst.Category, &inst.NumPayments, &inst.InterestRate, &inst.MonthlyPayment,
			&inst.TotalInterest, &inst.TotalCost, &inst.RiskLevel, &inst.RiskScore, &inst.Status,
			&inst.CreatedAt, &inst.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

// MarkPaymentPaid marks one schedule row paid and completes the installment
// when it was the last unpaid row.
func (r *Repository) MarkPaymentPaid(installmentID uuid.UUID, paymentNumber int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE installment_payments
		SET paid = TRUE, paid_at = CURRENT_TIMESTAMP
		WHERE installment_id = $1 AND payment_number = $2 AND NOT paid`,
		installmentID, paymentNumber)
	if err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	var remaining int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM installment_payments
		WHERE installment_id = $1 AND NOT paid`, installmentID).Scan(&remaining)
	if err != nil {
		return fmt.Errorf("failed to count unpaid payments: %w", err)
	}
	if remaining == 0 {
		if _, err := tx.Exec(`
			UPDATE installments SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			models.InstallmentStatusCompleted, installmentID); err != nil {
			return fmt.Errorf("failed to complete installment: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteInstallment removes an installment and its schedule rows
func (r *Repository) DeleteInstallment(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM installments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete installment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindPaymentsDueWithin returns unpaid schedule rows due within the next
// days, plus everything already overdue, for the reminder job.
func (r *Repository) FindPaymentsDueWithin(days int) ([]models.DuePayment, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	query := `
		SELECT i.id, i.user_id, i.notify_email, p.payment_number, p.due_date, p.total_payment
		FROM installment_payments p
		JOIN installments i ON i.id = p.installment_id
		WHERE NOT p.paid AND i.status = $1 AND p.due_date <= $2
		ORDER BY p.due_date`
	rows, err := r.db.Query(query, models.InstallmentStatusActive, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to find due payments: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var due []models.DuePayment
	for rows.Next() {
		var d models.DuePayment
		if err := rows.Scan(&d.InstallmentID, &d.UserID, &d.NotifyEmail, &d.PaymentNumber,
			&d.DueDate, &d.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan due payment: %w", err)
		}
		d.Overdue = d.DueDate.Before(now)
		due = append(due, d)
	}
	return due, rows.Err()
}
