package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/wisespend/installment-service/internal/models"
	"github.com/wisespend/installment-service/internal/risk"
)

// InstallmentStore is the persistence collaborator. The engine itself never
// writes; storage happens only when the user accepts a plan.
type InstallmentStore interface {
	CreateInstallment(inst *models.Installment) error
	FindInstallmentByID(id uuid.UUID) (*models.Installment, error)
	FindInstallmentsByUser(userID string) ([]models.Installment, error)
	MarkPaymentPaid(installmentID uuid.UUID, paymentNumber int) error
	DeleteInstallment(id uuid.UUID) error
}

// RateSource supplies the market interest rate used when a request omits one.
type RateSource interface {
	GetKeyRate() (float64, error)
}

// Service handles business logic
type Service struct {
	repo  InstallmentStore
	rates RateSource
	eng   *risk.Engine
	log   *logrus.Logger
	now   func() time.Time
}

// NewService initializes a new service
func NewService(repo InstallmentStore, rates RateSource, log *logrus.Logger) *Service {
	return &Service{
		repo:  repo,
		rates: rates,
		eng:   risk.NewEngine(log),
		log:   log,
		now:   time.Now,
	}
}

// resolveRate picks the interest rate for a request: the caller's explicit
// rate wins; otherwise the current market rate, with 0% as the last resort
// when the rate source is down.
func (s *Service) resolveRate(req models.CalculatorRequest) float64 {
	if req.InterestRate != nil {
		return *req.InterestRate
	}
	rate, err := s.rates.GetKeyRate()
	if err != nil {
		s.log.Warnf("Key rate unavailable, defaulting to 0%%: %v", err)
		return 0
	}
	return rate
}

// CalculateRisk runs the affordability engine for a calculator request.
// Missing income degrades the output (reduced-confidence message, nil
// ratios), it never fails the call; the only error is invalid terms.
func (s *Service) CalculateRisk(req models.CalculatorRequest) (*models.RiskAssessment, error) {
	snap, err := req.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", risk.ErrInvalidTerms, err)
	}
	purchase, err := req.Purchase(s.resolveRate(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", risk.ErrInvalidTerms, err)
	}

	asmt, err := s.eng.Evaluate(purchase, snap, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Infof("Risk assessment: amount=%.2f level=%s score=%.0f", purchase.Amount, asmt.RiskLevel, asmt.RiskScore)
	return &asmt, nil
}

// CreateInstallment evaluates the purchase and stores the accepted plan with
// its schedule.
func (s *Service) CreateInstallment(userID, notifyEmail string, req models.CalculatorRequest) (*models.Installment, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", risk.ErrInvalidTerms)
	}

	snap, err := req.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", risk.ErrInvalidTerms, err)
	}
	purchase, err := req.Purchase(s.resolveRate(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", risk.ErrInvalidTerms, err)
	}

	asmt, err := s.eng.Evaluate(purchase, snap, s.now())
	if err != nil {
		return nil, err
	}

	inst := &models.Installment{
		ID:             uuid.New(),
		UserID:         userID,
		NotifyEmail:    notifyEmail,
		PurchaseAmount: purchase.Amount,
		Category:       purchase.Category,
		NumPayments:    purchase.NumPayments,
		InterestRate:   purchase.InterestRate,
		MonthlyPayment: asmt.MonthlyPayment,
		TotalInterest:  asmt.TotalInterest,
		TotalCost:      asmt.TotalCost,
		RiskLevel:      asmt.RiskLevel,
		RiskScore:      asmt.RiskScore,
		Status:         models.InstallmentStatusActive,
	}
	for _, entry := range asmt.Schedule {
		inst.Payments = append(inst.Payments, models.InstallmentPayment{
			ID:               uuid.New(),
			InstallmentID:    inst.ID,
			PaymentNumber:    entry.PaymentNumber,
			DueDate:          entry.DueDate,
			Principal:        entry.Principal,
			Interest:         entry.Interest,
			TotalPayment:     entry.TotalPayment,
			RemainingBalance: entry.RemainingBalance,
		})
	}

	if err := s.repo.CreateInstallment(inst); err != nil {
		return nil, err
	}

	s.log.Infof("Installment created: id=%s user=%s amount=%.2f risk=%s", inst.ID, userID, purchase.Amount, inst.RiskLevel)
	return inst, nil
}

// GetInstallment returns one installment with its schedule
func (s *Service) GetInstallment(id uuid.UUID) (*models.Installment, error) {
	return s.repo.FindInstallmentByID(id)
}

// ListInstallments returns all installments of a user
func (s *Service) ListInstallments(userID string) ([]models.Installment, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", risk.ErrInvalidTerms)
	}
	return s.repo.FindInstallmentsByUser(userID)
}

// MarkPaymentPaid records a payment on an installment
func (s *Service) MarkPaymentPaid(id uuid.UUID, paymentNumber int) error {
	if paymentNumber < 1 {
		return fmt.Errorf("%w: payment number must be at least 1", risk.ErrInvalidTerms)
	}
	return s.repo.MarkPaymentPaid(id, paymentNumber)
}

// DeleteInstallment removes a stored installment
func (s *Service) DeleteInstallment(id uuid.UUID) error {
	return s.repo.DeleteInstallment(id)
}
