package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/wisespend/installment-service/internal/models"
	"github.com/wisespend/installment-service/internal/repository"
	"github.com/wisespend/installment-service/internal/risk"
	"github.com/wisespend/installment-service/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register wires the handler's routes onto the router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/installments/calculator", h.Calculate).Methods("POST")
	r.HandleFunc("/installments", h.CreateInstallment).Methods("POST")
	r.HandleFunc("/installments", h.ListInstallments).Methods("GET")
	r.HandleFunc("/installments/{id}", h.GetInstallment).Methods("GET")
	r.HandleFunc("/installments/{id}", h.DeleteInstallment).Methods("DELETE")
	r.HandleFunc("/installments/{id}/payments/{number}/pay", h.MarkPaymentPaid).Methods("POST")
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, risk.ErrInvalidTerms):
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "installment not found"})
	default:
		h.log.Errorf("Internal error: %v", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// Calculate runs the affordability engine without persisting anything
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.CalculatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	asmt, err := h.svc.CalculateRisk(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, asmt)
}

// createInstallmentRequest wraps the calculator payload with the owner.
type createInstallmentRequest struct {
	UserID      string `json:"user_id"`
	NotifyEmail string `json:"notify_email,omitempty"`
	models.CalculatorRequest
}

// CreateInstallment stores an accepted plan
func (h *Handler) CreateInstallment(w http.ResponseWriter, r *http.Request) {
	var req createInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	inst, err := h.svc.CreateInstallment(req.UserID, req.NotifyEmail, req.CalculatorRequest)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, inst)
}

// ListInstallments returns the installments of the user in ?user_id=
func (h *Handler) ListInstallments(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	installments, err := h.svc.ListInstallments(userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if installments == nil {
		installments = []models.Installment{}
	}
	h.writeJSON(w, http.StatusOK, installments)
}

// GetInstallment returns one installment with its schedule
func (h *Handler) GetInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid installment id"})
		return
	}

	inst, err := h.svc.GetInstallment(id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, inst)
}

// MarkPaymentPaid records a schedule payment as paid
func (h *Handler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid installment id"})
		return
	}
	number, err := strconv.Atoi(vars["number"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payment number"})
		return
	}

	if err := h.svc.MarkPaymentPaid(id, number); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

// DeleteInstallment removes a stored installment
func (h *Handler) DeleteInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid installment id"})
		return
	}

	if err := h.svc.DeleteInstallment(id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
