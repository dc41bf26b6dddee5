package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/services"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// PaymentHandler exposes the payment initiation and verification endpoints
type PaymentHandler struct {
	payments *storage.PaymentStore
	students *storage.StudentStore
	svc      *services.PaymentService
	mailer   *services.Mailer
	log      *logger.Logger
}

func NewPaymentHandler(payments *storage.PaymentStore, students *storage.StudentStore, svc *services.PaymentService, mailer *services.Mailer, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, students: students, svc: svc, mailer: mailer, log: log}
}

// Payments handles GET /api/payments, the admin payment ledger
func (h *PaymentHandler) Payments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	payments, err := h.payments.All()
	if err != nil {
		h.log.Error("Error reading payments: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}
	resp.List(w, len(payments), payments)
}

// Initiate handles POST /api/initiate-payment. It resolves the amount for
// the payment type, creates a Razorpay order and records a PENDING payment.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req services.InitiatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	prepared, err := h.svc.ValidateAndPrepare(req)
	if err != nil {
		resp.FromError(w, err)
		return
	}

	orderID, receipt, err := h.svc.CreateOrder(*prepared)
	if err != nil {
		h.log.Error("Error creating order for student %s: %v", prepared.StudentID, err)
		resp.Error(w, http.StatusBadGateway, "Failed to create payment order")
		return
	}

	now := time.Now()
	saved, err := h.payments.Upsert(models.Payment{
		ID:        uuid.NewString(),
		StudentID: prepared.StudentID,
		CourseID:  prepared.CourseID,
		Amount:    prepared.Amount,
		Currency:  "INR",
		Status:    utils.PaymentPending,
		OrderID:   orderID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	go services.PublishEvent(services.EventPaymentInitiated, saved.ID, map[string]interface{}{
		"studentId": saved.StudentID,
		"orderId":   saved.OrderID,
		"amount":    saved.Amount,
	})

	h.log.Info("Payment initiated: order %s for student %s (%.2f)", orderID, prepared.StudentID, prepared.Amount)
	resp.Success(w, http.StatusCreated, "Order created", models.RazorpayOrder{
		OrderID:  orderID,
		Amount:   prepared.Amount,
		Currency: "INR",
		Receipt:  receipt,
	})
}

type verifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Verify handles POST /api/verify-payment. A valid checkout signature
// marks the payment PAID and emails the PDF receipt.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		resp.Error(w, http.StatusBadRequest, "order id, payment id and signature are required")
		return
	}

	if !h.svc.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		h.log.Warn("Signature mismatch for order %s", req.OrderID)
		resp.Error(w, http.StatusBadRequest, "Invalid payment signature")
		return
	}

	payment, err := h.payments.UpdateByOrderID(req.OrderID, func(p *models.Payment) error {
		p.Status = utils.PaymentPaid
		p.PaymentID = req.PaymentID
		p.RazorpaySign = req.Signature
		p.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	go services.PublishEvent(services.EventPaymentVerified, payment.ID, map[string]interface{}{
		"studentId": payment.StudentID,
		"orderId":   payment.OrderID,
		"paymentId": payment.PaymentID,
		"amount":    payment.Amount,
	})

	go h.sendReceipt(payment)

	h.log.Info("Payment verified: order %s payment %s", req.OrderID, req.PaymentID)
	resp.OK(w, "Payment verified successfully", payment)
}

// sendReceipt generates the PDF and emails it, best effort
func (h *PaymentHandler) sendReceipt(payment models.Payment) {
	student, err := h.students.Get(payment.StudentID)
	if err != nil {
		h.log.Warn("Receipt skipped, student %s not found: %v", payment.StudentID, err)
		return
	}

	path, err := services.GeneratePaymentReceipt(payment, student.Name)
	if err != nil {
		h.log.Error("Error generating receipt for order %s: %v", payment.OrderID, err)
		return
	}
	defer os.Remove(path)

	if err := h.mailer.SendPaymentReceipt(student.Email, student.Name, path); err != nil {
		h.log.Error("Error emailing receipt to %s: %v", student.Email, err)
	}
}
