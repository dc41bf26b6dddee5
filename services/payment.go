package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"

	"techpro-backoffice/config"
	"techpro-backoffice/errors"
	"techpro-backoffice/storage"
)

const RegistrationFee = 1870.0

// PaymentType constants
const (
	PaymentTypeRegistration = "REGISTRATION"
	PaymentTypeCourseFee    = "COURSE_FEE"
)

// PaymentService validates payment requests and talks to Razorpay
type PaymentService struct {
	students *storage.StudentStore
	courses  *storage.CourseStore
}

// InitiatePaymentRequest represents a payment initiation request
type InitiatePaymentRequest struct {
	StudentID   string  `json:"studentId"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"paymentType"`
	CourseID    string  `json:"courseId,omitempty"`
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(students *storage.StudentStore, courses *storage.CourseStore) *PaymentService {
	return &PaymentService{students: students, courses: courses}
}

// ValidateAndPrepare resolves the amount for the payment type and confirms
// the student exists.
func (s *PaymentService) ValidateAndPrepare(req InitiatePaymentRequest) (*InitiatePaymentRequest, error) {
	switch req.PaymentType {
	case PaymentTypeRegistration:
		if req.Amount == 0 {
			req.Amount = RegistrationFee
		}

	case PaymentTypeCourseFee:
		if req.CourseID == "" {
			return nil, errors.NewInvalidParamsError("course ID required for course fee payment")
		}
		course, err := s.courses.Get(req.CourseID)
		if err != nil {
			return nil, errors.NewNotFoundError("Course not found")
		}
		req.Amount = course.Fee

	default:
		return nil, errors.NewInvalidParamsError("invalid payment type. must be REGISTRATION or COURSE_FEE")
	}

	if req.Amount <= 0 {
		return nil, errors.NewInvalidParamsError("invalid amount: must be greater than 0")
	}

	if _, err := s.students.Get(req.StudentID); err != nil {
		return nil, errors.NewNotFoundError("Student not found")
	}

	return &req, nil
}

// CreateOrder creates a Razorpay order and returns its id and receipt tag
func (s *PaymentService) CreateOrder(req InitiatePaymentRequest) (orderID, receipt string, err error) {
	keyID := config.AppConfig.RazorpayKeyID
	keySecret := config.AppConfig.RazorpayKeySecret

	if keyID == "" || keySecret == "" {
		return "", "", fmt.Errorf("razorpay credentials not configured")
	}

	client := razorpay.NewClient(keyID, keySecret)
	receipt = fmt.Sprintf("rcpt_%s_%s", req.StudentID, req.PaymentType)

	data := map[string]interface{}{
		"amount":   int(req.Amount * 100), // paise
		"currency": "INR",
		"receipt":  receipt,
	}

	resp, err := client.Order.Create(data, nil)
	if err != nil {
		return "", "", fmt.Errorf("error creating razorpay order: %w", err)
	}

	id, ok := resp["id"].(string)
	if !ok {
		return "", "", fmt.Errorf("razorpay order response missing id")
	}

	return id, receipt, nil
}

// VerifySignature checks the Razorpay checkout callback signature:
// HMAC-SHA256 over "order_id|payment_id" with the key secret.
func (s *PaymentService) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(orderID, paymentID, signature, config.AppConfig.RazorpayKeySecret)
}

func verifySignature(orderID, paymentID, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
