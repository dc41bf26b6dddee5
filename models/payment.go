package models

import "time"

// Payment records a Razorpay payment attempt for a student
type Payment struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	CourseID     string    `json:"courseId,omitempty"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	OrderID      string    `json:"orderId"`
	PaymentID    string    `json:"paymentId,omitempty"`
	RazorpaySign string    `json:"razorpaySignature,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RazorpayOrder is the payload returned to the checkout page
type RazorpayOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}
