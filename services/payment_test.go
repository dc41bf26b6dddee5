package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"techpro-backoffice/models"
	"techpro-backoffice/storage"
)

func signOrder(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "test_secret"
	sig := signOrder("order_123", "pay_456", secret)

	require.True(t, verifySignature("order_123", "pay_456", sig, secret))
	require.False(t, verifySignature("order_123", "pay_456", sig, "other_secret"))
	require.False(t, verifySignature("order_999", "pay_456", sig, secret))
	require.False(t, verifySignature("order_123", "pay_456", "tampered", secret))
	require.False(t, verifySignature("order_123", "pay_456", "", secret))
	require.False(t, verifySignature("order_123", "pay_456", sig, ""))
}

func TestValidateAndPrepare(t *testing.T) {
	dir := t.TempDir()
	students := storage.NewStudentStore(dir)
	courses := storage.NewCourseStore(dir)
	svc := NewPaymentService(students, courses)

	student, err := students.Create(models.Student{Name: "Asha", Email: "asha@example.com"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, courses.Add(models.Course{ID: "go-101", Name: "Go Fundamentals", Fee: 24999}))

	t.Run("registration defaults to the fixed fee", func(t *testing.T) {
		prepared, err := svc.ValidateAndPrepare(InitiatePaymentRequest{
			StudentID:   student.ID,
			PaymentType: PaymentTypeRegistration,
		})
		require.NoError(t, err)
		require.Equal(t, RegistrationFee, prepared.Amount)
	})

	t.Run("course fee comes from the catalog", func(t *testing.T) {
		prepared, err := svc.ValidateAndPrepare(InitiatePaymentRequest{
			StudentID:   student.ID,
			PaymentType: PaymentTypeCourseFee,
			CourseID:    "go-101",
			Amount:      1, // client-sent amounts are ignored for course fees
		})
		require.NoError(t, err)
		require.Equal(t, 24999.0, prepared.Amount)
	})

	t.Run("course fee requires a course id", func(t *testing.T) {
		_, err := svc.ValidateAndPrepare(InitiatePaymentRequest{
			StudentID:   student.ID,
			PaymentType: PaymentTypeCourseFee,
		})
		require.Error(t, err)
	})

	t.Run("unknown payment type rejected", func(t *testing.T) {
		_, err := svc.ValidateAndPrepare(InitiatePaymentRequest{
			StudentID:   student.ID,
			PaymentType: "DONATION",
		})
		require.Error(t, err)
	})

	t.Run("unknown student rejected", func(t *testing.T) {
		_, err := svc.ValidateAndPrepare(InitiatePaymentRequest{
			StudentID:   "missing",
			PaymentType: PaymentTypeRegistration,
		})
		require.Error(t, err)
	})
}
