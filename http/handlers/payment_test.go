package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"techpro-backoffice/config"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/services"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// Event publishing is best-effort: a broker outage must never stall the
// payment response. The producer retries with backoff for seconds when the
// broker is down, so the handler has to hand the publish off instead of
// waiting on it.
func TestVerify_RespondsPromptlyWhenBrokerIsDown(t *testing.T) {
	logger.SetDefault(quietLogger())

	config.AppConfig.RazorpayKeySecret = "test_secret"
	config.AppConfig.KafkaBrokers = "127.0.0.1:9" // nothing listens here
	config.AppConfig.KafkaTopic = "backoffice.events"
	services.InitProducer()
	t.Cleanup(func() {
		services.CloseProducer()
		config.AppConfig.RazorpayKeySecret = ""
		config.AppConfig.KafkaBrokers = ""
	})

	dir := t.TempDir()
	payments := storage.NewPaymentStore(dir)
	students := storage.NewStudentStore(dir)
	courses := storage.NewCourseStore(dir)

	now := time.Now()
	_, err := payments.Upsert(models.Payment{
		ID: "p1", StudentID: "s1", Amount: 1870, Currency: "INR",
		Status: utils.PaymentPending, OrderID: "order_1",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	h := NewPaymentHandler(payments, students,
		services.NewPaymentService(students, courses),
		services.NewMailer(quietLogger()), quietLogger())

	mac := hmac.New(sha256.New, []byte("test_secret"))
	fmt.Fprintf(mac, "%s|%s", "order_1", "pay_1")
	signature := hex.EncodeToString(mac.Sum(nil))

	body := fmt.Sprintf(`{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"%s"}`, signature)
	r := httptest.NewRequest(http.MethodPost, "/api/verify-payment", strings.NewReader(body))
	w := httptest.NewRecorder()

	startedAt := time.Now()
	h.Verify(w, r)
	elapsed := time.Since(startedAt)

	require.Equal(t, http.StatusOK, w.Code)
	require.Less(t, elapsed, 2*time.Second, "verify must not wait out the publish retry cycle")

	updated, err := payments.All()
	require.NoError(t, err)
	require.Len(t, updated, 1)
	require.Equal(t, utils.PaymentPaid, updated[0].Status)
	require.Equal(t, "pay_1", updated[0].PaymentID)
}
