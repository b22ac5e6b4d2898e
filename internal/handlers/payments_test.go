package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSaltKey = "test-salt-key"

func (e *testEnv) webhookRouter() {
	e.router.POST("/phonepe-webhook", PhonePeWebhook(e.db, e.hub))
}

func signedWebhookRequest(t *testing.T, payload interface{}, sign bool) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/phonepe-webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sign {
		base64Body := base64.StdEncoding.EncodeToString(body)
		req.Header.Set("X-VERIFY", phonePeSignature(base64Body, testSaltKey, "1"))
	}
	return req
}

func TestPhonePeWebhookSuccessBooksRental(t *testing.T) {
	t.Setenv("PHONEPE_SALT_KEY", testSaltKey)

	env := setupTestEnv(t)
	env.webhookRouter()
	f := createFixtures(t, env.db)
	booking := seedBooking(t, env, f)

	req := signedWebhookRequest(t, map[string]interface{}{
		"status":        "PAYMENT_SUCCESS",
		"transactionId": "T240501123",
		"amount":        5000.0,
		"bookingId":     booking.ID,
	}, true)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "T240501123")

	var updated models.Booking
	require.NoError(t, env.db.First(&updated, booking.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, updated.PaymentStatus)
	assert.Equal(t, models.BookingStatusBooked, updated.Status)
}

func TestPhonePeWebhookRejectsBadSignature(t *testing.T) {
	t.Setenv("PHONEPE_SALT_KEY", testSaltKey)

	env := setupTestEnv(t)
	env.webhookRouter()
	f := createFixtures(t, env.db)
	booking := seedBooking(t, env, f)

	payload := map[string]interface{}{
		"status":        "PAYMENT_SUCCESS",
		"transactionId": "T240501123",
		"amount":        5000.0,
		"bookingId":     booking.ID,
	}

	// Missing header
	req := signedWebhookRequest(t, payload, false)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	// Wrong checksum
	req = signedWebhookRequest(t, payload, true)
	req.Header.Set("X-VERIFY", "deadbeef###1")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	var updated models.Booking
	require.NoError(t, env.db.First(&updated, booking.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
	assert.Equal(t, models.BookingStatusPending, updated.Status)
}

func TestPhonePeWebhookFailedPaymentLeavesBooking(t *testing.T) {
	t.Setenv("PHONEPE_SALT_KEY", testSaltKey)

	env := setupTestEnv(t)
	env.webhookRouter()
	f := createFixtures(t, env.db)
	booking := seedBooking(t, env, f)

	req := signedWebhookRequest(t, map[string]interface{}{
		"status":        "PAYMENT_ERROR",
		"transactionId": "T240501124",
		"amount":        5000.0,
		"bookingId":     booking.ID,
	}, true)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)

	var updated models.Booking
	require.NoError(t, env.db.First(&updated, booking.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
}

func TestPhonePeWebhookUnknownBooking(t *testing.T) {
	t.Setenv("PHONEPE_SALT_KEY", testSaltKey)

	env := setupTestEnv(t)
	env.webhookRouter()

	req := signedWebhookRequest(t, map[string]interface{}{
		"status":        "PAYMENT_SUCCESS",
		"transactionId": "T240501125",
		"amount":        5000.0,
		"bookingId":     4242,
	}, true)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}
