package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const phonePePayEndpoint = "/pg/v1/pay"

type phonePeCallback struct {
	Status        string  `json:"status"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	BookingID     uint    `json:"bookingId"`
}

// phonePeSignature computes sha256(base64Body + endpoint + saltKey) + "###" +
// saltIndex, the X-VERIFY scheme the gateway signs callbacks with.
func phonePeSignature(base64Body, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte(base64Body + phonePePayEndpoint + saltKey))
	return hex.EncodeToString(sum[:]) + "###" + saltIndex
}

// PhonePeWebhook is the payment gateway callback. It verifies the X-VERIFY
// checksum and applies the payment result to the referenced booking; a bad
// signature mutates nothing.
func PhonePeWebhook(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		saltKey := os.Getenv("PHONEPE_SALT_KEY")
		saltIndex := os.Getenv("PHONEPE_SALT_INDEX")
		if saltIndex == "" {
			saltIndex = "1"
		}

		body, err := c.GetRawData()
		if err != nil {
			respondError(c, 400, "Invalid payload")
			return
		}

		base64Body := base64.StdEncoding.EncodeToString(body)
		received := c.GetHeader("X-VERIFY")
		expected := phonePeSignature(base64Body, saltKey, saltIndex)
		if received == "" || subtle.ConstantTimeCompare([]byte(received), []byte(expected)) != 1 {
			respondError(c, 400, "Invalid signature")
			return
		}

		var callback phonePeCallback
		if err := json.Unmarshal(body, &callback); err != nil {
			respondError(c, 400, "Invalid payload")
			return
		}

		if callback.Status != "PAYMENT_SUCCESS" {
			respondError(c, 400, "Payment failed")
			return
		}

		booking, err := applyPaymentStatus(db, callback.BookingID, models.PaymentStatusCompleted)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, 404, "Booking not found")
				return
			}
			respondError(c, 500, "Failed to update payment status")
			return
		}

		services.InvalidateBookingStatus(c.Request.Context(), booking.ID)
		hub.SendBookingEvent("customer", booking.CustomerID, "payment_status", booking.ID, booking)
		hub.SendBookingEvent("partner", booking.PartnerID, "payment_status", booking.ID, booking)

		respondOK(c, 200, gin.H{
			"transactionId": callback.TransactionID,
			"bookingId":     booking.ID,
			"status":        booking.Status,
		}, fmt.Sprintf("Payment of %.2f recorded", callback.Amount))
	}
}
