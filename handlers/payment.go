package handlers

import (
	"io"
	"net/http"

	"turnia/services/booking"
	"turnia/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler receives checkout callbacks from the payment provider.
type PaymentHandler struct {
	Checkout       payment.CheckoutService
	BookingService booking.BookingService
}

// StripeWebhookHandler handles POST /api/payments/webhook. Signature
// verification happens against the raw body, so the payload is read before
// any binding. Stripe retries on non-2xx, which keeps delivery at-least-once;
// the booking service tolerates redeliveries.
func (h *PaymentHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	const maxBodyBytes = int64(65536)
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
		return
	}

	sessionID, paymentID, err := h.Checkout.ParseCompletedCheckout(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logger.Warn("Rejected webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook payload"})
		return
	}
	if sessionID == "" {
		// Event type we do not act on; acknowledge so Stripe stops retrying.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err := h.BookingService.HandlePaymentCompleted(sessionID, paymentID); err != nil {
		logger.Error("Failed to apply completed checkout",
			zap.String("session", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
