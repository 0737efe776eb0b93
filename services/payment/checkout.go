package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"turnia/config"
	"turnia/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// CheckoutService creates hosted checkout sessions and parses processor
// webhooks. The client never handles card data: it is redirected to the
// processor and the booking is marked paid from the webhook.
type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, b *models.Booking, client *models.User) (*models.CheckoutSession, error)
	ParseCompletedCheckout(payload []byte, sigHeader string) (sessionID, paymentID string, err error)
}

// StripeCheckoutService is the production implementation.
type StripeCheckoutService struct {
	Logger *zap.Logger
}

// NewStripeCheckoutService wires the Stripe API key from configuration.
func NewStripeCheckoutService(logger *zap.Logger) *StripeCheckoutService {
	stripe.Key = config.AppConfig.StripeKey
	return &StripeCheckoutService{Logger: logger}
}

// CreateCheckoutSession creates a hosted checkout page for the booking amount.
func (s *StripeCheckoutService) CreateCheckoutSession(ctx context.Context, b *models.Booking, client *models.User) (*models.CheckoutSession, error) {
	if b.Amount <= 0 {
		return nil, fmt.Errorf("invalid booking amount: %v", b.Amount)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(config.AppConfig.CheckoutSuccessURL + "?bookingId=" + b.ID),
		CancelURL:         stripe.String(config.AppConfig.CheckoutCancelURL + "?bookingId=" + b.ID),
		ClientReferenceID: stripe.String(b.ID),
		CustomerEmail:     stripe.String(client.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(b.Currency)),
					UnitAmount: stripe.Int64(int64(math.Round(b.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(b.ServiceDescription),
					},
				},
			},
		},
	}
	params.AddMetadata("bookingId", b.ID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.Logger.Info("Checkout session created",
		zap.String("booking", b.ID),
		zap.String("session", sess.ID),
	)

	return &models.CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// ParseCompletedCheckout verifies the webhook signature and, for a completed
// checkout, returns the session and payment identifiers. A non-checkout event
// returns empty IDs with no error so callers can acknowledge and ignore it.
func (s *StripeCheckoutService) ParseCompletedCheckout(payload []byte, sigHeader string) (string, string, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return "", "", fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		return "", "", nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return "", "", fmt.Errorf("failed to parse checkout session payload: %w", err)
	}

	paymentID := ""
	if sess.PaymentIntent != nil {
		paymentID = sess.PaymentIntent.ID
	}
	return sess.ID, paymentID, nil
}
