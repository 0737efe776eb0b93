package models

import "time"

// CheckoutSession points the client at the hosted payment page.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Invoice records the outcome of a checkout for a booking.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoiceId"`
	BookingID string    `bson:"booking_id" json:"bookingId"`
	ClientID  string    `bson:"client_id" json:"clientId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Status    string    `bson:"status" json:"status"` // "pending", "paid", "failed"
	PaymentID string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
