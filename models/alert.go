package models

import "time"

// BookingAlert is the push payload delivered to a professional when a client
// pays for a booking. It is ephemeral: held in a transient in-memory list and
// removed once the professional accepts, rejects, or dismisses it.
type BookingAlert struct {
	BookingID          string    `json:"bookingId"`
	ClientName         string    `json:"clientName"`
	ClientEmail        string    `json:"clientEmail"`
	ServiceDescription string    `json:"serviceDescription"`
	Amount             float64   `json:"amount"`
	Currency           string    `json:"currency"`
	ScheduledAt        time.Time `json:"scheduledAt"`
	Duration           int       `json:"duration"`
	PaymentID          string    `json:"paymentId"`
	Timestamp          time.Time `json:"timestamp"`
	Urgency            string    `json:"urgency"`
}
