package models

import "time"

// Notification is the generic push event delivered over the realtime channel
// and mirrored to FCM.
type Notification struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// BookingResponse acknowledges a professional's accept/reject decision back to
// the client that placed the booking.
type BookingResponse struct {
	BookingID string    `json:"bookingId"`
	Accepted  bool      `json:"accepted"`
	Timestamp time.Time `json:"timestamp"`
}
