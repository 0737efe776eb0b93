package models

import "time"

// Booking payment/admin status values. The meeting lifecycle is tracked
// separately in MeetingStatus.
const (
	BookingPendingPayment = "pending_payment"
	BookingPaid           = "paid"
	BookingCancelled      = "cancelled"
)

// Booking represents a scheduled session between a client and a professional.
type Booking struct {
	ID                 string       `bson:"id" json:"id"`
	ClientID           string       `bson:"client_id" json:"clientId"`
	ProfessionalID     string       `bson:"professional_id" json:"professionalId"`
	ServiceID          string       `bson:"service_id" json:"serviceId"`
	ServiceDescription string       `bson:"service_description" json:"serviceDescription"`
	Amount             float64      `bson:"amount" json:"amount"`
	Currency           string       `bson:"currency" json:"currency"`
	ScheduledAt        time.Time    `bson:"scheduled_at" json:"scheduledAt"`
	Duration           int          `bson:"duration" json:"duration"` // minutes
	JitsiRoom          string       `bson:"jitsi_room" json:"jitsiRoom"`
	Status             string       `bson:"status" json:"status"`
	MeetingStatus      MeetingState `bson:"meeting_status" json:"meetingStatus"`
	MeetingStartTime   *time.Time   `bson:"meeting_start_time,omitempty" json:"meetingStartTime,omitempty"`
	MeetingEndTime     *time.Time   `bson:"meeting_end_time,omitempty" json:"meetingEndTime,omitempty"`
	PaymentID          string       `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CheckoutSessionID  string       `bson:"checkout_session_id,omitempty" json:"-"`
	Urgency            string       `bson:"urgency,omitempty" json:"urgency,omitempty"` // "normal" or "priority"
	CreatedAt          time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time    `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is the client input for creating a booking.
type BookingRequest struct {
	ProfessionalID string    `json:"professionalId" binding:"required"`
	ServiceID      string    `json:"serviceId" binding:"required"`
	ScheduledAt    time.Time `json:"scheduledAt" binding:"required"`
	Urgency        string    `json:"urgency,omitempty"`
}

// BookingCheckoutResponse is returned when a booking is created: the caller
// redirects to CheckoutURL to pay.
type BookingCheckoutResponse struct {
	Booking     *Booking `json:"booking"`
	CheckoutURL string   `json:"checkoutUrl"`
}
