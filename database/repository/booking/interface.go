package bookingRepo

import (
	"time"

	"turnia/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByCheckoutSession retrieves a booking by its checkout session ID.
	GetByCheckoutSession(sessionID string) (*models.Booking, error)
	// GetByClient lists bookings made by a client, newest first.
	GetByClient(clientID string) ([]models.Booking, error)
	// GetByProfessional lists bookings assigned to a professional, newest first.
	GetByProfessional(professionalID string) ([]models.Booking, error)
	// Create inserts a new booking record.
	Create(b *models.Booking) error
	// Update replaces an existing booking record.
	Update(b *models.Booking) error
	// SetMeetingState persists a lifecycle transition together with its
	// timestamps. Passing nil start/end leaves the stored values untouched.
	SetMeetingState(id string, state models.MeetingState, start, end *time.Time) error
	// SetPaid marks the booking paid and records the processor's payment ID.
	SetPaid(id, paymentID string) error
}
