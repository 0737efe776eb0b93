package booking

import (
	"time"

	bookingRepo "turnia/database/repository/booking"
	professionalRepo "turnia/database/repository/professional"
	userRepo "turnia/database/repository/user"
	"turnia/models"
	"turnia/services/alerts"
	"turnia/services/notification"
	"turnia/services/payment"

	"go.uber.org/zap"
)

// BookingService manages bookings and the meeting lifecycle tied to them.
type BookingService interface {
	// CreateBooking validates the request, stores a PENDING booking, and
	// returns the checkout redirect URL.
	CreateBooking(clientID string, req models.BookingRequest) (*models.BookingCheckoutResponse, error)
	GetBooking(bookingID, accountID string) (*models.Booking, error)
	ListClientBookings(clientID string) ([]models.Booking, error)
	ListProfessionalBookings(professionalID string) ([]models.Booking, error)
	CancelBooking(bookingID, accountID string) error

	// Meeting lifecycle. The server is the single writer of meeting state;
	// every transition goes through the shared reducer.
	MeetingStatus(bookingID, accountID string) (*models.MeetingStatus, error)
	AcceptMeeting(bookingID, professionalID string) (*models.Booking, error)
	RejectMeeting(bookingID, professionalID string) (*models.Booking, error)
	StartMeeting(bookingID, accountID string) (*models.Booking, error)
	CompleteMeeting(bookingID, accountID string) (*models.Booking, error)

	// Called by the background worker once the scheduled window has lapsed.
	ExpireMeeting(bookingID string) error
	// Called by the background worker shortly before the session.
	SendBookingReminder(bookingID string) error

	// HandlePaymentCompleted marks the booking paid and raises the
	// professional-facing alert. Invoked from the payment webhook.
	HandlePaymentCompleted(checkoutSessionID, paymentID string) error
}

// Scheduler enqueues deferred lifecycle work. Implemented by the asynq-backed
// scheduler in the cron package.
type Scheduler interface {
	ScheduleMeetingExpiry(bookingID string, at time.Time) error
	ScheduleReminder(bookingID string, at time.Time) error
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Users         userRepo.UserRepository
	Professionals professionalRepo.ProfessionalRepository
	Checkout      payment.CheckoutService
	Alerts        *alerts.Hub
	Notify        notification.NotificationService
	Jobs          Scheduler
	Logger        *zap.Logger
}
