package handlers

import (
	professionalRepoPkg "turnia/database/repository/professional"
	userRepoPkg "turnia/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo         userRepoPkg.UserRepository
	ProfessionalRepo professionalRepoPkg.ProfessionalRepository

	Users         *UserHandler
	Professionals *ProfessionalHandler
	Bookings      *BookingHandler
	Payments      *PaymentHandler
	Alerts        *AlertsHandler
}
