package booking

import (
	"context"
	"fmt"
	"time"

	"turnia/config"
	"turnia/models"
	"turnia/services/alerts"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request against the professional's catalog,
// stores a PENDING booking, and returns the checkout redirect URL.
func (s *DefaultBookingService) CreateBooking(clientID string, req models.BookingRequest) (*models.BookingCheckoutResponse, error) {
	client, err := s.Users.GetByID(clientID)
	if err != nil {
		return nil, NewNotFoundError("client account not found")
	}

	prof, err := s.Professionals.GetByID(req.ProfessionalID)
	if err != nil {
		return nil, NewNotFoundError("professional not found")
	}

	var offering *models.ServiceOffering
	for i := range prof.Services {
		if prof.Services[i].ID == req.ServiceID {
			offering = &prof.Services[i]
			break
		}
	}
	if offering == nil {
		return nil, NewInvalidInputError("the selected service is not offered by this professional")
	}

	if req.ScheduledAt.Before(time.Now()) {
		return nil, NewInvalidInputError("scheduled time must be in the future")
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = "normal"
	}

	now := time.Now()
	b := &models.Booking{
		ID:                 uuid.New().String(),
		ClientID:           clientID,
		ProfessionalID:     prof.ID,
		ServiceID:          offering.ID,
		ServiceDescription: offering.Description,
		Amount:             offering.Price,
		Currency:           offering.Currency,
		ScheduledAt:        req.ScheduledAt,
		Duration:           offering.Duration,
		JitsiRoom:          roomName(),
		Status:             models.BookingPendingPayment,
		MeetingStatus:      models.MeetingPending,
		Urgency:            urgency,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	checkout, err := s.Checkout.CreateCheckoutSession(ctx, b, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	b.CheckoutSessionID = checkout.SessionID

	if err := s.Repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	// Deferred lifecycle work: expiry after the scheduled window plus grace,
	// reminder shortly before the session.
	if s.Jobs != nil {
		grace := time.Duration(config.AppConfig.MeetingGraceMinutes) * time.Minute
		expiry := b.ScheduledAt.Add(time.Duration(b.Duration)*time.Minute + grace)
		if err := s.Jobs.ScheduleMeetingExpiry(b.ID, expiry); err != nil {
			s.Logger.Warn("failed to schedule meeting expiry", zap.String("booking", b.ID), zap.Error(err))
		}
		if reminder := b.ScheduledAt.Add(-10 * time.Minute); reminder.After(now) {
			if err := s.Jobs.ScheduleReminder(b.ID, reminder); err != nil {
				s.Logger.Warn("failed to schedule reminder", zap.String("booking", b.ID), zap.Error(err))
			}
		}
	}

	s.Logger.Info("booking created",
		zap.String("booking", b.ID),
		zap.String("client", clientID),
		zap.String("professional", prof.ID),
	)

	return &models.BookingCheckoutResponse{Booking: b, CheckoutURL: checkout.URL}, nil
}

// roomName generates an unguessable conference room identifier.
func roomName() string {
	return "turnia-" + uuid.New().String()
}

// authorized loads a booking and verifies the account is one of its parties.
func (s *DefaultBookingService) authorized(bookingID, accountID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.ClientID != accountID && b.ProfessionalID != accountID {
		return nil, NewForbiddenError("booking does not belong to this account")
	}
	return b, nil
}

// GetBooking returns a booking visible to one of its parties.
func (s *DefaultBookingService) GetBooking(bookingID, accountID string) (*models.Booking, error) {
	return s.authorized(bookingID, accountID)
}

// ListClientBookings lists bookings made by a client.
func (s *DefaultBookingService) ListClientBookings(clientID string) ([]models.Booking, error) {
	return s.Repo.GetByClient(clientID)
}

// ListProfessionalBookings lists bookings assigned to a professional.
func (s *DefaultBookingService) ListProfessionalBookings(professionalID string) ([]models.Booking, error) {
	return s.Repo.GetByProfessional(professionalID)
}

// CancelBooking cancels a booking and its meeting. Either party may cancel
// while the meeting is not yet terminal.
func (s *DefaultBookingService) CancelBooking(bookingID, accountID string) error {
	b, err := s.authorized(bookingID, accountID)
	if err != nil {
		return err
	}
	if b.MeetingStatus.Terminal() {
		return NewConflictError("booking is already in a terminal state")
	}

	next := models.NextMeetingState(b.MeetingStatus, models.MeetingCancelled)
	if err := s.Repo.SetMeetingState(b.ID, next, nil, nil); err != nil {
		return err
	}
	b.Status = models.BookingCancelled
	b.MeetingStatus = next
	if err := s.Repo.Update(b); err != nil {
		return err
	}

	s.Alerts.ResolveAlert(b.ProfessionalID, b.ID)
	s.notifyCounterpart(b, accountID, "Reserva cancelada", "La sesión fue cancelada.")
	return nil
}

// HandlePaymentCompleted marks the booking paid and raises the
// professional-facing alert over both push channels.
func (s *DefaultBookingService) HandlePaymentCompleted(checkoutSessionID, paymentID string) error {
	b, err := s.Repo.GetByCheckoutSession(checkoutSessionID)
	if err != nil {
		return NewNotFoundError(fmt.Sprintf("no booking for checkout session %s", checkoutSessionID))
	}
	if b.Status == models.BookingPaid {
		// Webhook redelivery; nothing to do.
		return nil
	}

	if err := s.Repo.SetPaid(b.ID, paymentID); err != nil {
		return err
	}

	client, err := s.Users.GetByID(b.ClientID)
	if err != nil {
		s.Logger.Warn("paid booking references missing client", zap.String("booking", b.ID), zap.Error(err))
		return nil
	}

	alert := models.BookingAlert{
		BookingID:          b.ID,
		ClientName:         client.Name,
		ClientEmail:        client.Email,
		ServiceDescription: b.ServiceDescription,
		Amount:             b.Amount,
		Currency:           b.Currency,
		ScheduledAt:        b.ScheduledAt,
		Duration:           b.Duration,
		PaymentID:          paymentID,
		Timestamp:          time.Now(),
		Urgency:            b.Urgency,
	}
	s.Alerts.PushAlert(b.ProfessionalID, alert)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Notify.SendProfessionalPushNotification(ctx, b.ProfessionalID,
		"Nueva reserva", fmt.Sprintf("%s reservó: %s", client.Name, b.ServiceDescription),
		map[string]string{"bookingId": b.ID, "type": alerts.EventNewBookingAlert},
	); err != nil {
		s.Logger.Warn("failed to push booking alert", zap.String("booking", b.ID), zap.Error(err))
	}

	return nil
}

// notifyCounterpart sends a generic notification to the other party of a
// booking over the realtime channel and FCM. Best effort.
func (s *DefaultBookingService) notifyCounterpart(b *models.Booking, actorID, title, message string) {
	targetID := b.ClientID
	toClient := true
	if actorID == b.ClientID {
		targetID = b.ProfessionalID
		toClient = false
	}

	n := models.Notification{
		ID:        uuid.New().String(),
		Type:      "booking_update",
		Title:     title,
		Message:   message,
		Data:      map[string]any{"bookingId": b.ID},
		Timestamp: time.Now(),
	}
	s.Alerts.Publish(targetID, alerts.EventNotification, n)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var err error
	if toClient {
		err = s.Notify.SendUserPushNotification(ctx, targetID, title, message, map[string]string{"bookingId": b.ID})
	} else {
		err = s.Notify.SendProfessionalPushNotification(ctx, targetID, title, message, map[string]string{"bookingId": b.ID})
	}
	if err != nil {
		s.Logger.Debug("push delivery failed", zap.String("booking", b.ID), zap.Error(err))
	}
}
