package booking

import (
	"context"
	"fmt"
	"time"

	"turnia/config"
	"turnia/models"
	"turnia/services/alerts"

	"go.uber.org/zap"
)

// earlyJoinWindow is how long before the scheduled time either party may
// start the meeting.
const earlyJoinWindow = 5 * time.Minute

// meetingWindow is the enforced maximum length of the live session: the
// booked duration, capped by the configured ceiling.
func meetingWindow(durationMinutes int) time.Duration {
	capMinutes := config.AppConfig.MeetingMaxMinutes
	if capMinutes <= 0 {
		capMinutes = 18
	}
	if durationMinutes > 0 && durationMinutes < capMinutes {
		return time.Duration(durationMinutes) * time.Minute
	}
	return time.Duration(capMinutes) * time.Minute
}

// MeetingStatus reports the authoritative lifecycle state for a booking.
// While ACTIVE it carries the remaining time in milliseconds; once the
// enforced window has lapsed the meeting is completed lazily here, so a
// polling client always observes COMPLETED rather than a negative countdown.
func (s *DefaultBookingService) MeetingStatus(bookingID, accountID string) (*models.MeetingStatus, error) {
	b, err := s.authorized(bookingID, accountID)
	if err != nil {
		return nil, err
	}

	status := &models.MeetingStatus{
		BookingID:        b.ID,
		JitsiRoom:        b.JitsiRoom,
		MeetingStatus:    b.MeetingStatus,
		MeetingStartTime: b.MeetingStartTime,
		MeetingEndTime:   b.MeetingEndTime,
	}

	if b.MeetingStatus == models.MeetingActive && b.MeetingStartTime != nil {
		deadline := b.MeetingStartTime.Add(meetingWindow(b.Duration))
		remaining := time.Until(deadline)
		if remaining <= 0 {
			next := models.NextMeetingState(b.MeetingStatus, models.MeetingCompleted)
			if err := s.Repo.SetMeetingState(b.ID, next, nil, &deadline); err != nil {
				s.Logger.Warn("failed to complete lapsed meeting", zap.String("booking", b.ID), zap.Error(err))
			}
			status.MeetingStatus = next
			status.MeetingEndTime = &deadline
		} else {
			ms := remaining.Milliseconds()
			status.RemainingTime = &ms
		}
	}

	return status, nil
}

// AcceptMeeting moves a paid, pending meeting to WAITING. Professional only.
func (s *DefaultBookingService) AcceptMeeting(bookingID, professionalID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.ProfessionalID != professionalID {
		return nil, NewForbiddenError("booking is not assigned to this professional")
	}
	if b.Status != models.BookingPaid {
		return nil, NewConflictError("booking has not been paid yet")
	}
	if b.MeetingStatus != models.MeetingPending {
		return nil, NewConflictError(fmt.Sprintf("meeting is %s, only a PENDING meeting can be accepted", b.MeetingStatus))
	}

	next := models.NextMeetingState(b.MeetingStatus, models.MeetingWaiting)
	if err := s.Repo.SetMeetingState(b.ID, next, nil, nil); err != nil {
		return nil, err
	}
	b.MeetingStatus = next

	s.Alerts.ResolveAlert(professionalID, b.ID)
	s.ackBookingResponse(b, true)
	return b, nil
}

// RejectMeeting declines a pending meeting, cancelling the booking.
// Professional only.
func (s *DefaultBookingService) RejectMeeting(bookingID, professionalID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.ProfessionalID != professionalID {
		return nil, NewForbiddenError("booking is not assigned to this professional")
	}
	if b.MeetingStatus.Terminal() {
		return nil, NewConflictError("meeting is already in a terminal state")
	}

	next := models.NextMeetingState(b.MeetingStatus, models.MeetingCancelled)
	if err := s.Repo.SetMeetingState(b.ID, next, nil, nil); err != nil {
		return nil, err
	}
	b.MeetingStatus = next
	b.Status = models.BookingCancelled
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}

	s.Alerts.ResolveAlert(professionalID, b.ID)
	s.ackBookingResponse(b, false)
	return b, nil
}

// ackBookingResponse informs the client of the professional's decision.
func (s *DefaultBookingService) ackBookingResponse(b *models.Booking, accepted bool) {
	ack := models.BookingResponse{
		BookingID: b.ID,
		Accepted:  accepted,
		Timestamp: time.Now(),
	}
	s.Alerts.Publish(b.ClientID, alerts.EventBookingResponse, ack)

	title, body := "Reserva confirmada", "Tu sesión fue confirmada por el profesional."
	if !accepted {
		title, body = "Reserva rechazada", "El profesional no puede tomar tu sesión."
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Notify.SendUserPushNotification(ctx, b.ClientID, title, body,
		map[string]string{"bookingId": b.ID}); err != nil {
		s.Logger.Debug("booking response push failed", zap.String("booking", b.ID), zap.Error(err))
	}
}

// StartMeeting activates a WAITING meeting once the scheduled window opens.
// Either party may start; the first join wins and re-joins are idempotent.
func (s *DefaultBookingService) StartMeeting(bookingID, accountID string) (*models.Booking, error) {
	b, err := s.authorized(bookingID, accountID)
	if err != nil {
		return nil, err
	}
	if b.MeetingStatus == models.MeetingActive {
		return b, nil
	}
	if b.MeetingStatus != models.MeetingWaiting {
		return nil, NewConflictError(fmt.Sprintf("meeting is %s, only a WAITING meeting can start", b.MeetingStatus))
	}
	if time.Now().Before(b.ScheduledAt.Add(-earlyJoinWindow)) {
		return nil, NewConflictError("the scheduled window has not opened yet")
	}

	start := time.Now()
	next := models.NextMeetingState(b.MeetingStatus, models.MeetingActive)
	if err := s.Repo.SetMeetingState(b.ID, next, &start, nil); err != nil {
		return nil, err
	}
	b.MeetingStatus = next
	b.MeetingStartTime = &start

	s.Logger.Info("meeting started",
		zap.String("booking", b.ID),
		zap.String("room", b.JitsiRoom),
	)
	return b, nil
}

// CompleteMeeting ends an ACTIVE meeting.
func (s *DefaultBookingService) CompleteMeeting(bookingID, accountID string) (*models.Booking, error) {
	b, err := s.authorized(bookingID, accountID)
	if err != nil {
		return nil, err
	}
	if b.MeetingStatus == models.MeetingCompleted {
		return b, nil
	}
	if b.MeetingStatus != models.MeetingActive {
		return nil, NewConflictError(fmt.Sprintf("meeting is %s, only an ACTIVE meeting can complete", b.MeetingStatus))
	}

	end := time.Now()
	next := models.NextMeetingState(b.MeetingStatus, models.MeetingCompleted)
	if err := s.Repo.SetMeetingState(b.ID, next, nil, &end); err != nil {
		return nil, err
	}
	b.MeetingStatus = next
	b.MeetingEndTime = &end

	s.notifyCounterpart(b, accountID, "Sesión finalizada", "La sesión ha terminado.")
	return b, nil
}

// ExpireMeeting marks a meeting EXPIRED if its scheduled window lapsed
// without ever going live. Invoked by the background worker; an ACTIVE or
// terminal meeting is left untouched.
func (s *DefaultBookingService) ExpireMeeting(bookingID string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.MeetingStatus != models.MeetingPending && b.MeetingStatus != models.MeetingWaiting {
		return nil
	}

	next := models.NextMeetingState(b.MeetingStatus, models.MeetingExpired)
	if err := s.Repo.SetMeetingState(b.ID, next, nil, nil); err != nil {
		return err
	}
	b.MeetingStatus = next

	s.Alerts.ResolveAlert(b.ProfessionalID, b.ID)
	s.Logger.Info("meeting expired", zap.String("booking", b.ID))

	s.notifyCounterpart(b, b.ProfessionalID, "Sesión vencida", "La sesión expiró sin realizarse.")
	return nil
}

// SendBookingReminder pushes a pre-session reminder to both parties.
// Invoked by the background worker.
func (s *DefaultBookingService) SendBookingReminder(bookingID string) error {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return NewNotFoundError(fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.MeetingStatus.Terminal() || b.Status != models.BookingPaid {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body := fmt.Sprintf("Tu sesión comienza a las %s.", b.ScheduledAt.Format("15:04"))
	data := map[string]string{"bookingId": b.ID, "type": "reminder"}
	if err := s.Notify.SendUserPushNotification(ctx, b.ClientID, "Recordatorio de sesión", body, data); err != nil {
		s.Logger.Debug("client reminder push failed", zap.String("booking", b.ID), zap.Error(err))
	}
	if err := s.Notify.SendProfessionalPushNotification(ctx, b.ProfessionalID, "Recordatorio de sesión", body, data); err != nil {
		s.Logger.Debug("professional reminder push failed", zap.String("booking", b.ID), zap.Error(err))
	}
	return nil
}
