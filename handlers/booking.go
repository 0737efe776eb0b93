package handlers

import (
	"errors"
	"net/http"

	"turnia/models"
	"turnia/services/booking"
	"turnia/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes booking and meeting lifecycle endpoints.
type BookingHandler struct {
	BookingService booking.BookingService
}

// respondBookingError maps booking service errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	var svcErr *booking.ServiceError
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Code {
		case booking.CodeNotFound:
			status = http.StatusNotFound
		case booking.CodeForbidden:
			status = http.StatusForbidden
		case booking.CodeConflict:
			status = http.StatusConflict
		case booking.CodeInvalid:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": svcErr.Message, "code": svcErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// CreateBookingHandler handles POST /api/bookings. Client only. Returns the
// stored booking plus the checkout redirect URL.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	clientID, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.BookingService.CreateBooking(clientID, req)
	if err != nil {
		logger.Error("Failed to create booking", zap.String("client", clientID), zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBookingsHandler handles GET /api/bookings for either role.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	if accountRole(c) == utils.RoleProfessional {
		bookings, err = h.BookingService.ListProfessionalBookings(id)
	} else {
		bookings, err = h.BookingService.ListClientBookings(id)
	}
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler handles GET /api/bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.BookingService.GetBooking(c.Param("id"), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.BookingService.CancelBooking(c.Param("id"), id); err != nil {
		logger.Warn("Cancel failed", zap.String("booking", c.Param("id")), zap.Error(err))
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled"})
}

// MeetingStatusHandler handles GET /api/bookings/:id/meeting-status. This is
// the endpoint the waiting room polls every few seconds, so the payload stays
// small and flat.
func (h *BookingHandler) MeetingStatusHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status, err := h.BookingService.MeetingStatus(c.Param("id"), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// AcceptMeetingHandler handles PATCH /api/bookings/:id/accept-meeting.
// Professional only.
func (h *BookingHandler) AcceptMeetingHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.BookingService.AcceptMeeting(c.Param("id"), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectMeetingHandler handles PATCH /api/bookings/:id/reject-meeting.
// Professional only.
func (h *BookingHandler) RejectMeetingHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.BookingService.RejectMeeting(c.Param("id"), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// StartMeetingHandler handles POST /api/bookings/:id/start.
func (h *BookingHandler) StartMeetingHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.BookingService.StartMeeting(c.Param("id"), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteMeetingHandler handles POST /api/bookings/:id/complete.
func (h *BookingHandler) CompleteMeetingHandler(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.BookingService.CompleteMeeting(c.Param("id"), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
