package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"turnia/models"
	"turnia/services/booking"
	"turnia/utils"

	"github.com/gin-gonic/gin"
)

type stubBookingService struct {
	booking.BookingService

	status    *models.MeetingStatus
	statusErr error

	accepted []string
	acceptFn func(bookingID, professionalID string) (*models.Booking, error)
}

func (s *stubBookingService) MeetingStatus(bookingID, accountID string) (*models.MeetingStatus, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return s.status, nil
}

func (s *stubBookingService) AcceptMeeting(bookingID, professionalID string) (*models.Booking, error) {
	s.accepted = append(s.accepted, bookingID)
	if s.acceptFn != nil {
		return s.acceptFn(bookingID, professionalID)
	}
	return &models.Booking{ID: bookingID, MeetingStatus: models.MeetingWaiting}, nil
}

func authAs(id, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("accountID", id)
		c.Set("role", role)
		c.Next()
	}
}

func newBookingRouter(svc booking.BookingService, id, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &BookingHandler{BookingService: svc}
	r.Use(authAs(id, role))
	r.GET("/api/bookings/:id/meeting-status", h.MeetingStatusHandler)
	r.PATCH("/api/bookings/:id/accept-meeting", h.AcceptMeetingHandler)
	return r
}

func TestMeetingStatusHandlerReturnsPayload(t *testing.T) {
	remaining := int64(60000)
	start := time.Now()
	svc := &stubBookingService{status: &models.MeetingStatus{
		BookingID:        "bk-1",
		JitsiRoom:        "turnia-room",
		MeetingStatus:    models.MeetingActive,
		MeetingStartTime: &start,
		RemainingTime:    &remaining,
	}}
	r := newBookingRouter(svc, "client-1", utils.RoleClient)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1/meeting-status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.MeetingStatus
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if got.MeetingStatus != models.MeetingActive || got.JitsiRoom != "turnia-room" {
		t.Errorf("payload = %+v", got)
	}
	if got.RemainingTime == nil || *got.RemainingTime != 60000 {
		t.Errorf("remainingTime = %v, want 60000", got.RemainingTime)
	}
}

func TestMeetingStatusHandlerMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{booking.NewNotFoundError("missing"), http.StatusNotFound},
		{booking.NewForbiddenError("not yours"), http.StatusForbidden},
		{booking.NewConflictError("bad state"), http.StatusConflict},
		{booking.NewInvalidInputError("bad input"), http.StatusBadRequest},
		{errors.New("database exploded"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &stubBookingService{statusErr: tc.err}
		r := newBookingRouter(svc, "client-1", utils.RoleClient)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1/meeting-status", nil)
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("err %v: status = %d, want %d", tc.err, w.Code, tc.want)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("err %v: body carries no error message: %s", tc.err, w.Body.String())
		}
	}
}

func TestMeetingStatusHandlerRequiresAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &BookingHandler{BookingService: &stubBookingService{}}
	r.GET("/api/bookings/:id/meeting-status", h.MeetingStatusHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/bk-1/meeting-status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAcceptMeetingHandler(t *testing.T) {
	svc := &stubBookingService{}
	r := newBookingRouter(svc, "pro-1", utils.RoleProfessional)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/bk-1/accept-meeting", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(svc.accepted) != 1 || svc.accepted[0] != "bk-1" {
		t.Errorf("accepted = %v, want [bk-1]", svc.accepted)
	}
	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if got.MeetingStatus != models.MeetingWaiting {
		t.Errorf("meeting status = %s, want WAITING", got.MeetingStatus)
	}
}
