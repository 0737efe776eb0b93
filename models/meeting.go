package models

import "time"

// MeetingState is the lifecycle state of the video session tied to a booking.
// The server is the only writer; clients reflect whatever the server reports.
type MeetingState string

const (
	MeetingPending   MeetingState = "PENDING"
	MeetingWaiting   MeetingState = "WAITING"
	MeetingActive    MeetingState = "ACTIVE"
	MeetingCompleted MeetingState = "COMPLETED"
	MeetingCancelled MeetingState = "CANCELLED"
	MeetingExpired   MeetingState = "EXPIRED"
)

// meetingOrder ranks the forward path PENDING -> WAITING -> ACTIVE -> COMPLETED.
var meetingOrder = map[MeetingState]int{
	MeetingPending:   0,
	MeetingWaiting:   1,
	MeetingActive:    2,
	MeetingCompleted: 3,
}

// Known reports whether s is one of the six lifecycle states.
func (s MeetingState) Known() bool {
	switch s {
	case MeetingPending, MeetingWaiting, MeetingActive, MeetingCompleted, MeetingCancelled, MeetingExpired:
		return true
	}
	return false
}

// Terminal reports whether s is an absorbing state.
func (s MeetingState) Terminal() bool {
	return s == MeetingCompleted || s == MeetingCancelled || s == MeetingExpired
}

// NextMeetingState applies the lifecycle transition rules: the forward path is
// monotonic, CANCELLED and EXPIRED are reachable from any non-terminal state,
// terminal states absorb everything, and unknown inputs leave prev untouched.
func NextMeetingState(prev, next MeetingState) MeetingState {
	if !next.Known() {
		return prev
	}
	if prev.Terminal() {
		return prev
	}
	if next == MeetingCancelled || next == MeetingExpired {
		return next
	}
	if !prev.Known() {
		return next
	}
	if meetingOrder[next] < meetingOrder[prev] {
		return prev
	}
	return next
}

// MeetingStatus is the wire payload served by GET /api/bookings/:id/meeting-status.
// RemainingTime is in milliseconds; it is absent until the meeting is ACTIVE.
type MeetingStatus struct {
	BookingID        string       `json:"bookingId"`
	JitsiRoom        string       `json:"jitsiRoom"`
	MeetingStatus    MeetingState `json:"meetingStatus"`
	MeetingStartTime *time.Time   `json:"meetingStartTime,omitempty"`
	MeetingEndTime   *time.Time   `json:"meetingEndTime,omitempty"`
	RemainingTime    *int64       `json:"remainingTime,omitempty"`
}
