package waitingroom

import (
	"fmt"
	"time"

	"turnia/models"
)

// RenderMode is what the presenter should put on screen for a given
// server-reported meeting state.
type RenderMode string

const (
	ModeWaiting   RenderMode = "waiting"
	ModeActive    RenderMode = "active"
	ModeCompleted RenderMode = "completed"
	ModeCancelled RenderMode = "cancelled"
	ModeExpired   RenderMode = "expired"
)

// RenderModeFor maps the server-reported state to a render mode. The server
// is authoritative; an unknown or absent state falls back to the waiting
// view rather than failing the render.
func RenderModeFor(state models.MeetingState) RenderMode {
	switch state {
	case models.MeetingActive:
		return ModeActive
	case models.MeetingCompleted:
		return ModeCompleted
	case models.MeetingCancelled:
		return ModeCancelled
	case models.MeetingExpired:
		return ModeExpired
	case models.MeetingPending, models.MeetingWaiting:
		return ModeWaiting
	default:
		return ModeWaiting
	}
}

// FormatCountdown renders a millisecond budget as MM:SS, floor-rounded.
// A missing or negative value renders 00:00.
func FormatCountdown(ms *int64) string {
	if ms == nil || *ms <= 0 {
		return "00:00"
	}
	secs := *ms / 1000
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// CountdownLabel is FormatCountdown for a duration already held locally.
func CountdownLabel(d time.Duration) string {
	ms := d.Milliseconds()
	return FormatCountdown(&ms)
}

// Interpret derives the render mode and countdown string from the latest
// status snapshot. COMPLETED discards any remaining countdown outright.
func Interpret(status *models.MeetingStatus) (RenderMode, string) {
	if status == nil {
		return ModeWaiting, "00:00"
	}
	mode := RenderModeFor(status.MeetingStatus)
	if mode != ModeActive {
		return mode, "00:00"
	}
	return mode, FormatCountdown(status.RemainingTime)
}
