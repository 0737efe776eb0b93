package waitingroom

import (
	"testing"

	"turnia/models"
)

func ms(v int64) *int64 { return &v }

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		name string
		in   *int64
		want string
	}{
		{"nil renders zero", nil, "00:00"},
		{"negative renders zero", ms(-500), "00:00"},
		{"exact minute", ms(60000), "01:00"},
		{"floor rounding", ms(61999), "01:01"},
		{"sub-second floor", ms(999), "00:00"},
		{"long session", ms(18 * 60 * 1000), "18:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCountdown(tc.in); got != tc.want {
				t.Errorf("FormatCountdown(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRenderModeFallsBackToWaiting(t *testing.T) {
	if got := RenderModeFor(models.MeetingState("SOMETHING_NEW")); got != ModeWaiting {
		t.Errorf("unknown state rendered %q, want %q", got, ModeWaiting)
	}
	if got := RenderModeFor(""); got != ModeWaiting {
		t.Errorf("absent state rendered %q, want %q", got, ModeWaiting)
	}
}

func TestInterpretDiscardsCountdownOutsideActive(t *testing.T) {
	status := &models.MeetingStatus{
		MeetingStatus: models.MeetingCompleted,
		RemainingTime: ms(42000),
	}
	mode, countdown := Interpret(status)
	if mode != ModeCompleted {
		t.Fatalf("mode = %q, want %q", mode, ModeCompleted)
	}
	if countdown != "00:00" {
		t.Errorf("countdown = %q, want discarded (00:00)", countdown)
	}
}

func TestInterpretActiveCarriesCountdown(t *testing.T) {
	status := &models.MeetingStatus{
		MeetingStatus: models.MeetingActive,
		RemainingTime: ms(60000),
	}
	mode, countdown := Interpret(status)
	if mode != ModeActive {
		t.Fatalf("mode = %q, want %q", mode, ModeActive)
	}
	if countdown != "01:00" {
		t.Errorf("countdown = %q, want 01:00", countdown)
	}
}

func TestInterpretNilStatus(t *testing.T) {
	mode, countdown := Interpret(nil)
	if mode != ModeWaiting || countdown != "00:00" {
		t.Errorf("Interpret(nil) = (%q, %q), want (waiting, 00:00)", mode, countdown)
	}
}
