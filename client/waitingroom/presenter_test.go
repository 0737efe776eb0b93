package waitingroom

import (
	"errors"
	"testing"
	"time"

	"turnia/models"
)

func newTestPresenter(t *testing.T) (*Presenter, *fakeConference, *[]string) {
	t.Helper()
	widget := newFakeConference()
	session := NewMemorySession("token-123", "/login")

	presenter := NewPresenter(nil, session, nil)
	presenter.DisplayName = "Ana"
	presenter.CurrentPath = "/reservas/bk-1/sala"

	adapter := NewConferenceAdapter(widget, func() { presenter.MeetingEnded() }, nil)
	presenter.Adapter = adapter

	navs := &[]string{}
	presenter.Navigate = func(target string) { *navs = append(*navs, target) }
	return presenter, widget, navs
}

func activeStatus(remainingMs int64) Snapshot {
	return Snapshot{Status: &models.MeetingStatus{
		BookingID:     "bk-1",
		JitsiRoom:     "turnia-room",
		MeetingStatus: models.MeetingActive,
		RemainingTime: &remainingMs,
	}}
}

func statusSnap(state models.MeetingState) Snapshot {
	return Snapshot{Status: &models.MeetingStatus{BookingID: "bk-1", MeetingStatus: state}}
}

func TestWaitingStatesNeverMountAdapter(t *testing.T) {
	for _, state := range []models.MeetingState{models.MeetingPending, models.MeetingWaiting} {
		p, widget, _ := newTestPresenter(t)
		frame := p.Apply(statusSnap(state))

		if frame.View != ViewWaiting {
			t.Errorf("state %s rendered %q, want waiting view", state, frame.View)
		}
		if frame.Message != "Esperando..." {
			t.Errorf("state %s message = %q", state, frame.Message)
		}
		if p.Adapter.Mounted() || widget.joinCount() != 0 {
			t.Errorf("state %s mounted the adapter", state)
		}
	}
}

func TestActiveMountsAdapterExactlyOnce(t *testing.T) {
	p, _, _ := newTestPresenter(t)

	frame := p.Apply(activeStatus(60000))
	if frame.View != ViewActive {
		t.Fatalf("view = %q, want active", frame.View)
	}
	if frame.Room != "turnia-room" {
		t.Errorf("room = %q, want server-provided room", frame.Room)
	}
	if frame.Countdown != "01:00" {
		t.Errorf("countdown = %q, want 01:00", frame.Countdown)
	}
	if !p.Adapter.Mounted() {
		t.Fatal("adapter not mounted on ACTIVE")
	}

	// Re-polls while ACTIVE must not remount, only resync the countdown.
	p.Apply(activeStatus(30000))
	p.Apply(activeStatus(30000))
	if p.Adapter.Remaining() != 30*time.Second {
		t.Errorf("remaining = %v after resync, want 30s", p.Adapter.Remaining())
	}
}

func TestCancelledRendersSingleDashboardAction(t *testing.T) {
	p, widget, navs := newTestPresenter(t)

	frame := p.Apply(statusSnap(models.MeetingCancelled))
	if frame.View != ViewCancelled {
		t.Fatalf("view = %q, want cancelled", frame.View)
	}
	if p.Adapter.Mounted() || widget.joinCount() != 0 {
		t.Fatal("adapter mounted on a cancelled meeting")
	}

	// Repeated identical polls are side-effect free.
	p.Apply(statusSnap(models.MeetingCancelled))
	p.Apply(statusSnap(models.MeetingCancelled))
	if len(*navs) != 1 || (*navs)[0] != "/dashboard" {
		t.Errorf("navigations = %v, want exactly one to /dashboard", *navs)
	}
}

func TestTerminalStateAbsorbsLaterPolls(t *testing.T) {
	p, _, navs := newTestPresenter(t)

	p.Apply(statusSnap(models.MeetingCancelled))
	frame := p.Apply(activeStatus(60000))
	if frame.View != ViewCancelled {
		t.Errorf("view left terminal state: %q", frame.View)
	}
	if p.Adapter.Mounted() {
		t.Error("adapter mounted after terminal state")
	}
	if len(*navs) != 1 {
		t.Errorf("navigations = %v, want one", *navs)
	}
}

func TestTransientErrorShowsBannerAndRecovers(t *testing.T) {
	p, _, navs := newTestPresenter(t)

	frame := p.Apply(Snapshot{Err: errors.New("status request returned 500")})
	if frame.View != ViewError {
		t.Fatalf("view = %q, want error", frame.View)
	}
	if frame.Message == "" || frame.Action == "" {
		t.Error("error view must carry a message and a recovery action")
	}
	if len(*navs) != 0 {
		t.Errorf("transient error navigated: %v", *navs)
	}

	// Next successful poll re-enters the normal flow.
	frame = p.Apply(statusSnap(models.MeetingWaiting))
	if frame.View != ViewWaiting {
		t.Errorf("view after recovery = %q, want waiting", frame.View)
	}
}

func TestAuthExpiryNavigatesToLoginWithCallback(t *testing.T) {
	p, _, navs := newTestPresenter(t)

	frame := p.Apply(Snapshot{Err: ErrAuthorizationExpired, Terminal: true})
	if frame.View != ViewError {
		t.Fatalf("view = %q, want error", frame.View)
	}
	want := "/login?callbackUrl=%2Freservas%2Fbk-1%2Fsala"
	if len(*navs) != 1 || (*navs)[0] != want {
		t.Errorf("navigations = %v, want [%s]", *navs, want)
	}
}

func TestCompletedDiscardsCountdownAndNavigatesOnce(t *testing.T) {
	p, _, navs := newTestPresenter(t)

	p.Apply(activeStatus(60000))
	frame := p.Apply(statusSnap(models.MeetingCompleted))
	if frame.View != ViewCompleted {
		t.Fatalf("view = %q, want completed", frame.View)
	}
	if frame.Countdown != "" {
		t.Errorf("countdown survived completion: %q", frame.Countdown)
	}
	p.Apply(statusSnap(models.MeetingCompleted))
	if len(*navs) != 1 || (*navs)[0] != p.PostMeetingPath {
		t.Errorf("navigations = %v, want exactly one to %s", *navs, p.PostMeetingPath)
	}
}

func TestAdapterLeaveCompletesPresentation(t *testing.T) {
	p, widget, navs := newTestPresenter(t)

	p.Apply(activeStatus(60000))
	p.Adapter.GrantConsent()
	if err := p.Adapter.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	widget.emit(EventConferenceLeft)

	if p.Frame().View != ViewCompleted {
		t.Errorf("view after leave = %q, want completed", p.Frame().View)
	}
	if len(*navs) != 1 {
		t.Errorf("navigations = %v, want one", *navs)
	}
}
