package waitingroom

import (
	"sync"
	"testing"
	"time"
)

// fakeConference records widget calls and lets tests emit events.
type fakeConference struct {
	mu       sync.Mutex
	joins    []string
	hangups  int
	disposed int
	handlers map[string][]func()
}

func newFakeConference() *fakeConference {
	return &fakeConference{handlers: make(map[string][]func())}
}

func (f *fakeConference) Join(room, displayName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joins = append(f.joins, room)
	return nil
}

func (f *fakeConference) On(event string, handler func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[event] = append(f.handlers[event], handler)
}

func (f *fakeConference) Hangup() {
	f.mu.Lock()
	f.hangups++
	hs := append([]func(){}, f.handlers[EventConferenceLeft]...)
	f.mu.Unlock()
	for _, h := range hs {
		h()
	}
}

func (f *fakeConference) Dispose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disposed++
}

func (f *fakeConference) emit(event string) {
	f.mu.Lock()
	hs := append([]func(){}, f.handlers[event]...)
	f.mu.Unlock()
	for _, h := range hs {
		h()
	}
}

func (f *fakeConference) joinCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.joins)
}

func (f *fakeConference) hangupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hangups
}

func TestJoinRequiresConsent(t *testing.T) {
	widget := newFakeConference()
	a := NewConferenceAdapter(widget, nil, nil)
	a.Mount("turnia-room", "Ana", time.Minute)

	if err := a.Join(); err != ErrConsentRequired {
		t.Fatalf("Join before consent = %v, want ErrConsentRequired", err)
	}
	if widget.joinCount() != 0 {
		t.Fatal("widget joined without consent")
	}

	a.GrantConsent()
	if err := a.Join(); err != nil {
		t.Fatalf("Join after consent failed: %v", err)
	}
	if widget.joinCount() != 1 {
		t.Fatalf("join count = %d, want 1", widget.joinCount())
	}
	a.Dispose()
}

func TestJoinRequiresMount(t *testing.T) {
	a := NewConferenceAdapter(newFakeConference(), nil, nil)
	a.GrantConsent()
	if err := a.Join(); err != ErrNotMounted {
		t.Fatalf("Join without mount = %v, want ErrNotMounted", err)
	}
}

func TestCountdownForcesHangupAndLeaveCallback(t *testing.T) {
	widget := newFakeConference()
	left := make(chan struct{})
	a := NewConferenceAdapter(widget, func() { close(left) }, nil)
	a.TickInterval = time.Millisecond
	a.Mount("turnia-room", "Ana", 5*time.Millisecond)
	a.GrantConsent()
	if err := a.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	select {
	case <-left:
	case <-time.After(2 * time.Second):
		t.Fatal("leave callback never fired after countdown expiry")
	}
	if widget.hangupCount() == 0 {
		t.Fatal("countdown expiry did not force a hangup")
	}
	if a.Remaining() != 0 {
		t.Errorf("remaining = %v after expiry, want 0", a.Remaining())
	}
}

func TestSyncNeverExtendsCountdown(t *testing.T) {
	a := NewConferenceAdapter(newFakeConference(), nil, nil)
	a.Mount("turnia-room", "Ana", time.Minute)

	a.Sync(2 * time.Minute)
	if a.Remaining() != time.Minute {
		t.Errorf("larger server budget extended countdown to %v", a.Remaining())
	}
	a.Sync(30 * time.Second)
	if a.Remaining() != 30*time.Second {
		t.Errorf("smaller server budget not applied, remaining = %v", a.Remaining())
	}
}

func TestMountCapsBudgetAtMaxDuration(t *testing.T) {
	a := NewConferenceAdapter(newFakeConference(), nil, nil)
	a.Mount("turnia-room", "Ana", time.Hour)
	if a.Remaining() != DefaultMaxMeetingDuration {
		t.Errorf("remaining = %v, want cap %v", a.Remaining(), DefaultMaxMeetingDuration)
	}

	a.Mount("turnia-room", "Ana", 0)
	if a.Remaining() != DefaultMaxMeetingDuration {
		t.Errorf("zero budget should fall back to %v, got %v", DefaultMaxMeetingDuration, a.Remaining())
	}
}

func TestDisposeStopsCountdownAndSilencesLeave(t *testing.T) {
	widget := newFakeConference()
	var leaves int
	var mu sync.Mutex
	a := NewConferenceAdapter(widget, func() {
		mu.Lock()
		leaves++
		mu.Unlock()
	}, nil)
	a.TickInterval = time.Millisecond
	a.Mount("turnia-room", "Ana", time.Minute)
	a.GrantConsent()
	if err := a.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	a.Dispose()
	widget.emit(EventConferenceLeft)
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if leaves != 0 {
		t.Errorf("leave callback fired %d times after Dispose, want 0", leaves)
	}
	widget.mu.Lock()
	defer widget.mu.Unlock()
	if widget.disposed == 0 {
		t.Error("widget was not disposed")
	}
}

func TestWidgetLeaveInvokesCallbackOnce(t *testing.T) {
	widget := newFakeConference()
	var leaves int
	var mu sync.Mutex
	a := NewConferenceAdapter(widget, func() {
		mu.Lock()
		leaves++
		mu.Unlock()
	}, nil)
	a.Mount("turnia-room", "Ana", time.Minute)
	a.GrantConsent()
	if err := a.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	widget.emit(EventConferenceLeft)
	widget.emit(EventConferenceLeft)

	mu.Lock()
	defer mu.Unlock()
	if leaves != 1 {
		t.Errorf("leave callback fired %d times, want exactly 1", leaves)
	}
}

func TestParticipantEventsAreForwarded(t *testing.T) {
	widget := newFakeConference()
	a := NewConferenceAdapter(widget, nil, nil)
	var joined, leftEv int
	a.OnParticipantJoined = func() { joined++ }
	a.OnParticipantLeft = func() { leftEv++ }

	widget.emit(EventParticipantJoined)
	widget.emit(EventParticipantLeft)
	widget.emit(EventParticipantJoined)

	if joined != 2 || leftEv != 1 {
		t.Errorf("forwarded joined=%d left=%d, want 2 and 1", joined, leftEv)
	}
}

func TestJitsiConferenceRoomURL(t *testing.T) {
	j := NewJitsiConference("https://meet.jit.si")
	if got := j.RoomURL(); got != "" {
		t.Errorf("RoomURL before join = %q, want empty", got)
	}
	if err := j.Join("turnia-abc 123", "Ana"); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	want := "https://meet.jit.si/turnia-abc%20123"
	if got := j.RoomURL(); got != want {
		t.Errorf("RoomURL = %q, want %q", got, want)
	}
}
