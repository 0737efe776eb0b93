package waitingroom

import (
	"errors"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Conference widget events, mirroring the external embed API.
const (
	EventConferenceJoined  = "videoConferenceJoined"
	EventConferenceLeft    = "videoConferenceLeft"
	EventParticipantJoined = "participantJoined"
	EventParticipantLeft   = "participantLeft"
)

// ErrConsentRequired is returned when Join is attempted before the user has
// acknowledged the camera/microphone consent gate.
var ErrConsentRequired = errors.New("waitingroom: consent has not been granted")

// ErrNotMounted is returned when Join is attempted before Mount.
var ErrNotMounted = errors.New("waitingroom: adapter has not been mounted")

// Conference is the capability surface of the external conferencing widget.
// The production implementation wraps the hosted Jitsi embed; tests drive a
// fake.
type Conference interface {
	Join(room, displayName string) error
	On(event string, handler func())
	Hangup()
	Dispose()
}

// JitsiConference wraps the hosted Jitsi embed. The widget itself runs in
// the embedding surface; this side owns the room URL and the event plumbing.
type JitsiConference struct {
	BaseURL string

	mu       sync.Mutex
	room     string
	user     string
	joined   bool
	disposed bool
	handlers map[string][]func()
}

func NewJitsiConference(baseURL string) *JitsiConference {
	return &JitsiConference{
		BaseURL:  baseURL,
		handlers: make(map[string][]func()),
	}
}

// RoomURL is the externally joinable room address.
func (j *JitsiConference) RoomURL() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.room == "" {
		return ""
	}
	return j.BaseURL + "/" + url.PathEscape(j.room)
}

func (j *JitsiConference) Join(room, displayName string) error {
	j.mu.Lock()
	if j.disposed {
		j.mu.Unlock()
		return errors.New("waitingroom: conference already disposed")
	}
	j.room = room
	j.user = displayName
	j.joined = true
	j.mu.Unlock()

	j.Emit(EventConferenceJoined)
	return nil
}

func (j *JitsiConference) On(event string, handler func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.handlers[event] = append(j.handlers[event], handler)
}

// Emit dispatches a widget event to registered handlers. The embedding
// surface forwards the external embed's callbacks through here.
func (j *JitsiConference) Emit(event string) {
	j.mu.Lock()
	hs := append([]func(){}, j.handlers[event]...)
	disposed := j.disposed
	j.mu.Unlock()
	if disposed {
		return
	}
	for _, h := range hs {
		h()
	}
}

func (j *JitsiConference) Hangup() {
	j.mu.Lock()
	wasJoined := j.joined
	j.joined = false
	j.mu.Unlock()
	if wasJoined {
		j.Emit(EventConferenceLeft)
	}
}

func (j *JitsiConference) Dispose() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.disposed = true
	j.handlers = make(map[string][]func())
}

// DefaultMaxMeetingDuration bounds the live session when the caller supplies
// no budget of its own.
const DefaultMaxMeetingDuration = 18 * time.Minute

// ConferenceAdapter gates the widget behind explicit consent and enforces a
// hard deadline on the live session, independent of whatever the widget does
// natively. Dispose must be called on unmount or the countdown ticker and
// the widget leak.
type ConferenceAdapter struct {
	Widget       Conference
	MaxDuration  time.Duration
	TickInterval time.Duration
	Logger       *zap.Logger

	// Observability hooks; no business logic keys off them.
	OnParticipantJoined func()
	OnParticipantLeft   func()

	mu        sync.Mutex
	room      string
	user      string
	consented bool
	joined    bool
	disposed  bool
	remaining time.Duration
	stopTick  chan struct{}

	leaveOnce sync.Once
	onLeave   func()
}

// NewConferenceAdapter wires the adapter to a widget and a leave callback.
// The callback fires exactly once, whether the session ends by hangup, by
// the widget, or by the deadline.
func NewConferenceAdapter(widget Conference, onLeave func(), logger *zap.Logger) *ConferenceAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &ConferenceAdapter{
		Widget:       widget,
		MaxDuration:  DefaultMaxMeetingDuration,
		TickInterval: time.Second,
		Logger:       logger,
		onLeave:      onLeave,
	}
	widget.On(EventConferenceLeft, a.fireLeave)
	widget.On(EventParticipantJoined, func() {
		if a.OnParticipantJoined != nil {
			a.OnParticipantJoined()
		}
	})
	widget.On(EventParticipantLeft, func() {
		if a.OnParticipantLeft != nil {
			a.OnParticipantLeft()
		}
	})
	return a
}

// Mount stages the room and countdown budget behind the consent gate. The
// remaining budget is capped by MaxDuration; a zero budget means the full
// window.
func (a *ConferenceAdapter) Mount(room, displayName string, remaining time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.room = room
	a.user = displayName
	if remaining <= 0 || remaining > a.MaxDuration {
		remaining = a.MaxDuration
	}
	a.remaining = remaining
}

// GrantConsent records the user's acknowledgment of the camera/microphone
// gate.
func (a *ConferenceAdapter) GrantConsent() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.consented = true
}

// Join enters the room. Refused until consent has been granted. Starts the
// countdown; at zero the session is forcibly hung up.
func (a *ConferenceAdapter) Join() error {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return errors.New("waitingroom: adapter already disposed")
	}
	if !a.consented {
		a.mu.Unlock()
		return ErrConsentRequired
	}
	if a.room == "" {
		a.mu.Unlock()
		return ErrNotMounted
	}
	if a.joined {
		a.mu.Unlock()
		return nil
	}
	a.joined = true
	room, user := a.room, a.user
	stop := make(chan struct{})
	a.stopTick = stop
	a.mu.Unlock()

	if err := a.Widget.Join(room, user); err != nil {
		a.mu.Lock()
		a.joined = false
		a.stopTick = nil
		a.mu.Unlock()
		close(stop)
		return err
	}

	go a.runCountdown(stop)
	return nil
}

func (a *ConferenceAdapter) runCountdown(stop chan struct{}) {
	ticker := time.NewTicker(a.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.mu.Lock()
			a.remaining -= a.TickInterval
			expired := a.remaining <= 0
			if expired {
				a.remaining = 0
			}
			a.mu.Unlock()
			if expired {
				a.Logger.Info("meeting deadline reached, forcing hangup")
				a.Widget.Hangup()
				a.fireLeave()
				return
			}
		}
	}
}

// Sync corrects the local countdown with the server's authoritative budget.
// The budget only ever shrinks; a larger server value never extends it.
func (a *ConferenceAdapter) Sync(remaining time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if remaining >= 0 && remaining < a.remaining {
		a.remaining = remaining
	}
}

// Remaining is the current local countdown budget.
func (a *ConferenceAdapter) Remaining() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remaining
}

// Mounted reports whether a room has been staged.
func (a *ConferenceAdapter) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.room != ""
}

func (a *ConferenceAdapter) fireLeave() {
	a.mu.Lock()
	disposed := a.disposed
	a.mu.Unlock()
	if disposed {
		return
	}
	a.leaveOnce.Do(func() {
		if a.onLeave != nil {
			a.onLeave()
		}
	})
}

// Hangup ends the live session.
func (a *ConferenceAdapter) Hangup() {
	a.mu.Lock()
	stop := a.stopTick
	a.stopTick = nil
	a.joined = false
	a.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	a.Widget.Hangup()
}

// Dispose releases the countdown ticker and the widget. Safe to call more
// than once; after Dispose the leave callback never fires.
func (a *ConferenceAdapter) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	stop := a.stopTick
	a.stopTick = nil
	a.joined = false
	a.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	a.Widget.Dispose()
}
