package waitingroom

import (
	"context"

	"go.uber.org/zap"
)

// Room composes the poller, the presenter, and the conference adapter into
// one mount/unmount unit: Open starts the polling loop, Close tears down the
// loop, the countdown, and the widget.
type Room struct {
	Poller    *Poller
	Presenter *Presenter
	Adapter   *ConferenceAdapter
}

// RoomConfig carries everything the waiting room needs from the host app.
type RoomConfig struct {
	BaseURL     string
	BookingID   string
	Session     Session
	Widget      Conference
	DisplayName string
	CurrentPath string
	Navigate    func(target string)
	Logger      *zap.Logger
}

func NewRoom(cfg RoomConfig) *Room {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	presenter := NewPresenter(nil, cfg.Session, cfg.Logger)
	presenter.DisplayName = cfg.DisplayName
	presenter.CurrentPath = cfg.CurrentPath
	presenter.Navigate = cfg.Navigate

	adapter := NewConferenceAdapter(cfg.Widget, func() {
		presenter.MeetingEnded()
	}, cfg.Logger)
	presenter.Adapter = adapter

	poller := NewPoller(cfg.BaseURL, cfg.BookingID, cfg.Session, cfg.Logger)
	poller.OnUpdate = func(snap Snapshot) {
		presenter.Apply(snap)
	}

	return &Room{Poller: poller, Presenter: presenter, Adapter: adapter}
}

// Open starts polling. Fails fast when credentials are missing.
func (r *Room) Open(ctx context.Context) error {
	return r.Poller.Start(ctx)
}

// Frame is the current render state.
func (r *Room) Frame() Frame {
	return r.Presenter.Frame()
}

// Close stops the polling loop and disposes the adapter. Both intervals are
// gone after Close; leaving either running is a leak.
func (r *Room) Close() {
	r.Poller.Stop()
	r.Adapter.Dispose()
}
