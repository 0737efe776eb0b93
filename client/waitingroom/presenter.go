package waitingroom

import (
	"sync"
	"time"

	"turnia/models"

	"go.uber.org/zap"
)

// View is the screen the waiting room shows.
type View string

const (
	ViewWaiting   View = "waiting"
	ViewActive    View = "active"
	ViewCompleted View = "completed"
	ViewCancelled View = "cancelled"
	ViewExpired   View = "expired"
	ViewError     View = "error"
)

// Frame is one rendered state of the waiting room. Every failure path
// carries a message and a recovery action; a blank screen is never valid.
type Frame struct {
	View      View
	Message   string
	Action    string
	Room      string
	Countdown string
}

// Presenter drives the waiting room state machine from poll snapshots. The
// server-reported state is folded through the shared reducer, so the local
// view can never move backwards or leave a terminal state.
type Presenter struct {
	Adapter     *ConferenceAdapter
	Session     Session
	DisplayName string

	// CurrentPath is preserved as the login callback on auth expiry.
	CurrentPath     string
	DashboardPath   string
	PostMeetingPath string

	// Navigate fires at most once, on the first transition into a terminal
	// state or on auth expiry. It runs under the presenter lock and must not
	// call back into the presenter.
	Navigate func(target string)
	Logger   *zap.Logger

	mu        sync.Mutex
	state     models.MeetingState
	frame     Frame
	mounted   bool
	navigated bool
}

func NewPresenter(adapter *ConferenceAdapter, session Session, logger *zap.Logger) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{
		Adapter:         adapter,
		Session:         session,
		DashboardPath:   "/dashboard",
		PostMeetingPath: "/dashboard/sesiones",
		Logger:          logger,
		frame:           Frame{View: ViewWaiting, Message: "Esperando..."},
	}
}

// Apply folds one poll snapshot into the state machine and returns the frame
// to render. Repeated identical snapshots are side-effect free.
func (p *Presenter) Apply(snap Snapshot) Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if snap.Terminal {
		p.frame = Frame{
			View:    ViewError,
			Message: "Tu sesión expiró. Iniciá sesión nuevamente.",
			Action:  "Iniciar sesión",
		}
		p.navigateOnce(p.Session.LoginURL(p.CurrentPath))
		return p.frame
	}
	if snap.Err != nil {
		// Transient failure: keep the machine where it is, surface a banner.
		p.frame = Frame{
			View:    ViewError,
			Message: "No pudimos actualizar el estado de la sesión.",
			Action:  "Reintentando...",
		}
		return p.frame
	}
	if snap.Status == nil {
		return p.frame
	}

	p.state = models.NextMeetingState(p.state, snap.Status.MeetingStatus)

	switch RenderModeFor(p.state) {
	case ModeActive:
		remaining := countdownBudget(snap.Status.RemainingTime)
		if !p.mounted {
			p.Adapter.Mount(snap.Status.JitsiRoom, p.DisplayName, remaining)
			p.mounted = true
			p.Logger.Info("conference adapter mounted", zap.String("room", snap.Status.JitsiRoom))
		} else {
			p.Adapter.Sync(remaining)
		}
		p.frame = Frame{
			View:      ViewActive,
			Message:   "Tu sesión está en curso.",
			Room:      snap.Status.JitsiRoom,
			Countdown: FormatCountdown(snap.Status.RemainingTime),
		}
	case ModeCompleted:
		if p.mounted {
			p.Adapter.Dispose()
		}
		p.frame = Frame{
			View:    ViewCompleted,
			Message: "La sesión finalizó. ¡Gracias!",
			Action:  "Ver resumen",
		}
		p.navigateOnce(p.PostMeetingPath)
	case ModeCancelled:
		p.frame = Frame{
			View:    ViewCancelled,
			Message: "La sesión fue cancelada.",
			Action:  "Volver al panel",
		}
		p.navigateOnce(p.DashboardPath)
	case ModeExpired:
		p.frame = Frame{
			View:    ViewExpired,
			Message: "La sesión expiró sin realizarse.",
			Action:  "Volver al panel",
		}
		p.navigateOnce(p.DashboardPath)
	default:
		p.frame = Frame{View: ViewWaiting, Message: "Esperando..."}
	}
	return p.frame
}

// MeetingEnded folds the adapter's leave callback into the machine: the
// session is over locally even before the server confirms it.
func (p *Presenter) MeetingEnded() Frame {
	return p.Apply(Snapshot{Status: &models.MeetingStatus{MeetingStatus: models.MeetingCompleted}})
}

// Frame returns the current frame.
func (p *Presenter) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frame
}

// State returns the reduced lifecycle state.
func (p *Presenter) State() models.MeetingState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// navigateOnce is called with p.mu held.
func (p *Presenter) navigateOnce(target string) {
	if p.navigated || p.Navigate == nil {
		return
	}
	p.navigated = true
	p.Navigate(target)
}

func countdownBudget(ms *int64) time.Duration {
	if ms == nil || *ms <= 0 {
		return 0
	}
	return time.Duration(*ms) * time.Millisecond
}
