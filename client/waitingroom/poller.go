package waitingroom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"turnia/models"

	"go.uber.org/zap"
)

// DefaultPollInterval is how often the waiting room refreshes meeting status.
const DefaultPollInterval = 5 * time.Second

var (
	// ErrAuthenticationMissing is reported when there is no booking id or no
	// token; polling never starts.
	ErrAuthenticationMissing = errors.New("waitingroom: missing booking id or credentials")
	// ErrAuthorizationExpired is reported on HTTP 401; polling stops and the
	// session credentials are cleared.
	ErrAuthorizationExpired = errors.New("waitingroom: authorization expired")
)

// Snapshot is the latest observation of the meeting, last-write-wins.
type Snapshot struct {
	Status *models.MeetingStatus
	Err    error
	// Terminal marks an auth failure: the loop has stopped and the session
	// must re-authenticate.
	Terminal bool
}

// Poller issues the periodic authenticated meeting-status request. Transient
// failures surface in the snapshot and the next tick still fires; a 401 is
// terminal.
type Poller struct {
	Client    *http.Client
	BaseURL   string
	BookingID string
	Session   Session
	Interval  time.Duration
	Logger    *zap.Logger

	// OnUpdate, when set, observes every snapshot as it lands.
	OnUpdate func(Snapshot)

	mu      sync.Mutex
	latest  Snapshot
	cancel  context.CancelFunc
	started bool
}

func NewPoller(baseURL, bookingID string, session Session, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		Client:    &http.Client{Timeout: 10 * time.Second},
		BaseURL:   baseURL,
		BookingID: bookingID,
		Session:   session,
		Interval:  DefaultPollInterval,
		Logger:    logger,
	}
}

// Start begins the polling loop: one immediate poll, then one per interval.
// Missing booking id or token short-circuits without a single request.
func (p *Poller) Start(ctx context.Context) error {
	if p.BookingID == "" || p.Session.Token() == "" {
		p.record(Snapshot{Err: ErrAuthenticationMissing, Terminal: true})
		return ErrAuthenticationMissing
	}

	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return nil
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	p.mu.Unlock()

	go p.loop(ctx)
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	if terminal := p.pollOnce(ctx); terminal {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if terminal := p.pollOnce(ctx); terminal {
				return
			}
		}
	}
}

// pollOnce issues a single status request and records the snapshot. Returns
// true when the loop must stop.
func (p *Poller) pollOnce(ctx context.Context) bool {
	url := fmt.Sprintf("%s/api/bookings/%s/meeting-status", p.BaseURL, p.BookingID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		p.record(Snapshot{Err: err})
		return false
	}
	req.Header.Set("Authorization", "Bearer "+p.Session.Token())

	resp, err := p.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		p.Logger.Debug("status poll failed", zap.Error(err))
		p.record(Snapshot{Err: err})
		return false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		p.Session.ClearCredentials()
		p.record(Snapshot{Err: ErrAuthorizationExpired, Terminal: true})
		return true
	case resp.StatusCode != http.StatusOK:
		p.record(Snapshot{Err: fmt.Errorf("waitingroom: status request returned %d", resp.StatusCode)})
		return false
	}

	var status models.MeetingStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		p.record(Snapshot{Err: fmt.Errorf("waitingroom: malformed status payload: %w", err)})
		return false
	}
	p.record(Snapshot{Status: &status})
	return false
}

func (p *Poller) record(snap Snapshot) {
	p.mu.Lock()
	p.latest = snap
	onUpdate := p.OnUpdate
	p.mu.Unlock()
	if onUpdate != nil {
		onUpdate(snap)
	}
}

// Latest returns the most recent snapshot.
func (p *Poller) Latest() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Stop cancels the loop; no request fires after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.started = false
	p.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
