package waitingroom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"turnia/models"
)

func statusServer(t *testing.T, hits *atomic.Int64, respond func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/api/bookings/bk-1/meeting-status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		respond(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status models.MeetingStatus) {
	json.NewEncoder(w).Encode(status)
}

func writeStatus(w http.ResponseWriter, state models.MeetingState) {
	writeJSON(w, models.MeetingStatus{
		BookingID:     "bk-1",
		JitsiRoom:     "turnia-room",
		MeetingStatus: state,
	})
}

func TestMissingCredentialsShortCircuits(t *testing.T) {
	var hits atomic.Int64
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, models.MeetingWaiting)
	})

	p := NewPoller(srv.URL, "bk-1", NewMemorySession("", "/login"), nil)
	if err := p.Start(context.Background()); !errors.Is(err, ErrAuthenticationMissing) {
		t.Fatalf("Start with empty token = %v, want ErrAuthenticationMissing", err)
	}

	p = NewPoller(srv.URL, "", NewMemorySession("token", "/login"), nil)
	if err := p.Start(context.Background()); !errors.Is(err, ErrAuthenticationMissing) {
		t.Fatalf("Start with empty booking id = %v, want ErrAuthenticationMissing", err)
	}

	time.Sleep(20 * time.Millisecond)
	if hits.Load() != 0 {
		t.Errorf("server saw %d requests, want none", hits.Load())
	}
	if snap := p.Latest(); !snap.Terminal {
		t.Error("short-circuit snapshot should be terminal")
	}
}

func TestPollerSendsBearerTokenAndRecordsStatus(t *testing.T) {
	var hits atomic.Int64
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Errorf("Authorization = %q", got)
		}
		writeStatus(w, models.MeetingWaiting)
	})

	updates := make(chan Snapshot, 16)
	p := NewPoller(srv.URL, "bk-1", NewMemorySession("token-123", "/login"), nil)
	p.Interval = 10 * time.Millisecond
	p.OnUpdate = func(s Snapshot) { updates <- s }
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Stop()

	select {
	case snap := <-updates:
		if snap.Err != nil {
			t.Fatalf("snapshot error: %v", snap.Err)
		}
		if snap.Status.MeetingStatus != models.MeetingWaiting {
			t.Errorf("status = %s, want WAITING", snap.Status.MeetingStatus)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestUnauthorizedStopsPollingAndClearsCredentials(t *testing.T) {
	var hits atomic.Int64
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	session := NewMemorySession("stale-token", "/login")
	terminal := make(chan Snapshot, 1)
	p := NewPoller(srv.URL, "bk-1", session, nil)
	p.Interval = 5 * time.Millisecond
	p.OnUpdate = func(s Snapshot) {
		if s.Terminal {
			select {
			case terminal <- s:
			default:
			}
		}
	}
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case snap := <-terminal:
		if !errors.Is(snap.Err, ErrAuthorizationExpired) {
			t.Errorf("terminal error = %v, want ErrAuthorizationExpired", snap.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("401 never surfaced as terminal")
	}

	if session.Token() != "" {
		t.Error("credentials were not cleared on 401")
	}

	// The loop must be dead: no further requests land.
	seen := hits.Load()
	time.Sleep(50 * time.Millisecond)
	if hits.Load() != seen {
		t.Errorf("requests continued after 401: %d -> %d", seen, hits.Load())
	}
}

func TestServerErrorIsNonFatal(t *testing.T) {
	var hits atomic.Int64
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	errs := make(chan Snapshot, 16)
	p := NewPoller(srv.URL, "bk-1", NewMemorySession("token", "/login"), nil)
	p.Interval = 5 * time.Millisecond
	p.OnUpdate = func(s Snapshot) { errs <- s }
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer p.Stop()

	// The error surfaces, and the next scheduled poll still fires.
	for i := 0; i < 2; i++ {
		select {
		case snap := <-errs:
			if snap.Terminal {
				t.Fatal("500 must not be terminal")
			}
			if snap.Err == nil {
				t.Fatal("500 should surface an error snapshot")
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("poll %d never fired", i+1)
		}
	}
	if hits.Load() < 2 {
		t.Errorf("server saw %d requests, want the loop to keep polling", hits.Load())
	}
}

func TestStopEndsRequests(t *testing.T) {
	var hits atomic.Int64
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, models.MeetingWaiting)
	})

	p := NewPoller(srv.URL, "bk-1", NewMemorySession("token", "/login"), nil)
	p.Interval = 5 * time.Millisecond
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)
	p.Stop()
	seen := hits.Load()
	if seen == 0 {
		t.Fatal("poller never reached the server")
	}

	time.Sleep(50 * time.Millisecond)
	if got := hits.Load(); got > seen+1 {
		t.Errorf("requests continued after Stop: %d -> %d", seen, got)
	}
}
