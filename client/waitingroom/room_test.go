package waitingroom

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"turnia/models"
)

// Unmounting the waiting room mid-session must tear down the polling loop,
// the countdown, and the widget, with no network calls afterwards.
func TestCloseWhileActiveReleasesEverything(t *testing.T) {
	var hits atomic.Int64
	remaining := int64(60000)
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models.MeetingStatus{
			BookingID:     "bk-1",
			JitsiRoom:     "turnia-room",
			MeetingStatus: models.MeetingActive,
			RemainingTime: &remaining,
		})
	})

	widget := newFakeConference()
	room := NewRoom(RoomConfig{
		BaseURL:     srv.URL,
		BookingID:   "bk-1",
		Session:     NewMemorySession("token", "/login"),
		Widget:      widget,
		DisplayName: "Ana",
		CurrentPath: "/reservas/bk-1/sala",
	})
	room.Poller.Interval = 5 * time.Millisecond
	room.Adapter.TickInterval = time.Millisecond

	if err := room.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for room.Frame().View != ViewActive {
		select {
		case <-deadline:
			t.Fatal("room never reached the active view")
		case <-time.After(time.Millisecond):
		}
	}
	room.Adapter.GrantConsent()
	if err := room.Adapter.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}

	room.Close()

	widget.mu.Lock()
	disposed := widget.disposed
	widget.mu.Unlock()
	if disposed == 0 {
		t.Fatal("widget not disposed on close")
	}

	seen := hits.Load()
	time.Sleep(50 * time.Millisecond)
	if got := hits.Load(); got > seen+1 {
		t.Errorf("polling continued after close: %d -> %d", seen, got)
	}
}

func TestRoomWaitingFlow(t *testing.T) {
	var hits atomic.Int64
	srv := statusServer(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, models.MeetingWaiting)
	})

	widget := newFakeConference()
	room := NewRoom(RoomConfig{
		BaseURL:   srv.URL,
		BookingID: "bk-1",
		Session:   NewMemorySession("token", "/login"),
		Widget:    widget,
	})
	room.Poller.Interval = 5 * time.Millisecond
	if err := room.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer room.Close()

	deadline := time.After(2 * time.Second)
	for room.Frame().Message != "Esperando..." {
		select {
		case <-deadline:
			t.Fatalf("frame = %+v, want the waiting copy", room.Frame())
		case <-time.After(time.Millisecond):
		}
	}
	if widget.joinCount() != 0 {
		t.Error("widget joined while still waiting")
	}
}
