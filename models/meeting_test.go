package models

import "testing"

func TestNextMeetingStateForwardPath(t *testing.T) {
	cases := []struct {
		prev, next, want MeetingState
	}{
		{MeetingPending, MeetingWaiting, MeetingWaiting},
		{MeetingWaiting, MeetingActive, MeetingActive},
		{MeetingActive, MeetingCompleted, MeetingCompleted},
		{MeetingPending, MeetingActive, MeetingActive},
	}
	for _, c := range cases {
		if got := NextMeetingState(c.prev, c.next); got != c.want {
			t.Errorf("NextMeetingState(%s, %s) = %s, want %s", c.prev, c.next, got, c.want)
		}
	}
}

func TestNextMeetingStateNeverMovesBackward(t *testing.T) {
	cases := []struct {
		prev, next MeetingState
	}{
		{MeetingActive, MeetingWaiting},
		{MeetingActive, MeetingPending},
		{MeetingWaiting, MeetingPending},
	}
	for _, c := range cases {
		if got := NextMeetingState(c.prev, c.next); got != c.prev {
			t.Errorf("NextMeetingState(%s, %s) = %s, want %s", c.prev, c.next, got, c.prev)
		}
	}
}

func TestNextMeetingStateTerminalAbsorbs(t *testing.T) {
	terminals := []MeetingState{MeetingCompleted, MeetingCancelled, MeetingExpired}
	others := []MeetingState{MeetingPending, MeetingWaiting, MeetingActive, MeetingCompleted, MeetingCancelled, MeetingExpired}
	for _, term := range terminals {
		for _, next := range others {
			if got := NextMeetingState(term, next); got != term {
				t.Errorf("NextMeetingState(%s, %s) = %s, want %s", term, next, got, term)
			}
		}
	}
}

func TestNextMeetingStateCancelledAndExpiredReachableFromAnyNonTerminal(t *testing.T) {
	for _, prev := range []MeetingState{MeetingPending, MeetingWaiting, MeetingActive} {
		if got := NextMeetingState(prev, MeetingCancelled); got != MeetingCancelled {
			t.Errorf("NextMeetingState(%s, CANCELLED) = %s", prev, got)
		}
		if got := NextMeetingState(prev, MeetingExpired); got != MeetingExpired {
			t.Errorf("NextMeetingState(%s, EXPIRED) = %s", prev, got)
		}
	}
}

func TestNextMeetingStateIgnoresUnknownInput(t *testing.T) {
	if got := NextMeetingState(MeetingWaiting, MeetingState("GARBAGE")); got != MeetingWaiting {
		t.Errorf("unknown next state should be ignored, got %s", got)
	}
	// An unknown previous state adopts whatever the server reports.
	if got := NextMeetingState(MeetingState(""), MeetingWaiting); got != MeetingWaiting {
		t.Errorf("unknown prev state should adopt server state, got %s", got)
	}
}
