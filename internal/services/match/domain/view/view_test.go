package view

import (
	"reflect"
	"testing"

	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/store"
)

func hydratedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	err := s.Hydrate(store.Snapshot{
		Session: entity.Session{ID: "s1", GameType: entity.GameTypeFFA},
		Teams:   []entity.Team{{ID: "t1", SessionID: "s1"}},
		Participants: []entity.Participant{
			{ID: "p1", SessionID: "s1", TeamID: "t1"},
			{ID: "p2", SessionID: "s1", TeamID: "t1"},
		},
		Rounds: []entity.Round{
			{ID: "r2", SessionID: "s1", Position: 2, ParticipantA: "p2"},
			{ID: "r1", SessionID: "s1", Position: 1, ParticipantA: "p1"},
			{ID: "r3", SessionID: "s1", Position: 3, ParticipantA: "p1"},
		},
	})
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	return s
}

func TestComputeScopesToActiveSession(t *testing.T) {
	s := hydratedStore(t)

	// A second hydration switches the active pointer; the first session's
	// records stay in the store but drop out of the views.
	err := s.Hydrate(store.Snapshot{
		Session:      entity.Session{ID: "s2", GameType: entity.GameTypeFFA},
		Participants: []entity.Participant{{ID: "px", SessionID: "s2"}},
		Rounds:       []entity.Round{{ID: "rx", SessionID: "s2", Position: 1, ParticipantA: "px"}},
	})
	if err != nil {
		t.Fatalf("hydrate s2: %v", err)
	}

	snap := Compute(s)
	if snap.Session == nil || snap.Session.ID != "s2" {
		t.Fatalf("session = %+v, want s2", snap.Session)
	}
	if len(snap.Participants) != 1 || snap.Participants[0].ID != "px" {
		t.Fatalf("participants = %+v, want only px", snap.Participants)
	}
	if len(snap.Rounds) != 1 || snap.Rounds[0].ID != "rx" {
		t.Fatalf("rounds = %+v, want only rx", snap.Rounds)
	}
}

func TestComputeEmptyWithoutActiveSession(t *testing.T) {
	snap := Compute(store.New())

	if snap.Session != nil {
		t.Fatal("expected no session")
	}
	if len(snap.Rounds) != 0 || len(snap.Participants) != 0 || len(snap.PendingRoundIDs) != 0 {
		t.Fatal("expected empty collections")
	}
	if snap.CurrentRound != nil {
		t.Fatal("expected no current round")
	}
}

func TestPendingRoundIDsSortedByPosition(t *testing.T) {
	s := hydratedStore(t)

	snap := Compute(s)
	want := []string{"r1", "r2", "r3"}
	if !reflect.DeepEqual(snap.PendingRoundIDs, want) {
		t.Fatalf("pending = %v, want %v", snap.PendingRoundIDs, want)
	}

	if _, err := s.RegisterResult(store.ResultInput{RoundID: "r1", ParticipantID: "p1", AttemptID: "a1"}); err != nil {
		t.Fatalf("register result: %v", err)
	}
	snap = Compute(s)
	want = []string{"r2", "r3"}
	if !reflect.DeepEqual(snap.PendingRoundIDs, want) {
		t.Fatalf("pending after completion = %v, want %v", snap.PendingRoundIDs, want)
	}
}

func TestResultIndexes(t *testing.T) {
	s := hydratedStore(t)
	inputs := []store.ResultInput{
		{RoundID: "r1", ParticipantID: "p1", AttemptID: "a1"},
		{RoundID: "r2", ParticipantID: "p2", AttemptID: "a2"},
		{RoundID: "r1", ParticipantID: "p1", AttemptID: "a3"},
	}
	for _, input := range inputs {
		if _, err := s.RegisterResult(input); err != nil {
			t.Fatalf("register %s: %v", input.AttemptID, err)
		}
	}

	snap := Compute(s)

	r1 := snap.ResultsByRound["r1"]
	if len(r1) != 2 || r1[0].ID != "a1" || r1[1].ID != "a3" {
		t.Fatalf("r1 results = %+v, want a1 then a3", r1)
	}
	if snap.CompletedCount("p1") != 1 {
		t.Fatalf("p1 completed count = %d, want 1", snap.CompletedCount("p1"))
	}
	if snap.CompletedCount("p2") != 1 {
		t.Fatalf("p2 completed count = %d, want 1", snap.CompletedCount("p2"))
	}
	if !snap.HasResult("r1", "p1") || snap.HasResult("r2", "p1") {
		t.Fatal("HasResult index mismatch")
	}
}

func TestCurrentRoundFallsBackToNilWhenStale(t *testing.T) {
	s := hydratedStore(t)

	s.SetCurrentRound("r1")
	snap := Compute(s)
	if snap.CurrentRound == nil || snap.CurrentRound.ID != "r1" {
		t.Fatalf("current round = %+v, want r1", snap.CurrentRound)
	}

	s.SetCurrentRound("ghost")
	snap = Compute(s)
	if snap.CurrentRound != nil {
		t.Fatalf("current round = %+v, want nil for stale pointer", snap.CurrentRound)
	}
}

func TestBuilderMemoizesOnRevision(t *testing.T) {
	s := hydratedStore(t)
	b := NewBuilder()

	first := b.Snapshot(s)
	second := b.Snapshot(s)
	if first != second {
		t.Fatal("expected identical snapshot pointer for unchanged revision")
	}

	s.SetCurrentRound("r1")
	third := b.Snapshot(s)
	if third == second {
		t.Fatal("expected recompute after mutation")
	}
	if third.CurrentRound == nil || third.CurrentRound.ID != "r1" {
		t.Fatalf("current round = %+v, want r1", third.CurrentRound)
	}
}

func TestComputeMatchesMemoizedSnapshot(t *testing.T) {
	s := hydratedStore(t)
	if _, err := s.RegisterResult(store.ResultInput{RoundID: "r1", ParticipantID: "p1", AttemptID: "a1"}); err != nil {
		t.Fatalf("register result: %v", err)
	}
	s.SetCurrentRound("r2")

	b := NewBuilder()
	memoized := b.Snapshot(s)
	fresh := Compute(s)

	if !reflect.DeepEqual(memoized, fresh) {
		t.Fatal("expected memoized and freshly computed snapshots to be equal")
	}
}
