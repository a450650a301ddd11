package store

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/scrimmage.space/internal/platform/errors"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
)

func duelSnapshot() Snapshot {
	return Snapshot{
		Session: entity.Session{ID: "s1", GameType: entity.GameTypeTDM},
		Teams: []entity.Team{
			{ID: "t1", SessionID: "s1", Name: "Red"},
			{ID: "t2", SessionID: "s1", Name: "Blue"},
		},
		Participants: []entity.Participant{
			{ID: "p1", SessionID: "s1", TeamID: "t1"},
			{ID: "p2", SessionID: "s1", TeamID: "t2"},
		},
		Rounds: []entity.Round{
			{ID: "r1", SessionID: "s1", Position: 1, ParticipantA: "p1", ParticipantB: "p2"},
			{ID: "r2", SessionID: "s1", Position: 2, ParticipantA: "p1"},
		},
	}
}

func TestHydrateSetsActiveSession(t *testing.T) {
	s := New()

	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	if s.ActiveSessionID() != "s1" {
		t.Fatalf("active session = %q, want s1", s.ActiveSessionID())
	}
	if _, ok := s.SessionByID("s1"); !ok {
		t.Fatal("expected hydrated session record")
	}
	if got := len(s.Rounds()); got != 2 {
		t.Fatalf("rounds = %d, want 2", got)
	}
	if got := len(s.Participants()); got != 2 {
		t.Fatalf("participants = %d, want 2", got)
	}
}

func TestHydrateRequiresSessionID(t *testing.T) {
	s := New()

	err := s.Hydrate(Snapshot{Session: entity.Session{GameType: entity.GameTypeFFA}})
	if err == nil {
		t.Fatal("expected error for missing session id")
	}
	if !errors.Is(err, apperrors.New(apperrors.CodeSnapshotSessionRequired, "")) {
		t.Fatalf("error code mismatch: %v", err)
	}
}

func TestHydrateRejectsUnknownGameType(t *testing.T) {
	s := New()

	err := s.Hydrate(Snapshot{Session: entity.Session{ID: "s1", GameType: "battle-royale"}})
	if !errors.Is(err, apperrors.New(apperrors.CodeSnapshotInvalidGameType, "")) {
		t.Fatalf("expected invalid game type error, got %v", err)
	}
}

func TestHydratePreservesRegistrationOrderAcrossRehydration(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	// Re-hydrate with participants in reverse payload order plus a newcomer.
	snap := duelSnapshot()
	snap.Participants = []entity.Participant{
		{ID: "p2", SessionID: "s1"},
		{ID: "p1", SessionID: "s1"},
		{ID: "p3", SessionID: "s1"},
	}
	if err := s.Hydrate(snap); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}

	participants := s.Participants()
	if len(participants) != 3 {
		t.Fatalf("participants = %d, want 3", len(participants))
	}
	if participants[0].ID != "p1" || participants[1].ID != "p2" || participants[2].ID != "p3" {
		t.Fatalf("registration order = %s,%s,%s, want p1,p2,p3",
			participants[0].ID, participants[1].ID, participants[2].ID)
	}
}

func TestHydrateNeverRegressesRoundStatus(t *testing.T) {
	s := New()
	snap := duelSnapshot()
	snap.Rounds[0].Status = entity.RoundStatusCompleted
	if err := s.Hydrate(snap); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	stale := duelSnapshot()
	stale.Rounds[0].Status = entity.RoundStatusPending
	if err := s.Hydrate(stale); err != nil {
		t.Fatalf("rehydrate: %v", err)
	}

	round, ok := s.RoundByID("r1")
	if !ok {
		t.Fatal("expected round r1")
	}
	if round.Status != entity.RoundStatusCompleted {
		t.Fatalf("round status = %q, want completed", round.Status)
	}
}

func TestRegisterResultCompletesDuelRoundOnlyWithBothSlots(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	if _, err := s.RegisterResult(ResultInput{RoundID: "r1", ParticipantID: "p1", AttemptID: "a1"}); err != nil {
		t.Fatalf("register first result: %v", err)
	}
	round, _ := s.RoundByID("r1")
	if round.Status == entity.RoundStatusCompleted {
		t.Fatal("expected duel round to stay open after one result")
	}

	if _, err := s.RegisterResult(ResultInput{RoundID: "r1", ParticipantID: "p2", AttemptID: "a2"}); err != nil {
		t.Fatalf("register second result: %v", err)
	}
	round, _ = s.RoundByID("r1")
	if round.Status != entity.RoundStatusCompleted {
		t.Fatalf("round status = %q, want completed", round.Status)
	}
}

func TestRegisterResultCompletesSoloRoundImmediately(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	if _, err := s.RegisterResult(ResultInput{RoundID: "r2", ParticipantID: "p1", AttemptID: "a1"}); err != nil {
		t.Fatalf("register result: %v", err)
	}
	round, _ := s.RoundByID("r2")
	if round.Status != entity.RoundStatusCompleted {
		t.Fatalf("round status = %q, want completed", round.Status)
	}
}

func TestRegisterResultAcceptsUnknownRound(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	result, err := s.RegisterResult(ResultInput{RoundID: "ghost", ParticipantID: "p1", AttemptID: "a1"})
	if err != nil {
		t.Fatalf("register result for unknown round: %v", err)
	}
	if result.ID != "a1" {
		t.Fatalf("result id = %q, want attempt id", result.ID)
	}
	if got := len(s.Results()); got != 1 {
		t.Fatalf("results = %d, want 1", got)
	}
}

func TestRegisterResultGeneratesIDWithoutAttempt(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	result, err := s.RegisterResult(ResultInput{RoundID: "r1", ParticipantID: "p1"})
	if err != nil {
		t.Fatalf("register result: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected generated result id")
	}
}

func TestRegisterResultValidatesRequiredIDs(t *testing.T) {
	s := New()

	if _, err := s.RegisterResult(ResultInput{ParticipantID: "p1"}); !errors.Is(err, apperrors.New(apperrors.CodeResultRoundIDRequired, "")) {
		t.Fatalf("expected round id error, got %v", err)
	}
	if _, err := s.RegisterResult(ResultInput{RoundID: "r1"}); !errors.Is(err, apperrors.New(apperrors.CodeResultParticipantIDRequired, "")) {
		t.Fatalf("expected participant id error, got %v", err)
	}
}

func TestSettersGuardAgainstNoopWrites(t *testing.T) {
	s := New()

	if !s.SetCurrentRound("r1") {
		t.Fatal("expected first round write to mutate")
	}
	rev := s.Revision()
	if s.SetCurrentRound("r1") {
		t.Fatal("expected unchanged round write to be a no-op")
	}
	if s.Revision() != rev {
		t.Fatal("expected no revision bump for no-op write")
	}

	if !s.SetCurrentParticipant("p1") {
		t.Fatal("expected first participant write to mutate")
	}
	if s.SetCurrentParticipant("p1") {
		t.Fatal("expected unchanged participant write to be a no-op")
	}

	if !s.SetIntroSeen(true) {
		t.Fatal("expected intro flag write to mutate")
	}
	if s.SetIntroSeen(true) {
		t.Fatal("expected unchanged intro flag write to be a no-op")
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	s.SetCurrentRound("r1")
	s.SetCurrentParticipant("p1")

	s.Reset()

	if s.ActiveSessionID() != "" {
		t.Fatalf("active session after reset = %q, want empty", s.ActiveSessionID())
	}
	if got := s.ViewState(); got != (ViewState{}) {
		t.Fatalf("view state after reset = %+v, want zero", got)
	}
	if len(s.Rounds()) != 0 || len(s.Participants()) != 0 || len(s.Results()) != 0 {
		t.Fatal("expected empty collections after reset")
	}
}

func TestResultsKeepAppendOrder(t *testing.T) {
	s := New()
	if err := s.Hydrate(duelSnapshot()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}

	for _, attempt := range []string{"a3", "a1", "a2"} {
		if _, err := s.RegisterResult(ResultInput{RoundID: "r1", ParticipantID: "p1", AttemptID: attempt}); err != nil {
			t.Fatalf("register %s: %v", attempt, err)
		}
	}

	results := s.Results()
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].ID != "a3" || results[1].ID != "a1" || results[2].ID != "a2" {
		t.Fatalf("append order = %s,%s,%s, want a3,a1,a2", results[0].ID, results[1].ID, results[2].ID)
	}
}
