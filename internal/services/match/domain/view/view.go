// Package view computes session-scoped derived views over the entity store.
//
// Everything here is a pure function of store contents. The Builder memoizes
// on the store revision as a performance shortcut only: recomputing a snapshot
// from the same state yields an identical result.
package view

import (
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/store"
)

// Source is the read surface the view builder needs from the entity store.
type Source interface {
	Revision() uint64
	ActiveSessionID() string
	SessionByID(id string) (entity.Session, bool)
	Teams() []entity.Team
	Participants() []entity.Participant
	Rounds() []entity.Round
	Results() []entity.Result
	ViewState() store.ViewState
}

// Snapshot is the joined, filtered view of the active session.
type Snapshot struct {
	// Session is nil when no active session resolves.
	Session *entity.Session

	// Collections scoped to the active session. Participants keep
	// registration order, rounds ascending position, results append order.
	Teams        []entity.Team
	Participants []entity.Participant
	Rounds       []entity.Round
	Results      []entity.Result

	TeamByID        map[string]entity.Team
	ParticipantByID map[string]entity.Participant
	RoundByID       map[string]entity.Round

	// ResultsByRound maps round id to that round's results in append order.
	ResultsByRound map[string][]entity.Result

	// RoundIDsWithResultByParticipant maps participant id to the set of round
	// ids the participant has at least one result for.
	RoundIDsWithResultByParticipant map[string]map[string]bool

	// PendingRoundIDs lists active-session rounds not yet completed, in
	// ascending position order.
	PendingRoundIDs []string

	// CurrentRound resolves the view-state pointer, nil when stale or unset.
	CurrentRound *entity.Round

	ViewState store.ViewState
}

// Compute builds a snapshot from scratch. It is pure and side-effect-free.
func Compute(src Source) *Snapshot {
	snap := &Snapshot{
		TeamByID:                        make(map[string]entity.Team),
		ParticipantByID:                 make(map[string]entity.Participant),
		RoundByID:                       make(map[string]entity.Round),
		ResultsByRound:                  make(map[string][]entity.Result),
		RoundIDsWithResultByParticipant: make(map[string]map[string]bool),
		ViewState:                       src.ViewState(),
	}

	sessionID := src.ActiveSessionID()
	if sessionID == "" {
		return snap
	}
	if session, ok := src.SessionByID(sessionID); ok {
		snap.Session = &session
	}

	for _, team := range src.Teams() {
		if team.SessionID != sessionID {
			continue
		}
		snap.Teams = append(snap.Teams, team)
		snap.TeamByID[team.ID] = team
	}

	for _, participant := range src.Participants() {
		if participant.SessionID != sessionID {
			continue
		}
		snap.Participants = append(snap.Participants, participant)
		snap.ParticipantByID[participant.ID] = participant
	}

	for _, round := range src.Rounds() {
		if round.SessionID != sessionID {
			continue
		}
		snap.Rounds = append(snap.Rounds, round)
		snap.RoundByID[round.ID] = round
		if round.Status != entity.RoundStatusCompleted {
			snap.PendingRoundIDs = append(snap.PendingRoundIDs, round.ID)
		}
	}

	for _, result := range src.Results() {
		if _, ok := snap.RoundByID[result.RoundID]; !ok {
			continue
		}
		snap.Results = append(snap.Results, result)
		snap.ResultsByRound[result.RoundID] = append(snap.ResultsByRound[result.RoundID], result)
		set := snap.RoundIDsWithResultByParticipant[result.ParticipantID]
		if set == nil {
			set = make(map[string]bool)
			snap.RoundIDsWithResultByParticipant[result.ParticipantID] = set
		}
		set[result.RoundID] = true
	}

	if currentID := snap.ViewState.CurrentRoundID; currentID != "" {
		if round, ok := snap.RoundByID[currentID]; ok {
			snap.CurrentRound = &round
		}
	}

	return snap
}

// CompletedCount returns how many rounds the participant has a result for.
func (s *Snapshot) CompletedCount(participantID string) int {
	return len(s.RoundIDsWithResultByParticipant[participantID])
}

// HasResult reports whether the participant has a result for the round.
func (s *Snapshot) HasResult(roundID, participantID string) bool {
	return s.RoundIDsWithResultByParticipant[participantID][roundID]
}

// PendingRounds resolves PendingRoundIDs to round records.
func (s *Snapshot) PendingRounds() []entity.Round {
	out := make([]entity.Round, 0, len(s.PendingRoundIDs))
	for _, id := range s.PendingRoundIDs {
		if round, ok := s.RoundByID[id]; ok {
			out = append(out, round)
		}
	}
	return out
}

// Builder memoizes snapshots on the source revision.
type Builder struct {
	lastRev  uint64
	cached   *Snapshot
	hasValue bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Snapshot returns the memoized snapshot for the source's current revision,
// recomputing only when the revision changed since the last call.
func (b *Builder) Snapshot(src Source) *Snapshot {
	rev := src.Revision()
	if b.hasValue && rev == b.lastRev {
		return b.cached
	}
	b.cached = Compute(src)
	b.lastRev = rev
	b.hasValue = true
	return b.cached
}
