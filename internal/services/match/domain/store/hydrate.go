package store

import (
	"strings"

	apperrors "github.com/louisbranch/scrimmage.space/internal/platform/errors"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
)

// Snapshot is the full hydration payload delivered by the remote session
// service: one session and its teams, participants, rounds, and results.
type Snapshot struct {
	Session      entity.Session       `json:"session"`
	Teams        []entity.Team        `json:"teams"`
	Participants []entity.Participant `json:"participants"`
	Rounds       []entity.Round       `json:"rounds"`
	Results      []entity.Result      `json:"results"`
}

// NormalizeSnapshot trims ids and canonicalizes labels ahead of hydration.
func NormalizeSnapshot(snap Snapshot) (Snapshot, error) {
	snap.Session.ID = strings.TrimSpace(snap.Session.ID)
	if snap.Session.ID == "" {
		return Snapshot{}, apperrors.New(apperrors.CodeSnapshotSessionRequired, "snapshot session id is required")
	}
	gameType, ok := entity.NormalizeGameType(string(snap.Session.GameType))
	if !ok {
		return Snapshot{}, apperrors.WithMetadata(
			apperrors.CodeSnapshotInvalidGameType,
			"snapshot game type is not supported",
			map[string]string{"game_type": string(snap.Session.GameType)},
		)
	}
	snap.Session.GameType = gameType

	for i := range snap.Rounds {
		status, _ := entity.NormalizeRoundStatus(string(snap.Rounds[i].Status))
		snap.Rounds[i].Status = status
	}
	return snap, nil
}

// Hydrate merges a snapshot into the store and makes its session the active
// one. Existing records are replaced by their snapshot counterparts, with two
// exceptions: participant registration order survives re-hydration, and a
// round's status never regresses.
//
// Hydrate does not reconcile. Callers invoke the reconciler explicitly after
// hydrating.
func (s *Store) Hydrate(snap Snapshot) error {
	normalized, err := NormalizeSnapshot(snap)
	if err != nil {
		return err
	}

	s.sessions[normalized.Session.ID] = normalized.Session

	for _, team := range normalized.Teams {
		if team.ID == "" {
			continue
		}
		s.teams[team.ID] = team
	}

	for _, participant := range normalized.Participants {
		if participant.ID == "" {
			continue
		}
		if existing, ok := s.participants[participant.ID]; ok {
			participant.Seq = existing.Seq
		} else {
			s.participantSeq++
			participant.Seq = s.participantSeq
		}
		s.participants[participant.ID] = participant
	}

	for _, round := range normalized.Rounds {
		if round.ID == "" {
			continue
		}
		if existing, ok := s.rounds[round.ID]; ok {
			round.Status = entity.MergeRoundStatus(existing.Status, round.Status)
		}
		s.rounds[round.ID] = round
	}

	for _, result := range normalized.Results {
		s.putResult(result)
	}

	s.activeSessionID = normalized.Session.ID
	s.rev++
	return nil
}

// putResult upserts a result, keeping append order stable for known ids.
func (s *Store) putResult(result entity.Result) {
	if result.ID == "" {
		result.ID = result.AttemptID
	}
	if result.ID == "" {
		return
	}
	if _, ok := s.results[result.ID]; !ok {
		s.resultOrder = append(s.resultOrder, result.ID)
	}
	s.results[result.ID] = result
}
