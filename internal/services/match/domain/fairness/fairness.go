// Package fairness picks the next free-for-all round so participants who have
// played the least go first.
//
// The selection is deterministic: repeated calls over unchanged state return
// the same answer. Ties on played-count break by participant registration
// order, then by round position.
package fairness

import (
	"sort"

	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/view"
)

// CandidateRounds returns the ordered fairness queue: at most one pending
// round per eligible participant, least-played participants first.
//
// A participant is eligible when at least one pending round is assigned to
// them and, when the session configures a rounds-per-player target, their
// played-count is still below it.
func CandidateRounds(snap *view.Snapshot) []entity.Round {
	if snap == nil || snap.Session == nil {
		return nil
	}
	pending := snap.PendingRounds()
	if len(pending) == 0 {
		return nil
	}

	target := snap.Session.Settings.RoundsPerPlayer

	eligible := make(map[string]bool)
	for _, round := range pending {
		participantID := round.ParticipantA
		if participantID == "" {
			continue
		}
		if target > 0 && snap.CompletedCount(participantID) >= target {
			continue
		}
		eligible[participantID] = true
	}
	if len(eligible) == 0 {
		return nil
	}

	minCompleted := -1
	for participantID := range eligible {
		count := snap.CompletedCount(participantID)
		if minCompleted == -1 || count < minCompleted {
			minCompleted = count
		}
	}

	var candidates []entity.Round
	for _, round := range pending {
		participantID := round.ParticipantA
		if !eligible[participantID] {
			continue
		}
		if snap.CompletedCount(participantID) != minCompleted {
			continue
		}
		candidates = append(candidates, round)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].ParticipantA, candidates[j].ParticipantA
		ci, cj := snap.CompletedCount(pi), snap.CompletedCount(pj)
		if ci != cj {
			return ci < cj
		}
		si, sj := snap.ParticipantByID[pi].Seq, snap.ParticipantByID[pj].Seq
		if si != sj {
			return si < sj
		}
		return candidates[i].Position < candidates[j].Position
	})

	// One round per participant, keeping the first occurrence so the sort
	// order decides which of a participant's rounds represents them.
	seen := make(map[string]bool, len(candidates))
	deduped := candidates[:0]
	for _, round := range candidates {
		if seen[round.ParticipantA] {
			continue
		}
		seen[round.ParticipantA] = true
		deduped = append(deduped, round)
	}
	return deduped
}

// NextRound returns the head of the fairness queue.
func NextRound(snap *view.Snapshot) (entity.Round, bool) {
	candidates := CandidateRounds(snap)
	if len(candidates) == 0 {
		return entity.Round{}, false
	}
	return candidates[0], true
}
