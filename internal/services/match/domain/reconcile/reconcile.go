// Package reconcile repairs the session invariants that result arrival can
// break: an active round must be assigned, the current participant must match
// the active round, and an exhausted session must be flagged as finished.
//
// The reconciler is the only writer of the view-state pointers. It never sets
// a round's status (that is the completion rule's job at result registration)
// and never sets the session's ended timestamp (that is the caller's job upon
// observing a complete_session action).
package reconcile

import (
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/fairness"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/store"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/view"
)

// Reconciler inspects the store and applies the minimal corrective mutations.
//
// It holds a direct handle to the store it owns and a memoizing view builder.
// The only state of its own is the id of the session it has already flagged
// complete, which keeps VerifyIntegrity idempotent between mutations.
type Reconciler struct {
	store *store.Store
	views *view.Builder

	// completionSignaledFor remembers which session already produced a
	// complete_session action so an unchanged second pass stays silent.
	completionSignaledFor string
}

// New returns a reconciler bound to the given store.
func New(s *store.Store) *Reconciler {
	return &Reconciler{
		store: s,
		views: view.NewBuilder(),
	}
}

// VerifyIntegrity runs the three repair steps in fixed order (round
// assignment and advancement, then participant sync, then session
// completion), each step observing the effects of the previous one. It returns the log of actions
// taken; an empty log means every invariant already held.
//
// When lockRoundAdvance is true the first step is skipped entirely and the
// current round pointer is frozen, even when no round is assigned.
func (r *Reconciler) VerifyIntegrity(lockRoundAdvance bool) []Action {
	var actions []Action

	if !lockRoundAdvance {
		if action, ok := r.syncRound(); ok {
			actions = append(actions, action)
		}
	}
	if action, ok := r.syncParticipant(); ok {
		actions = append(actions, action)
	}
	if action, ok := r.checkCompletion(); ok {
		actions = append(actions, action)
	}
	return actions
}

// syncRound assigns a round when none is active and advances off a completed
// one when a successor exists.
func (r *Reconciler) syncRound() (Action, bool) {
	snap := r.views.Snapshot(r.store)

	preferred, havePreferred := r.preferredRound(snap)
	active := snap.CurrentRound

	if active == nil {
		if !havePreferred {
			return Action{}, false
		}
		r.store.SetCurrentRound(preferred.ID)
		return Action{
			Type:    ActionAssignRound,
			Reason:  ReasonMissingActiveRound,
			RoundID: preferred.ID,
		}, true
	}

	if active.Status == entity.RoundStatusCompleted && havePreferred && preferred.ID != active.ID {
		r.store.SetCurrentRound(preferred.ID)
		return Action{
			Type:        ActionAdvanceRound,
			Reason:      ReasonActiveRoundCompleted,
			FromRoundID: active.ID,
			ToRoundID:   preferred.ID,
		}, true
	}

	return Action{}, false
}

// preferredRound picks the round the session should be playing next: the
// fairness queue head for free-for-all sessions (falling back to the plain
// pending queue when the selector yields nothing), the pending queue head
// otherwise.
func (r *Reconciler) preferredRound(snap *view.Snapshot) (entity.Round, bool) {
	if snap.Session == nil {
		return entity.Round{}, false
	}
	if snap.Session.GameType == entity.GameTypeFFA {
		if round, ok := fairness.NextRound(snap); ok {
			return round, true
		}
	}
	pending := snap.PendingRounds()
	if len(pending) == 0 {
		return entity.Round{}, false
	}
	return pending[0], true
}

// syncParticipant re-resolves the active round after any round change and
// aligns the current participant with it.
func (r *Reconciler) syncParticipant() (Action, bool) {
	snap := r.views.Snapshot(r.store)

	target := ""
	roundID := ""
	if round := snap.CurrentRound; round != nil {
		roundID = round.ID
		if round.Duel() {
			// Slot order is fixed: A plays before B. A slot that already
			// submitted is skipped; when both have, nobody is up.
			switch {
			case !snap.HasResult(round.ID, round.ParticipantA):
				target = round.ParticipantA
			case !snap.HasResult(round.ID, round.ParticipantB):
				target = round.ParticipantB
			}
		} else {
			target = round.ParticipantA
		}
	}

	if !r.store.SetCurrentParticipant(target) {
		return Action{}, false
	}
	return Action{
		Type:          ActionSyncPlayer,
		Reason:        ReasonAlignActivePlayer,
		RoundID:       roundID,
		ParticipantID: target,
	}, true
}

// checkCompletion emits the finished-session signal exactly once per session.
func (r *Reconciler) checkCompletion() (Action, bool) {
	snap := r.views.Snapshot(r.store)

	session := snap.Session
	exhausted := session != nil &&
		!session.Ended() &&
		len(snap.Rounds) > 0 &&
		len(snap.PendingRoundIDs) == 0

	if !exhausted {
		// A refilled or switched session may legitimately finish again later.
		r.completionSignaledFor = ""
		return Action{}, false
	}
	if r.completionSignaledFor == session.ID {
		return Action{}, false
	}

	r.completionSignaledFor = session.ID
	return Action{
		Type:          ActionCompleteSession,
		Reason:        ReasonNoRoundsRemaining,
		PendingRounds: 0,
	}, true
}
