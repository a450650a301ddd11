package reconcile

// ActionType tags one corrective action taken by the reconciler.
type ActionType string

const (
	// ActionAssignRound points the view state at a round when none was active.
	ActionAssignRound ActionType = "assign_round"
	// ActionAdvanceRound moves the view state off a completed round.
	ActionAdvanceRound ActionType = "advance_round"
	// ActionSyncPlayer aligns the current participant with the active round.
	ActionSyncPlayer ActionType = "sync_player"
	// ActionCompleteSession signals that no playable rounds remain. The
	// reconciler never sets the session's ended timestamp itself; the caller
	// does that upon observing this action.
	ActionCompleteSession ActionType = "complete_session"
)

// Reason explains why an action was taken.
type Reason string

const (
	ReasonMissingActiveRound   Reason = "missing_active_round"
	ReasonActiveRoundCompleted Reason = "active_round_completed"
	ReasonAlignActivePlayer    Reason = "align_active_player"
	ReasonNoRoundsRemaining    Reason = "no_rounds_remaining"
)

// Action is one entry in the reconciler's log. The populated fields depend on
// the type: assign carries RoundID, advance carries FromRoundID/ToRoundID,
// sync carries RoundID/ParticipantID, complete carries PendingRounds.
type Action struct {
	Type          ActionType `json:"type"`
	Reason        Reason     `json:"reason"`
	RoundID       string     `json:"round_id,omitempty"`
	FromRoundID   string     `json:"from_round_id,omitempty"`
	ToRoundID     string     `json:"to_round_id,omitempty"`
	ParticipantID string     `json:"participant_id,omitempty"`
	PendingRounds int        `json:"pending_rounds"`
}
