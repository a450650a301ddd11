package entity

import "strings"

// GameType identifies how rounds are assigned and completed in a session.
type GameType string

const (
	GameTypeUnspecified GameType = ""
	// GameTypeFFA is free-for-all: one participant per round, fairness-queue ordering.
	GameTypeFFA GameType = "ffa"
	// GameTypeTDM is team-deathmatch style: two participants per round, queue ordering.
	GameTypeTDM GameType = "tdm"
)

// NormalizeGameType parses a game type label into a canonical value.
func NormalizeGameType(value string) (GameType, bool) {
	switch GameType(strings.ToLower(strings.TrimSpace(value))) {
	case GameTypeFFA:
		return GameTypeFFA, true
	case GameTypeTDM:
		return GameTypeTDM, true
	default:
		return GameTypeUnspecified, false
	}
}

// RoundStatus identifies the round lifecycle label.
type RoundStatus string

const (
	RoundStatusPending   RoundStatus = "pending"
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
)

// rank orders round statuses so transitions can be checked for monotonicity.
func (s RoundStatus) rank() int {
	switch s {
	case RoundStatusActive:
		return 1
	case RoundStatusCompleted:
		return 2
	default:
		return 0
	}
}

// NormalizeRoundStatus parses a round status label, defaulting to pending.
func NormalizeRoundStatus(value string) (RoundStatus, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return RoundStatusPending, true
	}
	switch RoundStatus(trimmed) {
	case RoundStatusPending, RoundStatusActive, RoundStatusCompleted:
		return RoundStatus(trimmed), true
	default:
		return RoundStatusPending, false
	}
}

// MergeRoundStatus resolves an incoming status against the current one,
// keeping whichever is further along. Round status never regresses.
func MergeRoundStatus(current, incoming RoundStatus) RoundStatus {
	if incoming.rank() > current.rank() {
		return incoming
	}
	return current
}
