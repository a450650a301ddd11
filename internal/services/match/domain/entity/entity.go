package entity

import (
	"encoding/json"
	"time"
)

// Session is one complete play-through grouping teams, participants, rounds,
// and results. At most one session is active in a store at a time.
type Session struct {
	ID       string    `json:"id"`
	GameType GameType  `json:"game_type"`
	EndedAt  *time.Time `json:"ended_at,omitempty"`
	Settings Settings  `json:"settings"`
}

// Settings holds optional per-session tuning.
type Settings struct {
	// RoundsPerPlayer caps how many completed rounds a participant may reach
	// before the fair round selector stops considering them. Zero means no cap.
	RoundsPerPlayer int `json:"rounds_per_player,omitempty"`
}

// Ended reports whether the session has been concluded.
func (s Session) Ended() bool {
	return s.EndedAt != nil
}

// Team groups participants within a session. Decorative for free-for-all
// sessions, load-bearing identity for duel sessions.
type Team struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Name      string `json:"name,omitempty"`
}

// Participant is one player in a session, optionally linked to a team.
type Participant struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	TeamID      string `json:"team_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`

	// Seq is the registration order within the store, assigned at first
	// hydration and stable across re-hydrations. The fair round selector uses
	// it as a deterministic tiebreak.
	Seq int `json:"-"`
}

// Round is one unit of play. Position defines the play order within a
// session; assigned participant slots never change after creation.
type Round struct {
	ID           string      `json:"id"`
	SessionID    string      `json:"session_id"`
	Position     int         `json:"position"`
	Status       RoundStatus `json:"status"`
	ParticipantA string      `json:"participant_a"`
	ParticipantB string      `json:"participant_b,omitempty"`
}

// Duel reports whether the round carries two participant slots. Solo rounds
// (free-for-all) leave ParticipantB empty.
func (r Round) Duel() bool {
	return r.ParticipantB != ""
}

// Result is an immutable record of one participant's submission for one round.
type Result struct {
	ID            string          `json:"id"`
	RoundID       string          `json:"round_id"`
	ParticipantID string          `json:"participant_id"`
	AttemptID     string          `json:"attempt_id"`
	Score         float64         `json:"score"`
	Pass          bool            `json:"pass"`
	Transcript    string          `json:"transcript,omitempty"`
	Evaluation    json.RawMessage `json:"evaluation,omitempty"`
}
