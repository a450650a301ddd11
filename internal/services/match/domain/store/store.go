package store

import (
	"sort"

	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
)

// ViewState is the small mutable record the presentation layer reads directly.
type ViewState struct {
	CurrentRoundID       string
	CurrentParticipantID string
	// IntroSeen flags whether the session intro overlay was dismissed.
	IntroSeen bool
}

// Store holds normalized session state keyed by entity id.
type Store struct {
	sessions     map[string]entity.Session
	teams        map[string]entity.Team
	participants map[string]entity.Participant
	rounds       map[string]entity.Round
	results      map[string]entity.Result

	// resultOrder preserves append order so per-round result lists are stable.
	resultOrder []string
	// participantSeq hands out registration order numbers across hydrations.
	participantSeq int

	activeSessionID string
	view            ViewState
	rev             uint64
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.clear()
	return s
}

func (s *Store) clear() {
	s.sessions = make(map[string]entity.Session)
	s.teams = make(map[string]entity.Team)
	s.participants = make(map[string]entity.Participant)
	s.rounds = make(map[string]entity.Round)
	s.results = make(map[string]entity.Result)
	s.resultOrder = nil
	s.participantSeq = 0
	s.activeSessionID = ""
	s.view = ViewState{}
}

// Revision returns the mutation counter. Derived views memoize on it.
func (s *Store) Revision() uint64 {
	return s.rev
}

// ActiveSessionID returns the id of the session all derived views scope to.
func (s *Store) ActiveSessionID() string {
	return s.activeSessionID
}

// ViewState returns the current round/participant pointers and UI flags.
func (s *Store) ViewState() ViewState {
	return s.view
}

// SessionByID looks up a session record.
func (s *Store) SessionByID(id string) (entity.Session, bool) {
	session, ok := s.sessions[id]
	return session, ok
}

// RoundByID looks up a round record.
func (s *Store) RoundByID(id string) (entity.Round, bool) {
	round, ok := s.rounds[id]
	return round, ok
}

// ParticipantByID looks up a participant record.
func (s *Store) ParticipantByID(id string) (entity.Participant, bool) {
	participant, ok := s.participants[id]
	return participant, ok
}

// Teams returns all team records ordered by id.
func (s *Store) Teams() []entity.Team {
	out := make([]entity.Team, 0, len(s.teams))
	for _, team := range s.teams {
		out = append(out, team)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Participants returns all participant records in registration order.
func (s *Store) Participants() []entity.Participant {
	out := make([]entity.Participant, 0, len(s.participants))
	for _, participant := range s.participants {
		out = append(out, participant)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// Rounds returns all round records in ascending position order.
func (s *Store) Rounds() []entity.Round {
	out := make([]entity.Round, 0, len(s.rounds))
	for _, round := range s.rounds {
		out = append(out, round)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Results returns all result records in append order.
func (s *Store) Results() []entity.Result {
	out := make([]entity.Result, 0, len(s.resultOrder))
	for _, id := range s.resultOrder {
		if result, ok := s.results[id]; ok {
			out = append(out, result)
		}
	}
	return out
}

// Reset clears all collections and pointers.
func (s *Store) Reset() {
	s.clear()
	s.rev++
}

// SetCurrentRound points the view state at a round id. Returns false without
// mutating when the value is unchanged.
func (s *Store) SetCurrentRound(id string) bool {
	if s.view.CurrentRoundID == id {
		return false
	}
	s.view.CurrentRoundID = id
	s.rev++
	return true
}

// SetCurrentParticipant points the view state at a participant id. Returns
// false without mutating when the value is unchanged.
func (s *Store) SetCurrentParticipant(id string) bool {
	if s.view.CurrentParticipantID == id {
		return false
	}
	s.view.CurrentParticipantID = id
	s.rev++
	return true
}

// SetIntroSeen records whether the intro overlay was dismissed. Returns false
// without mutating when the value is unchanged.
func (s *Store) SetIntroSeen(seen bool) bool {
	if s.view.IntroSeen == seen {
		return false
	}
	s.view.IntroSeen = seen
	s.rev++
	return true
}
