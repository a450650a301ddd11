package store

import (
	"encoding/json"
	"strings"

	apperrors "github.com/louisbranch/scrimmage.space/internal/platform/errors"
	"github.com/louisbranch/scrimmage.space/internal/platform/id"
	"github.com/louisbranch/scrimmage.space/internal/services/match/domain/entity"
)

// ResultInput is the register-result entry point payload.
type ResultInput struct {
	RoundID       string          `json:"round_id"`
	ParticipantID string          `json:"participant_id"`
	AttemptID     string          `json:"attempt_id"`
	Score         float64         `json:"score"`
	Pass          bool            `json:"pass"`
	Transcript    string          `json:"transcript,omitempty"`
	Evaluation    json.RawMessage `json:"evaluation,omitempty"`
}

// RegisterResult appends an immutable result record and synchronously applies
// the round completion rule to the referenced round, if it is known.
//
// The store deliberately does not check that the round or participant exist in
// the active session; results for unknown ids are stored as-is and simply
// never influence a known round. Registering a result does not reconcile;
// the caller invokes the reconciler afterward when it needs invariants
// repaired.
func (s *Store) RegisterResult(input ResultInput) (entity.Result, error) {
	input.RoundID = strings.TrimSpace(input.RoundID)
	if input.RoundID == "" {
		return entity.Result{}, apperrors.New(apperrors.CodeResultRoundIDRequired, "result round id is required")
	}
	input.ParticipantID = strings.TrimSpace(input.ParticipantID)
	if input.ParticipantID == "" {
		return entity.Result{}, apperrors.New(apperrors.CodeResultParticipantIDRequired, "result participant id is required")
	}

	resultID := strings.TrimSpace(input.AttemptID)
	if resultID == "" {
		generated, err := id.NewID()
		if err != nil {
			return entity.Result{}, err
		}
		resultID = generated
	}

	result := entity.Result{
		ID:            resultID,
		RoundID:       input.RoundID,
		ParticipantID: input.ParticipantID,
		AttemptID:     input.AttemptID,
		Score:         input.Score,
		Pass:          input.Pass,
		Transcript:    input.Transcript,
		Evaluation:    input.Evaluation,
	}
	s.putResult(result)

	if round, ok := s.rounds[result.RoundID]; ok {
		if entity.RoundComplete(round, s.resultsForRound(round.ID)) {
			round.Status = entity.MergeRoundStatus(round.Status, entity.RoundStatusCompleted)
			s.rounds[round.ID] = round
		}
	}

	s.rev++
	return result, nil
}

func (s *Store) resultsForRound(roundID string) []entity.Result {
	var out []entity.Result
	for _, resultID := range s.resultOrder {
		if result, ok := s.results[resultID]; ok && result.RoundID == roundID {
			out = append(out, result)
		}
	}
	return out
}
