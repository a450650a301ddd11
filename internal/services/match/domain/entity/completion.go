package entity

// RoundComplete reports whether the supplied results satisfy the round's
// completion rule.
//
// A duel round completes once both assigned slots have at least one result.
// A solo round completes on the sole participant's first result. Results for
// participants outside the round's slots never count toward completion.
func RoundComplete(round Round, results []Result) bool {
	if round.ParticipantA == "" {
		return false
	}
	var haveA, haveB bool
	for _, result := range results {
		if result.RoundID != round.ID {
			continue
		}
		switch result.ParticipantID {
		case round.ParticipantA:
			haveA = true
		case round.ParticipantB:
			if round.ParticipantB != "" {
				haveB = true
			}
		}
	}
	if round.Duel() {
		return haveA && haveB
	}
	return haveA
}
