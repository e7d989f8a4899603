package scoring

import "github.com/osse101/Tippspiel_Go/internal/domain"

// Score computes the derived fields for a bet against its bettable.
//
// Returns (nil, nil) when the bet is not yet scorable: the bettable has
// no official result or the bet carries no prediction. Absence is a
// first-class state here, never an error and never a scored zero.
//
// The function is pure; the propagation engine persists the result onto
// the bet inside its transaction.
func Score(bet *domain.Bet, target *domain.Bettable, table PointsTable) (*domain.ResultBetType, *int) {
	if !target.HasResult() || !bet.HasPrediction(target.Kind) {
		return nil, nil
	}

	var category domain.ResultBetType
	var points int

	switch target.Kind {
	case domain.KindMatch:
		category = ClassifyMatch(target.Match.Goals, bet.Goals)
		points = table.Points(category)
	case domain.KindExtra:
		category = ClassifyExtra(target.Extra.Outcome, bet.Answer)
		points = ExtraPoints(category, target.Extra)
	default:
		return nil, nil
	}

	return &category, &points
}
