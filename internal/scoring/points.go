package scoring

import "github.com/osse101/Tippspiel_Go/internal/domain"

// PointsTable maps classifications to point values for match bets.
// Extra bettables carry their own point value and do not consult the table.
//
// There is exactly one authoritative table per deployment, built from
// configuration at startup.
type PointsTable map[domain.ResultBetType]int

// DefaultPointsTable returns the historically common scoring scheme
func DefaultPointsTable() PointsTable {
	return PointsTable{
		domain.ResultBetTypeExactHit:          DefaultPointsExactHit,
		domain.ResultBetTypeCorrectDifference: DefaultPointsCorrectDifference,
		domain.ResultBetTypeDrawTendency:      DefaultPointsDrawTendency,
		domain.ResultBetTypeCorrectTendency:   DefaultPointsCorrectTendency,
		domain.ResultBetTypeMiss:              DefaultPointsMiss,
	}
}

// Points looks up the award for a classification. Unknown categories
// score zero; the classifier never produces one.
func (t PointsTable) Points(category domain.ResultBetType) int {
	return t[category]
}

// ExtraPoints returns the award for an extra-bettable classification:
// the bettable's own point value on an exact hit, zero otherwise.
func ExtraPoints(category domain.ResultBetType, extra *domain.ExtraDetails) int {
	if category == domain.ResultBetTypeExactHit {
		return extra.Points
	}
	return 0
}
