package scoring

import "github.com/osse101/Tippspiel_Go/internal/domain"

// ClassifyMatch classifies a predicted score pair against the actual score
// pair. Both pairs must be fully set; callers gate on that (see Score).
//
// Rule order matters: later rules are specializations that would otherwise
// also satisfy earlier numeric coincidences.
func ClassifyMatch(actual, predicted domain.Score) domain.ResultBetType {
	if predicted == actual {
		return domain.ResultBetTypeExactHit
	}

	actualDiff := actual.Diff()
	predictedDiff := predicted.Diff()

	// Same goal difference and that difference is zero: both are draws
	if actual.Home == actual.Away && actualDiff == predictedDiff {
		return domain.ResultBetTypeDrawTendency
	}

	// Correct non-zero goal difference
	if actualDiff == predictedDiff {
		return domain.ResultBetTypeCorrectDifference
	}

	// Same winner without matching the margin: both differences nonzero
	// with the same sign
	if actualDiff*predictedDiff > 0 {
		return domain.ResultBetTypeCorrectTendency
	}

	return domain.ResultBetTypeMiss
}

// ClassifyExtra classifies a predicted answer against the official outcome.
// Extras only know exact hits and misses.
func ClassifyExtra(actual, predicted string) domain.ResultBetType {
	if actual == predicted {
		return domain.ResultBetTypeExactHit
	}
	return domain.ResultBetTypeMiss
}
