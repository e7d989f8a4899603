package scoring

// Default point values for match-bet classifications. Tournaments have
// varied these historically, so config may override each one.
const (
	DefaultPointsExactHit          = 3
	DefaultPointsCorrectDifference = 2
	DefaultPointsDrawTendency      = 1
	DefaultPointsCorrectTendency   = 1
	DefaultPointsMiss              = 0
)
