package statistics

import (
	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// BuildStatistics replays a user's scored bets into a fresh statistics
// record. Pure aggregation: the scorer has already run, so only the cached
// derived fields on the bets are read, never recomputed.
//
// Before the tournament has started the counters are meaningless and the
// record stays all-zero regardless of existing bet data.
func BuildStatistics(userID uuid.UUID, username string, scoredBets []domain.Bet, betsPlaced int, tournamentStarted bool) domain.UserStatistics {
	stats := domain.UserStatistics{
		UserID:   userID,
		Username: username,
	}

	if !tournamentStarted {
		return stats
	}

	stats.BetCount = betsPlaced

	for _, bet := range scoredBets {
		if !bet.IsScored() {
			// Result present but not yet propagated; contributes nothing
			continue
		}
		stats.AddScored(*bet.ResultBetType, *bet.Points)
	}

	return stats
}
