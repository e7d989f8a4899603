package statistics

import "time"

// DefaultLeaderboardLimit is the number of entries returned when the
// caller passes limit <= 0
const DefaultLeaderboardLimit = 10

// leaderboardCacheSize bounds the number of distinct leaderboard limits
// kept in the read cache
const leaderboardCacheSize = 8

// leaderboardCacheTTL is how long a cached leaderboard stays fresh when
// no mutation invalidates it first
const leaderboardCacheTTL = 30 * time.Second

// Error messages
const (
	ErrMsgRecomputeFailed      = "failed to recompute statistics: %w"
	ErrMsgGetStatisticsFailed  = "failed to get statistics: %w"
	ErrMsgGetLeaderboardFailed = "failed to get leaderboard: %w"
)

// Log messages
const (
	LogMsgStatisticsRecomputed = "Statistics recomputed"
	LogMsgRetrievedLeaderboard = "Retrieved leaderboard"
)
