package domain

import "github.com/google/uuid"

// UserStatistics holds the per-user derived counters used for leaderboard
// ranking. The record is entirely derived: it is replaced wholesale on
// every recompute and must always equal a replay of the user's bets
// through the scorer.
type UserStatistics struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`

	// BetCount counts bets that actually carry a prediction,
	// across all bettables, scored or not
	BetCount int `json:"bet_count"`

	ExactHits          int `json:"exact_hits"`
	CorrectDifferences int `json:"correct_differences"`
	DrawTendencies     int `json:"draw_tendencies"`
	CorrectTendencies  int `json:"correct_tendencies"`
	Misses             int `json:"misses"`

	Points int `json:"points"`
}

// AddScored increments the counter matching the category and adds the points
func (s *UserStatistics) AddScored(category ResultBetType, points int) {
	switch category {
	case ResultBetTypeExactHit:
		s.ExactHits++
	case ResultBetTypeCorrectDifference:
		s.CorrectDifferences++
	case ResultBetTypeDrawTendency:
		s.DrawTendencies++
	case ResultBetTypeCorrectTendency:
		s.CorrectTendencies++
	case ResultBetTypeMiss:
		s.Misses++
	}
	s.Points += points
}
