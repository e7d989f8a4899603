package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BettableKind discriminates the two bettable variants
type BettableKind string

const (
	// KindMatch is a head-to-head game with a home/away score
	KindMatch BettableKind = "match"
	// KindExtra is a non-match question with a fixed set of named choices
	KindExtra BettableKind = "extra"
)

// GoalsUnset is the sentinel for a goal count that has not been entered yet.
// A match result is only official when both goal counts are set.
const GoalsUnset = -1

// Score is a (home, away) goal pair
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// IsSet reports whether both goal counts carry real values
func (s Score) IsSet() bool {
	return s.Home != GoalsUnset && s.Away != GoalsUnset
}

// Diff returns the goal difference (home minus away)
func (s Score) Diff() int {
	return s.Home - s.Away
}

// String formats the score as "3:1"
func (s Score) String() string {
	return fmt.Sprintf("%d:%d", s.Home, s.Away)
}

// UnsetScore returns a score with both goal counts unset
func UnsetScore() Score {
	return Score{Home: GoalsUnset, Away: GoalsUnset}
}

// MatchDetails is the match-specific payload of a bettable
type MatchDetails struct {
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Kickoff  time.Time `json:"kickoff"`
	Goals    Score     `json:"goals"`
}

// ExtraDetails is the payload of a category-question bettable.
// Points is the award for hitting the outcome exactly; a miss scores zero.
type ExtraDetails struct {
	Points  int      `json:"points"`
	Choices []string `json:"choices"`
	Outcome string   `json:"outcome"`
}

// Bettable is anything a user can bet on: a match or a category question.
// Exactly one of Match/Extra is populated, selected by Kind.
// Result is the cached summary string ("3:1", or the chosen outcome) and
// must always mirror the variant's own result fields; the propagation
// engine owns that mirror.
type Bettable struct {
	ID       uuid.UUID     `json:"id"`
	Kind     BettableKind  `json:"kind"`
	Name     string        `json:"name"`
	Deadline time.Time     `json:"deadline"`
	Result   *string       `json:"result,omitempty"`
	Match    *MatchDetails `json:"match,omitempty"`
	Extra    *ExtraDetails `json:"extra,omitempty"`
}

// HasResult reports whether an official result is present.
// Matches need both goal counts; extras need a non-empty outcome.
func (b *Bettable) HasResult() bool {
	switch b.Kind {
	case KindMatch:
		return b.Match != nil && b.Match.Goals.IsSet()
	case KindExtra:
		return b.Extra != nil && b.Extra.Outcome != ""
	}
	return false
}

// SummaryResult derives the summary string from the variant's result
// fields, or nil when no official result is present.
func (b *Bettable) SummaryResult() *string {
	if !b.HasResult() {
		return nil
	}
	var s string
	switch b.Kind {
	case KindMatch:
		s = b.Match.Goals.String()
	case KindExtra:
		s = b.Extra.Outcome
	}
	return &s
}
