package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResultBetType classifies how close a scored bet came to the official result
type ResultBetType string

const (
	ResultBetTypeExactHit          ResultBetType = "exact_hit"
	ResultBetTypeCorrectDifference ResultBetType = "correct_difference"
	ResultBetTypeDrawTendency      ResultBetType = "correct_draw_tendency"
	ResultBetTypeCorrectTendency   ResultBetType = "correct_tendency"
	ResultBetTypeMiss              ResultBetType = "miss"
)

// AllResultBetTypes lists every classification a scored bet can receive
var AllResultBetTypes = []ResultBetType{
	ResultBetTypeExactHit,
	ResultBetTypeCorrectDifference,
	ResultBetTypeDrawTendency,
	ResultBetTypeCorrectTendency,
	ResultBetTypeMiss,
}

// Bet is one user's prediction for one bettable. At most one bet exists
// per (user, bettable) pair; the persistence layer enforces uniqueness.
//
// ResultBetType and Points are derived fields owned by the scoring engine.
// nil means "not yet scorable", which is distinct from a scored zero.
type Bet struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	BettableID uuid.UUID `json:"bettable_id"`

	// Prediction: goal pair for match bets, answer string for extra bets
	Goals  Score  `json:"goals"`
	Answer string `json:"answer,omitempty"`

	ResultBetType *ResultBetType `json:"result_bet_type,omitempty"`
	Points        *int           `json:"points,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPrediction reports whether the bet carries a submitted prediction
// for a bettable of the given kind.
func (b *Bet) HasPrediction(kind BettableKind) bool {
	switch kind {
	case KindMatch:
		return b.Goals.IsSet()
	case KindExtra:
		return b.Answer != ""
	}
	return false
}

// IsScored reports whether the derived fields are populated
func (b *Bet) IsScored() bool {
	return b.ResultBetType != nil && b.Points != nil
}
