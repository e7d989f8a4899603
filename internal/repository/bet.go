package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// Bet defines the interface for bet persistence.
//
// Create must reject a second bet for the same (user, bettable) pair with
// domain.ErrDuplicateBet; the engine assumes the uniqueness invariant holds.
type Bet interface {
	Create(ctx context.Context, bet *domain.Bet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error)
	GetByUserAndBettable(ctx context.Context, userID, bettableID uuid.UUID) (*domain.Bet, error)
	GetByBettable(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error)

	// GetScoredByUser returns the user's bets whose bettable has an
	// official result, with the cached derived fields as last written
	// by the scorer
	GetScoredByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error)

	// CountWithPrediction counts the user's bets carrying a submitted
	// prediction, across all bettables, scored or not
	CountWithPrediction(ctx context.Context, userID uuid.UUID) (int, error)

	UpdatePrediction(ctx context.Context, bet *domain.Bet) error
	Delete(ctx context.Context, id uuid.UUID) error
}
