package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// Bettable defines the interface for bettable persistence
type Bettable interface {
	Create(ctx context.Context, bettable *domain.Bettable) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bettable, error)
	List(ctx context.Context) ([]domain.Bettable, error)
	Update(ctx context.Context, bettable *domain.Bettable) error
	Delete(ctx context.Context, id uuid.UUID) error

	// TournamentStarted reports whether any match's kickoff precedes now.
	// Statistics are all-zero before the tournament starts.
	TournamentStarted(ctx context.Context, now time.Time) (bool, error)
}
