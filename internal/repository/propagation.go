package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// Propagation begins the transactions the update-propagation engine runs
// its cascades in. One cascade equals one transaction: either every write
// of a trigger becomes visible or none does.
type Propagation interface {
	BeginCascade(ctx context.Context) (Cascade, error)

	// Pre-transaction reads. The engine computes its full lock set from
	// these before it opens the cascade transaction, so it never waits on
	// an in-process lock while holding row locks.
	GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error)
	GetBetUsers(ctx context.Context, bettableID uuid.UUID) ([]uuid.UUID, error)
}

// Cascade is the transactional view a single propagation cascade operates
// on. Reads are consistent within the transaction; GetBettableForUpdate
// takes a row lock so concurrent cascades on the same bettable serialize
// at the database as well.
type Cascade interface {
	GetBettableForUpdate(ctx context.Context, id uuid.UUID) (*domain.Bettable, error)
	UpdateBettableResult(ctx context.Context, bettable *domain.Bettable) error

	GetBetsByBettable(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error)
	UpdateBetScore(ctx context.Context, betID uuid.UUID, category *domain.ResultBetType, points *int) error

	// Bet prediction writes happen inside the cascade transaction too,
	// so a failed rescore also rolls the prediction back.
	// CreateBet returns domain.ErrDuplicateBet when the (user, bettable)
	// pair already has a bet.
	CreateBet(ctx context.Context, bet *domain.Bet) error
	UpdateBetPrediction(ctx context.Context, bet *domain.Bet) error
	DeleteBet(ctx context.Context, betID uuid.UUID) error
	GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error)

	GetScoredBetsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error)
	CountBetsWithPrediction(ctx context.Context, userID uuid.UUID) (int, error)
	TournamentStarted(ctx context.Context, now time.Time) (bool, error)
	GetUsername(ctx context.Context, userID uuid.UUID) (string, error)
	UpsertStatistics(ctx context.Context, stats *domain.UserStatistics) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
