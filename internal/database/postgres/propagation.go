package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/repository"
)

// PropagationRepository opens the transactions the propagation engine
// runs its cascades in
type PropagationRepository struct {
	db *pgxpool.Pool
}

// NewPropagationRepository creates a new PropagationRepository
func NewPropagationRepository(db *pgxpool.Pool) *PropagationRepository {
	return &PropagationRepository{db: db}
}

// BeginCascade opens a transaction covering one full cascade
func (r *PropagationRepository) BeginCascade(ctx context.Context) (repository.Cascade, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &cascadeTx{tx: tx}, nil
}

// GetBet reads a bet outside any transaction. The engine uses it to learn
// a bet's owner and bettable before deciding which locks to take.
func (r *PropagationRepository) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	return getBet(ctx, r.db, betID)
}

// GetBetUsers lists the distinct users holding a bet on the bettable
func (r *PropagationRepository) GetBetUsers(ctx context.Context, bettableID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT user_id FROM bets WHERE bettable_id = $1`
	rows, err := r.db.Query(ctx, query, bettableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet users: %w", err)
	}
	defer rows.Close()

	var userIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan bet user: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get bet users: %w", err)
	}
	return userIDs, nil
}

// cascadeTx backs one cascade with a single pgx transaction. Every
// method reuses the shared query helpers, so cascade reads and writes
// match the standalone repositories exactly.
type cascadeTx struct {
	tx pgx.Tx
}

func (c *cascadeTx) GetBettableForUpdate(ctx context.Context, id uuid.UUID) (*domain.Bettable, error) {
	return getBettable(ctx, c.tx, id, true)
}

func (c *cascadeTx) UpdateBettableResult(ctx context.Context, bettable *domain.Bettable) error {
	return updateBettable(ctx, c.tx, bettable)
}

func (c *cascadeTx) GetBetsByBettable(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error) {
	return getBetsByBettable(ctx, c.tx, bettableID)
}

func (c *cascadeTx) UpdateBetScore(ctx context.Context, betID uuid.UUID, category *domain.ResultBetType, points *int) error {
	return updateBetScore(ctx, c.tx, betID, category, points)
}

func (c *cascadeTx) CreateBet(ctx context.Context, bet *domain.Bet) error {
	return createBet(ctx, c.tx, bet)
}

func (c *cascadeTx) UpdateBetPrediction(ctx context.Context, bet *domain.Bet) error {
	return updateBetPrediction(ctx, c.tx, bet)
}

func (c *cascadeTx) DeleteBet(ctx context.Context, betID uuid.UUID) error {
	return deleteBet(ctx, c.tx, betID)
}

func (c *cascadeTx) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	return getBet(ctx, c.tx, betID)
}

func (c *cascadeTx) GetScoredBetsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error) {
	return getScoredBetsByUser(ctx, c.tx, userID)
}

func (c *cascadeTx) CountBetsWithPrediction(ctx context.Context, userID uuid.UUID) (int, error) {
	return countBetsWithPrediction(ctx, c.tx, userID)
}

func (c *cascadeTx) TournamentStarted(ctx context.Context, now time.Time) (bool, error) {
	return tournamentStarted(ctx, c.tx, now)
}

func (c *cascadeTx) GetUsername(ctx context.Context, userID uuid.UUID) (string, error) {
	return getUsername(ctx, c.tx, userID)
}

func (c *cascadeTx) UpsertStatistics(ctx context.Context, stats *domain.UserStatistics) error {
	return upsertStatistics(ctx, c.tx, stats)
}

func (c *cascadeTx) Commit(ctx context.Context) error {
	if err := c.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}
	return nil
}

func (c *cascadeTx) Rollback(ctx context.Context) error {
	SafeRollback(ctx, c.tx)
	return nil
}
