package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// BetRepository implements the bet repository for PostgreSQL
type BetRepository struct {
	db *pgxpool.Pool
}

// NewBetRepository creates a new BetRepository
func NewBetRepository(db *pgxpool.Pool) *BetRepository {
	return &BetRepository{db: db}
}

func createBet(ctx context.Context, q querier, bet *domain.Bet) error {
	if bet.ID == uuid.Nil {
		bet.ID = uuid.New()
	}
	query := `
		INSERT INTO bets (bet_id, user_id, bettable_id, home_goals, away_goals, answer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		bet.ID, bet.UserID, bet.BettableID,
		bet.Goals.Home, bet.Goals.Away, bet.Answer,
	).Scan(&bet.CreatedAt, &bet.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBet
		}
		return fmt.Errorf("failed to insert bet: %w", err)
	}
	return nil
}

func getBet(ctx context.Context, q querier, id uuid.UUID) (*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE bet_id = $1`
	bet, err := scanBet(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBetNotFound
		}
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return bet, nil
}

func getBetsByBettable(ctx context.Context, q querier, bettableID uuid.UUID) ([]domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE bettable_id = $1 ORDER BY created_at`
	rows, err := q.Query(ctx, query, bettableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets by bettable: %w", err)
	}
	return collectBets(rows)
}

func getScoredBetsByUser(ctx context.Context, q querier, userID uuid.UUID) ([]domain.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1 AND result_bet_type IS NOT NULL AND points IS NOT NULL
		ORDER BY created_at
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scored bets: %w", err)
	}
	return collectBets(rows)
}

func countBetsWithPrediction(ctx context.Context, q querier, userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bets b
		JOIN bettables t ON t.bettable_id = b.bettable_id
		WHERE b.user_id = $1
		AND ((t.kind = $2 AND b.home_goals <> $4 AND b.away_goals <> $4)
			OR (t.kind = $3 AND b.answer <> ''))
	`
	var count int
	err := q.QueryRow(ctx, query, userID, domain.KindMatch, domain.KindExtra, domain.GoalsUnset).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bets: %w", err)
	}
	return count, nil
}

func updateBetPrediction(ctx context.Context, q querier, bet *domain.Bet) error {
	query := `
		UPDATE bets
		SET home_goals = $2, away_goals = $3, answer = $4, updated_at = NOW()
		WHERE bet_id = $1
	`
	tag, err := q.Exec(ctx, query, bet.ID, bet.Goals.Home, bet.Goals.Away, bet.Answer)
	if err != nil {
		return fmt.Errorf("failed to update bet prediction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBetNotFound
	}
	return nil
}

func updateBetScore(ctx context.Context, q querier, betID uuid.UUID, category *domain.ResultBetType, points *int) error {
	query := `
		UPDATE bets
		SET result_bet_type = $2, points = $3, updated_at = NOW()
		WHERE bet_id = $1
	`
	tag, err := q.Exec(ctx, query, betID, categoryToText(category), ptrToInt4(points))
	if err != nil {
		return fmt.Errorf("failed to update bet score: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBetNotFound
	}
	return nil
}

func deleteBet(ctx context.Context, q querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM bets WHERE bet_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBetNotFound
	}
	return nil
}

// Create inserts a new bet; a second bet for the same user and bettable
// fails with domain.ErrDuplicateBet
func (r *BetRepository) Create(ctx context.Context, bet *domain.Bet) error {
	return createBet(ctx, r.db, bet)
}

// GetByID retrieves a bet by its ID
func (r *BetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	return getBet(ctx, r.db, id)
}

// GetByUserAndBettable retrieves the user's bet on one bettable
func (r *BetRepository) GetByUserAndBettable(ctx context.Context, userID, bettableID uuid.UUID) (*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1 AND bettable_id = $2`
	bet, err := scanBet(r.db.QueryRow(ctx, query, userID, bettableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBetNotFound
		}
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return bet, nil
}

// GetByBettable returns all bets placed on one bettable
func (r *BetRepository) GetByBettable(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error) {
	return getBetsByBettable(ctx, r.db, bettableID)
}

// GetByUser returns all bets placed by one user
func (r *BetRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets by user: %w", err)
	}
	return collectBets(rows)
}

// GetScoredByUser returns the user's bets that carry cached score fields
func (r *BetRepository) GetScoredByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error) {
	return getScoredBetsByUser(ctx, r.db, userID)
}

// CountWithPrediction counts the user's bets carrying a submitted prediction
func (r *BetRepository) CountWithPrediction(ctx context.Context, userID uuid.UUID) (int, error) {
	return countBetsWithPrediction(ctx, r.db, userID)
}

// UpdatePrediction rewrites the bet's prediction fields
func (r *BetRepository) UpdatePrediction(ctx context.Context, bet *domain.Bet) error {
	return updateBetPrediction(ctx, r.db, bet)
}

// Delete removes a bet
func (r *BetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteBet(ctx, r.db, id)
}
