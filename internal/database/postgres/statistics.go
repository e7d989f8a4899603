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

// StatisticsRepository implements the user-statistics repository for PostgreSQL
type StatisticsRepository struct {
	db *pgxpool.Pool
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(db *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

const statisticsColumns = `user_id, username, bet_count, exact_hits,
	correct_differences, draw_tendencies, correct_tendencies, misses, points`

func scanStatistics(row pgx.Row) (*domain.UserStatistics, error) {
	var s domain.UserStatistics
	err := row.Scan(
		&s.UserID, &s.Username, &s.BetCount, &s.ExactHits,
		&s.CorrectDifferences, &s.DrawTendencies, &s.CorrectTendencies,
		&s.Misses, &s.Points,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func upsertStatistics(ctx context.Context, q querier, stats *domain.UserStatistics) error {
	query := `
		INSERT INTO user_statistics (
			user_id, username, bet_count, exact_hits,
			correct_differences, draw_tendencies, correct_tendencies, misses, points, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
			bet_count = EXCLUDED.bet_count,
			exact_hits = EXCLUDED.exact_hits,
			correct_differences = EXCLUDED.correct_differences,
			draw_tendencies = EXCLUDED.draw_tendencies,
			correct_tendencies = EXCLUDED.correct_tendencies,
			misses = EXCLUDED.misses,
			points = EXCLUDED.points,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query,
		stats.UserID, stats.Username, stats.BetCount, stats.ExactHits,
		stats.CorrectDifferences, stats.DrawTendencies, stats.CorrectTendencies,
		stats.Misses, stats.Points,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert statistics: %w", err)
	}
	return nil
}

// Upsert replaces the user's statistics record wholesale
func (r *StatisticsRepository) Upsert(ctx context.Context, stats *domain.UserStatistics) error {
	return upsertStatistics(ctx, r.db, stats)
}

// GetByUser retrieves one user's statistics record
func (r *StatisticsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error) {
	query := `SELECT ` + statisticsColumns + ` FROM user_statistics WHERE user_id = $1`
	stats, err := scanStatistics(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return stats, nil
}

// GetLeaderboard returns statistics ordered by points desc, exact hits
// desc, username asc
func (r *StatisticsRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.UserStatistics, error) {
	query := `
		SELECT ` + statisticsColumns + `
		FROM user_statistics
		ORDER BY points DESC, exact_hits DESC, username ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	leaderboard := []domain.UserStatistics{}
	for rows.Next() {
		s, err := scanStatistics(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statistics: %w", err)
		}
		leaderboard = append(leaderboard, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return leaderboard, nil
}
