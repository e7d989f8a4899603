package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// BettableRepository implements the bettable repository for PostgreSQL
type BettableRepository struct {
	db *pgxpool.Pool
}

// NewBettableRepository creates a new BettableRepository
func NewBettableRepository(db *pgxpool.Pool) *BettableRepository {
	return &BettableRepository{db: db}
}

func createBettable(ctx context.Context, q querier, b *domain.Bettable) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	query := `
		INSERT INTO bettables (
			bettable_id, kind, name, deadline, result,
			home_team, away_team, kickoff, home_goals, away_goals,
			extra_points, choices, outcome
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	var (
		homeTeam, awayTeam   string
		kickoff              *time.Time
		homeGoals, awayGoals = domain.GoalsUnset, domain.GoalsUnset
		extraPoints          int
		choices              []string
		outcome              string
	)
	switch b.Kind {
	case domain.KindMatch:
		if b.Match == nil {
			return domain.ErrInvalidKind
		}
		homeTeam = b.Match.HomeTeam
		awayTeam = b.Match.AwayTeam
		kickoff = &b.Match.Kickoff
		homeGoals = b.Match.Goals.Home
		awayGoals = b.Match.Goals.Away
	case domain.KindExtra:
		if b.Extra == nil {
			return domain.ErrInvalidKind
		}
		extraPoints = b.Extra.Points
		choices = b.Extra.Choices
		outcome = b.Extra.Outcome
	default:
		return domain.ErrInvalidKind
	}

	_, err := q.Exec(ctx, query,
		b.ID, b.Kind, b.Name, b.Deadline, ptrToText(b.Result),
		homeTeam, awayTeam, kickoff, homeGoals, awayGoals,
		extraPoints, choices, outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bettable: %w", err)
	}
	return nil
}

func getBettable(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*domain.Bettable, error) {
	query := `SELECT ` + bettableColumns + ` FROM bettables WHERE bettable_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBettable(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBettableNotFound
		}
		return nil, fmt.Errorf("failed to get bettable: %w", err)
	}
	return b, nil
}

func updateBettable(ctx context.Context, q querier, b *domain.Bettable) error {
	query := `
		UPDATE bettables
		SET name = $2, deadline = $3, result = $4,
			home_team = $5, away_team = $6, kickoff = $7,
			home_goals = $8, away_goals = $9,
			extra_points = $10, choices = $11, outcome = $12
		WHERE bettable_id = $1
	`
	var (
		homeTeam, awayTeam   string
		kickoff              *time.Time
		homeGoals, awayGoals = domain.GoalsUnset, domain.GoalsUnset
		extraPoints          int
		choices              []string
		outcome              string
	)
	if b.Match != nil {
		homeTeam = b.Match.HomeTeam
		awayTeam = b.Match.AwayTeam
		kickoff = &b.Match.Kickoff
		homeGoals = b.Match.Goals.Home
		awayGoals = b.Match.Goals.Away
	}
	if b.Extra != nil {
		extraPoints = b.Extra.Points
		choices = b.Extra.Choices
		outcome = b.Extra.Outcome
	}

	tag, err := q.Exec(ctx, query,
		b.ID, b.Name, b.Deadline, ptrToText(b.Result),
		homeTeam, awayTeam, kickoff, homeGoals, awayGoals,
		extraPoints, choices, outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to update bettable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBettableNotFound
	}
	return nil
}

func tournamentStarted(ctx context.Context, q querier, now time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bettables WHERE kind = $1 AND kickoff <= $2)`
	var started bool
	if err := q.QueryRow(ctx, query, domain.KindMatch, now).Scan(&started); err != nil {
		return false, fmt.Errorf("failed to check tournament start: %w", err)
	}
	return started, nil
}

// Create inserts a new bettable, generating an ID if none is set
func (r *BettableRepository) Create(ctx context.Context, bettable *domain.Bettable) error {
	return createBettable(ctx, r.db, bettable)
}

// GetByID retrieves a bettable by its ID
func (r *BettableRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bettable, error) {
	return getBettable(ctx, r.db, id, false)
}

// List returns all bettables ordered by deadline
func (r *BettableRepository) List(ctx context.Context) ([]domain.Bettable, error) {
	query := `SELECT ` + bettableColumns + ` FROM bettables ORDER BY deadline, name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bettables: %w", err)
	}
	defer rows.Close()

	bettables := []domain.Bettable{}
	for rows.Next() {
		b, err := scanBettable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bettable: %w", err)
		}
		bettables = append(bettables, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bettables: %w", err)
	}
	return bettables, nil
}

// Update rewrites all mutable fields of a bettable
func (r *BettableRepository) Update(ctx context.Context, bettable *domain.Bettable) error {
	return updateBettable(ctx, r.db, bettable)
}

// Delete removes a bettable and, via cascade, its bets
func (r *BettableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bettables WHERE bettable_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bettable: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBettableNotFound
	}
	return nil
}

// TournamentStarted reports whether any match has kicked off yet
func (r *BettableRepository) TournamentStarted(ctx context.Context, now time.Time) (bool, error) {
	return tournamentStarted(ctx, r.db, now)
}
