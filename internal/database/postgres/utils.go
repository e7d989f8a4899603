package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/logger"
)

// querier is the slice of pgx shared by *pgxpool.Pool and pgx.Tx. The
// repository query helpers take it so the standalone repositories and the
// cascade transaction run the same SQL.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation, optionally on a specific constraint
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}

func textToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func ptrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func int4ToPtr(i pgtype.Int4) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int32)
	return &v
}

func ptrToInt4(i *int) pgtype.Int4 {
	if i == nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(*i), Valid: true}
}

func categoryToText(c *domain.ResultBetType) pgtype.Text {
	if c == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: string(*c), Valid: true}
}

func textToCategory(t pgtype.Text) *domain.ResultBetType {
	if !t.Valid {
		return nil
	}
	c := domain.ResultBetType(t.String)
	return &c
}

// betColumns is the select list every bet query shares, in scanBet order
const betColumns = `bet_id, user_id, bettable_id, home_goals, away_goals, answer, result_bet_type, points, created_at, updated_at`

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var bet domain.Bet
	var category, answer pgtype.Text
	var points pgtype.Int4
	err := row.Scan(
		&bet.ID, &bet.UserID, &bet.BettableID,
		&bet.Goals.Home, &bet.Goals.Away, &answer,
		&category, &points,
		&bet.CreatedAt, &bet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	bet.Answer = answer.String
	bet.ResultBetType = textToCategory(category)
	bet.Points = int4ToPtr(points)
	return &bet, nil
}

func collectBets(rows pgx.Rows) ([]domain.Bet, error) {
	defer rows.Close()
	bets := []domain.Bet{}
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, *bet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bets: %w", err)
	}
	return bets, nil
}

// bettableColumns is the select list every bettable query shares, in
// scanBettable order
const bettableColumns = `bettable_id, kind, name, deadline, result,
	home_team, away_team, kickoff, home_goals, away_goals,
	extra_points, choices, outcome`

func scanBettable(row pgx.Row) (*domain.Bettable, error) {
	var b domain.Bettable
	var result, homeTeam, awayTeam, outcome pgtype.Text
	var kickoff pgtype.Timestamptz
	var homeGoals, awayGoals, extraPoints pgtype.Int4
	var choices []string
	err := row.Scan(
		&b.ID, &b.Kind, &b.Name, &b.Deadline, &result,
		&homeTeam, &awayTeam, &kickoff, &homeGoals, &awayGoals,
		&extraPoints, &choices, &outcome,
	)
	if err != nil {
		return nil, err
	}
	b.Result = textToPtr(result)
	switch b.Kind {
	case domain.KindMatch:
		b.Match = &domain.MatchDetails{
			HomeTeam: homeTeam.String,
			AwayTeam: awayTeam.String,
			Kickoff:  kickoff.Time,
			Goals:    domain.Score{Home: int(homeGoals.Int32), Away: int(awayGoals.Int32)},
		}
	case domain.KindExtra:
		b.Extra = &domain.ExtraDetails{
			Points:  int(extraPoints.Int32),
			Choices: choices,
			Outcome: outcome.String,
		}
	}
	return &b, nil
}
