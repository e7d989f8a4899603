package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/concurrency"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/metrics"
	"github.com/osse101/Tippspiel_Go/internal/repository"
	"github.com/osse101/Tippspiel_Go/internal/scoring"
	"github.com/osse101/Tippspiel_Go/internal/statistics"
)

// Service is the update-propagation controller. Every mutation of source
// state (official results, bet predictions) goes through here, and the
// matching cascade runs synchronously before the call returns: derived
// state (bet categories/points, user statistics) is never stale for a
// reader once a mutation call has returned.
//
// Each cascade runs inside one repository transaction; any failure aborts
// the whole cascade and no partial update becomes visible.
type Service interface {
	// SetMatchResult sets or clears a match's official score.
	// Passing domain.UnsetScore() clears the result and cascades the
	// clearing into dependent bet scores and statistics.
	SetMatchResult(ctx context.Context, bettableID uuid.UUID, goals domain.Score) error

	// SetExtraResult sets or clears an extra's official outcome.
	// A blank outcome clears the result.
	SetExtraResult(ctx context.Context, bettableID uuid.UUID, outcome string) error

	// PlaceBet persists a new bet and scores it. Deadline enforcement is
	// the caller's job; the engine scores whatever it is handed.
	PlaceBet(ctx context.Context, bet *domain.Bet) error

	// UpdateBet replaces a bet's prediction and rescores it
	UpdateBet(ctx context.Context, bet *domain.Bet) error

	// RemoveBet deletes a bet and recomputes its owner's statistics
	RemoveBet(ctx context.Context, betID uuid.UUID) error
}

type service struct {
	repo        repository.Propagation
	points      scoring.PointsTable
	locks       *concurrency.LockManager
	invalidator statistics.Service
}

// NewService creates a new propagation engine
func NewService(repo repository.Propagation, points scoring.PointsTable, locks *concurrency.LockManager, stats statistics.Service) Service {
	return &service{
		repo:        repo,
		points:      points,
		locks:       locks,
		invalidator: stats,
	}
}

// SetMatchResult writes the score pair onto the match and cascades
func (s *service) SetMatchResult(ctx context.Context, bettableID uuid.UUID, goals domain.Score) error {
	// Both goal counts set or both unset, nothing in between
	if (goals.Home == domain.GoalsUnset) != (goals.Away == domain.GoalsUnset) {
		return domain.ErrInvalidScore
	}
	if goals.IsSet() && (goals.Home < 0 || goals.Away < 0) {
		return domain.ErrInvalidScore
	}

	return s.propagateResult(ctx, bettableID, func(b *domain.Bettable) error {
		if b.Kind != domain.KindMatch {
			return domain.ErrInvalidKind
		}
		b.Match.Goals = goals
		return nil
	})
}

// SetExtraResult writes the outcome onto the extra and cascades
func (s *service) SetExtraResult(ctx context.Context, bettableID uuid.UUID, outcome string) error {
	outcome = strings.TrimSpace(outcome)

	return s.propagateResult(ctx, bettableID, func(b *domain.Bettable) error {
		if b.Kind != domain.KindExtra {
			return domain.ErrInvalidKind
		}
		b.Extra.Outcome = outcome
		return nil
	})
}

// propagateResult runs the full result-changed cascade: mirror the summary
// result, rescore every bet on the bettable, recompute statistics for every
// user holding one of those bets.
//
// Every in-process lock is taken before the transaction opens. A cascade
// that waits on a named lock while holding row locks can deadlock against
// a cascade holding that lock and waiting on the rows, so the full lock
// set must be known up front. The bettable lock freezes the bettor set,
// which makes the pre-transaction read of it authoritative.
func (s *service) propagateResult(ctx context.Context, bettableID uuid.UUID, apply func(*domain.Bettable) error) error {
	log := logger.FromContext(ctx)

	unlock := s.locks.LockOrdered(concurrency.BettableKey(bettableID))
	defer unlock()

	userIDs, err := s.repo.GetBetUsers(ctx, bettableID)
	if err != nil {
		return err
	}
	userLocks := make([]string, len(userIDs))
	for i, userID := range userIDs {
		userLocks[i] = concurrency.UserStatsKey(userID)
	}
	release := s.locks.LockOrdered(userLocks...)
	defer release()

	err = s.inCascade(ctx, TriggerResultChanged, func(tx repository.Cascade) error {
		bettable, err := tx.GetBettableForUpdate(ctx, bettableID)
		if err != nil {
			return err
		}

		if err := apply(bettable); err != nil {
			return err
		}

		// The summary field must never be observed out of sync with the
		// variant's own result fields; both writes share this transaction.
		bettable.Result = bettable.SummaryResult()
		if err := tx.UpdateBettableResult(ctx, bettable); err != nil {
			return err
		}

		bets, err := tx.GetBetsByBettable(ctx, bettableID)
		if err != nil {
			return err
		}

		affected := make(map[uuid.UUID]bool, len(bets))
		for i := range bets {
			category, points := scoring.Score(&bets[i], bettable, s.points)
			if err := tx.UpdateBetScore(ctx, bets[i].ID, category, points); err != nil {
				return err
			}
			affected[bets[i].UserID] = true
			metrics.BetsRescored.Inc()
		}

		// Only users with a bet on this bettable need a recompute; their
		// stats locks are already held.
		for userID := range affected {
			if err := s.recomputeInTx(ctx, tx, userID); err != nil {
				return err
			}
		}

		log.Info(LogMsgResultPropagated,
			"bettable_id", bettableID,
			"result", bettable.Result,
			"bets_rescored", len(bets),
			"users_recomputed", len(affected))
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidator.InvalidateLeaderboard()
	return nil
}

// PlaceBet creates the bet, scores it, and recomputes the owner's
// statistics, all in one transaction
func (s *service) PlaceBet(ctx context.Context, bet *domain.Bet) error {
	return s.propagateBet(ctx, TriggerBetPlaced, bet, func(tx repository.Cascade) error {
		return tx.CreateBet(ctx, bet)
	})
}

// UpdateBet replaces the prediction and rescores
func (s *service) UpdateBet(ctx context.Context, bet *domain.Bet) error {
	return s.propagateBet(ctx, TriggerBetUpdated, bet, func(tx repository.Cascade) error {
		return tx.UpdateBetPrediction(ctx, bet)
	})
}

func (s *service) propagateBet(ctx context.Context, trigger string, bet *domain.Bet, write func(repository.Cascade) error) error {
	log := logger.FromContext(ctx)

	// The bettable lock is part of the set even though only one bet is
	// rescored: the cascade row-locks the bettable, and taking the named
	// lock first keeps bet cascades and result cascades on the same
	// bettable from meeting at the row lock with locks already held.
	unlock := s.locks.LockOrdered(
		concurrency.BettableKey(bet.BettableID),
		concurrency.UserStatsKey(bet.UserID))
	defer unlock()

	err := s.inCascade(ctx, trigger, func(tx repository.Cascade) error {
		target, err := tx.GetBettableForUpdate(ctx, bet.BettableID)
		if err != nil {
			return err
		}

		if err := write(tx); err != nil {
			return err
		}

		category, points := scoring.Score(bet, target, s.points)
		if err := tx.UpdateBetScore(ctx, bet.ID, category, points); err != nil {
			return err
		}
		bet.ResultBetType = category
		bet.Points = points

		if err := s.recomputeInTx(ctx, tx, bet.UserID); err != nil {
			return err
		}

		log.Info(LogMsgBetPropagated,
			"trigger", trigger,
			"bet_id", bet.ID,
			"user_id", bet.UserID,
			"bettable_id", bet.BettableID)
		return nil
	})
	if err != nil {
		return err
	}

	metrics.BetsPlaced.Inc()
	s.invalidator.InvalidateLeaderboard()
	return nil
}

// RemoveBet deletes the bet; the gone bet needs no rescoring, only its
// owner's statistics change
func (s *service) RemoveBet(ctx context.Context, betID uuid.UUID) error {
	log := logger.FromContext(ctx)

	// The owner is only known from the bet itself, so it is loaded once
	// outside the transaction to build the lock set. The cascade reloads
	// it under the locks; a concurrent delete surfaces as ErrBetNotFound
	// there.
	bet, err := s.repo.GetBet(ctx, betID)
	if err != nil {
		return err
	}

	unlock := s.locks.LockOrdered(
		concurrency.BettableKey(bet.BettableID),
		concurrency.UserStatsKey(bet.UserID))
	defer unlock()

	err = s.inCascade(ctx, TriggerBetDeleted, func(tx repository.Cascade) error {
		bet, err := tx.GetBet(ctx, betID)
		if err != nil {
			return err
		}

		if err := tx.DeleteBet(ctx, betID); err != nil {
			return err
		}

		if err := s.recomputeInTx(ctx, tx, bet.UserID); err != nil {
			return err
		}

		log.Info(LogMsgBetPropagated, "trigger", TriggerBetDeleted, "bet_id", betID, "user_id", bet.UserID)
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidator.InvalidateLeaderboard()
	return nil
}

// recomputeInTx rebuilds one user's statistics from the transaction's view
func (s *service) recomputeInTx(ctx context.Context, tx repository.Cascade, userID uuid.UUID) error {
	started, err := tx.TournamentStarted(ctx, time.Now())
	if err != nil {
		return err
	}

	username, err := tx.GetUsername(ctx, userID)
	if err != nil {
		return err
	}

	var scored []domain.Bet
	var placed int
	if started {
		scored, err = tx.GetScoredBetsByUser(ctx, userID)
		if err != nil {
			return err
		}
		placed, err = tx.CountBetsWithPrediction(ctx, userID)
		if err != nil {
			return err
		}
	}

	stats := statistics.BuildStatistics(userID, username, scored, placed, started)
	if err := tx.UpsertStatistics(ctx, &stats); err != nil {
		return err
	}

	metrics.StatisticsRecomputed.Inc()
	return nil
}

// inCascade runs fn inside one transaction. A rollback on any failure
// keeps partial cascade state invisible to readers.
func (s *service) inCascade(ctx context.Context, trigger string, fn func(repository.Cascade) error) error {
	log := logger.FromContext(ctx)

	tx, err := s.repo.BeginCascade(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginCascadeFailed, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error(LogMsgCascadeAborted, "trigger", trigger, "error", err, "rollback_error", rbErr)
		} else {
			log.Warn(LogMsgCascadeAborted, "trigger", trigger, "error", err)
		}
		metrics.CascadeFailures.WithLabelValues(trigger).Inc()
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		metrics.CascadeFailures.WithLabelValues(trigger).Inc()
		return fmt.Errorf(ErrMsgCommitCascadeFailed, err)
	}

	metrics.CascadesTotal.WithLabelValues(trigger).Inc()
	return nil
}
