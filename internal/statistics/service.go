package statistics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/osse101/Tippspiel_Go/internal/concurrency"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/metrics"
	"github.com/osse101/Tippspiel_Go/internal/repository"
)

// Service defines the interface for statistics operations
type Service interface {
	// Recompute rebuilds one user's statistics record from their full
	// bet history and replaces the stored record wholesale
	Recompute(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error)
	GetUserStatistics(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error)
	GetLeaderboard(ctx context.Context, limit int) ([]domain.UserStatistics, error)
	// InvalidateLeaderboard drops cached leaderboards after a mutation
	InvalidateLeaderboard()
}

// service implements the Service interface
type service struct {
	betRepo      repository.Bet
	bettableRepo repository.Bettable
	statsRepo    repository.Statistics
	userRepo     repository.User
	locks        *concurrency.LockManager

	cache    *expirable.LRU[int, []domain.UserStatistics]
	collator *collate.Collator
}

// NewService creates a new statistics service. The lock manager must be
// the one the propagation engine uses, so recomputes and cascades writing
// the same user's record serialize on the same named lock.
func NewService(betRepo repository.Bet, bettableRepo repository.Bettable, statsRepo repository.Statistics, userRepo repository.User, locks *concurrency.LockManager) Service {
	return &service{
		betRepo:      betRepo,
		bettableRepo: bettableRepo,
		statsRepo:    statsRepo,
		userRepo:     userRepo,
		locks:        locks,
		cache:        expirable.NewLRU[int, []domain.UserStatistics](leaderboardCacheSize, nil, leaderboardCacheTTL),
		collator:     collate.New(language.German, collate.IgnoreCase),
	}
}

// Recompute rebuilds the user's statistics from scratch. Full replace,
// never an incremental patch, so stale counters cannot survive.
func (s *service) Recompute(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error) {
	log := logger.FromContext(ctx)

	// Same named lock the engine holds while cascading into this user's
	// record. Without it a slow recompute could upsert a stale read over
	// a newer cascade result.
	unlock := s.locks.LockOrdered(concurrency.UserStatsKey(userID))
	defer unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRecomputeFailed, err)
	}

	started, err := s.bettableRepo.TournamentStarted(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRecomputeFailed, err)
	}

	var scored []domain.Bet
	var placed int
	if started {
		scored, err = s.betRepo.GetScoredByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgRecomputeFailed, err)
		}
		placed, err = s.betRepo.CountWithPrediction(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgRecomputeFailed, err)
		}
	}

	stats := BuildStatistics(userID, user.Username, scored, placed, started)
	if err := s.statsRepo.Upsert(ctx, &stats); err != nil {
		return nil, fmt.Errorf(ErrMsgRecomputeFailed, err)
	}

	s.cache.Purge()
	metrics.StatisticsRecomputed.Inc()

	log.Debug(LogMsgStatisticsRecomputed,
		"user_id", userID,
		"bet_count", stats.BetCount,
		"points", stats.Points)

	return &stats, nil
}

// GetUserStatistics reads the stored record for one user
func (s *service) GetUserStatistics(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error) {
	stats, err := s.statsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetStatisticsFailed, err)
	}
	return stats, nil
}

// GetLeaderboard returns the top statistics records ordered by points desc,
// exact-hit count desc, username asc. Usernames collate case-insensitively
// so the tie-break does not depend on database collation settings.
func (s *service) GetLeaderboard(ctx context.Context, limit int) ([]domain.UserStatistics, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	if cached, ok := s.cache.Get(limit); ok {
		return cached, nil
	}

	entries, err := s.statsRepo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetLeaderboardFailed, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].ExactHits != entries[j].ExactHits {
			return entries[i].ExactHits > entries[j].ExactHits
		}
		return s.collator.CompareString(entries[i].Username, entries[j].Username) < 0
	})

	s.cache.Add(limit, entries)

	log.Debug(LogMsgRetrievedLeaderboard, "limit", limit, "entries", len(entries))
	return entries, nil
}

// InvalidateLeaderboard drops every cached leaderboard
func (s *service) InvalidateLeaderboard() {
	s.cache.Purge()
}
