package scoring_bench

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/concurrency"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/repository"
	"github.com/osse101/Tippspiel_Go/internal/scoring"
	"github.com/osse101/Tippspiel_Go/internal/statistics"
)

// --- Stubs (zero-overhead mocks for benchmarking) ---

type StubStatsRepo struct {
	board []domain.UserStatistics
}

func (s *StubStatsRepo) Upsert(ctx context.Context, stats *domain.UserStatistics) error { return nil }
func (s *StubStatsRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error) {
	return &domain.UserStatistics{UserID: userID}, nil
}
func (s *StubStatsRepo) GetLeaderboard(ctx context.Context, limit int) ([]domain.UserStatistics, error) {
	// Fresh slice each call; the service sorts in place
	return append([]domain.UserStatistics(nil), s.board...), nil
}

type StubBetRepo struct {
	repository.Bet
	scored []domain.Bet
}

func (s *StubBetRepo) GetScoredByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error) {
	return s.scored, nil
}
func (s *StubBetRepo) CountWithPrediction(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(s.scored), nil
}

type StubBettableRepo struct {
	repository.Bettable
}

func (s *StubBettableRepo) TournamentStarted(ctx context.Context, now time.Time) (bool, error) {
	return true, nil
}

type StubUserRepo struct {
	repository.User
}

func (s *StubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return &domain.User{ID: id, Username: "bench"}, nil
}

func makeScoredBets(n int) []domain.Bet {
	categories := domain.AllResultBetTypes
	table := scoring.DefaultPointsTable()

	bets := make([]domain.Bet, n)
	for i := range bets {
		category := categories[i%len(categories)]
		points := table.Points(category)
		bets[i] = domain.Bet{
			ID:            uuid.New(),
			UserID:        uuid.New(),
			ResultBetType: &category,
			Points:        &points,
		}
	}
	return bets
}

// --- Benchmark functions ---

// BenchmarkClassifyMatch measures the classifier across all five outcomes.
func BenchmarkClassifyMatch(b *testing.B) {
	actual := domain.Score{Home: 2, Away: 1}
	predictions := []domain.Score{
		{Home: 2, Away: 1}, // exact hit
		{Home: 3, Away: 2}, // correct difference
		{Home: 1, Away: 0}, // correct difference
		{Home: 4, Away: 1}, // correct tendency
		{Home: 0, Away: 2}, // miss
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = scoring.ClassifyMatch(actual, predictions[i%len(predictions)])
	}
}

// BenchmarkScore_MatchBets measures the full scoring path for match bets,
// the hot loop of a result cascade.
func BenchmarkScore_MatchBets(b *testing.B) {
	table := scoring.DefaultPointsTable()
	target := &domain.Bettable{
		ID:   uuid.New(),
		Kind: domain.KindMatch,
		Match: &domain.MatchDetails{
			HomeTeam: "Germany",
			AwayTeam: "France",
			Goals:    domain.Score{Home: 2, Away: 1},
		},
	}
	bet := &domain.Bet{
		ID:    uuid.New(),
		Goals: domain.Score{Home: 3, Away: 2},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = scoring.Score(bet, target, table)
	}
}

// BenchmarkBuildStatistics_LargeHistory replays a season's worth of scored
// bets into a statistics record.
func BenchmarkBuildStatistics_LargeHistory(b *testing.B) {
	userID := uuid.New()
	bets := makeScoredBets(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = statistics.BuildStatistics(userID, "bench", bets, len(bets), true)
	}
}

// BenchmarkGetLeaderboard_Uncached measures sorting and collation of a
// large leaderboard with every call missing the cache.
func BenchmarkGetLeaderboard_Uncached(b *testing.B) {
	board := make([]domain.UserStatistics, 1000)
	for i := range board {
		board[i] = domain.UserStatistics{
			UserID:    uuid.New(),
			Username:  uuid.NewString(),
			Points:    i % 40,
			ExactHits: i % 7,
		}
	}

	svc := statistics.NewService(&StubBetRepo{}, &StubBettableRepo{}, &StubStatsRepo{board: board}, &StubUserRepo{}, concurrency.NewLockManager())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.InvalidateLeaderboard()
		if _, err := svc.GetLeaderboard(ctx, 1000); err != nil {
			b.Fatalf("GetLeaderboard failed: %v", err)
		}
	}
}

// BenchmarkRecompute measures a full statistics recompute through the
// service with stubbed persistence.
func BenchmarkRecompute(b *testing.B) {
	bets := &StubBetRepo{scored: makeScoredBets(100)}
	svc := statistics.NewService(bets, &StubBettableRepo{}, &StubStatsRepo{}, &StubUserRepo{}, concurrency.NewLockManager())

	userID := uuid.New()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Recompute(ctx, userID); err != nil {
			b.Fatalf("Recompute failed: %v", err)
		}
	}
}
