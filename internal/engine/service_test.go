package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Tippspiel_Go/internal/concurrency"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/repository"
	"github.com/osse101/Tippspiel_Go/internal/scoring"
	"github.com/osse101/Tippspiel_Go/internal/testing/leaktest"
)

func newTestEngine(store repository.Propagation) (Service, *invalidatorStub) {
	stub := &invalidatorStub{}
	svc := NewService(store, scoring.DefaultPointsTable(), concurrency.NewLockManager(), stub)
	return svc, stub
}

func addUser(store *fakeStore, username string) uuid.UUID {
	id := uuid.New()
	store.users[id] = username
	return id
}

func addMatch(store *fakeStore, goals domain.Score) uuid.UUID {
	id := uuid.New()
	b := &domain.Bettable{
		ID:       id,
		Kind:     domain.KindMatch,
		Name:     "Germany vs France",
		Deadline: time.Now().Add(time.Hour),
		Match: &domain.MatchDetails{
			HomeTeam: "Germany",
			AwayTeam: "France",
			Kickoff:  time.Now().Add(time.Hour),
			Goals:    goals,
		},
	}
	b.Result = b.SummaryResult()
	store.bettables[id] = b
	return id
}

func addExtra(store *fakeStore, points int, choices []string, outcome string) uuid.UUID {
	id := uuid.New()
	b := &domain.Bettable{
		ID:       id,
		Kind:     domain.KindExtra,
		Name:     "Champion",
		Deadline: time.Now().Add(time.Hour),
		Extra: &domain.ExtraDetails{
			Points:  points,
			Choices: choices,
			Outcome: outcome,
		},
	}
	b.Result = b.SummaryResult()
	store.bettables[id] = b
	return id
}

func addBet(store *fakeStore, userID, bettableID uuid.UUID, goals domain.Score, answer string) uuid.UUID {
	id := uuid.New()
	store.bets[id] = &domain.Bet{
		ID:         id,
		UserID:     userID,
		BettableID: bettableID,
		Goals:      goals,
		Answer:     answer,
	}
	return id
}

func TestSetMatchResult_RescoresAllBetsAndStatistics(t *testing.T) {
	store := newFakeStore()
	svc, stub := newTestEngine(store)

	alice := addUser(store, "alice")
	bob := addUser(store, "bob")
	matchID := addMatch(store, domain.UnsetScore())
	aliceBet := addBet(store, alice, matchID, domain.Score{Home: 2, Away: 1}, "")
	bobBet := addBet(store, bob, matchID, domain.Score{Home: 0, Away: 3}, "")

	err := svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: 2, Away: 1})
	require.NoError(t, err)

	// source state and mirror
	target := store.bettables[matchID]
	assert.Equal(t, domain.Score{Home: 2, Away: 1}, target.Match.Goals)
	require.NotNil(t, target.Result)
	assert.Equal(t, "2:1", *target.Result)

	// derived bet state
	scored := store.bets[aliceBet]
	require.True(t, scored.IsScored())
	assert.Equal(t, domain.ResultBetTypeExactHit, *scored.ResultBetType)
	assert.Equal(t, 3, *scored.Points)

	missed := store.bets[bobBet]
	require.True(t, missed.IsScored())
	assert.Equal(t, domain.ResultBetTypeMiss, *missed.ResultBetType)
	assert.Equal(t, 0, *missed.Points)

	// statistics for every affected user
	aliceStats := store.stats[alice]
	assert.Equal(t, 3, aliceStats.Points)
	assert.Equal(t, 1, aliceStats.ExactHits)
	assert.Equal(t, 1, aliceStats.BetCount)

	bobStats := store.stats[bob]
	assert.Equal(t, 0, bobStats.Points)
	assert.Equal(t, 1, bobStats.Misses)

	assert.Equal(t, 1, store.commits)
	assert.Equal(t, 1, stub.invalidations())
}

func TestSetMatchResult_ClearingResultClearsDerivedState(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.Score{Home: 2, Away: 1})
	betID := addBet(store, alice, matchID, domain.Score{Home: 2, Away: 1}, "")

	require.NoError(t, svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: 2, Away: 1}))
	require.True(t, store.bets[betID].IsScored())

	err := svc.SetMatchResult(context.Background(), matchID, domain.UnsetScore())
	require.NoError(t, err)

	target := store.bettables[matchID]
	assert.False(t, target.HasResult())
	assert.Nil(t, target.Result)

	cleared := store.bets[betID]
	assert.Nil(t, cleared.ResultBetType)
	assert.Nil(t, cleared.Points)

	// bet count survives clearing, scored counters do not
	stats := store.stats[alice]
	assert.Equal(t, 1, stats.BetCount)
	assert.Equal(t, 0, stats.Points)
	assert.Equal(t, 0, stats.ExactHits)
}

func TestSetMatchResult_RejectsHalfSetScore(t *testing.T) {
	store := newFakeStore()
	svc, stub := newTestEngine(store)
	matchID := addMatch(store, domain.UnsetScore())

	err := svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: 2, Away: domain.GoalsUnset})
	assert.ErrorIs(t, err, domain.ErrInvalidScore)

	// rejected before any transaction began
	assert.Equal(t, 0, store.commits)
	assert.Equal(t, 0, store.rollbacks)
	assert.Equal(t, 0, stub.invalidations())
}

func TestSetMatchResult_WrongKindRollsBack(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)
	extraID := addExtra(store, 5, []string{"Germany", "France"}, "")

	err := svc.SetMatchResult(context.Background(), extraID, domain.Score{Home: 1, Away: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
	assert.Equal(t, 0, store.commits)
	assert.Equal(t, 1, store.rollbacks)
}

func TestSetMatchResult_UnknownBettable(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	err := svc.SetMatchResult(context.Background(), uuid.New(), domain.Score{Home: 1, Away: 0})
	assert.ErrorIs(t, err, domain.ErrBettableNotFound)
	assert.Equal(t, 1, store.rollbacks)
}

func TestSetExtraResult_ScoresAnswersAgainstOutcome(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	bob := addUser(store, "bob")
	extraID := addExtra(store, 5, []string{"Germany", "France", "Spain"}, "")
	hit := addBet(store, alice, extraID, domain.UnsetScore(), "Germany")
	miss := addBet(store, bob, extraID, domain.UnsetScore(), "Spain")

	err := svc.SetExtraResult(context.Background(), extraID, "Germany")
	require.NoError(t, err)

	require.NotNil(t, store.bettables[extraID].Result)
	assert.Equal(t, "Germany", *store.bettables[extraID].Result)

	assert.Equal(t, domain.ResultBetTypeExactHit, *store.bets[hit].ResultBetType)
	assert.Equal(t, 5, *store.bets[hit].Points)
	assert.Equal(t, domain.ResultBetTypeMiss, *store.bets[miss].ResultBetType)
	assert.Equal(t, 0, *store.bets[miss].Points)

	assert.Equal(t, 5, store.stats[alice].Points)
	assert.Equal(t, 0, store.stats[bob].Points)
}

func TestSetExtraResult_BlankOutcomeClears(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	extraID := addExtra(store, 5, []string{"Germany", "France"}, "Germany")
	betID := addBet(store, alice, extraID, domain.UnsetScore(), "Germany")

	require.NoError(t, svc.SetExtraResult(context.Background(), extraID, "Germany"))
	require.True(t, store.bets[betID].IsScored())

	err := svc.SetExtraResult(context.Background(), extraID, "   ")
	require.NoError(t, err)

	assert.Nil(t, store.bettables[extraID].Result)
	assert.Nil(t, store.bets[betID].ResultBetType)
	assert.Nil(t, store.bets[betID].Points)
}

func TestPlaceBet_BeforeResultLeavesBetUnscored(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.UnsetScore())

	bet := &domain.Bet{
		UserID:     alice,
		BettableID: matchID,
		Goals:      domain.Score{Home: 1, Away: 1},
	}
	err := svc.PlaceBet(context.Background(), bet)
	require.NoError(t, err)

	stored := store.bets[bet.ID]
	require.NotNil(t, stored)
	assert.Nil(t, stored.ResultBetType)
	assert.Nil(t, stored.Points)

	// placed bets count even while unscored
	assert.Equal(t, 1, store.stats[alice].BetCount)
	assert.Equal(t, 0, store.stats[alice].Points)
}

func TestPlaceBet_AfterResultScoresImmediately(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.Score{Home: 1, Away: 1})

	bet := &domain.Bet{
		UserID:     alice,
		BettableID: matchID,
		Goals:      domain.Score{Home: 2, Away: 2},
	}
	err := svc.PlaceBet(context.Background(), bet)
	require.NoError(t, err)

	// derived fields are echoed onto the argument as well
	require.NotNil(t, bet.ResultBetType)
	assert.Equal(t, domain.ResultBetTypeDrawTendency, *bet.ResultBetType)
	assert.Equal(t, 1, *bet.Points)

	assert.Equal(t, 1, store.stats[alice].Points)
	assert.Equal(t, 1, store.stats[alice].DrawTendencies)
}

func TestPlaceBet_DuplicateRollsBack(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.UnsetScore())
	addBet(store, alice, matchID, domain.Score{Home: 1, Away: 0}, "")

	err := svc.PlaceBet(context.Background(), &domain.Bet{
		UserID:     alice,
		BettableID: matchID,
		Goals:      domain.Score{Home: 2, Away: 0},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateBet)
	assert.Equal(t, 1, store.rollbacks)
	assert.Len(t, store.bets, 1)
}

func TestUpdateBet_RescoresNewPrediction(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.Score{Home: 2, Away: 0})
	betID := addBet(store, alice, matchID, domain.Score{Home: 0, Away: 2}, "")

	err := svc.UpdateBet(context.Background(), &domain.Bet{
		ID:         betID,
		UserID:     alice,
		BettableID: matchID,
		Goals:      domain.Score{Home: 2, Away: 0},
	})
	require.NoError(t, err)

	updated := store.bets[betID]
	assert.Equal(t, domain.Score{Home: 2, Away: 0}, updated.Goals)
	assert.Equal(t, domain.ResultBetTypeExactHit, *updated.ResultBetType)
	assert.Equal(t, 3, store.stats[alice].Points)
}

func TestRemoveBet_RecomputesOwnerStatistics(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.UnsetScore())
	betID := addBet(store, alice, matchID, domain.Score{Home: 1, Away: 0}, "")

	require.NoError(t, svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: 1, Away: 0}))
	require.Equal(t, 3, store.stats[alice].Points)

	err := svc.RemoveBet(context.Background(), betID)
	require.NoError(t, err)

	assert.NotContains(t, store.bets, betID)
	assert.Equal(t, 0, store.stats[alice].Points)
	assert.Equal(t, 0, store.stats[alice].BetCount)
}

func TestRemoveBet_UnknownBet(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	err := svc.RemoveBet(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrBetNotFound)

	// rejected while building the lock set, before any transaction began
	assert.Equal(t, 0, store.commits)
	assert.Equal(t, 0, store.rollbacks)
}

func TestCascade_MidwayFailureLeavesNoPartialState(t *testing.T) {
	store := newFakeStore()
	svc, stub := newTestEngine(store)

	alice := addUser(store, "alice")
	bob := addUser(store, "bob")
	matchID := addMatch(store, domain.UnsetScore())
	addBet(store, alice, matchID, domain.Score{Home: 2, Away: 1}, "")
	addBet(store, bob, matchID, domain.Score{Home: 0, Away: 0}, "")

	store.failOn = "UpsertStatistics"

	err := svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: 2, Away: 1})
	require.Error(t, err)

	// the bettable write and both bet rescores happened before the failure,
	// yet none of it is visible
	assert.False(t, store.bettables[matchID].HasResult())
	for _, b := range store.bets {
		assert.Nil(t, b.ResultBetType)
		assert.Nil(t, b.Points)
	}
	assert.Empty(t, store.stats)
	assert.Equal(t, 0, store.commits)
	assert.Equal(t, 1, store.rollbacks)
	assert.Equal(t, 0, stub.invalidations())
}

func TestCascade_CommitFailureReported(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.UnsetScore())
	addBet(store, alice, matchID, domain.Score{Home: 1, Away: 0}, "")

	store.failOn = "Commit"

	err := svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: 1, Away: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit cascade")
}

func TestRecompute_BeforeTournamentStartsStaysZero(t *testing.T) {
	store := newFakeStore()
	store.started = false
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.UnsetScore())

	err := svc.PlaceBet(context.Background(), &domain.Bet{
		UserID:     alice,
		BettableID: matchID,
		Goals:      domain.Score{Home: 3, Away: 1},
	})
	require.NoError(t, err)

	stats := store.stats[alice]
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, 0, stats.BetCount)
	assert.Equal(t, 0, stats.Points)
}

func TestConcurrentResultWrites_SerializeAndStayConsistent(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store, "alice")
	matchID := addMatch(store, domain.UnsetScore())
	betID := addBet(store, alice, matchID, domain.Score{Home: 1, Away: 0}, "")

	leaktest.CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(home int) {
				defer wg.Done()
				err := svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: home, Away: 0})
				assert.NoError(t, err)
			}(i % 4)
		}
		wg.Wait()
	})

	// whichever write landed last, the mirror, the bet score, and the
	// statistics all describe the same result
	target := store.bettables[matchID]
	require.True(t, target.HasResult())
	require.NotNil(t, target.Result)
	assert.Equal(t, fmt.Sprintf("%d:0", target.Match.Goals.Home), *target.Result)

	bet := store.bets[betID]
	require.True(t, bet.IsScored())
	wantCategory := scoring.ClassifyMatch(target.Match.Goals, domain.Score{Home: 1, Away: 0})
	assert.Equal(t, wantCategory, *bet.ResultBetType)

	stats := store.stats[alice]
	assert.Equal(t, *bet.Points, stats.Points)
	assert.Equal(t, 20, store.commits)
}

func TestConcurrentResultAndBetCascades_DoNotDeadlock(t *testing.T) {
	store := newRowLockStore()
	svc, _ := newTestEngine(store)

	alice := addUser(store.fakeStore, "alice")
	bob := addUser(store.fakeStore, "bob")
	matchID := addMatch(store.fakeStore, domain.UnsetScore())
	addBet(store.fakeStore, alice, matchID, domain.Score{Home: 1, Away: 0}, "")

	// A result cascade and a bet cascade race on the same bettable, with
	// the bettable row staying locked from GetBettableForUpdate until
	// commit. Any path that waits on a named lock while its transaction
	// holds that row lock hangs both goroutines permanently.
	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				err := svc.SetMatchResult(context.Background(), matchID, domain.Score{Home: i % 3, Away: 0})
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			bet := &domain.Bet{
				UserID:     bob,
				BettableID: matchID,
				Goals:      domain.Score{Home: 2, Away: 2},
			}
			err := svc.PlaceBet(context.Background(), bet)
			assert.NoError(t, err)
			for i := 0; i < 24; i++ {
				bet.Goals = domain.Score{Home: i % 3, Away: i % 2}
				err := svc.UpdateBet(context.Background(), bet)
				assert.NoError(t, err)
			}
		}()
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("result and bet cascades deadlocked against each other")
	}

	assert.Equal(t, 50, store.commits)
}
