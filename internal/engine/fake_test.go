package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/repository"
	"github.com/osse101/Tippspiel_Go/internal/statistics"
)

// fakeStore is an in-memory repository.Propagation with transactional
// semantics: every cascade works on deep copies and only Commit writes
// them back, so aborted cascades leave the store untouched.
type fakeStore struct {
	mu        sync.Mutex
	bettables map[uuid.UUID]*domain.Bettable
	bets      map[uuid.UUID]*domain.Bet
	users     map[uuid.UUID]string
	stats     map[uuid.UUID]domain.UserStatistics
	started   bool

	// failOn makes the named cascade method return an error
	failOn string

	commits   int
	rollbacks int
}

var errFakeFailure = errors.New("injected failure")

func newFakeStore() *fakeStore {
	return &fakeStore{
		bettables: make(map[uuid.UUID]*domain.Bettable),
		bets:      make(map[uuid.UUID]*domain.Bet),
		users:     make(map[uuid.UUID]string),
		stats:     make(map[uuid.UUID]domain.UserStatistics),
		started:   true,
	}
}

func (s *fakeStore) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bets[betID]
	if !ok {
		return nil, domain.ErrBetNotFound
	}
	return copyBet(b), nil
}

func (s *fakeStore) GetBetUsers(ctx context.Context, bettableID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var userIDs []uuid.UUID
	for _, b := range s.bets {
		if b.BettableID == bettableID && !seen[b.UserID] {
			seen[b.UserID] = true
			userIDs = append(userIDs, b.UserID)
		}
	}
	return userIDs, nil
}

func (s *fakeStore) BeginCascade(ctx context.Context) (repository.Cascade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &fakeCascade{
		store:     s,
		bettables: make(map[uuid.UUID]*domain.Bettable, len(s.bettables)),
		bets:      make(map[uuid.UUID]*domain.Bet, len(s.bets)),
		stats:     make(map[uuid.UUID]domain.UserStatistics, len(s.stats)),
		started:   s.started,
	}
	for id, b := range s.bettables {
		tx.bettables[id] = copyBettable(b)
	}
	for id, b := range s.bets {
		tx.bets[id] = copyBet(b)
	}
	for id, st := range s.stats {
		tx.stats[id] = st
	}
	return tx, nil
}

type fakeCascade struct {
	store     *fakeStore
	bettables map[uuid.UUID]*domain.Bettable
	bets      map[uuid.UUID]*domain.Bet
	stats     map[uuid.UUID]domain.UserStatistics
	started   bool
}

func (c *fakeCascade) fail(method string) error {
	if c.store.failOn == method {
		return errFakeFailure
	}
	return nil
}

func (c *fakeCascade) GetBettableForUpdate(ctx context.Context, id uuid.UUID) (*domain.Bettable, error) {
	if err := c.fail("GetBettableForUpdate"); err != nil {
		return nil, err
	}
	b, ok := c.bettables[id]
	if !ok {
		return nil, domain.ErrBettableNotFound
	}
	return b, nil
}

func (c *fakeCascade) UpdateBettableResult(ctx context.Context, bettable *domain.Bettable) error {
	if err := c.fail("UpdateBettableResult"); err != nil {
		return err
	}
	if _, ok := c.bettables[bettable.ID]; !ok {
		return domain.ErrBettableNotFound
	}
	c.bettables[bettable.ID] = copyBettable(bettable)
	return nil
}

func (c *fakeCascade) GetBetsByBettable(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error) {
	if err := c.fail("GetBetsByBettable"); err != nil {
		return nil, err
	}
	var bets []domain.Bet
	for _, b := range c.bets {
		if b.BettableID == bettableID {
			bets = append(bets, *copyBet(b))
		}
	}
	sort.Slice(bets, func(i, j int) bool { return bets[i].ID.String() < bets[j].ID.String() })
	return bets, nil
}

func (c *fakeCascade) UpdateBetScore(ctx context.Context, betID uuid.UUID, category *domain.ResultBetType, points *int) error {
	if err := c.fail("UpdateBetScore"); err != nil {
		return err
	}
	b, ok := c.bets[betID]
	if !ok {
		return domain.ErrBetNotFound
	}
	b.ResultBetType = category
	b.Points = points
	return nil
}

func (c *fakeCascade) CreateBet(ctx context.Context, bet *domain.Bet) error {
	if err := c.fail("CreateBet"); err != nil {
		return err
	}
	for _, existing := range c.bets {
		if existing.UserID == bet.UserID && existing.BettableID == bet.BettableID {
			return domain.ErrDuplicateBet
		}
	}
	if bet.ID == uuid.Nil {
		bet.ID = uuid.New()
	}
	bet.CreatedAt = time.Now()
	bet.UpdatedAt = bet.CreatedAt
	c.bets[bet.ID] = copyBet(bet)
	return nil
}

func (c *fakeCascade) UpdateBetPrediction(ctx context.Context, bet *domain.Bet) error {
	if err := c.fail("UpdateBetPrediction"); err != nil {
		return err
	}
	existing, ok := c.bets[bet.ID]
	if !ok {
		return domain.ErrBetNotFound
	}
	existing.Goals = bet.Goals
	existing.Answer = bet.Answer
	existing.UpdatedAt = time.Now()
	return nil
}

func (c *fakeCascade) DeleteBet(ctx context.Context, betID uuid.UUID) error {
	if err := c.fail("DeleteBet"); err != nil {
		return err
	}
	if _, ok := c.bets[betID]; !ok {
		return domain.ErrBetNotFound
	}
	delete(c.bets, betID)
	return nil
}

func (c *fakeCascade) GetBet(ctx context.Context, betID uuid.UUID) (*domain.Bet, error) {
	if err := c.fail("GetBet"); err != nil {
		return nil, err
	}
	b, ok := c.bets[betID]
	if !ok {
		return nil, domain.ErrBetNotFound
	}
	return copyBet(b), nil
}

func (c *fakeCascade) GetScoredBetsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error) {
	if err := c.fail("GetScoredBetsByUser"); err != nil {
		return nil, err
	}
	var bets []domain.Bet
	for _, b := range c.bets {
		if b.UserID == userID && b.IsScored() {
			bets = append(bets, *copyBet(b))
		}
	}
	return bets, nil
}

func (c *fakeCascade) CountBetsWithPrediction(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := c.fail("CountBetsWithPrediction"); err != nil {
		return 0, err
	}
	count := 0
	for _, b := range c.bets {
		if b.UserID != userID {
			continue
		}
		target, ok := c.bettables[b.BettableID]
		if ok && b.HasPrediction(target.Kind) {
			count++
		}
	}
	return count, nil
}

func (c *fakeCascade) TournamentStarted(ctx context.Context, now time.Time) (bool, error) {
	return c.started, nil
}

func (c *fakeCascade) GetUsername(ctx context.Context, userID uuid.UUID) (string, error) {
	username, ok := c.store.users[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return username, nil
}

func (c *fakeCascade) UpsertStatistics(ctx context.Context, stats *domain.UserStatistics) error {
	if err := c.fail("UpsertStatistics"); err != nil {
		return err
	}
	c.stats[stats.UserID] = *stats
	return nil
}

func (c *fakeCascade) Commit(ctx context.Context) error {
	if err := c.fail("Commit"); err != nil {
		return err
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.bettables = c.bettables
	c.store.bets = c.bets
	c.store.stats = c.stats
	c.store.commits++
	return nil
}

func (c *fakeCascade) Rollback(ctx context.Context) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.rollbacks++
	return nil
}

func copyBet(b *domain.Bet) *domain.Bet {
	c := *b
	if b.ResultBetType != nil {
		v := *b.ResultBetType
		c.ResultBetType = &v
	}
	if b.Points != nil {
		v := *b.Points
		c.Points = &v
	}
	return &c
}

func copyBettable(b *domain.Bettable) *domain.Bettable {
	c := *b
	if b.Result != nil {
		v := *b.Result
		c.Result = &v
	}
	if b.Match != nil {
		m := *b.Match
		c.Match = &m
	}
	if b.Extra != nil {
		e := *b.Extra
		e.Choices = append([]string(nil), b.Extra.Choices...)
		c.Extra = &e
	}
	return &c
}

// rowLockStore layers a database-style row lock over fakeStore: a
// cascade's first GetBettableForUpdate takes the lock and holds it until
// Commit or Rollback, blocking every other cascade's GetBettableForUpdate
// in the meantime. That is how FOR UPDATE behaves in postgres, and it is
// what turns a bad lock order into a visible hang in tests.
type rowLockStore struct {
	*fakeStore
	rowLock chan struct{}
}

func newRowLockStore() *rowLockStore {
	return &rowLockStore{
		fakeStore: newFakeStore(),
		rowLock:   make(chan struct{}, 1),
	}
}

func (s *rowLockStore) BeginCascade(ctx context.Context) (repository.Cascade, error) {
	inner, err := s.fakeStore.BeginCascade(ctx)
	if err != nil {
		return nil, err
	}
	return &rowLockCascade{Cascade: inner, store: s}, nil
}

type rowLockCascade struct {
	repository.Cascade
	store *rowLockStore
	held  bool
}

func (c *rowLockCascade) GetBettableForUpdate(ctx context.Context, id uuid.UUID) (*domain.Bettable, error) {
	if !c.held {
		c.store.rowLock <- struct{}{}
		c.held = true
	}
	return c.Cascade.GetBettableForUpdate(ctx, id)
}

func (c *rowLockCascade) Commit(ctx context.Context) error {
	err := c.Cascade.Commit(ctx)
	c.release()
	return err
}

func (c *rowLockCascade) Rollback(ctx context.Context) error {
	err := c.Cascade.Rollback(ctx)
	c.release()
	return err
}

func (c *rowLockCascade) release() {
	if c.held {
		<-c.store.rowLock
		c.held = false
	}
}

// invalidatorStub counts leaderboard invalidations; the other statistics
// operations are never reached from the engine.
type invalidatorStub struct {
	statistics.Service
	mu    sync.Mutex
	calls int
}

func (s *invalidatorStub) InvalidateLeaderboard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func (s *invalidatorStub) invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
