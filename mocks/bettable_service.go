package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// MockBettableService is a mock implementation of bettable.Service
type MockBettableService struct {
	mock.Mock
}

func (m *MockBettableService) Create(ctx context.Context, bettable *domain.Bettable) error {
	args := m.Called(ctx, bettable)
	return args.Error(0)
}

func (m *MockBettableService) Get(ctx context.Context, id uuid.UUID) (*domain.Bettable, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bettable), args.Error(1)
}

func (m *MockBettableService) List(ctx context.Context) ([]domain.Bettable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bettable), args.Error(1)
}

func (m *MockBettableService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBettableService) Bets(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error) {
	args := m.Called(ctx, bettableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bet), args.Error(1)
}

// NewMockBettableService creates a new mock with expectations asserted on cleanup
func NewMockBettableService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBettableService {
	m := &MockBettableService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
