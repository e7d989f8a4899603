// Package mocks holds testify mocks for the service interfaces, written
// in the mockery style so the handler and schedule tests share one set of
// expectations helpers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// MockEngineService is a mock implementation of engine.Service
type MockEngineService struct {
	mock.Mock
}

func (m *MockEngineService) SetMatchResult(ctx context.Context, bettableID uuid.UUID, goals domain.Score) error {
	args := m.Called(ctx, bettableID, goals)
	return args.Error(0)
}

func (m *MockEngineService) SetExtraResult(ctx context.Context, bettableID uuid.UUID, outcome string) error {
	args := m.Called(ctx, bettableID, outcome)
	return args.Error(0)
}

func (m *MockEngineService) PlaceBet(ctx context.Context, bet *domain.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockEngineService) UpdateBet(ctx context.Context, bet *domain.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockEngineService) RemoveBet(ctx context.Context, betID uuid.UUID) error {
	args := m.Called(ctx, betID)
	return args.Error(0)
}

// NewMockEngineService creates a new mock with expectations asserted on cleanup
func NewMockEngineService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEngineService {
	m := &MockEngineService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
