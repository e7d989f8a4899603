package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// MockStatisticsService is a mock implementation of statistics.Service
type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) Recompute(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStatistics), args.Error(1)
}

func (m *MockStatisticsService) GetUserStatistics(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStatistics), args.Error(1)
}

func (m *MockStatisticsService) GetLeaderboard(ctx context.Context, limit int) ([]domain.UserStatistics, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserStatistics), args.Error(1)
}

func (m *MockStatisticsService) InvalidateLeaderboard() {
	m.Called()
}

// NewMockStatisticsService creates a new mock with expectations asserted on cleanup
func NewMockStatisticsService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStatisticsService {
	m := &MockStatisticsService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
