package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// MockBetReader is a mock implementation of handler.BetReader
type MockBetReader struct {
	mock.Mock
}

func (m *MockBetReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bet), args.Error(1)
}

// NewMockBetReader creates a new mock with expectations asserted on cleanup
func NewMockBetReader(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBetReader {
	m := &MockBetReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
