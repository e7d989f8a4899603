package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// Statistics defines the interface for user-statistics persistence
type Statistics interface {
	// Upsert replaces the user's statistics record wholesale
	Upsert(ctx context.Context, stats *domain.UserStatistics) error
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.UserStatistics, error)

	// GetLeaderboard returns statistics ordered by points desc,
	// exact-hit count desc, username asc
	GetLeaderboard(ctx context.Context, limit int) ([]domain.UserStatistics, error)
}
