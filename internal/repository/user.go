package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
