package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/repository"
)

// Service defines the interface for user operations
type Service interface {
	Register(ctx context.Context, username string) (*domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// Bets returns all bets the user has placed
	Bets(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error)
}

// service implements the Service interface
type service struct {
	userRepo repository.User
	betRepo  repository.Bet
}

// NewService creates a new user service
func NewService(userRepo repository.User, betRepo repository.Bet) Service {
	return &service{userRepo: userRepo, betRepo: betRepo}
}

// Register creates a new user with a unique username
func (s *service) Register(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || len(username) > MaxUsernameLength {
		return nil, fmt.Errorf("%s: %q", ErrMsgInvalidUsername, username)
	}

	u := &domain.User{Username: username}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateUser, err)
	}

	log.Info(LogMsgUserRegistered, "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Get retrieves a user by ID
func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return u, nil
}

// GetByUsername retrieves a user by username
func (s *service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	return u, nil
}

// List returns all users
func (s *service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListUsers, err)
	}
	return users, nil
}

// Bets returns all bets the user has placed
func (s *service) Bets(ctx context.Context, userID uuid.UUID) ([]domain.Bet, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetUser, err)
	}
	bets, err := s.betRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBets, err)
	}
	return bets, nil
}
