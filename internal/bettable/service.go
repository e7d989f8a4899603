package bettable

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/logger"
	"github.com/osse101/Tippspiel_Go/internal/repository"
)

// Service defines the interface for bettable management. Official results
// are not set here; they go through the propagation engine so dependent
// bets and statistics stay consistent.
type Service interface {
	Create(ctx context.Context, bettable *domain.Bettable) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Bettable, error)
	List(ctx context.Context) ([]domain.Bettable, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Bets returns all bets placed on one bettable
	Bets(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error)
}

// service implements the Service interface
type service struct {
	bettableRepo repository.Bettable
	betRepo      repository.Bet
}

// NewService creates a new bettable service
func NewService(bettableRepo repository.Bettable, betRepo repository.Bet) Service {
	return &service{bettableRepo: bettableRepo, betRepo: betRepo}
}

// Create validates and persists a new bettable. Results cannot be set at
// creation; they arrive later through the propagation engine.
func (s *service) Create(ctx context.Context, bettable *domain.Bettable) error {
	log := logger.FromContext(ctx)

	if err := validate(bettable); err != nil {
		return err
	}

	if err := s.bettableRepo.Create(ctx, bettable); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreate, err)
	}

	log.Info(LogMsgBettableCreated, "bettable_id", bettable.ID, "kind", bettable.Kind, "name", bettable.Name)
	return nil
}

// Get retrieves a bettable by ID
func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Bettable, error) {
	b, err := s.bettableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGet, err)
	}
	return b, nil
}

// List returns all bettables ordered by deadline
func (s *service) List(ctx context.Context) ([]domain.Bettable, error) {
	bettables, err := s.bettableRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToList, err)
	}
	return bettables, nil
}

// Delete removes a bettable and its bets
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContext(ctx)

	if err := s.bettableRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDelete, err)
	}

	log.Info(LogMsgBettableDeleted, "bettable_id", id)
	return nil
}

// Bets returns all bets placed on one bettable
func (s *service) Bets(ctx context.Context, bettableID uuid.UUID) ([]domain.Bet, error) {
	if _, err := s.bettableRepo.GetByID(ctx, bettableID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGet, err)
	}
	bets, err := s.betRepo.GetByBettable(ctx, bettableID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetBets, err)
	}
	return bets, nil
}

func validate(b *domain.Bettable) error {
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("%s: name is required", ErrMsgInvalidBettable)
	}
	if b.Deadline.IsZero() {
		return fmt.Errorf("%s: deadline is required", ErrMsgInvalidBettable)
	}

	switch b.Kind {
	case domain.KindMatch:
		if b.Match == nil || b.Extra != nil {
			return domain.ErrInvalidKind
		}
		if b.Match.HomeTeam == "" || b.Match.AwayTeam == "" {
			return fmt.Errorf("%s: both teams are required", ErrMsgInvalidBettable)
		}
		// fresh matches start without a result
		b.Match.Goals = domain.UnsetScore()
	case domain.KindExtra:
		if b.Extra == nil || b.Match != nil {
			return domain.ErrInvalidKind
		}
		if len(b.Extra.Choices) == 0 {
			return fmt.Errorf("%s: at least one choice is required", ErrMsgInvalidBettable)
		}
		if b.Extra.Points < 0 {
			return fmt.Errorf("%s: points must not be negative", ErrMsgInvalidBettable)
		}
		b.Extra.Outcome = ""
	default:
		return domain.ErrInvalidKind
	}

	b.Result = nil
	return nil
}
