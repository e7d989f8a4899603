package schedule

import (
	"context"
	"fmt"

	"github.com/osse101/Tippspiel_Go/internal/bettable"
	"github.com/osse101/Tippspiel_Go/internal/domain"
	"github.com/osse101/Tippspiel_Go/internal/logger"
)

// Service imports tournament schedules as bettables
type Service interface {
	Import(ctx context.Context, data []byte) (*ImportResult, error)
}

// ImportResult summarizes one schedule import
type ImportResult struct {
	Tournament string `json:"tournament"`
	Matches    int    `json:"matches"`
	Extras     int    `json:"extras"`
}

type service struct {
	bettables bettable.Service
}

// NewService creates a new schedule import service
func NewService(bettables bettable.Service) Service {
	return &service{bettables: bettables}
}

// Import validates a schedule document and creates a match bettable per
// fixture and an extra bettable per question. Creation stops at the first
// failure; bettables created before that point remain.
func (s *service) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	log := logger.FromContext(ctx)

	plan, err := Parse(data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Tournament: plan.Tournament}

	for i, m := range plan.Matches {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("%s vs %s", m.HomeTeam, m.AwayTeam)
		}
		deadline := m.Kickoff
		if m.Deadline != nil {
			deadline = *m.Deadline
		}
		b := &domain.Bettable{
			Kind:     domain.KindMatch,
			Name:     name,
			Deadline: deadline,
			Match: &domain.MatchDetails{
				HomeTeam: m.HomeTeam,
				AwayTeam: m.AwayTeam,
				Kickoff:  m.Kickoff,
				Goals:    domain.UnsetScore(),
			},
		}
		if err := s.bettables.Create(ctx, b); err != nil {
			return nil, fmt.Errorf("%s %d (%s): %w", ErrMsgFailedToImportMatch, i, name, err)
		}
		result.Matches++
	}

	for i, e := range plan.Extras {
		b := &domain.Bettable{
			Kind:     domain.KindExtra,
			Name:     e.Name,
			Deadline: e.Deadline,
			Extra: &domain.ExtraDetails{
				Points:  e.Points,
				Choices: e.Choices,
			},
		}
		if err := s.bettables.Create(ctx, b); err != nil {
			return nil, fmt.Errorf("%s %d (%s): %w", ErrMsgFailedToImportExtra, i, e.Name, err)
		}
		result.Extras++
	}

	log.Info(LogMsgScheduleImported,
		"tournament", result.Tournament,
		"matches", result.Matches,
		"extras", result.Extras)
	return result, nil
}
