package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ParticipantService implements per-participant confirmation.
type ParticipantService struct {
	participants repo.ParticipantRepo
	metrics      *metrics.Metrics
}

// NewParticipantService constructs a ParticipantService. m may be nil.
func NewParticipantService(participants repo.ParticipantRepo, m *metrics.Metrics) *ParticipantService {
	return &ParticipantService{participants: participants, metrics: m}
}

// Confirm marks a participant as attending. Confirming twice is a no-op.
// Returns domain.ErrNotFound if the participant does not exist.
func (s *ParticipantService) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if p.IsConfirmed {
		return p, nil
	}

	changed, err := s.participants.Confirm(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.ParticipantService.Confirm: %w", err)
	}
	if changed {
		s.metrics.IncParticipantsConfirmed()
	}
	p.IsConfirmed = true
	return p, nil
}
