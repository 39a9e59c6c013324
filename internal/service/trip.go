// Package service contains the business logic for the trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo calls
// and email notifications. No SQL lives here: services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/mail"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/repo"
)

// TripService implements the trip creation and confirmation workflows.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	compose      *mail.Composer
	notifier     *Notifier
	metrics      *metrics.Metrics
	validate     *validator.Validate
	now          func() time.Time
}

// NewTripService constructs a TripService. m may be nil.
func NewTripService(
	trips repo.TripRepo,
	participants repo.ParticipantRepo,
	compose *mail.Composer,
	notifier *Notifier,
	m *metrics.Metrics,
) *TripService {
	return &TripService{
		trips:        trips,
		participants: participants,
		compose:      compose,
		notifier:     notifier,
		metrics:      m,
		validate:     newValidator(),
		now:          time.Now,
	}
}

// Create validates the request, persists the trip with its owner and
// invitees in one transaction, and emails the owner a confirmation link.
//
// Returns domain.ErrValidation for malformed input and domain.ErrInvalidDate
// for broken date rules; nothing is written in either case.
// Returns the persisted trip together with a domain.ErrDelivery error when the
// owner email could not be sent. The trip is kept.
func (s *TripService) Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error) {
	in = normalizeNewTrip(in)
	if err := s.validate.Struct(in); err != nil {
		return domain.Trip{}, validationError(err)
	}
	if err := validateDates(in, s.now()); err != nil {
		return domain.Trip{}, err
	}

	trip := domain.Trip{
		Destination: in.Destination,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}
	created, err := s.trips.CreateWithParticipants(ctx, trip, buildParticipants(in))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	s.metrics.IncTripsCreated()

	// The trip is saved: the owner email must not depend on the client
	// staying connected. The SMTP timeout still bounds the send.
	ctx = context.WithoutCancel(ctx)

	owner, ok := created.Owner()
	if !ok {
		return created, fmt.Errorf("service.TripService.Create: trip %s persisted without an owner", created.ID)
	}
	msg, err := s.compose.TripConfirmation(created, owner)
	if err != nil {
		return created, fmt.Errorf("service.TripService.Create: %w", err)
	}

	report := s.notifier.Deliver(ctx, metrics.KindTripConfirmation, []domain.Message{msg})
	if err := report.Err(); err != nil {
		return created, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Confirm moves a pending trip to confirmed and emails every invitee a
// personal confirmation link. Confirming an already confirmed trip changes
// nothing and sends nothing.
//
// Returns domain.ErrNotFound if the trip does not exist.
// Returns a domain.ErrDelivery error, alongside the result, when any invitee
// email failed; the confirmation itself is kept.
func (s *TripService) Confirm(ctx context.Context, id uuid.UUID) (domain.ConfirmResult, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.ConfirmResult{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	if trip.IsConfirmed {
		return domain.ConfirmResult{Trip: trip}, nil
	}

	changed, err := s.trips.Confirm(ctx, id)
	if err != nil {
		return domain.ConfirmResult{}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	trip.IsConfirmed = true
	if !changed {
		// A concurrent request confirmed it between our read and write;
		// that request owns the notifications.
		return domain.ConfirmResult{Trip: trip}, nil
	}
	s.metrics.IncTripsConfirmed()

	// Only this request will ever notify the invitees, so everything after
	// the write outlives a client that hangs up.
	ctx = context.WithoutCancel(ctx)

	invitees, err := s.participants.ListByTripID(ctx, id, domain.ParticipantFilter{ExcludeOwner: true})
	if err != nil {
		return domain.ConfirmResult{Trip: trip, Transitioned: true}, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	trip.Participants = invitees

	msgs := make([]domain.Message, 0, len(invitees))
	for _, p := range invitees {
		msg, err := s.compose.ParticipantInvitation(trip, p)
		if err != nil {
			return domain.ConfirmResult{Trip: trip, Transitioned: true}, fmt.Errorf("service.TripService.Confirm: %w", err)
		}
		msgs = append(msgs, msg)
	}

	result := domain.ConfirmResult{
		Trip:         trip,
		Transitioned: true,
		Delivery:     s.notifier.Deliver(ctx, metrics.KindParticipantInvitation, msgs),
	}
	if err := result.Delivery.Err(); err != nil {
		return result, fmt.Errorf("service.TripService.Confirm: %w", err)
	}
	return result, nil
}

// GetByID returns a trip without its participants; ListParticipants loads those.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// ListParticipants returns a trip's participants, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID, domain.ParticipantFilter{})
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// validateDates enforces the trip date rules, in order:
//   - StartsAt must not be before now.
//   - EndsAt must not be before StartsAt. Equal instants are allowed.
func validateDates(in domain.NewTrip, now time.Time) error {
	if in.StartsAt.Before(now) {
		return domain.ErrStartInPast
	}
	if in.EndsAt.Before(in.StartsAt) {
		return domain.ErrEndBeforeStart
	}
	return nil
}

// normalizeNewTrip trims surrounding whitespace so that blank values fail
// validation and padded emails still match.
func normalizeNewTrip(in domain.NewTrip) domain.NewTrip {
	in.Destination = strings.TrimSpace(in.Destination)
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.OwnerEmail = strings.TrimSpace(in.OwnerEmail)
	if in.EmailsToInvite == nil {
		// Absent from the request: left nil so validation reports it.
		return in
	}
	emails := make([]string, len(in.EmailsToInvite))
	for i, e := range in.EmailsToInvite {
		emails[i] = strings.TrimSpace(e)
	}
	in.EmailsToInvite = emails
	return in
}

// buildParticipants returns the owner followed by one invitee per distinct
// email. Duplicates and the owner's own address are compared case-insensitively
// and dropped, so the trip always has exactly one owner record.
func buildParticipants(in domain.NewTrip) []domain.Participant {
	seen := map[string]bool{strings.ToLower(in.OwnerEmail): true}
	out := []domain.Participant{domain.NewOwner(in.OwnerName, in.OwnerEmail)}
	for _, email := range in.EmailsToInvite {
		key := strings.ToLower(email)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.NewInvitee(email))
	}
	return out
}
