package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
// Participants are created together with their trip by TripRepo.
type ParticipantRepo interface {
	// ListByTripID returns a trip's participants, owner first, then by creation time and email.
	// An unknown trip yields an empty slice, not an error.
	ListByTripID(ctx context.Context, tripID uuid.UUID, filter domain.ParticipantFilter) ([]domain.Participant, error)

	// GetByID retrieves a single participant.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error)

	// Confirm sets is_confirmed on an unconfirmed participant and reports
	// whether this call performed the transition.
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

const participantColumns = `id, trip_id, name, email, is_owner, is_confirmed, created_at`

func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID, filter domain.ParticipantFilter) ([]domain.Participant, error) {
	const q = `
		SELECT ` + participantColumns + `
		FROM participants
		WHERE trip_id = @trip_id
		  AND (NOT @exclude_owner OR NOT is_owner)
		ORDER BY is_owner DESC, created_at, email`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"trip_id":       tripID,
		"exclude_owner": filter.ExcludeOwner,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}
	return participants, nil
}

func (r *pgParticipantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	const q = `SELECT ` + participantColumns + ` FROM participants WHERE id = @id`

	p, err := scanParticipant(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("repo.ParticipantRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `UPDATE participants SET is_confirmed = true WHERE id = @id AND NOT is_confirmed`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanParticipant maps a single database row into a domain.Participant.
// A NULL name becomes the empty string.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
		name   pgtype.Text
	)

	err := s.Scan(&id, &tripID, &name, &p.Email, &p.IsOwner, &p.IsConfirmed, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.Name = name.String
	return p, nil
}
