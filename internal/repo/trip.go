// Package repo contains all database access logic for the trip planner.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trip-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so repo-level transactions nest inside the test transaction.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// CreateWithParticipants inserts a trip and all of its participants in one
	// transaction and returns the persisted trip with Participants populated in
	// the order given. Either everything is written or nothing is.
	CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key, without participants.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// Confirm sets is_confirmed on a pending trip. It reports whether this call
	// performed the transition; false means the trip was already confirmed or
	// does not exist.
	Confirm(ctx context.Context, id uuid.UUID) (bool, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, destination, starts_at, ends_at, is_confirmed, created_at, updated_at`

// CreateWithParticipants inserts the trip row, then queues one participant
// insert per entry on a single batch inside the same transaction.
func (r *pgTripRepo) CreateWithParticipants(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error) {
	var result domain.Trip

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		const insertTrip = `
			INSERT INTO trips (destination, starts_at, ends_at)
			VALUES (@destination, @starts_at, @ends_at)
			RETURNING ` + tripColumns

		created, err := scanTrip(tx.QueryRow(ctx, insertTrip, pgx.NamedArgs{
			"destination": trip.Destination,
			"starts_at":   trip.StartsAt,
			"ends_at":     trip.EndsAt,
		}))
		if err != nil {
			return fmt.Errorf("insert trip: %w", err)
		}

		const insertParticipant = `
			INSERT INTO participants (trip_id, name, email, is_owner, is_confirmed)
			VALUES (@trip_id, @name, @email, @is_owner, @is_confirmed)
			RETURNING ` + participantColumns

		batch := &pgx.Batch{}
		for _, p := range participants {
			batch.Queue(insertParticipant, pgx.NamedArgs{
				"trip_id":      created.ID,
				"name":         nullableText(p.Name),
				"email":        p.Email,
				"is_owner":     p.IsOwner,
				"is_confirmed": p.IsConfirmed,
			})
		}

		br := tx.SendBatch(ctx, batch)
		created.Participants = make([]domain.Participant, 0, len(participants))
		for range participants {
			p, err := scanParticipant(br.QueryRow())
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("insert participant: %w", err)
			}
			created.Participants = append(created.Participants, p)
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("insert participants: %w", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.CreateWithParticipants: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// Confirm flips is_confirmed only while it is still false, so two concurrent
// confirmations cannot both observe a transition.
func (r *pgTripRepo) Confirm(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `
		UPDATE trips
		SET is_confirmed = true,
		    updated_at   = now()
		WHERE id = @id AND NOT is_confirmed`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, fmt.Errorf("repo.TripRepo.Confirm: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for QueryRow, Query and batch results.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

// nullableText stores an empty string as NULL.
func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
