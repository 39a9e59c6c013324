// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource files (health.go, trip.go, participant.go)
// but all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
	"github.com/pkordes/trip-planner/internal/links"
)

// TripServicer defines the trip operations the handlers depend on.
// Defined here, in the consumer package, so handler tests can inject a mock
// without touching the database, the mail relay or the service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.NewTrip) (domain.Trip, error)
	Confirm(ctx context.Context, id uuid.UUID) (domain.ConfirmResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// ParticipantServicer defines the participant operations the handlers depend on.
type ParticipantServicer interface {
	Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
type Server struct {
	trips        TripServicer
	participants ParticipantServicer
	links        links.Builder
}

// NewServer constructs the Server with all its dependencies.
// lb builds the front-end URLs the confirmation endpoints redirect to.
func NewServer(trips TripServicer, participants ParticipantServicer, lb links.Builder) *Server {
	return &Server{trips: trips, participants: participants, links: lb}
}

// NewHTTPHandler wires srv into the generated chi router. Request decoding
// failures and unexpected handler errors are answered with the same JSON
// error body the handlers use; the latter are also logged to log.
func NewHTTPHandler(srv *Server, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	strict := gen.NewStrictHandlerWithOptions(srv, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler,
		ResponseErrorHandlerFunc: responseErrorHandler(log),
	})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		ErrorHandlerFunc: requestErrorHandler,
	})
}
