package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(ctx context.Context, req gen.CreateTripRequestObject) (gen.CreateTripResponseObject, error) {
	if req.Body == nil {
		return gen.CreateTrip400JSONResponse(errorBody(codeBadRequest, "request body is required")), nil
	}

	created, err := s.trips.Create(ctx, requestToNewTrip(req.Body))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return gen.CreateTrip422JSONResponse(validationBody(err)), nil
		case errors.Is(err, domain.ErrInvalidDate):
			return gen.CreateTrip422JSONResponse(invalidDateBody(err)), nil
		case errors.Is(err, domain.ErrDelivery):
			// The trip exists; only the owner email is missing.
			return gen.CreateTrip502JSONResponse(deliveryBody()), nil
		}
		return nil, err
	}

	return gen.CreateTrip201JSONResponse{TripId: created.ID}, nil
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(ctx context.Context, req gen.GetTripRequestObject) (gen.GetTripResponseObject, error) {
	trip, err := s.trips.GetByID(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetTrip404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	return gen.GetTrip200JSONResponse(tripToResponse(trip)), nil
}

// ConfirmTrip handles GET /trips/{tripId}/confirm, the link emailed to the
// owner. Both the first and any repeated confirmation redirect to the trip page.
func (s *Server) ConfirmTrip(ctx context.Context, req gen.ConfirmTripRequestObject) (gen.ConfirmTripResponseObject, error) {
	_, err := s.trips.Confirm(ctx, req.TripId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return gen.ConfirmTrip404JSONResponse(notFoundBody("trip not found")), nil
		case errors.Is(err, domain.ErrDelivery):
			// Confirmed, but at least one invitee was not notified.
			return gen.ConfirmTrip502JSONResponse(deliveryBody()), nil
		}
		return nil, err
	}

	return gen.ConfirmTrip302Response{
		Headers: gen.ConfirmTrip302ResponseHeaders{Location: s.links.TripPage(req.TripId)},
	}, nil
}

// --- mapping helpers --------------------------------------------------------

// requestToNewTrip converts a CreateTripRequest body into a domain.NewTrip.
// Shape checks are left to the service so every client gets the same messages.
func requestToNewTrip(body *gen.CreateTripRequest) domain.NewTrip {
	return domain.NewTrip{
		Destination:    body.Destination,
		StartsAt:       body.StartsAt,
		EndsAt:         body.EndsAt,
		OwnerName:      body.OwnerName,
		OwnerEmail:     body.OwnerEmail,
		EmailsToInvite: body.EmailsToInvite,
	}
}

// tripToResponse converts a domain.Trip into the generated gen.Trip type.
func tripToResponse(t domain.Trip) gen.Trip {
	return gen.Trip{
		Id:          t.ID,
		Destination: t.Destination,
		StartsAt:    t.StartsAt.UTC(),
		EndsAt:      t.EndsAt.UTC(),
		IsConfirmed: t.IsConfirmed,
	}
}
