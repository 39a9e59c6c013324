package handler

import (
	"context"
	"errors"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler/gen"
)

// ListParticipants handles GET /trips/{tripId}/participants.
func (s *Server) ListParticipants(ctx context.Context, req gen.ListParticipantsRequestObject) (gen.ListParticipantsResponseObject, error) {
	participants, err := s.trips.ListParticipants(ctx, req.TripId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ListParticipants404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	data := make([]gen.Participant, len(participants))
	for i, p := range participants {
		data[i] = participantToResponse(p)
	}
	return gen.ListParticipants200JSONResponse{Participants: data}, nil
}

// ConfirmParticipant handles GET /participants/{participantId}/confirm, the
// link emailed to each invitee. Redirects to the page of the participant's trip.
func (s *Server) ConfirmParticipant(ctx context.Context, req gen.ConfirmParticipantRequestObject) (gen.ConfirmParticipantResponseObject, error) {
	p, err := s.participants.Confirm(ctx, req.ParticipantId)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.ConfirmParticipant404JSONResponse(notFoundBody("participant not found")), nil
		}
		return nil, err
	}

	return gen.ConfirmParticipant302Response{
		Headers: gen.ConfirmParticipant302ResponseHeaders{Location: s.links.TripPage(p.TripID)},
	}, nil
}

// participantToResponse converts a domain.Participant into gen.Participant.
// Invitees have no name until they give one, so name is null rather than "".
func participantToResponse(p domain.Participant) gen.Participant {
	resp := gen.Participant{
		Id:          p.ID,
		Email:       p.Email,
		IsOwner:     p.IsOwner,
		IsConfirmed: p.IsConfirmed,
	}
	if p.Name != "" {
		name := p.Name
		resp.Name = &name
	}
	return resp
}
