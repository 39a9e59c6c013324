// Package domain contains the core data types for the trip planner.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, mail, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a planned journey with a date range and a confirmation state.
// A trip is the top-level aggregate; participants belong to a trip.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Participants is only populated by calls that load them explicitly.
	Participants []Participant `json:"participants,omitempty"`
}

// MaxInvitees caps emails_to_invite. It bounds how long ConfirmTrip spends
// sending invitations; keep it in step with the max tag on EmailsToInvite.
const MaxInvitees = 50

// NewTrip carries everything CreateTrip needs: the trip itself, its owner and
// the addresses to invite.
type NewTrip struct {
	Destination    string    `json:"destination" validate:"min=4"`
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	EndsAt         time.Time `json:"ends_at" validate:"required"`
	OwnerName      string    `json:"owner_name" validate:"required"`
	OwnerEmail     string    `json:"owner_email" validate:"required,email"`
	EmailsToInvite []string  `json:"emails_to_invite" validate:"required,max=50,dive,email"`
}

// ConfirmResult describes what a trip confirmation did.
type ConfirmResult struct {
	Trip Trip

	// Transitioned is false when the trip was already confirmed; nothing was
	// written and no email was sent.
	Transitioned bool

	// Delivery has one result per invitee notified on a transition.
	Delivery DeliveryReport
}

// Owner returns the trip's owner participant, if loaded.
func (t Trip) Owner() (Participant, bool) {
	for _, p := range t.Participants {
		if p.IsOwner {
			return p, true
		}
	}
	return Participant{}, false
}

// Invitees returns the non-owner participants among those loaded.
func (t Trip) Invitees() []Participant {
	out := make([]Participant, 0, len(t.Participants))
	for _, p := range t.Participants {
		if !p.IsOwner {
			out = append(out, p)
		}
	}
	return out
}
