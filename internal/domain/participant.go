package domain

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a person associated with a trip: its owner or an invitee.
// Name is empty for invitees until they provide one.
// The owner is always confirmed from creation.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email"`
	IsOwner     bool      `json:"is_owner"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOwner builds the owner participant for a trip being created.
func NewOwner(name, email string) Participant {
	return Participant{Name: name, Email: email, IsOwner: true, IsConfirmed: true}
}

// NewInvitee builds an unconfirmed, unnamed participant for an invited email.
func NewInvitee(email string) Participant {
	return Participant{Email: email}
}

// ParticipantFilter narrows a participant listing.
type ParticipantFilter struct {
	// ExcludeOwner drops the owner from the result.
	ExcludeOwner bool
}
