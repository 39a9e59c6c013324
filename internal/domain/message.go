package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Recipient is an email address with an optional display name.
type Recipient struct {
	Name    string
	Address string
}

// Message is a rendered HTML email ready for the transport.
// The sender identity belongs to the transport, not the message.
type Message struct {
	To      []Recipient
	Subject string
	HTML    string

	// ParticipantID links the message to the participant it notifies.
	// uuid.Nil for messages that are not about a single participant.
	ParticipantID uuid.UUID
}

// DeliveryResult is the outcome of sending one Message.
type DeliveryResult struct {
	ParticipantID uuid.UUID
	Recipient     string
	Err           error
}

// DeliveryReport collects one result per message of a fan-out, in the order
// the messages were given.
type DeliveryReport struct {
	Results []DeliveryResult
}

// Sent returns the number of messages accepted by the transport.
func (r DeliveryReport) Sent() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results whose send returned an error.
func (r DeliveryReport) Failed() []DeliveryResult {
	var out []DeliveryResult
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Err returns nil when every message was sent, otherwise an error wrapping
// ErrDelivery and every individual failure.
func (r DeliveryReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, f := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.Recipient, f.Err))
	}
	return fmt.Errorf("%w: %d of %d messages: %w", ErrDelivery, len(failed), len(r.Results), errors.Join(errs...))
}
