package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input has the wrong
// shape (e.g. destination too short, malformed email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidDate is returned when well-formed dates break a trip date rule.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrInvalidDate = errors.New("invalid date")

var (
	// ErrStartInPast means starts_at is strictly before the current time.
	ErrStartInPast = fmt.Errorf("%w: start in past", ErrInvalidDate)

	// ErrEndBeforeStart means ends_at is strictly before starts_at.
	ErrEndBeforeStart = fmt.Errorf("%w: end before start", ErrInvalidDate)
)

// ErrDelivery is returned when one or more emails could not be handed to the
// mail transport. Any state change made before the send is kept.
// Handlers should map this to HTTP 502 Bad Gateway.
var ErrDelivery = errors.New("email delivery failed")
