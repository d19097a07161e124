package service

import (
	"errors"
	"fmt"
)

// Business outcomes and failures surfaced by the reservation
// coordinator.  Handlers translate these into HTTP responses; nothing
// in this package knows about status codes.

// ErrSoldOut is returned when a booking is declined because the
// flight's remaining capacity is zero.  It is a legitimate business
// outcome, not a defect, and never leaves any state mutated.
var ErrSoldOut = errors.New("flight is sold out")

// ErrNoValidTicket is returned when a check-in is attempted for a
// passenger holding no ticket on the flight.
var ErrNoValidTicket = errors.New("no valid ticket found for passenger")

// ErrConflict is returned only after the coordinator's bounded retry
// loop fails to get a command through concurrent-update collisions.
// Callers may retry the whole command.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrInvariantViolation guards against internal bugs: capacity leaving
// its legal range or seats being misnumbered.  It is never expected to
// trigger in correct operation and is logged loudly when it does.
var ErrInvariantViolation = errors.New("reservation invariant violated")

// ValidationError reports malformed or missing input.  It is the
// caller's fault and is never retried.
type ValidationError struct {
	Field  string // offending input field
	Reason string // human-readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AsValidation returns the *ValidationError inside err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
