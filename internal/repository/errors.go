// Package repository implements MySQL-backed persistence for flights,
// tickets, check-in records and auth data.  Sentinel errors defined here
// let the service and handler layers distinguish failure cases without
// inspecting driver errors.
package repository

import "errors"

// ErrFlightNotFound is returned when a flight ID does not resolve.
var ErrFlightNotFound = errors.New("flight not found")

// ErrTicketNotFound is returned when no ticket matches a
// (flight, passenger) pair or ticket ID.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrCheckinNotFound is returned when a passenger has no check-in
// record for a flight.
var ErrCheckinNotFound = errors.New("check-in record not found")

// ErrCapacityRange is returned when a capacity adjustment would push
// remaining capacity below zero or above the flight's total.  The
// coordinator treats it as an invariant guard: it should never fire in
// correct operation because remaining capacity is checked under the
// same row lock.
var ErrCapacityRange = errors.New("remaining capacity out of range")

// ErrEmailExists is returned when registering a user with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrRefreshTokenInvalid is returned when a refresh token hash does not
// resolve to a usable session: unknown, revoked or expired.  The three
// cases are deliberately indistinguishable to the caller.
var ErrRefreshTokenInvalid = errors.New("refresh token invalid")
