package model

import "time"

// CheckinRecord assigns a concrete seat to a ticketed passenger.  Seat
// numbers are 1-based and sequential per flight in check-in order.  A
// record is immutable once created: repeating a check-in returns the
// existing seat and never reassigns it.
type CheckinRecord struct {
	ID            uint64    `json:"-"`              // checkins.id
	FlightID      uint64    `json:"flight_id"`      // checkins.flight_id
	PassengerName string    `json:"passenger_name"` // checkins.passenger_name
	SeatNumber    int       `json:"seat_number"`    // checkins.seat_number
	CreatedAt     time.Time `json:"-"`              // checkins.created_at
}
