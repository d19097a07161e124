package model

import "time"

// Ticket is proof of a reserved seat on a flight.  While a ticket is
// active it holds one unit of the flight's remaining capacity.  The
// human-readable Number is derived from the ticket's auto-increment ID
// ("T" + zero-padded ordinal), so numbers are strictly increasing across
// the whole system and are never reused after cancellation.
type Ticket struct {
	ID            uint64    `json:"-"`              // tickets.id
	Number        string    `json:"ticket_number"`  // tickets.ticket_number
	FlightID      uint64    `json:"flight_id"`      // tickets.flight_id
	PassengerName string    `json:"passenger_name"` // tickets.passenger_name
	CreatedAt     time.Time `json:"-"`              // tickets.created_at
}
