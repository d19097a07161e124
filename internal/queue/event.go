// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

// Event types carried on the reservation.events queue.
const (
	EventTicketIssued       = "ticket.issued"
	EventTicketCancelled    = "ticket.cancelled"
	EventPassengerCheckedIn = "passenger.checked_in"
)

// ReservationEvent is the envelope published for every reservation
// lifecycle change. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database. Fields not applicable to an event type stay at
// their zero value.
type ReservationEvent struct {
	Type          string `json:"type"`
	FlightID      uint64 `json:"flight_id"`
	TicketNumber  string `json:"ticket_number,omitempty"`
	PassengerName string `json:"passenger_name"`
	SeatNumber    int    `json:"seat_number,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
