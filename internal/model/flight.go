package model

import "time"

// Flight represents a schedulable unit of travel with a finite seat
// capacity.  TotalCapacity is fixed at creation while RemainingCapacity
// moves with bookings and cancellations and always satisfies
// 0 <= RemainingCapacity <= TotalCapacity.
//
// Fields:
//  ID                – primary key identifier, assigned on creation.
//  AirportFrom       – IATA code or name of the departure airport.
//  AirportTo         – IATA code or name of the arrival airport.
//  DateFrom          – departure date (stored as given by the caller).
//  DateTo            – return/arrival date.
//  Duration          – flight duration in minutes.
//  TotalCapacity     – number of seats the aircraft offers.
//  RemainingCapacity – seats not currently held by an active ticket.
//  CreatedAt         – creation timestamp.
type Flight struct {
	ID                uint64    `json:"id"`           // flights.id
	AirportFrom       string    `json:"airport_from"` // flights.airport_from
	AirportTo         string    `json:"airport_to"`   // flights.airport_to
	DateFrom          string    `json:"date_from"`    // flights.date_from
	DateTo            string    `json:"date_to"`      // flights.date_to
	Duration          int       `json:"duration"`     // flights.duration (minutes)
	TotalCapacity     int       `json:"capacity"`     // flights.total_capacity
	RemainingCapacity int       `json:"remaining"`    // flights.remaining_capacity
	CreatedAt         time.Time `json:"-"`            // flights.created_at
}
