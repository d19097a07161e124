// Package service implements the reservation coordinator: the state
// machine that keeps flight capacity, ticket issuance and seat
// assignment consistent under concurrent access.
//
// Per (flight, passenger) pair the lifecycle is
//
//	NoTicket -> Ticketed -> CheckedIn
//
// with Ticketed -> NoTicket via Cancel, and CheckedIn absorbing: no
// command removes a check-in record.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/airline-reservation/internal/model"
	"github.com/iliyamo/airline-reservation/internal/repository"
)

// PageSize is the fixed page size for flight and passenger listings.
const PageSize = 10

// txMaxAttempts bounds the internal retry loop for commands that lose a
// concurrent-update collision (InnoDB deadlock or lock wait timeout).
const txMaxAttempts = 3

// FlightStore is the flight catalog as the coordinator sees it.
type FlightStore interface {
	Create(ctx context.Context, f *model.Flight) error
	GetByID(ctx context.Context, id uint64) (*model.Flight, error)
	List(ctx context.Context, page, pageSize int) ([]model.Flight, int, error)
	GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Flight, error)
	AdjustRemainingTx(ctx context.Context, tx *sql.Tx, id uint64, delta int) error
}

// TicketStore is the ticket ledger as the coordinator sees it.
type TicketStore interface {
	CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error
	FindByFlightAndPassengerTx(ctx context.Context, tx *sql.Tx, flightID uint64, passengerName string) (*model.Ticket, error)
	DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error
}

// CheckinStore is the check-in roster as the coordinator sees it.
type CheckinStore interface {
	GetByFlightAndPassengerTx(ctx context.Context, tx *sql.Tx, flightID uint64, passengerName string) (*model.CheckinRecord, error)
	CountByFlightTx(ctx context.Context, tx *sql.Tx, flightID uint64) (int, error)
	CreateTx(ctx context.Context, tx *sql.Tx, rec *model.CheckinRecord) error
	ListByFlight(ctx context.Context, flightID uint64, page, pageSize int) ([]model.CheckinRecord, int, error)
}

// AddFlightCommand is the validated form of an administrative add-flight
// request.  The transport layer checks field presence and produces this
// typed command; the coordinator re-checks semantic constraints.
type AddFlightCommand struct {
	DateFrom    string
	DateTo      string
	AirportFrom string
	AirportTo   string
	Duration    int
	Capacity    int
}

// FlightPage is one page of the flight listing plus its metadata.
type FlightPage struct {
	Page         int
	TotalPages   int
	TotalFlights int
	Flights      []model.Flight
}

// PassengerSeat is one roster entry: a checked-in passenger and the
// seat assigned to them.
type PassengerSeat struct {
	PassengerName string `json:"passenger_name"`
	SeatNumber    int    `json:"seat_number"`
}

// PassengerPage is one page of a flight's check-in roster.
type PassengerPage struct {
	FlightID        uint64
	Page            int
	TotalPages      int
	TotalPassengers int
	Passengers      []PassengerSeat
}

// CheckinResult reports the outcome of a check-in command.  The seat
// number is identical in shape whether the record was just created or
// already existed; AlreadyCheckedIn only refines the message.
type CheckinResult struct {
	SeatNumber       int
	AlreadyCheckedIn bool
}

// ReservationService is the boundary contract the transport layer
// programs against.  All commands arrive pre-parsed; all outcomes are
// structured errors or results, never status codes.
type ReservationService interface {
	AddFlight(ctx context.Context, cmd AddFlightCommand) (*model.Flight, error)
	GetFlight(ctx context.Context, id uint64) (*model.Flight, error)
	ListFlights(ctx context.Context, page int) (*FlightPage, error)
	Book(ctx context.Context, flightID uint64, passengerName string) (*model.Ticket, error)
	Cancel(ctx context.Context, flightID uint64, passengerName string) error
	CheckIn(ctx context.Context, flightID uint64, passengerName string) (*CheckinResult, error)
	ListPassengers(ctx context.Context, flightID uint64, page int) (*PassengerPage, error)
}

// Coordinator implements ReservationService over an injected database
// handle and the three stores.  Capacity- and seat-mutating commands
// run inside a single transaction that locks the flight row (SELECT ...
// FOR UPDATE); a per-flight mutex additionally serializes commands
// within the process so in-flight transactions on the same flight never
// pile up on the row lock.  Commands on different flights proceed in
// parallel.
type Coordinator struct {
	db       *sql.DB
	flights  FlightStore
	tickets  TicketStore
	checkins CheckinStore
	events   EventPublisher

	flightMu sync.Map // flight ID -> *sync.Mutex
}

// NewCoordinator constructs a Coordinator.  All dependencies must be
// non-nil; pass NopPublisher when eventing is disabled.
func NewCoordinator(db *sql.DB, flights FlightStore, tickets TicketStore, checkins CheckinStore, events EventPublisher) *Coordinator {
	if db == nil || flights == nil || tickets == nil || checkins == nil {
		panic("nil dependency passed to NewCoordinator")
	}
	if events == nil {
		events = NopPublisher{}
	}
	return &Coordinator{
		db:       db,
		flights:  flights,
		tickets:  tickets,
		checkins: checkins,
		events:   events,
	}
}

// AddFlight validates the command and creates a flight whose remaining
// capacity equals its total capacity.
func (c *Coordinator) AddFlight(ctx context.Context, cmd AddFlightCommand) (*model.Flight, error) {
	required := []struct{ field, value string }{
		{"date_from", cmd.DateFrom},
		{"date_to", cmd.DateTo},
		{"airport_from", cmd.AirportFrom},
		{"airport_to", cmd.AirportTo},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, &ValidationError{Field: r.field, Reason: "field is required"}
		}
	}
	if cmd.Duration <= 0 {
		return nil, &ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if cmd.Capacity < 0 {
		return nil, &ValidationError{Field: "capacity", Reason: "must not be negative"}
	}
	f := &model.Flight{
		AirportFrom:   cmd.AirportFrom,
		AirportTo:     cmd.AirportTo,
		DateFrom:      cmd.DateFrom,
		DateTo:        cmd.DateTo,
		Duration:      cmd.Duration,
		TotalCapacity: cmd.Capacity,
	}
	if err := c.flights.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFlight returns a flight or repository.ErrFlightNotFound.
func (c *Coordinator) GetFlight(ctx context.Context, id uint64) (*model.Flight, error) {
	if id == 0 {
		return nil, &ValidationError{Field: "flight_id", Reason: "must be a positive integer"}
	}
	return c.flights.GetByID(ctx, id)
}

// ListFlights returns one fixed-size page of flights ordered by ID.
// Page numbers below one are treated as the first page; pages past the
// end yield an empty list with intact metadata.
func (c *Coordinator) ListFlights(ctx context.Context, page int) (*FlightPage, error) {
	if page < 1 {
		page = 1
	}
	flights, total, err := c.flights.List(ctx, page, PageSize)
	if err != nil {
		return nil, err
	}
	return &FlightPage{
		Page:         page,
		TotalPages:   totalPages(total),
		TotalFlights: total,
		Flights:      flights,
	}, nil
}

// Book issues a ticket on the flight.  Capacity decrement and ticket
// creation commit together or not at all; a sold-out flight declines
// without mutating anything.
func (c *Coordinator) Book(ctx context.Context, flightID uint64, passengerName string) (*model.Ticket, error) {
	if err := validateBookingInput(flightID, passengerName); err != nil {
		return nil, err
	}
	var ticket *model.Ticket
	err := c.withFlightTx(ctx, flightID, func(tx *sql.Tx) error {
		f, err := c.flights.GetForUpdateTx(ctx, tx, flightID)
		if err != nil {
			return err
		}
		if f.RemainingCapacity <= 0 {
			return ErrSoldOut
		}
		if err := c.flights.AdjustRemainingTx(ctx, tx, flightID, -1); err != nil {
			if errors.Is(err, repository.ErrCapacityRange) {
				return fmt.Errorf("%w: capacity underflow on flight %d", ErrInvariantViolation, flightID)
			}
			return err
		}
		t := &model.Ticket{FlightID: flightID, PassengerName: passengerName}
		if err := c.tickets.CreateTx(ctx, tx, t); err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.events.TicketIssued(ctx, ticket)
	return ticket, nil
}

// Cancel revokes the passenger's ticket on the flight and returns the
// seat to the pool, atomically.  When duplicates exist the ticket with
// the lowest identifier is revoked.  An existing check-in record is
// deliberately left in place (observed source behavior); the mismatch
// is logged so it is flagged rather than silently altered.
func (c *Coordinator) Cancel(ctx context.Context, flightID uint64, passengerName string) error {
	if err := validateBookingInput(flightID, passengerName); err != nil {
		return err
	}
	var (
		cancelled    *model.Ticket
		orphanedSeat int
	)
	err := c.withFlightTx(ctx, flightID, func(tx *sql.Tx) error {
		cancelled, orphanedSeat = nil, 0
		if _, err := c.flights.GetForUpdateTx(ctx, tx, flightID); err != nil {
			return err
		}
		t, err := c.tickets.FindByFlightAndPassengerTx(ctx, tx, flightID, passengerName)
		if err != nil {
			return err
		}
		if err := c.tickets.DeleteTx(ctx, tx, t.ID); err != nil {
			return err
		}
		if err := c.flights.AdjustRemainingTx(ctx, tx, flightID, 1); err != nil {
			if errors.Is(err, repository.ErrCapacityRange) {
				return fmt.Errorf("%w: capacity overflow on flight %d", ErrInvariantViolation, flightID)
			}
			return err
		}
		rec, err := c.checkins.GetByFlightAndPassengerTx(ctx, tx, flightID, passengerName)
		switch {
		case err == nil:
			orphanedSeat = rec.SeatNumber
		case errors.Is(err, repository.ErrCheckinNotFound):
			// nothing checked in, the common case
		default:
			return err
		}
		cancelled = t
		return nil
	})
	if err != nil {
		return err
	}
	c.events.TicketCancelled(ctx, cancelled)
	if orphanedSeat > 0 {
		log.Printf("cancel: flight %d passenger %q keeps seat %d without a ticket",
			flightID, passengerName, orphanedSeat)
	}
	return nil
}

// CheckIn assigns the passenger the next seat on the flight, or returns
// the seat assigned earlier.  A valid ticket for the exact
// (flight, passenger) pair is required.
func (c *Coordinator) CheckIn(ctx context.Context, flightID uint64, passengerName string) (*CheckinResult, error) {
	if err := validateBookingInput(flightID, passengerName); err != nil {
		return nil, err
	}
	var (
		result  *CheckinResult
		created *model.CheckinRecord
	)
	err := c.withFlightTx(ctx, flightID, func(tx *sql.Tx) error {
		result, created = nil, nil
		if _, err := c.flights.GetForUpdateTx(ctx, tx, flightID); err != nil {
			return err
		}
		if _, err := c.tickets.FindByFlightAndPassengerTx(ctx, tx, flightID, passengerName); err != nil {
			if errors.Is(err, repository.ErrTicketNotFound) {
				return ErrNoValidTicket
			}
			return err
		}
		existing, err := c.checkins.GetByFlightAndPassengerTx(ctx, tx, flightID, passengerName)
		if err == nil {
			result = &CheckinResult{SeatNumber: existing.SeatNumber, AlreadyCheckedIn: true}
			return nil
		}
		if !errors.Is(err, repository.ErrCheckinNotFound) {
			return err
		}
		n, err := c.checkins.CountByFlightTx(ctx, tx, flightID)
		if err != nil {
			return err
		}
		rec := &model.CheckinRecord{
			FlightID:      flightID,
			PassengerName: passengerName,
			SeatNumber:    n + 1,
		}
		if err := c.checkins.CreateTx(ctx, tx, rec); err != nil {
			return err
		}
		result = &CheckinResult{SeatNumber: rec.SeatNumber}
		created = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	if created != nil {
		c.events.PassengerCheckedIn(ctx, created)
	}
	return result, nil
}

// ListPassengers returns one page of the flight's check-in roster
// ordered by seat number.
func (c *Coordinator) ListPassengers(ctx context.Context, flightID uint64, page int) (*PassengerPage, error) {
	if flightID == 0 {
		return nil, &ValidationError{Field: "flight_id", Reason: "must be a positive integer"}
	}
	if page < 1 {
		page = 1
	}
	if _, err := c.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	records, total, err := c.checkins.ListByFlight(ctx, flightID, page, PageSize)
	if err != nil {
		return nil, err
	}
	passengers := make([]PassengerSeat, 0, len(records))
	for _, rec := range records {
		passengers = append(passengers, PassengerSeat{
			PassengerName: rec.PassengerName,
			SeatNumber:    rec.SeatNumber,
		})
	}
	return &PassengerPage{
		FlightID:        flightID,
		Page:            page,
		TotalPages:      totalPages(total),
		TotalPassengers: total,
		Passengers:      passengers,
	}, nil
}

// withFlightTx runs fn inside a transaction while holding the per-flight
// mutex.  Deadlocks and lock wait timeouts are retried up to
// txMaxAttempts before ErrConflict is surfaced; every other error rolls
// back and returns as-is.  Invariant violations are logged here so they
// never pass silently.
func (c *Coordinator) withFlightTx(ctx context.Context, flightID uint64, fn func(tx *sql.Tx) error) error {
	mu := c.lockFlight(flightID)
	mu.Lock()
	defer mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		tx, err := c.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		if err := fn(tx); err != nil {
			_ = tx.Rollback()
			if isRetryable(err) {
				lastErr = err
				continue
			}
			if errors.Is(err, ErrInvariantViolation) {
				log.Printf("INVARIANT VIOLATION on flight %d: %v", flightID, err)
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			if isRetryable(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %v", ErrConflict, lastErr)
}

// lockFlight returns the mutex serializing commands for one flight.
func (c *Coordinator) lockFlight(id uint64) *sync.Mutex {
	v, _ := c.flightMu.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// isRetryable reports whether err is an InnoDB deadlock (1213) or lock
// wait timeout (1205), both of which are safe to retry after rollback.
func isRetryable(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}

// validateBookingInput applies the shared input rules for book, cancel
// and check-in commands: a resolvable flight reference and a passenger
// name that is non-empty after trimming and at most 100 characters.
// The limit counts characters, not bytes, to match the VARCHAR(100)
// column backing the ticket ledger.
func validateBookingInput(flightID uint64, passengerName string) error {
	if flightID == 0 {
		return &ValidationError{Field: "flight_id", Reason: "must be a positive integer"}
	}
	if strings.TrimSpace(passengerName) == "" {
		return &ValidationError{Field: "passenger_name", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(passengerName) > 100 {
		return &ValidationError{Field: "passenger_name", Reason: "must be at most 100 characters"}
	}
	return nil
}

// totalPages derives page metadata from a record count and the fixed
// page size; an empty collection has zero pages.
func totalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}
