package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// TicketRepo provides operations on the tickets table.  Ticket numbers
// are derived from the AUTO_INCREMENT primary key ("T" + zero-padded
// ordinal), which MySQL never reuses after a delete, so numbers remain
// strictly increasing across the whole system regardless of
// cancellations.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CreateTx issues a ticket inside the given transaction.  It inserts the
// row, reads back the generated ID and stores the derived ticket number
// in the same transaction, populating ID and Number on the record.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const ins = `INSERT INTO tickets (flight_id, passenger_name) VALUES (?, ?)`
	res, err := tx.ExecContext(ctx, ins, t.FlightID, t.PassengerName)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("ticket insert id: %w", err)
	}
	t.ID = uint64(id)
	t.Number = FormatTicketNumber(t.ID)
	const upd = `UPDATE tickets SET ticket_number = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, upd, t.Number, t.ID); err != nil {
		return fmt.Errorf("set ticket number: %w", err)
	}
	return nil
}

// FormatTicketNumber renders a ticket ordinal as its human-readable
// form, e.g. 1 -> "T001", 42 -> "T042", 1234 -> "T1234".
func FormatTicketNumber(ordinal uint64) string {
	return fmt.Sprintf("T%03d", ordinal)
}

// FindByFlightAndPassengerTx returns the ticket matching both fields
// within the given transaction, or ErrTicketNotFound.  Duplicate
// tickets for the same pair are not prevented at booking time; the
// lowest ticket ID wins as an explicit tie-break.
func (r *TicketRepo) FindByFlightAndPassengerTx(ctx context.Context, tx *sql.Tx, flightID uint64, passengerName string) (*model.Ticket, error) {
	const q = `SELECT id, ticket_number, flight_id, passenger_name, created_at
		FROM tickets WHERE flight_id = ? AND passenger_name = ?
		ORDER BY id ASC LIMIT 1`
	var t model.Ticket
	err := tx.QueryRowContext(ctx, q, flightID, passengerName).Scan(
		&t.ID, &t.Number, &t.FlightID, &t.PassengerName, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket: %w", err)
	}
	return &t, nil
}

// DeleteTx revokes a ticket by ID inside the given transaction.  The
// AUTO_INCREMENT counter is unaffected, so the ticket's number is never
// handed out again.
func (r *TicketRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
