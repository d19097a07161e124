package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// CheckinRepo provides operations on the checkins table.  Seat numbers
// for a flight form the contiguous sequence 1..N in check-in order;
// numbering is based on CountByFlightTx under the flight row lock, and a
// UNIQUE(flight_id, passenger_name) key backs idempotency.
type CheckinRepo struct {
	db *sql.DB
}

// NewCheckinRepo returns a new CheckinRepo bound to the given database.
func NewCheckinRepo(db *sql.DB) *CheckinRepo { return &CheckinRepo{db: db} }

// GetByFlightAndPassengerTx returns the existing check-in record for the
// pair within the given transaction, or ErrCheckinNotFound.
func (r *CheckinRepo) GetByFlightAndPassengerTx(ctx context.Context, tx *sql.Tx, flightID uint64, passengerName string) (*model.CheckinRecord, error) {
	const q = `SELECT id, flight_id, passenger_name, seat_number, created_at
		FROM checkins WHERE flight_id = ? AND passenger_name = ? LIMIT 1`
	var rec model.CheckinRecord
	err := tx.QueryRowContext(ctx, q, flightID, passengerName).Scan(
		&rec.ID, &rec.FlightID, &rec.PassengerName, &rec.SeatNumber, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCheckinNotFound
		}
		return nil, fmt.Errorf("get check-in: %w", err)
	}
	return &rec, nil
}

// CountByFlightTx returns the number of check-in records for a flight
// within the given transaction.  The next seat number is this count
// plus one.
func (r *CheckinRepo) CountByFlightTx(ctx context.Context, tx *sql.Tx, flightID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checkins WHERE flight_id = ?`, flightID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count check-ins: %w", err)
	}
	return n, nil
}

// CreateTx inserts a new check-in record inside the given transaction
// and populates the generated ID.
func (r *CheckinRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.CheckinRecord) error {
	const q = `INSERT INTO checkins (flight_id, passenger_name, seat_number) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, rec.FlightID, rec.PassengerName, rec.SeatNumber)
	if err != nil {
		return fmt.Errorf("insert check-in: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("check-in insert id: %w", err)
	}
	rec.ID = uint64(id)
	return nil
}

// ListByFlight returns one page of check-in records for a flight ordered
// by seat number ascending, together with the total record count for
// page metadata.
func (r *CheckinRepo) ListByFlight(ctx context.Context, flightID uint64, page, pageSize int) ([]model.CheckinRecord, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM checkins WHERE flight_id = ?`, flightID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count check-ins: %w", err)
	}
	const q = `SELECT id, flight_id, passenger_name, seat_number, created_at
		FROM checkins WHERE flight_id = ?
		ORDER BY seat_number ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, flightID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	records := make([]model.CheckinRecord, 0, pageSize)
	for rows.Next() {
		var rec model.CheckinRecord
		if err := rows.Scan(&rec.ID, &rec.FlightID, &rec.PassengerName, &rec.SeatNumber, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan check-in: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
