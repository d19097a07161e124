package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/airline-reservation/internal/model"
)

// FlightRepo provides CRUD operations for the flights table.  Remaining
// capacity is only ever mutated through AdjustRemainingTx inside a
// transaction that holds the flight row lock, which keeps concurrent
// bookings from observing stale counts.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a new FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

const flightColumns = `id, airport_from, airport_to, date_from, date_to,
	duration, total_capacity, remaining_capacity, created_at`

func scanFlight(row interface{ Scan(...any) error }, f *model.Flight) error {
	return row.Scan(
		&f.ID, &f.AirportFrom, &f.AirportTo, &f.DateFrom, &f.DateTo,
		&f.Duration, &f.TotalCapacity, &f.RemainingCapacity, &f.CreatedAt,
	)
}

// Create inserts a new flight with remaining capacity equal to total
// capacity and populates the generated ID on the provided record.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	const q = `INSERT INTO flights
		(airport_from, airport_to, date_from, date_to, duration, total_capacity, remaining_capacity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		f.AirportFrom, f.AirportTo, f.DateFrom, f.DateTo, f.Duration,
		f.TotalCapacity, f.TotalCapacity)
	if err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("flight insert id: %w", err)
	}
	f.ID = uint64(id)
	f.RemainingCapacity = f.TotalCapacity
	return nil
}

// GetByID returns a flight or ErrFlightNotFound.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE id = ?`
	var f model.Flight
	if err := scanFlight(r.db.QueryRowContext(ctx, q, id), &f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("get flight: %w", err)
	}
	return &f, nil
}

// List returns one page of flights ordered by ascending ID together with
// the total flight count.  Pages beyond the last yield an empty slice,
// so listing is restartable from any page number.
func (r *FlightRepo) List(ctx context.Context, page, pageSize int) ([]model.Flight, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flights`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count flights: %w", err)
	}
	q := `SELECT ` + flightColumns + ` FROM flights ORDER BY id ASC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]model.Flight, 0, pageSize)
	for rows.Next() {
		var f model.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, 0, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

// GetForUpdateTx loads a flight with SELECT ... FOR UPDATE inside the
// given transaction.  Holding the row lock serializes all capacity and
// seat-number mutations for that flight until the transaction ends.
func (r *FlightRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Flight, error) {
	q := `SELECT ` + flightColumns + ` FROM flights WHERE id = ? FOR UPDATE`
	var f model.Flight
	if err := scanFlight(tx.QueryRowContext(ctx, q, id), &f); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("get flight for update: %w", err)
	}
	return &f, nil
}

// AdjustRemainingTx applies delta to a flight's remaining capacity.  The
// UPDATE is guarded so the stored value can never leave the range
// [0, total_capacity]; a violating adjustment affects zero rows and
// returns ErrCapacityRange.
func (r *FlightRepo) AdjustRemainingTx(ctx context.Context, tx *sql.Tx, id uint64, delta int) error {
	const q = `UPDATE flights
		SET remaining_capacity = remaining_capacity + ?
		WHERE id = ?
		  AND remaining_capacity + ? >= 0
		  AND remaining_capacity + ? <= total_capacity`
	res, err := tx.ExecContext(ctx, q, delta, id, delta, delta)
	if err != nil {
		return fmt.Errorf("adjust remaining capacity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust remaining capacity: %w", err)
	}
	if n == 0 {
		return ErrCapacityRange
	}
	return nil
}
