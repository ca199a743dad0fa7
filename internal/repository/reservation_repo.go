package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
)

type ReservationRepository interface {
	// Create inserts the reservation unless a non-canceled reservation on the
	// same lot overlaps [StartTime, EndTime). Returns ErrConflict when one
	// does. Check and insert run in one serializable transaction, with the
	// schema's exclusion constraint as backstop under concurrency.
	Create(res *db.Reservation) error
	GetByID(id int) (*db.Reservation, error)
	ListByUser(userID int, filter entities.ListReservationsFilter) ([]entities.ReservationListItem, error)
	UpdateStatus(id int, status db.ReservationStatus) (*db.Reservation, error)
	ListPendingCash() ([]db.Reservation, error)
	// BlockedParkingIDs returns the distinct lot ids holding at least one
	// non-canceled reservation overlapping [start, end).
	BlockedParkingIDs(start, end time.Time) ([]int, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(database *sql.DB) ReservationRepository {
	return &reservationRepository{db: database}
}

const reservationColumns = `id, parking_id, user_id, start_time, end_time, status, payment_method, created_at, updated_at`

// Constraint name from schema.sql; a violation means a concurrent writer won
// the race for the same window.
const noOverlapConstraint = "reservations_no_overlap"

func (r *reservationRepository) Create(res *db.Reservation) error {
	ctx := context.Background()
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Half-open overlap test: [a,b) and [c,d) intersect iff a < d AND c < b.
	// Touching endpoints do not count, so back-to-back bookings pass.
	var conflict bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE parking_id = $1
			  AND status <> 'CANCELED'
			  AND start_time < $3
			  AND end_time > $2
		)`, res.ParkingID, res.StartTime, res.EndTime).Scan(&conflict)
	if err != nil {
		return fmt.Errorf("error checking reservation conflicts: %w", err)
	}
	if conflict {
		return ErrConflict
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (parking_id, user_id, start_time, end_time, status, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		res.ParkingID, res.UserID, res.StartTime, res.EndTime, res.Status, res.PaymentMethod,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isNoOverlapViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("error inserting reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isNoOverlapViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("error committing reservation: %w", err)
	}
	return nil
}

func isNoOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	// 23P01 = exclusion_violation, 40001 = serialization_failure; both mean
	// the window was taken by a concurrent writer.
	return (pqErr.Code == "23P01" && pqErr.Constraint == noOverlapConstraint) ||
		pqErr.Code == "40001"
}

func (r *reservationRepository) GetByID(id int) (*db.Reservation, error) {
	var res db.Reservation
	err := r.db.QueryRow(`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id).
		Scan(&res.ID, &res.ParkingID, &res.UserID, &res.StartTime, &res.EndTime,
			&res.Status, &res.PaymentMethod, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *reservationRepository) ListByUser(userID int, filter entities.ListReservationsFilter) ([]entities.ReservationListItem, error) {
	query := `
		SELECT r.id, r.parking_id, r.user_id, r.start_time, r.end_time,
		       r.status, r.payment_method, r.created_at, r.updated_at,
		       p.name, p.location
		FROM reservations r
		JOIN parkings p ON p.id = r.parking_id
		WHERE r.user_id = $1`
	args := []any{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.Past != nil {
		if *filter.Past {
			query += " AND r.end_time < NOW()"
		} else {
			query += " AND r.end_time >= NOW()"
		}
	}
	query += " ORDER BY r.start_time DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()

	var items []entities.ReservationListItem
	for rows.Next() {
		var res db.Reservation
		var info entities.ReservationParkingInfo
		err := rows.Scan(&res.ID, &res.ParkingID, &res.UserID, &res.StartTime, &res.EndTime,
			&res.Status, &res.PaymentMethod, &res.CreatedAt, &res.UpdatedAt,
			&info.Name, &info.Location)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		items = append(items, entities.ReservationListItem{
			ReservationResponse: entities.NewReservationResponse(&res),
			Parking:             info,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return items, nil
}

func (r *reservationRepository) UpdateStatus(id int, status db.ReservationStatus) (*db.Reservation, error) {
	query := `
		UPDATE reservations SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reservationColumns
	var res db.Reservation
	err := r.db.QueryRow(query, id, status).
		Scan(&res.ID, &res.ParkingID, &res.UserID, &res.StartTime, &res.EndTime,
			&res.Status, &res.PaymentMethod, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating reservation status: %w", err)
	}
	return &res, nil
}

func (r *reservationRepository) ListPendingCash() ([]db.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE payment_method = 'CASH' AND status = 'PENDING'
		ORDER BY start_time`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying pending cash reservations: %w", err)
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		err := rows.Scan(&res.ID, &res.ParkingID, &res.UserID, &res.StartTime, &res.EndTime,
			&res.Status, &res.PaymentMethod, &res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}

func (r *reservationRepository) BlockedParkingIDs(start, end time.Time) ([]int, error) {
	query := `
		SELECT DISTINCT parking_id FROM reservations
		WHERE status <> 'CANCELED'
		  AND start_time < $2
		  AND end_time > $1`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying blocked parking ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning parking id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating parking ids: %w", err)
	}
	return ids, nil
}
