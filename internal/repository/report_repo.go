package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
)

type ReportRepository interface {
	// ListBlockingInWindow returns every non-canceled reservation whose
	// interval touches [start, end).
	ListBlockingInWindow(start, end time.Time) ([]db.Reservation, error)
}

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(database *sql.DB) ReportRepository {
	return &reportRepository{db: database}
}

func (r *reportRepository) ListBlockingInWindow(start, end time.Time) ([]db.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE status <> 'CANCELED'
		  AND start_time < $2
		  AND end_time > $1
		ORDER BY parking_id, start_time`
	rows, err := r.db.Query(query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations in window: %w", err)
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
