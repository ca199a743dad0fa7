package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
)

type ParkingRepository interface {
	Create(p *db.Parking) error
	GetByID(id int) (*db.Parking, error)
	List() ([]db.Parking, error)
	// ListExcluding returns every lot whose id is not in the given set.
	ListExcluding(ids []int) ([]db.Parking, error)
	Update(id int, req entities.UpdateParkingRequest) (*db.Parking, error)
	Delete(id int) error
}

type parkingRepository struct {
	db *sql.DB
}

func NewParkingRepository(database *sql.DB) ParkingRepository {
	return &parkingRepository{db: database}
}

const parkingColumns = `id, name, location, capacity, created_at, updated_at`

func (r *parkingRepository) Create(p *db.Parking) error {
	query := `
		INSERT INTO parkings (name, location, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, p.Name, p.Location, p.Capacity).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting parking lot: %w", err)
	}
	return nil
}

func (r *parkingRepository) GetByID(id int) (*db.Parking, error) {
	var p db.Parking
	err := r.db.QueryRow(`SELECT `+parkingColumns+` FROM parkings WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Location, &p.Capacity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying parking lot: %w", err)
	}
	return &p, nil
}

func (r *parkingRepository) List() ([]db.Parking, error) {
	return r.list(`SELECT `+parkingColumns+` FROM parkings ORDER BY id`)
}

func (r *parkingRepository) ListExcluding(ids []int) ([]db.Parking, error) {
	if len(ids) == 0 {
		return r.List()
	}
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE NOT (id = ANY($1)) ORDER BY id`
	return r.list(query, pq.Array(ids))
}

func (r *parkingRepository) list(query string, args ...any) ([]db.Parking, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying parking lots: %w", err)
	}
	defer rows.Close()

	var lots []db.Parking
	for rows.Next() {
		var p db.Parking
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Capacity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning parking lot: %w", err)
		}
		lots = append(lots, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating parking lots: %w", err)
	}
	return lots, nil
}

func (r *parkingRepository) Update(id int, req entities.UpdateParkingRequest) (*db.Parking, error) {
	query := `
		UPDATE parkings
		SET name = COALESCE($2, name),
		    location = COALESCE($3, location),
		    capacity = COALESCE($4, capacity),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + parkingColumns
	var p db.Parking
	err := r.db.QueryRow(query, id, req.Name, req.Location, req.Capacity).
		Scan(&p.ID, &p.Name, &p.Location, &p.Capacity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating parking lot: %w", err)
	}
	return &p, nil
}

func (r *parkingRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM parkings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting parking lot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
