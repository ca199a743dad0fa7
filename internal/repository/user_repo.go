package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
)

type UserRepository interface {
	Create(user *db.User) error
	GetByUsername(username string) (*db.User, error)
	GetByID(id int) (*db.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(user *db.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Email,
		user.Phone,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByUsername(username string) (*db.User, error) {
	return r.get(`WHERE username = $1`, username)
}

func (r *userRepository) GetByID(id int) (*db.User, error) {
	return r.get(`WHERE id = $1`, id)
}

func (r *userRepository) get(where string, arg any) (*db.User, error) {
	query := `
		SELECT id, username, password_hash, role, email, phone, created_at, updated_at
		FROM users ` + where
	var u db.User
	err := r.db.QueryRow(query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role,
		&u.Email, &u.Phone, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return &u, nil
}
