package db

import (
	"fmt"
	"strings"
	"time"
)

// Role is the set of user roles known to the system.
type Role string

const (
	RoleUser    Role = "USER"
	RoleOfficer Role = "OFFICER"
)

// ParseRole maps a raw string onto a Role. The allow-list is deliberate:
// anything outside it is an error, never a silent pass-through.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleOfficer:
		return RoleOfficer, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ReservationStatus is the reservation lifecycle state. The backend only ever
// writes PENDING, CONFIRMED and CANCELED.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCanceled  ReservationStatus = "CANCELED"
)

func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCanceled:
		return StatusCanceled, nil
	default:
		return "", fmt.Errorf("unknown reservation status %q", s)
	}
}

// PaymentMethod of a reservation. Only CASH is ever produced today; CARD
// exists for forward compatibility with the stored enum.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PaymentCash:
		return PaymentCash, nil
	case PaymentCard:
		return PaymentCard, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

type User struct {
	ID           int
	Username     string
	PasswordHash string
	Role         Role
	Email        string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Parking struct {
	ID        int
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Reservation struct {
	ID            int
	ParkingID     int
	UserID        int
	StartTime     time.Time
	EndTime       time.Time
	Status        ReservationStatus
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OverlapsWindow reports whether the reservation's half-open interval
// [StartTime, EndTime) intersects [start, end). Touching endpoints do not
// overlap, so back-to-back bookings are allowed.
func (r *Reservation) OverlapsWindow(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// Blocking reports whether the reservation participates in conflict
// detection. Canceled rows are permanently out of the conflict set.
func (r *Reservation) Blocking() bool {
	return r.Status != StatusCanceled
}
