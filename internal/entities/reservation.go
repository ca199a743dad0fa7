package entities

import (
	"time"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
)

type CreateReservationRequest struct {
	ParkingID     int       `json:"parkingId" validate:"required"`
	StartTime     time.Time `json:"startTime" validate:"required"`
	EndTime       time.Time `json:"endTime" validate:"required"`
	PaymentMethod string    `json:"paymentMethod" validate:"omitempty,oneof=CASH CARD"`
}

// ListReservationsFilter captures the ?status= and ?past= query params of the
// my-reservations listing. Past filters on end_time relative to now; nil
// means no filter on that axis.
type ListReservationsFilter struct {
	Status *db.ReservationStatus
	Past   *bool
}

type ReservationResponse struct {
	ID            int                  `json:"id"`
	ParkingID     int                  `json:"parkingId"`
	UserID        int                  `json:"userId"`
	StartTime     time.Time            `json:"startTime"`
	EndTime       time.Time            `json:"endTime"`
	Status        db.ReservationStatus `json:"status"`
	PaymentMethod db.PaymentMethod     `json:"paymentMethod"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func NewReservationResponse(r *db.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		ParkingID:     r.ParkingID,
		UserID:        r.UserID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ReservationParkingInfo is the subset of lot fields embedded in listings.
type ReservationParkingInfo struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ReservationListItem is one row of the my-reservations listing, the
// reservation plus the lot it is on.
type ReservationListItem struct {
	ReservationResponse
	Parking ReservationParkingInfo `json:"parking"`
}
