package entities

import (
	"time"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
)

type CreateParkingRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

// UpdateParkingRequest is a partial update: only non-nil fields change.
type UpdateParkingRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Capacity *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type ParkingResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewParkingResponse(p *db.Parking) ParkingResponse {
	return ParkingResponse{
		ID:        p.ID,
		Name:      p.Name,
		Location:  p.Location,
		Capacity:  p.Capacity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
