package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

// ParkingService covers lot CRUD plus the availability search half of the
// conflict engine.
type ParkingService struct {
	parkings     repository.ParkingRepository
	reservations repository.ReservationRepository
}

func NewParkingService(parkings repository.ParkingRepository, reservations repository.ReservationRepository) *ParkingService {
	return &ParkingService{parkings: parkings, reservations: reservations}
}

func (s *ParkingService) Create(req entities.CreateParkingRequest) (*entities.ParkingResponse, error) {
	lot := &db.Parking{Name: req.Name, Location: req.Location, Capacity: req.Capacity}
	if err := s.parkings.Create(lot); err != nil {
		return nil, fmt.Errorf("error creating parking lot: %w", err)
	}
	resp := entities.NewParkingResponse(lot)
	return &resp, nil
}

func (s *ParkingService) List() ([]entities.ParkingResponse, error) {
	lots, err := s.parkings.List()
	if err != nil {
		return nil, fmt.Errorf("error listing parking lots: %w", err)
	}
	return toParkingResponses(lots), nil
}

func (s *ParkingService) GetByID(id int) (*entities.ParkingResponse, error) {
	lot, err := s.parkings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("Parking lot not found")
		}
		return nil, fmt.Errorf("error fetching parking lot: %w", err)
	}
	resp := entities.NewParkingResponse(lot)
	return &resp, nil
}

// ListAvailable returns every lot with no non-canceled reservation
// overlapping [start, end). A lot with any overlapping reservation is fully
// excluded regardless of its capacity value; every lot is single-slot for
// conflict purposes.
func (s *ParkingService) ListAvailable(start, end time.Time) ([]entities.ParkingResponse, error) {
	if !start.Before(end) {
		return nil, httperrors.BadRequest("startTime must be before endTime")
	}
	blocked, err := s.reservations.BlockedParkingIDs(start, end)
	if err != nil {
		return nil, fmt.Errorf("error finding blocked lots: %w", err)
	}
	lots, err := s.parkings.ListExcluding(blocked)
	if err != nil {
		return nil, fmt.Errorf("error listing available lots: %w", err)
	}
	return toParkingResponses(lots), nil
}

func (s *ParkingService) Update(id int, req entities.UpdateParkingRequest) (*entities.ParkingResponse, error) {
	lot, err := s.parkings.Update(id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("Parking lot not found")
		}
		return nil, fmt.Errorf("error updating parking lot: %w", err)
	}
	resp := entities.NewParkingResponse(lot)
	return &resp, nil
}

func (s *ParkingService) Delete(id int) error {
	if err := s.parkings.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return httperrors.NotFound("Parking lot not found")
		}
		return fmt.Errorf("error deleting parking lot: %w", err)
	}
	return nil
}

func toParkingResponses(lots []db.Parking) []entities.ParkingResponse {
	responses := make([]entities.ParkingResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, entities.NewParkingResponse(&lots[i]))
	}
	return responses
}
