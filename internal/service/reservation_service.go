package service

import (
	"errors"
	"fmt"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

// Notifier delivers best-effort reservation notifications. Failures are
// logged by the implementation and never fail the request.
type Notifier interface {
	ReservationStatusChanged(user *db.User, res *db.Reservation)
}

// ReservationService implements the reservation lifecycle: conflict-checked
// creation, owner-scoped listing, owner/officer reads and the cancellation
// guard.
type ReservationService struct {
	reservations repository.ReservationRepository
	parkings     repository.ParkingRepository
	notifier     Notifier
}

func NewReservationService(reservations repository.ReservationRepository, parkings repository.ParkingRepository, notifier Notifier) *ReservationService {
	return &ReservationService{reservations: reservations, parkings: parkings, notifier: notifier}
}

// Create validates the interval, checks the lot exists, and inserts the
// reservation as PENDING unless a non-canceled reservation on the same lot
// overlaps the half-open window.
func (s *ReservationService) Create(user *db.User, req entities.CreateReservationRequest) (*entities.ReservationResponse, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, httperrors.BadRequest("Invalid startTime or endTime. Start time must be before end time.")
	}

	method := db.PaymentCash
	if req.PaymentMethod != "" {
		parsed, err := db.ParsePaymentMethod(req.PaymentMethod)
		if err != nil {
			return nil, httperrors.BadRequest("paymentMethod must be CASH or CARD")
		}
		method = parsed
	}

	if _, err := s.parkings.GetByID(req.ParkingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("Parking lot not found")
		}
		return nil, fmt.Errorf("error fetching parking lot: %w", err)
	}

	res := &db.Reservation{
		ParkingID:     req.ParkingID,
		UserID:        user.ID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        db.StatusPending,
		PaymentMethod: method,
	}
	if err := s.reservations.Create(res); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, httperrors.Conflict("The selected parking spot is already reserved for the chosen time range.")
		}
		return nil, fmt.Errorf("error creating reservation: %w", err)
	}

	if s.notifier != nil {
		s.notifier.ReservationStatusChanged(user, res)
	}

	resp := entities.NewReservationResponse(res)
	return &resp, nil
}

// ListForUser returns the caller's reservations, newest start first.
func (s *ReservationService) ListForUser(userID int, filter entities.ListReservationsFilter) ([]entities.ReservationListItem, error) {
	items, err := s.reservations.ListByUser(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	if items == nil {
		items = []entities.ReservationListItem{}
	}
	return items, nil
}

// GetByID returns a reservation, visible to its owner or any officer.
func (s *ReservationService) GetByID(caller *db.User, id int) (*entities.ReservationResponse, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("Reservation not found")
		}
		return nil, fmt.Errorf("error fetching reservation: %w", err)
	}
	if res.UserID != caller.ID && caller.Role != db.RoleOfficer {
		return nil, httperrors.Unauthorized("You are not authorized to view this reservation.")
	}
	resp := entities.NewReservationResponse(res)
	return &resp, nil
}

// Cancel moves a reservation to CANCELED. Only the owner may cancel, only
// from PENDING or CONFIRMED, and canceling twice is an error, never a silent
// success.
func (s *ReservationService) Cancel(caller *db.User, id int) (*entities.ReservationResponse, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("Reservation not found")
		}
		return nil, fmt.Errorf("error fetching reservation: %w", err)
	}

	if res.UserID != caller.ID {
		return nil, httperrors.Unauthorized("You are not authorized to cancel this reservation.")
	}

	switch res.Status {
	case db.StatusCanceled:
		return nil, httperrors.AlreadyCanceled("Reservation is already canceled.")
	case db.StatusPending, db.StatusConfirmed:
		// allowed
	default:
		return nil, httperrors.InvalidStatusForAction(
			fmt.Sprintf("Cannot cancel reservation with status: %s.", res.Status))
	}

	updated, err := s.reservations.UpdateStatus(id, db.StatusCanceled)
	if err != nil {
		return nil, fmt.Errorf("error canceling reservation: %w", err)
	}

	if s.notifier != nil {
		s.notifier.ReservationStatusChanged(caller, updated)
	}

	resp := entities.NewReservationResponse(updated)
	return &resp, nil
}
