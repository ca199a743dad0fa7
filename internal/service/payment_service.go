package service

import (
	"errors"
	"fmt"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

// PaymentService handles cash payments: listing what is awaiting collection
// and confirming once the cash is in hand.
type PaymentService struct {
	reservations repository.ReservationRepository
	users        repository.UserRepository
	notifier     Notifier
}

func NewPaymentService(reservations repository.ReservationRepository, users repository.UserRepository, notifier Notifier) *PaymentService {
	return &PaymentService{reservations: reservations, users: users, notifier: notifier}
}

// ListPending returns every CASH reservation still in PENDING.
func (s *PaymentService) ListPending() ([]entities.ReservationResponse, error) {
	pending, err := s.reservations.ListPendingCash()
	if err != nil {
		return nil, fmt.Errorf("error listing pending payments: %w", err)
	}
	responses := make([]entities.ReservationResponse, 0, len(pending))
	for i := range pending {
		responses = append(responses, entities.NewReservationResponse(&pending[i]))
	}
	return responses, nil
}

// Confirm moves a reservation to CONFIRMED. Eligibility is a single
// conjunctive precondition: payment method CASH and status PENDING. Anything
// else is rejected with one undifferentiated error.
func (s *PaymentService) Confirm(id int) (*entities.ReservationResponse, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NotFound("Reservation not found")
		}
		return nil, fmt.Errorf("error fetching reservation: %w", err)
	}

	if res.PaymentMethod != db.PaymentCash || res.Status != db.StatusPending {
		return nil, httperrors.BadRequest("Reservation not eligible for confirmation")
	}

	updated, err := s.reservations.UpdateStatus(id, db.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("error confirming reservation: %w", err)
	}

	if s.notifier != nil {
		if owner, err := s.users.GetByID(updated.UserID); err == nil {
			s.notifier.ReservationStatusChanged(owner, updated)
		}
	}

	resp := entities.NewReservationResponse(updated)
	return &resp, nil
}
