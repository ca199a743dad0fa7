package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
)

type availabilityFixture struct {
	service *ParkingService
	p1      *db.Parking
	p2      *db.Parking
	repo    *fakeReservationRepo
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	parkings := newFakeParkingRepo()
	repo := newFakeReservationRepo(parkings)

	p1 := &db.Parking{Name: "P1", Location: "here", Capacity: 50}
	p2 := &db.Parking{Name: "P2", Location: "there", Capacity: 1}
	require.NoError(t, parkings.Create(p1))
	require.NoError(t, parkings.Create(p2))

	return &availabilityFixture{
		service: NewParkingService(parkings, repo),
		p1:      p1,
		p2:      p2,
		repo:    repo,
	}
}

func (f *availabilityFixture) book(t *testing.T, lotID int, status db.ReservationStatus, startHour, endHour int) {
	t.Helper()
	res := &db.Reservation{
		ParkingID:     lotID,
		UserID:        1,
		StartTime:     utc(startHour),
		EndTime:       utc(endHour),
		Status:        db.StatusPending,
		PaymentMethod: db.PaymentCash,
	}
	require.NoError(t, f.repo.Create(res))
	if status != db.StatusPending {
		_, err := f.repo.UpdateStatus(res.ID, status)
		require.NoError(t, err)
	}
}

func TestListAvailable(t *testing.T) {
	f := newAvailabilityFixture(t)
	// P1 holds a CONFIRMED reservation for [10:00, 12:00); P2 is free.
	f.book(t, f.p1.ID, db.StatusConfirmed, 10, 12)

	lots, err := f.service.ListAvailable(utc(10), utc(12))
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "P2", lots[0].Name)
}

func TestListAvailableTouchingWindow(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.book(t, f.p1.ID, db.StatusConfirmed, 10, 12)

	// [12:00, 14:00) only touches the reservation's end; both lots are free.
	lots, err := f.service.ListAvailable(utc(12), utc(14))
	require.NoError(t, err)
	assert.Len(t, lots, 2)
}

func TestListAvailableIgnoresCanceled(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.book(t, f.p1.ID, db.StatusCanceled, 10, 12)

	lots, err := f.service.ListAvailable(utc(10), utc(12))
	require.NoError(t, err)
	assert.Len(t, lots, 2, "canceled reservations never block availability")
}

// Capacity is stored but never consulted: one overlapping reservation fully
// excludes a lot even with capacity 50.
func TestListAvailableIsSingleSlot(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.book(t, f.p1.ID, db.StatusPending, 10, 11)

	lots, err := f.service.ListAvailable(utc(10), utc(12))
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "P2", lots[0].Name)
	assert.Equal(t, 50, f.p1.Capacity)
}

// The window is validated start < end here, harmonized with creation.
func TestListAvailableRejectsBadWindow(t *testing.T) {
	f := newAvailabilityFixture(t)

	_, err := f.service.ListAvailable(utc(12), utc(12))
	require.Error(t, err)
	assert.Equal(t, 400, asHTTPError(t, err).Status)

	_, err = f.service.ListAvailable(utc(14), utc(12))
	require.Error(t, err)
	assert.Equal(t, 400, asHTTPError(t, err).Status)
}

func TestParkingCRUD(t *testing.T) {
	f := newAvailabilityFixture(t)

	created, err := f.service.Create(entities.CreateParkingRequest{Name: "P3", Location: "elsewhere", Capacity: 75})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	newName := "P3 renamed"
	updated, err := f.service.Update(created.ID, entities.UpdateParkingRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "P3 renamed", updated.Name)
	assert.Equal(t, 75, updated.Capacity, "partial update leaves other fields alone")

	require.NoError(t, f.service.Delete(created.ID))
	_, err = f.service.GetByID(created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, asHTTPError(t, err).Status)
}
