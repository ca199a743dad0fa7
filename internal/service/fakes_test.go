package service

import (
	"sort"
	"time"

	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

// In-memory repositories mirroring the postgres semantics the services rely
// on: conflict detection on insert, owner-scoped listing, status updates.

type fakeParkingRepo struct {
	nextID int
	lots   map[int]db.Parking
}

func newFakeParkingRepo() *fakeParkingRepo {
	return &fakeParkingRepo{nextID: 1, lots: map[int]db.Parking{}}
}

func (f *fakeParkingRepo) Create(p *db.Parking) error {
	p.ID = f.nextID
	f.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.lots[p.ID] = *p
	return nil
}

func (f *fakeParkingRepo) GetByID(id int) (*db.Parking, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &lot, nil
}

func (f *fakeParkingRepo) List() ([]db.Parking, error) {
	return f.listExcept(nil), nil
}

func (f *fakeParkingRepo) ListExcluding(ids []int) ([]db.Parking, error) {
	excluded := map[int]bool{}
	for _, id := range ids {
		excluded[id] = true
	}
	return f.listExcept(excluded), nil
}

func (f *fakeParkingRepo) listExcept(excluded map[int]bool) []db.Parking {
	var lots []db.Parking
	for _, lot := range f.lots {
		if !excluded[lot.ID] {
			lots = append(lots, lot)
		}
	}
	sort.Slice(lots, func(i, j int) bool { return lots[i].ID < lots[j].ID })
	return lots
}

func (f *fakeParkingRepo) Update(id int, req entities.UpdateParkingRequest) (*db.Parking, error) {
	lot, ok := f.lots[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Name != nil {
		lot.Name = *req.Name
	}
	if req.Location != nil {
		lot.Location = *req.Location
	}
	if req.Capacity != nil {
		lot.Capacity = *req.Capacity
	}
	lot.UpdatedAt = time.Now().UTC()
	f.lots[id] = lot
	return &lot, nil
}

func (f *fakeParkingRepo) Delete(id int) error {
	if _, ok := f.lots[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.lots, id)
	return nil
}

type fakeReservationRepo struct {
	nextID   int
	rows     map[int]db.Reservation
	parkings *fakeParkingRepo
}

func newFakeReservationRepo(parkings *fakeParkingRepo) *fakeReservationRepo {
	return &fakeReservationRepo{nextID: 1, rows: map[int]db.Reservation{}, parkings: parkings}
}

func (f *fakeReservationRepo) Create(res *db.Reservation) error {
	for _, existing := range f.rows {
		if existing.ParkingID == res.ParkingID && existing.Blocking() &&
			existing.OverlapsWindow(res.StartTime, res.EndTime) {
			return repository.ErrConflict
		}
	}
	res.ID = f.nextID
	f.nextID++
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	f.rows[res.ID] = *res
	return nil
}

func (f *fakeReservationRepo) GetByID(id int) (*db.Reservation, error) {
	res, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &res, nil
}

func (f *fakeReservationRepo) ListByUser(userID int, filter entities.ListReservationsFilter) ([]entities.ReservationListItem, error) {
	now := time.Now().UTC()
	var matched []db.Reservation
	for _, res := range f.rows {
		if res.UserID != userID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.Past != nil {
			if *filter.Past && !res.EndTime.Before(now) {
				continue
			}
			if !*filter.Past && res.EndTime.Before(now) {
				continue
			}
		}
		matched = append(matched, res)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StartTime.After(matched[j].StartTime) })

	var items []entities.ReservationListItem
	for i := range matched {
		item := entities.ReservationListItem{ReservationResponse: entities.NewReservationResponse(&matched[i])}
		if f.parkings != nil {
			if lot, err := f.parkings.GetByID(matched[i].ParkingID); err == nil {
				item.Parking = entities.ReservationParkingInfo{Name: lot.Name, Location: lot.Location}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeReservationRepo) UpdateStatus(id int, status db.ReservationStatus) (*db.Reservation, error) {
	res, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	res.Status = status
	res.UpdatedAt = time.Now().UTC()
	f.rows[id] = res
	return &res, nil
}

func (f *fakeReservationRepo) ListPendingCash() ([]db.Reservation, error) {
	var pending []db.Reservation
	for _, res := range f.rows {
		if res.PaymentMethod == db.PaymentCash && res.Status == db.StatusPending {
			pending = append(pending, res)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].StartTime.Before(pending[j].StartTime) })
	return pending, nil
}

func (f *fakeReservationRepo) BlockedParkingIDs(start, end time.Time) ([]int, error) {
	blocked := map[int]bool{}
	for _, res := range f.rows {
		if res.Blocking() && res.OverlapsWindow(start, end) {
			blocked[res.ParkingID] = true
		}
	}
	var ids []int
	for id := range blocked {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

type fakeUserRepo struct {
	nextID int
	users  map[int]db.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int]db.User{}}
}

func (f *fakeUserRepo) Create(user *db.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return repository.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*db.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type fakeReportRepo struct {
	reservations []db.Reservation
}

func (f *fakeReportRepo) ListBlockingInWindow(start, end time.Time) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range f.reservations {
		if res.Blocking() && res.OverlapsWindow(start, end) {
			out = append(out, res)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	events []db.ReservationStatus
}

func (n *recordingNotifier) ReservationStatusChanged(_ *db.User, res *db.Reservation) {
	n.events = append(n.events, res.Status)
}
