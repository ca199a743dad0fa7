package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

// LotOccupancy is one lot's slice of the daily report.
type LotOccupancy struct {
	ParkingID    int
	Reservations int
	// BusyHours counts the hours of the day during which the lot is
	// blocked by a non-canceled reservation.
	BusyHours int
}

// ReportService produces the nightly occupancy report: per lot, how many
// non-canceled reservations touch the day and how many of its 24 hour slots
// they block.
type ReportService struct {
	reports repository.ReportRepository
}

func NewReportService(reports repository.ReportRepository) *ReportService {
	return &ReportService{reports: reports}
}

// OccupancyForDay computes occupancy for the UTC day containing t.
func (s *ReportService) OccupancyForDay(t time.Time) (map[int]*LotOccupancy, error) {
	dayStart := t.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	reservations, err := s.reports.ListBlockingInWindow(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("error loading reservations for report: %w", err)
	}

	occupancy := make(map[int]*LotOccupancy)
	for i := range reservations {
		res := &reservations[i]
		if !res.Blocking() {
			continue
		}
		lot, ok := occupancy[res.ParkingID]
		if !ok {
			lot = &LotOccupancy{ParkingID: res.ParkingID}
			occupancy[res.ParkingID] = lot
		}
		lot.Reservations++
	}

	// Hour slots are half-open [h, h+1), same predicate as the conflict
	// engine, so a reservation ending exactly on the hour does not block the
	// slot that starts there.
	for hour := 0; hour < 24; hour++ {
		slotStart := dayStart.Add(time.Duration(hour) * time.Hour)
		slotEnd := slotStart.Add(time.Hour)
		busy := make(map[int]bool)
		for i := range reservations {
			res := &reservations[i]
			if res.Blocking() && res.OverlapsWindow(slotStart, slotEnd) {
				busy[res.ParkingID] = true
			}
		}
		for id := range busy {
			occupancy[id].BusyHours++
		}
	}

	return occupancy, nil
}

// Run executes the report and logs one line per lot. Wired as a cron job.
func (s *ReportService) Run() {
	day := time.Now().UTC().AddDate(0, 0, -1)
	occupancy, err := s.OccupancyForDay(day)
	if err != nil {
		log.Error().Err(err).Msg("occupancy report failed")
		return
	}
	if len(occupancy) == 0 {
		log.Info().Str("day", day.Format("2006-01-02")).Msg("occupancy report: no reservations")
		return
	}
	for _, lot := range occupancy {
		log.Info().
			Str("day", day.Format("2006-01-02")).
			Int("parking_id", lot.ParkingID).
			Int("reservations", lot.Reservations).
			Int("busy_hours", lot.BusyHours).
			Msg("occupancy report")
	}
}
