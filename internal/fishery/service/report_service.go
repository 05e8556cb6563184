package service

import (
	"context"
	"sort"
	"time"

	"github.com/finwatch/finwatch/internal/fishery/store"
	"github.com/shopspring/decimal"
)

// ReportService produces the regulatory and fleet analytics reports.
type ReportService interface {
	ExpiringPermits(ctx context.Context, days int32) ([]ExpiringPermitDto, error)
	ShipStatistics(ctx context.Context, shipID int64, year int) (*ShipStatisticsDto, error)
	AllShipStatistics(ctx context.Context, year int) ([]ShipStatisticsDto, error)
	CarbonFootprint(ctx context.Context, year int) ([]CarbonFootprintDto, error)
	TopFishers(ctx context.Context, limit int) ([]TopFisherDto, error)
}

type ExpiringPermitDto struct {
	PermitID               int64     `json:"permitId"`
	ShipName               string    `json:"shipName"`
	ShipRegistrationNumber string    `json:"shipRegistrationNumber"`
	OwnerName              string    `json:"ownerName"`
	OwnerEmail             string    `json:"ownerEmail"`
	ValidTo                time.Time `json:"validTo"`
	DaysUntilExpiry        int32     `json:"daysUntilExpiry"`
}

type ShipStatisticsDto struct {
	ShipID                 int64            `json:"shipId"`
	ShipName               string           `json:"shipName"`
	ShipRegistrationNumber string           `json:"shipRegistrationNumber"`
	Year                   int              `json:"year"`
	TotalTrips             int              `json:"totalTrips"`
	CompletedTrips         int              `json:"completedTrips"`
	AvgTripDurationHours   float64          `json:"avgTripDurationHours"`
	MinTripDurationHours   float64          `json:"minTripDurationHours"`
	MaxTripDurationHours   float64          `json:"maxTripDurationHours"`
	YearlyCatchKg          decimal.Decimal  `json:"yearlyCatchKg"`
	AllTimeCatchKg         decimal.Decimal  `json:"allTimeCatchKg"`
	TotalFuelUsed          decimal.Decimal  `json:"totalFuelUsed"`
	AvgFuelPerTrip         decimal.Decimal  `json:"avgFuelPerTrip"`
	CarbonRatio            *decimal.Decimal `json:"carbonRatio,omitempty"`
}

type CarbonFootprintDto struct {
	ShipID                 int64           `json:"shipId"`
	ShipName               string          `json:"shipName"`
	ShipRegistrationNumber string          `json:"shipRegistrationNumber"`
	FuelType               store.FuelType  `json:"fuelType"`
	TotalFuelUsed          decimal.Decimal `json:"totalFuelUsed"`
	TotalCatchKg           decimal.Decimal `json:"totalCatchKg"`
	CarbonRatio            decimal.Decimal `json:"carbonRatio"`
	Rating                 string          `json:"rating"`
}

type TopFisherDto struct {
	Rank             int       `json:"rank"`
	UserID           int64     `json:"userId"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	ActiveTickets    int       `json:"activeTickets"`
	LastTicketExpiry time.Time `json:"lastTicketExpiry"`
}

type Reports struct {
	permits store.Permits
	ships   store.Ships
	trips   store.Trips
	tickets store.Tickets
	now     func() time.Time
}

func NewReportService(permits store.Permits, ships store.Ships, trips store.Trips, tickets store.Tickets) *Reports {
	return &Reports{permits: permits, ships: ships, trips: trips, tickets: tickets, now: time.Now}
}

func (s *Reports) ExpiringPermits(ctx context.Context, days int32) ([]ExpiringPermitDto, error) {
	now := s.now().UTC()
	permits, err := s.permits.FindExpiringPermits(ctx, now, days)
	if err != nil {
		return nil, err
	}
	dtos := make([]ExpiringPermitDto, 0, len(permits))
	for _, p := range permits {
		dtos = append(dtos, ExpiringPermitDto{
			PermitID:               p.ID,
			ShipName:               p.ShipName,
			ShipRegistrationNumber: p.ShipRegistrationNumber,
			OwnerName:              p.OwnerName,
			OwnerEmail:             p.OwnerEmail,
			ValidTo:                p.ValidTo,
			DaysUntilExpiry:        daysUntil(now, p.ValidTo),
		})
	}
	return dtos, nil
}

func (s *Reports) ShipStatistics(ctx context.Context, shipID int64, year int) (*ShipStatisticsDto, error) {
	ship, err := s.ships.FindShipByID(ctx, shipID)
	if err != nil {
		return nil, err
	}
	return s.shipStatistics(ctx, ship, year)
}

func (s *Reports) AllShipStatistics(ctx context.Context, year int) ([]ShipStatisticsDto, error) {
	ships, err := s.ships.FindAllShips(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]ShipStatisticsDto, 0, len(ships))
	for i := range ships {
		stats, err := s.shipStatistics(ctx, &ships[i], year)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *stats)
	}
	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].YearlyCatchKg.GreaterThan(dtos[j].YearlyCatchKg)
	})
	return dtos, nil
}

func (s *Reports) shipStatistics(ctx context.Context, ship *store.Ship, year int) (*ShipStatisticsDto, error) {
	trips, err := s.trips.FindTripsByShip(ctx, ship.ID)
	if err != nil {
		return nil, err
	}

	stats := &ShipStatisticsDto{
		ShipID:                 ship.ID,
		ShipName:               ship.Name,
		ShipRegistrationNumber: ship.RegistrationNumber,
		Year:                   year,
		YearlyCatchKg:          decimal.Zero,
		AllTimeCatchKg:         decimal.Zero,
		TotalFuelUsed:          decimal.Zero,
		AvgFuelPerTrip:         decimal.Zero,
	}

	var (
		durations   []float64
		fueledCount int
	)
	for i := range trips {
		trip := &trips[i]
		catchTotal, err := s.tripCatchTotal(ctx, trip.ID)
		if err != nil {
			return nil, err
		}
		stats.AllTimeCatchKg = stats.AllTimeCatchKg.Add(catchTotal)

		if trip.StartTime.Year() != year {
			continue
		}
		stats.TotalTrips++
		stats.YearlyCatchKg = stats.YearlyCatchKg.Add(catchTotal)
		if trip.EndTime == nil {
			continue
		}
		stats.CompletedTrips++
		durations = append(durations, trip.EndTime.Sub(trip.StartTime).Hours())
		if trip.FuelUsed != nil {
			fueledCount++
			stats.TotalFuelUsed = stats.TotalFuelUsed.Add(*trip.FuelUsed)
		}
	}

	if len(durations) > 0 {
		minD, maxD, sum := durations[0], durations[0], 0.0
		for _, d := range durations {
			if d < minD {
				minD = d
			}
			if d > maxD {
				maxD = d
			}
			sum += d
		}
		stats.AvgTripDurationHours = sum / float64(len(durations))
		stats.MinTripDurationHours = minD
		stats.MaxTripDurationHours = maxD
	}
	// Trips that never reported fuel are left out of the average.
	if fueledCount > 0 {
		stats.AvgFuelPerTrip = stats.TotalFuelUsed.Div(decimal.NewFromInt(int64(fueledCount)))
	}
	if stats.TotalFuelUsed.IsPositive() && stats.YearlyCatchKg.IsPositive() {
		ratio := stats.TotalFuelUsed.Div(stats.YearlyCatchKg)
		stats.CarbonRatio = &ratio
	}
	return stats, nil
}

func (s *Reports) CarbonFootprint(ctx context.Context, year int) ([]CarbonFootprintDto, error) {
	ships, err := s.ships.FindAllShips(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]CarbonFootprintDto, 0, len(ships))
	for i := range ships {
		stats, err := s.shipStatistics(ctx, &ships[i], year)
		if err != nil {
			return nil, err
		}
		if stats.CarbonRatio == nil {
			continue
		}
		dtos = append(dtos, CarbonFootprintDto{
			ShipID:                 ships[i].ID,
			ShipName:               ships[i].Name,
			ShipRegistrationNumber: ships[i].RegistrationNumber,
			FuelType:               ships[i].FuelType,
			TotalFuelUsed:          stats.TotalFuelUsed,
			TotalCatchKg:           stats.YearlyCatchKg,
			CarbonRatio:            *stats.CarbonRatio,
			Rating:                 carbonRating(*stats.CarbonRatio),
		})
	}
	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].CarbonRatio.LessThan(dtos[j].CarbonRatio)
	})
	return dtos, nil
}

func (s *Reports) TopFishers(ctx context.Context, limit int) ([]TopFisherDto, error) {
	if limit <= 0 {
		limit = 10
	}
	tickets, err := s.tickets.FindActiveTickets(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}

	type fisher struct {
		userID     int64
		fullName   string
		email      string
		count      int
		lastExpiry time.Time
	}
	byUser := make(map[int64]*fisher)
	order := make([]int64, 0)
	for _, t := range tickets {
		f, ok := byUser[t.UserID]
		if !ok {
			f = &fisher{userID: t.UserID, fullName: t.UserName, email: t.UserEmail}
			byUser[t.UserID] = f
			order = append(order, t.UserID)
		}
		f.count++
		if t.ValidTo.After(f.lastExpiry) {
			f.lastExpiry = t.ValidTo
		}
	}

	fishers := make([]*fisher, 0, len(order))
	for _, id := range order {
		fishers = append(fishers, byUser[id])
	}
	sort.SliceStable(fishers, func(i, j int) bool {
		if fishers[i].count != fishers[j].count {
			return fishers[i].count > fishers[j].count
		}
		return fishers[i].lastExpiry.After(fishers[j].lastExpiry)
	})
	if len(fishers) > limit {
		fishers = fishers[:limit]
	}

	dtos := make([]TopFisherDto, 0, len(fishers))
	for i, f := range fishers {
		dtos = append(dtos, TopFisherDto{
			Rank:             i + 1,
			UserID:           f.userID,
			FullName:         f.fullName,
			Email:            f.email,
			ActiveTickets:    f.count,
			LastTicketExpiry: f.lastExpiry,
		})
	}
	return dtos, nil
}

func (s *Reports) tripCatchTotal(ctx context.Context, tripID int64) (decimal.Decimal, error) {
	catches, err := s.trips.FindCatchesByTrip(ctx, tripID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range catches {
		total = total.Add(c.QuantityKg)
	}
	return total, nil
}

// carbonRating buckets a fuel-per-kilogram-of-catch ratio.
func carbonRating(ratio decimal.Decimal) string {
	switch {
	case ratio.LessThan(decimal.NewFromFloat(0.5)):
		return "Excellent"
	case ratio.LessThan(decimal.NewFromInt(1)):
		return "Good"
	case ratio.LessThan(decimal.NewFromInt(2)):
		return "Average"
	default:
		return "Poor"
	}
}
