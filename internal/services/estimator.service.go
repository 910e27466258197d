package services

import (
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/shopspring/decimal"
)

const (
	minimumDurationMinutes = 30

	defaultRooms        = 2
	defaultSquareMeters = 50
	defaultWindows      = 5
	defaultBathrooms    = 1
)

// serviceRate is an hourly rate in kroner plus the weights of the duration
// formula. Duration in minutes = rooms*Rooms + bathrooms*Bathrooms +
// sqm*SquareMeters + windows*Windows.
type serviceRate struct {
	HourlyRate   int64
	Rooms        string
	Bathrooms    string
	SquareMeters string
	Windows      string
}

var serviceCatalog = map[string]serviceRate{
	"standard":     {HourlyRate: 450, Rooms: "17", Bathrooms: "10", SquareMeters: "0.5"},
	"flyttevask":   {HourlyRate: 699, Rooms: "52", Bathrooms: "20", SquareMeters: "1.2"},
	"naeringsvask": {HourlyRate: 699, Rooms: "15", SquareMeters: "1.5"},
	"vindusvask":   {HourlyRate: 350, Windows: "10"},
	"sesongvask":   {HourlyRate: 500, Rooms: "35", Bathrooms: "15", SquareMeters: "0.8"},
}

// Estimate is the result of pricing a service against a property: a duration
// in whole minutes and a price range in øre.
type Estimate struct {
	DurationMinutes int   `json:"durationMinutes"`
	PriceMin        int64 `json:"priceMin"`
	PriceMax        int64 `json:"priceMax"`
}

type EstimatorService struct {
	log logger.Logger
}

func NewEstimatorService() *EstimatorService {
	return &EstimatorService{
		log: logger.New("EstimatorService"),
	}
}

// KnownService reports whether serviceType is in the fixed catalog. Bookings
// accept free-text service types, but only catalog entries get an estimate.
func (s *EstimatorService) KnownService(serviceType string) bool {
	_, ok := serviceCatalog[serviceType]
	return ok
}

// Estimate maps property attributes and a catalog service type to a duration
// and price range. Pure and deterministic: same inputs, same outputs. Missing
// property attributes fall back to catalog defaults.
func (s *EstimatorService) Estimate(property *Property, serviceType string) (Estimate, bool) {
	rate, ok := serviceCatalog[serviceType]
	if !ok {
		return Estimate{}, false
	}

	rooms := intOrDefault(property.Rooms, defaultRooms)
	bathrooms := intOrDefault(property.Bathrooms, defaultBathrooms)
	sqm := intOrDefault(property.SquareMeters, defaultSquareMeters)
	windows := intOrDefault(property.Windows, defaultWindows)

	duration := decimal.Zero
	duration = duration.Add(weighted(rooms, rate.Rooms))
	duration = duration.Add(weighted(bathrooms, rate.Bathrooms))
	duration = duration.Add(weighted(sqm, rate.SquareMeters))
	duration = duration.Add(weighted(windows, rate.Windows))

	floor := decimal.NewFromInt(minimumDurationMinutes)
	if duration.LessThan(floor) {
		duration = floor
	}
	minutes := duration.Round(0)

	// hours * rate gives the base price in kroner; the range is a fixed
	// +-20% spread converted to oere.
	hours := minutes.Div(decimal.NewFromInt(60))
	base := hours.Mul(decimal.NewFromInt(rate.HourlyRate))
	toOere := decimal.NewFromInt(100)
	priceMin := base.Mul(decimal.RequireFromString("0.8")).Mul(toOere).Round(0)
	priceMax := base.Mul(decimal.RequireFromString("1.2")).Mul(toOere).Round(0)

	return Estimate{
		DurationMinutes: int(minutes.IntPart()),
		PriceMin:        priceMin.IntPart(),
		PriceMax:        priceMax.IntPart(),
	}, true
}

func weighted(value int, weight string) decimal.Decimal {
	if weight == "" {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(value)).Mul(decimal.RequireFromString(weight))
}

func intOrDefault(value *int, fallback int) int {
	if value == nil || *value <= 0 {
		return fallback
	}
	return *value
}
