package services

import (
	"testing"

	. "renhold/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEstimatorService_Estimate(t *testing.T) {
	estimator := NewEstimatorService()

	tests := []struct {
		name         string
		property     Property
		serviceType  string
		wantDuration int
		wantPriceMin int64
		wantPriceMax int64
	}{
		{
			name: "standard cleaning for a four room apartment",
			property: Property{
				Rooms:        intPtr(4),
				Bathrooms:    intPtr(2),
				SquareMeters: intPtr(120),
			},
			serviceType:  "standard",
			wantDuration: 148,
			wantPriceMin: 88800,
			wantPriceMax: 133200,
		},
		{
			name:         "window cleaning with default window count",
			property:     Property{},
			serviceType:  "vindusvask",
			wantDuration: 50,
			wantPriceMin: 23333,
			wantPriceMax: 35000,
		},
		{
			name: "single window still billed at the minimum duration",
			property: Property{
				Windows: intPtr(1),
			},
			serviceType:  "vindusvask",
			wantDuration: 30,
			wantPriceMin: 14000,
			wantPriceMax: 21000,
		},
		{
			name: "commercial cleaning scales on floor area",
			property: Property{
				Rooms:        intPtr(3),
				SquareMeters: intPtr(200),
			},
			serviceType:  "naeringsvask",
			wantDuration: 345,
			wantPriceMin: 321540,
			wantPriceMax: 482310,
		},
		{
			name:         "move-out cleaning with all defaults",
			property:     Property{},
			serviceType:  "flyttevask",
			wantDuration: 184,
			wantPriceMin: 171488,
			wantPriceMax: 257232,
		},
		{
			name:         "seasonal cleaning with all defaults",
			property:     Property{},
			serviceType:  "sesongvask",
			wantDuration: 125,
			wantPriceMin: 83333,
			wantPriceMax: 125000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate, ok := estimator.Estimate(&tt.property, tt.serviceType)
			require.True(t, ok)

			assert.Equal(t, tt.wantDuration, estimate.DurationMinutes)
			assert.Equal(t, tt.wantPriceMin, estimate.PriceMin)
			assert.Equal(t, tt.wantPriceMax, estimate.PriceMax)
		})
	}
}

func TestEstimatorService_Estimate_UnknownService(t *testing.T) {
	estimator := NewEstimatorService()

	_, ok := estimator.Estimate(&Property{}, "dugnadsvask")
	assert.False(t, ok)

	assert.False(t, estimator.KnownService("dugnadsvask"))
	assert.True(t, estimator.KnownService("standard"))
}

func TestEstimatorService_Estimate_Deterministic(t *testing.T) {
	estimator := NewEstimatorService()
	property := Property{
		Rooms:        intPtr(7),
		Bathrooms:    intPtr(3),
		SquareMeters: intPtr(240),
		Windows:      intPtr(22),
	}

	for serviceType := range serviceCatalog {
		first, ok := estimator.Estimate(&property, serviceType)
		require.True(t, ok, serviceType)

		second, ok := estimator.Estimate(&property, serviceType)
		require.True(t, ok, serviceType)

		assert.Equal(t, first, second, serviceType)
	}
}

func TestEstimatorService_Estimate_Bounds(t *testing.T) {
	estimator := NewEstimatorService()

	properties := []Property{
		{},
		{Rooms: intPtr(1), Bathrooms: intPtr(1), SquareMeters: intPtr(10), Windows: intPtr(1)},
		{Rooms: intPtr(12), Bathrooms: intPtr(6), SquareMeters: intPtr(900), Windows: intPtr(80)},
		{Rooms: intPtr(0), SquareMeters: intPtr(-5)},
	}

	for _, property := range properties {
		for serviceType := range serviceCatalog {
			estimate, ok := estimator.Estimate(&property, serviceType)
			require.True(t, ok, serviceType)

			assert.GreaterOrEqual(t, estimate.DurationMinutes, minimumDurationMinutes, serviceType)
			assert.LessOrEqual(t, estimate.PriceMin, estimate.PriceMax, serviceType)
			assert.Positive(t, estimate.PriceMin, serviceType)
		}
	}
}
