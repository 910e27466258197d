package propertyController

import (
	"context"
	"testing"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func TestValidate(t *testing.T) {
	controller := &PropertyController{log: logger.New("propertyController")}

	valid := PropertyRequest{
		Name:    "Hjemme",
		Address: "Storgata 1, Oslo",
		Type:    string(PropertyApartment),
	}

	tests := []struct {
		name    string
		mutate  func(r *PropertyRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(r *PropertyRequest) {},
		},
		{
			name:    "missing name",
			mutate:  func(r *PropertyRequest) { r.Name = "  " },
			wantErr: true,
		},
		{
			name:    "missing address",
			mutate:  func(r *PropertyRequest) { r.Address = "" },
			wantErr: true,
		},
		{
			name:    "unknown type",
			mutate:  func(r *PropertyRequest) { r.Type = "castle" },
			wantErr: true,
		},
		{
			name:    "negative rooms",
			mutate:  func(r *PropertyRequest) { r.Rooms = intPtr(-1) },
			wantErr: true,
		},
		{
			name:    "square meters out of range",
			mutate:  func(r *PropertyRequest) { r.SquareMeters = intPtr(10001) },
			wantErr: true,
		},
		{
			name:   "boundary values accepted",
			mutate: func(r *PropertyRequest) { r.Windows = intPtr(0); r.Floors = intPtr(10000) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := valid
			tt.mutate(&request)

			err := controller.validate(&request)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApply_SanitizesInput(t *testing.T) {
	controller := &PropertyController{log: logger.New("propertyController")}

	request := PropertyRequest{
		Name:    "  Hytta <script>alert(1)</script>  ",
		Address: "Fjellveien 12",
		Type:    string(PropertyCabin),
		Notes:   "javascript:alert(1) ring ved ankomst",
		HasPets: true,
	}

	var property Property
	controller.apply(&property, &request)

	assert.NotContains(t, property.Name, "<")
	assert.NotContains(t, property.Name, ">")
	assert.NotContains(t, property.Notes, "javascript:")
	assert.Equal(t, PropertyCabin, property.Type)
	assert.True(t, property.HasPets)
}

func TestCreate_RejectsInvalidBeforeRepo(t *testing.T) {
	// Repo is nil, so reaching it would panic. Validation failures must
	// return before that.
	controller := &PropertyController{log: logger.New("propertyController")}
	user := &User{}

	_, err := controller.Create(context.Background(), user, &PropertyRequest{
		Name:    "Hjemme",
		Address: "Storgata 1",
		Type:    "not-a-type",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
