package domain

import (
	"testing"

	"transportease/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatIdentifiersUniquePerVehicle(t *testing.T) {
	for _, service := range []models.ServiceType{models.ServiceBus, models.ServiceTrain, models.ServiceCar} {
		layout, err := VehicleSeatMap(service)
		require.NoError(t, err, "layout for %s", service)

		seen := map[string]bool{}
		for _, seat := range layout.Seats() {
			assert.False(t, seen[seat], "seat %s duplicated in %s layout", seat, service)
			seen[seat] = true
		}
		assert.NotEmpty(t, seen)
	}
}

func TestCarDriverCellIsNotSelectable(t *testing.T) {
	layout, err := SeatMapFor(models.ServiceCar, "")
	require.NoError(t, err)

	assert.False(t, layout.Has(CellDriver))
	assert.Equal(t, []string{"A1", "A2", "B1", "B2"}, layout.Seats())
}

func TestTrainCompartmentSelection(t *testing.T) {
	c1, err := SeatMapFor(models.ServiceTrain, "c1")
	require.NoError(t, err)
	assert.True(t, c1.Has("A1"))
	assert.False(t, c1.Has("D1"))

	c2, err := SeatMapFor(models.ServiceTrain, "c2")
	require.NoError(t, err)
	assert.True(t, c2.Has("D1"))
	assert.False(t, c2.Has("A1"))

	// Empty compartment defaults to the first one.
	def, err := SeatMapFor(models.ServiceTrain, "")
	require.NoError(t, err)
	assert.Equal(t, c1, def)

	_, err = SeatMapFor(models.ServiceTrain, "c9")
	assert.True(t, IsNotFound(err))
}

func TestTrainVehicleMapSpansAllCompartments(t *testing.T) {
	full, err := VehicleSeatMap(models.ServiceTrain)
	require.NoError(t, err)

	assert.True(t, full.Has("A1"))
	assert.True(t, full.Has("F8"))
	assert.Len(t, full.Seats(), 48)
}

func TestSeatMapForUnknownService(t *testing.T) {
	_, err := SeatMapFor(models.ServiceType("Boat"), "")
	assert.True(t, IsValidation(err))
}
