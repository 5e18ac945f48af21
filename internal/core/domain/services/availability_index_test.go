package services_test

import (
	"testing"
	"time"

	"fieldservice/internal/core/domain/model/technician"
	"fieldservice/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityIndex_Available(t *testing.T) {
	window := mustWindow(t, at(8, 0), at(10, 0))

	covering := newTechnician(t, 1, mustWindow(t, at(7, 0), at(12, 0)))
	exact := newTechnician(t, 2, mustWindow(t, at(8, 0), at(10, 0)))
	partial := newTechnician(t, 3, mustWindow(t, at(9, 0), at(12, 0)))
	none := newTechnician(t, 4)

	inactive := newTechnician(t, 5, mustWindow(t, at(7, 0), at(12, 0)))
	inactive.Deactivate()

	deletedAt := now
	deleted, err := technician.RestoreTechnician(6, "dni", "gone", technician.StatusActive, &deletedAt,
		newTechnician(t, 99, mustWindow(t, at(7, 0), at(12, 0))).Availabilities())
	require.NoError(t, err)

	got := services.NewAvailabilityIndex().Available(
		[]*technician.Technician{exact, covering, partial, none, inactive, deleted}, window)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID(), "input order is preserved")
	assert.Equal(t, int64(1), got[1].ID())
}

func TestAvailabilityIndex_EmptyIsNotAnError(t *testing.T) {
	window := mustWindow(t, at(8, 0), at(8, 0).Add(time.Hour))

	got := services.NewAvailabilityIndex().Available(nil, window)

	assert.Empty(t, got)
}
