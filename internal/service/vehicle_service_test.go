package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVehicles(t *testing.T) *VehicleService {
	t.Helper()
	return NewVehicleService(newTestDB(t), zerolog.Nop())
}

func TestAddVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("derives next oil change mileage", func(t *testing.T) {
		vehicles := newTestVehicles(t)

		vehicle, err := vehicles.AddVehicle(ctx, "sedan", 2019, 82000)
		require.NoError(t, err)
		assert.Equal(t, int64(87000), vehicle.NextOilChangeMileage)
		assert.Equal(t, time.Now().Format("2006-01-02"), vehicle.LastOilChangeDate)
		assert.NotZero(t, vehicle.ID)
	})

	t.Run("validation", func(t *testing.T) {
		vehicles := newTestVehicles(t)

		_, err := vehicles.AddVehicle(ctx, "", 2019, 1000)
		require.ErrorIs(t, err, ErrValidation)

		_, err = vehicles.AddVehicle(ctx, "sedan", 0, 1000)
		require.ErrorIs(t, err, ErrValidation)

		_, err = vehicles.AddVehicle(ctx, "sedan", 2019, -1)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestGetLatestVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the most recent registration", func(t *testing.T) {
		vehicles := newTestVehicles(t)

		_, err := vehicles.AddVehicle(ctx, "sedan", 2015, 120000)
		require.NoError(t, err)
		second, err := vehicles.AddVehicle(ctx, "pickup", 2022, 30000)
		require.NoError(t, err)

		latest, err := vehicles.GetLatestVehicle(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, "pickup", latest.CarType)
	})

	t.Run("none registered", func(t *testing.T) {
		vehicles := newTestVehicles(t)
		_, err := vehicles.GetLatestVehicle(ctx)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddTire(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and lists", func(t *testing.T) {
		vehicles := newTestVehicles(t)

		tire, err := vehicles.AddTire(ctx, "all-season", "2026-03-14", 60000)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-14", tire.InstallDate)

		tires, err := vehicles.ListTires(ctx)
		require.NoError(t, err)
		require.Len(t, tires, 1)
		assert.Equal(t, "all-season", tires[0].TireType)
	})

	t.Run("install date defaults to today", func(t *testing.T) {
		vehicles := newTestVehicles(t)

		tire, err := vehicles.AddTire(ctx, "winter", "", 40000)
		require.NoError(t, err)
		assert.Equal(t, time.Now().Format("2006-01-02"), tire.InstallDate)
	})

	t.Run("validation", func(t *testing.T) {
		vehicles := newTestVehicles(t)

		_, err := vehicles.AddTire(ctx, "", "2026-03-14", 60000)
		require.ErrorIs(t, err, ErrValidation)

		_, err = vehicles.AddTire(ctx, "winter", "2026-03-14", 0)
		require.ErrorIs(t, err, ErrValidation)

		_, err = vehicles.AddTire(ctx, "winter", "14.03.2026", 60000)
		require.ErrorIs(t, err, ErrValidation)
	})
}
