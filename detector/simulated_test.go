package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padmon/assessment"
)

func TestSimulatedIsDeterministic(t *testing.T) {
	a := assessment.Default()
	s := NewSimulated(a)
	district := a.Districts["Cakranegara"]
	ctx := context.Background()

	first, err := s.DetectParking(ctx, district, 2024)
	require.NoError(t, err)
	second, err := s.DetectParking(ctx, district, 2024)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changes1, err := s.DetectLandChanges(ctx, district, 2020, 2024)
	require.NoError(t, err)
	changes2, err := s.DetectLandChanges(ctx, district, 2020, 2024)
	require.NoError(t, err)
	assert.Equal(t, changes1, changes2)

	buildings1, err := s.DetectBuildingChanges(ctx, district, 2020, 2024)
	require.NoError(t, err)
	buildings2, err := s.DetectBuildingChanges(ctx, district, 2020, 2024)
	require.NoError(t, err)
	assert.Equal(t, buildings1, buildings2)
}

func TestSimulatedVariesByRequestKey(t *testing.T) {
	a := assessment.Default()
	s := NewSimulated(a)
	ctx := context.Background()

	cakranegara, err := s.DetectParking(ctx, a.Districts["Cakranegara"], 2024)
	require.NoError(t, err)
	ampenan, err := s.DetectParking(ctx, a.Districts["Ampenan"], 2024)
	require.NoError(t, err)
	assert.NotEqual(t, cakranegara, ampenan)

	lastYear, err := s.DetectParking(ctx, a.Districts["Cakranegara"], 2023)
	require.NoError(t, err)
	assert.NotEqual(t, cakranegara, lastYear)
}

func TestSimulatedParkingShape(t *testing.T) {
	a := assessment.Default()
	s := NewSimulated(a)
	district := a.Districts["Mataram"]

	sites, err := s.DetectParking(context.Background(), district, 2024)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(sites), 10)
	assert.LessOrEqual(t, len(sites), 15)

	for _, site := range sites {
		assert.NotEmpty(t, site.Id)
		assert.GreaterOrEqual(t, site.AreaM2, a.Thresholds.MinParkingAreaM2)
		assert.LessOrEqual(t, site.AreaM2, a.Thresholds.MaxParkingAreaM2)
		assert.InDelta(t, district.Lat, site.Lat, 0.011)
		assert.InDelta(t, district.Lon, site.Lon, 0.011)
		assert.Equal(t, site.Capacity.Motor+site.Capacity.Mobil, site.Capacity.Total)
		_, _, err := a.Utilization(site.SiteType)
		assert.NoError(t, err)
		require.Len(t, site.Ring, 5)
		assert.Equal(t, site.Ring[0], site.Ring[4])
	}
}

func TestSimulatedLandChangesShape(t *testing.T) {
	a := assessment.Default()
	s := NewSimulated(a)

	changes, err := s.DetectLandChanges(context.Background(), a.Districts["Sandubaya"], 2020, 2024)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(changes), 8)
	assert.LessOrEqual(t, len(changes), 12)

	for _, change := range changes {
		assert.NotEqual(t, change.FromClass, change.ToClass)
		assert.GreaterOrEqual(t, change.AreaM2, a.Thresholds.MinChangeAreaM2)
		// detection only; valuation fields stay empty for the estimator
		assert.Empty(t, change.Priority)
		assert.Zero(t, change.EstimatedPBB)
	}
}

func TestSimulatedBuildingChangesShape(t *testing.T) {
	a := assessment.Default()
	s := NewSimulated(a)

	changes, err := s.DetectBuildingChanges(context.Background(), a.Districts["Sekarbela"], 2020, 2024)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(changes), 10)

	for _, b := range changes {
		assert.Greater(t, b.AreaIncrease, 0.0)
		assert.InDelta(t, b.OldAreaM2+b.AreaIncrease, b.NewAreaM2, 0.2)
		assert.NotEmpty(t, b.ChangeTypes)
		if b.HeightIncrease > 0 {
			assert.Contains(t, b.ChangeTypes, "height_increase")
			assert.True(t, b.NeedsFieldVisit)
		}
		if b.AreaIncrease > 50 {
			assert.True(t, b.NeedsFieldVisit)
		}
	}
}
