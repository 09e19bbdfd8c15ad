package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padmon/assessment"
)

func TestParking(t *testing.T) {
	a := assessment.Default()
	capacity := map[string]int{
		assessment.VehicleMotor: 20,
		assessment.VehicleMobil: 5,
	}
	est, err := Parking(capacity, a)
	require.NoError(t, err)
	assert.Equal(t, 325000.0, est.Daily)
	assert.Equal(t, 1750000.0, est.Monthly)
	assert.Equal(t, est.Monthly*12, est.Annual)
}

func TestParkingHorizonsAreIndependent(t *testing.T) {
	a := assessment.Default()
	tariff := a.ParkingTariff[assessment.VehicleMotor]
	tariff.Monthly *= 2
	a.ParkingTariff[assessment.VehicleMotor] = tariff

	capacity := map[string]int{assessment.VehicleMotor: 10}
	est, err := Parking(capacity, a)
	require.NoError(t, err)

	// doubling the monthly rate must not move the daily figure
	assert.Equal(t, 100000.0, est.Daily)
	assert.Equal(t, 1000000.0, est.Monthly)
}

func TestParkingUnknownVehicleClassFailsWhole(t *testing.T) {
	a := assessment.Default()
	capacity := map[string]int{
		assessment.VehicleMotor: 20,
		"becak":                 3,
	}
	est, err := Parking(capacity, a)
	assert.Error(t, err)
	assert.Nil(t, est)
}

func TestParkingOccupancy(t *testing.T) {
	a := assessment.Default()
	capacity := map[string]int{assessment.VehicleMotor: 10}
	daily, err := ParkingOccupancy(capacity, "pasar", a)
	require.NoError(t, err)
	// 10 slots × 0.8 × 2000/h × 10h
	assert.Equal(t, 160000.0, daily)

	_, err = ParkingOccupancy(capacity, "stadion", a)
	assert.Error(t, err)
}

func TestCapacityForArea(t *testing.T) {
	c := CapacityForArea(1000)
	assert.Equal(t, 210, c.Motor)
	assert.Equal(t, 22, c.Mobil)
	assert.Equal(t, 232, c.Total)
}

func TestSiteTypeForArea(t *testing.T) {
	assert.Equal(t, "umum", SiteTypeForArea(150))
	assert.Equal(t, "perkantoran", SiteTypeForArea(200))
	assert.Equal(t, "pasar", SiteTypeForArea(500))
	assert.Equal(t, "mall", SiteTypeForArea(1000))
}

func TestPBBImpact(t *testing.T) {
	a := assessment.Default()
	impact, err := PBBImpact(50, "commercial", "pusat_kota", a)
	require.NoError(t, err)
	// 50 m² × 3,000,000 × 0.2%
	assert.Equal(t, 300000.0, impact)

	_, err = PBBImpact(50, "agricultural", "pusat_kota", a)
	assert.Error(t, err)
	_, err = PBBImpact(50, "commercial", "luar_kota", a)
	assert.Error(t, err)
}

func TestLandChangeImpactClassMapping(t *testing.T) {
	a := assessment.Default()

	fromVegetation, err := LandChangeImpact(assessment.ClassVegetation, 100, "pinggiran", a)
	require.NoError(t, err)
	fromCrops, err := LandChangeImpact(assessment.ClassCrops, 100, "pinggiran", a)
	require.NoError(t, err)

	// vegetation is valued commercial (0.2%), crops residential (0.1%)
	assert.Equal(t, 200000.0, fromVegetation)
	assert.Equal(t, 100000.0, fromCrops)
}

func TestBuildingImpact(t *testing.T) {
	a := assessment.Default()

	flat, err := BuildingImpact(100, 0, "commercial", "pusat_kota", a)
	require.NoError(t, err)
	assert.Equal(t, 600000.0, flat)

	raised, err := BuildingImpact(100, 5, "commercial", "pusat_kota", a)
	require.NoError(t, err)
	assert.Equal(t, 900000.0, raised)
}
