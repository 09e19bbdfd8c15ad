package assessment

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesAreValid(t *testing.T) {
	a := Default()
	require.NoError(t, a.Validate())
	assert.Len(t, a.Districts, 6)
	assert.Len(t, a.ParkingTariff, 3)
}

func TestLookups(t *testing.T) {
	a := Default()

	tariff, err := a.Tariff(VehicleMotor)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, tariff.Daily)

	rate, err := a.Rate("commercial")
	require.NoError(t, err)
	assert.Equal(t, 0.2, rate)

	njop, err := a.NJOP("pusat_kota")
	require.NoError(t, err)
	assert.Equal(t, 3000000.0, njop)

	district, err := a.District("Cakranegara")
	require.NoError(t, err)
	assert.Equal(t, "pusat_kota", district.Zone)

	utilization, hours, err := a.Utilization("pasar")
	require.NoError(t, err)
	assert.Equal(t, 0.8, utilization)
	assert.Equal(t, 10, hours)
}

func TestUnknownLookupsReturnTypedError(t *testing.T) {
	a := Default()

	_, err := a.Tariff("sepeda")
	var unknown *UnknownClassError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "vehicle", unknown.Kind)

	_, err = a.Rate("agricultural")
	assert.ErrorAs(t, err, &unknown)

	_, err = a.NJOP("luar_kota")
	assert.ErrorAs(t, err, &unknown)

	_, err = a.District("Senggigi")
	assert.ErrorAs(t, err, &unknown)

	_, _, err = a.Utilization("stadion")
	assert.ErrorAs(t, err, &unknown)
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	negativeTariff := Default()
	negativeTariff.ParkingTariff[VehicleBus] = VehicleTariff{Hourly: -1, Daily: 50000, Monthly: 300000}

	badUtilization := Default()
	badUtilization.ParkingUtilization["mall"] = 1.5

	missingHours := Default()
	delete(missingHours.ParkingHours, "hotel")

	badRate := Default()
	badRate.PBBRate["commercial"] = 120

	zeroNJOP := Default()
	zeroNJOP.NJOPZone["rural"] = 0

	danglingZone := Default()
	d := danglingZone.Districts["Ampenan"]
	d.Zone = "luar_kota"
	danglingZone.Districts["Ampenan"] = d

	zeroThreshold := Default()
	zeroThreshold.Thresholds.SignificantChangeAreaM2 = 0

	invertedBounds := Default()
	invertedBounds.Thresholds.MaxParkingAreaM2 = 50

	for name, a := range map[string]*Assessment{
		"negative tariff":    negativeTariff,
		"utilization above1": badUtilization,
		"missing hours":      missingHours,
		"rate above 100":     badRate,
		"zero njop":          zeroNJOP,
		"unknown zone":       danglingZone,
		"zero threshold":     zeroThreshold,
		"inverted bounds":    invertedBounds,
	} {
		assert.Error(t, a.Validate(), name)
	}
}

func TestLoadDefaultsOnEmptyPath(t *testing.T) {
	a, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), a)
}

func TestLoadReplacesTablesWholesale(t *testing.T) {
	content := `
parking_tariff:
  motor: {hourly: 1000, daily: 5000, monthly: 25000}
pbb_rate:
  residential: 0.1
njop_zone:
  pusat_kota: 4000000
districts:
  Mataram: {name: Mataram, kdkec: "030", nmkec: MATARAM, lat: -8.5667, lon: 116.1167, radius_m: 2000, zone: pusat_kota}
thresholds:
  significant_change_area_m2: 300
  min_parking_area_m2: 100
  max_parking_area_m2: 5000
`
	path := filepath.Join(t.TempDir(), "tables.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, a.ParkingTariff, 1)
	assert.Equal(t, 300.0, a.Thresholds.SignificantChangeAreaM2)

	// the file replaces, never merges: default classes are gone
	_, err = a.Tariff(VehicleBus)
	assert.Error(t, err)
}

func TestLoadFailsOnMissingOrInvalidFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("parking_tariff: [not, a, map]"), 0644))
	_, err = Load(path)
	assert.Error(t, err)

	// parseable but invalid tables are fatal too
	path = filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}
