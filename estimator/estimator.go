// Package estimator converts detected features into monetary potential
// figures using the session assessment tables. All functions are pure and
// deterministic; errors abort the record instead of contributing zeros to
// aggregate totals.
package estimator

import (
	"math"

	"padmon/assessment"
	"padmon/models"
)

// ParkingEstimate is the retribution potential of one site per horizon.
// Daily and monthly are computed from their own tariff rates; the annual
// figure is the monthly one over twelve months.
type ParkingEstimate struct {
	Daily   float64
	Monthly float64
	Annual  float64
}

// Parking sums capacity × rate over all vehicle classes present in the
// capacity map. An unknown vehicle class fails the whole estimate.
func Parking(capacity map[string]int, a *assessment.Assessment) (*ParkingEstimate, error) {
	var est ParkingEstimate
	for class, slots := range capacity {
		t, err := a.Tariff(class)
		if err != nil {
			return nil, err
		}
		est.Daily += float64(slots) * t.Daily
		est.Monthly += float64(slots) * t.Monthly
	}
	est.Annual = est.Monthly * 12
	return &est, nil
}

// ParkingOccupancy is the occupancy-adjusted daily figure:
// capacity × hourly rate × utilization × operating hours for the site type.
func ParkingOccupancy(capacity map[string]int, siteType string, a *assessment.Assessment) (float64, error) {
	utilization, hours, err := a.Utilization(siteType)
	if err != nil {
		return 0, err
	}
	var daily float64
	for class, slots := range capacity {
		t, err := a.Tariff(class)
		if err != nil {
			return 0, err
		}
		daily += float64(slots) * utilization * t.Hourly * float64(hours)
	}
	return math.Round(daily), nil
}

// CapacityForArea estimates slot counts from the site footprint.
// 70% of the footprint is usable, split 60/40 between motor (2 m² per slot)
// and mobil (12.5 m² per slot).
func CapacityForArea(areaM2 float64) models.Capacity {
	usable := areaM2 * 0.7
	motor := int(usable * 0.6 / 2)
	mobil := int(usable * 0.4 / 12.5)
	return models.Capacity{Motor: motor, Mobil: mobil, Total: motor + mobil}
}

// SiteTypeForArea buckets a site by footprint size.
func SiteTypeForArea(areaM2 float64) string {
	switch {
	case areaM2 < 200:
		return "umum"
	case areaM2 < 500:
		return "perkantoran"
	case areaM2 < 1000:
		return "pasar"
	default:
		return "mall"
	}
}

// PBBImpact is the annual land-and-building tax delta for an area change:
// areaDelta × NJOP[zone] × rate[class] where the rate is a percentage.
func PBBImpact(areaDeltaM2 float64, landUseClass, zone string, a *assessment.Assessment) (float64, error) {
	rate, err := a.Rate(landUseClass)
	if err != nil {
		return 0, err
	}
	njop, err := a.NJOP(zone)
	if err != nil {
		return 0, err
	}
	return areaDeltaM2 * njop * rate / 100, nil
}

// LandChangeImpact values a land-cover transition as a new tax object.
// Conversions out of vegetation or bare ground are assumed commercial,
// anything else residential.
func LandChangeImpact(fromClass string, areaM2 float64, zone string, a *assessment.Assessment) (float64, error) {
	class := "residential"
	if fromClass == assessment.ClassVegetation || fromClass == assessment.ClassBare {
		class = "commercial"
	}
	return PBBImpact(areaM2, class, zone, a)
}

// BuildingImpact is the annual PBB increase for a building change. A height
// increase adds 10% per 10 m on top of the footprint delta.
func BuildingImpact(areaIncreaseM2, heightIncreaseM float64, landUseClass, zone string, a *assessment.Assessment) (float64, error) {
	impact, err := PBBImpact(areaIncreaseM2, landUseClass, zone, a)
	if err != nil {
		return 0, err
	}
	if heightIncreaseM > 0 {
		impact *= 1 + heightIncreaseM/10
	}
	return math.Round(impact), nil
}
