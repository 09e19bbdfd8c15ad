package detector

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"padmon/assessment"
	"padmon/estimator"
	"padmon/models"
)

// Simulated generates synthetic feature sets without any external service.
// Output is a pure function of (district, period): the generator is seeded
// from the request key, so demo and test runs reproduce exactly across
// machines and sessions.
type Simulated struct {
	tables *assessment.Assessment
}

func NewSimulated(tables *assessment.Assessment) *Simulated {
	return &Simulated{tables: tables}
}

func seedFor(parts ...string) int64 {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return int64(h.Sum64())
}

func (s *Simulated) DetectParking(_ context.Context, district models.District, year int) ([]models.ParkingSite, error) {
	r := rand.New(rand.NewSource(seedFor("parking", district.Name, fmt.Sprint(year))))
	count := 10 + r.Intn(6)
	sites := make([]models.ParkingSite, 0, count)
	for i := 0; i < count; i++ {
		lat := district.Lat + (r.Float64()*2-1)*0.01
		lon := district.Lon + (r.Float64()*2-1)*0.01
		area := 150 + r.Float64()*1850
		sites = append(sites, models.ParkingSite{
			Id:       fmt.Sprintf("PKR-%03d", i+1),
			Lat:      lat,
			Lon:      lon,
			AreaM2:   roundTo(area, 1),
			SiteType: estimator.SiteTypeForArea(area),
			Capacity: estimator.CapacityForArea(area),
			Ring:     squareRing(lat, lon, area),
		})
	}
	return sites, nil
}

// transition set mirrors the change types observed in the field study.
var simulatedTransitions = [][2]string{
	{assessment.ClassVegetation, assessment.ClassBuilt},
	{assessment.ClassBare, assessment.ClassBuilt},
	{assessment.ClassCrops, assessment.ClassBuilt},
	{assessment.ClassVegetation, assessment.ClassCrops},
}

func (s *Simulated) DetectLandChanges(_ context.Context, district models.District, yearStart, yearEnd int) ([]models.LandChange, error) {
	r := rand.New(rand.NewSource(seedFor("landchange", district.Name, fmt.Sprint(yearStart), fmt.Sprint(yearEnd))))
	count := 8 + r.Intn(5)
	changes := make([]models.LandChange, 0, count)
	for i := 0; i < count; i++ {
		tr := simulatedTransitions[r.Intn(len(simulatedTransitions))]
		lat := district.Lat + (r.Float64()*2-1)*0.008
		lon := district.Lon + (r.Float64()*2-1)*0.008
		area := 200 + r.Float64()*1300
		changes = append(changes, models.LandChange{
			Id:        fmt.Sprintf("CHG-%03d", i+1),
			Lat:       lat,
			Lon:       lon,
			AreaM2:    roundTo(area, 1),
			FromClass: tr[0],
			ToClass:   tr[1],
			Ring:      squareRing(lat, lon, area),
		})
	}
	return changes, nil
}

func (s *Simulated) DetectBuildingChanges(_ context.Context, district models.District, yearStart, yearEnd int) ([]models.BuildingChange, error) {
	r := rand.New(rand.NewSource(seedFor("building", district.Name, fmt.Sprint(yearStart), fmt.Sprint(yearEnd))))
	heightSteps := []float64{0, 0, 0, 3, 6, 9}
	count := 10 + r.Intn(6)
	changes := make([]models.BuildingChange, 0, count)
	for i := 0; i < count; i++ {
		lat := district.Lat + (r.Float64()*2-1)*0.008
		lon := district.Lon + (r.Float64()*2-1)*0.008
		oldArea := 100 + r.Float64()*300
		areaIncrease := 20 + r.Float64()*130
		newArea := oldArea + areaIncrease
		oldHeight := 3 + r.Float64()*9
		heightIncrease := heightSteps[r.Intn(len(heightSteps))]

		var kinds []string
		if areaIncrease > 10 {
			kinds = append(kinds, "area_expansion")
		}
		if heightIncrease > 0 {
			kinds = append(kinds, "height_increase")
		}
		changes = append(changes, models.BuildingChange{
			Id:              fmt.Sprintf("BLD-%03d", i+1),
			Lat:             lat,
			Lon:             lon,
			OldAreaM2:       roundTo(oldArea, 1),
			NewAreaM2:       roundTo(newArea, 1),
			AreaIncrease:    roundTo(areaIncrease, 1),
			OldHeightM:      roundTo(oldHeight, 1),
			NewHeightM:      roundTo(oldHeight+heightIncrease, 1),
			HeightIncrease:  heightIncrease,
			ChangeTypes:     kinds,
			NeedsFieldVisit: areaIncrease > 50 || heightIncrease > 0,
			Ring:            squareRing(lat, lon, newArea),
		})
	}
	return changes, nil
}

func roundTo(v float64, decimals int) float64 {
	scale := 1.0
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	return float64(int64(v*scale+0.5)) / scale
}
