// Package detector produces raw feature collections for a district and
// period. Sources only describe geometry and physical attributes; valuation
// and prioritization happen downstream so the pipeline never needs to know
// which source is active.
package detector

import (
	"context"
	"math"

	"padmon/models"
)

// Mode names for source selection.
const (
	ModeSimulated = "simulated"
	ModeLive      = "live"
)

type Source interface {
	DetectParking(ctx context.Context, district models.District, year int) ([]models.ParkingSite, error)
	DetectLandChanges(ctx context.Context, district models.District, yearStart, yearEnd int) ([]models.LandChange, error)
	DetectBuildingChanges(ctx context.Context, district models.District, yearStart, yearEnd int) ([]models.BuildingChange, error)
}

// squareRing builds a closed square ring around a centroid sized to the
// given footprint, in degrees.
func squareRing(lat, lon, areaM2 float64) models.Ring {
	const degPerMeter = 1.0 / 111000
	half := math.Sqrt(areaM2) * degPerMeter / 2
	return models.Ring{
		{lon - half, lat - half},
		{lon + half, lat - half},
		{lon + half, lat + half},
		{lon - half, lat + half},
		{lon - half, lat - half},
	}
}
