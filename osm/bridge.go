// Package osm fetches points of interest from OpenStreetMap via the
// Overpass API. POIs near a detected parking site (shops, hotels, busy
// amenities) raise confidence that the site is actually in commercial use.
package osm

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/serjvanilla/go-overpass"

	"padmon/models"
)

type POI struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type Bridge struct {
	client overpass.Client
}

func NewBridge(endpoint string, timeout time.Duration) *Bridge {
	httpClient := &http.Client{Timeout: timeout}
	client := overpass.NewWithSettings(endpoint, 1, httpClient)
	return &Bridge{client: client}
}

// ParkingPOIs queries businesses likely to generate parking demand inside
// the district's bounding box.
func (b *Bridge) ParkingPOIs(district models.District) ([]POI, error) {
	minLat, minLon, maxLat, maxLon := boundingBox(district)
	bbox := fmt.Sprintf("%f,%f,%f,%f", minLat, minLon, maxLat, maxLon)
	query := fmt.Sprintf(`
		[out:json][timeout:25];
		(
			node["shop"~"supermarket|convenience|mall"](%s);
			way["shop"~"supermarket|convenience|mall"](%s);
			node["amenity"~"bank|restaurant|fast_food|cafe|hospital"](%s);
			way["amenity"~"bank|restaurant|fast_food|cafe|hospital"](%s);
			node["tourism"~"hotel|guest_house"](%s);
			way["tourism"~"hotel|guest_house"](%s);
		);
		out body;
		>;
		out skel qt;
	`, bbox, bbox, bbox, bbox, bbox, bbox)

	result, err := b.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	var pois []POI
	for _, node := range result.Nodes {
		if len(node.Tags) == 0 {
			continue
		}
		pois = append(pois, POI{
			Name:     poiName(node.Tags),
			Category: poiCategory(node.Tags),
			Lat:      node.Lat,
			Lon:      node.Lon,
		})
	}
	for _, way := range result.Ways {
		if len(way.Tags) == 0 || len(way.Nodes) == 0 {
			continue
		}
		var lat, lon float64
		for _, n := range way.Nodes {
			lat += n.Lat
			lon += n.Lon
		}
		pois = append(pois, POI{
			Name:     poiName(way.Tags),
			Category: poiCategory(way.Tags),
			Lat:      lat / float64(len(way.Nodes)),
			Lon:      lon / float64(len(way.Nodes)),
		})
	}
	return pois, nil
}

// CountNear returns how many POIs fall within radiusM of a point.
func CountNear(pois []POI, lat, lon, radiusM float64) int {
	count := 0
	for _, p := range pois {
		dLat := (p.Lat - lat) * 111320
		dLon := (p.Lon - lon) * 111320 * math.Cos(lat*math.Pi/180)
		if math.Sqrt(dLat*dLat+dLon*dLon) <= radiusM {
			count++
		}
	}
	return count
}

func boundingBox(d models.District) (minLat, minLon, maxLat, maxLon float64) {
	dLat := d.RadiusM / 111320
	dLon := d.RadiusM / (111320 * math.Cos(d.Lat*math.Pi/180))
	return d.Lat - dLat, d.Lon - dLon, d.Lat + dLat, d.Lon + dLon
}

func poiName(tags map[string]string) string {
	if name, ok := tags["name"]; ok {
		return name
	}
	return "Bisnis Ritel/Layanan"
}

func poiCategory(tags map[string]string) string {
	for _, key := range []string{"shop", "amenity", "tourism"} {
		if v, ok := tags[key]; ok {
			return v
		}
	}
	return "business"
}
