package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"padmon/models"
)

// Live calls the external imagery analytics platform. The platform runs the
// actual classification and change detection; this adapter only carries the
// request and decodes the feature schema shared with the simulated source.
//
// Failures are returned to the caller as-is. There is no fallback to
// simulation here: a silent downgrade would present synthetic figures as
// real ones.
type Live struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewLive(endpoint, apiKey string, timeout time.Duration) *Live {
	return &Live{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	District  string  `json:"district"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	RadiusM   float64 `json:"radius_m"`
	Year      int     `json:"year,omitempty"`
	YearStart int     `json:"year_start,omitempty"`
	YearEnd   int     `json:"year_end,omitempty"`
}

func (l *Live) DetectParking(ctx context.Context, district models.District, year int) ([]models.ParkingSite, error) {
	var sites []models.ParkingSite
	req := detectRequest{District: district.Name, Lat: district.Lat, Lon: district.Lon, RadiusM: district.RadiusM, Year: year}
	if err := l.post(ctx, "/v1/parking/detect", req, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (l *Live) DetectLandChanges(ctx context.Context, district models.District, yearStart, yearEnd int) ([]models.LandChange, error) {
	var changes []models.LandChange
	req := detectRequest{District: district.Name, Lat: district.Lat, Lon: district.Lon, RadiusM: district.RadiusM, YearStart: yearStart, YearEnd: yearEnd}
	if err := l.post(ctx, "/v1/landuse/changes", req, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func (l *Live) DetectBuildingChanges(ctx context.Context, district models.District, yearStart, yearEnd int) ([]models.BuildingChange, error) {
	var changes []models.BuildingChange
	req := detectRequest{District: district.Name, Lat: district.Lat, Lon: district.Lon, RadiusM: district.RadiusM, YearStart: yearStart, YearEnd: yearEnd}
	if err := l.post(ctx, "/v1/buildings/changes", req, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func (l *Live) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal detection request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.endpoint+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.apiKey)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("imagery platform request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("imagery platform rejected credentials: status %d", resp.StatusCode)
	default:
		return fmt.Errorf("imagery platform returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode detection response: %w", err)
	}
	return nil
}
