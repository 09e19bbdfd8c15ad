package detector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padmon/models"
)

func TestLiveDetectParking(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		var req detectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Mataram", req.District)
		assert.Equal(t, 2024, req.Year)

		_ = json.NewEncoder(w).Encode([]models.ParkingSite{
			{Id: "PKR-001", Lat: -8.56, Lon: 116.11, AreaM2: 420},
		})
	}))
	defer srv.Close()

	l := NewLive(srv.URL, "secret", time.Second)
	district := models.District{Name: "Mataram", Lat: -8.5667, Lon: 116.1167, RadiusM: 2000}
	sites, err := l.DetectParking(context.Background(), district, 2024)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "PKR-001", sites[0].Id)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/v1/parking/detect", gotPath)
}

func TestLiveRejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	l := NewLive(srv.URL, "wrong", time.Second)
	district := models.District{Name: "Mataram"}

	_, err := l.DetectParking(context.Background(), district, 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected credentials")

	_, err = l.DetectLandChanges(context.Background(), district, 2020, 2024)
	assert.Error(t, err)
	_, err = l.DetectBuildingChanges(context.Background(), district, 2020, 2024)
	assert.Error(t, err)
}

func TestLivePlatformError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	l := NewLive(srv.URL, "secret", time.Second)
	_, err := l.DetectLandChanges(context.Background(), models.District{Name: "Ampenan"}, 2020, 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestLiveUnreachable(t *testing.T) {
	l := NewLive("http://127.0.0.1:1", "secret", 200*time.Millisecond)
	_, err := l.DetectParking(context.Background(), models.District{Name: "Ampenan"}, 2024)
	assert.Error(t, err)
}
