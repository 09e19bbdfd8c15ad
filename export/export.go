// Package export renders completed analysis runs as delimited text,
// multi-sheet spreadsheets, and structured JSON reports. Exports are
// output-only; nothing here is read back.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"padmon/models"
)

// Report is one run prepared for export, with the run metadata the
// receiving office needs to judge the figures.
type Report struct {
	RunId       string                  `json:"run_id"`
	District    string                  `json:"district"`
	Zone        string                  `json:"zone"`
	YearStart   int                     `json:"year_start"`
	YearEnd     int                     `json:"year_end"`
	Mode        string                  `json:"mode"`
	GeneratedAt time.Time               `json:"export_date"`
	Summary     models.RunSummary       `json:"summary"`
	Parking     []models.ParkingSite    `json:"parking_areas"`
	LandChanges []models.LandChange     `json:"land_changes"`
	Buildings   []models.BuildingChange `json:"building_changes"`
}

func FromRun(run *models.AnalysisRun, now time.Time) *Report {
	return &Report{
		RunId:       run.Id,
		District:    run.District,
		Zone:        run.Zone,
		YearStart:   run.YearStart,
		YearEnd:     run.YearEnd,
		Mode:        run.Mode,
		GeneratedAt: now,
		Summary:     run.Summary,
		Parking:     run.Parking,
		LandChanges: run.LandChanges,
		Buildings:   run.BuildingChanges,
	}
}

// CSV renders one combined table across the three analysis domains.
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"domain", "id", "lat", "lon", "area_m2", "detail", "priority", "annual_amount"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range r.Parking {
		row := []string{
			"parking", p.Id,
			formatCoord(p.Lat), formatCoord(p.Lon),
			fmt.Sprintf("%.1f", p.AreaM2),
			fmt.Sprintf("%s capacity=%d", p.SiteType, p.Capacity.Total),
			"",
			fmt.Sprintf("%.0f", p.RevenueAnnual),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, c := range r.LandChanges {
		row := []string{
			"land_change", c.Id,
			formatCoord(c.Lat), formatCoord(c.Lon),
			fmt.Sprintf("%.1f", c.AreaM2),
			fmt.Sprintf("%s->%s", c.FromClass, c.ToClass),
			c.Priority,
			fmt.Sprintf("%.0f", c.EstimatedPBB),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	for _, b := range r.Buildings {
		row := []string{
			"building_change", b.Id,
			formatCoord(b.Lat), formatCoord(b.Lon),
			fmt.Sprintf("%.1f", b.NewAreaM2),
			fmt.Sprintf("area+%.1f height+%.1f", b.AreaIncrease, b.HeightIncrease),
			"",
			fmt.Sprintf("%.0f", b.TaxIncrease),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON renders the record list plus run metadata.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteFile writes data through a temp file and renames it into place, so
// an interrupted export never leaves a partial file that looks complete.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.5f", v)
}
