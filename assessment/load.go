package assessment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load builds the session tables. With an empty path the built-in defaults
// are used; otherwise the YAML file replaces them. A file that cannot be
// read or parsed is fatal: estimation must never run on partial tables.
func Load(path string) (*Assessment, error) {
	a := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading assessment tables: %w", err)
		}
		a = &Assessment{}
		if err = yaml.Unmarshal(data, a); err != nil {
			return nil, fmt.Errorf("parsing assessment tables: %w", err)
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate enforces the table invariants.
func (a *Assessment) Validate() error {
	if len(a.ParkingTariff) == 0 {
		return fmt.Errorf("parking tariff table is empty")
	}
	for class, t := range a.ParkingTariff {
		if t.Hourly < 0 || t.Daily < 0 || t.Monthly < 0 {
			return fmt.Errorf("parking tariff for %q has a negative rate", class)
		}
	}
	for siteType, u := range a.ParkingUtilization {
		if u < 0 || u > 1 {
			return fmt.Errorf("utilization for %q out of range: %v", siteType, u)
		}
		if _, ok := a.ParkingHours[siteType]; !ok {
			return fmt.Errorf("no operating hours for site type %q", siteType)
		}
	}
	if len(a.PBBRate) == 0 {
		return fmt.Errorf("PBB rate table is empty")
	}
	for class, rate := range a.PBBRate {
		if rate < 0 || rate > 100 {
			return fmt.Errorf("PBB rate for %q out of range: %v", class, rate)
		}
	}
	if len(a.NJOPZone) == 0 {
		return fmt.Errorf("NJOP zone table is empty")
	}
	for zone, value := range a.NJOPZone {
		if value <= 0 {
			return fmt.Errorf("NJOP for zone %q must be positive: %v", zone, value)
		}
	}
	for name, d := range a.Districts {
		if _, ok := a.NJOPZone[d.Zone]; !ok {
			return fmt.Errorf("district %q references unknown zone %q", name, d.Zone)
		}
	}
	if a.Thresholds.SignificantChangeAreaM2 <= 0 {
		return fmt.Errorf("significant change area threshold must be positive")
	}
	if a.Thresholds.MaxParkingAreaM2 <= a.Thresholds.MinParkingAreaM2 {
		return fmt.Errorf("parking area bounds are inverted")
	}
	return nil
}
