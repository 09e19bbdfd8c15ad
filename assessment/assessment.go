package assessment

import (
	"padmon/models"
)

// Vehicle classes recognized by the parking tariff table.
const (
	VehicleMotor = "motor"
	VehicleMobil = "mobil"
	VehicleBus   = "bus"
)

// Simplified land-cover classes used by change detection.
const (
	ClassWater      = "water"
	ClassVegetation = "vegetation"
	ClassCrops      = "crops"
	ClassBuilt      = "built"
	ClassBare       = "bare"
)

// VehicleTariff holds retribution rates for one vehicle class.
// Monthly >= daily >= hourly is expected but not enforced.
type VehicleTariff struct {
	Hourly  float64 `yaml:"hourly" json:"hourly"`
	Daily   float64 `yaml:"daily" json:"daily"`
	Monthly float64 `yaml:"monthly" json:"monthly"`
}

// Thresholds are detection and classification cut-offs.
type Thresholds struct {
	SignificantChangeAreaM2 float64 `yaml:"significant_change_area_m2" json:"significant_change_area_m2"`
	MinParkingAreaM2        float64 `yaml:"min_parking_area_m2" json:"min_parking_area_m2"`
	MaxParkingAreaM2        float64 `yaml:"max_parking_area_m2" json:"max_parking_area_m2"`
	MinBuildingAreaM2       float64 `yaml:"min_building_area_m2" json:"min_building_area_m2"`
	MinChangeAreaM2         float64 `yaml:"min_change_area_m2" json:"min_change_area_m2"`
	ChangeConfidence        float64 `yaml:"change_confidence" json:"change_confidence"`
}

// Assessment is the full set of valuation tables for a session. Constructed
// once at startup, passed explicitly to the estimator and classifier, and
// never mutated afterwards.
type Assessment struct {
	ParkingTariff      map[string]VehicleTariff   `yaml:"parking_tariff" json:"parking_tariff"`
	ParkingUtilization map[string]float64         `yaml:"parking_utilization" json:"parking_utilization"`
	ParkingHours       map[string]int             `yaml:"parking_hours" json:"parking_hours"`
	PBBRate            map[string]float64         `yaml:"pbb_rate" json:"pbb_rate"`
	NJOPZone           map[string]float64         `yaml:"njop_zone" json:"njop_zone"`
	Districts          map[string]models.District `yaml:"districts" json:"districts"`
	Thresholds         Thresholds                 `yaml:"thresholds" json:"thresholds"`
}

// Default returns the built-in tables for Kota Mataram. The figures are the
// BKD working values; a YAML file given to Load replaces them wholesale.
func Default() *Assessment {
	return &Assessment{
		ParkingTariff: map[string]VehicleTariff{
			VehicleMotor: {Hourly: 2000, Daily: 10000, Monthly: 50000},
			VehicleMobil: {Hourly: 5000, Daily: 25000, Monthly: 150000},
			VehicleBus:   {Hourly: 10000, Daily: 50000, Monthly: 300000},
		},
		ParkingUtilization: map[string]float64{
			"mall":        0.7,
			"pasar":       0.8,
			"perkantoran": 0.6,
			"hotel":       0.5,
			"umum":        0.4,
		},
		ParkingHours: map[string]int{
			"mall":        12,
			"pasar":       10,
			"perkantoran": 9,
			"hotel":       24,
			"umum":        12,
		},
		PBBRate: map[string]float64{
			"residential": 0.1,
			"commercial":  0.2,
			"industrial":  0.3,
			"mixed_use":   0.15,
		},
		NJOPZone: map[string]float64{
			"pusat_kota": 3000000,
			"semi_pusat": 2000000,
			"pinggiran":  1000000,
			"rural":      500000,
		},
		Districts: map[string]models.District{
			"Ampenan":     {Name: "Ampenan", Code: "010", BPSName: "AMPENAN", Lat: -8.5833, Lon: 116.0942, RadiusM: 2000, Zone: "semi_pusat"},
			"Cakranegara": {Name: "Cakranegara", Code: "020", BPSName: "CAKRANEGARA", Lat: -8.5833, Lon: 116.1167, RadiusM: 2000, Zone: "pusat_kota"},
			"Mataram":     {Name: "Mataram", Code: "030", BPSName: "MATARAM", Lat: -8.5667, Lon: 116.1167, RadiusM: 2000, Zone: "pusat_kota"},
			"Selaparang":  {Name: "Selaparang", Code: "040", BPSName: "SELAPARANG", Lat: -8.5833, Lon: 116.1333, RadiusM: 2000, Zone: "semi_pusat"},
			"Sekarbela":   {Name: "Sekarbela", Code: "050", BPSName: "SEKARBELA", Lat: -8.5667, Lon: 116.0833, RadiusM: 2000, Zone: "pinggiran"},
			"Sandubaya":   {Name: "Sandubaya", Code: "060", BPSName: "SANDUBAYA", Lat: -8.5500, Lon: 116.1333, RadiusM: 2000, Zone: "pinggiran"},
		},
		Thresholds: Thresholds{
			SignificantChangeAreaM2: 500,
			MinParkingAreaM2:        100,
			MaxParkingAreaM2:        10000,
			MinBuildingAreaM2:       20,
			MinChangeAreaM2:         50,
			ChangeConfidence:        0.7,
		},
	}
}

// Tariff returns the parking tariff for a vehicle class.
func (a *Assessment) Tariff(vehicleClass string) (VehicleTariff, error) {
	t, ok := a.ParkingTariff[vehicleClass]
	if !ok {
		return VehicleTariff{}, &UnknownClassError{Kind: "vehicle", Name: vehicleClass}
	}
	return t, nil
}

// Rate returns the PBB rate (percent of NJOP) for a land-use class.
func (a *Assessment) Rate(landUseClass string) (float64, error) {
	r, ok := a.PBBRate[landUseClass]
	if !ok {
		return 0, &UnknownClassError{Kind: "land-use", Name: landUseClass}
	}
	return r, nil
}

// NJOP returns the assessed value per m² for a zone.
func (a *Assessment) NJOP(zone string) (float64, error) {
	v, ok := a.NJOPZone[zone]
	if !ok {
		return 0, &UnknownClassError{Kind: "zone", Name: zone}
	}
	return v, nil
}

// District resolves a district by catalog name.
func (a *Assessment) District(name string) (models.District, error) {
	d, ok := a.Districts[name]
	if !ok {
		return models.District{}, &UnknownClassError{Kind: "district", Name: name}
	}
	return d, nil
}

// Utilization returns occupancy share and operating hours for a site type.
func (a *Assessment) Utilization(siteType string) (float64, int, error) {
	u, ok := a.ParkingUtilization[siteType]
	if !ok {
		return 0, 0, &UnknownClassError{Kind: "site", Name: siteType}
	}
	h, ok := a.ParkingHours[siteType]
	if !ok {
		return 0, 0, &UnknownClassError{Kind: "site", Name: siteType}
	}
	return u, h, nil
}
