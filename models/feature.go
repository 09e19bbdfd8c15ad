package models

// Ring is a closed polygon ring as [lon, lat] pairs.
type Ring [][2]float64

// Capacity holds estimated parking slots per vehicle class.
type Capacity struct {
	Motor int `json:"motor" bson:"motor"`
	Mobil int `json:"mobil" bson:"mobil"`
	Total int `json:"total" bson:"total"`
}

// ParkingSite is a detected parking area with its retribution potential.
// Monetary fields are filled by the estimator, not by the detection source.
type ParkingSite struct {
	Id             string   `json:"id" bson:"id"`
	Lat            float64  `json:"lat" bson:"lat"`
	Lon            float64  `json:"lon" bson:"lon"`
	AreaM2         float64  `json:"area_m2" bson:"area_m2"`
	SiteType       string   `json:"site_type" bson:"site_type"`
	Capacity       Capacity `json:"estimated_capacity" bson:"estimated_capacity"`
	NearbyPOI      int      `json:"nearby_poi" bson:"nearby_poi"`
	RevenueDaily   float64  `json:"revenue_daily" bson:"revenue_daily"`
	RevenueMonthly float64  `json:"revenue_monthly" bson:"revenue_monthly"`
	RevenueAnnual  float64  `json:"revenue_annual" bson:"revenue_annual"`
	OccupancyDaily float64  `json:"occupancy_daily" bson:"occupancy_daily"`
	Ring           Ring     `json:"coordinates" bson:"coordinates"`
}

// LandChange is a land-cover transition between the two analysis years.
type LandChange struct {
	Id           string  `json:"id" bson:"id"`
	Lat          float64 `json:"lat" bson:"lat"`
	Lon          float64 `json:"lon" bson:"lon"`
	AreaM2       float64 `json:"area_m2" bson:"area_m2"`
	FromClass    string  `json:"from_class" bson:"from_class"`
	ToClass      string  `json:"to_class" bson:"to_class"`
	Priority     string  `json:"priority" bson:"priority"`
	EstimatedPBB float64 `json:"estimated_pbb" bson:"estimated_pbb"`
	Verified     bool    `json:"verified" bson:"verified"`
	Confidence   float64 `json:"confidence" bson:"confidence"`
	Ring         Ring    `json:"coordinates" bson:"coordinates"`
}

// BuildingChange is a detected footprint or height change of a known building.
type BuildingChange struct {
	Id              string   `json:"id" bson:"id"`
	Lat             float64  `json:"lat" bson:"lat"`
	Lon             float64  `json:"lon" bson:"lon"`
	OldAreaM2       float64  `json:"old_area" bson:"old_area"`
	NewAreaM2       float64  `json:"new_area" bson:"new_area"`
	AreaIncrease    float64  `json:"area_increase" bson:"area_increase"`
	OldHeightM      float64  `json:"old_height" bson:"old_height"`
	NewHeightM      float64  `json:"new_height" bson:"new_height"`
	HeightIncrease  float64  `json:"height_increase" bson:"height_increase"`
	ChangeTypes     []string `json:"change_type" bson:"change_type"`
	TaxIncrease     float64  `json:"tax_increase" bson:"tax_increase"`
	NeedsFieldVisit bool     `json:"field_verification_needed" bson:"field_verification_needed"`
	Ring            Ring     `json:"coordinates" bson:"coordinates"`
}
