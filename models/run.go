package models

import "time"

type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// AnalysisRun is one analysis invocation for a district and year window.
// Feature records are derived data, recomputed on every run and never
// mutated in place.
type AnalysisRun struct {
	Id              string           `json:"run_id" bson:"run_id"`
	District        string           `json:"district" bson:"district"`
	Zone            string           `json:"zone" bson:"zone"`
	YearStart       int              `json:"year_start" bson:"year_start"`
	YearEnd         int              `json:"year_end" bson:"year_end"`
	Mode            string           `json:"mode" bson:"mode"`
	Status          RunStatus        `json:"status" bson:"status"`
	Error           string           `json:"error,omitempty" bson:"error,omitempty"`
	Parking         []ParkingSite    `json:"parking_areas" bson:"parking_areas"`
	LandChanges     []LandChange     `json:"land_changes" bson:"land_changes"`
	BuildingChanges []BuildingChange `json:"building_changes" bson:"building_changes"`
	Summary         RunSummary       `json:"summary" bson:"summary"`
	CreatedAt       time.Time        `json:"created_at" bson:"created_at"`
}

func (r *AnalysisRun) DataType() string {
	return "analysis_run"
}

// RunSummary aggregates the monetary potential of a completed run.
type RunSummary struct {
	ParkingDaily     float64 `json:"parking_daily" bson:"parking_daily"`
	ParkingMonthly   float64 `json:"parking_monthly" bson:"parking_monthly"`
	ParkingAnnual    float64 `json:"parking_annual" bson:"parking_annual"`
	LandChangePBB    float64 `json:"land_change_pbb" bson:"land_change_pbb"`
	BuildingTax      float64 `json:"building_tax_increase" bson:"building_tax_increase"`
	HighPriority     int     `json:"high_priority_changes" bson:"high_priority_changes"`
	CriticalPriority int     `json:"critical_changes" bson:"critical_changes"`
}
