package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"padmon/assessment"
	"padmon/classifier"
	"padmon/detector"
	"padmon/estimator"
	"padmon/internal"
	"padmon/models"
	"padmon/osm"
	"padmon/utility"
	"padmon/validator"
)

// RunListener is notified when an analysis run starts and when it finishes
// either way.
type RunListener interface {
	OnRunStarted(run *models.AnalysisRun)
	OnRunCompleted(run *models.AnalysisRun)
	OnRunFailed(run *models.AnalysisRun)
}

// AnalysisService drives one detection → estimation → classification pass
// per request. Each invocation is independent; results live in the run
// record only.
type AnalysisService struct {
	tables    *assessment.Assessment
	sources   map[string]detector.Source
	verifier  *validator.Client
	bridge    *osm.Bridge
	database  internal.Database
	logger    internal.LogHandler
	listeners []RunListener

	// session store so exports work without a database
	mux  sync.Mutex
	runs map[string]*models.AnalysisRun
}

func NewAnalysisService(tables *assessment.Assessment, logger internal.LogHandler) *AnalysisService {
	return &AnalysisService{
		tables:  tables,
		sources: make(map[string]detector.Source),
		logger:  logger,
		runs:    make(map[string]*models.AnalysisRun),
	}
}

func (s *AnalysisService) RegisterSource(mode string, source detector.Source) {
	s.sources[mode] = source
}

func (s *AnalysisService) SetVerifier(verifier *validator.Client) {
	s.verifier = verifier
}

func (s *AnalysisService) SetBridge(bridge *osm.Bridge) {
	s.bridge = bridge
}

func (s *AnalysisService) SetDatabase(database internal.Database) {
	s.database = database
}

func (s *AnalysisService) AddListener(listener RunListener) {
	s.listeners = append(s.listeners, listener)
}

func (s *AnalysisService) Tables() *assessment.Assessment {
	return s.tables
}

// Analyze runs the full pipeline for one district and year window. An
// unknown identifier anywhere in estimation aborts the run; a failed run is
// stored with its error and never contributes figures.
func (s *AnalysisService) Analyze(ctx context.Context, districtName string, yearStart, yearEnd int, mode string) (*models.AnalysisRun, error) {
	district, err := s.tables.District(districtName)
	if err != nil {
		return nil, err
	}
	source, ok := s.sources[mode]
	if !ok {
		return nil, utility.Err(fmt.Sprintf("detection mode %q is not available", mode))
	}
	if yearEnd < yearStart {
		return nil, utility.Err("year window is inverted")
	}

	run := &models.AnalysisRun{
		Id:        utility.NewUUID(),
		District:  district.Name,
		Zone:      district.Zone,
		YearStart: yearStart,
		YearEnd:   yearEnd,
		Mode:      mode,
		Status:    models.RunPending,
		CreatedAt: time.Now().UTC(),
	}
	s.logger.FeatureEvent("analysis", run.Id, fmt.Sprintf("starting %s analysis for %s %d-%d", mode, district.Name, yearStart, yearEnd))
	for _, listener := range s.listeners {
		listener.OnRunStarted(run)
	}

	if err = s.analyze(ctx, run, district, source); err != nil {
		run.Status = models.RunFailed
		run.Error = err.Error()
		s.store(run)
		s.logger.Error(fmt.Sprintf("analysis %s failed", run.Id), err)
		for _, listener := range s.listeners {
			listener.OnRunFailed(run)
		}
		return nil, err
	}

	run.Status = models.RunCompleted
	s.store(run)
	s.logger.FeatureEvent("analysis", run.Id, fmt.Sprintf("completed: %d parking, %d land changes, %d building changes",
		len(run.Parking), len(run.LandChanges), len(run.BuildingChanges)))
	for _, listener := range s.listeners {
		listener.OnRunCompleted(run)
	}
	return run, nil
}

func (s *AnalysisService) analyze(ctx context.Context, run *models.AnalysisRun, district models.District, source detector.Source) error {
	parking, err := source.DetectParking(ctx, district, run.YearEnd)
	if err != nil {
		return fmt.Errorf("parking detection: %w", err)
	}
	var pois []osm.POI
	if s.bridge != nil {
		pois, err = s.bridge.ParkingPOIs(district)
		if err != nil {
			// POI annotation is advisory; detection results stand on their own
			s.logger.Warn(fmt.Sprintf("POI lookup failed for %s: %s", district.Name, err))
		}
	}
	for i := range parking {
		site := &parking[i]
		capacity := map[string]int{
			assessment.VehicleMotor: site.Capacity.Motor,
			assessment.VehicleMobil: site.Capacity.Mobil,
		}
		est, err := estimator.Parking(capacity, s.tables)
		if err != nil {
			return fmt.Errorf("parking site %s: %w", site.Id, err)
		}
		occupancy, err := estimator.ParkingOccupancy(capacity, site.SiteType, s.tables)
		if err != nil {
			return fmt.Errorf("parking site %s: %w", site.Id, err)
		}
		site.RevenueDaily = est.Daily
		site.RevenueMonthly = est.Monthly
		site.RevenueAnnual = est.Annual
		site.OccupancyDaily = occupancy
		if pois != nil {
			site.NearbyPOI = osm.CountNear(pois, site.Lat, site.Lon, 250)
		}
		run.Summary.ParkingDaily += est.Daily
		run.Summary.ParkingMonthly += est.Monthly
		run.Summary.ParkingAnnual += est.Annual
	}
	run.Parking = parking

	changes, err := source.DetectLandChanges(ctx, district, run.YearStart, run.YearEnd)
	if err != nil {
		return fmt.Errorf("land change detection: %w", err)
	}
	for i := range changes {
		change := &changes[i]
		priority := classifier.Classify(change.FromClass, change.ToClass, change.AreaM2, s.tables)
		change.Priority = string(priority)
		if change.ToClass == assessment.ClassBuilt {
			pbb, err := estimator.LandChangeImpact(change.FromClass, change.AreaM2, district.Zone, s.tables)
			if err != nil {
				return fmt.Errorf("land change %s: %w", change.Id, err)
			}
			change.EstimatedPBB = pbb
			run.Summary.LandChangePBB += pbb
		}
		switch priority {
		case classifier.High:
			run.Summary.HighPriority++
		case classifier.Critical:
			run.Summary.CriticalPriority++
		}
		if s.verifier != nil {
			result, err := s.verifier.Verify(ctx, *change, run.YearStart, run.YearEnd)
			if err != nil {
				s.logger.Warn(fmt.Sprintf("verification of %s failed: %s", change.Id, err))
				continue
			}
			change.Verified = result.Verified
			change.Confidence = result.Confidence
		}
	}
	run.LandChanges = changes

	buildings, err := source.DetectBuildingChanges(ctx, district, run.YearStart, run.YearEnd)
	if err != nil {
		return fmt.Errorf("building change detection: %w", err)
	}
	for i := range buildings {
		b := &buildings[i]
		tax, err := estimator.BuildingImpact(b.AreaIncrease, b.HeightIncrease, "commercial", district.Zone, s.tables)
		if err != nil {
			return fmt.Errorf("building change %s: %w", b.Id, err)
		}
		b.TaxIncrease = tax
		run.Summary.BuildingTax += tax
	}
	run.BuildingChanges = buildings

	return nil
}

func (s *AnalysisService) store(run *models.AnalysisRun) {
	s.mux.Lock()
	s.runs[run.Id] = run
	s.mux.Unlock()
	if s.database != nil {
		if err := s.database.SaveRun(run); err != nil {
			s.logger.Error(fmt.Sprintf("saving run %s", run.Id), err)
		}
	}
}

// GetRun serves a run from the session store, falling back to the database
// for runs from earlier sessions.
func (s *AnalysisService) GetRun(id string) (*models.AnalysisRun, error) {
	s.mux.Lock()
	run, ok := s.runs[id]
	s.mux.Unlock()
	if ok {
		return run, nil
	}
	if s.database != nil {
		return s.database.GetRun(id)
	}
	return nil, utility.Err(fmt.Sprintf("run %s not found", id))
}

// GetRuns lists recent runs, most recent first.
func (s *AnalysisService) GetRuns(district string) ([]models.AnalysisRun, error) {
	if s.database != nil {
		return s.database.GetRuns(district, 100)
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	var runs []models.AnalysisRun
	for _, run := range s.runs {
		if district == "" || run.District == district {
			runs = append(runs, *run)
		}
	}
	return runs, nil
}
