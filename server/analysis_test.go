package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padmon/assessment"
	"padmon/classifier"
	"padmon/detector"
	"padmon/models"
)

type nopLogger struct{}

func (nopLogger) Debug(string)                {}
func (nopLogger) Warn(string)                 {}
func (nopLogger) Error(string, error)         {}
func (nopLogger) FeatureEvent(_, _, _ string) {}

type recordingListener struct {
	started   []*models.AnalysisRun
	completed []*models.AnalysisRun
	failed    []*models.AnalysisRun
}

func (l *recordingListener) OnRunStarted(run *models.AnalysisRun) {
	l.started = append(l.started, run)
}

func (l *recordingListener) OnRunCompleted(run *models.AnalysisRun) {
	l.completed = append(l.completed, run)
}

func (l *recordingListener) OnRunFailed(run *models.AnalysisRun) {
	l.failed = append(l.failed, run)
}

func newTestService() *AnalysisService {
	tables := assessment.Default()
	service := NewAnalysisService(tables, nopLogger{})
	service.RegisterSource(detector.ModeSimulated, detector.NewSimulated(tables))
	return service
}

func TestAnalyze(t *testing.T) {
	service := newTestService()
	listener := &recordingListener{}
	service.AddListener(listener)

	run, err := service.Analyze(context.Background(), "Cakranegara", 2020, 2024, detector.ModeSimulated)
	require.NoError(t, err)
	assert.Equal(t, models.RunCompleted, run.Status)
	assert.Equal(t, "pusat_kota", run.Zone)
	assert.NotEmpty(t, run.Id)
	assert.NotEmpty(t, run.Parking)
	assert.NotEmpty(t, run.LandChanges)
	assert.NotEmpty(t, run.BuildingChanges)
	require.Len(t, listener.started, 1)
	require.Len(t, listener.completed, 1)
	assert.Empty(t, listener.failed)

	var daily, monthly, annual float64
	for _, site := range run.Parking {
		assert.Greater(t, site.RevenueDaily, 0.0)
		assert.Equal(t, site.RevenueMonthly*12, site.RevenueAnnual)
		daily += site.RevenueDaily
		monthly += site.RevenueMonthly
		annual += site.RevenueAnnual
	}
	assert.Equal(t, daily, run.Summary.ParkingDaily)
	assert.Equal(t, monthly, run.Summary.ParkingMonthly)
	assert.Equal(t, annual, run.Summary.ParkingAnnual)

	var pbb float64
	var high, critical int
	for _, change := range run.LandChanges {
		assert.NotEmpty(t, change.Priority)
		if change.ToClass == assessment.ClassBuilt {
			assert.Greater(t, change.EstimatedPBB, 0.0)
		} else {
			assert.Zero(t, change.EstimatedPBB)
		}
		pbb += change.EstimatedPBB
		switch classifier.Priority(change.Priority) {
		case classifier.High:
			high++
		case classifier.Critical:
			critical++
		}
	}
	assert.Equal(t, pbb, run.Summary.LandChangePBB)
	assert.Equal(t, high, run.Summary.HighPriority)
	assert.Equal(t, critical, run.Summary.CriticalPriority)

	var tax float64
	for _, b := range run.BuildingChanges {
		assert.Greater(t, b.TaxIncrease, 0.0)
		tax += b.TaxIncrease
	}
	assert.Equal(t, tax, run.Summary.BuildingTax)
}

func TestAnalyzeIsReproducible(t *testing.T) {
	service := newTestService()

	first, err := service.Analyze(context.Background(), "Ampenan", 2020, 2024, detector.ModeSimulated)
	require.NoError(t, err)
	second, err := service.Analyze(context.Background(), "Ampenan", 2020, 2024, detector.ModeSimulated)
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Parking, second.Parking)
}

func TestAnalyzeRejectsBadRequests(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Analyze(ctx, "Senggigi", 2020, 2024, detector.ModeSimulated)
	assert.Error(t, err)

	_, err = service.Analyze(ctx, "Mataram", 2024, 2020, detector.ModeSimulated)
	assert.Error(t, err)

	_, err = service.Analyze(ctx, "Mataram", 2020, 2024, detector.ModeLive)
	assert.Error(t, err)
}

func TestGetRunFromSessionStore(t *testing.T) {
	service := newTestService()

	run, err := service.Analyze(context.Background(), "Sandubaya", 2021, 2023, detector.ModeSimulated)
	require.NoError(t, err)

	got, err := service.GetRun(run.Id)
	require.NoError(t, err)
	assert.Equal(t, run, got)

	_, err = service.GetRun("no-such-run")
	assert.Error(t, err)
}

func TestGetRunsFiltersByDistrict(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Analyze(ctx, "Sandubaya", 2021, 2023, detector.ModeSimulated)
	require.NoError(t, err)
	_, err = service.Analyze(ctx, "Ampenan", 2021, 2023, detector.ModeSimulated)
	require.NoError(t, err)

	all, err := service.GetRuns("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := service.GetRuns("Ampenan")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Ampenan", filtered[0].District)
}
