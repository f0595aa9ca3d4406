package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionintel/server/internal/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	d, err := NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })

	require.NoError(t, d.RunMigrations())
	return d
}

func insertProperty(t *testing.T, d *Database, parcelID, county string, amount float64, score interface{}, createdAt time.Time) {
	t.Helper()

	_, err := d.db.Exec(`
		INSERT INTO properties (parcel_id, county, amount, acreage, description, investment_score, created_at, updated_at)
		VALUES (?, ?, ?, 3.0, 'LOT 1 TEST TRACT', ?, ?, ?)
	`, parcelID, county, amount, score, createdAt.Format(time.RFC3339), createdAt.Format(time.RFC3339))
	require.NoError(t, err)
}

func TestGetPropertiesBatch(t *testing.T) {
	d := newTestDatabase(t)
	now := time.Now().UTC().Truncate(time.Second)

	insertProperty(t, d, "p1", "Baldwin", 1000, 50.0, now)
	insertProperty(t, d, "p2", "Jefferson", 2000, 60.0, now)
	insertProperty(t, d, "p3", "Bibb", 3000, nil, now)

	first, err := d.GetPropertiesBatch(2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "p1", first[0].ParcelID)
	assert.Equal(t, "p2", first[1].ParcelID)

	second, err := d.GetPropertiesBatch(2, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "p3", second[0].ParcelID)
	assert.Nil(t, second[0].InvestmentScore)
	assert.NotNil(t, second[0].Acreage)
}

func TestGetPropertiesByCounty(t *testing.T) {
	d := newTestDatabase(t)
	now := time.Now().UTC()

	insertProperty(t, d, "low", "Baldwin", 1000, 40.0, now)
	insertProperty(t, d, "high", "Baldwin", 2000, 90.0, now)
	insertProperty(t, d, "other", "Jefferson", 3000, 70.0, now)

	baldwin, err := d.GetPropertiesByCounty("baldwin", 10)
	require.NoError(t, err)
	require.Len(t, baldwin, 2, "county match is case-insensitive")
	assert.Equal(t, "high", baldwin[0].ParcelID)
	assert.Equal(t, "low", baldwin[1].ParcelID)

	all, err := d.GetPropertiesByCounty("", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetPropertySample(t *testing.T) {
	d := newTestDatabase(t)
	now := time.Now().UTC()

	insertProperty(t, d, "scored", "Baldwin", 1000, 50.0, now)
	insertProperty(t, d, "unscored", "Baldwin", 2000, nil, now)
	insertProperty(t, d, "nocounty", "", 3000, 60.0, now)

	sample, err := d.GetPropertySample(10)
	require.NoError(t, err)
	require.Len(t, sample, 1, "only scored properties with a county qualify")
	assert.Equal(t, "scored", sample[0].ParcelID)
}

func TestPropertiesInRange(t *testing.T) {
	d := newTestDatabase(t)

	old := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	insertProperty(t, d, "old", "Baldwin", 1000, 50.0, old)
	insertProperty(t, d, "recent", "Baldwin", 2000, 60.0, recent)

	inRange, err := d.PropertiesInRange(
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.Len(t, inRange, 1)
	assert.Equal(t, "recent", inRange[0].ParcelID)
}

func TestCountProperties(t *testing.T) {
	d := newTestDatabase(t)

	count, err := d.CountProperties()
	require.NoError(t, err)
	assert.Zero(t, count)

	insertProperty(t, d, "p1", "Baldwin", 1000, 50.0, time.Now().UTC())
	count, err = d.CountProperties()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateRanks(t *testing.T) {
	d := newTestDatabase(t)
	now := time.Now().UTC()

	insertProperty(t, d, "first", "Baldwin", 500, 90.0, now)
	insertProperty(t, d, "tie-cheap", "Baldwin", 1000, 80.0, now)
	insertProperty(t, d, "tie-dear", "Baldwin", 2000, 80.0, now)
	insertProperty(t, d, "unscored", "Baldwin", 3000, nil, now)

	require.NoError(t, d.UpdateRanks())

	ranks := map[string]int{}
	properties, err := d.GetPropertiesBatch(10, 0)
	require.NoError(t, err)
	for _, p := range properties {
		if p.Rank != nil {
			ranks[p.ParcelID] = *p.Rank
		}
	}

	assert.Equal(t, 1, ranks["first"])
	assert.Equal(t, 2, ranks["tie-cheap"], "ties are broken by lower bid amount")
	assert.Equal(t, 3, ranks["tie-dear"])
	assert.NotContains(t, ranks, "unscored")
}

func TestValidationResultRoundTrip(t *testing.T) {
	d := newTestDatabase(t)

	older := &models.ValidationResult{
		RunID:               uuid.New(),
		AccuracyScore:       0.82,
		ValidationStatus:    models.StatusGood,
		TotalPredictions:    50,
		ValidationPeriod:    "scheduled",
		PredictionHorizon:   "3_year",
		CountyPerformance:   map[string]float64{"Baldwin": 0.9},
		ValidationTimestamp: time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC),
		ModelVersion:        "1.0.0",
	}
	newer := &models.ValidationResult{
		RunID:               uuid.New(),
		AccuracyScore:       0.91,
		ValidationStatus:    models.StatusExcellent,
		TotalPredictions:    50,
		ValidationPeriod:    "current",
		PredictionHorizon:   "3_year",
		CountyPerformance:   map[string]float64{},
		ValidationTimestamp: time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC),
		ModelVersion:        "1.0.0",
	}
	require.NoError(t, d.SaveValidationResult(older))
	require.NoError(t, d.SaveValidationResult(newer))

	results, err := d.RecentValidationResults(10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, newer.RunID, results[0].RunID, "newest first")
	assert.Equal(t, older.RunID, results[1].RunID)
	assert.InDelta(t, 0.82, results[1].AccuracyScore, 1e-9)
	assert.Equal(t, models.StatusGood, results[1].ValidationStatus)
	assert.InDelta(t, 0.9, results[1].CountyPerformance["Baldwin"], 1e-9)
	assert.True(t, results[1].ValidationTimestamp.Equal(older.ValidationTimestamp))

	limited, err := d.RecentValidationResults(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, newer.RunID, limited[0].RunID)
}

func TestBacktestResultRoundTrip(t *testing.T) {
	d := newTestDatabase(t)

	result := &models.BacktestResult{
		RunID:                   uuid.New(),
		StartDate:               time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                 time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		PredictionHorizonMonths: 36,
		TestPropertiesCount:     80,
		OverallAccuracy:         0.88,
		MarketTrendAccuracy:     0.8,
		HighConfidenceAccuracy:  0.92,
		CountyAccuracy:          map[string]float64{"Jefferson": 0.85},
		BacktestTimestamp:       time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, d.SaveBacktestResult(result))

	results, err := d.RecentBacktestResults(5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, result.RunID, got.RunID)
	assert.Equal(t, 36, got.PredictionHorizonMonths)
	assert.Equal(t, 80, got.TestPropertiesCount)
	assert.InDelta(t, 0.88, got.OverallAccuracy, 1e-9)
	assert.InDelta(t, 0.85, got.CountyAccuracy["Jefferson"], 1e-9)
	assert.True(t, got.StartDate.Equal(result.StartDate))
}

func TestValidationHistory(t *testing.T) {
	d := newTestDatabase(t)

	recent := &models.ValidationResult{
		RunID:               uuid.New(),
		AccuracyScore:       0.9,
		ValidationStatus:    models.StatusExcellent,
		CountyPerformance:   map[string]float64{},
		ValidationTimestamp: time.Now().UTC().Add(-24 * time.Hour),
	}
	ancient := &models.ValidationResult{
		RunID:               uuid.New(),
		AccuracyScore:       0.7,
		ValidationStatus:    models.StatusAcceptable,
		CountyPerformance:   map[string]float64{},
		ValidationTimestamp: time.Now().UTC().AddDate(0, 0, -90),
	}
	require.NoError(t, d.SaveValidationResult(recent))
	require.NoError(t, d.SaveValidationResult(ancient))

	history, err := d.ValidationHistory(30)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, recent.RunID, history[0].RunID)
}
