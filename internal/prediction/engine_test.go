package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionintel/server/internal/analysis"
	"auctionintel/server/internal/models"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func fptr(v float64) *float64 { return &v }

func testProperty(county string) *models.Property {
	return &models.Property{
		ID:            1,
		ParcelID:      "22-05-16-0-001-001.000",
		County:        county,
		Amount:        4500,
		Acreage:       fptr(3.0),
		Description:   "LOT 4 CREEK FRONTAGE SMITH SURVEY",
		AssessedValue: fptr(18000),
		WaterScore:    fptr(3.0),
	}
}

func TestPredictAppreciation_HorizonScaling(t *testing.T) {
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(analysis.NewCountyAnalyzer(), fixedClock(now))

	forecast := engine.PredictAppreciation(testProperty("Baldwin"), "Baldwin", 75)

	assert.InDelta(t, forecast.OneYearAppreciation*2.8, forecast.ThreeYearAppreciation, 1e-9)
	assert.InDelta(t, forecast.OneYearAppreciation*4.5, forecast.FiveYearAppreciation, 1e-9)
	assert.Equal(t, ModelVersion, forecast.ModelVersion)
	assert.Equal(t, now, forecast.PredictionDate)
}

func TestPredictAppreciation_FactorsSumToBase(t *testing.T) {
	engine := NewEngine(analysis.NewCountyAnalyzer(), nil)

	forecast := engine.PredictAppreciation(testProperty("Jefferson"), "Jefferson", 60)

	expected := forecast.CountyGrowthFactor*countyGrowthWeight +
		forecast.EconomicFactor*economicWeight +
		forecast.GeographicFactor*geographicWeight +
		forecast.MarketTimingFactor*marketTimingWeight +
		forecast.PropertySpecificFactor*propertySpecificWeight
	assert.InDelta(t, expected, forecast.OneYearAppreciation, 1e-9)
}

func TestPredictAppreciation_RiskScoreBounded(t *testing.T) {
	engine := NewEngine(analysis.NewCountyAnalyzer(), nil)

	counties := []string{"Baldwin", "Jefferson", "Bibb", "Nowhere"}
	for _, county := range counties {
		forecast := engine.PredictAppreciation(testProperty(county), county, 50)
		assert.GreaterOrEqual(t, forecast.RiskScore, 0.0, county)
		assert.LessOrEqual(t, forecast.RiskScore, 1.0, county)
	}
}

func TestPredictionConfidence_Completeness(t *testing.T) {
	intel := models.CountyIntelligence{ConfidenceLevel: 1.0}

	complete := testProperty("Baldwin")
	assert.Equal(t, models.ConfidenceVeryHigh, predictionConfidence(intel, complete))

	sparse := &models.Property{County: "Baldwin"}
	assert.Equal(t, models.ConfidenceMedium, predictionConfidence(intel, sparse))

	empty := &models.Property{}
	assert.Equal(t, models.ConfidenceLow, predictionConfidence(models.CountyIntelligence{}, empty))
}

func TestMarketTrendClassification(t *testing.T) {
	assert.Equal(t, models.TrendStrongGrowth, marketTrend(0.08))
	assert.Equal(t, models.TrendGrowth, marketTrend(0.079))
	assert.Equal(t, models.TrendGrowth, marketTrend(0.05))
	assert.Equal(t, models.TrendStable, marketTrend(0.049))
	assert.Equal(t, models.TrendStable, marketTrend(-0.02))
	assert.Equal(t, models.TrendDecline, marketTrend(-0.021))
	assert.Equal(t, models.TrendDecline, marketTrend(-0.05))
	assert.Equal(t, models.TrendStrongDecline, marketTrend(-0.051))
}

func TestAnalyzeMarketTiming_SeasonalWindows(t *testing.T) {
	winter := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(analysis.NewCountyAnalyzer(), fixedClock(winter))

	timing := engine.AnalyzeMarketTiming("Baldwin")
	assert.InDelta(t, -0.03, timing.SeasonalAdjustment, 1e-9)
	assert.Equal(t, models.MonthWindow{Start: "November", End: "February"}, timing.OptimalBuyWindow)
	assert.Equal(t, models.MonthWindow{Start: "April", End: "July"}, timing.OptimalSellWindow)
	assert.Equal(t, winter, timing.AnalysisDate)

	summer := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	engine = NewEngine(analysis.NewCountyAnalyzer(), fixedClock(summer))

	timing = engine.AnalyzeMarketTiming("Baldwin")
	assert.InDelta(t, 0.01, timing.SeasonalAdjustment, 1e-9)
	assert.Equal(t, models.MonthWindow{Start: "September", End: "December"}, timing.OptimalBuyWindow)
}

func TestQuarterOf(t *testing.T) {
	assert.Equal(t, "Q1", quarterOf(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Q2", quarterOf(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Q3", quarterOf(time.Date(2026, time.September, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Q4", quarterOf(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDetectOpportunities_SkipsInvalidCandidates(t *testing.T) {
	engine := NewEngine(analysis.NewCountyAnalyzer(), nil)

	candidates := []*models.Property{
		nil,
		{ID: 2, ParcelID: "no-county", Amount: 1000},
	}
	assert.Empty(t, engine.DetectOpportunities(candidates, 10))
}

func TestDetectOpportunities_ThresholdFiltersUnknownCounties(t *testing.T) {
	engine := NewEngine(analysis.NewCountyAnalyzer(), nil)

	// With zero county intelligence the composite can never clear the
	// threshold, even for a maximally undervalued property
	property := testProperty("Unknownville")
	property.Amount = 100
	property.InvestmentScore = fptr(100)

	assert.Empty(t, engine.DetectOpportunities([]*models.Property{property}, 10))
}

func TestDetectOpportunities_RankingAndTruncation(t *testing.T) {
	engine := NewEngine(analysis.NewCountyAnalyzer(), nil)

	strong := testProperty("Baldwin")
	strong.ParcelID = "strong"
	strong.Amount = 200 // ratio 0.011, strongly undervalued
	strong.InvestmentScore = fptr(90)

	weak := testProperty("Baldwin")
	weak.ID = 2
	weak.ParcelID = "weak"
	weak.Amount = 18000 // at assessed value
	weak.InvestmentScore = fptr(10)

	results := engine.DetectOpportunities([]*models.Property{weak, strong}, 10)
	assert.Len(t, results, 2)
	assert.Equal(t, "strong", results[0].PropertyID)
	assert.Equal(t, "weak", results[1].PropertyID)
	assert.Greater(t, results[0].OpportunityScore, results[1].OpportunityScore)
	for _, opp := range results {
		assert.Greater(t, opp.OpportunityScore, opportunityThreshold)
		assert.Equal(t, "Baldwin", opp.County)
	}

	truncated := engine.DetectOpportunities([]*models.Property{weak, strong}, 1)
	assert.Len(t, truncated, 1)
	assert.Equal(t, "strong", truncated[0].PropertyID)
}

func TestDetectOpportunities_UnscoredDefaultsToMidScale(t *testing.T) {
	engine := NewEngine(analysis.NewCountyAnalyzer(), fixedClock(time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)))

	unscored := testProperty("Baldwin")
	unscored.InvestmentScore = nil

	scored := testProperty("Baldwin")
	scored.ID = 2
	scored.InvestmentScore = fptr(50)

	results := engine.DetectOpportunities([]*models.Property{unscored, scored}, 10)
	require.Len(t, results, 2)
	assert.Equal(t, results[0].OpportunityScore, results[1].OpportunityScore,
		"a missing investment score ranks like a mid-scale one")
}

func TestTimelineFor(t *testing.T) {
	assert.Equal(t, 12, timelineFor(models.OpportunityUndervalued))
	assert.Equal(t, 24, timelineFor(models.OpportunityGrowth))
	assert.Equal(t, 36, timelineFor(models.OpportunityInfrastructure))
	assert.Equal(t, 18, timelineFor(models.OpportunityType("unmapped")))
}

func TestBuyWindow(t *testing.T) {
	assert.Equal(t, models.MonthWindow{Start: "November", End: "February"}, buyWindow(-0.01))
	assert.Equal(t, models.MonthWindow{Start: "September", End: "December"}, buyWindow(0))
	assert.Equal(t, models.MonthWindow{Start: "September", End: "December"}, buyWindow(0.02))
}
