// Package prediction implements the predictive market engine: appreciation
// forecasting, market timing analysis and emerging opportunity detection.
// All computation is pure and synchronous; the engine holds no mutable state
// beyond its injected collaborators.
package prediction

import (
	"math"
	"sort"
	"time"

	"auctionintel/server/config"
	"auctionintel/server/internal/analysis"
	"auctionintel/server/internal/models"
)

// ModelVersion identifies the forecast model revision.
const ModelVersion = "1.0.0"

// Appreciation factor weights. Must sum to 1.0.
const (
	countyGrowthWeight     = 0.30
	economicWeight         = 0.25
	geographicWeight       = 0.20
	marketTimingWeight     = 0.15
	propertySpecificWeight = 0.10
)

// Opportunity detection weights. The remaining 0.10 is a reserved
// market-inefficiency component that is not yet computed.
const (
	undervaluationWeight = 0.40
	growthWeight         = 0.30
	infrastructureWeight = 0.20
)

// opportunityThreshold is the minimum composite score for an opportunity to
// be reported.
const opportunityThreshold = 60.0

// seasonalPricing maps quarters to seasonal price premiums and discounts.
var seasonalPricing = map[string]float64{
	"Q1": -0.03,
	"Q2": 0.02,
	"Q3": 0.01,
	"Q4": -0.01,
}

// opportunityTimelines maps opportunity types to expected realization
// horizons in months.
var opportunityTimelines = map[models.OpportunityType]int{
	models.OpportunityUndervalued:    12,
	models.OpportunityGrowth:         24,
	models.OpportunityInfrastructure: 36,
}

// Clock supplies the current time; injected so timing analysis is testable.
type Clock func() time.Time

// Engine is the predictive market intelligence engine.
type Engine struct {
	counties *analysis.CountyAnalyzer
	now      Clock
}

// NewEngine creates an engine backed by the given county analyzer. A nil
// clock defaults to time.Now.
func NewEngine(counties *analysis.CountyAnalyzer, now Clock) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{counties: counties, now: now}
}

// PredictAppreciation forecasts appreciation for a property over 1, 3 and
// 5 year horizons.
func (e *Engine) PredictAppreciation(property *models.Property, county string, investmentScore float64) models.PropertyAppreciationForecast {
	intel := e.counties.AnalyzeCounty(county)

	countyFactor := countyGrowthFactor(intel, county)
	economicFactor := economicFactor(intel)
	geographicFactor := geographicFactor(intel)
	timingFactor := marketTimingFactor(intel)
	propertyFactor := propertySpecificFactor(property, investmentScore)

	base := countyFactor*countyGrowthWeight +
		economicFactor*economicWeight +
		geographicFactor*geographicWeight +
		timingFactor*marketTimingWeight +
		propertyFactor*propertySpecificWeight

	return models.PropertyAppreciationForecast{
		OneYearAppreciation: base,
		// Compounding with deceleration rather than true compound interest
		ThreeYearAppreciation: base * 2.8,
		FiveYearAppreciation:  base * 4.5,

		ConfidenceLevel: predictionConfidence(intel, property),
		MarketTrend:     marketTrend(base),
		RiskScore:       riskScore(intel, property),

		CountyGrowthFactor:     countyFactor,
		EconomicFactor:         economicFactor,
		GeographicFactor:       geographicFactor,
		MarketTimingFactor:     timingFactor,
		PropertySpecificFactor: propertyFactor,

		PredictionDate: e.now(),
		ModelVersion:   ModelVersion,
	}
}

// AnalyzeMarketTiming analyzes optimal buying and selling windows for a
// county.
func (e *Engine) AnalyzeMarketTiming(county string) models.MarketTimingAnalysis {
	intel := e.counties.AnalyzeCounty(county)
	now := e.now()
	quarter := quarterOf(now)

	supplyDemand := intel.RealEstateActivityScore
	priceMomentum := (intel.InvestmentMomentumScore - 0.5) * 2
	investmentActivity := intel.InvestmentMomentumScore
	seasonalAdj := seasonalPricing[quarter]

	volatility := 1.0 - intel.ConfidenceLevel
	uncertainty := 1.0 - intel.EconomicDiversityScore

	return models.MarketTimingAnalysis{
		OptimalBuyWindow:   buyWindow(seasonalAdj),
		OptimalSellWindow:  models.MonthWindow{Start: "April", End: "July"},
		CurrentMarketPhase: marketPhase(supplyDemand, priceMomentum, investmentActivity),

		SupplyDemandRatio:       supplyDemand,
		PriceMomentum:           priceMomentum,
		InvestmentActivityLevel: investmentActivity,
		SeasonalAdjustment:      seasonalAdj,

		MarketVolatility:      volatility,
		EconomicUncertainty:   uncertainty,
		ExternalFactorsImpact: 0.1,

		AnalysisDate:    now,
		ConfidenceScore: intel.ConfidenceLevel * (1.0 - (volatility+uncertainty)/2),
	}
}

// DetectOpportunities scans candidate properties for emerging investment
// opportunities, returning at most topN results ranked by opportunity score.
// Only scores above 60 are reported.
func (e *Engine) DetectOpportunities(properties []*models.Property, topN int) []models.EmergingOpportunity {
	opportunities := make([]models.EmergingOpportunity, 0)

	for _, property := range properties {
		if property == nil || property.County == "" {
			continue
		}

		intel := e.counties.AnalyzeCounty(property.County)

		undervalued := undervaluationScore(property)
		growth := growthPotentialScore(intel)
		infrastructure := intel.InfrastructureDevelopmentScore

		score := (undervalued*undervaluationWeight +
			growth*growthWeight +
			infrastructure*infrastructureWeight) * 100

		if score <= opportunityThreshold {
			continue
		}

		opportunityType := dominantType(undervalued, growth, infrastructure)

		forecast := e.PredictAppreciation(property, property.County, scoreOrDefault(property))

		opportunities = append(opportunities, models.EmergingOpportunity{
			PropertyID:      property.ParcelID,
			County:          property.County,
			OpportunityType: opportunityType,

			OpportunityScore:      score,
			PotentialAppreciation: forecast.ThreeYearAppreciation,
			RiskAdjustedReturn:    forecast.ThreeYearAppreciation * (1 - forecast.RiskScore),

			PrimaryDrivers:    primaryDrivers(property, intel, opportunityType),
			SupportingFactors: supportingFactors(property, intel),
			RiskFactors:       riskFactors(property, intel),

			ExpectedTimelineMonths: timelineFor(opportunityType),
			ConfidenceLevel:        forecast.ConfidenceLevel,

			DiscoveryDate: e.now(),
		})
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].OpportunityScore > opportunities[j].OpportunityScore
	})
	if topN > 0 && len(opportunities) > topN {
		opportunities = opportunities[:topN]
	}
	return opportunities
}

// Appreciation factor helpers. Each factor is a weighted combination of
// county intelligence sub-scores scaled into a plausible appreciation range.

func countyGrowthFactor(intel models.CountyIntelligence, county string) float64 {
	base := intel.PopulationGrowthScore*0.4 +
		intel.EconomicDiversityScore*0.3 +
		intel.DevelopmentTrendsScore*0.3

	tierAdjustment := 1.0
	if metro, ok := config.MetroCounties[county]; ok {
		if metro.Tier == config.MetroTier1 {
			tierAdjustment = 1.2
		} else {
			tierAdjustment = 1.1
		}
	}

	return base * tierAdjustment * 0.1
}

func economicFactor(intel models.CountyIntelligence) float64 {
	return (intel.MedianIncomeScore*0.4 +
		intel.UnemploymentScore*0.3 +
		intel.InvestmentMomentumScore*0.3) * 0.08
}

func geographicFactor(intel models.CountyIntelligence) float64 {
	return (intel.ProximityToMajorCitiesScore*0.3 +
		intel.NaturalFeaturesScore*0.3 +
		intel.TransportationAccessScore*0.2 +
		intel.ClimateAdvantagesScore*0.2) * 0.06
}

func marketTimingFactor(intel models.CountyIntelligence) float64 {
	return (intel.RealEstateActivityScore*0.4 +
		intel.InfrastructureDevelopmentScore*0.35 +
		intel.InvestmentMomentumScore*0.25) * 0.05
}

func propertySpecificFactor(property *models.Property, investmentScore float64) float64 {
	base := investmentScore / 100.0 * 0.04

	waterPremium := math.Min(property.WaterScoreValue()/15.0*0.02, 0.02)

	acreageFactor := 1.0
	acreage := property.AcreageValue()
	if acreage > 10 {
		acreageFactor = 1.1
	} else if acreage < 1 {
		acreageFactor = 0.9
	}

	return (base + waterPremium) * acreageFactor
}

func predictionConfidence(intel models.CountyIntelligence, property *models.Property) models.PredictionConfidence {
	completeness := 0.0
	if property.Amount > 0 {
		completeness += 0.25
	}
	if property.AcreageValue() > 0 {
		completeness += 0.25
	}
	if property.County != "" {
		completeness += 0.25
	}
	if property.Description != "" {
		completeness += 0.25
	}

	overall := (intel.ConfidenceLevel + completeness) / 2

	switch {
	case overall >= 0.85:
		return models.ConfidenceVeryHigh
	case overall >= 0.70:
		return models.ConfidenceHigh
	case overall >= 0.55:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func riskScore(intel models.CountyIntelligence, property *models.Property) float64 {
	economicRisk := 1.0 - (intel.EconomicDiversityScore+intel.UnemploymentScore)/2
	marketRisk := 1.0 - intel.RealEstateActivityScore

	pricePerAcre := property.PricePerAcre()
	priceRisk := 0.1
	if pricePerAcre > 5000 {
		priceRisk = 0.3
	} else if pricePerAcre < 100 {
		priceRisk = 0.4
	}

	overall := economicRisk*0.4 + marketRisk*0.4 + priceRisk*0.2
	return math.Max(0, math.Min(1, overall))
}

func marketTrend(base float64) models.MarketTrend {
	switch {
	case base >= 0.08:
		return models.TrendStrongGrowth
	case base >= 0.05:
		return models.TrendGrowth
	case base >= -0.02:
		return models.TrendStable
	case base >= -0.05:
		return models.TrendDecline
	default:
		return models.TrendStrongDecline
	}
}

func marketPhase(supplyDemand, priceMomentum, investmentActivity float64) models.MarketPhase {
	composite := (supplyDemand + priceMomentum + investmentActivity) / 3
	switch {
	case composite > 0.6:
		return models.PhaseSellerMarket
	case composite < 0.4:
		return models.PhaseBuyerMarket
	default:
		return models.PhaseBalanced
	}
}

func buyWindow(seasonalAdj float64) models.MonthWindow {
	if seasonalAdj < 0 {
		return models.MonthWindow{Start: "November", End: "February"}
	}
	return models.MonthWindow{Start: "September", End: "December"}
}

func quarterOf(t time.Time) string {
	switch (int(t.Month()) - 1) / 3 {
	case 0:
		return "Q1"
	case 1:
		return "Q2"
	case 2:
		return "Q3"
	default:
		return "Q4"
	}
}

// Opportunity detection helpers.

func undervaluationScore(property *models.Property) float64 {
	ratio := 1.0
	if assessed := property.AssessedValueValue(); assessed > 0 {
		ratio = property.Amount / assessed
	}
	ratio = math.Min(ratio, 1.0)

	score := (1.0-ratio)*0.6 + scoreOrDefault(property)/100.0*0.4
	return math.Min(score, 1.0)
}

// scoreOrDefault treats an unscored property as mid-scale rather than
// worthless.
func scoreOrDefault(property *models.Property) float64 {
	if property.InvestmentScore == nil {
		return 50
	}
	return *property.InvestmentScore
}

func growthPotentialScore(intel models.CountyIntelligence) float64 {
	return intel.PopulationGrowthScore*0.4 +
		intel.DevelopmentTrendsScore*0.3 +
		intel.EconomicDiversityScore*0.3
}

func dominantType(undervalued, growth, infrastructure float64) models.OpportunityType {
	if undervalued >= growth && undervalued >= infrastructure {
		return models.OpportunityUndervalued
	}
	if growth >= infrastructure {
		return models.OpportunityGrowth
	}
	return models.OpportunityInfrastructure
}

func timelineFor(opportunityType models.OpportunityType) int {
	if months, ok := opportunityTimelines[opportunityType]; ok {
		return months
	}
	return 18
}

func primaryDrivers(property *models.Property, intel models.CountyIntelligence, opportunityType models.OpportunityType) []string {
	drivers := []string{}

	switch opportunityType {
	case models.OpportunityUndervalued:
		if assessed := property.AssessedValueValue(); assessed > 0 && property.Amount/assessed < 0.5 {
			drivers = append(drivers, "Significantly below assessed value")
		}
		if property.WaterScoreValue() > 5 {
			drivers = append(drivers, "Premium water features")
		}
	case models.OpportunityGrowth:
		if intel.PopulationGrowthScore > 0.7 {
			drivers = append(drivers, "Strong population growth")
		}
		if intel.EconomicDiversityScore > 0.7 {
			drivers = append(drivers, "Diverse economy")
		}
	case models.OpportunityInfrastructure:
		if intel.InfrastructureDevelopmentScore > 0.7 {
			drivers = append(drivers, "Major infrastructure projects")
		}
	}

	return drivers
}

func supportingFactors(property *models.Property, intel models.CountyIntelligence) []string {
	factors := []string{}
	if intel.ProximityToMajorCitiesScore > 0.6 {
		factors = append(factors, "Good proximity to major cities")
	}
	if property.AcreageValue() > 5 {
		factors = append(factors, "Large property size")
	}
	if intel.TransportationAccessScore > 0.6 {
		factors = append(factors, "Excellent transportation access")
	}
	return factors
}

func riskFactors(property *models.Property, intel models.CountyIntelligence) []string {
	risks := []string{}
	if intel.UnemploymentScore < 0.4 {
		risks = append(risks, "High unemployment risk")
	}
	if property.PricePerAcre() > 3000 {
		risks = append(risks, "High price per acre")
	}
	if intel.EconomicDiversityScore < 0.4 {
		risks = append(risks, "Limited economic diversity")
	}
	return risks
}
