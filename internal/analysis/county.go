package analysis

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"auctionintel/server/config"
	"auctionintel/server/internal/models"
)

// Economic scoring weights.
const (
	metroTier1Bonus         = 25.0
	metroTier2Bonus         = 15.0
	highDiversityBonus      = 20.0
	universityPresenceBonus = 15.0
	governmentPresenceBonus = 12.0
	portAccessBonus         = 18.0
	techHubBonus            = 30.0
)

// Geographic scoring weights.
const (
	exceptionalWaterBonus = 35.0
	highWaterBonus        = 25.0
	mediumWaterBonus      = 15.0
	recreationBonus       = 20.0
	climateAdvantageBonus = 10.0
)

// Market timing weights.
const (
	interstateAccessBonus     = 20.0
	majorCityProximityBonus   = 25.0
	developmentPressureBonus  = 18.0
	infrastructureInvestBonus = 15.0
	populationGrowthBonus     = 22.0
)

const metersPerMile = 1609.344

// CountyAnalyzer computes county-level intelligence from the static
// reference tables in config. It performs no I/O, is deterministic, and is
// safe for concurrent use; callers may cache results since the tables never
// change at runtime.
type CountyAnalyzer struct{}

// NewCountyAnalyzer creates a county analyzer.
func NewCountyAnalyzer() *CountyAnalyzer {
	return &CountyAnalyzer{}
}

// AnalyzeCounty scores an Alabama county. Unknown county names yield the
// zero-value result with confidence 0; the analyzer never fails.
func (a *CountyAnalyzer) AnalyzeCounty(countyName string) models.CountyIntelligence {
	if !config.KnownCounty(countyName) {
		return models.CountyIntelligence{}
	}

	intel := models.CountyIntelligence{
		MedianIncomeScore:      a.economicIndicators(countyName),
		UnemploymentScore:      a.employmentFactors(countyName),
		PopulationGrowthScore:  a.populationTrends(countyName),
		EconomicDiversityScore: a.economicDiversity(countyName),

		ProximityToMajorCitiesScore: a.cityProximity(countyName),
		NaturalFeaturesScore:        a.naturalFeatures(countyName),
		TransportationAccessScore:   a.transportationAccess(countyName),
		ClimateAdvantagesScore:      a.climateAdvantages(countyName),

		DevelopmentTrendsScore:         a.developmentTrends(countyName),
		RealEstateActivityScore:        a.realEstateActivity(countyName),
		InvestmentMomentumScore:        a.investmentMomentum(countyName),
		InfrastructureDevelopmentScore: a.infrastructureDevelopment(countyName),

		DataFreshnessDays: 1,
		ConfidenceLevel:   a.confidenceLevel(countyName),
	}

	intel.CountyMarketScore = normalizeScore(
		intel.MedianIncomeScore+intel.UnemploymentScore+
			intel.PopulationGrowthScore+intel.EconomicDiversityScore, 150)
	intel.GeographicScore = normalizeScore(
		intel.ProximityToMajorCitiesScore+intel.NaturalFeaturesScore+
			intel.TransportationAccessScore+intel.ClimateAdvantagesScore, 120)
	intel.MarketTimingScore = normalizeScore(
		intel.DevelopmentTrendsScore+intel.RealEstateActivityScore+
			intel.InvestmentMomentumScore+intel.InfrastructureDevelopmentScore, 140)

	return intel
}

func (a *CountyAnalyzer) economicIndicators(county string) float64 {
	score := 0.0

	if metro, ok := config.MetroCounties[county]; ok {
		switch metro.Tier {
		case config.MetroTier1:
			score += metroTier1Bonus
		case config.MetroTier2:
			score += metroTier2Bonus
		}

		switch metro.EconomicDiversity {
		case config.DiversityVeryHigh:
			score += techHubBonus
		case config.DiversityHigh:
			score += highDiversityBonus
		}
	}

	if contains(config.TechHubCounties, county) {
		score += techHubBonus
	}
	if contains(config.PortCounties, county) {
		score += portAccessBonus
	}
	if contains(config.UniversityCounties, county) {
		score += universityPresenceBonus
	}
	if contains(config.GovernmentCounties, county) {
		score += governmentPresenceBonus
	}

	return score
}

func (a *CountyAnalyzer) employmentFactors(county string) float64 {
	score := 0.0
	if _, ok := config.MetroCounties[county]; ok {
		score += 15.0
	}
	if contains(config.StrongJobCounties, county) {
		score += 25.0
	}
	return score
}

func (a *CountyAnalyzer) populationTrends(county string) float64 {
	if contains(config.HighGrowthCounties, county) {
		return populationGrowthBonus
	}
	if contains(config.MediumGrowthCounties, county) {
		return populationGrowthBonus * 0.6
	}
	return 0
}

func (a *CountyAnalyzer) economicDiversity(county string) float64 {
	metro, ok := config.MetroCounties[county]
	if !ok {
		return 0
	}
	switch metro.EconomicDiversity {
	case config.DiversityVeryHigh:
		return 30.0
	case config.DiversityHigh:
		return 20.0
	case config.DiversityMedium:
		return 10.0
	}
	return 0
}

func (a *CountyAnalyzer) cityProximity(county string) float64 {
	seat, ok := config.CountyCoordinates[county]
	if !ok {
		return 0
	}

	// Tier by the nearest major city so the score is deterministic
	nearest := math.Inf(1)
	for _, city := range config.MajorCities {
		if distance := DistanceMiles(seat, city); distance < nearest {
			nearest = distance
		}
	}

	switch {
	case nearest <= 25:
		return majorCityProximityBonus
	case nearest <= 50:
		return majorCityProximityBonus * 0.6
	default:
		return 0
	}
}

func (a *CountyAnalyzer) naturalFeatures(county string) float64 {
	features, ok := config.NaturalFeatureCounties[county]
	if !ok {
		return 0
	}

	score := 0.0
	switch features.WaterFeatures {
	case config.WaterExceptional:
		score += exceptionalWaterBonus
	case config.WaterHigh:
		score += highWaterBonus
	case config.WaterMedium:
		score += mediumWaterBonus
	}

	if features.Recreation == "very_high" || features.Recreation == "high" {
		score += recreationBonus
	}

	return score
}

func (a *CountyAnalyzer) transportationAccess(county string) float64 {
	score := 0.0

	for corridor, counties := range config.TransportationCorridors {
		if corridor[0] == 'I' && contains(counties, county) {
			score += interstateAccessBonus
			break
		}
	}

	if contains(config.TransportationCorridors["River_Access"], county) {
		score += 15.0
	}
	if contains(config.TransportationCorridors["Port_Access"], county) {
		score += 12.0
	}

	return score
}

func (a *CountyAnalyzer) climateAdvantages(county string) float64 {
	score := 0.0
	if contains(config.GulfClimateCounties, county) {
		score += climateAdvantageBonus
	}
	if contains(config.ModerateClimateCounties, county) {
		score += climateAdvantageBonus * 0.6
	}
	return score
}

func (a *CountyAnalyzer) developmentTrends(county string) float64 {
	if contains(config.HighDevelopmentCounties, county) {
		return developmentPressureBonus
	}
	if contains(config.MediumDevelopmentCounties, county) {
		return developmentPressureBonus * 0.6
	}
	return 0
}

func (a *CountyAnalyzer) realEstateActivity(county string) float64 {
	metro, ok := config.MetroCounties[county]
	if !ok {
		return 0
	}
	if metro.Tier == config.MetroTier1 {
		return 25.0
	}
	return 15.0
}

func (a *CountyAnalyzer) investmentMomentum(county string) float64 {
	if contains(config.HighMomentumCounties, county) {
		return 30.0
	}
	if contains(config.MediumMomentumCounties, county) {
		return 20.0
	}
	return 0
}

func (a *CountyAnalyzer) infrastructureDevelopment(county string) float64 {
	if contains(config.InfrastructureCounties, county) {
		return infrastructureInvestBonus
	}
	return 0
}

func (a *CountyAnalyzer) confidenceLevel(county string) float64 {
	confidence := 0.7
	if _, ok := config.MetroCounties[county]; ok {
		confidence += 0.2
	}
	if _, ok := config.NaturalFeatureCounties[county]; ok {
		confidence += 0.1
	}
	return math.Min(1.0, confidence)
}

// DistanceMiles returns the haversine distance between two coordinates in
// miles.
func DistanceMiles(a, b config.Coordinate) float64 {
	p1 := orb.Point{a.Lon, a.Lat}
	p2 := orb.Point{b.Lon, b.Lat}
	return geo.DistanceHaversine(p1, p2) / metersPerMile
}

// normalizeScore rescales a raw bonus sum to [0,100] using the component's
// fixed denominator.
func normalizeScore(total, denominator float64) float64 {
	normalized := total * (100.0 / denominator)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 100 {
		normalized = 100
	}
	return round1(normalized)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
