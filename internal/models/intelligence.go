package models

// PropertyIntelligence holds the signals extracted from a legal property
// description. Sub-scores are directional point values; penalties are
// negative. TotalDescriptionScore is normalized to [0,100].
type PropertyIntelligence struct {
	// Shape and size
	LotDimensionsScore    float64 `json:"lot_dimensions_score"`
	ShapeEfficiencyScore  float64 `json:"shape_efficiency_score"`
	CornerLotBonus        float64 `json:"corner_lot_bonus"`
	IrregularShapePenalty float64 `json:"irregular_shape_penalty"`

	// Access and location
	SubdivisionQualityScore float64 `json:"subdivision_quality_score"`
	RoadAccessScore         float64 `json:"road_access_score"`
	LocationTypeScore       float64 `json:"location_type_score"`

	// Legal complexity risk
	TitleComplexityScore   float64 `json:"title_complexity_score"`
	SurveyRequirementScore float64 `json:"survey_requirement_score"`

	// Water features
	PremiumWaterAccessScore float64 `json:"premium_water_access_score"`

	TotalDescriptionScore float64 `json:"total_description_score"`
}

// CountyIntelligence holds county-level investment intelligence. The three
// aggregate scores are normalized to [0,100]; ConfidenceLevel is in [0,1].
// An unknown county yields the zero value.
type CountyIntelligence struct {
	// Economic
	MedianIncomeScore      float64 `json:"median_income_score"`
	UnemploymentScore      float64 `json:"unemployment_score"`
	PopulationGrowthScore  float64 `json:"population_growth_score"`
	EconomicDiversityScore float64 `json:"economic_diversity_score"`

	// Geographic
	ProximityToMajorCitiesScore float64 `json:"proximity_to_major_cities_score"`
	NaturalFeaturesScore        float64 `json:"natural_features_score"`
	TransportationAccessScore   float64 `json:"transportation_access_score"`
	ClimateAdvantagesScore      float64 `json:"climate_advantages_score"`

	// Market timing
	DevelopmentTrendsScore         float64 `json:"development_trends_score"`
	RealEstateActivityScore        float64 `json:"real_estate_activity_score"`
	InvestmentMomentumScore        float64 `json:"investment_momentum_score"`
	InfrastructureDevelopmentScore float64 `json:"infrastructure_development_score"`

	// Aggregates
	CountyMarketScore float64 `json:"county_market_score"`
	GeographicScore   float64 `json:"geographic_score"`
	MarketTimingScore float64 `json:"market_timing_score"`

	// Metadata
	DataFreshnessDays int     `json:"data_freshness_days"`
	ConfidenceLevel   float64 `json:"confidence_level"`
}
