package models

import "time"

// PredictionConfidence classifies forecast confidence.
type PredictionConfidence string

const (
	ConfidenceLow      PredictionConfidence = "low"
	ConfidenceMedium   PredictionConfidence = "medium"
	ConfidenceHigh     PredictionConfidence = "high"
	ConfidenceVeryHigh PredictionConfidence = "very_high"
)

// MarketTrend classifies the direction of a market.
type MarketTrend string

const (
	TrendStrongDecline MarketTrend = "strong_decline"
	TrendDecline       MarketTrend = "decline"
	TrendStable        MarketTrend = "stable"
	TrendGrowth        MarketTrend = "growth"
	TrendStrongGrowth  MarketTrend = "strong_growth"
)

// MarketPhase classifies the current market balance.
type MarketPhase string

const (
	PhaseBuyerMarket  MarketPhase = "buyer_market"
	PhaseSellerMarket MarketPhase = "seller_market"
	PhaseBalanced     MarketPhase = "balanced"
)

// OpportunityType classifies what drives an emerging opportunity.
type OpportunityType string

const (
	OpportunityUndervalued    OpportunityType = "undervalued"
	OpportunityGrowth         OpportunityType = "growth_potential"
	OpportunityInfrastructure OpportunityType = "infrastructure_development"
)

// PropertyAppreciationForecast predicts appreciation over 1, 3 and 5 year
// horizons. Appreciation values are signed fractions (0.04 is 4%).
type PropertyAppreciationForecast struct {
	OneYearAppreciation   float64 `json:"one_year_appreciation"`
	ThreeYearAppreciation float64 `json:"three_year_appreciation"`
	FiveYearAppreciation  float64 `json:"five_year_appreciation"`

	ConfidenceLevel PredictionConfidence `json:"confidence_level"`
	MarketTrend     MarketTrend          `json:"market_trend"`
	RiskScore       float64              `json:"risk_score"`

	// Contributing factors, retained for explainability
	CountyGrowthFactor     float64 `json:"county_growth_factor"`
	EconomicFactor         float64 `json:"economic_factor"`
	GeographicFactor       float64 `json:"geographic_factor"`
	MarketTimingFactor     float64 `json:"market_timing_factor"`
	PropertySpecificFactor float64 `json:"property_specific_factor"`

	PredictionDate time.Time `json:"prediction_date"`
	ModelVersion   string    `json:"model_version"`
}

// MonthWindow is an inclusive month range.
type MonthWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MarketTimingAnalysis holds market timing insight for a county.
type MarketTimingAnalysis struct {
	OptimalBuyWindow   MonthWindow `json:"optimal_buy_window"`
	OptimalSellWindow  MonthWindow `json:"optimal_sell_window"`
	CurrentMarketPhase MarketPhase `json:"current_market_phase"`

	SupplyDemandRatio       float64 `json:"supply_demand_ratio"`
	PriceMomentum           float64 `json:"price_momentum"`
	InvestmentActivityLevel float64 `json:"investment_activity_level"`
	SeasonalAdjustment      float64 `json:"seasonal_adjustment"`

	MarketVolatility      float64 `json:"market_volatility"`
	EconomicUncertainty   float64 `json:"economic_uncertainty"`
	ExternalFactorsImpact float64 `json:"external_factors_impact"`

	AnalysisDate    time.Time `json:"analysis_date"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// EmergingOpportunity is a ranked investment opportunity. Only opportunities
// with OpportunityScore above 60 are emitted.
type EmergingOpportunity struct {
	PropertyID      string          `json:"property_id"`
	County          string          `json:"county"`
	OpportunityType OpportunityType `json:"opportunity_type"`

	OpportunityScore      float64 `json:"opportunity_score"`
	PotentialAppreciation float64 `json:"potential_appreciation"`
	RiskAdjustedReturn    float64 `json:"risk_adjusted_return"`

	PrimaryDrivers    []string `json:"primary_drivers"`
	SupportingFactors []string `json:"supporting_factors"`
	RiskFactors       []string `json:"risk_factors"`

	ExpectedTimelineMonths int                  `json:"expected_timeline_months"`
	ConfidenceLevel        PredictionConfidence `json:"confidence_level"`

	DiscoveryDate time.Time `json:"discovery_date"`
}
