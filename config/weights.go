package config

// InvestmentScoreWeights holds the factor weights for the legacy composite
// investment score. Weights should sum to 1.0.
type InvestmentScoreWeights struct {
	PricePerAcre       float64
	AcreagePreference  float64
	WaterFeatures      float64
	AssessedValueRatio float64
}

// DefaultInvestmentScoreWeights are the production weights for the legacy
// investment score.
var DefaultInvestmentScoreWeights = InvestmentScoreWeights{
	PricePerAcre:       0.4,
	AcreagePreference:  0.3,
	WaterFeatures:      0.2,
	AssessedValueRatio: 0.1,
}

// Preferred acreage range, peak score inside these bounds.
const (
	PreferredMinAcres = 2.0
	PreferredMaxAcres = 4.0
)

// Water feature keyword tiers. Matching is case-insensitive substring
// matching; each matched keyword contributes its tier weight.
var (
	PrimaryWaterKeywords   = []string{"creek", "stream", "river", "lake", "pond", "spring"}
	SecondaryWaterKeywords = []string{"branch", "run", "brook", "tributary", "wetland", "marsh"}
	TertiaryWaterKeywords  = []string{"water", "aquatic", "riparian", "shore", "bank", "waterfront"}
)

// Water keyword scoring weights per tier.
const (
	PrimaryWaterWeight   = 3.0
	SecondaryWaterWeight = 2.0
	TertiaryWaterWeight  = 1.0
)
