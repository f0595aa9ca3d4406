// Package scoring implements the composite investment scores for tax-auction
// properties. Two formulas exist: the legacy four-factor score, which is the
// project's canonical regression fixture, and the enhanced six-factor score
// that incorporates description and county intelligence and is what batch
// scoring persists.
package scoring

import (
	"math"
	"strings"

	"auctionintel/server/config"
)

// minAcreage is the floor applied to acreage before any division. Every
// reimplementation of the enhanced score must preserve this guard.
const minAcreage = 0.01

// LegacyScore computes the original four-factor investment score. Weights
// should sum to 1.0. A non-positive acreage means no usable acreage data and
// yields 0.
//
// Reference fixture: LegacyScore(5000, 3, 6, 0.8, DefaultInvestmentScoreWeights)
// returns 52.8.
func LegacyScore(pricePerAcre, acreage, waterScore, assessedValueRatio float64, weights config.InvestmentScoreWeights) float64 {
	if !isFinite(acreage) || acreage <= 0 {
		return 0
	}
	if !isFinite(pricePerAcre) {
		pricePerAcre = 0
	}
	if !isFinite(waterScore) {
		waterScore = 0
	}
	if !isFinite(assessedValueRatio) {
		assessedValueRatio = 1.0
	}

	score := 0.0

	// Lower price per acre is better; cap the floor so extremely cheap
	// parcels cannot dominate the score
	if pricePerAcre > 0 {
		pricePerAcre = math.Max(pricePerAcre, 1.0)
		score += math.Min(100, 10000/pricePerAcre) * weights.PricePerAcre
	}

	// Acreage preference peaks inside the preferred range
	acreageScore := 0.0
	switch {
	case acreage >= config.PreferredMinAcres && acreage <= config.PreferredMaxAcres:
		acreageScore = 100
	case acreage < config.PreferredMinAcres:
		acreageScore = math.Max(0, 100*acreage/config.PreferredMinAcres)
	default:
		excess := acreage - config.PreferredMaxAcres
		acreageScore = math.Max(0, 100-excess*10)
	}
	score += acreageScore * weights.AcreagePreference

	score += math.Min(100, waterScore*10) * weights.WaterFeatures

	// Lower bid-to-assessed ratio means a bigger bargain
	if assessedValueRatio > 0 {
		score += math.Min(100, 100/assessedValueRatio) * weights.AssessedValueRatio
	}

	return round1(score)
}

// EnhancedScore computes the six-factor investment score used by batch
// scoring. Acreage is floored at 0.01 before the price-per-acre division; a
// missing assessed value contributes 0 to the ratio factor. The result is
// clamped to [0,100] and rounded to one decimal.
func EnhancedScore(amount, acreage, assessedValue, waterScore, descTotalScore, countyMarketScore float64) float64 {
	pricePerAcre := amount / math.Max(acreage, minAcreage)
	priceScore := clamp(100-pricePerAcre/100, 0, 100)

	ratioScore := 0.0
	if assessedValue > 0 {
		ratio := amount / assessedValue
		switch {
		case ratio < 0.1:
			ratioScore = 100
		case ratio < 0.3:
			ratioScore = 80
		case ratio < 0.5:
			ratioScore = 60
		default:
			ratioScore = math.Max(0, 100-ratio*100)
		}
	}

	acreageScore := 50.0
	switch {
	case acreage >= 2.0 && acreage <= 4.0:
		acreageScore = 100
	case acreage >= 1.0 && acreage <= 6.0:
		acreageScore = 80
	case acreage > 10:
		acreageScore = math.Max(20, 100-acreage*2)
	}

	enhanced := priceScore*0.25 +
		ratioScore*0.10 +
		acreageScore*0.15 +
		waterScore*0.15 +
		descTotalScore*0.25 +
		countyMarketScore*0.10

	return round1(clamp(enhanced, 0, 100))
}

// WaterScore computes the water feature score from keyword matching over a
// description. Matching is case-insensitive substring matching; each matched
// keyword contributes its tier weight.
func WaterScore(description string) float64 {
	if description == "" {
		return 0
	}
	lower := strings.ToLower(description)

	score := 0.0
	for _, keyword := range config.PrimaryWaterKeywords {
		if strings.Contains(lower, keyword) {
			score += config.PrimaryWaterWeight
		}
	}
	for _, keyword := range config.SecondaryWaterKeywords {
		if strings.Contains(lower, keyword) {
			score += config.SecondaryWaterWeight
		}
	}
	for _, keyword := range config.TertiaryWaterKeywords {
		if strings.Contains(lower, keyword) {
			score += config.TertiaryWaterWeight
		}
	}
	return score
}

// EstimatedAllInCost estimates the total acquisition cost of a winning bid
// including recording, county and miscellaneous fees.
func EstimatedAllInCost(bidAmount, recordingFee, countyFeePercent, miscFees float64) float64 {
	if !isFinite(bidAmount) || bidAmount <= 0 {
		return 0
	}
	return bidAmount + recordingFee + bidAmount*countyFeePercent + miscFees
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
