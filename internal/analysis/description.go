package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"auctionintel/server/internal/models"
)

// Scoring weights for description features. Penalties are negative.
const (
	squareBonus       = 8.0
	optimalRatioBonus = 10.0
	longNarrowPenalty = -5.0

	cornerLotBonus    = 15.0
	irregularPenalty  = -8.0
	partialLotPenalty = -12.0

	premiumSubdivisionBonus  = 20.0
	standardSubdivisionBonus = 5.0
	industrialPenalty        = -10.0
	ruralBonus               = 3.0

	namedRoadBonus       = 8.0
	highwayAccessBonus   = 12.0
	privateAccessPenalty = -5.0

	metesBoundsPenalty = -3.0
	surveyPenalty      = -5.0
	easementPenalty    = -7.0
	restrictionPenalty = -4.0

	waterfrontPremium    = 25.0
	waterViewPremium     = 15.0
	waterAccessPremium   = 12.0
	creekFrontagePremium = 18.0
	nearWaterBonus       = 8.0
)

var (
	// Dimension patterns, tried in order; the first match wins.
	dimensionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*['"]*\s*[X×x]\s*(\d+\.?\d*)`),
		regexp.MustCompile(`(?i)(\d+)'?\s*[X×x]\s*(\d+)'?`),
		regexp.MustCompile(`(?i)(\d+\.?\d*)\s*['"]*\s*[X×x]\s*(\d+\.?\d*)\s*['"]*`),
	}

	irregularPattern = regexp.MustCompile(`(?i)\bIRR\b|\birregular\b`)
	cornerPattern    = regexp.MustCompile(`(?i)\bCOR\b|\bcorner\b`)
	partialPattern   = regexp.MustCompile(`(?i)\bPT\b|\bpart\b|\bpartial\b`)
	frontagePattern  = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*['"]*\s*frontage`)

	premiumSubdivisionPatterns = compileAll(
		`\blakefront\b`, `\bwater\s*view\b`, `\bcreek\s*side\b`,
		`\bpark\s*view\b`, `\bhighlands?\b`, `\bestate\b`, `\bmanor\b`,
	)
	standardSubdivisionPatterns = compileAll(
		`\bsubdivision\b`, `\bsubd?\b`, `\badd\b`, `\baddition\b`,
		`\bhills?\b`, `\bmeadows?\b`, `\bgrove\b`,
	)
	industrialPatterns = compileAll(
		`\bfactory\b`, `\bindustrial\b`, `\bcommercial\b`,
		`\bwarehouse\b`, `\bplant\b`,
	)
	ruralPatterns = compileAll(
		`\brural\b`, `\bfarm\b`, `\bagricultural\b`, `\bacres?\b`,
	)

	namedRoadPattern = regexp.MustCompile(`(?i)\b\w+\s+(road|rd|street|st|avenue|ave|drive|dr|lane|ln|way|blvd|boulevard)\b`)
	highwayPattern   = regexp.MustCompile(`(?i)\bhighway\b|\bhwy\b|\bus\s*\d+\b|\bstate\s*route\b`)
	privatePattern   = regexp.MustCompile(`(?i)\bprivate\b|\baccess\s*easement\b`)

	metesBoundsPattern = regexp.MustCompile(`(?i)\bbeg\b|\bpob\b|\brun\b|\bthence\b|\bbearing\b`)
	surveyPattern      = regexp.MustCompile(`(?i)\bsurvey\b|\bresur\b|\bplat\b|\bpb\s*\d+\b`)
	easementPattern    = regexp.MustCompile(`(?i)\beasement\b|\bright\s*of\s*way\b|\butility\b`)
	restrictionPattern = regexp.MustCompile(`(?i)\brestriction\b|\bcovenant\b|\bzoning\b`)

	// Water feature patterns, checked in priority order; the first match
	// wins and no stacking occurs.
	waterfrontPattern    = regexp.MustCompile(`(?i)\bwaterfront\b|\blakefront\b|\briver\s*front\b|\bocean\s*front\b`)
	creekFrontagePattern = regexp.MustCompile(`(?i)\bcreek\s*frontage\b|\bstream\s*frontage\b`)
	waterViewPattern     = regexp.MustCompile(`(?i)\bwater\s*view\b|\blake\s*view\b|\briver\s*view\b`)
	waterAccessPattern   = regexp.MustCompile(`(?i)\bwater\s*access\b|\blake\s*access\b|\bpond\s*access\b`)
	nearWaterPattern     = regexp.MustCompile(`(?i)\bnear\s+(spring|creek|lake|pond|stream|river)\b`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// DescriptionAnalyzer extracts investment signals from free-text legal
// property descriptions. It is stateless and safe for concurrent use.
type DescriptionAnalyzer struct{}

// NewDescriptionAnalyzer creates a description analyzer.
func NewDescriptionAnalyzer() *DescriptionAnalyzer {
	return &DescriptionAnalyzer{}
}

// AnalyzeDescription extracts property intelligence from a legal
// description. An empty description yields the zero-value result; the
// analyzer never fails on malformed input.
func (a *DescriptionAnalyzer) AnalyzeDescription(description string) models.PropertyIntelligence {
	description = strings.TrimSpace(description)
	if description == "" {
		return models.PropertyIntelligence{}
	}

	intel := models.PropertyIntelligence{
		LotDimensionsScore:      a.analyzeLotDimensions(description),
		ShapeEfficiencyScore:    a.analyzeShapeEfficiency(description),
		CornerLotBonus:          a.analyzeCornerLot(description),
		IrregularShapePenalty:   a.analyzeIrregularShape(description),
		SubdivisionQualityScore: a.analyzeSubdivisionQuality(description),
		RoadAccessScore:         a.analyzeRoadAccess(description),
		LocationTypeScore:       0, // folded into subdivision quality
		TitleComplexityScore:    a.analyzeTitleComplexity(description),
		SurveyRequirementScore:  a.analyzeSurveyRequirements(description),
		PremiumWaterAccessScore: a.analyzePremiumWaterFeatures(description),
	}

	intel.TotalDescriptionScore = totalDescriptionScore(intel)
	return intel
}

func (a *DescriptionAnalyzer) analyzeLotDimensions(description string) float64 {
	for _, pattern := range dimensionPatterns {
		match := pattern.FindStringSubmatch(description)
		if match == nil {
			continue
		}

		width, errW := strconv.ParseFloat(match[1], 64)
		length, errL := strconv.ParseFloat(match[2], 64)
		if errW != nil || errL != nil || width <= 0 || length <= 0 {
			continue
		}

		score := 0.0

		// Area scoring assumes dimensions in feet
		area := width * length
		if area >= 2000 && area <= 50000 {
			score += 5.0
		} else if area >= 500 && area <= 100000 {
			score += 2.0
		}

		// Shape ratio scoring, closer to square is better
		ratio := max64(width, length) / min64(width, length)
		switch {
		case ratio <= 1.5:
			score += squareBonus
		case ratio <= 2.0:
			score += optimalRatioBonus / 2
		case ratio >= 4.0:
			score += longNarrowPenalty
		}

		// Use the first dimension pattern that matches
		return score
	}
	return 0
}

func (a *DescriptionAnalyzer) analyzeShapeEfficiency(description string) float64 {
	match := frontagePattern.FindStringSubmatch(description)
	if match == nil {
		return 0
	}
	frontage, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	switch {
	case frontage >= 100:
		return 8.0
	case frontage >= 50:
		return 4.0
	default:
		return -2.0
	}
}

func (a *DescriptionAnalyzer) analyzeCornerLot(description string) float64 {
	if cornerPattern.MatchString(description) {
		return cornerLotBonus
	}
	return 0
}

func (a *DescriptionAnalyzer) analyzeIrregularShape(description string) float64 {
	score := 0.0
	if irregularPattern.MatchString(description) {
		score += irregularPenalty
	}
	if partialPattern.MatchString(description) {
		score += partialLotPenalty
	}
	return score
}

func (a *DescriptionAnalyzer) analyzeSubdivisionQuality(description string) float64 {
	score := 0.0

	if matchAny(premiumSubdivisionPatterns, description) {
		score += premiumSubdivisionBonus
	} else if matchAny(standardSubdivisionPatterns, description) {
		// Standard only applies when no premium keyword matched
		score += standardSubdivisionBonus
	}

	if matchAny(industrialPatterns, description) {
		score += industrialPenalty
	}
	if matchAny(ruralPatterns, description) {
		score += ruralBonus
	}

	return score
}

func (a *DescriptionAnalyzer) analyzeRoadAccess(description string) float64 {
	score := 0.0

	if highwayPattern.MatchString(description) {
		score += highwayAccessBonus
	} else if namedRoadPattern.MatchString(description) {
		score += namedRoadBonus
	}

	if privatePattern.MatchString(description) {
		score += privateAccessPenalty
	}

	return score
}

func (a *DescriptionAnalyzer) analyzeTitleComplexity(description string) float64 {
	score := 0.0
	if metesBoundsPattern.MatchString(description) {
		score += metesBoundsPenalty
	}
	if easementPattern.MatchString(description) {
		score += easementPenalty
	}
	if restrictionPattern.MatchString(description) {
		score += restrictionPenalty
	}
	return score
}

func (a *DescriptionAnalyzer) analyzeSurveyRequirements(description string) float64 {
	if surveyPattern.MatchString(description) {
		return surveyPenalty
	}
	return 0
}

func (a *DescriptionAnalyzer) analyzePremiumWaterFeatures(description string) float64 {
	switch {
	case waterfrontPattern.MatchString(description):
		return waterfrontPremium
	case creekFrontagePattern.MatchString(description):
		return creekFrontagePremium
	case waterViewPattern.MatchString(description):
		return waterViewPremium
	case waterAccessPattern.MatchString(description):
		return waterAccessPremium
	case nearWaterPattern.MatchString(description):
		return nearWaterBonus
	}
	return 0
}

// totalDescriptionScore sums all sub-scores and normalizes to [0,100].
// The shift and scale assume a theoretical range of roughly -50 to +75.
func totalDescriptionScore(intel models.PropertyIntelligence) float64 {
	total := intel.LotDimensionsScore +
		intel.ShapeEfficiencyScore +
		intel.CornerLotBonus +
		intel.IrregularShapePenalty +
		intel.SubdivisionQualityScore +
		intel.RoadAccessScore +
		intel.LocationTypeScore +
		intel.TitleComplexityScore +
		intel.SurveyRequirementScore +
		intel.PremiumWaterAccessScore

	normalized := (total + 50) * (100.0 / 125.0)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 100 {
		normalized = 100
	}
	return round1(normalized)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
