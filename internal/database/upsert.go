package database

import (
	"fmt"

	"gorm.io/gorm"

	"auctionintel/server/internal/models"
)

// UpsertScores writes the recomputed scores for a batch of properties inside
// the given transaction. Updates are idempotent per property id, so a retried
// or resumed batch run converges to the same state.
func UpsertScores(tx *gorm.DB, updates []*models.ScoreUpdate) error {
	for _, update := range updates {
		result := tx.Exec(`
			UPDATE properties SET
				investment_score = ?,

				lot_dimensions_score = ?,
				shape_efficiency_score = ?,
				corner_lot_bonus = ?,
				irregular_shape_penalty = ?,
				subdivision_quality_score = ?,
				road_access_score = ?,
				location_type_score = ?,
				title_complexity_score = ?,
				survey_requirement_score = ?,
				premium_water_access_score = ?,
				total_description_score = ?,

				county_market_score = ?,
				geographic_score = ?,
				market_timing_score = ?,

				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`,
			update.InvestmentScore,

			update.Description.LotDimensionsScore,
			update.Description.ShapeEfficiencyScore,
			update.Description.CornerLotBonus,
			update.Description.IrregularShapePenalty,
			update.Description.SubdivisionQualityScore,
			update.Description.RoadAccessScore,
			update.Description.LocationTypeScore,
			update.Description.TitleComplexityScore,
			update.Description.SurveyRequirementScore,
			update.Description.PremiumWaterAccessScore,
			update.Description.TotalDescriptionScore,

			update.County.CountyMarketScore,
			update.County.GeographicScore,
			update.County.MarketTimingScore,

			update.PropertyID,
		)
		if result.Error != nil {
			return fmt.Errorf("failed to update scores for property %d: %w", update.PropertyID, result.Error)
		}
	}
	return nil
}
