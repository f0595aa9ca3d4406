package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"auctionintel/server/internal/models"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

// GetPropertiesBatch returns one page of properties ordered by id, for the
// batch scorer to walk the whole table deterministically.
func (d *Database) GetPropertiesBatch(limit, offset int) ([]*models.Property, error) {
	query := `
        SELECT
            id,
            parcel_id,
            county,
            amount,
            acreage,
            COALESCE(description, '') as description,
            assessed_value,
            water_score,
            investment_score,
            rank,
            COALESCE(created_at, CURRENT_TIMESTAMP) as created_at,
            COALESCE(updated_at, CURRENT_TIMESTAMP) as updated_at
        FROM properties
        ORDER BY id
        LIMIT ? OFFSET ?
    `
	rows, err := d.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProperties(rows)
}

// GetPropertiesByCounty returns all properties for a county, highest score
// first.
func (d *Database) GetPropertiesByCounty(county string, limit int) ([]*models.Property, error) {
	query := `
        SELECT
            id,
            parcel_id,
            county,
            amount,
            acreage,
            COALESCE(description, '') as description,
            assessed_value,
            water_score,
            investment_score,
            rank,
            COALESCE(created_at, CURRENT_TIMESTAMP) as created_at,
            COALESCE(updated_at, CURRENT_TIMESTAMP) as updated_at
        FROM properties
        WHERE (? = '' OR LOWER(county) = LOWER(?))
        ORDER BY investment_score DESC
        LIMIT ?
    `
	rows, err := d.db.Query(query, county, county, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProperties(rows)
}

// GetPropertySample returns up to sampleSize scored properties for a
// validation run.
func (d *Database) GetPropertySample(sampleSize int) ([]*models.Property, error) {
	query := `
        SELECT
            id,
            parcel_id,
            county,
            amount,
            acreage,
            COALESCE(description, '') as description,
            assessed_value,
            water_score,
            investment_score,
            rank,
            COALESCE(created_at, CURRENT_TIMESTAMP) as created_at,
            COALESCE(updated_at, CURRENT_TIMESTAMP) as updated_at
        FROM properties
        WHERE county IS NOT NULL AND county != ''
        AND investment_score IS NOT NULL
        ORDER BY RANDOM()
        LIMIT ?
    `
	rows, err := d.db.Query(query, sampleSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProperties(rows)
}

// PropertiesInRange returns properties created inside the given window, used
// as the historical slice for backtesting.
func (d *Database) PropertiesInRange(start, end time.Time) ([]*models.Property, error) {
	query := `
        SELECT
            id,
            parcel_id,
            county,
            amount,
            acreage,
            COALESCE(description, '') as description,
            assessed_value,
            water_score,
            investment_score,
            rank,
            COALESCE(created_at, CURRENT_TIMESTAMP) as created_at,
            COALESCE(updated_at, CURRENT_TIMESTAMP) as updated_at
        FROM properties
        WHERE created_at >= ? AND created_at <= ?
        ORDER BY created_at
    `
	rows, err := d.db.Query(query, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProperties(rows)
}

// CountProperties returns the total number of property rows.
func (d *Database) CountProperties() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count)
	return count, err
}

// UpdateRanks recomputes the dense rank of every scored property: highest
// investment score first, ties broken by lower bid amount.
func (d *Database) UpdateRanks() error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE properties
		SET rank = (
			SELECT COUNT(*) + 1
			FROM properties AS p2
			WHERE p2.investment_score > properties.investment_score
			   OR (p2.investment_score = properties.investment_score
			       AND p2.amount < properties.amount)
		)
		WHERE investment_score IS NOT NULL
	`)
	if err != nil {
		return fmt.Errorf("failed to update ranks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SaveValidationResult appends one validation run. Rows are never updated.
func (d *Database) SaveValidationResult(result *models.ValidationResult) error {
	countyJSON, err := json.Marshal(result.CountyPerformance)
	if err != nil {
		return fmt.Errorf("failed to encode county performance: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO prediction_validation_results (
			run_id, accuracy_score, precision_score, recall_score,
			mean_absolute_error, root_mean_square_error,
			confidence_calibration, prediction_coverage, average_confidence,
			validation_status, total_predictions, successful_predictions,
			failed_predictions, validation_period, prediction_horizon,
			county_performance, validation_timestamp, execution_time_seconds,
			model_version
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		result.RunID.String(),
		result.AccuracyScore,
		result.PrecisionScore,
		result.RecallScore,
		result.MeanAbsoluteError,
		result.RootMeanSquareErr,
		result.ConfidenceCalibration,
		result.PredictionCoverage,
		result.AverageConfidence,
		string(result.ValidationStatus),
		result.TotalPredictions,
		result.SuccessfulPredictions,
		result.FailedPredictions,
		result.ValidationPeriod,
		result.PredictionHorizon,
		string(countyJSON),
		result.ValidationTimestamp.Format(time.RFC3339),
		result.ValidationDuration,
		result.ModelVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to insert validation result: %w", err)
	}
	return nil
}

// SaveBacktestResult appends one backtest run. Rows are never updated.
func (d *Database) SaveBacktestResult(result *models.BacktestResult) error {
	countyJSON, err := json.Marshal(result.CountyAccuracy)
	if err != nil {
		return fmt.Errorf("failed to encode county accuracy: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO prediction_backtest_results (
			run_id, start_date, end_date, prediction_horizon_months,
			test_properties_count, overall_accuracy, market_trend_accuracy,
			appreciation_mae, appreciation_rmse,
			high_confidence_accuracy, medium_confidence_accuracy,
			low_confidence_accuracy, county_accuracy,
			backtest_timestamp, execution_time_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		result.RunID.String(),
		result.StartDate.Format(time.RFC3339),
		result.EndDate.Format(time.RFC3339),
		result.PredictionHorizonMonths,
		result.TestPropertiesCount,
		result.OverallAccuracy,
		result.MarketTrendAccuracy,
		result.AppreciationMAE,
		result.AppreciationRMSE,
		result.HighConfidenceAccuracy,
		result.MediumConfidenceAccuracy,
		result.LowConfidenceAccuracy,
		string(countyJSON),
		result.BacktestTimestamp.Format(time.RFC3339),
		result.ExecutionTimeSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to insert backtest result: %w", err)
	}
	return nil
}

// RecentValidationResults returns the newest validation runs, newest first.
func (d *Database) RecentValidationResults(limit int) ([]models.ValidationResult, error) {
	rows, err := d.db.Query(`
		SELECT run_id, accuracy_score, precision_score, recall_score,
		       mean_absolute_error, root_mean_square_error,
		       confidence_calibration, prediction_coverage, average_confidence,
		       validation_status, total_predictions, successful_predictions,
		       failed_predictions, validation_period, prediction_horizon,
		       county_performance, validation_timestamp, execution_time_seconds,
		       model_version
		FROM prediction_validation_results
		ORDER BY validation_timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanValidationResults(rows)
}

// ValidationHistory returns validation runs from the last N days, newest
// first.
func (d *Database) ValidationHistory(days int) ([]models.ValidationResult, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	rows, err := d.db.Query(`
		SELECT run_id, accuracy_score, precision_score, recall_score,
		       mean_absolute_error, root_mean_square_error,
		       confidence_calibration, prediction_coverage, average_confidence,
		       validation_status, total_predictions, successful_predictions,
		       failed_predictions, validation_period, prediction_horizon,
		       county_performance, validation_timestamp, execution_time_seconds,
		       model_version
		FROM prediction_validation_results
		WHERE validation_timestamp >= ?
		ORDER BY validation_timestamp DESC
	`, cutoff.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanValidationResults(rows)
}

// RecentBacktestResults returns the newest backtest runs, newest first.
func (d *Database) RecentBacktestResults(limit int) ([]models.BacktestResult, error) {
	rows, err := d.db.Query(`
		SELECT run_id, start_date, end_date, prediction_horizon_months,
		       test_properties_count, overall_accuracy, market_trend_accuracy,
		       appreciation_mae, appreciation_rmse,
		       high_confidence_accuracy, medium_confidence_accuracy,
		       low_confidence_accuracy, county_accuracy,
		       backtest_timestamp, execution_time_seconds
		FROM prediction_backtest_results
		ORDER BY backtest_timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.BacktestResult
	for rows.Next() {
		var r models.BacktestResult
		var runID, startDate, endDate, countyJSON, timestamp string

		err := rows.Scan(
			&runID,
			&startDate,
			&endDate,
			&r.PredictionHorizonMonths,
			&r.TestPropertiesCount,
			&r.OverallAccuracy,
			&r.MarketTrendAccuracy,
			&r.AppreciationMAE,
			&r.AppreciationRMSE,
			&r.HighConfidenceAccuracy,
			&r.MediumConfidenceAccuracy,
			&r.LowConfidenceAccuracy,
			&countyJSON,
			&timestamp,
			&r.ExecutionTimeSeconds,
		)
		if err != nil {
			return nil, err
		}

		if id, err := uuid.Parse(runID); err == nil {
			r.RunID = id
		}
		if t, err := time.Parse(time.RFC3339, startDate); err == nil {
			r.StartDate = t
		}
		if t, err := time.Parse(time.RFC3339, endDate); err == nil {
			r.EndDate = t
		}
		if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
			r.BacktestTimestamp = t
		}
		r.CountyAccuracy = map[string]float64{}
		if countyJSON != "" {
			if err := json.Unmarshal([]byte(countyJSON), &r.CountyAccuracy); err != nil {
				return nil, fmt.Errorf("failed to decode county accuracy: %w", err)
			}
		}

		results = append(results, r)
	}
	return results, rows.Err()
}

func scanProperties(rows *sql.Rows) ([]*models.Property, error) {
	var properties []*models.Property
	for rows.Next() {
		var p models.Property
		var acreage, assessedValue, waterScore, investmentScore sql.NullFloat64
		var rank sql.NullInt64
		var createdAt, updatedAt string

		err := rows.Scan(
			&p.ID,
			&p.ParcelID,
			&p.County,
			&p.Amount,
			&acreage,
			&p.Description,
			&assessedValue,
			&waterScore,
			&investmentScore,
			&rank,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, err
		}

		// Handle nullable numeric fields
		if acreage.Valid {
			v := acreage.Float64
			p.Acreage = &v
		}
		if assessedValue.Valid {
			v := assessedValue.Float64
			p.AssessedValue = &v
		}
		if waterScore.Valid {
			v := waterScore.Float64
			p.WaterScore = &v
		}
		if investmentScore.Valid {
			v := investmentScore.Float64
			p.InvestmentScore = &v
		}
		if rank.Valid {
			v := int(rank.Int64)
			p.Rank = &v
		}

		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			p.UpdatedAt = t
		}

		properties = append(properties, &p)
	}
	return properties, rows.Err()
}

func scanValidationResults(rows *sql.Rows) ([]models.ValidationResult, error) {
	var results []models.ValidationResult
	for rows.Next() {
		var r models.ValidationResult
		var runID, status, countyJSON, timestamp string

		err := rows.Scan(
			&runID,
			&r.AccuracyScore,
			&r.PrecisionScore,
			&r.RecallScore,
			&r.MeanAbsoluteError,
			&r.RootMeanSquareErr,
			&r.ConfidenceCalibration,
			&r.PredictionCoverage,
			&r.AverageConfidence,
			&status,
			&r.TotalPredictions,
			&r.SuccessfulPredictions,
			&r.FailedPredictions,
			&r.ValidationPeriod,
			&r.PredictionHorizon,
			&countyJSON,
			&timestamp,
			&r.ValidationDuration,
			&r.ModelVersion,
		)
		if err != nil {
			return nil, err
		}

		if id, err := uuid.Parse(runID); err == nil {
			r.RunID = id
		}
		r.ValidationStatus = models.ValidationStatus(status)
		if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
			r.ValidationTimestamp = t
		}
		r.CountyPerformance = map[string]float64{}
		if countyJSON != "" {
			if err := json.Unmarshal([]byte(countyJSON), &r.CountyPerformance); err != nil {
				return nil, fmt.Errorf("failed to decode county performance: %w", err)
			}
		}

		results = append(results, r)
	}
	return results, rows.Err()
}
