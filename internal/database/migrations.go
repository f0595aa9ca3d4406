package database

import "fmt"

func (d *Database) RunMigrations() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parcel_id TEXT NOT NULL,
			county TEXT NOT NULL,
			amount REAL NOT NULL,
			acreage REAL,
			description TEXT,
			assessed_value REAL,
			water_score REAL,
			investment_score REAL,
			rank INTEGER,

			lot_dimensions_score REAL,
			shape_efficiency_score REAL,
			corner_lot_bonus REAL,
			irregular_shape_penalty REAL,
			subdivision_quality_score REAL,
			road_access_score REAL,
			location_type_score REAL,
			title_complexity_score REAL,
			survey_requirement_score REAL,
			premium_water_access_score REAL,
			total_description_score REAL,

			county_market_score REAL,
			geographic_score REAL,
			market_timing_score REAL,

			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create properties table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_county
		ON properties(county);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_investment_score
		ON properties(investment_score);
	`)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS prediction_validation_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT UNIQUE NOT NULL,
			accuracy_score REAL,
			precision_score REAL,
			recall_score REAL,
			mean_absolute_error REAL,
			root_mean_square_error REAL,
			confidence_calibration REAL,
			prediction_coverage REAL,
			average_confidence REAL,
			validation_status TEXT,
			total_predictions INTEGER,
			successful_predictions INTEGER,
			failed_predictions INTEGER,
			validation_period TEXT,
			prediction_horizon TEXT,
			county_performance TEXT,
			validation_timestamp TIMESTAMP,
			execution_time_seconds REAL,
			model_version TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create prediction_validation_results table: %v", err)
	}

	_, err = d.db.Exec(`
		CREATE TABLE IF NOT EXISTS prediction_backtest_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT UNIQUE NOT NULL,
			start_date TIMESTAMP,
			end_date TIMESTAMP,
			prediction_horizon_months INTEGER,
			test_properties_count INTEGER,
			overall_accuracy REAL,
			market_trend_accuracy REAL,
			appreciation_mae REAL,
			appreciation_rmse REAL,
			high_confidence_accuracy REAL,
			medium_confidence_accuracy REAL,
			low_confidence_accuracy REAL,
			county_accuracy TEXT,
			backtest_timestamp TIMESTAMP,
			execution_time_seconds REAL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create prediction_backtest_results table: %v", err)
	}

	return nil
}
