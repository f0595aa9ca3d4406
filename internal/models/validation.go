package models

import (
	"time"

	"github.com/google/uuid"
)

// ValidationStatus classifies a validation run by accuracy score.
type ValidationStatus string

const (
	StatusExcellent  ValidationStatus = "excellent"
	StatusGood       ValidationStatus = "good"
	StatusAcceptable ValidationStatus = "acceptable"
	StatusPoor       ValidationStatus = "poor"
	StatusCritical   ValidationStatus = "critical"
)

// StatusForAccuracy maps an accuracy score to its status tier. Thresholds
// are inclusive.
func StatusForAccuracy(accuracy float64) ValidationStatus {
	switch {
	case accuracy >= 0.90:
		return StatusExcellent
	case accuracy >= 0.80:
		return StatusGood
	case accuracy >= 0.70:
		return StatusAcceptable
	case accuracy >= 0.50:
		return StatusPoor
	default:
		return StatusCritical
	}
}

// ValidationResult aggregates one cross-validation run. Rows are append-only
// once persisted.
type ValidationResult struct {
	RunID uuid.UUID `json:"run_id"`

	AccuracyScore      float64 `json:"accuracy_score"`
	PrecisionScore     float64 `json:"precision_score"`
	RecallScore        float64 `json:"recall_score"`
	MeanAbsoluteError  float64 `json:"mean_absolute_error"`
	RootMeanSquareErr  float64 `json:"root_mean_square_error"`

	ConfidenceCalibration float64 `json:"confidence_calibration"`
	PredictionCoverage    float64 `json:"prediction_coverage"`
	AverageConfidence     float64 `json:"average_confidence"`

	ValidationStatus      ValidationStatus `json:"validation_status"`
	TotalPredictions      int              `json:"total_predictions"`
	SuccessfulPredictions int              `json:"successful_predictions"`
	FailedPredictions     int              `json:"failed_predictions"`

	ValidationPeriod  string `json:"validation_period"`
	PredictionHorizon string `json:"prediction_horizon"`

	CountyPerformance map[string]float64 `json:"county_performance"`

	ValidationTimestamp time.Time `json:"validation_timestamp"`
	ValidationDuration  float64   `json:"validation_duration"`
	ModelVersion        string    `json:"model_version"`
}

// BacktestResult aggregates one backtest run. Rows are append-only once
// persisted.
type BacktestResult struct {
	RunID uuid.UUID `json:"run_id"`

	StartDate                time.Time `json:"start_date"`
	EndDate                  time.Time `json:"end_date"`
	PredictionHorizonMonths  int       `json:"prediction_horizon_months"`
	TestPropertiesCount      int       `json:"test_properties_count"`

	OverallAccuracy     float64 `json:"overall_accuracy"`
	MarketTrendAccuracy float64 `json:"market_trend_accuracy"`
	AppreciationMAE     float64 `json:"appreciation_mae"`
	AppreciationRMSE    float64 `json:"appreciation_rmse"`

	HighConfidenceAccuracy   float64 `json:"high_confidence_accuracy"`
	MediumConfidenceAccuracy float64 `json:"medium_confidence_accuracy"`
	LowConfidenceAccuracy    float64 `json:"low_confidence_accuracy"`

	CountyAccuracy map[string]float64 `json:"county_accuracy"`

	BacktestTimestamp    time.Time `json:"backtest_timestamp"`
	ExecutionTimeSeconds float64   `json:"execution_time_seconds"`
}

// PerformanceStatus is the monitoring view over recent validation and
// backtest runs.
type PerformanceStatus struct {
	Status     string                 `json:"status"`
	Metrics    map[string]interface{} `json:"metrics"`
	Alerts     []string               `json:"alerts"`
	LastUpdate time.Time              `json:"last_update"`
}
