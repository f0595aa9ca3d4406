package validation

import "auctionintel/server/internal/models"

// OutcomeSource supplies the "actual" appreciation a forecast is scored
// against. The default implementation assumes a flat statewide rate; a real
// source backed by recorded sales can be substituted without touching the
// validator's statistics.
type OutcomeSource interface {
	ActualAppreciation(property *models.Property, horizonMonths int) float64
}

// AssumedOutcome is an OutcomeSource that returns a constant rate for every
// property and horizon.
type AssumedOutcome struct {
	Rate float64
}

// ActualAppreciation returns the assumed rate.
func (a AssumedOutcome) ActualAppreciation(*models.Property, int) float64 {
	return a.Rate
}

// Assumed statewide appreciation rates used when no recorded outcomes are
// available.
const (
	DefaultValidationRate = 0.04
	DefaultBacktestRate   = 0.045
)
