package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctionintel/server/internal/analysis"
	"auctionintel/server/internal/models"
	"auctionintel/server/internal/prediction"
	"auctionintel/server/internal/validation"
)

type fakeStore struct {
	properties []*models.Property
}

func (s *fakeStore) SaveValidationResult(result *models.ValidationResult) error { return nil }
func (s *fakeStore) SaveBacktestResult(result *models.BacktestResult) error     { return nil }

func (s *fakeStore) RecentValidationResults(limit int) ([]models.ValidationResult, error) {
	return nil, nil
}

func (s *fakeStore) RecentBacktestResults(limit int) ([]models.BacktestResult, error) {
	return nil, nil
}

func (s *fakeStore) PropertiesInRange(start, end time.Time) ([]*models.Property, error) {
	return s.properties, nil
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := prediction.NewEngine(analysis.NewCountyAnalyzer(), nil)
	validator := validation.NewValidator(engine, &fakeStore{}, nil, nil, logger)

	router := gin.New()
	SetupRoutes(router, nil, engine, validator, logger)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetHealth(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.InDelta(t, 52.8, resp["scoring_check"], 0.1)
	assert.Equal(t, prediction.ModelVersion, resp["model_version"])
}

func TestAnalyzeDescription(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodPost, "/api/analyze/description",
		DescriptionRequest{Description: "LOT 4 CREEK FRONTAGE OAK RIDGE SUBDIVISION"})
	require.Equal(t, http.StatusOK, w.Code)

	var intel models.PropertyIntelligence
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &intel))
	assert.Greater(t, intel.PremiumWaterAccessScore, 0.0)
	assert.GreaterOrEqual(t, intel.TotalDescriptionScore, 0.0)
	assert.LessOrEqual(t, intel.TotalDescriptionScore, 100.0)
}

func TestAnalyzeDescription_BadRequest(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/description",
		bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeCounty(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodGet, "/api/analyze/county/Baldwin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var intel models.CountyIntelligence
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &intel))
	assert.Greater(t, intel.ConfidenceLevel, 0.0)
	assert.Greater(t, intel.CountyMarketScore, 0.0)
}

func TestPredictAppreciation(t *testing.T) {
	router := testRouter()

	acreage := 3.0
	w := doJSON(t, router, http.MethodPost, "/api/predict/appreciation", AppreciationRequest{
		ParcelID:    "05-02-09-0-003-010.000",
		County:      "Jefferson",
		Amount:      4200,
		Acreage:     &acreage,
		Description: "LOT 2 NEAR CREEK",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var forecast models.PropertyAppreciationForecast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &forecast))
	assert.Equal(t, prediction.ModelVersion, forecast.ModelVersion)
	assert.InDelta(t, forecast.OneYearAppreciation*2.8, forecast.ThreeYearAppreciation, 1e-9)
}

func TestPredictAppreciation_MissingCounty(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodPost, "/api/predict/appreciation",
		AppreciationRequest{Amount: 4200})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeMarketTiming(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodGet, "/api/predict/timing/Baldwin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var timing models.MarketTimingAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &timing))
	assert.NotEmpty(t, timing.CurrentMarketPhase)
	assert.NotEmpty(t, timing.OptimalBuyWindow.Start)
	assert.Equal(t, models.MonthWindow{Start: "April", End: "July"}, timing.OptimalSellWindow)
}

func TestRunBacktest_DateValidation(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodPost, "/api/backtest",
		BacktestRequest{StartDate: "not-a-date", EndDate: "2025-12-31"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/backtest",
		BacktestRequest{StartDate: "2025-12-31", EndDate: "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/backtest", BacktestRequest{EndDate: "2025-12-31"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunBacktest(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodPost, "/api/backtest",
		BacktestRequest{StartDate: "2025-01-01", EndDate: "2025-12-31", HorizonMonths: 36})
	require.Equal(t, http.StatusOK, w.Code)

	var result models.BacktestResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Zero(t, result.TestPropertiesCount)
	assert.Equal(t, 36, result.PredictionHorizonMonths)
}

func TestGetValidationStatus(t *testing.T) {
	router := testRouter()

	w := doJSON(t, router, http.MethodGet, "/api/validate/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var status models.PerformanceStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "no_data", status.Status)
}
