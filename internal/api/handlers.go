package api

import (
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auctionintel/server/config"
	"auctionintel/server/internal/analysis"
	"auctionintel/server/internal/database"
	"auctionintel/server/internal/models"
	"auctionintel/server/internal/prediction"
	"auctionintel/server/internal/scoring"
	"auctionintel/server/internal/validation"
)

type Handler struct {
	db           *database.Database
	logger       *logrus.Logger
	descriptions *analysis.DescriptionAnalyzer
	counties     *analysis.CountyAnalyzer
	engine       *prediction.Engine
	validator    *validation.Validator
}

type DescriptionRequest struct {
	Description string `json:"description"`
}

type AppreciationRequest struct {
	ParcelID        string   `json:"parcel_id"`
	County          string   `json:"county" binding:"required"`
	Amount          float64  `json:"amount"`
	Acreage         *float64 `json:"acreage"`
	Description     string   `json:"description"`
	AssessedValue   *float64 `json:"assessed_value"`
	WaterScore      *float64 `json:"water_score"`
	InvestmentScore *float64 `json:"investment_score"`
}

type OpportunitiesRequest struct {
	County string `json:"county"`
	TopN   int    `json:"top_n"`
}

type ValidateRequest struct {
	SampleSize int    `json:"sample_size"`
	Period     string `json:"period"`
}

type BacktestRequest struct {
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	HorizonMonths int    `json:"horizon_months"`
}

func NewHandler(db *database.Database, engine *prediction.Engine, validator *validation.Validator, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:           db,
		logger:       logger,
		descriptions: analysis.NewDescriptionAnalyzer(),
		counties:     analysis.NewCountyAnalyzer(),
		engine:       engine,
		validator:    validator,
	}
}

// GetHealth reports liveness plus a scoring self-check against the canonical
// regression fixture.
func (h *Handler) GetHealth(c *gin.Context) {
	selfCheck := scoring.LegacyScore(5000.0, 3.0, 6.0, 0.8, config.DefaultInvestmentScoreWeights)
	healthy := math.Abs(selfCheck-52.8) < 0.1

	status := http.StatusOK
	if !healthy {
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{
		"status":        map[bool]string{true: "healthy", false: "unhealthy"}[healthy],
		"scoring_check": selfCheck,
		"model_version": prediction.ModelVersion,
	})
}

func (h *Handler) GetProperties(c *gin.Context) {
	county := c.Query("county")
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	properties, err := h.db.GetPropertiesByCounty(county, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) AnalyzeDescription(c *gin.Context) {
	var req DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse description request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	intel := h.descriptions.AnalyzeDescription(req.Description)
	c.JSON(http.StatusOK, intel)
}

func (h *Handler) AnalyzeCounty(c *gin.Context) {
	county := c.Param("name")
	intel := h.counties.AnalyzeCounty(county)
	c.JSON(http.StatusOK, intel)
}

func (h *Handler) PredictAppreciation(c *gin.Context) {
	var req AppreciationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse appreciation request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	property := &models.Property{
		ParcelID:        req.ParcelID,
		County:          req.County,
		Amount:          req.Amount,
		Acreage:         req.Acreage,
		Description:     req.Description,
		AssessedValue:   req.AssessedValue,
		WaterScore:      req.WaterScore,
		InvestmentScore: req.InvestmentScore,
	}

	investmentScore := 50.0
	if req.InvestmentScore != nil {
		investmentScore = *req.InvestmentScore
	}

	forecast := h.engine.PredictAppreciation(property, req.County, investmentScore)
	c.JSON(http.StatusOK, forecast)
}

func (h *Handler) AnalyzeMarketTiming(c *gin.Context) {
	county := c.Param("county")
	timing := h.engine.AnalyzeMarketTiming(county)
	c.JSON(http.StatusOK, timing)
}

func (h *Handler) DetectOpportunities(c *gin.Context) {
	var req OpportunitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse opportunities request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if req.TopN <= 0 {
		req.TopN = 10
	}

	properties, err := h.db.GetPropertiesByCounty(req.County, 500)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load candidate properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load candidate properties"})
		return
	}

	opportunities := h.engine.DetectOpportunities(properties, req.TopN)
	c.JSON(http.StatusOK, opportunities)
}

func (h *Handler) RunValidation(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse validation request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}
	if req.SampleSize <= 0 {
		req.SampleSize = 50
	}
	if req.Period == "" {
		req.Period = "current"
	}

	sample, err := h.db.GetPropertySample(req.SampleSize)
	if err != nil {
		h.logger.WithError(err).Error("Failed to sample properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sample properties"})
		return
	}

	result, err := h.validator.ValidateCurrentPredictions(sample, req.Period)
	if err != nil {
		h.logger.WithError(err).Error("Failed to run validation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run validation"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) RunBacktest(c *gin.Context) {
	var req BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse backtest request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request parameters"})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date, expected YYYY-MM-DD"})
		return
	}
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}
	if req.HorizonMonths <= 0 {
		req.HorizonMonths = 12
	}

	result, err := h.validator.RunBacktest(start, end, req.HorizonMonths)
	if err != nil {
		h.logger.WithError(err).Error("Failed to run backtest")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run backtest"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetValidationStatus(c *gin.Context) {
	status, err := h.validator.MonitorPerformance()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get validation status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get validation status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *Handler) GetValidationHistory(c *gin.Context) {
	daysStr := c.DefaultQuery("days", "30")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 30
	}

	history, err := h.db.ValidationHistory(days)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get validation history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get validation history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
