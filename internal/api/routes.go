package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auctionintel/server/internal/database"
	"auctionintel/server/internal/prediction"
	"auctionintel/server/internal/validation"
)

func SetupRoutes(router *gin.Engine, db *database.Database, engine *prediction.Engine, validator *validation.Validator, logger *logrus.Logger) {
	handler := NewHandler(db, engine, validator, logger)

	api := router.Group("/api")
	{
		api.GET("/health", handler.GetHealth)
		api.GET("/properties", handler.GetProperties)

		api.POST("/analyze/description", handler.AnalyzeDescription)
		api.GET("/analyze/county/:name", handler.AnalyzeCounty)

		api.POST("/predict/appreciation", handler.PredictAppreciation)
		api.GET("/predict/timing/:county", handler.AnalyzeMarketTiming)
		api.POST("/predict/opportunities", handler.DetectOpportunities)

		api.POST("/validate", handler.RunValidation)
		api.POST("/backtest", handler.RunBacktest)
		api.GET("/validate/status", handler.GetValidationStatus)
		api.GET("/validate/history", handler.GetValidationHistory)
	}
}
