// Command score recomputes description, county and investment scores for
// every property in the database, then rewrites the ranking.
package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"auctionintel/server/config"
	"auctionintel/server/internal/database"
	"auctionintel/server/internal/processor"
	"auctionintel/server/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	gormDB, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open write connection")
	}

	scoreQueue := queue.NewScoreQueue(cfg.BatchScoring.BatchSize, logger)
	scoreQueue.Start()
	defer scoreQueue.Close()

	scorer := processor.NewBatchScorer(gormDB, db, scoreQueue, cfg, logger)
	scorer.Start()
	defer scorer.Stop()

	scored, skipped, err := scorer.ScoreAll()
	if err != nil {
		logger.WithError(err).Fatal("Batch scoring run failed")
	}

	// Let the write workers drain the queue before shutting down
	for scoreQueue.Len() > 0 {
		time.Sleep(100 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	logger.WithFields(logrus.Fields{
		"scored":  scored,
		"skipped": skipped,
	}).Info("Scoring run finished")
}
