package processor

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"auctionintel/server/config"
	"auctionintel/server/internal/analysis"
	"auctionintel/server/internal/database"
	"auctionintel/server/internal/models"
	"auctionintel/server/internal/queue"
	"auctionintel/server/internal/scoring"
)

// TxRunner runs a function inside a transaction. Satisfied by *gorm.DB.
type TxRunner interface {
	Transaction(fc func(*gorm.DB) error, opts ...*sql.TxOptions) error
}

// PropertyReader supplies property pages for scoring. Satisfied by
// *database.Database.
type PropertyReader interface {
	GetPropertiesBatch(limit, offset int) ([]*models.Property, error)
	CountProperties() (int, error)
	UpdateRanks() error
}

// BatchScorer walks the property table in fixed-size batches, recomputes
// description, county and investment scores, and writes the results through
// the score queue. A malformed row is logged and skipped; the run continues.
type BatchScorer struct {
	db           TxRunner
	reader       PropertyReader
	logger       *logrus.Logger
	config       *config.Config
	queue        *queue.ScoreQueue
	descriptions *analysis.DescriptionAnalyzer
	counties     *analysis.CountyAnalyzer
	waitGroup    sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
}

// NewBatchScorer creates a new batch scorer instance
func NewBatchScorer(db TxRunner, reader PropertyReader, queue *queue.ScoreQueue, config *config.Config, logger *logrus.Logger) *BatchScorer {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchScorer{
		db:           db,
		reader:       reader,
		queue:        queue,
		config:       config,
		logger:       logger,
		descriptions: analysis.NewDescriptionAnalyzer(),
		counties:     analysis.NewCountyAnalyzer(),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins the write workers consuming score batches from the queue
func (p *BatchScorer) Start() {
	for i := 0; i < p.config.BatchScoring.WorkerCount; i++ {
		p.waitGroup.Add(1)
		go p.writeLoop()
	}
}

// Stop gracefully shuts down the scorer
func (p *BatchScorer) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

// ScoreAll walks every property, scores it and enqueues the updates, then
// recomputes the ranking. Returns the number of properties scored and the
// number skipped.
func (p *BatchScorer) ScoreAll() (scored, skipped int, err error) {
	total, err := p.reader.CountProperties()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count properties: %w", err)
	}
	if total == 0 {
		p.logger.Info("No properties to score")
		return 0, 0, nil
	}

	p.logger.WithField("total", total).Info("Starting batch scoring run")

	batchSize := p.config.BatchScoring.BatchSize
	pause := time.Duration(p.config.BatchScoring.BatchPauseMillis) * time.Millisecond

	for offset := 0; offset < total; offset += batchSize {
		select {
		case <-p.ctx.Done():
			return scored, skipped, p.ctx.Err()
		default:
		}

		batch, err := p.reader.GetPropertiesBatch(batchSize, offset)
		if err != nil {
			return scored, skipped, fmt.Errorf("failed to load batch at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		updates := make([]*models.ScoreUpdate, 0, len(batch))
		for _, property := range batch {
			if property == nil {
				skipped++
				continue
			}
			update, err := p.scoreProperty(property)
			if err != nil {
				p.logger.WithError(err).WithField("property_id", property.ID).Warn("Skipping property")
				skipped++
				continue
			}
			updates = append(updates, update)
			scored++
		}

		if len(updates) > 0 {
			if err := p.queue.Push(updates); err != nil {
				// Queue saturated or closed: write synchronously so the
				// run never drops a batch
				if err := p.writeBatch(updates); err != nil {
					return scored, skipped, err
				}
			}
		}

		p.logger.WithFields(logrus.Fields{
			"offset": offset,
			"scored": scored,
		}).Debug("Batch scored")

		time.Sleep(pause)
	}

	if err := p.reader.UpdateRanks(); err != nil {
		return scored, skipped, fmt.Errorf("failed to update ranks: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"scored":  scored,
		"skipped": skipped,
	}).Info("Batch scoring run completed")

	return scored, skipped, nil
}

// scoreProperty computes all intelligence layers and the composite score for
// one property.
func (p *BatchScorer) scoreProperty(property *models.Property) (*models.ScoreUpdate, error) {
	if property == nil {
		return nil, fmt.Errorf("nil property")
	}
	if property.Amount < 0 {
		return nil, fmt.Errorf("negative bid amount %.2f", property.Amount)
	}

	descIntel := p.descriptions.AnalyzeDescription(property.Description)
	countyIntel := p.counties.AnalyzeCounty(property.County)

	waterScore := property.WaterScoreValue()
	if property.WaterScore == nil {
		waterScore = scoring.WaterScore(property.Description)
	}

	investment := scoring.EnhancedScore(
		property.Amount,
		property.AcreageValue(),
		property.AssessedValueValue(),
		waterScore,
		descIntel.TotalDescriptionScore,
		countyIntel.CountyMarketScore,
	)

	return &models.ScoreUpdate{
		PropertyID:      property.ID,
		Description:     descIntel,
		County:          countyIntel,
		InvestmentScore: investment,
	}, nil
}

// writeLoop handles the continuous writing of score batches
func (p *BatchScorer) writeLoop() {
	defer p.waitGroup.Done()

	p.queue.Subscribe(func(batch []*models.ScoreUpdate) error {
		return p.writeBatch(batch)
	})
}

// writeBatch persists a single batch of score updates with transaction and retry logic
func (p *BatchScorer) writeBatch(batch []*models.ScoreUpdate) error {
	var err error
	for attempt := 0; attempt <= p.config.BatchScoring.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch write, attempt %d of %d", attempt, p.config.BatchScoring.MaxRetries)
			time.Sleep(time.Duration(p.config.BatchScoring.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertScores(tx, batch); err != nil {
				return fmt.Errorf("failed to upsert score batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully wrote batch of %d score updates", len(batch))
			return nil
		}

		p.logger.Errorf("Batch write failed: %v", err)
	}

	return fmt.Errorf("failed to write batch after %d attempts: %w", p.config.BatchScoring.MaxRetries, err)
}
