package scheduler

import (
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"auctionintel/server/config"
	"auctionintel/server/internal/models"
	"auctionintel/server/internal/validation"
)

// JobType represents different types of scheduled jobs
type JobType int

const (
	JobTypeValidation JobType = iota
	JobTypeMonitoring
)

// String returns the string representation of a JobType
func (j JobType) String() string {
	switch j {
	case JobTypeValidation:
		return "validation"
	case JobTypeMonitoring:
		return "monitoring"
	default:
		return "unknown"
	}
}

// SampleSource supplies the property sample for a scheduled validation run.
// Satisfied by *database.Database.
type SampleSource interface {
	GetPropertySample(sampleSize int) ([]*models.Property, error)
}

// Scheduler manages periodic validation and performance monitoring
type Scheduler struct {
	validator *validation.Validator
	samples   SampleSource
	config    *config.Config
	logger    *logrus.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
	jobMutex  sync.Mutex // Ensures sequential job execution

	lastValidation time.Time
	lastMonitoring time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(validator *validation.Validator, samples SampleSource, cfg *config.Config, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		validator: validator,
		samples:   samples,
		config:    cfg,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scheduled tasks
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

// runScheduler handles all scheduled tasks
func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	// Run an initial monitoring check so the status endpoint has data soon
	// after startup; Stop waits for it like any other job
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.jobMutex.Lock()
		defer s.jobMutex.Unlock()
		s.runMonitoring()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case t := <-ticker.C:
			s.executeScheduledJobs(t)
		}
	}
}

// executeScheduledJobs runs all jobs that are due at the given time
func (s *Scheduler) executeScheduledJobs(t time.Time) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	validationInterval := time.Duration(s.config.Validation.RunIntervalMinutes) * time.Minute
	monitorInterval := time.Duration(s.config.Validation.MonitorIntervalMinutes) * time.Minute

	if t.Sub(s.lastValidation) >= validationInterval {
		s.lastValidation = t
		s.runValidation()
	}

	if t.Sub(s.lastMonitoring) >= monitorInterval {
		s.lastMonitoring = t
		s.runMonitoring()
	}
}

// runValidation samples scored properties and validates the predictive
// engine against them
func (s *Scheduler) runValidation() {
	s.logger.WithField("job_type", JobTypeValidation.String()).Info("Starting scheduled job")

	sample, err := s.samples.GetPropertySample(s.config.Validation.SampleSize)
	if err != nil {
		s.logger.WithError(err).WithField("job_type", JobTypeValidation.String()).Error("Scheduled job failed")
		return
	}
	if len(sample) == 0 {
		s.logger.WithField("job_type", JobTypeValidation.String()).Info("No scored properties to validate")
		return
	}

	result, err := s.validator.ValidateCurrentPredictions(sample, "scheduled")
	if err != nil {
		s.logger.WithError(err).WithField("job_type", JobTypeValidation.String()).Error("Scheduled job failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"job_type": JobTypeValidation.String(),
		"accuracy": result.AccuracyScore,
		"status":   result.ValidationStatus,
	}).Info("Scheduled job completed successfully")
}

// runMonitoring checks recent prediction performance and logs alerts
func (s *Scheduler) runMonitoring() {
	s.logger.WithField("job_type", JobTypeMonitoring.String()).Info("Starting scheduled job")

	status, err := s.validator.MonitorPerformance()
	if err != nil {
		s.logger.WithError(err).WithField("job_type", JobTypeMonitoring.String()).Error("Scheduled job failed")
		return
	}

	for _, alert := range status.Alerts {
		s.logger.WithFields(logrus.Fields{
			"job_type": JobTypeMonitoring.String(),
			"alert":    alert,
		}).Warn("Prediction performance alert")
	}

	s.logger.WithFields(logrus.Fields{
		"job_type": JobTypeMonitoring.String(),
		"status":   status.Status,
	}).Info("Scheduled job completed successfully")
}
