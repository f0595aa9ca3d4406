package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"auctionintel/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// ScoreQueue represents an in-memory queue for score-update batches
type ScoreQueue struct {
	items    chan []*models.ScoreUpdate
	done     chan struct{}
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func([]*models.ScoreUpdate) error
}

// NewScoreQueue creates a new score queue with the specified buffer size
func NewScoreQueue(bufferSize int, logger *logrus.Logger) *ScoreQueue {
	return &ScoreQueue{
		items:    make(chan []*models.ScoreUpdate, bufferSize),
		done:     make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func([]*models.ScoreUpdate) error, 0),
	}
}

// Push adds a batch of score updates to the queue
func (q *ScoreQueue) Push(updates []*models.ScoreUpdate) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return ErrQueueClosed
	}
	q.mu.RUnlock()

	// Non-blocking send to prevent deadlocks
	select {
	case q.items <- updates:
		q.logger.WithField("batch_size", len(updates)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each batch
func (q *ScoreQueue) Subscribe(handler func([]*models.ScoreUpdate) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *ScoreQueue) Start() {
	go q.process()
}

// process handles the queue processing loop
func (q *ScoreQueue) process() {
	for {
		select {
		case <-q.done:
			return
		case batch := <-q.items:
			q.processBatch(batch)
		}
	}
}

// processBatch sends the batch to all subscribed handlers
func (q *ScoreQueue) processBatch(batch []*models.ScoreUpdate) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(batch); err != nil {
			q.logger.WithError(err).Error("Handler failed to process batch")
		}
	}
}

// Close stops the queue and prevents new items from being added
func (q *ScoreQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.done)
	close(q.items)
	return nil
}

// Len returns the current number of batches in the queue
func (q *ScoreQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *ScoreQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
