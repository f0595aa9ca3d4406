package queue

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"auctionintel/server/internal/models"
)

func TestNewScoreQueue(t *testing.T) {
	logger := logrus.New()
	q := NewScoreQueue(10, logger)
	assert.NotNil(t, q)
	assert.Equal(t, 10, q.maxSize)
	assert.False(t, q.IsClosed())
}

func TestScoreQueue_Push(t *testing.T) {
	logger := logrus.New()
	q := NewScoreQueue(2, logger)

	// Test successful push
	updates := []*models.ScoreUpdate{{PropertyID: 1}}
	err := q.Push(updates)
	assert.NoError(t, err)
	assert.Equal(t, 1, q.Len())

	// Test queue full
	for i := 0; i < 2; i++ {
		updates := []*models.ScoreUpdate{{PropertyID: int64(i + 2)}}
		_ = q.Push(updates)
	}
	err = q.Push(updates)
	assert.Equal(t, ErrQueueFull, err)

	// Test closed queue
	q.Close()
	err = q.Push(updates)
	assert.Equal(t, ErrQueueClosed, err)
}

func TestScoreQueue_Subscribe(t *testing.T) {
	logger := logrus.New()
	q := NewScoreQueue(10, logger)

	var processed []*models.ScoreUpdate
	var mu sync.Mutex

	// Add handler
	q.Subscribe(func(updates []*models.ScoreUpdate) error {
		mu.Lock()
		processed = append(processed, updates...)
		mu.Unlock()
		return nil
	})

	// Start queue
	q.Start()

	// Push items
	testUpdates := []*models.ScoreUpdate{{PropertyID: 1}, {PropertyID: 2}}
	err := q.Push(testUpdates)
	assert.NoError(t, err)

	// Wait for processing
	time.Sleep(100 * time.Millisecond)

	// Verify processing
	mu.Lock()
	assert.Equal(t, 2, len(processed))
	assert.Equal(t, int64(1), processed[0].PropertyID)
	assert.Equal(t, int64(2), processed[1].PropertyID)
	mu.Unlock()
}

func TestScoreQueue_Close(t *testing.T) {
	logger := logrus.New()
	q := NewScoreQueue(10, logger)

	// Test first close
	err := q.Close()
	assert.NoError(t, err)
	assert.True(t, q.IsClosed())

	// Test second close (should be no-op)
	err = q.Close()
	assert.NoError(t, err)
}

func TestScoreQueue_ProcessBatch(t *testing.T) {
	logger := logrus.New()
	q := NewScoreQueue(10, logger)

	var wg sync.WaitGroup
	processedBatches := 0
	var mu sync.Mutex

	// Add multiple handlers
	for i := 0; i < 3; i++ {
		wg.Add(1)
		q.Subscribe(func(updates []*models.ScoreUpdate) error {
			mu.Lock()
			processedBatches++
			mu.Unlock()
			wg.Done()
			return nil
		})
	}

	// Start queue
	q.Start()

	// Push a batch
	testUpdates := []*models.ScoreUpdate{{PropertyID: 1}}
	err := q.Push(testUpdates)
	assert.NoError(t, err)

	// Wait for all handlers
	wg.Wait()

	// Verify all handlers processed the batch
	mu.Lock()
	assert.Equal(t, 3, processedBatches)
	mu.Unlock()
}
