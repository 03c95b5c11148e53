// ABOUTME: Refresh worker keeps the news cache warm for a watch list of subjects
// ABOUTME: Runs a bounded worker pool on a fixed interval; failures are logged, never fatal

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"mentions-api/core/domain"
	"mentions-api/core/interfaces"
)

// Fetcher retrieves news for one subject. Cache hits are expected to be cheap.
type Fetcher interface {
	Fetch(ctx context.Context, name string) (*domain.NewsPayload, error)
}

// refreshJob is one subject to refresh within a round
type refreshJob struct {
	ctx     context.Context
	subject string
	round   *round
}

// round tracks the outcome of one pass over the watch list
type round struct {
	wg        sync.WaitGroup
	refreshed atomic.Int64
	failed    atomic.Int64
}

// RoundStats summarises one refresh round
type RoundStats struct {
	Refreshed int
	Failed    int
}

// WorkerConfig holds configuration for the refresh worker
type WorkerConfig struct {
	// Watchlist is the set of subjects kept warm
	Watchlist []string

	// Interval is the time between rounds
	Interval time.Duration

	// MaxWorkers bounds concurrent fetches
	MaxWorkers int

	// QueueSize is the job buffer
	QueueSize int
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval:   15 * time.Minute,
		MaxWorkers: 4,
		QueueSize:  100,
	}
}

// RefreshWorker manages the background refresh pool
type RefreshWorker struct {
	fetcher  Fetcher
	logger   interfaces.Logger
	config   WorkerConfig
	jobQueue chan *refreshJob
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.RWMutex
	running  bool
}

// NewRefreshWorker creates a new refresh worker
func NewRefreshWorker(fetcher Fetcher, logger interfaces.Logger, config WorkerConfig) *RefreshWorker {
	defaults := DefaultWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &RefreshWorker{
		fetcher:  fetcher,
		logger:   logger,
		config:   config,
		jobQueue: make(chan *refreshJob, config.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start launches the pool and the scheduler. The first round runs immediately.
func (rw *RefreshWorker) Start() error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.running {
		return nil
	}
	if rw.ctx.Err() != nil {
		return ErrWorkerStopped
	}

	for i := 0; i < rw.config.MaxWorkers; i++ {
		rw.wg.Add(1)
		go rw.runWorker()
	}
	go rw.schedule()

	rw.running = true
	rw.logger.Info("Refresh worker started", map[string]interface{}{
		"subjects": len(rw.config.Watchlist),
		"interval": rw.config.Interval.String(),
		"workers":  rw.config.MaxWorkers,
	})
	return nil
}

// Stop stops the pool gracefully. Queued jobs are drained with a cancelled context.
func (rw *RefreshWorker) Stop() error {
	rw.mu.Lock()
	if !rw.running {
		rw.mu.Unlock()
		return nil
	}
	rw.running = false
	rw.mu.Unlock()

	rw.cancel()
	close(rw.jobQueue)
	rw.wg.Wait()

	rw.logger.Info("Refresh worker stopped", nil)
	return nil
}

// RunOnce refreshes every subject on the watch list and waits for the round
// to finish or ctx to end
func (rw *RefreshWorker) RunOnce(ctx context.Context) (RoundStats, error) {
	r := &round{}

	for _, subject := range rw.config.Watchlist {
		r.wg.Add(1)
		if err := rw.submit(&refreshJob{ctx: ctx, subject: subject, round: r}); err != nil {
			r.wg.Done()
			return r.stats(), err
		}
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		stats := r.stats()
		rw.logger.Info("Refresh round completed", map[string]interface{}{
			"refreshed": stats.Refreshed,
			"failed":    stats.Failed,
		})
		return stats, nil
	case <-ctx.Done():
		return r.stats(), ctx.Err()
	}
}

// submit queues a job while the pool is running
func (rw *RefreshWorker) submit(job *refreshJob) error {
	rw.mu.RLock()
	defer rw.mu.RUnlock()

	if !rw.running {
		return ErrWorkerNotRunning
	}

	select {
	case rw.jobQueue <- job:
		return nil
	case <-job.ctx.Done():
		return job.ctx.Err()
	case <-rw.ctx.Done():
		return ErrWorkerStopped
	}
}

// schedule runs a round immediately and then every interval
func (rw *RefreshWorker) schedule() {
	ticker := time.NewTicker(rw.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := rw.RunOnce(rw.ctx); err != nil && rw.ctx.Err() == nil {
			rw.logger.Warn("Refresh round aborted", map[string]interface{}{
				"error": err.Error(),
			})
		}

		select {
		case <-rw.ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runWorker processes jobs until the queue is closed
func (rw *RefreshWorker) runWorker() {
	defer rw.wg.Done()

	for job := range rw.jobQueue {
		rw.process(job)
	}
}

func (rw *RefreshWorker) process(job *refreshJob) {
	defer job.round.wg.Done()

	if err := job.ctx.Err(); err != nil {
		job.round.failed.Add(1)
		return
	}

	if _, err := rw.fetcher.Fetch(job.ctx, job.subject); err != nil {
		job.round.failed.Add(1)
		rw.logger.Warn("Refresh failed", map[string]interface{}{
			"subject": job.subject,
			"error":   err.Error(),
		})
		return
	}
	job.round.refreshed.Add(1)
}

func (r *round) stats() RoundStats {
	return RoundStats{
		Refreshed: int(r.refreshed.Load()),
		Failed:    int(r.failed.Load()),
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrWorkerStopped    = &WorkerError{Message: "worker pool has been stopped"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
