// Package worker writes audit entries in the background. Edits return as soon
// as the upstream write succeeds; the audit backend is never on that path.
//   - Load shedding when the queue is full
//   - Batched writes for stores that support them
//   - Graceful shutdown that drains the queue

package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/battleroyale/stats-dashboard/internal/audit"
)

var (
	// ErrQueueFull is returned by Record when the entry was shed.
	ErrQueueFull = errors.New("audit queue full")
	// ErrStopped is returned by Record after Stop.
	ErrStopped = errors.New("audit pool stopped")
)

// Prometheus metrics
var (
	entriesQueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_audit_entries_queued_total",
		Help: "Total number of audit entries queued",
	})

	entriesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_audit_entries_written_total",
		Help: "Total number of audit entries written to the store",
	})

	entriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_audit_entries_failed_total",
		Help: "Total number of audit entries the store rejected",
	})

	entriesShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_audit_entries_shed_total",
		Help: "Total number of audit entries dropped because the queue was full",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_audit_queue_depth",
		Help: "Current depth of the audit queue",
	})

	batchWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_audit_batch_write_duration_seconds",
		Help:    "Duration of audit batch writes",
		Buckets: prometheus.DefBuckets,
	})
)

// Job is one queued audit entry.
type Job struct {
	Entry    audit.Entry
	Received time.Time
}

// PoolConfig configures the worker pool
type PoolConfig struct {
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	WriteTimeout  time.Duration
	Store         audit.Store
	Logger        *zap.Logger
}

// Pool is an audit.Store that queues writes for a backing store. Reads and
// pings go straight to the backing store, so an entry shows up in Recent
// only after its batch is flushed.
type Pool struct {
	config   PoolConfig
	jobQueue chan Job
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool
}

// NewPool creates a new worker pool
func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	if cfg.Store == nil {
		cfg.Store = audit.NopStore{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		config:   cfg,
		jobQueue: make(chan Job, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	go p.reportQueueDepth()

	p.logger.Infow("Audit pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
		"batchSize", p.config.BatchSize,
	)
}

// Stop refuses new entries, then waits for the workers to drain the queue.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.logger.Info("Stopping audit pool...")
	p.wg.Wait()
	if p.cancel != nil {
		p.cancel()
	}
	p.logger.Info("Audit pool stopped")
}

// Enqueue adds an entry without blocking. It returns false when the entry was
// shed or the pool is stopped.
func (p *Pool) Enqueue(e audit.Entry) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.jobQueue <- Job{Entry: e, Received: time.Now()}:
		entriesQueued.Inc()
		return true
	default:
		p.logger.Warnw("Audit queue full, dropping entry", "kind", e.Kind, "user_id", e.UserID)
		entriesShed.Inc()
		return false
	}
}

// QueueDepth returns current queue size
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) Record(ctx context.Context, e audit.Entry) error {
	if p.Enqueue(e) {
		return nil
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrStopped
	}
	return ErrQueueFull
}

func (p *Pool) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return p.config.Store.Recent(ctx, limit)
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.config.Store.Ping(ctx)
}

// worker drains the queue in batches until it is closed.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	batch := make([]audit.Entry, 0, p.config.BatchSize)
	ticker := time.NewTicker(p.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		start := time.Now()
		written, err := p.writeBatch(batch)
		entriesWritten.Add(float64(written))
		if err != nil {
			p.logger.Errorw("Audit batch write failed",
				"worker", id,
				"batchSize", len(batch),
				"written", written,
				"error", err,
			)
			entriesFailed.Add(float64(len(batch) - written))
		}
		batchWriteDuration.Observe(time.Since(start).Seconds())

		batch = batch[:0]
	}

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, job.Entry)
			if len(batch) >= p.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// writeBatch returns how many entries reached the store.
func (p *Pool) writeBatch(batch []audit.Entry) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.WriteTimeout)
	defer cancel()

	if br, ok := p.config.Store.(audit.BatchRecorder); ok {
		if err := br.RecordBatch(ctx, batch); err != nil {
			return 0, err
		}
		return len(batch), nil
	}

	var firstErr error
	written := 0
	for _, e := range batch {
		if err := p.config.Store.Record(ctx, e); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
	}
	return written, firstErr
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
