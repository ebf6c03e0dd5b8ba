// internal/platform/workerpool/pool.go
package workerpool

import (
	"context"
	"sync"
	"time"

	"hostprobe/internal/core/domain"
	"hostprobe/internal/core/ports"
	"hostprobe/internal/platform/logx"
)

// Pool runs the probe stage: a fixed set of workers draining the task channel
// into a results channel. Each worker owns its own Prober (HTTP client plus
// certificate mailbox); nothing is shared between workers.
type Pool struct {
	workers   int
	newProber func() ports.Prober
	logger    logx.Logger
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	Workers   int
	NewProber func() ports.Prober
	Logger    logx.Logger
}

// New creates a worker pool.
func New(cfg PoolConfig) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}
	return &Pool{
		workers:   cfg.Workers,
		newProber: cfg.NewProber,
		logger:    cfg.Logger.With("component", "worker-pool"),
	}
}

// Run starts the workers and returns the result channel. Exactly one record
// is emitted per task taken from the queue. The channel is closed exactly
// once, by a completion gate that fires only after the last worker has
// terminated; closing early would drop in-flight results and never closing
// would hang the persistence stage.
func (p *Pool) Run(ctx context.Context, tasks <-chan string) <-chan *domain.DomainData {
	results := make(chan *domain.DomainData, p.workers*2)

	var wg sync.WaitGroup
	p.logger.Info("starting worker pool", "workers", p.workers)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, i, tasks, results, &wg)
	}

	go func() {
		wg.Wait()
		close(results)
		p.logger.Debug("all workers finished, results closed")
	}()

	return results
}

// worker is the goroutine that probes domains until the queue is exhausted or
// the context is cancelled.
func (p *Pool) worker(ctx context.Context, id int, tasks <-chan string, results chan<- *domain.DomainData, wg *sync.WaitGroup) {
	defer wg.Done()

	prober := p.newProber()
	defer prober.Close()

	logger := p.logger.With("worker_id", id)
	logger.Debug("worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Debug("worker stopped", "reason", "context cancelled")
			return

		case task, ok := <-tasks:
			if !ok {
				logger.Debug("task queue closed, worker stopping")
				return
			}

			start := time.Now()
			record := prober.Probe(ctx, task)
			logger.Debug("task completed",
				"domain", task,
				"duration_ms", time.Since(start).Milliseconds(),
				"found", record.Found(),
			)

			select {
			case results <- record:
			case <-ctx.Done():
				// Run aborted, the record is dropped; the append-only output
				// lets the next run pick this domain up again.
				return
			}
		}
	}
}
