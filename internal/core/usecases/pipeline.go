// Package usecases wires the probing pipeline end to end: domain source,
// worker pool and persistence sink, coordinated through channels.
package usecases

import (
	"context"
	"time"

	"hostprobe/internal/core/ports"
	"hostprobe/internal/platform/errors"
	"hostprobe/internal/platform/logx"
)

// Pipeline owns one run: load domains, fan them out to the probe workers and
// persist every record the pool emits.
type Pipeline struct {
	source  ports.Source
	pool    ports.Pool
	sink    ports.Sink
	tracker ports.Tracker
	logger  logx.Logger
}

// PipelineOptions collects the pipeline's collaborators.
type PipelineOptions struct {
	Source  ports.Source
	Pool    ports.Pool
	Sink    ports.Sink
	Tracker ports.Tracker
	Logger  logx.Logger
}

// NewPipeline creates a pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = logx.New()
	}
	return &Pipeline{
		source:  opts.Source,
		pool:    opts.Pool,
		sink:    opts.Sink,
		tracker: opts.Tracker,
		logger:  logger.With("component", "pipeline"),
	}
}

// Stats is the accounting of one run.
type Stats struct {
	Accepted  int
	Processed int
	Succeeded int
	Elapsed   time.Duration
}

// Run executes the pipeline until the input is exhausted or ctx is cancelled.
// Every accepted domain yields exactly one persisted record in a normal run;
// under cancellation the sink still drains and the append-only output lets the
// next run resume. The returned Stats are valid even when err is non-nil.
func (p *Pipeline) Run(ctx context.Context, resume map[string]struct{}) (Stats, error) {
	start := time.Now()

	// Run owns a derived context so that returning early, typically on a sink
	// write error, releases the feeder and the workers instead of leaving them
	// blocked on their channels.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	domains, err := p.source.Load(resume)
	if err != nil {
		return Stats{Elapsed: time.Since(start)}, errors.Wrap(err, "loading domains")
	}

	if p.tracker != nil {
		p.tracker.Start(len(domains))
		defer p.tracker.Finish()
	}

	p.logger.Info("pipeline starting", "domains", len(domains))

	tasks := make(chan string)
	go func() {
		defer close(tasks)
		for _, dom := range domains {
			select {
			case tasks <- dom:
			case <-runCtx.Done():
				return
			}
		}
	}()

	results := p.pool.Run(runCtx, tasks)
	consumeErr := p.sink.Consume(results)

	stats := Stats{
		Accepted:  len(domains),
		Processed: p.sink.Processed(),
		Succeeded: p.sink.Succeeded(),
		Elapsed:   time.Since(start),
	}

	p.logger.Info("pipeline finished",
		"accepted", stats.Accepted,
		"processed", stats.Processed,
		"succeeded", stats.Succeeded,
		"elapsed_ms", stats.Elapsed.Milliseconds(),
	)

	if consumeErr != nil {
		return stats, errors.Wrap(consumeErr, "persisting results")
	}
	if err := ctx.Err(); err != nil {
		return stats, errors.Wrap(err, "run interrupted")
	}
	return stats, nil
}
