// Package ports declares the boundaries between the pipeline core and its
// collaborators. Adapters implement these interfaces; the usecases layer only
// depends on them.
package ports

import (
	"context"

	"hostprobe/internal/core/domain"
)

// Source yields the domains accepted for probing. Implementations filter
// blank lines and resume-set members; the returned slice acts as the FIFO
// work queue and its length sizes the progress display.
type Source interface {
	Load(resume map[string]struct{}) ([]string, error)
}

// Prober runs the probe cascade for one domain and always returns a record,
// empty when every variant failed. A Prober is owned by a single worker and
// must not be shared.
type Prober interface {
	Probe(ctx context.Context, host string) *domain.DomainData

	// Close releases the prober's connections and its certificate mailbox.
	// Called by the owning worker once the work queue is exhausted.
	Close()
}

// Pool fans tasks out to probe workers. The returned channel carries exactly
// one record per task and is closed once, after every worker has terminated.
type Pool interface {
	Run(ctx context.Context, tasks <-chan string) <-chan *domain.DomainData
}

// Sink is the single consumer of the result queue. Consume returns only after
// the queue is closed and drained, or on a fatal write error.
type Sink interface {
	Consume(results <-chan *domain.DomainData) error

	// Processed is the number of records written so far.
	Processed() int

	// Succeeded is the number of written records with a non-empty result.
	Succeeded() int
}

// Tracker receives progress updates from the sink.
type Tracker interface {
	Start(total int)
	Increment()
	Processed() int
	Finish()
}
