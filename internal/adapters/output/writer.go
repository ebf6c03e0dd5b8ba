// Package output persists probe records as JSON Lines and reads them back for
// resumption.
package output

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"sync"

	"hostprobe/internal/core/domain"
	"hostprobe/internal/core/ports"
	"hostprobe/internal/platform/errors"
	"hostprobe/internal/platform/logx"
)

// Writer is the single consumer of the result queue. It appends one JSON line
// per record and flushes after every write: a crash must not lose a result
// that was already confirmed to the counters.
type Writer struct {
	buf     *bufio.Writer
	closer  io.Closer // nil when writing to stdout
	tracker ports.Tracker
	logger  logx.Logger

	mu        sync.Mutex
	processed int
	succeeded int
}

// NewWriter opens the output sink. A non-empty path is opened in append mode
// so a previous partial run is preserved; an empty path writes to stdout.
func NewWriter(path string, tracker ports.Tracker, logger logx.Logger) (*Writer, error) {
	w := &Writer{
		tracker: tracker,
		logger:  logger.With("component", "writer"),
	}
	if path == "" {
		w.buf = bufio.NewWriter(os.Stdout)
		return w, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening output %s", path)
	}
	w.buf = bufio.NewWriter(f)
	w.closer = f
	return w, nil
}

// Consume drains the result queue until it is closed, serializing each record
// to one line. A write error is fatal: without a sink there is no forward
// progress, so it propagates up and stops the run.
func (w *Writer) Consume(results <-chan *domain.DomainData) error {
	for record := range results {
		line, err := json.Marshal(record)
		if err != nil {
			return errors.Wrapf(err, "encoding record for %s", record.Domain)
		}
		if _, err := w.buf.Write(append(line, '\n')); err != nil {
			return errors.Wrap(err, "writing record")
		}
		if err := w.buf.Flush(); err != nil {
			return errors.Wrap(err, "flushing output")
		}
		w.confirm(record)
	}
	return nil
}

// confirm updates the shared counters and pushes a progress tick. The lock
// covers the whole read-modify-report sequence; the counters are read from
// outside while the run is still going.
func (w *Writer) confirm(record *domain.DomainData) {
	w.mu.Lock()
	w.processed++
	if record.Found() {
		w.succeeded++
	}
	w.mu.Unlock()

	if w.tracker != nil {
		w.tracker.Increment()
	}
}

// Processed returns the number of records written so far.
func (w *Writer) Processed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.processed
}

// Succeeded returns the number of written records with a non-empty result.
func (w *Writer) Succeeded() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.succeeded
}

// Close performs the final flush and releases the sink. It runs whether the
// queue closed normally or the run was aborted.
func (w *Writer) Close() error {
	flushErr := w.buf.Flush()
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			return errors.Wrap(err, "closing output")
		}
	}
	return errors.Wrap(flushErr, "final flush")
}
