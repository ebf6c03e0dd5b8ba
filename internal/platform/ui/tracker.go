// Package ui renders run progress. Progress is only meaningful when output
// goes to a persistent file: stdout has no length to measure against, so the
// pipeline gets a counting no-op tracker in that case.
package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"hostprobe/internal/core/ports"
)

// NewTracker returns a pterm-backed progress bar when enabled, otherwise a
// tracker that only counts.
func NewTracker(enabled bool) ports.Tracker {
	if enabled {
		return &barTracker{}
	}
	return &countTracker{}
}

// barTracker renders a progress bar with throughput and estimated remaining
// time, recomputed after every record.
type barTracker struct {
	mu        sync.Mutex
	bar       *pterm.ProgressbarPrinter
	total     int
	processed int
	started   time.Time
}

func (t *barTracker) Start(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = total
	t.processed = 0
	t.started = time.Now()

	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("probing").
		WithShowCount(true).
		WithShowElapsedTime(true).
		WithWriter(os.Stderr).
		Start()
	if err != nil {
		// No terminal to draw on; keep counting silently.
		return
	}
	t.bar = bar
}

func (t *barTracker) Increment() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.processed++
	if t.bar == nil {
		return
	}
	t.bar.Increment()
	t.bar.UpdateTitle(t.title())
}

// title folds throughput and ETA into the bar title after each record.
func (t *barTracker) title() string {
	elapsed := time.Since(t.started)
	if t.processed == 0 || elapsed <= 0 {
		return "probing"
	}
	rate := float64(t.processed) / elapsed.Seconds()
	remaining := t.total - t.processed
	if rate <= 0 || remaining <= 0 {
		return fmt.Sprintf("probing (%.1f/s)", rate)
	}
	eta := time.Duration(float64(remaining)/rate) * time.Second
	return fmt.Sprintf("probing (%.1f/s, ~%s left)", rate, eta.Round(time.Second))
}

func (t *barTracker) Processed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed
}

func (t *barTracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bar != nil {
		t.bar.Stop()
		t.bar = nil
	}
}

// countTracker tracks the processed count without rendering anything.
type countTracker struct {
	mu        sync.Mutex
	processed int
}

func (t *countTracker) Start(total int) {}

func (t *countTracker) Increment() {
	t.mu.Lock()
	t.processed++
	t.mu.Unlock()
}

func (t *countTracker) Processed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.processed
}

func (t *countTracker) Finish() {}
