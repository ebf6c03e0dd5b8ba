// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"

	"hostprobe/internal/core/domain"
)

// mockSource returns a fixed acceptance list, minus resume-set members.
type mockSource struct {
	domains []string
	err     error
}

func (m *mockSource) Load(resume map[string]struct{}) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	var accepted []string
	for _, d := range m.domains {
		if _, done := resume[d]; !done {
			accepted = append(accepted, d)
		}
	}
	return accepted, nil
}

// mockPool probes instantly: every task becomes a found record. It keeps the
// context it ran under so tests can check the pipeline released it.
type mockPool struct {
	mu  sync.Mutex
	ctx context.Context
}

func (m *mockPool) Run(ctx context.Context, tasks <-chan string) <-chan *domain.DomainData {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	results := make(chan *domain.DomainData)
	go func() {
		defer close(results)
		for dom := range tasks {
			data := domain.NewDomainData(dom)
			data.SetServer("mock")
			select {
			case results <- data:
			case <-ctx.Done():
				return
			}
		}
	}()
	return results
}

func (m *mockPool) runContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx
}

// mockSink collects records in memory.
type mockSink struct {
	mu      sync.Mutex
	records []*domain.DomainData
	err     error
}

func (m *mockSink) Consume(results <-chan *domain.DomainData) error {
	for record := range results {
		m.mu.Lock()
		m.records = append(m.records, record)
		m.mu.Unlock()
		if m.err != nil {
			return m.err
		}
	}
	return nil
}

func (m *mockSink) Processed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *mockSink) Succeeded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.Found() {
			n++
		}
	}
	return n
}

// mockTracker records lifecycle calls.
type mockTracker struct {
	mu        sync.Mutex
	total     int
	processed int
	finished  bool
}

func (m *mockTracker) Start(total int) {
	m.mu.Lock()
	m.total = total
	m.mu.Unlock()
}

func (m *mockTracker) Increment() {
	m.mu.Lock()
	m.processed++
	m.mu.Unlock()
}

func (m *mockTracker) Processed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.processed
}

func (m *mockTracker) Finish() {
	m.mu.Lock()
	m.finished = true
	m.mu.Unlock()
}
