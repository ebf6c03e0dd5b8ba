// internal/platform/workerpool/pool_test.go
package workerpool

import (
	"context"
	"sync"
	"testing"
	"time"

	"hostprobe/internal/core/domain"
	"hostprobe/internal/core/ports"
	"hostprobe/internal/platform/logx"
	"hostprobe/internal/testutil"
)

// fakeProber records the domains it was asked to probe.
type fakeProber struct {
	mu     sync.Mutex
	probed []string
	delay  time.Duration
	closed bool
}

func (f *fakeProber) Probe(ctx context.Context, dom string) *domain.DomainData {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	f.mu.Lock()
	f.probed = append(f.probed, dom)
	f.mu.Unlock()
	data := domain.NewDomainData(dom)
	data.SetServer("fake")
	return data
}

func (f *fakeProber) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func feed(domains ...string) <-chan string {
	tasks := make(chan string, len(domains))
	for _, d := range domains {
		tasks <- d
	}
	close(tasks)
	return tasks
}

func TestPoolEmitsOneRecordPerTask(t *testing.T) {
	var probers []*fakeProber
	var mu sync.Mutex

	pool := New(PoolConfig{
		Workers: 3,
		Logger:  logx.NewSilent(),
		NewProber: func() ports.Prober {
			p := &fakeProber{}
			mu.Lock()
			probers = append(probers, p)
			mu.Unlock()
			return p
		},
	})

	domains := []string{"a.com", "b.com", "c.com", "d.com", "e.com"}
	results := pool.Run(context.Background(), feed(domains...))

	got := map[string]int{}
	for record := range results {
		got[record.Domain]++
	}

	testutil.AssertEqual(t, len(got), len(domains), "every task yields a record")
	for _, dom := range domains {
		testutil.AssertEqual(t, got[dom], 1, "exactly one record for "+dom)
	}

	mu.Lock()
	defer mu.Unlock()
	testutil.AssertEqual(t, len(probers), 3, "one prober per worker")
	for _, p := range probers {
		testutil.AssertTrue(t, p.closed, "prober closed at worker shutdown")
	}
}

func TestPoolClosesResultsAfterLastWorker(t *testing.T) {
	pool := New(PoolConfig{
		Workers:   4,
		Logger:    logx.NewSilent(),
		NewProber: func() ports.Prober { return &fakeProber{delay: 10 * time.Millisecond} },
	})

	results := pool.Run(context.Background(), feed("a.com", "b.com"))

	count := 0
	for range results {
		count++
	}
	// Reaching here means the channel was closed; with more workers than
	// tasks, idle workers must not keep it open.
	testutil.AssertEqual(t, count, 2, "records before close")
}

func TestPoolStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := New(PoolConfig{
		Workers:   1,
		Logger:    logx.NewSilent(),
		NewProber: func() ports.Prober { return &fakeProber{delay: 50 * time.Millisecond} },
	})

	tasks := make(chan string)
	results := pool.Run(ctx, tasks)

	tasks <- "a.com"
	cancel()
	close(tasks)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				return // closed promptly after cancel
			}
		case <-deadline:
			t.Fatal("results channel never closed after cancellation")
		}
	}
}

func TestPoolDefaultsWorkers(t *testing.T) {
	pool := New(PoolConfig{NewProber: func() ports.Prober { return &fakeProber{} }})
	testutil.AssertEqual(t, pool.workers, 4, "zero workers falls back to default")
}
