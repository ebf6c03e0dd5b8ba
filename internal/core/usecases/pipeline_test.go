// internal/core/usecases/pipeline_test.go
package usecases

import (
	"context"
	"testing"

	"hostprobe/internal/platform/errors"
	"hostprobe/internal/platform/logx"
	"hostprobe/internal/testutil"
)

func newTestPipeline(source *mockSource, sink *mockSink, tracker *mockTracker) *Pipeline {
	return NewPipeline(PipelineOptions{
		Source:  source,
		Pool:    &mockPool{},
		Sink:    sink,
		Tracker: tracker,
		Logger:  logx.NewSilent(),
	})
}

func TestRunProcessesEveryAcceptedDomain(t *testing.T) {
	source := &mockSource{domains: []string{"a.com", "b.com", "c.com"}}
	sink := &mockSink{}
	tracker := &mockTracker{}

	stats, err := newTestPipeline(source, sink, tracker).Run(context.Background(), map[string]struct{}{})

	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, stats.Accepted, 3, "accepted")
	testutil.AssertEqual(t, stats.Processed, 3, "processed equals accepted")
	testutil.AssertEqual(t, stats.Succeeded, 3, "all mock probes succeed")

	seen := map[string]bool{}
	for _, r := range sink.records {
		testutil.AssertFalse(t, seen[r.Domain], "no duplicate record for "+r.Domain)
		seen[r.Domain] = true
	}
}

func TestRunSizesTrackerFromAcceptedTotal(t *testing.T) {
	source := &mockSource{domains: []string{"a.com", "b.com"}}
	sink := &mockSink{}
	tracker := &mockTracker{}

	_, err := newTestPipeline(source, sink, tracker).Run(context.Background(), map[string]struct{}{})

	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, tracker.total, 2, "tracker sized with accepted count")
	testutil.AssertTrue(t, tracker.finished, "tracker finished")
}

func TestRunHonorsResumeSet(t *testing.T) {
	source := &mockSource{domains: []string{"example.com", "new.org"}}
	sink := &mockSink{}

	stats, err := newTestPipeline(source, sink, &mockTracker{}).
		Run(context.Background(), map[string]struct{}{"example.com": {}})

	testutil.AssertNoError(t, err, "run")
	testutil.AssertEqual(t, stats.Accepted, 1, "resumed domain not accepted")
	testutil.AssertEqual(t, sink.records[0].Domain, "new.org", "only the new domain was probed")
}

func TestRunPropagatesSourceError(t *testing.T) {
	source := &mockSource{err: errors.New("disk on fire")}

	_, err := newTestPipeline(source, &mockSink{}, &mockTracker{}).
		Run(context.Background(), map[string]struct{}{})

	testutil.AssertError(t, err, "source failure is fatal to the run")
}

func TestRunPropagatesSinkError(t *testing.T) {
	source := &mockSource{domains: []string{"a.com"}}
	sink := &mockSink{err: errors.New("no space left on device")}

	_, err := newTestPipeline(source, sink, &mockTracker{}).
		Run(context.Background(), map[string]struct{}{})

	testutil.AssertError(t, err, "sink failure is fatal to the run")
}

func TestRunReleasesPipelineOnSinkError(t *testing.T) {
	source := &mockSource{domains: []string{"a.com", "b.com", "c.com"}}
	sink := &mockSink{err: errors.New("no space left on device")}
	pool := &mockPool{}

	pipeline := NewPipeline(PipelineOptions{
		Source:  source,
		Pool:    pool,
		Sink:    sink,
		Tracker: &mockTracker{},
		Logger:  logx.NewSilent(),
	})

	_, err := pipeline.Run(context.Background(), map[string]struct{}{})

	testutil.AssertError(t, err, "sink failure is fatal to the run")
	// The feeder and the workers must not be left blocked on their channels
	// once Run has returned: the pool's context is cancelled on the way out.
	testutil.AssertError(t, pool.runContext().Err(), "pool context released after sink error")
}

func TestRunReportsInterruption(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &mockSource{domains: []string{"a.com", "b.com"}}
	stats, err := newTestPipeline(source, &mockSink{}, &mockTracker{}).
		Run(ctx, map[string]struct{}{})

	testutil.AssertError(t, err, "cancelled run reports interruption")
	testutil.AssertEqual(t, stats.Accepted, 2, "stats stay valid on interruption")
}

func TestRunEmptyInput(t *testing.T) {
	stats, err := newTestPipeline(&mockSource{}, &mockSink{}, &mockTracker{}).
		Run(context.Background(), map[string]struct{}{})

	testutil.AssertNoError(t, err, "empty input is a valid run")
	testutil.AssertEqual(t, stats.Accepted, 0, "nothing accepted")
	testutil.AssertEqual(t, stats.Processed, 0, "nothing processed")
}
