// cmd/hostprobe/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hostprobe/internal/adapters/input"
	"hostprobe/internal/adapters/output"
	"hostprobe/internal/core/ports"
	"hostprobe/internal/core/usecases"
	"hostprobe/internal/platform/config"
	"hostprobe/internal/platform/logx"
	"hostprobe/internal/platform/ui"
	"hostprobe/internal/platform/workerpool"
	"hostprobe/internal/prober"
)

var (
	// Filled in with -ldflags at build time
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Load layered config (handles help/version internally)
	cfg, err := config.Load(version, commit, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		return 2
	}

	// 2. Shared logger
	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))

	logger.Info("hostprobe starting",
		"version", version,
		"workers", cfg.Workers,
		"timeout_s", cfg.TimeoutS,
		"input", orStdin(cfg.InputPath),
		"output", orStdout(cfg.OutputPath),
	)

	// 3. Context and signals for clean shutdown. An interrupted run still
	// drains and flushes, so the output stays resumable.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 4. Resume set from the prior output, file-backed runs only
	resume, err := output.LoadResumeSet(cfg.OutputPath, logger)
	if err != nil {
		logger.Err(err, "phase", "resume")
		return 1
	}

	// 5. Wire the pipeline: source -> pool -> writer
	tracker := ui.NewTracker(cfg.Resumable() && !cfg.NoProgress)

	writer, err := output.NewWriter(cfg.OutputPath, tracker, logger)
	if err != nil {
		logger.Err(err, "phase", "output-open")
		return 1
	}
	defer func() {
		if err := writer.Close(); err != nil {
			logger.Err(err, "phase", "output-close")
		}
	}()

	pool := workerpool.New(workerpool.PoolConfig{
		Workers: cfg.Workers,
		Logger:  logger,
		NewProber: func() ports.Prober {
			return prober.New(cfg.Timeout(), logger)
		},
	})

	pipeline := usecases.NewPipeline(usecases.PipelineOptions{
		Source:  input.NewSource(cfg.InputPath, logger),
		Pool:    pool,
		Sink:    writer,
		Tracker: tracker,
		Logger:  logger,
	})

	// 6. Run
	stats, runErr := pipeline.Run(ctx, resume)

	// 7. Operator summary; skipped for stdout output to keep the stream clean
	if cfg.Resumable() {
		output.Summary{
			Accepted:   stats.Accepted,
			Processed:  stats.Processed,
			Succeeded:  stats.Succeeded,
			Elapsed:    stats.Elapsed,
			OutputPath: cfg.OutputPath,
		}.Render()
	}

	logger.Info("done",
		"responding", stats.Succeeded,
		"total", stats.Accepted,
	)

	if runErr != nil {
		logger.Err(runErr, "phase", "run")
		return 1
	}
	return 0
}

func orStdin(path string) string {
	if path == "" {
		return "(stdin)"
	}
	return path
}

func orStdout(path string) string {
	if path == "" {
		return "(stdout)"
	}
	return path
}
