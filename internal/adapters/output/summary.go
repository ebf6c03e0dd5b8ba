// internal/adapters/output/summary.go
package output

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
)

// Summary is the end-of-run accounting shown to the operator. It is a
// diagnostic surface only, not a machine-readable contract.
type Summary struct {
	Accepted   int
	Processed  int
	Succeeded  int
	Elapsed    time.Duration
	OutputPath string
}

// Failed is the number of domains where every cascade variant failed.
func (s Summary) Failed() int {
	return s.Processed - s.Succeeded
}

// Render prints the summary table. Callers writing records to stdout skip it
// to keep the JSON stream clean.
func (s Summary) Render() {
	rate := 0.0
	if s.Elapsed > 0 {
		rate = float64(s.Processed) / s.Elapsed.Seconds()
	}

	data := pterm.TableData{
		{"Accepted", fmt.Sprintf("%d", s.Accepted)},
		{"Processed", fmt.Sprintf("%d", s.Processed)},
		{"Responding", fmt.Sprintf("%d", s.Succeeded)},
		{"Unreachable", fmt.Sprintf("%d", s.Failed())},
		{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
		{"Throughput", fmt.Sprintf("%.1f domains/s", rate)},
		{"Output", s.OutputPath},
	}

	pterm.Println()
	if err := pterm.DefaultTable.WithBoxed().WithData(data).Render(); err != nil {
		// Rendering is cosmetic; fall back to a plain line.
		fmt.Printf("processed %d/%d domains (%d responding) in %s\n",
			s.Processed, s.Accepted, s.Succeeded, s.Elapsed.Round(time.Millisecond))
	}
}
