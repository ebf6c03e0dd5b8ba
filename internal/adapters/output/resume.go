// internal/adapters/output/resume.go
package output

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"os"
	"strings"

	"hostprobe/internal/core/domain"
	"hostprobe/internal/platform/errors"
	"hostprobe/internal/platform/logx"
)

// LoadResumeSet scans a prior run's output and returns the set of domains
// already recorded there. A missing or empty file yields an empty set. Each
// line is parsed as one record; lines that fail to parse - typically a partial
// trailing line from an interrupted run - are skipped, never fatal. The set is
// read-only after construction and consumed by the domain source only.
func LoadResumeSet(path string, logger logx.Logger) (map[string]struct{}, error) {
	set := make(map[string]struct{})
	if path == "" {
		return set, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return set, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening resume file %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	lineNo := 0
	skipped := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record domain.DomainData
		if err := json.Unmarshal([]byte(line), &record); err != nil || record.Domain == "" {
			skipped++
			logger.Debug("skipping unparseable output line", "file", path, "line", lineNo)
			continue
		}
		set[record.Domain] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "scanning resume file %s", path)
	}

	if skipped > 0 {
		logger.Warn("resume file had unparseable lines", "file", path, "skipped", skipped)
	}
	logger.Info("resume set loaded", "file", path, "domains", len(set))
	return set, nil
}
