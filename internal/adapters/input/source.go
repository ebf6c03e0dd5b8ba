// Package input provides the line-oriented domain source feeding the pipeline.
package input

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/net/idna"

	"hostprobe/internal/platform/errors"
	"hostprobe/internal/platform/logx"
)

// maxLineBytes bounds a single input line; hostnames never come close.
const maxLineBytes = 64 * 1024

// Source reads candidate hostnames from a file or stdin.
type Source struct {
	path   string
	logger logx.Logger
}

// NewSource creates a source over the given file. An empty path reads stdin.
func NewSource(path string, logger logx.Logger) *Source {
	return &Source{
		path:   path,
		logger: logger.With("component", "domain-source"),
	}
}

// Load reads the whole input and returns the accepted domains in input order.
// Blank lines are dropped, Unicode hostnames are mapped to their ASCII
// (punycode) form and resume-set members are skipped. Duplicates within one
// input are kept: only resume-set membership deduplicates. The returned slice
// is the work queue; its length sizes the progress bar. An I/O error on the
// stream is fatal to the run.
func (s *Source) Load(resume map[string]struct{}) ([]string, error) {
	reader, closer, err := s.open()
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}
	return s.scan(reader, resume)
}

func (s *Source) open() (io.Reader, io.Closer, error) {
	if s.path == "" {
		return os.Stdin, nil, nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening input %s", s.path)
	}
	return f, f, nil
}

func (s *Source) scan(r io.Reader, resume map[string]struct{}) ([]string, error) {
	var accepted []string
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		dom := normalize(line)
		if _, done := resume[dom]; done {
			skipped++
			continue
		}
		accepted = append(accepted, dom)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading domain input")
	}

	s.logger.Info("input loaded", "accepted", len(accepted), "resumed", skipped)
	return accepted, nil
}

// normalize maps a Unicode hostname to its ASCII (punycode) form. The raw
// punycode profile keeps case and does no lookup validation, so malformed
// names pass through unchanged and fail naturally in the cascade.
func normalize(host string) string {
	ascii, err := idna.ToASCII(host)
	if err != nil || ascii == "" {
		return host
	}
	return ascii
}
