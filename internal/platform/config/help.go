// internal/platform/config/help.go
package config

import (
	"fmt"
	"os"
)

const helpText = `
hostprobe - HTTPS/HTTP domain prober

USAGE:
  hostprobe [options] < domains.txt
  hostprobe -i domains.txt -o results.jsonl

Each domain is tried in order: https://{domain}, https://www{domain},
http://{domain}, http://www{domain}. The first 2xx response wins and one JSON
line is appended per domain, with response headers and, for HTTPS, the fields
of the server certificate.

IMPORTANT:
  Use double dash (--) for long flag names: --input, --workers, --timeout
  Use single dash (-) for short flags: -i, -w, -T

OPTIONS:
  -i, --input string       File with domains, one per line (default: stdin)
  -o, --output string      Append results to this file; domains already present
                           in it are skipped on the next run (default: stdout)
  -T, --timeout int        Per-request timeout in seconds (default: 5)
  -w, --workers int        Concurrent probe workers (default: 2x logical CPUs)
  -l, --log-level string   debug, info, warn or error (default: info)
      --no-progress        Disable the progress bar
  -c, --config string      YAML config file (keys: timeout_seconds, workers,
                           input, output, log_level, no_progress)
  -V, --version            Print version and exit
  -h, --help               Print this help and exit

ENVIRONMENT:
  HOSTPROBE_INPUT, HOSTPROBE_OUTPUT, HOSTPROBE_TIMEOUT, HOSTPROBE_WORKERS,
  HOSTPROBE_LOG_LEVEL, HOSTPROBE_NO_PROGRESS, HOSTPROBE_CONFIG

  Flags override the config file, which overrides the environment.
`

func printHelp() {
	fmt.Fprint(os.Stderr, helpText)
}
