// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"hostprobe/internal/platform/errors"
)

type Config struct {
	// Probing
	TimeoutS int // per-request timeout in seconds
	Workers  int // concurrent probe workers

	// IO. Empty InputPath reads stdin; empty OutputPath writes stdout and
	// disables resumption and progress reporting.
	InputPath  string
	OutputPath string

	// UX
	LogLevel   string
	NoProgress bool

	PrintVersion bool
	PrintHelp    bool
}

// DefaultConfig returns the built-in defaults. Worker count scales with the
// machine: two workers per logical CPU.
func DefaultConfig() Config {
	return Config{
		TimeoutS: 5,
		Workers:  2 * runtime.NumCPU(),
		LogLevel: "info",
	}
}

// Load builds the configuration in layers: defaults, then environment
// (HOSTPROBE_*), then an optional YAML config file, then CLI flags (highest
// precedence). Help and version requests are handled here and exit.
func Load(version, commit, date string) (Config, error) {
	fs := pflag.NewFlagSet("hostprobe", pflag.ContinueOnError)
	fs.Usage = func() { printHelp() }

	cfg, err := load(fs, os.Args[1:])
	if err != nil {
		return Config{}, err
	}

	if cfg.PrintHelp {
		printHelp()
		os.Exit(0)
	}
	if cfg.PrintVersion {
		fmt.Printf("hostprobe %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
		os.Exit(0)
	}

	return cfg, nil
}

// load is the testable core of Load: it applies every layer against the given
// flag set and argument list.
func load(fs *pflag.FlagSet, args []string) (Config, error) {
	cfg := DefaultConfig()

	flagCfg := DefaultConfig()
	var configFile string

	fs.StringVarP(&flagCfg.InputPath, "input", "i", "", "File with domains to probe, one per line (default: stdin)")
	fs.StringVarP(&flagCfg.OutputPath, "output", "o", "", "Append results to this file and enable resumption (default: stdout)")
	fs.IntVarP(&flagCfg.TimeoutS, "timeout", "T", flagCfg.TimeoutS, "Per-request timeout in seconds")
	fs.IntVarP(&flagCfg.Workers, "workers", "w", flagCfg.Workers, "Number of concurrent probe workers")
	fs.StringVarP(&flagCfg.LogLevel, "log-level", "l", flagCfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&flagCfg.NoProgress, "no-progress", false, "Disable the progress bar even for file output")
	fs.StringVarP(&configFile, "config", "c", "", "YAML config file")
	fs.BoolVarP(&flagCfg.PrintVersion, "version", "V", false, "Print version and exit")
	fs.BoolVarP(&flagCfg.PrintHelp, "help", "h", false, "Print help and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parsing flags")
	}

	loadFromEnv(&cfg)

	// Flag wins over env for the config file location.
	if !fs.Changed("config") {
		configFile = getenv("HOSTPROBE_CONFIG", configFile)
	}
	if err := loadFromFile(&cfg, configFile); err != nil {
		return Config{}, err
	}

	applyFlags(&cfg, flagCfg, fs)
	normalize(&cfg)

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
func loadFromEnv(cfg *Config) {
	if v := getenv("HOSTPROBE_INPUT", ""); v != "" {
		cfg.InputPath = v
	}
	if v := getenv("HOSTPROBE_OUTPUT", ""); v != "" {
		cfg.OutputPath = v
	}
	if v := getenv("HOSTPROBE_TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}
	if v := getenv("HOSTPROBE_WORKERS", ""); v != "" {
		cfg.Workers = parseInt(v, cfg.Workers)
	}
	if v := getenv("HOSTPROBE_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("HOSTPROBE_NO_PROGRESS", ""); v != "" {
		cfg.NoProgress = parseBool(v)
	}
}

// fileConfig mirrors Config in YAML; pointers distinguish absent keys from
// zero values.
type fileConfig struct {
	TimeoutSeconds *int    `yaml:"timeout_seconds"`
	Workers        *int    `yaml:"workers"`
	Input          *string `yaml:"input"`
	Output         *string `yaml:"output"`
	LogLevel       *string `yaml:"log_level"`
	NoProgress     *bool   `yaml:"no_progress"`
}

// loadFromFile overlays values from a YAML config file, when one was given.
func loadFromFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading config file %s", path)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(err, "parsing config file %s", path)
	}
	if fc.TimeoutSeconds != nil {
		cfg.TimeoutS = *fc.TimeoutSeconds
	}
	if fc.Workers != nil {
		cfg.Workers = *fc.Workers
	}
	if fc.Input != nil {
		cfg.InputPath = *fc.Input
	}
	if fc.Output != nil {
		cfg.OutputPath = *fc.Output
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.NoProgress != nil {
		cfg.NoProgress = *fc.NoProgress
	}
	return nil
}

// applyFlags overlays the flags the user actually set.
func applyFlags(cfg *Config, flagCfg Config, fs *pflag.FlagSet) {
	if fs.Changed("input") {
		cfg.InputPath = flagCfg.InputPath
	}
	if fs.Changed("output") {
		cfg.OutputPath = flagCfg.OutputPath
	}
	if fs.Changed("timeout") {
		cfg.TimeoutS = flagCfg.TimeoutS
	}
	if fs.Changed("workers") {
		cfg.Workers = flagCfg.Workers
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
	if fs.Changed("no-progress") {
		cfg.NoProgress = flagCfg.NoProgress
	}
	cfg.PrintVersion = flagCfg.PrintVersion
	cfg.PrintHelp = flagCfg.PrintHelp
}

func normalize(c *Config) {
	if c.TimeoutS <= 0 {
		c.TimeoutS = 5
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.InputPath = strings.TrimSpace(c.InputPath)
	c.OutputPath = strings.TrimSpace(c.OutputPath)
}

// Timeout returns the per-request timeout as a time.Duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutS) * time.Second
}

// Resumable reports whether output goes to a persistent file, which is what
// makes resumption and progress reporting possible.
func (c Config) Resumable() bool {
	return c.OutputPath != ""
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}
