// Package config parses the orchestrator's CLI surface (C11): flags, an
// optional YAML override file, and a single struct-tag validation pass
// over the fully-resolved configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Mode selects the discovery strategy.
type Mode string

const (
	ModeSerial   Mode = "serial"
	ModeParallel Mode = "parallel"
)

// Config is the fully-resolved, validated configuration for one run.
type Config struct {
	InputPath   string  `yaml:"-"`
	MaxDist     float64 `yaml:"max_dist" validate:"gte=0"`
	MinDensity  uint64  `yaml:"min_density" validate:"gte=1"`
	MaxAngle    float64 `yaml:"max_angle" validate:"gt=0,lte=22.5"`
	SegmentSize float64 `yaml:"segment_size" validate:"gt=0"`
	Mode        Mode    `yaml:"mode" validate:"oneof=serial parallel"`
	Workers     int     `yaml:"workers" validate:"gte=1"`

	Monitor      string `yaml:"-"`
	MonitorToken string `yaml:"-"`
	DBPath       string `yaml:"-"`
}

// overrides is the shape of the optional YAML file: any field left at its
// zero value does not override the flag/default value (spirit of
// digest2's preset-keyword config file, rendered as structured YAML).
type overrides struct {
	MaxDist     *float64 `yaml:"max_dist"`
	MinDensity  *uint64  `yaml:"min_density"`
	MaxAngle    *float64 `yaml:"max_angle"`
	SegmentSize *float64 `yaml:"segment_size"`
	Mode        *string  `yaml:"mode"`
	Workers     *int     `yaml:"workers"`
}

// Parse parses args (typically os.Args[1:]) into a validated Config.
// Validation failures and malformed override files are returned as errors
// so the caller can report them and exit nonzero before any file I/O
// begins (spec §7, "Argument out of range: fatal before any work begins").
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("traclusdl", flag.ContinueOnError)

	maxDist := fs.Float64("max-dist", 250, "maximum spatial distance from a seed's center for a candidate sub-segment")
	minDensity := fs.Uint64("min-density", 3, "minimum accumulated weight for a cluster to survive")
	maxAngle := fs.Float64("max-angle", 5.0, "maximum circular angle difference between seed and candidate trajectories, in (0,22.5]")
	segmentSize := fs.Float64("segment-size", 500, "length of each fixed-size sub-segment")
	mode := fs.String("mode", string(ModeSerial), "discovery strategy: serial or parallel")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "worker pool size for parallel discovery")
	configPath := fs.String("config", "", "optional YAML file overriding the numeric defaults above")
	monitor := fs.String("monitor", "", "optional address to bind the HTTP monitor API on, e.g. :8090")
	monitorToken := fs.String("monitor-token", "", "HMAC secret that the bearer JWT must be signed with to trigger a run via the monitor API")
	dbPath := fs.String("db", "", "optional SQLite path for the run store")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: traclusdl [flags] <input-file|->\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		MaxDist:      *maxDist,
		MinDensity:   *minDensity,
		MaxAngle:     *maxAngle,
		SegmentSize:  *segmentSize,
		Mode:         Mode(*mode),
		Workers:      *workers,
		Monitor:      *monitor,
		MonitorToken: *monitorToken,
		DBPath:       *dbPath,
	}

	if *configPath != "" {
		if err := applyOverrides(cfg, *configPath); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", *configPath, err)
		}
	}

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one input file argument, got %d", fs.NArg())
	}
	cfg.InputPath = fs.Arg(0)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

func applyOverrides(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var o overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}

	if o.MaxDist != nil {
		cfg.MaxDist = *o.MaxDist
	}
	if o.MinDensity != nil {
		cfg.MinDensity = *o.MinDensity
	}
	if o.MaxAngle != nil {
		cfg.MaxAngle = *o.MaxAngle
	}
	if o.SegmentSize != nil {
		cfg.SegmentSize = *o.SegmentSize
	}
	if o.Mode != nil {
		cfg.Mode = Mode(*o.Mode)
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}
	return nil
}
