package ctcnet

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// QueuePolicy selects where newly activated contractors enter the worklist.
// It affects convergence speed and the tightness of budgeted runs, never
// the fixpoint reached by an unbudgeted run with ratio 0.
type QueuePolicy int

const (
	// QueueFIFO appends activated contractors at the back.
	QueueFIFO QueuePolicy = iota
	// QueueLIFO puts activated contractors at the front so the most
	// recently touched region of the graph is revisited first.
	QueueLIFO
)

// String returns "fifo" or "lifo".
func (p QueuePolicy) String() string {
	switch p {
	case QueueFIFO:
		return "fifo"
	case QueueLIFO:
		return "lifo"
	default:
		return "unknown"
	}
}

// ParseQueuePolicy parses "fifo" or "lifo" (case-insensitive).
func ParseQueuePolicy(s string) (QueuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fifo", "":
		return QueueFIFO, nil
	case "lifo":
		return QueueLIFO, nil
	}
	return QueueFIFO, fmt.Errorf("unknown queue policy %q", s)
}

// DefaultFixedPointRatio is the convergence tolerance of a new network.
const DefaultFixedPointRatio = 1e-4

// Config holds the convergence policy of a network.
type Config struct {
	// FixedPointRatio is the minimum relative size decrease of a domain
	// that re-activates its contractors. 0 propagates every change, down
	// to the limit of float64 precision.
	FixedPointRatio float64

	// MaxDuration caps the wall-clock time of one Contract call. 0 means
	// no limit.
	MaxDuration time.Duration

	// MaxIterations caps the number of contractor calls of one Contract
	// call. 0 means no limit.
	MaxIterations int

	// Queue selects the worklist discipline.
	Queue QueuePolicy
}

// DefaultConfig returns the configuration of a network built with New.
func DefaultConfig() *Config {
	return &Config{
		FixedPointRatio: DefaultFixedPointRatio,
		Queue:           QueueFIFO,
	}
}

// Validate checks the ranges of every field.
func (c *Config) Validate() error {
	if c.FixedPointRatio < 0 || c.FixedPointRatio > 1 || c.FixedPointRatio != c.FixedPointRatio {
		return fmt.Errorf("%w: got %g", ErrInvalidRatio, c.FixedPointRatio)
	}
	if c.MaxDuration < 0 {
		return fmt.Errorf("max duration must not be negative, got %s", c.MaxDuration)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("max iterations must not be negative, got %d", c.MaxIterations)
	}
	if c.Queue != QueueFIFO && c.Queue != QueueLIFO {
		return fmt.Errorf("unknown queue policy %d", int(c.Queue))
	}
	return nil
}

// fileConfig mirrors Config in TOML.
type fileConfig struct {
	FixedPointRatio float64 `toml:"fixedpoint_ratio"`
	MaxDuration     string  `toml:"max_duration"`
	MaxIterations   int     `toml:"max_iterations"`
	Queue           string  `toml:"queue"`
}

// LoadConfig reads a TOML file and overlays the keys it defines onto
// DefaultConfig. Durations are Go duration strings:
//
//	fixedpoint_ratio = 0.001
//	max_duration = "250ms"
//	max_iterations = 100000
//	queue = "lifo"
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("fixedpoint_ratio") {
		cfg.FixedPointRatio = raw.FixedPointRatio
	}
	if meta.IsDefined("max_duration") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.MaxDuration))
		if err != nil {
			return nil, fmt.Errorf("parse max_duration: %w", err)
		}
		cfg.MaxDuration = d
	}
	if meta.IsDefined("max_iterations") {
		cfg.MaxIterations = raw.MaxIterations
	}
	if meta.IsDefined("queue") {
		q, err := ParseQueuePolicy(raw.Queue)
		if err != nil {
			return nil, fmt.Errorf("parse queue: %w", err)
		}
		cfg.Queue = q
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
