package config

import (
	"fmt"
	"slices"
	"strings"
)

// KnownPhases lists the pipeline phases in the order they run.
var KnownPhases = []string{"derive", "decline", "dedupe", "sort"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Engine.validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	return nil
}

// Validate checks the settings required to open a connection pool.
func (d DatabaseConfig) Validate() error {
	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("database.max_conns must be > 0 (got %d)", d.MaxConns)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be debug, info, warn or error (got %q)", l.Level)
	}
	return nil
}

func (e *EngineConfig) validate() error {
	if e.RegexTimeout < 0 {
		return fmt.Errorf("regex_timeout must be >= 0 (got %v)", e.RegexTimeout)
	}
	if e.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be > 0 (got %d)", e.BatchConcurrency)
	}
	if e.WatchDebounce <= 0 {
		return fmt.Errorf("watch_debounce must be > 0 (got %v)", e.WatchDebounce)
	}

	phases, err := ParsePhases(e.DefaultPhasesRaw)
	if err != nil {
		return fmt.Errorf("default_phases: %w", err)
	}
	e.DefaultPhases = phases

	return nil
}

// ParsePhases parses a comma-separated list of pipeline phases (e.g.
// "derive,decline") and returns them in canonical run order. An empty
// string returns a nil slice.
func ParsePhases(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	for _, p := range strings.Split(raw, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !slices.Contains(KnownPhases, p) {
			return nil, fmt.Errorf("unknown phase %q", p)
		}
		seen[p] = true
	}

	phases := make([]string, 0, len(seen))
	for _, p := range KnownPhases {
		if seen[p] {
			phases = append(phases, p)
		}
	}
	return phases, nil
}
