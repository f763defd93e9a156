package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Engine   EngineConfig   `yaml:"engine"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only the db commands
// need it, so the DSN is checked by DatabaseConfig.Validate rather than at
// load time.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// EngineConfig holds rule engine and pipeline settings.
type EngineConfig struct {
	RegexTimeout     time.Duration `yaml:"regex_timeout"     env:"ENGINE_REGEX_TIMEOUT"     env-default:"250ms"`
	BatchConcurrency int           `yaml:"batch_concurrency" env:"ENGINE_BATCH_CONCURRENCY" env-default:"4"`
	WatchDebounce    time.Duration `yaml:"watch_debounce"    env:"ENGINE_WATCH_DEBOUNCE"    env-default:"500ms"`
	DefaultPhasesRaw string        `yaml:"default_phases"    env:"ENGINE_DEFAULT_PHASES"    env-default:"derive,decline,dedupe,sort"`

	// DefaultPhases is parsed from DefaultPhasesRaw during validation.
	DefaultPhases []string `yaml:"-" env:"-"`
}
