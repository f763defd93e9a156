package app

import (
	"log/slog"

	"github.com/heartmarshall/conlang/internal/config"
	"github.com/heartmarshall/conlang/internal/pattern"
)

// Env is the shared state every command starts from.
type Env struct {
	Config   *config.Config
	Log      *slog.Logger
	Patterns *pattern.Cache
	Metrics  *Metrics
	Pipeline *Pipeline
}

// Bootstrap loads configuration from configPath (see config.Load),
// initializes the logger and builds the processing pipeline.
func Bootstrap(configPath string) (*Env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.Debug("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	rx := pattern.NewCache(cfg.Engine.RegexTimeout)
	metrics := NewMetrics()

	return &Env{
		Config:   cfg,
		Log:      logger,
		Patterns: rx,
		Metrics:  metrics,
		Pipeline: NewPipeline(logger, rx, metrics),
	}, nil
}
