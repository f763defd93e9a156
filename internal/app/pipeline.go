package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/conlang/internal/config"
	"github.com/heartmarshall/conlang/internal/domain"
	"github.com/heartmarshall/conlang/internal/lexicon"
	"github.com/heartmarshall/conlang/internal/pattern"
	"github.com/heartmarshall/conlang/pkg/ctxutil"
)

// Pipeline phases, in canonical execution order.
const (
	PhaseDerive  = "derive"
	PhaseDecline = "decline"
	PhaseDedupe  = "dedupe"
	PhaseSort    = "sort"
)

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Phase    string
	Added    int
	Removed  int
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Pipeline runs the derive, decline, dedupe and sort phases over a
// language in place.
type Pipeline struct {
	log     *slog.Logger
	rx      *pattern.Cache
	metrics *Metrics
}

// NewPipeline creates a Pipeline. metrics may be nil.
func NewPipeline(log *slog.Logger, rx *pattern.Cache, metrics *Metrics) *Pipeline {
	if rx == nil {
		rx = pattern.NewCache(pattern.DefaultTimeout)
	}
	return &Pipeline{log: log, rx: rx, metrics: metrics}
}

// Run executes phases over lang. If phases is empty every phase runs.
// Derivation and declension are skipped when lang records that they already
// ran. A failing phase stops the run; phases before it keep their effect.
func (p *Pipeline) Run(ctx context.Context, lang *domain.LanguageDescription, phases []string) ([]PhaseResult, error) {
	toRun := config.KnownPhases
	if len(phases) > 0 {
		for _, ph := range phases {
			if !slices.Contains(config.KnownPhases, ph) {
				return nil, fmt.Errorf("unknown phase %q", ph)
			}
		}
		toRun = nil
		for _, ph := range config.KnownPhases {
			if slices.Contains(phases, ph) {
				toRun = append(toRun, ph)
			}
		}
	}

	ctx, runID := ctxutil.EnsureRunID(ctx)
	log := p.log.With(
		slog.String("language", lang.EnglishName),
		slog.String("run_id", runID.String()),
	)
	engines := NewEngines(lang, p.rx)
	if bad := engines.Mapper.InvalidRules(); len(bad) > 0 {
		log.Warn("sound map rules with invalid patterns are skipped", slog.Any("rules", bad))
	}

	results := make([]PhaseResult, 0, len(toRun))
	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		log.Debug("starting phase", slog.String("phase", phase))

		result := p.runPhase(phase, lang, engines)
		result.Phase = phase
		result.Duration = time.Since(start)
		results = append(results, result)
		p.metrics.observePhase(result)

		switch {
		case result.Err != nil:
			log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return results, fmt.Errorf("%s: %w", phase, result.Err)
		case result.Skipped:
			log.Info("phase skipped", slog.String("phase", phase))
		default:
			log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("added", result.Added),
				slog.Int("removed", result.Removed),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	p.metrics.observeLanguage()
	log.Info("pipeline completed",
		slog.Int("phases_run", len(results)),
		slog.Int("lexicon_size", len(lang.Lexicon)),
	)
	return results, nil
}

func (p *Pipeline) runPhase(phase string, lang *domain.LanguageDescription, e *Engines) PhaseResult {
	switch phase {
	case PhaseDerive:
		if lang.Derived {
			return PhaseResult{Skipped: true}
		}
		added, err := e.Derivation.DeriveLexicon(lang)
		return PhaseResult{Added: added, Err: err}
	case PhaseDecline:
		if lang.Declined {
			return PhaseResult{Skipped: true}
		}
		return PhaseResult{Added: e.Declension.DeclineLexicon(lang)}
	case PhaseDedupe:
		before := len(lang.Lexicon)
		lang.Lexicon = lexicon.Deduplicate(lang.Lexicon)
		return PhaseResult{Removed: before - len(lang.Lexicon)}
	case PhaseSort:
		lexicon.SortBySpelling(lang.Lexicon, e.Collator)
		return PhaseResult{}
	default:
		return PhaseResult{Err: fmt.Errorf("unknown phase %q", phase)}
	}
}

// HasErrors reports whether any result carries an error.
func HasErrors(results []PhaseResult) bool {
	return slices.ContainsFunc(results, func(r PhaseResult) bool { return r.Err != nil })
}
