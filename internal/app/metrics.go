package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts pipeline work. Each instance owns its registry so tests
// and concurrent batches never collide on the global one. A nil *Metrics
// records nothing.
type Metrics struct {
	reg *prometheus.Registry

	entriesAdded   *prometheus.CounterVec
	entriesRemoved *prometheus.CounterVec
	phaseFailures  *prometheus.CounterVec
	phaseDuration  *prometheus.HistogramVec
	languages      prometheus.Counter
}

// NewMetrics creates the engine metrics in their own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		entriesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conlang",
			Name:      "lexicon_entries_added_total",
			Help:      "Lexicon entries created, by pipeline phase.",
		}, []string{"phase"}),
		entriesRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conlang",
			Name:      "lexicon_entries_removed_total",
			Help:      "Lexicon entries removed, by pipeline phase.",
		}, []string{"phase"}),
		phaseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "conlang",
			Name:      "phase_failures_total",
			Help:      "Pipeline phases that returned an error.",
		}, []string{"phase"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "conlang",
			Name:      "phase_duration_seconds",
			Help:      "Wall time of pipeline phases.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"phase"}),
		languages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "conlang",
			Name:      "languages_processed_total",
			Help:      "Languages that went through the pipeline without error.",
		}),
	}
	m.reg.MustRegister(m.entriesAdded, m.entriesRemoved, m.phaseFailures, m.phaseDuration, m.languages)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) observePhase(r PhaseResult) {
	if m == nil || r.Skipped {
		return
	}
	m.phaseDuration.WithLabelValues(r.Phase).Observe(r.Duration.Seconds())
	if r.Err != nil {
		m.phaseFailures.WithLabelValues(r.Phase).Inc()
		return
	}
	m.entriesAdded.WithLabelValues(r.Phase).Add(float64(r.Added))
	m.entriesRemoved.WithLabelValues(r.Phase).Add(float64(r.Removed))
}

func (m *Metrics) observeLanguage() {
	if m == nil {
		return
	}
	m.languages.Inc()
}

// WriteTextfile writes the current values in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
