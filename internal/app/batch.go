package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/conlang/internal/adapter/langfile"
)

// ProcessFile loads the language at in, runs the pipeline and saves the
// result to out. Nothing is written when a phase fails.
func (p *Pipeline) ProcessFile(ctx context.Context, in, out string, phases []string) ([]PhaseResult, error) {
	lang, err := langfile.Load(in)
	if err != nil {
		return nil, err
	}
	results, err := p.Run(ctx, lang, phases)
	if err != nil {
		return results, fmt.Errorf("process %s: %w", in, err)
	}
	if err := langfile.Save(out, lang); err != nil {
		return results, err
	}
	return results, nil
}

// BatchResult is the outcome for one language file.
type BatchResult struct {
	Path    string
	Out     string
	Results []PhaseResult
	Err     error
}

// ErrOutputClash marks a batch file that was not processed because its
// output path is its own input or is shared with another matched file.
var ErrOutputClash = errors.New("output path clash")

// Batch processes every language file matching a glob, several at a time.
type Batch struct {
	log         *slog.Logger
	pipeline    *Pipeline
	concurrency int
}

// NewBatch creates a batch runner processing at most concurrency files at
// once. Values below one mean one.
func NewBatch(log *slog.Logger, pipeline *Pipeline, concurrency int) *Batch {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Batch{log: log, pipeline: pipeline, concurrency: concurrency}
}

// Run expands pattern (with ** support) and writes each processed language
// under outDir at its path relative to the glob's static base, so
// in/**/*.json maps in/north/lang.json to outDir/north/lang.json. Files whose
// output would overwrite their input or another file's output fail with
// ErrOutputClash and are not processed. A failing file does not stop the
// others; the returned error summarizes failures. Results follow glob order.
func (b *Batch) Run(ctx context.Context, pattern, outDir string, phases []string) ([]BatchResult, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %q: no files matched", pattern)
	}

	results, err := planOutputs(pattern, outDir, matches)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i := range results {
		r := &results[i]
		if r.Err != nil {
			b.log.Warn("language skipped", slog.String("path", r.Path), slog.String("error", r.Err.Error()))
			continue
		}
		g.Go(func() error {
			if err := os.MkdirAll(filepath.Dir(r.Out), 0o755); err != nil {
				r.Err = fmt.Errorf("create %s: %w", filepath.Dir(r.Out), err)
			} else {
				r.Results, r.Err = b.pipeline.ProcessFile(gctx, r.Path, r.Out, phases)
			}
			if r.Err != nil {
				b.log.Warn("language failed", slog.String("path", r.Path), slog.String("error", r.Err.Error()))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	b.log.Info("batch completed",
		slog.Int("files", len(results)),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		return results, fmt.Errorf("%d of %d languages failed", failed, len(results))
	}
	return results, nil
}

// planOutputs maps every match to its mirrored output path and marks the
// ones that clash.
func planOutputs(pattern, outDir string, matches []string) ([]BatchResult, error) {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	results := make([]BatchResult, len(matches))
	inputs := make(map[string]struct{}, len(matches))
	claimed := make(map[string]int, len(matches))

	for i, path := range matches {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return nil, fmt.Errorf("relative path of %s: %w", path, err)
		}
		absIn, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		absOut, err := filepath.Abs(filepath.Join(outDir, rel))
		if err != nil {
			return nil, err
		}
		inputs[absIn] = struct{}{}
		results[i] = BatchResult{Path: path, Out: filepath.Join(outDir, rel)}

		if prev, ok := claimed[absOut]; ok {
			results[i].Err = fmt.Errorf("%s: %w with %s", results[i].Out, ErrOutputClash, results[prev].Path)
			if results[prev].Err == nil {
				results[prev].Err = fmt.Errorf("%s: %w with %s", results[prev].Out, ErrOutputClash, path)
			}
			continue
		}
		claimed[absOut] = i
	}

	for absOut, i := range claimed {
		if _, ok := inputs[absOut]; ok && results[i].Err == nil {
			results[i].Err = fmt.Errorf("%s: %w: would overwrite an input file", results[i].Out, ErrOutputClash)
		}
	}
	return results, nil
}
