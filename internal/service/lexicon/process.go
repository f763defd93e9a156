package lexicon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/conlang/internal/app"
	"github.com/heartmarshall/conlang/internal/collation"
	"github.com/heartmarshall/conlang/internal/domain"
	maintenance "github.com/heartmarshall/conlang/internal/lexicon"
)

// Process loads a stored language, runs the pipeline phases over it and
// writes the result back in the same transaction. A failed phase rolls back,
// leaving the stored language untouched.
func (s *Service) Process(ctx context.Context, name string, phases []string) ([]app.PhaseResult, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	var results []app.PhaseResult
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		lang, err := s.languages.GetByName(txCtx, name)
		if err != nil {
			return err
		}

		results, err = s.pipeline.Run(txCtx, lang, phases)
		if err != nil {
			return err
		}

		return s.languages.Save(txCtx, lang)
	})
	if err != nil {
		return results, fmt.Errorf("process language %q: %w", name, err)
	}

	s.log.InfoContext(ctx, "language processed",
		slog.String("language", name),
		slog.Int("phases", len(results)),
	)
	return results, nil
}

// CleanInput selects which generated entries Clean removes.
type CleanInput struct {
	Declined bool
	Derived  bool
}

// Clean removes generated entries from a stored language and clears the
// matching flags, so a later Process regenerates them.
func (s *Service) Clean(ctx context.Context, name string, input CleanInput) (int, error) {
	name, err := validateName(name)
	if err != nil {
		return 0, err
	}
	if !input.Declined && !input.Derived {
		return 0, domain.NewValidationError("clean", "select declined or derived entries")
	}

	var removed int
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		lang, err := s.languages.GetByName(txCtx, name)
		if err != nil {
			return err
		}

		coll := collation.New(lang.LexicalOrderList)
		if input.Declined {
			removed += maintenance.RemoveDeclinedEntries(lang, coll)
		}
		if input.Derived {
			removed += maintenance.RemoveDerivedEntries(lang, coll)
		}
		return s.languages.Save(txCtx, lang)
	})
	if err != nil {
		return 0, fmt.Errorf("clean language %q: %w", name, err)
	}

	s.log.InfoContext(ctx, "language cleaned",
		slog.String("language", name),
		slog.Int("removed", removed),
	)
	return removed, nil
}
