package lexicon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/conlang/internal/domain"
)

// ImportInput describes a language to store.
type ImportInput struct {
	Language *domain.LanguageDescription
	// Replace overwrites a stored language with the same name instead of
	// failing with domain.ErrAlreadyExists.
	Replace bool
}

// Import stores a language description and its lexicon.
func (s *Service) Import(ctx context.Context, input ImportInput) error {
	lang := input.Language
	if lang == nil {
		return domain.NewValidationError("language", "required")
	}
	if err := lang.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if input.Replace {
			return s.languages.Save(txCtx, lang)
		}
		return s.languages.Create(txCtx, lang)
	})
	if err != nil {
		return fmt.Errorf("import language: %w", err)
	}

	s.log.InfoContext(ctx, "language imported",
		slog.String("language", lang.EnglishName),
		slog.Int("entries", len(lang.Lexicon)),
		slog.Bool("replace", input.Replace),
	)
	return nil
}
