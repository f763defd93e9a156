package lexicon

import (
	"context"
	"fmt"

	"github.com/heartmarshall/conlang/internal/domain"
)

// Export returns a stored language with its lexicon.
func (s *Service) Export(ctx context.Context, name string) (*domain.LanguageDescription, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	lang, err := s.languages.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("export language: %w", err)
	}
	return lang, nil
}

// List returns every stored language ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.LanguageSummary, error) {
	summaries, err := s.languages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return summaries, nil
}

// Delete removes a stored language.
func (s *Service) Delete(ctx context.Context, name string) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}

	if err := s.languages.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete language: %w", err)
	}

	s.log.InfoContext(ctx, "language deleted", "language", name)
	return nil
}
