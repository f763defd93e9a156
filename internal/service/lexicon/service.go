// Package lexicon runs the language engines against stored languages.
package lexicon

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/conlang/internal/app"
	"github.com/heartmarshall/conlang/internal/domain"
)

type languageRepo interface {
	Create(ctx context.Context, lang *domain.LanguageDescription) error
	Save(ctx context.Context, lang *domain.LanguageDescription) error
	GetByName(ctx context.Context, name string) (*domain.LanguageDescription, error)
	List(ctx context.Context) ([]domain.LanguageSummary, error)
	Delete(ctx context.Context, name string) error
}

type pipeline interface {
	Run(ctx context.Context, lang *domain.LanguageDescription, phases []string) ([]app.PhaseResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides stored-language operations.
type Service struct {
	languages languageRepo
	pipeline  pipeline
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new lexicon service.
func NewService(
	log *slog.Logger,
	languages languageRepo,
	pipeline pipeline,
	tx txManager,
) *Service {
	return &Service{
		languages: languages,
		pipeline:  pipeline,
		tx:        tx,
		log:       log.With("service", "lexicon"),
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("english_name", "required")
	}
	return name, nil
}
