package app

import (
	"github.com/heartmarshall/conlang/internal/affix"
	"github.com/heartmarshall/conlang/internal/collation"
	"github.com/heartmarshall/conlang/internal/declension"
	"github.com/heartmarshall/conlang/internal/derivation"
	"github.com/heartmarshall/conlang/internal/domain"
	"github.com/heartmarshall/conlang/internal/pattern"
	"github.com/heartmarshall/conlang/internal/phonology"
)

// Engines bundles the rule engines configured for one language.
type Engines struct {
	Mapper     *phonology.Mapper
	Affixes    *affix.Evaluator
	Declension *declension.Engine
	Derivation *derivation.Engine
	Collator   *collation.Collator
}

// NewEngines wires the engines for lang. Compiled patterns are shared
// through rx, which may serve several languages at once.
func NewEngines(lang *domain.LanguageDescription, rx *pattern.Cache) *Engines {
	mapper := phonology.NewMapper(lang.SoundMapList, rx)
	ev := affix.NewEvaluator(mapper.Patterns())
	return &Engines{
		Mapper:     mapper,
		Affixes:    ev,
		Declension: declension.New(ev, mapper),
		Derivation: derivation.New(ev, mapper),
		Collator:   collation.New(lang.LexicalOrderList),
	}
}
