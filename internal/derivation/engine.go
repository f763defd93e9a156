// Package derivation builds new root words from compounding rules that
// reference existing vocabulary and derivational affixes.
package derivation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/conlang/internal/domain"
)

// Speller converts a phonetic form into its spelled form.
type Speller interface {
	Spell(phonetic string) string
}

// AffixApplier evaluates a derivational affix.
type AffixApplier interface {
	ApplyDerivational(d domain.DerivationalAffix, w string) (string, bool)
}

// Engine runs compounding rules.
type Engine struct {
	affixes AffixApplier
	speller Speller
}

// New creates a derivation engine.
func New(affixes AffixApplier, speller Speller) *Engine {
	return &Engine{affixes: affixes, speller: speller}
}

// DeriveLexicon runs every rule of lang.DerivedWordList in order. Entries
// created by a rule are visible to the rules after it. On any failure the
// lexicon is left untouched and the error names the failing rule. On success
// the new entries are appended, lang.Derived is set and their count is
// returned.
func (e *Engine) DeriveLexicon(lang *domain.LanguageDescription) (int, error) {
	roots := newRootIndex(lang.Lexicon)

	var pending []domain.LexiconEntry
	for i, raw := range lang.DerivedWordList {
		entries, err := e.derive(raw, lang.DerivationalAffixMap, roots)
		if err != nil {
			return 0, fmt.Errorf("derived_word_list[%d]: %w", i, err)
		}
		pending = append(pending, entries...)
	}

	lang.Lexicon = append(slices.Clip(lang.Lexicon), pending...)
	lang.Derived = true
	return len(pending), nil
}

func (e *Engine) derive(raw string, affixes map[string]domain.DerivationalAffix, roots *rootIndex) ([]domain.LexiconEntry, error) {
	rule, err := ParseRule(raw)
	if err != nil {
		return nil, err
	}

	var phonetic strings.Builder
	for _, tok := range rule.Tokens {
		entry, ok := roots.resolve(tok.Root, tok.PartOfSpeech)
		if !ok {
			if tok.PartOfSpeech != "" {
				return nil, fmt.Errorf("%q: %w: %s:%s", raw, ErrUnresolvedRoot, tok.Root, tok.PartOfSpeech)
			}
			return nil, fmt.Errorf("%q: %w: %s", raw, ErrUnresolvedRoot, tok.Root)
		}

		part := entry.Phonetic
		if tok.Affix != "" {
			d, ok := affixes[tok.Affix]
			if !ok {
				return nil, fmt.Errorf("%q: %w: %s", raw, ErrUnknownAffix, tok.Affix)
			}
			if out, ok := e.affixes.ApplyDerivational(d, part); ok {
				part = out
			}
		}
		phonetic.WriteString(part)
	}

	word := phonetic.String()
	spelled := e.speller.Spell(word)

	out := make([]domain.LexiconEntry, 0, len(rule.Glosses))
	for _, gloss := range rule.Glosses {
		entry := domain.LexiconEntry{
			Phonetic:     word,
			Spelled:      spelled,
			English:      gloss,
			PartOfSpeech: rule.PartOfSpeech,
			Declensions:  []string{domain.RootDeclension},
			DerivedWord:  domain.Bool(true),
			DeclinedWord: domain.Bool(false),
			Metadata: map[string]any{
				domain.MetaDerivationSource: map[string]any{domain.MetaDerivedWord: raw},
			},
		}
		roots.add(entry)
		out = append(out, entry)
	}
	return out, nil
}

type rootKey struct {
	gloss string
	pos   string
}

// rootIndex maps glosses to root entries, with and without part of speech.
// Keys keep insertion order and the first entry for a key wins, so prefix
// fallback is deterministic: the earliest inserted match is used.
type rootIndex struct {
	byGloss    map[string]domain.LexiconEntry
	glossOrder []string
	byPair     map[rootKey]domain.LexiconEntry
	pairOrder  []rootKey
}

func newRootIndex(lexicon []domain.LexiconEntry) *rootIndex {
	ix := &rootIndex{
		byGloss: make(map[string]domain.LexiconEntry),
		byPair:  make(map[rootKey]domain.LexiconEntry),
	}
	for _, e := range lexicon {
		if e.IsRoot() {
			ix.add(e)
		}
	}
	return ix
}

func (ix *rootIndex) add(e domain.LexiconEntry) {
	gloss := domain.GlossKey(e.English)
	if _, ok := ix.byGloss[gloss]; !ok {
		ix.byGloss[gloss] = e
		ix.glossOrder = append(ix.glossOrder, gloss)
	}
	k := rootKey{gloss: gloss, pos: domain.NormalizePOS(e.PartOfSpeech)}
	if _, ok := ix.byPair[k]; !ok {
		ix.byPair[k] = e
		ix.pairOrder = append(ix.pairOrder, k)
	}
}

// resolve looks up an exact key first, then the first key that starts with
// root. An empty pos ignores part of speech.
func (ix *rootIndex) resolve(root, pos string) (domain.LexiconEntry, bool) {
	if pos == "" {
		if e, ok := ix.byGloss[root]; ok {
			return e, true
		}
		for _, g := range ix.glossOrder {
			if strings.HasPrefix(g, root) {
				return ix.byGloss[g], true
			}
		}
		return domain.LexiconEntry{}, false
	}

	if e, ok := ix.byPair[rootKey{gloss: root, pos: pos}]; ok {
		return e, true
	}
	for _, k := range ix.pairOrder {
		if k.pos == pos && strings.HasPrefix(k.gloss, root) {
			return ix.byPair[k], true
		}
	}
	return domain.LexiconEntry{}, false
}
