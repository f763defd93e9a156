// Package declension generates inflected forms of lexicon entries from the
// affix layers of their part of speech.
package declension

import (
	"math/bits"
	"slices"
	"strings"

	"github.com/heartmarshall/conlang/internal/domain"
)

// Speller converts a phonetic form into its spelled form.
type Speller interface {
	Spell(phonetic string) string
}

// AffixApplier evaluates one affix rule.
type AffixApplier interface {
	Apply(a domain.Affix, layer domain.AffixType, w string) (string, bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDerivedDefault sets derived_word on outputs whose source entry leaves
// it unset.
func WithDerivedDefault(derived bool) Option {
	return func(e *Engine) { e.derivedDefault = derived }
}

// Engine declines words. It holds no per-call state and is safe to reuse.
type Engine struct {
	affixes        AffixApplier
	speller        Speller
	derivedDefault bool
}

// New creates a declension engine.
func New(affixes AffixApplier, speller Speller, opts ...Option) *Engine {
	e := &Engine{affixes: affixes, speller: speller}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// form is one candidate produced while walking a layer combination.
type form struct {
	word   string
	labels []string
	pos    string
	from   string
}

// DeclineWord returns every inflected form of word. The word itself is never
// part of the result. Words already declined, or carrying "Source" lineage,
// yield nothing.
func (e *Engine) DeclineWord(word domain.LexiconEntry, affixMap map[string][]domain.AffixLayer) []domain.LexiconEntry {
	if word.IsDeclined() {
		return nil
	}
	if _, ok := word.Metadata[domain.MetaDeclensionSource]; ok {
		return nil
	}

	layers, ok := affixMap[word.PartOfSpeech]
	if !ok || len(layers) == 0 {
		return nil
	}
	layers = sortLayers(layers)

	var forms []form
	for _, subset := range orderedSubsets(len(layers)) {
		combo := make([]domain.AffixLayer, len(subset))
		for i, idx := range subset {
			combo[i] = layers[idx]
		}
		forms = append(forms, e.expand(combo, word.Phonetic, word.PartOfSpeech, nil)...)
	}
	forms = dedupe(forms)
	if len(forms) == 0 {
		return nil
	}

	derived := e.derivedDefault
	if word.DerivedWord != nil {
		derived = *word.DerivedWord
	}
	lineage := map[string]any{domain.MetaDeclinedWord: word.AsMap()}

	out := make([]domain.LexiconEntry, 0, len(forms))
	for _, f := range forms {
		meta := domain.CopyMetadata(word.Metadata)
		if meta == nil {
			meta = make(map[string]any, 1)
		}
		delete(meta, domain.MetaDeclensionSource)
		meta[domain.MetaDeclensionSource] = domain.CopyMetadata(lineage)

		out = append(out, domain.LexiconEntry{
			Phonetic:     f.word,
			Spelled:      e.speller.Spell(f.word),
			English:      word.English,
			PartOfSpeech: f.pos,
			Declensions:  f.labels,
			DerivedWord:  domain.Bool(derived),
			DeclinedWord: domain.Bool(true),
			Metadata:     meta,
		})
	}
	return out
}

// DeclineLexicon declines every entry present when the call starts, appends
// the results and marks the language declined. It returns the number of
// entries added.
func (e *Engine) DeclineLexicon(lang *domain.LanguageDescription) int {
	snapshot := lang.Lexicon
	var added []domain.LexiconEntry
	for _, w := range snapshot {
		added = append(added, e.DeclineWord(w, lang.AffixMap)...)
	}
	lang.Lexicon = append(slices.Clip(lang.Lexicon), added...)
	lang.Declined = true
	return len(added)
}

// expand applies the first layer of combo to phonetic and recurses into the
// rest. Deeper results come before the candidate that produced them.
func (e *Engine) expand(combo []domain.AffixLayer, phonetic, pos string, prior []string) []form {
	if len(combo) == 0 {
		return nil
	}
	layer := combo[0]
	if layer.Type == domain.AffixTypeParticle {
		return nil
	}

	var out []form
	for _, rule := range layer.Rules {
		next, ok := e.affixes.Apply(rule.Affix, layer.Type, phonetic)
		if !ok {
			continue
		}
		labels := append(slices.Clone(prior), rule.Label)
		out = append(out, e.expand(combo[1:], next, pos, labels)...)
		out = append(out, form{word: next, labels: labels, pos: pos, from: phonetic})
	}
	return out
}

// sortLayers orders layers by tag. The sort is stable so layers sharing a
// tag keep their authored order.
func sortLayers(layers []domain.AffixLayer) []domain.AffixLayer {
	sorted := slices.Clone(layers)
	slices.SortStableFunc(sorted, func(a, b domain.AffixLayer) int {
		return strings.Compare(string(a.Type), string(b.Type))
	})
	return sorted
}

// orderedSubsets lists every non-empty subset of positions 0..n-1 with
// positions ascending, smaller subsets first.
func orderedSubsets(n int) [][]int {
	if n <= 0 {
		return nil
	}
	total := 1 << n
	subsets := make([][]int, 0, total-1)
	for mask := 1; mask < total; mask++ {
		subset := make([]int, 0, bits.OnesCount(uint(mask)))
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, i)
			}
		}
		subsets = append(subsets, subset)
	}
	slices.SortFunc(subsets, func(a, b []int) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return slices.Compare(a, b)
	})
	return subsets
}

// dedupe keeps the first form for each (word, pos, from, label set).
func dedupe(forms []form) []form {
	seen := make(map[string]struct{}, len(forms))
	out := forms[:0:0]
	for _, f := range forms {
		k := dedupeKey(f)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}

func dedupeKey(f form) string {
	set := slices.Clone(f.labels)
	slices.Sort(set)
	set = slices.Compact(set)
	return strings.Join([]string{f.word, f.pos, f.from, strings.Join(set, "\x1f")}, "\x1e")
}
