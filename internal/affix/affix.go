// Package affix evaluates a single declension or derivational affix rule
// against a phonetic word.
package affix

import (
	"strings"

	"github.com/heartmarshall/conlang/internal/domain"
	"github.com/heartmarshall/conlang/internal/pattern"
)

// StressMark is the IPA primary-stress marker (U+02C8).
const StressMark = "ˈ"

// StripStress removes one leading primary-stress marker.
func StripStress(w string) string {
	return strings.TrimPrefix(w, StressMark)
}

// Evaluator applies affix rules, sharing compiled regexes through a cache.
type Evaluator struct {
	rx *pattern.Cache
}

// NewEvaluator creates an evaluator compiling patterns through rx, or a
// private cache with the default timeout when rx is nil.
func NewEvaluator(rx *pattern.Cache) *Evaluator {
	if rx == nil {
		rx = pattern.NewCache(pattern.DefaultTimeout)
	}
	return &Evaluator{rx: rx}
}

// Apply transforms w with affix a placed according to the layer type.
// ok is false when the rule produces no output: particle layers, a
// conditional rule inside a replacement layer, or a regex that fails to
// compile or times out.
//
// Regex tests and substitutions see w as given; add-strings are attached to
// w with its leading stress mark stripped.
func (e *Evaluator) Apply(a domain.Affix, layer domain.AffixType, w string) (string, bool) {
	if layer == domain.AffixTypeParticle {
		return "", false
	}

	switch a.Kind() {
	case domain.AffixKindFixed:
		f, _ := a.Fixed()
		return attach(layer, f.PronunciationAdd, w), true

	case domain.AffixKindConditional:
		c, _ := a.Conditional()
		if layer == domain.AffixTypeReplacement {
			return "", false
		}
		if c.PronunciationRegex == "" {
			return w, true
		}
		matched, err := e.rx.Match(c.PronunciationRegex, w)
		if err != nil {
			return "", false
		}
		add := c.FPronunciationAdd
		if matched {
			add = c.TPronunciationAdd
		}
		return attach(layer, add, w), true

	case domain.AffixKindReplacement:
		r, _ := a.Replacement()
		if r.PronunciationRegex == "" {
			return w, true
		}
		out, err := e.rx.Replace(r.PronunciationRegex, w, r.PronunciationReplacement)
		if err != nil {
			return "", false
		}
		return out, true
	}

	return w, true
}

// ApplyDerivational attaches a derivational affix: PREFIX prepends and
// SUFFIX appends.
func (e *Evaluator) ApplyDerivational(d domain.DerivationalAffix, w string) (string, bool) {
	return e.Apply(d.Affix, d.Type.AffixType(), w)
}

func attach(layer domain.AffixType, add, w string) string {
	if layer == domain.AffixTypePrefix {
		return add + StripStress(w)
	}
	return StripStress(w) + add
}
