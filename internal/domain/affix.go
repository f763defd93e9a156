package domain

import (
	"encoding/json"
	"fmt"
)

// FixedAffix unconditionally prepends or appends its add-strings.
type FixedAffix struct {
	PronunciationAdd string
	SpellingAdd      string
}

// ConditionalAffix picks the T* or F* add-string depending on whether the
// existing word matches the regex.
type ConditionalAffix struct {
	PronunciationRegex string
	SpellingRegex      string
	TPronunciationAdd  string
	FPronunciationAdd  string
	TSpellingAdd       string
	FSpellingAdd       string
}

// ReplacementAffix rewrites the word with a regex substitution. Replacement
// strings may reference capture groups ($1, ${name}).
type ReplacementAffix struct {
	PronunciationRegex       string
	SpellingRegex            string
	PronunciationReplacement string
	SpellingReplacement      string
}

// Affix is one declension rule. Exactly one shape is populated, selected by
// Kind. The zero value is a pass-through rule.
type Affix struct {
	kind        AffixKind
	fixed       FixedAffix
	conditional ConditionalAffix
	replacement ReplacementAffix
}

func NewFixedAffix(f FixedAffix) Affix {
	return Affix{kind: AffixKindFixed, fixed: f}
}

func NewConditionalAffix(c ConditionalAffix) Affix {
	return Affix{kind: AffixKindConditional, conditional: c}
}

func NewReplacementAffix(r ReplacementAffix) Affix {
	return Affix{kind: AffixKindReplacement, replacement: r}
}

// Kind reports the populated shape.
func (a Affix) Kind() AffixKind {
	if a.kind == "" {
		return AffixKindNone
	}
	return a.kind
}

func (a Affix) Fixed() (FixedAffix, bool) {
	return a.fixed, a.kind == AffixKindFixed
}

func (a Affix) Conditional() (ConditionalAffix, bool) {
	return a.conditional, a.kind == AffixKindConditional
}

func (a Affix) Replacement() (ReplacementAffix, bool) {
	return a.replacement, a.kind == AffixKindReplacement
}

// AffixFields is the nullable-field wire shape shared by declension and
// derivational affixes.
type AffixFields struct {
	PronunciationAdd         *string `json:"pronunciation_add,omitempty"`
	SpellingAdd              *string `json:"spelling_add,omitempty"`
	PronunciationRegex       *string `json:"pronunciation_regex,omitempty"`
	SpellingRegex            *string `json:"spelling_regex,omitempty"`
	TPronunciationAdd        *string `json:"t_pronunciation_add,omitempty"`
	TSpellingAdd             *string `json:"t_spelling_add,omitempty"`
	FPronunciationAdd        *string `json:"f_pronunciation_add,omitempty"`
	FSpellingAdd             *string `json:"f_spelling_add,omitempty"`
	PronunciationReplacement *string `json:"pronunciation_replacement,omitempty"`
	SpellingReplacement      *string `json:"spelling_replacement,omitempty"`
}

func (f AffixFields) hasAdd() bool {
	return f.PronunciationAdd != nil || f.SpellingAdd != nil
}

func (f AffixFields) hasRegex() bool {
	return f.PronunciationRegex != nil || f.SpellingRegex != nil
}

func (f AffixFields) hasBranches() bool {
	return f.TPronunciationAdd != nil || f.FPronunciationAdd != nil ||
		f.TSpellingAdd != nil || f.FSpellingAdd != nil
}

func (f AffixFields) hasReplacement() bool {
	return f.PronunciationReplacement != nil || f.SpellingReplacement != nil
}

// NewAffixFromFields classifies the wire fields into a shape and rejects
// combinations that mix shapes. A regex with no branch strings is a
// conditional rule whose branches add nothing.
func NewAffixFromFields(f AffixFields) (Affix, error) {
	var errs []FieldError

	switch {
	case f.hasAdd() && (f.hasRegex() || f.hasBranches() || f.hasReplacement()):
		errs = append(errs, FieldError{Field: "pronunciation_add", Message: "fixed add-strings cannot be combined with regex, branch or replacement fields"})
	case f.hasBranches() && f.hasReplacement():
		errs = append(errs, FieldError{Field: "pronunciation_replacement", Message: "replacement cannot be combined with t_/f_ add-strings"})
	case (f.hasBranches() || f.hasReplacement()) && !f.hasRegex():
		errs = append(errs, FieldError{Field: "pronunciation_regex", Message: "required by conditional and replacement rules"})
	}
	if len(errs) > 0 {
		return Affix{}, NewValidationErrors(errs)
	}

	switch {
	case f.hasAdd():
		return NewFixedAffix(FixedAffix{
			PronunciationAdd: deref(f.PronunciationAdd),
			SpellingAdd:      deref(f.SpellingAdd),
		}), nil
	case f.hasReplacement():
		return NewReplacementAffix(ReplacementAffix{
			PronunciationRegex:       deref(f.PronunciationRegex),
			SpellingRegex:            deref(f.SpellingRegex),
			PronunciationReplacement: deref(f.PronunciationReplacement),
			SpellingReplacement:      deref(f.SpellingReplacement),
		}), nil
	case f.hasRegex():
		return NewConditionalAffix(ConditionalAffix{
			PronunciationRegex: deref(f.PronunciationRegex),
			SpellingRegex:      deref(f.SpellingRegex),
			TPronunciationAdd:  deref(f.TPronunciationAdd),
			FPronunciationAdd:  deref(f.FPronunciationAdd),
			TSpellingAdd:       deref(f.TSpellingAdd),
			FSpellingAdd:       deref(f.FSpellingAdd),
		}), nil
	}
	return Affix{}, nil
}

// Fields renders the affix back into its wire shape.
func (a Affix) Fields() AffixFields {
	switch a.Kind() {
	case AffixKindFixed:
		return AffixFields{
			PronunciationAdd: ptr(a.fixed.PronunciationAdd),
			SpellingAdd:      ptr(a.fixed.SpellingAdd),
		}
	case AffixKindConditional:
		c := a.conditional
		return AffixFields{
			PronunciationRegex: ptr(c.PronunciationRegex),
			SpellingRegex:      ptr(c.SpellingRegex),
			TPronunciationAdd:  ptr(c.TPronunciationAdd),
			FPronunciationAdd:  ptr(c.FPronunciationAdd),
			TSpellingAdd:       ptr(c.TSpellingAdd),
			FSpellingAdd:       ptr(c.FSpellingAdd),
		}
	case AffixKindReplacement:
		r := a.replacement
		return AffixFields{
			PronunciationRegex:       ptr(r.PronunciationRegex),
			SpellingRegex:            ptr(r.SpellingRegex),
			PronunciationReplacement: ptr(r.PronunciationReplacement),
			SpellingReplacement:      ptr(r.SpellingReplacement),
		}
	}
	return AffixFields{}
}

func (a Affix) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Fields())
}

func (a *Affix) UnmarshalJSON(data []byte) error {
	var f AffixFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	parsed, err := NewAffixFromFields(f)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// DerivationalAffix is an affix used while compounding new roots. It is
// either fixed or conditional; replacement rules are not allowed.
type DerivationalAffix struct {
	Type  DerivationType
	Affix Affix
}

type derivationalAffixJSON struct {
	Type DerivationType `json:"type"`
	AffixFields
}

// NewDerivationalAffix validates the type and shape.
func NewDerivationalAffix(t DerivationType, f AffixFields) (DerivationalAffix, error) {
	if !t.IsValid() {
		return DerivationalAffix{}, NewValidationError("type", fmt.Sprintf("must be PREFIX or SUFFIX, got %q", t))
	}
	if f.hasReplacement() {
		return DerivationalAffix{}, NewValidationError("pronunciation_replacement", "not allowed on derivational affixes")
	}
	a, err := NewAffixFromFields(f)
	if err != nil {
		return DerivationalAffix{}, err
	}
	return DerivationalAffix{Type: t, Affix: a}, nil
}

func (d DerivationalAffix) MarshalJSON() ([]byte, error) {
	return json.Marshal(derivationalAffixJSON{Type: d.Type, AffixFields: d.Affix.Fields()})
}

func (d *DerivationalAffix) UnmarshalJSON(data []byte) error {
	var raw derivationalAffixJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewDerivationalAffix(raw.Type, raw.AffixFields)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string { return &s }
