package domain

import (
	"reflect"
	"slices"
)

// RootDeclension is the declension label carried by an undeclined base form.
const RootDeclension = "root"

// Metadata keys written by the engines.
const (
	MetaDeclensionSource = "Source"
	MetaDerivationSource = "source"
	MetaDeclinedWord     = "declined_word"
	MetaDerivedWord      = "derived_word"
)

// LexiconEntry is one word of the vocabulary.
type LexiconEntry struct {
	Phonetic     string         `json:"phonetic"`
	Spelled      string         `json:"spelled"`
	English      string         `json:"english"`
	PartOfSpeech string         `json:"part_of_speech"`
	Declensions  []string       `json:"declensions"`
	DerivedWord  *bool          `json:"derived_word"`
	DeclinedWord *bool          `json:"declined_word"`
	Metadata     map[string]any `json:"metadata"`
}

// IsDerived treats an unset flag as false.
func (e *LexiconEntry) IsDerived() bool {
	return e.DerivedWord != nil && *e.DerivedWord
}

// IsDeclined treats an unset flag as false.
func (e *LexiconEntry) IsDeclined() bool {
	return e.DeclinedWord != nil && *e.DeclinedWord
}

// IsRoot reports whether the entry carries the "root" declension label.
func (e *LexiconEntry) IsRoot() bool {
	return slices.Contains(e.Declensions, RootDeclension)
}

// Equal compares every field. Metadata is compared structurally; a nil and
// an empty collection are considered equal.
func (e *LexiconEntry) Equal(o *LexiconEntry) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.Phonetic == o.Phonetic &&
		e.Spelled == o.Spelled &&
		e.English == o.English &&
		e.PartOfSpeech == o.PartOfSpeech &&
		slices.Equal(e.Declensions, o.Declensions) &&
		equalFlag(e.DerivedWord, o.DerivedWord) &&
		equalFlag(e.DeclinedWord, o.DeclinedWord) &&
		equalMetadata(e.Metadata, o.Metadata)
}

// Clone returns a deep copy.
func (e LexiconEntry) Clone() LexiconEntry {
	out := e
	out.Declensions = slices.Clone(e.Declensions)
	if e.DerivedWord != nil {
		out.DerivedWord = Bool(*e.DerivedWord)
	}
	if e.DeclinedWord != nil {
		out.DeclinedWord = Bool(*e.DeclinedWord)
	}
	out.Metadata = CopyMetadata(e.Metadata)
	return out
}

// AsMap renders the entry in its JSON shape, with metadata deep-copied.
// It is the lineage payload stored under the "Source" metadata key.
func (e *LexiconEntry) AsMap() map[string]any {
	declensions := make([]any, len(e.Declensions))
	for i, d := range e.Declensions {
		declensions[i] = d
	}
	m := map[string]any{
		"phonetic":       e.Phonetic,
		"spelled":        e.Spelled,
		"english":        e.English,
		"part_of_speech": e.PartOfSpeech,
		"declensions":    declensions,
		"derived_word":   flagValue(e.DerivedWord),
		"declined_word":  flagValue(e.DeclinedWord),
		"metadata":       nil,
	}
	if e.Metadata != nil {
		m["metadata"] = CopyMetadata(e.Metadata)
	}
	return m
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// CopyMetadata deep-copies a JSON-shaped metadata bag.
func CopyMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CopyMetadata(t)
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = copyValue(x)
		}
		return out
	case []string:
		return slices.Clone(t)
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, x := range t {
			out[k] = x
		}
		return out
	default:
		return v
	}
}

func flagValue(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func equalFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalMetadata(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
