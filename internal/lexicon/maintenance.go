// Package lexicon holds maintenance operations over a language's
// vocabulary: removing generated entries, deduplication and ordering.
package lexicon

import (
	"slices"
	"strings"

	"github.com/heartmarshall/conlang/internal/domain"
)

// Sorter orders entries by their spelled form.
type Sorter interface {
	SortEntries(entries []domain.LexiconEntry)
}

// RemoveDeclinedEntries drops every entry produced by declension, sorts the
// survivors by spelling and clears lang.Declined. It returns the number of
// entries removed.
func RemoveDeclinedEntries(lang *domain.LanguageDescription, sorter Sorter) int {
	removed := removeWhere(lang, (*domain.LexiconEntry).IsDeclined, sorter)
	lang.Declined = false
	return removed
}

// RemoveDerivedEntries drops every entry produced by derivation, including
// declined forms of derived words, sorts the survivors by spelling and
// clears lang.Derived.
func RemoveDerivedEntries(lang *domain.LanguageDescription, sorter Sorter) int {
	removed := removeWhere(lang, (*domain.LexiconEntry).IsDerived, sorter)
	lang.Derived = false
	return removed
}

func removeWhere(lang *domain.LanguageDescription, drop func(*domain.LexiconEntry) bool, sorter Sorter) int {
	before := len(lang.Lexicon)
	kept := make([]domain.LexiconEntry, 0, before)
	for i := range lang.Lexicon {
		if !drop(&lang.Lexicon[i]) {
			kept = append(kept, lang.Lexicon[i])
		}
	}
	if sorter != nil {
		sorter.SortEntries(kept)
	}
	lang.Lexicon = kept
	return before - len(kept)
}

// Deduplicate returns entries without structural duplicates, keeping the
// first occurrence of each. The scan is quadratic; it is a maintenance
// pass, not a hot path.
func Deduplicate(entries []domain.LexiconEntry) []domain.LexiconEntry {
	out := make([]domain.LexiconEntry, 0, len(entries))
	for i := range entries {
		dup := false
		for j := range out {
			if out[j].Equal(&entries[i]) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, entries[i])
		}
	}
	return out
}

// SortBySpelling sorts entries in place using the language's alphabet.
func SortBySpelling(entries []domain.LexiconEntry, sorter Sorter) {
	sorter.SortEntries(entries)
}

// SortByEnglish sorts entries in place by English gloss, ignoring case and
// surrounding whitespace. The sort is stable.
func SortByEnglish(entries []domain.LexiconEntry) {
	slices.SortStableFunc(entries, func(a, b domain.LexiconEntry) int {
		return strings.Compare(domain.NormalizeText(a.English), domain.NormalizeText(b.English))
	})
}
