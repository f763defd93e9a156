package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/conlang/internal/collation"
	"github.com/heartmarshall/conlang/internal/domain"
)

func entry(spelled, english string, derived, declined *bool) domain.LexiconEntry {
	return domain.LexiconEntry{
		Phonetic:     spelled,
		Spelled:      spelled,
		English:      english,
		PartOfSpeech: "n",
		Declensions:  []string{domain.RootDeclension},
		DerivedWord:  derived,
		DeclinedWord: declined,
	}
}

func spellings(entries []domain.LexiconEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Spelled
	}
	return out
}

func TestRemoveDeclinedEntries(t *testing.T) {
	t.Parallel()

	lang := &domain.LanguageDescription{
		Declined: true,
		Lexicon: []domain.LexiconEntry{
			entry("ka", "dog", nil, nil),
			entry("kas", "dogs", nil, domain.Bool(true)),
			entry("ta", "cat", domain.Bool(true), domain.Bool(false)),
		},
	}

	removed := RemoveDeclinedEntries(lang, collation.New([]string{"t", "k", "a", "s"}))

	assert.Equal(t, 1, removed)
	assert.False(t, lang.Declined)
	assert.Equal(t, []string{"ta", "ka"}, spellings(lang.Lexicon))
}

func TestRemoveDerivedEntries(t *testing.T) {
	t.Parallel()

	lang := &domain.LanguageDescription{
		Derived:  true,
		Declined: true,
		Lexicon: []domain.LexiconEntry{
			entry("ta", "cat", domain.Bool(true), nil),
			entry("tas", "cats", domain.Bool(true), domain.Bool(true)),
			entry("ka", "dog", domain.Bool(false), nil),
		},
	}

	removed := RemoveDerivedEntries(lang, nil)

	assert.Equal(t, 2, removed)
	assert.False(t, lang.Derived)
	assert.True(t, lang.Declined, "declined flag is left alone")
	assert.Equal(t, []string{"ka"}, spellings(lang.Lexicon))
}

func TestDeduplicate(t *testing.T) {
	t.Parallel()

	a := entry("ka", "dog", nil, nil)
	b := entry("ta", "cat", nil, nil)
	aWithMeta := a.Clone()
	aWithMeta.Metadata = map[string]any{"note": "x"}
	aFalse := a.Clone()
	aFalse.DerivedWord = domain.Bool(false)

	got := Deduplicate([]domain.LexiconEntry{a, b, a.Clone(), aWithMeta, b, aFalse})

	require.Len(t, got, 4)
	assert.True(t, got[0].Equal(&a))
	assert.True(t, got[1].Equal(&b))
	assert.True(t, got[2].Equal(&aWithMeta))
	assert.True(t, got[3].Equal(&aFalse), "unset flag differs from explicit false")
	assert.Empty(t, Deduplicate(nil))
}

func TestSortByEnglish(t *testing.T) {
	t.Parallel()

	entries := []domain.LexiconEntry{
		entry("a", "Water", nil, nil),
		entry("b", "apple", nil, nil),
		entry("c", "  bread", nil, nil),
		entry("d", "water", nil, nil),
	}
	SortByEnglish(entries)
	assert.Equal(t, []string{"b", "c", "a", "d"}, spellings(entries))
}

func TestSortBySpelling(t *testing.T) {
	t.Parallel()

	entries := []domain.LexiconEntry{
		entry("ba", "", nil, nil),
		entry("ab", "", nil, nil),
	}
	SortBySpelling(entries, collation.New([]string{"b", "a"}))
	assert.Equal(t, []string{"ba", "ab"}, spellings(entries))
}
