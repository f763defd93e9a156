// Package collation orders spelled words by a language's own alphabet.
package collation

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/conlang/internal/domain"
)

const (
	markFirst = '\u0300'
	markLast  = '\u036f'

	stressMark = "ˈ"

	// letterStride leaves room for every combining mark between two
	// alphabet letters in the exact key.
	letterStride = 128
)

// Key is an exact sort key: one value per counted cluster.
type Key []int

// Collator compares words using an ordered alphabet. It never mutates the
// alphabet and is safe for concurrent use.
type Collator struct {
	alphabet []string
	index    map[string]int
}

// New creates a collator for alphabet. A letter listed twice keeps its
// first position.
func New(alphabet []string) *Collator {
	index := make(map[string]int, len(alphabet))
	for i, letter := range alphabet {
		if _, ok := index[letter]; !ok {
			index[letter] = i
		}
	}
	return &Collator{
		alphabet: slices.Clone(alphabet),
		index:    index,
	}
}

type cluster struct {
	base string
	mark rune // 0 when no combining mark follows the base
	pos  int  // rune offset of the base in the lowered word
}

func (c cluster) text() string {
	if c.mark == 0 {
		return c.base
	}
	return c.base + string(c.mark)
}

// clusters splits the lowered word into base letters with an optional
// combining mark. Stress markers and spaces are dropped.
func (c *Collator) clusters(word string) []cluster {
	// A Caser carries state, so each call gets its own.
	runes := []rune(cases.Lower(language.Und).String(word))
	out := make([]cluster, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		cl := cluster{base: string(runes[i]), pos: i}
		if i+1 < len(runes) && isMark(runes[i+1]) {
			cl.mark = runes[i+1]
			i++
		}
		if cl.base == stressMark || cl.base == " " {
			continue
		}
		out = append(out, cl)
	}
	return out
}

func isMark(r rune) bool { return r >= markFirst && r <= markLast }

// Key returns the exact sort key of word. A cluster listed in the alphabet
// as a whole takes its own position; otherwise its base letter's position
// plus the mark's offset. Letters outside the alphabet sort after all
// known letters.
func (c *Collator) Key(word string) Key {
	cls := c.clusters(word)
	key := make(Key, len(cls))
	for i, cl := range cls {
		key[i] = c.value(cl)
	}
	return key
}

func (c *Collator) value(cl cluster) int {
	if idx, ok := c.index[cl.text()]; ok {
		return idx * letterStride
	}
	idx, ok := c.index[cl.base]
	if !ok {
		return (len(c.alphabet) + 1) * letterStride
	}
	v := idx * letterStride
	if cl.mark != 0 {
		v += int(cl.mark-markFirst) + 1
	}
	return v
}

// LegacyKey is the floating-point key used by earlier tooling: each cluster
// contributes its alphabet index times 100, scaled by 10^-position. Long
// words and large alphabets collide, so ordering uses Key; LegacyKey exists
// for compatibility with stored sort orders.
func (c *Collator) LegacyKey(word string) float64 {
	var sum float64
	for _, cl := range c.clusters(word) {
		sum += c.legacyValue(cl) * math.Pow(10, -float64(cl.pos))
	}
	return sum
}

func (c *Collator) legacyValue(cl cluster) float64 {
	idx, ok := c.index[cl.base]
	if !ok {
		idx, ok = c.index[cl.text()]
	}
	if !ok {
		return float64(len(c.alphabet) + 1)
	}
	v := float64(idx) * 100
	if cl.mark != 0 {
		v += math.Round(float64(cl.mark-markFirst) / float64(markLast-markFirst))
	}
	return v
}

// Compare returns -1, 0 or +1 as a sorts before, equal to or after b.
func (c *Collator) Compare(a, b string) int {
	return slices.Compare(c.Key(a), c.Key(b))
}

func (c *Collator) Less(a, b string) bool { return c.Compare(a, b) < 0 }

// SortStrings sorts words in place. Equal words keep their order.
func (c *Collator) SortStrings(words []string) {
	keys := make(map[string]Key, len(words))
	for _, w := range words {
		if _, ok := keys[w]; !ok {
			keys[w] = c.Key(w)
		}
	}
	slices.SortStableFunc(words, func(a, b string) int {
		return slices.Compare(keys[a], keys[b])
	})
}

// SortEntries sorts entries in place by spelled form. Entries with equal
// spellings keep their order.
func (c *Collator) SortEntries(entries []domain.LexiconEntry) {
	type keyed struct {
		key   Key
		entry domain.LexiconEntry
	}
	tmp := make([]keyed, len(entries))
	for i, e := range entries {
		tmp[i] = keyed{key: c.Key(e.Spelled), entry: e}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		return slices.Compare(a.key, b.key)
	})
	for i := range tmp {
		entries[i] = tmp[i].entry
	}
}

// Alphabet returns a copy of the collator's alphabet.
func (c *Collator) Alphabet() []string { return slices.Clone(c.alphabet) }

// String renders the alphabet in order, for log output.
func (c *Collator) String() string { return strings.Join(c.alphabet, " ") }
