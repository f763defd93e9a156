// Package phonology converts between phonetic and spelled forms using an
// ordered list of sound-map rules.
package phonology

import (
	"github.com/heartmarshall/conlang/internal/domain"
	"github.com/heartmarshall/conlang/internal/pattern"
)

var defaultCache = pattern.NewCache(pattern.DefaultTimeout)

// Spell rewrites a phonetic string, applying each map's SpellingRegex ->
// Romanization in list order. Each rule sees the output of the previous one.
// Rules with an empty, invalid or timed-out regex are skipped.
func Spell(phonetic string, maps []domain.SoundMap) string {
	return spell(defaultCache, phonetic, maps)
}

// SoundOut rewrites a spelled string, applying each map's PronunciationRegex
// -> Phoneme in list order. Pass the list reversed relative to Spell for a
// round trip; Mapper.SoundOut does that.
func SoundOut(spelled string, maps []domain.SoundMap) string {
	return soundOut(defaultCache, spelled, maps)
}

func spell(rx *pattern.Cache, s string, maps []domain.SoundMap) string {
	for _, m := range maps {
		if m.SpellingRegex == "" {
			continue
		}
		if out, err := rx.Replace(m.SpellingRegex, s, m.Romanization); err == nil {
			s = out
		}
	}
	return s
}

func soundOut(rx *pattern.Cache, s string, maps []domain.SoundMap) string {
	for _, m := range maps {
		if m.PronunciationRegex == "" {
			continue
		}
		if out, err := rx.Replace(m.PronunciationRegex, s, m.Phoneme); err == nil {
			s = out
		}
	}
	return s
}

// Mapper binds a sound-map list, authored in spelling order, to a pattern
// cache. Spell walks the list forwards and SoundOut walks it backwards.
type Mapper struct {
	maps     []domain.SoundMap
	reversed []domain.SoundMap
	rx       *pattern.Cache
}

// NewMapper creates a Mapper. A nil cache uses the package-wide one.
func NewMapper(maps []domain.SoundMap, rx *pattern.Cache) *Mapper {
	if rx == nil {
		rx = defaultCache
	}
	return &Mapper{
		maps:     maps,
		reversed: domain.ReverseSoundMaps(maps),
		rx:       rx,
	}
}

func (m *Mapper) Spell(phonetic string) string {
	return spell(m.rx, phonetic, m.maps)
}

func (m *Mapper) SoundOut(spelled string) string {
	return soundOut(m.rx, spelled, m.reversed)
}

// Patterns exposes the cache so affix evaluation shares compiled regexes.
func (m *Mapper) Patterns() *pattern.Cache { return m.rx }

// InvalidRules lists the indices of maps whose non-empty regexes fail to
// compile. Those rules are skipped at run time; callers may log them.
func (m *Mapper) InvalidRules() []int {
	var bad []int
	for i, sm := range m.maps {
		for _, expr := range []string{sm.SpellingRegex, sm.PronunciationRegex} {
			if expr == "" {
				continue
			}
			if _, err := m.rx.Compile(expr); err != nil {
				bad = append(bad, i)
				break
			}
		}
	}
	return bad
}
