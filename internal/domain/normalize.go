package domain

import (
	"strings"
)

// NormalizeText prepares text for case-insensitive comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizePOS collapses gendered noun tags ("nm", "nf", "n-anim", ...)
// onto the generic "n". "num" is left alone.
func NormalizePOS(pos string) string {
	pos = strings.TrimSpace(pos)
	if strings.HasPrefix(pos, "n") && pos != "num" {
		return "n"
	}
	return pos
}

// GlossKey turns an English gloss into the lookup key used by compounding
// rules: spaces become underscores.
func GlossKey(english string) string {
	return strings.ReplaceAll(english, " ", "_")
}
