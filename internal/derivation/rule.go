package derivation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/heartmarshall/conlang/internal/domain"
)

var (
	ErrMalformedRule  = errors.New("malformed compounding rule")
	ErrUnresolvedRoot = errors.New("unresolved root")
	ErrUnknownAffix   = errors.New("unknown derivational affix")
)

// compoundJoin matches a hyphen between two lower-case letters. Affix names
// are upper-case by convention, so "water-AGT" is left alone while
// "black-bird" becomes two tokens.
var compoundJoin = regexp2.MustCompile(`([a-z])-(?=[a-z])`, regexp2.None)

// Rule is one parsed compounding rule:
//
//	English[,English...]:POS=token[ token...]
type Rule struct {
	Raw          string
	Glosses      []string
	PartOfSpeech string
	Tokens       []Token
}

// Token references an existing root, optionally through a derivational
// affix and with an expected part of speech:
//
//	ROOT[-AFFIX][:POS]   or   ROOT[:POS][-AFFIX]
type Token struct {
	Root         string
	Affix        string
	PartOfSpeech string
}

// ParseRule parses a compounding rule string.
func ParseRule(raw string) (Rule, error) {
	header, body, ok := strings.Cut(raw, "=")
	if !ok || strings.Contains(body, "=") {
		return Rule{}, fmt.Errorf("%w: want exactly one '=' in %q", ErrMalformedRule, raw)
	}
	english, pos, ok := strings.Cut(header, ":")
	if !ok {
		return Rule{}, fmt.Errorf("%w: missing ':' before part of speech in %q", ErrMalformedRule, raw)
	}

	r := Rule{Raw: raw, PartOfSpeech: strings.TrimSpace(pos)}
	for _, g := range strings.Split(english, ",") {
		if g = strings.TrimSpace(g); g != "" {
			r.Glosses = append(r.Glosses, g)
		}
	}
	if len(r.Glosses) == 0 {
		return Rule{}, fmt.Errorf("%w: no English gloss in %q", ErrMalformedRule, raw)
	}

	body, err := compoundJoin.Replace(strings.TrimSpace(body), "$1 ", -1, -1)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}
	for _, field := range strings.Fields(body) {
		tok, err := ParseToken(field)
		if err != nil {
			return Rule{}, fmt.Errorf("%q: %w", raw, err)
		}
		r.Tokens = append(r.Tokens, tok)
	}
	if len(r.Tokens) == 0 {
		return Rule{}, fmt.Errorf("%w: empty rule body in %q", ErrMalformedRule, raw)
	}
	return r, nil
}

// ParseToken splits a token into root, affix and part of speech. The
// part of speech is gender-normalized unless it is "num".
func ParseToken(s string) (Token, error) {
	var tok Token

	cut := strings.IndexAny(s, "-:")
	if cut < 0 {
		tok.Root = strings.TrimSpace(s)
		return tok, checkRoot(tok, s)
	}
	tok.Root = strings.TrimSpace(s[:cut])

	rest := s[cut:]
	for rest != "" {
		delim := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, "-:")
		if end < 0 {
			end = len(rest)
		}
		part := strings.TrimSpace(rest[:end])
		rest = rest[end:]

		switch delim {
		case '-':
			if tok.Affix != "" || part == "" {
				return Token{}, fmt.Errorf("%w: bad affix in token %q", ErrMalformedRule, s)
			}
			tok.Affix = part
		case ':':
			if tok.PartOfSpeech != "" || part == "" {
				return Token{}, fmt.Errorf("%w: bad part of speech in token %q", ErrMalformedRule, s)
			}
			tok.PartOfSpeech = domain.NormalizePOS(part)
		}
	}
	return tok, checkRoot(tok, s)
}

func checkRoot(tok Token, s string) error {
	if tok.Root == "" {
		return fmt.Errorf("%w: empty root in token %q", ErrMalformedRule, s)
	}
	return nil
}
