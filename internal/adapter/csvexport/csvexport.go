// Package csvexport writes a lexicon as a spreadsheet-friendly CSV file.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/heartmarshall/conlang/internal/domain"
	"github.com/heartmarshall/conlang/internal/lexicon"
)

// Header returns the column titles for lang.
func Header(lang *domain.LanguageDescription) []string {
	native := strings.TrimSpace(lang.NativeNameEnglish)
	if native == "" {
		native = lang.EnglishName
	}
	return []string{"English Word", native + " Word", "Part of Speech", "Declensions", "Pronunciation"}
}

// Write renders the lexicon sorted by English gloss. Output is UTF-8 with a
// byte order mark so spreadsheet tools detect the encoding. The language is
// not modified.
func Write(w io.Writer, lang *domain.LanguageDescription) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)

	if err := cw.Write(Header(lang)); err != nil {
		return fmt.Errorf("csvexport: header: %w", err)
	}

	entries := slices.Clone(lang.Lexicon)
	lexicon.SortByEnglish(entries)
	for _, e := range entries {
		row := []string{e.English, e.Spelled, e.PartOfSpeech, strings.Join(e.Declensions, ", "), e.Phonetic}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvexport: row %q: %w", e.English, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csvexport: flush: %w", err)
	}
	return bw.Close()
}

// WriteFile writes the CSV export of lang to path.
func WriteFile(path string, lang *domain.LanguageDescription) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csvexport: create %s: %w", path, err)
	}
	if err := Write(f, lang); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
