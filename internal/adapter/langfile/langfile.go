// Package langfile reads and writes language descriptions as JSON or YAML
// files.
package langfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/conlang/internal/domain"
)

// Format is the on-disk encoding of a language file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that
// is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, decodes and validates the language file at path.
func Load(path string) (*domain.LanguageDescription, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("langfile: open %s: %w", path, err)
	}
	defer f.Close()

	lang, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("langfile: %s: %w", path, err)
	}
	return lang, nil
}

// Decode reads a language description. A leading byte order mark is
// honored, so files written with UTF-8 BOM or in UTF-16 load as well.
func Decode(r io.Reader, format Format) (*domain.LanguageDescription, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	if format == FormatYAML {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	var lang domain.LanguageDescription
	if err := json.Unmarshal(data, &lang); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	lang.ApplyDefaults()
	if err := lang.Validate(); err != nil {
		return nil, err
	}
	return &lang, nil
}

// Save encodes lang in the format implied by path. The file is written to
// a temporary sibling first and renamed into place.
func Save(path string, lang *domain.LanguageDescription) error {
	var buf bytes.Buffer
	if err := Encode(&buf, lang, FormatFromPath(path)); err != nil {
		return fmt.Errorf("langfile: %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("langfile: create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("langfile: write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("langfile: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("langfile: rename to %s: %w", path, err)
	}
	return nil
}

// Encode writes lang to w.
func Encode(w io.Writer, lang *domain.LanguageDescription, format Format) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(lang); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if format != FormatYAML {
		_, err := w.Write(buf.Bytes())
		return err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	blockStyle(&node)

	yenc := yaml.NewEncoder(w)
	yenc.SetIndent(2)
	if err := yenc.Encode(&node); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return yenc.Close()
}

// blockStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks plain block YAML, quoting only where a scalar would
// otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// yamlToJSON converts a YAML document into JSON so it goes through the same
// decoding rules as JSON files.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	out, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return out, nil
}

func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = jsonCompatible(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = jsonCompatible(item)
		}
		return t
	default:
		return v
	}
}
