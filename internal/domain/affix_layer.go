package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DeclensionRule pairs a declension label with the affix that produces it.
type DeclensionRule struct {
	Label string
	Affix Affix
}

// AffixLayer is one ordered stage of declension rules for a part of speech.
// On the wire it is a single-key object mapping the tag to a list of
// single-key objects mapping label to affix:
//
//	{"suffix": [{"plural": {"pronunciation_add": "s"}}, ...]}
type AffixLayer struct {
	Type  AffixType
	Rules []DeclensionRule
}

func (l AffixLayer) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	tag, err := json.Marshal(string(l.Type))
	if err != nil {
		return nil, err
	}
	buf.WriteByte('{')
	buf.Write(tag)
	buf.WriteString(":[")
	for i, r := range l.Rules {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(r.Label)
		if err != nil {
			return nil, err
		}
		affix, err := json.Marshal(r.Affix)
		if err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		buf.Write(label)
		buf.WriteByte(':')
		buf.Write(affix)
		buf.WriteByte('}')
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

func (l *AffixLayer) UnmarshalJSON(data []byte) error {
	var raw map[string][]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return NewValidationError("affix_layer", fmt.Sprintf("expected exactly one tag, got %d", len(raw)))
	}

	var layer AffixLayer
	for tag, rules := range raw {
		layer.Type = AffixType(tag)
		if !layer.Type.IsValid() {
			return NewValidationError("affix_layer", fmt.Sprintf("unknown tag %q", tag))
		}
		layer.Rules = make([]DeclensionRule, 0, len(rules))
		for i, rule := range rules {
			if len(rule) != 1 {
				return NewValidationError(fmt.Sprintf("%s[%d]", tag, i), fmt.Sprintf("expected exactly one label, got %d", len(rule)))
			}
			for label, body := range rule {
				var a Affix
				if err := json.Unmarshal(body, &a); err != nil {
					return fmt.Errorf("%s[%d] %q: %w", tag, i, label, err)
				}
				layer.Rules = append(layer.Rules, DeclensionRule{Label: label, Affix: a})
			}
		}
	}
	*l = layer
	return nil
}
