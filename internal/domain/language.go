package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Defaults applied to descriptive fields left empty by a language file.
const (
	DefaultPhoneticCharacters = "ipa"
)

// LanguageDescription is the aggregate root: the phonology, morphology and
// vocabulary of one constructed language.
type LanguageDescription struct {
	// ID and timestamps are assigned by the store and never serialized.
	ID        uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Version            float64             `json:"version"`
	EnglishName        string              `json:"english_name"`
	PhoneticCharacters string              `json:"phonetic_characters"`
	NativeNamePhonetic string              `json:"native_name_phonetic"`
	NativeNameEnglish  string              `json:"native_name_english"`
	PreferredVoices    map[string]string   `json:"preferred_voices"`
	PreferredLanguage  string              `json:"preferred_language"`
	Derived            bool                `json:"derived"`
	Declined           bool                `json:"declined"`
	NounGenderList     []string            `json:"noun_gender_list"`
	PartOfSpeechList   []string            `json:"part_of_speech_list"`
	PhonemeInventory   []string            `json:"phoneme_inventory"`
	PhoneticInventory  map[string][]string `json:"phonetic_inventory"`
	WordOrderRaw       string              `json:"word_order"`
	AdjectivePosRaw    string              `json:"adjective_position"`
	PrePostPosRaw      string              `json:"pre_post_position"`

	SoundMapList         []SoundMap                   `json:"sound_map_list"`
	LexicalOrderList     []string                     `json:"lexical_order_list"`
	AffixMap             map[string][]AffixLayer      `json:"affix_map"`
	DerivationalAffixMap map[string]DerivationalAffix `json:"derivational_affix_map"`
	Lexicon              []LexiconEntry               `json:"lexicon"`
	DerivedWordList      []string                     `json:"derived_word_list"`
	Metadata             map[string]any               `json:"metadata"`
}

// ApplyDefaults fills the descriptive fields the editor treats as defaulted.
func (l *LanguageDescription) ApplyDefaults() {
	if l.PhoneticCharacters == "" {
		l.PhoneticCharacters = DefaultPhoneticCharacters
	}
	if l.WordOrderRaw == "" {
		l.WordOrderRaw = WordOrderSVO.String()
	}
	if l.AdjectivePosRaw == "" {
		l.AdjectivePosRaw = AdjectivePositionBefore.String()
	}
	if l.PrePostPosRaw == "" {
		l.PrePostPosRaw = PrePostPositionPreposition.String()
	}
}

func (l *LanguageDescription) WordOrder() WordOrder {
	return ParseWordOrder(l.WordOrderRaw)
}

func (l *LanguageDescription) AdjectivePosition() AdjectivePosition {
	return ParseAdjectivePosition(l.AdjectivePosRaw)
}

func (l *LanguageDescription) PrePostPosition() PrePostPosition {
	return ParsePrePostPosition(l.PrePostPosRaw)
}

// Validate checks the invariants that the engines rely on.
func (l *LanguageDescription) Validate() error {
	var errs []FieldError
	if l.EnglishName == "" {
		errs = append(errs, FieldError{Field: "english_name", Message: "required"})
	}
	for pos, layers := range l.AffixMap {
		for i, layer := range layers {
			if !layer.Type.IsValid() {
				errs = append(errs, FieldError{Field: "affix_map." + pos, Message: fmt.Sprintf("unknown layer tag %q at %d", layer.Type, i)})
			}
		}
	}
	for name, d := range l.DerivationalAffixMap {
		if !d.Type.IsValid() {
			errs = append(errs, FieldError{Field: "derivational_affix_map." + name, Message: "type must be PREFIX or SUFFIX"})
		}
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// LanguageSummary is the stored-language listing row.
type LanguageSummary struct {
	ID          uuid.UUID `db:"id"`
	EnglishName string    `db:"english_name"`
	Derived     bool      `db:"derived"`
	Declined    bool      `db:"declined"`
	Entries     int       `db:"entries"`
	UpdatedAt   time.Time `db:"updated_at"`
}
