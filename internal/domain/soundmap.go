package domain

import "encoding/json"

// SoundMap is one row of a transcription table. SpellingRegex rewrites
// phonetic text into Romanization; PronunciationRegex rewrites spelled text
// back into Phoneme. An empty regex disables that direction for the row.
type SoundMap struct {
	Phoneme            string
	Romanization       string
	SpellingRegex      string
	PronunciationRegex string
}

// soundMapJSON is the on-disk shape. Language files written by the older
// editor spell the pronunciation key "pronounciation_regex"; both spellings
// are read and the historical one is written.
type soundMapJSON struct {
	Phoneme             string  `json:"phoneme"`
	Romanization        string  `json:"romanization"`
	SpellingRegex       string  `json:"spelling_regex"`
	PronounciationRegex string  `json:"pronounciation_regex"`
	PronunciationRegex  *string `json:"pronunciation_regex,omitempty"`
}

func (m SoundMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(soundMapJSON{
		Phoneme:             m.Phoneme,
		Romanization:        m.Romanization,
		SpellingRegex:       m.SpellingRegex,
		PronounciationRegex: m.PronunciationRegex,
	})
}

func (m *SoundMap) UnmarshalJSON(data []byte) error {
	var raw soundMapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Phoneme = raw.Phoneme
	m.Romanization = raw.Romanization
	m.SpellingRegex = raw.SpellingRegex
	m.PronunciationRegex = raw.PronounciationRegex
	if raw.PronunciationRegex != nil && m.PronunciationRegex == "" {
		m.PronunciationRegex = *raw.PronunciationRegex
	}
	return nil
}

// ReverseSoundMaps returns a reversed copy of maps, the order SoundOut
// expects when the list was authored for spelling.
func ReverseSoundMaps(maps []SoundMap) []SoundMap {
	out := make([]SoundMap, len(maps))
	for i, m := range maps {
		out[len(maps)-1-i] = m
	}
	return out
}
