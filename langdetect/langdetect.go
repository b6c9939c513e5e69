// Package langdetect tags transcriptions with the language they appear
// to be written in.
package langdetect

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// candidates are the languages considered during detection. Restricting
// the set keeps the models small and the guesses sane for dictation.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Polish,
	lingua.Russian,
	lingua.Ukrainian,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
	lingua.Arabic,
	lingua.Hindi,
	lingua.Turkish,
}

// Detector identifies the language of a piece of text.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over the candidate language set. Models are
// loaded lazily on first use.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code ("en") and English display name
// ("English") of the detected language. ok is false when the text is
// too short to classify or no candidate matches.
func (d *Detector) Detect(text string) (code, name string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < 2 {
		return "", "", false
	}

	detected, exists := d.detector.DetectLanguageOf(trimmed)
	if !exists {
		return "", "", false
	}

	code = strings.ToLower(detected.IsoCode639_1().String())
	return code, englishName(code), true
}

// englishName resolves an ISO code to its English display name, falling
// back to the code itself for anything x/text does not know.
func englishName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	return display.English.Languages().Name(tag)
}
