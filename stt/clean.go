package stt

import (
	"regexp"
	"strings"
)

var (
	// Bare VTT-style timestamps: 00:00:00.000 --> 00:00:02.500
	timestampPattern = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3}\s+-->\s+\d{2}:\d{2}:\d{2}\.\d{3}`)
	// Bracketed annotations such as [BLANK_AUDIO] or [MUSIC]. Spoken text
	// cannot produce brackets, so anything bracketed is a whisper artifact.
	bracketPattern = regexp.MustCompile(`\[[^\]]*\]`)
	multiSpace     = regexp.MustCompile(`[ \t]{2,}`)
)

// cleanTranscript strips whisper artifacts from transcribed text and
// normalizes the whitespace left behind.
func cleanTranscript(text string) string {
	text = timestampPattern.ReplaceAllString(text, "")
	text = bracketPattern.ReplaceAllString(text, "")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
