// Package conversation normalizes raw utterances and classifies them
// into intents using Korean keyword matching.
package conversation

import (
	"regexp"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?~…]`)
	punctStrip    = regexp.MustCompile(`[?？!.,]`)
	spaceCollapse = regexp.MustCompile(`\s+`)
)

// Normalize reduces a raw utterance to its first sentence: split on
// sentence terminators, keep the first non-empty segment, drop stray
// punctuation, and collapse runs of whitespace. Returns "" when
// nothing usable remains.
func Normalize(raw string) string {
	first := ""
	for _, seg := range sentenceSplit.Split(raw, -1) {
		if strings.TrimSpace(seg) != "" {
			first = seg
			break
		}
	}

	out := punctStrip.ReplaceAllString(first, "")
	out = spaceCollapse.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// Compact strips all whitespace, making suffix particles and spacing
// variations irrelevant for keyword matching.
func Compact(text string) string {
	return strings.Join(strings.Fields(text), "")
}
