// Package timer implements the single-slot step countdown and the
// duration extraction that arms it from step text.
package timer

import (
	"regexp"
	"strconv"
)

var (
	minutePattern = regexp.MustCompile(`(\d+)\s*분`)
	secondPattern = regexp.MustCompile(`(\d+)\s*초`)
)

// ExtractSeconds scans step text for Korean durations ("10분", "30초")
// and returns their sum in seconds. Only the first minute mention and
// the first second mention count, so "1분 30초" yields 90 but a step
// naming two cook times keeps the first. Returns false when the text
// names no duration.
func ExtractSeconds(text string) (int, bool) {
	total := 0

	if m := minutePattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n * 60
		}
	}
	if m := secondPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}

	return total, total > 0
}
