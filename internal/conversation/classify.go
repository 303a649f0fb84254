package conversation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yackhyun/sorichef/internal/domain"
)

// Keyword lists mirror how Korean speakers actually phrase these
// commands. Kept as data so a future locale only swaps the lists.
var (
	startKeywords = []string{"시작", "시작해", "해줘", "가자", "ㄱㄱ", "ㄱ", "스타트", "start"}

	nextKeywords = []string{"다음", "다음단계", "다음으로", "계속", "계속해"}

	// Additional phrasings that only mean "next" once cooking has
	// started ("됐어" during ingredient check is too ambiguous).
	cookingNextKeywords = []string{"다음", "다했어", "됐어", "ㅇㅋ", "오케이"}

	readyKeywords = []string{"다 있어", "다있어", "재료 다 있어", "재료다있어"}

	replaceKeywords = []string{"1", "1번", "첫번째", "첫 번째", "대체재", "대체재로 바꾸기", "대체재로 바꿀래"}

	omitKeywords = []string{"2", "2번", "두번째", "두 번째", "없어도 돼", "없이 만들기", "그냥 빼고", "그냥 만들기"}
)

var (
	digitRun      = regexp.MustCompile(`\d+`)
	missingSuffix = regexp.MustCompile(`없어|없는데|없음|없다|이 없어|가 없어`)
	bulletPrefix  = regexp.MustCompile(`^[-•]\s*`)
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsStartIntent reports whether the text asks to start cooking.
func IsStartIntent(text string) bool {
	return containsAny(text, startKeywords)
}

// IsNextIntent reports whether the text asks to move on. Whitespace is
// ignored so "다음 으로" and "다음으로" both match.
func IsNextIntent(text string) bool {
	return containsAny(Compact(text), nextKeywords)
}

// IsCookingNextIntent is IsNextIntent with the looser phrasings that
// are unambiguous only while cooking.
func IsCookingNextIntent(text string) bool {
	return containsAny(Compact(text), cookingNextKeywords)
}

// IsReadyIntent reports whether the text confirms all ingredients are
// present.
func IsReadyIntent(text string) bool {
	return containsAny(text, readyKeywords)
}

// Classify tags a normalized utterance. The cooking flag widens the
// "next" vocabulary once steps are underway.
func Classify(text string, cooking bool) domain.Intent {
	switch {
	case cooking && IsCookingNextIntent(text):
		return domain.Intent{Type: domain.IntentNext}
	case IsReadyIntent(text):
		return domain.Intent{Type: domain.IntentReady}
	case IsNextIntent(text):
		return domain.Intent{Type: domain.IntentNext}
	case IsStartIntent(text):
		return domain.Intent{Type: domain.IntentStart}
	case containsAny(text, replaceKeywords):
		return domain.Intent{Type: domain.IntentChooseReplace}
	case containsAny(text, omitKeywords):
		return domain.Intent{Type: domain.IntentChooseOmit}
	default:
		return domain.Intent{Type: domain.IntentUnknown, Payload: text}
	}
}

// MatchOption resolves the user's pick from a numbered option list.
// A digit run selects by 1-based position; otherwise the first option
// contained in the text wins. Returns the option index and true on a
// match.
func MatchOption(text string, options []string) (int, bool) {
	if m := digitRun.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			if idx := n - 1; idx >= 0 && idx < len(options) {
				return idx, true
			}
		}
	}
	for i, opt := range options {
		if opt != "" && strings.Contains(text, opt) {
			return i, true
		}
	}
	return 0, false
}

// ExtractMissing pulls the ingredient name out of phrases like
// "대파 없어" or "양파가 없는데".
func ExtractMissing(text string) string {
	return strings.TrimSpace(missingSuffix.ReplaceAllString(text, ""))
}

// ParseBulletOptions collects substitution candidates from bullet
// lines ("- 쪽파", "• 부추") in an assistant message.
func ParseBulletOptions(message string) []string {
	var options []string
	for _, line := range strings.Split(message, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "•") {
			continue
		}
		options = append(options, strings.TrimSpace(bulletPrefix.ReplaceAllString(trimmed, "")))
	}
	return options
}
