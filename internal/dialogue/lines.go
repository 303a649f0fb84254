// Package dialogue — lines.go centralises every assistant-facing
// Korean string. Edit this file to change the assistant's wording;
// the TTS engine speaks these verbatim.
package dialogue

import (
	"fmt"
	"strings"
)

// ── Ingredient check ─────────────────────────────────────────────

// LineIngredients lists a recipe's ingredients and invites the user
// to report anything missing.
func LineIngredients(title string, lines []string) string {
	return fmt.Sprintf("%s 재료 목록입니다:\n%s\n\n빠진 재료가 있으면 말해주세요!", title, strings.Join(lines, "\n"))
}

// LineNoIngredientInfo is the fallback when a recipe arrives without
// any resolvable ingredient lines.
func LineNoIngredientInfo(title string) string {
	return fmt.Sprintf("%s 레시피의 재료 정보를 불러오지 못했어요.\n필요한 재료를 말로 알려주시면 도와드릴게요!", title)
}

// ── Cooking steps ────────────────────────────────────────────────

// LineStep builds the numbered step message. The first step opens
// with a kickoff phrase.
func LineStep(index int, steps []string) string {
	if len(steps) == 0 {
		return "요리 단계를 불러올 수 없어요."
	}

	base := fmt.Sprintf("[%d단계 / %d단계]\n%s", index+1, len(steps), steps[index])
	guide := "\n\n완료하면 \"다음\"이라고 말해주세요."

	if index == 0 {
		return fmt.Sprintf("좋습니다! 요리를 시작하겠습니다.\n\n%s%s", base, guide)
	}
	return base + guide
}

// LineTimerStart announces the per-step countdown.
func LineTimerStart(seconds int) string {
	return fmt.Sprintf(" %d초 타이머를 시작할게요!", seconds)
}

// LineTimerDone announces an elapsed countdown.
func LineTimerDone(seconds int) string {
	return fmt.Sprintf(" %d초가 지났어요! 다음 단계로 넘어가볼까요?", seconds)
}

// LineAllDone prompts the user to confirm completion.
func LineAllDone() string {
	return "모든 단계가 끝났습니다! ‘요리 완료’를 눌러주세요."
}

// ── Substitution negotiation ─────────────────────────────────────

// LineWhichSubstitute lists replacement options as a numbered menu.
func LineWhichSubstitute(options []string) string {
	numbered := make([]string, len(options))
	for i, opt := range options {
		numbered[i] = fmt.Sprintf("%d) %s", i+1, opt)
	}
	return fmt.Sprintf("어떤 재료로 대체할까요?\n%s\n\n사용하실 대체재 번호나 재료명을 말씀해 주세요.", strings.Join(numbered, "\n"))
}

// LineSubstituteUnclear re-prompts after an unrecognized choice.
func LineSubstituteUnclear() string {
	return "알아듣기 어려워요.\n사용하실 번호나 재료명을 다시 알려주세요.\n예: \"1번\", \"쪽파로 대체해줘\""
}

// FollowupReplace is the request text sent when the user picks a
// substitute.
func FollowupReplace(missing, selected string) string {
	return fmt.Sprintf("%s를 %s로 대체해줘", missing, selected)
}

// FollowupOmit is the request text for cooking without the missing
// ingredient.
func FollowupOmit(missing string) string {
	return fmt.Sprintf("%s 없이 만들게 해줘", missing)
}

// LineStartPrompt closes a substitution update. It appears exactly
// once at the end of the merged message.
func LineStartPrompt() string {
	return "요리를 바로 시작할까요?"
}

// ── Errors ───────────────────────────────────────────────────────

func LineRecipeLoadFailed() string {
	return "레시피를 불러오지 못했어요!"
}

func LineMissingAnything() string {
	return "빠진 재료가 있을까요?"
}

func LineExplainAgain() string {
	return "다시 설명해줄래요?"
}

func LineSubstituteUpdateFailed() string {
	return "대체 재료로 레시피를 업데이트하지 못했어요."
}

func LineOmitUpdateFailed() string {
	return "재료를 제외한 레시피 업데이트에 실패했습니다."
}

func LineCompletionSaved() string {
	return "완료한 요리가 저장되었습니다!"
}

func LineCompletionFailed() string {
	return "완료한 레시피 저장에 실패했습니다."
}
