package transcript

import (
	"testing"

	"github.com/yackhyun/sorichef/internal/domain"
)

// mockSpeaker records spoken text.
type mockSpeaker struct {
	spoken []string
}

func (m *mockSpeaker) Speak(text string) { m.spoken = append(m.spoken, text) }
func (m *mockSpeaker) Stop()             {}

func TestAppendSpeaksAssistantOnly(t *testing.T) {
	speaker := &mockSpeaker{}
	tr := New(speaker)

	tr.Append(domain.RoleUser, "김치찌개 알려줘")
	tr.Append(domain.RoleAssistant, "재료 목록입니다")

	if len(speaker.spoken) != 1 || speaker.spoken[0] != "재료 목록입니다" {
		t.Fatalf("spoken = %v, want only the assistant message", speaker.spoken)
	}
	if tr.Len() != 2 {
		t.Fatalf("len = %d, want 2", tr.Len())
	}
}

func TestAppendSpeaksDuplicates(t *testing.T) {
	speaker := &mockSpeaker{}
	tr := New(speaker)

	tr.Append(domain.RoleAssistant, "다음 단계입니다")
	tr.Append(domain.RoleAssistant, "다음 단계입니다")

	if len(speaker.spoken) != 2 {
		t.Fatalf("spoken %d times, want 2 (no de-duplication)", len(speaker.spoken))
	}
}

func TestOnChangeAndUniqueIDs(t *testing.T) {
	var seen []domain.ChatMessage
	tr := New(&mockSpeaker{}, WithOnChange(func(m domain.ChatMessage) {
		seen = append(seen, m)
	}))

	a := tr.Append(domain.RoleUser, "하나")
	b := tr.Append(domain.RoleUser, "둘")

	if len(seen) != 2 {
		t.Fatalf("onChange fired %d times, want 2", len(seen))
	}
	if a.ID == b.ID {
		t.Fatalf("message IDs collide: %q", a.ID)
	}

	msgs := tr.Messages()
	if len(msgs) != 2 || msgs[0].Text != "하나" || msgs[1].Text != "둘" {
		t.Fatalf("messages out of order: %+v", msgs)
	}
}
