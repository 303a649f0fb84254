package conversation

import (
	"testing"

	"github.com/yackhyun/sorichef/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		cooking bool
		want    domain.IntentType
	}{
		{"start word", "시작해", false, domain.IntentStart},
		{"start embedded", "이제 가자", false, domain.IntentStart},
		{"next with space", "다음 으로", false, domain.IntentNext},
		{"continue", "계속해", false, domain.IntentNext},
		{"ready spaced", "재료 다 있어", false, domain.IntentReady},
		{"ready compact", "다있어", false, domain.IntentReady},
		{"option one", "1번", false, domain.IntentChooseReplace},
		{"replace paraphrase", "대체재로 바꿀래", false, domain.IntentChooseReplace},
		{"option two", "2번", false, domain.IntentChooseOmit},
		{"omit paraphrase", "그냥 빼고", false, domain.IntentChooseOmit},
		{"free text", "소금은 얼마나", false, domain.IntentUnknown},
		{"done only while cooking", "다했어", false, domain.IntentUnknown},
		{"done while cooking", "다했어", true, domain.IntentNext},
		{"okay while cooking", "오케이", true, domain.IntentNext},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.text, tc.cooking)
			if got.Type != tc.want {
				t.Errorf("Classify(%q, cooking=%v) = %s, want %s", tc.text, tc.cooking, got.Type, tc.want)
			}
		})
	}
}

func TestClassifyUnknownCarriesPayload(t *testing.T) {
	got := Classify("김치찌개 레시피 알려줄래", false)
	if got.Type != domain.IntentUnknown || got.Payload != "김치찌개 레시피 알려줄래" {
		t.Fatalf("got %+v", got)
	}
}

func TestMatchOption(t *testing.T) {
	options := []string{"쪽파", "부추", "양파"}

	cases := []struct {
		text    string
		wantIdx int
		wantOK  bool
	}{
		{"1", 0, true},
		{"2번으로", 1, true},
		{"3번째 걸로", 2, true},
		{"부추로 해줘", 1, true},
		{"0번", 0, false},
		{"4", 0, false},
		{"몰라요", 0, false},
	}

	for _, tc := range cases {
		idx, ok := MatchOption(tc.text, options)
		if idx != tc.wantIdx || ok != tc.wantOK {
			t.Errorf("MatchOption(%q) = (%d, %v), want (%d, %v)", tc.text, idx, ok, tc.wantIdx, tc.wantOK)
		}
	}
}

func TestExtractMissing(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"대파 없어", "대파"},
		{"양파가 없는데", "양파가"},
		{"고추장 없음", "고추장"},
		{"설탕 없다", "설탕"},
	}

	for _, tc := range cases {
		if got := ExtractMissing(tc.text); got != tc.want {
			t.Errorf("ExtractMissing(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestParseBulletOptions(t *testing.T) {
	msg := "대파가 없으시군요!\n다음으로 대체할 수 있어요:\n- 쪽파\n• 부추\n\n1) 대체재로 바꾸기\n2) 없이 만들기"
	got := ParseBulletOptions(msg)
	if len(got) != 2 || got[0] != "쪽파" || got[1] != "부추" {
		t.Fatalf("options = %v", got)
	}

	if got := ParseBulletOptions("불릿 없는 답변입니다."); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
