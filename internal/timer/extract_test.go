package timer

import "testing"

func TestExtractSeconds(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"면을 30초 동안 데치세요", 30, true},
		{"10분 동안 끓이세요", 600, true},
		{"1분 30초 기다리세요", 90, true},
		{"30초 1분 기다리세요", 90, true},
		{"5 분 정도 볶으세요", 300, true},

		// Only the first mention of each unit counts.
		{"양파를 5분 볶다가 물을 붓고 10분 끓이세요", 300, true},
		{"20초 데친 뒤 30초 더 볶으세요", 20, true},

		// No numeral, no timer.
		{"약불에서 오 분 정도 끓이세요", 0, false},
		{"잘 저어주세요", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ExtractSeconds(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ExtractSeconds(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}
