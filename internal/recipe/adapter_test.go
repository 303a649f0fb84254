package recipe

import (
	"encoding/json"
	"testing"
	"time"
)

func decode(t *testing.T, src string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return raw
}

func TestCanonicalizeFieldAliases(t *testing.T) {
	raw := decode(t, `{
		"id": "r1",
		"name": "김치찌개",
		"cooking_time": 30,
		"ingredients": [
			{"name": "김치", "amount": "300g"},
			{"ingredient": "돼지고기", "quantity": "200g"},
			{"title": "두부", "volume": "1모"}
		],
		"steps": [
			"김치를 볶으세요",
			{"description": "물을 붓고 10분 끓이세요"},
			{"instruction": "두부를 넣으세요"}
		]
	}`)

	r := Canonicalize(raw)

	if r.Title != "김치찌개" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.CookingTime != "30" {
		t.Errorf("CookingTime = %q, want %q", r.CookingTime, "30")
	}
	if len(r.Ingredients) != 3 {
		t.Fatalf("got %d ingredients", len(r.Ingredients))
	}
	if r.Ingredients[1].Name != "돼지고기" || r.Ingredients[1].Amount != "200g" {
		t.Errorf("aliased ingredient = %+v", r.Ingredients[1])
	}
	if r.Ingredients[2].Name != "두부" || r.Ingredients[2].Amount != "1모" {
		t.Errorf("aliased ingredient = %+v", r.Ingredients[2])
	}
	if len(r.Steps) != 3 || r.Steps[1] != "물을 붓고 10분 끓이세요" {
		t.Errorf("steps = %v", r.Steps)
	}
	// Display lines derived from the structured ingredients.
	if len(r.IngredientLines) != 3 || r.IngredientLines[0] != "• 김치 300g" {
		t.Errorf("ingredient lines = %v", r.IngredientLines)
	}
}

func TestCanonicalizePrefersRecipeNameAndFullIngredients(t *testing.T) {
	raw := decode(t, `{
		"recipeName": "AI 김치찌개",
		"name": "김치찌개",
		"fullIngredients": ["• 김치 300g", "• 두부 1모"],
		"steps": ["끓이세요"]
	}`)

	r := Canonicalize(raw)

	if r.Title != "AI 김치찌개" {
		t.Errorf("Title = %q, want recipeName to win", r.Title)
	}
	if len(r.IngredientLines) != 2 || r.IngredientLines[0] != "• 김치 300g" {
		t.Errorf("ingredient lines = %v", r.IngredientLines)
	}
}

func TestStepTextJoinsUnknownKeys(t *testing.T) {
	raw := decode(t, `{
		"name": "테스트",
		"steps": [{"a_phase": "재료를 손질하고", "b_detail": "냄비에 담으세요"}]
	}`)

	r := Canonicalize(raw)

	if len(r.Steps) != 1 || r.Steps[0] != "재료를 손질하고 냄비에 담으세요" {
		t.Errorf("steps = %v, want joined string fields", r.Steps)
	}
}

func TestBuildCompletedDefaults(t *testing.T) {
	raw := decode(t, `{"steps": ["끓이세요"]}`)
	r := Canonicalize(raw)

	at := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	done := BuildCompleted(r, at)

	if done.Name != "이름 없는 레시피" {
		t.Errorf("Name = %q", done.Name)
	}
	if done.Category != "기타" {
		t.Errorf("Category = %q", done.Category)
	}
	if done.CompletedAt != "2026-09-01T12:00:00Z" {
		t.Errorf("CompletedAt = %q", done.CompletedAt)
	}
	if done.Ingredients == nil || done.Steps == nil {
		t.Error("nil slices in payload, want empty slices")
	}
}
