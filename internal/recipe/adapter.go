// Package recipe canonicalizes heterogeneous recipe payloads into the
// domain Recipe and builds the completed-recipe payload.
package recipe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yackhyun/sorichef/internal/domain"
)

// Field alias chains, in resolution order. External recipe payloads
// disagree on key names; each logical attribute is resolved here once
// and never re-resolved downstream.
var (
	titleAliases          = []string{"recipeName", "name", "title"}
	ingredientNameAliases = []string{"name", "ingredient", "title"}
	amountAliases         = []string{"amount", "quantity", "volume", "qty"}
	stepTextAliases       = []string{"description", "step", "content", "text", "instruction", "instruction_text"}
	cookingTimeAliases    = []string{"cooking_time", "cookingTime"}
)

// Canonicalize maps a raw decoded recipe object onto the canonical
// Recipe. Unknown shapes degrade gracefully; it never fails.
func Canonicalize(raw map[string]any) *domain.Recipe {
	r := &domain.Recipe{
		ID:          stringValue(raw["id"]),
		Title:       firstString(raw, titleAliases),
		Description: stringValue(raw["description"]),
		Category:    stringValue(raw["category"]),
		CookingTime: firstString(raw, cookingTimeAliases),
		Servings:    stringValue(raw["servings"]),
		Difficulty:  stringValue(raw["difficulty"]),
		Image:       stringValue(raw["image"]),
	}

	if list, ok := raw["fullIngredients"].([]any); ok {
		for _, v := range list {
			if s := strings.TrimSpace(stringValue(v)); s != "" {
				r.IngredientLines = append(r.IngredientLines, s)
			}
		}
	}

	if list, ok := raw["ingredients"].([]any); ok {
		for _, v := range list {
			ing := canonicalIngredient(v)
			if ing.Name == "" && ing.Amount == "" {
				continue
			}
			r.Ingredients = append(r.Ingredients, ing)
		}
	}

	if list, ok := raw["steps"].([]any); ok {
		for _, v := range list {
			if s := stepText(v); s != "" {
				r.Steps = append(r.Steps, s)
			}
		}
	}

	// Ingredient display lines fall back to the structured list.
	if len(r.IngredientLines) == 0 {
		for _, ing := range r.Ingredients {
			line := ing.Name
			if ing.Amount != "" {
				line = fmt.Sprintf("• %s %s", ing.Name, ing.Amount)
			} else if line != "" {
				line = "• " + line
			}
			if line != "" {
				r.IngredientLines = append(r.IngredientLines, line)
			}
		}
	}

	return r
}

func canonicalIngredient(v any) domain.Ingredient {
	switch val := v.(type) {
	case string:
		return domain.Ingredient{Name: strings.TrimSpace(val)}
	case map[string]any:
		return domain.Ingredient{
			Name:   strings.TrimSpace(firstString(val, ingredientNameAliases)),
			Amount: strings.TrimSpace(firstString(val, amountAliases)),
		}
	default:
		return domain.Ingredient{}
	}
}

// stepText resolves one step entry, which may be a bare string or an
// object keyed by any of the known descriptive names. When no key
// matches, all string-valued fields are joined space-separated as a
// best effort.
func stepText(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		for _, key := range stepTextAliases {
			if s, ok := val[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			if s, ok := val[k].(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(stringValue(m[k])); s != "" {
			return s
		}
	}
	return ""
}

// stringValue renders scalar JSON values as strings. Numbers show
// without a trailing ".0" so "30" stays "30".
func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return ""
	}
}
