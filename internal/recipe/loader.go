package recipe

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yackhyun/sorichef/internal/domain"
)

// Load reads a recipe JSON file and canonicalizes it. Used by the
// -recipe flag to start a session with a known recipe instead of
// generating one.
func Load(path string) (*domain.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("recipe: parsing %s: %w", path, err)
	}

	r := Canonicalize(raw)
	if r.Category == "" {
		r.Category = "기타"
	}
	return r, nil
}
