package recipe

import (
	"time"

	"github.com/yackhyun/sorichef/internal/domain"
)

// BuildCompleted normalizes a finished recipe into the completion
// payload handed to the persistence callback.
func BuildCompleted(r *domain.Recipe, completedAt time.Time) domain.CompletedRecipe {
	name := r.Title
	if name == "" {
		name = "이름 없는 레시피"
	}
	category := r.Category
	if category == "" {
		category = "기타"
	}

	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []domain.Ingredient{}
	}
	steps := r.Steps
	if steps == nil {
		steps = []string{}
	}

	return domain.CompletedRecipe{
		ID:          r.ID,
		Name:        name,
		Image:       r.Image,
		Description: r.Description,
		Category:    category,
		Ingredients: ingredients,
		Steps:       steps,
		CompletedAt: completedAt.UTC().Format(time.RFC3339),
		CookingTime: r.CookingTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
	}
}
