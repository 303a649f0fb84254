package domain

import "context"

// RecipeService produces and revises recipes. Implementations can be
// LLM-backed or canned fixtures in tests.
type RecipeService interface {
	// Generate creates a recipe from a free-form request.
	Generate(ctx context.Context, message string, profile UserProfile) (*Recipe, error)
	// Followup revises the current recipe based on a user message and
	// returns the assistant's reply plus the replacement recipe, if any.
	Followup(ctx context.Context, current *Recipe, message string, profile UserProfile) (string, *Recipe, error)
}

// Speaker voices assistant text. Implementations can use TTS or be
// no-ops when speech is disabled.
type Speaker interface {
	Speak(text string)
	Stop()
}
