// Package domain defines the core types and interfaces for the voice
// cooking assistant. All other packages depend on domain; domain
// depends on nothing.
package domain

// Recipe represents a recipe as shown and spoken to the user. The
// JSON shape matches what the recipe services exchange.
type Recipe struct {
	ID              string       `json:"id,omitempty"`
	Title           string       `json:"recipeName"`
	Description     string       `json:"description,omitempty"`
	Category        string       `json:"category,omitempty"`
	CookingTime     string       `json:"cookingTime,omitempty"`
	Servings        string       `json:"servings,omitempty"`
	Difficulty      string       `json:"difficulty,omitempty"`
	Image           string       `json:"image,omitempty"`
	IngredientLines []string     `json:"fullIngredients"` // display lines, e.g. "• 대파 1단"
	Ingredients     []Ingredient `json:"ingredients,omitempty"`
	Steps           []string     `json:"steps"`
}

// Ingredient is a single ingredient with a free-form amount.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single turn in the conversation transcript.
type ChatMessage struct {
	ID        string
	Role      Role
	Text      string
	Timestamp int64 // unix milliseconds
}

// UserProfile carries free-form user preferences forwarded to the
// recipe service (allergies, dislikes, serving size, and so on).
type UserProfile map[string]any

// CompletedRecipe is the payload handed to the completion callback
// when the user finishes cooking a recipe.
type CompletedRecipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Image       string       `json:"image,omitempty"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CompletedAt string       `json:"completedAt"` // ISO-8601
	CookingTime string       `json:"cookingTime,omitempty"`
	Servings    string       `json:"servings,omitempty"`
	Difficulty  string       `json:"difficulty,omitempty"`
}
