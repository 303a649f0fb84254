package gpt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yackhyun/sorichef/internal/domain"
	"github.com/yackhyun/sorichef/internal/logger"
	"github.com/yackhyun/sorichef/internal/recipe"
)

// ChatCompleter is the slice of the chat client the service needs.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Compile-time interface checks.
var (
	_ ChatCompleter        = (*Client)(nil)
	_ domain.RecipeService = (*Service)(nil)
)

// Service implements recipe generation and follow-up revision on top
// of the chat client.
type Service struct {
	chat ChatCompleter
	log  *logger.Logger
}

// NewService creates the recipe service.
func NewService(chat ChatCompleter, log *logger.Logger) *Service {
	return &Service{chat: chat, log: log}
}

// Generate asks for a recipe matching the user's request. The reply
// must contain both steps and fullIngredients or it is rejected as a
// parse failure.
func (s *Service) Generate(ctx context.Context, message string, profile domain.UserProfile) (*domain.Recipe, error) {
	reply, err := s.chat.Chat(ctx, []Message{
		TextMessage(RoleSystem, generateSystemPrompt),
		TextMessage(RoleUser, withProfile(message, profile)),
	})
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("gpt: recipe reply: %w", domain.ErrParse)
	}
	if raw["steps"] == nil || raw["fullIngredients"] == nil {
		return nil, fmt.Errorf("gpt: recipe reply missing steps or ingredients: %w", domain.ErrParse)
	}

	r := recipe.Canonicalize(raw)
	if r.Category == "" {
		r.Category = "AI 레시피"
	}

	s.log.Info("generated recipe %q (%d steps)", r.Title, len(r.Steps))
	return r, nil
}

// followupReply is the wire shape of a follow-up response.
type followupReply struct {
	AssistantMessage string          `json:"assistantMessage"`
	Recipe           json.RawMessage `json:"recipe"`
}

// Followup sends the current recipe plus the user's message and
// returns the assistant's reply and the revised recipe. The revised
// recipe is nil when the reply carried none.
func (s *Service) Followup(ctx context.Context, current *domain.Recipe, message string, profile domain.UserProfile) (string, *domain.Recipe, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return "", nil, fmt.Errorf("gpt: marshal current recipe: %w", err)
	}

	user := fmt.Sprintf("현재 레시피:\n%s\n\n사용자 요청: %s", currentJSON, withProfile(message, profile))
	reply, err := s.chat.Chat(ctx, []Message{
		TextMessage(RoleSystem, followupSystemPrompt),
		TextMessage(RoleUser, user),
	})
	if err != nil {
		return "", nil, err
	}

	var parsed followupReply
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &parsed); err != nil {
		return "", nil, fmt.Errorf("gpt: followup reply: %w", domain.ErrParse)
	}
	if parsed.AssistantMessage == "" {
		return "", nil, fmt.Errorf("gpt: followup reply without message: %w", domain.ErrParse)
	}

	var revised *domain.Recipe
	if len(parsed.Recipe) > 0 {
		var raw map[string]any
		if err := json.Unmarshal(parsed.Recipe, &raw); err == nil && len(raw) > 0 {
			revised = recipe.Canonicalize(raw)
		}
	}

	return parsed.AssistantMessage, revised, nil
}

// withProfile appends the user profile to the message so the model
// honors allergies and preferences.
func withProfile(message string, profile domain.UserProfile) string {
	if len(profile) == 0 {
		return message
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return message
	}
	return fmt.Sprintf("%s\n\n사용자 프로필: %s", message, data)
}
