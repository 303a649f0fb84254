package dialogue

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/yackhyun/sorichef/internal/conversation"
	"github.com/yackhyun/sorichef/internal/domain"
	"github.com/yackhyun/sorichef/internal/logger"
	"github.com/yackhyun/sorichef/internal/recipe"
	"github.com/yackhyun/sorichef/internal/timer"
	"github.com/yackhyun/sorichef/internal/transcript"
)

// startPromptLine matches the closing question a follow-up reply may
// already contain. It is stripped so merged substitution messages ask
// it exactly once.
var startPromptLine = regexp.MustCompile(`요리를 바로 시작할까요[^\n]*`)

// Countdown is the slice of the timer engine the session drives.
type Countdown interface {
	Start(seconds int)
	Cancel()
}

// Compile-time interface check.
var _ Countdown = (*timer.Engine)(nil)

// Option configures the session.
type Option func(*Session)

// WithCompletionCallback registers the persistence hook invoked when
// the user confirms completion. Failures are reported to the user but
// never retried.
func WithCompletionCallback(fn func(domain.CompletedRecipe) error) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithClock overrides the time source. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session is the dialogue state machine. It exclusively owns the
// session state; voice input, text input, and the timer only ever call
// its entry points.
type Session struct {
	svc        domain.RecipeService
	chat       *transcript.Transcript
	timers     Countdown
	profile    domain.UserProfile
	log        *logger.Logger
	onComplete func(domain.CompletedRecipe) error
	now        func() time.Time

	mu         sync.Mutex
	state      domain.SessionState
	processing bool
}

// New creates a session in the NoRecipe phase.
func New(svc domain.RecipeService, chat *transcript.Transcript, timers Countdown, profile domain.UserProfile, log *logger.Logger, opts ...Option) *Session {
	s := &Session{
		svc:     svc,
		chat:    chat,
		timers:  timers,
		profile: profile,
		log:     log,
		now:     time.Now,
		state: domain.SessionState{
			Phase:          domain.PhaseNoRecipe,
			CompletedSteps: map[int]bool{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bootstrap seeds the session with a canonical recipe and greets the
// user with its ingredient list. A nil recipe leaves the session in
// the NoRecipe phase, waiting for the user to ask for one. Calling it
// again resets all cooking progress.
func (s *Session) Bootstrap(r *domain.Recipe) {
	s.mu.Lock()
	s.state = domain.SessionState{
		Phase:          domain.PhaseNoRecipe,
		CompletedSteps: map[int]bool{},
	}
	if r != nil {
		s.state.Recipe = r
		s.state.Phase = domain.PhaseIngredientCheck
	}
	s.mu.Unlock()

	s.timers.Cancel()

	if r == nil {
		return
	}

	title := r.Title
	if title == "" {
		title = "이 레시피"
	}
	if len(r.IngredientLines) > 0 {
		s.chat.Append(domain.RoleAssistant, LineIngredients(title, r.IngredientLines))
	} else {
		s.chat.Append(domain.RoleAssistant, LineNoIngredientInfo(title))
	}
}

// HandleUtterance processes one user utterance. Voice and typed input
// both come through here and are treated identically. Empty input
// (after normalization) is silently dropped.
func (s *Session) HandleUtterance(ctx context.Context, raw string) {
	text := conversation.Normalize(raw)
	if text == "" {
		return
	}

	s.setProcessing(true)
	defer s.setProcessing(false)

	s.chat.Append(domain.RoleUser, text)
	s.log.Debug("utterance %q (phase=%s)", text, s.phase())

	// An in-flight substitution choice takes priority over everything.
	if s.awaitingChoice() {
		s.handleSubstituteChoice(ctx, text)
		return
	}

	if s.recipe() == nil {
		s.generateRecipe(ctx, text)
		return
	}

	cooking := s.phase() == domain.PhaseCooking
	intent := conversation.Classify(text, cooking)

	if cooking && intent.Type == domain.IntentNext {
		s.advance()
		return
	}

	switch s.phase() {
	case domain.PhaseIngredientCheck:
		s.handleIngredientCheck(ctx, text, intent)
	case domain.PhaseCooking:
		if s.handleSubstituteMeta(ctx, intent) {
			return
		}
		if msg, ok := s.askFollowup(ctx, text, LineExplainAgain()); ok {
			s.captureSubstitution(text, msg)
		}
	case domain.PhaseFinished:
		s.chat.Append(domain.RoleAssistant, LineAllDone())
	}
}

// ── Recipe generation ────────────────────────────────────────────

func (s *Session) generateRecipe(ctx context.Context, text string) {
	r, err := s.svc.Generate(ctx, text, s.profile)
	if err != nil {
		s.log.Warn("recipe generation failed: %v", err)
		s.chat.Append(domain.RoleAssistant, LineRecipeLoadFailed())
		return
	}

	s.mu.Lock()
	s.state.Recipe = r
	s.state.Phase = domain.PhaseIngredientCheck
	s.state.CurrentStepIndex = 0
	s.state.CompletedSteps = map[int]bool{}
	s.state.Substitution = nil
	s.mu.Unlock()

	s.chat.Append(domain.RoleAssistant, LineIngredients(r.Title, r.IngredientLines))
}

// ── Ingredient check ─────────────────────────────────────────────

func (s *Session) handleIngredientCheck(ctx context.Context, text string, intent domain.Intent) {
	switch intent.Type {
	case domain.IntentReady, domain.IntentStart, domain.IntentNext:
		s.enterCooking()
		return
	}

	if s.handleSubstituteMeta(ctx, intent) {
		return
	}

	// Anything else is a free-form remark, typically "대파 없어".
	// The reply may carry substitution options as bullet lines.
	msg, ok := s.askFollowup(ctx, text, LineMissingAnything())
	if !ok {
		return
	}
	s.captureSubstitution(text, msg)
}

// handleSubstituteMeta reacts to the two meta-choices a substitution
// offer presents ("replace it" or "make it without"). Returns false
// when there is no pending offer or the intent is something else.
func (s *Session) handleSubstituteMeta(ctx context.Context, intent domain.Intent) bool {
	switch intent.Type {
	case domain.IntentChooseReplace:
		if sub := s.pendingSubstitution(); sub != nil {
			s.mu.Lock()
			if s.state.Substitution != nil {
				s.state.Substitution.AwaitingChoice = true
			}
			s.mu.Unlock()
			s.chat.Append(domain.RoleAssistant, LineWhichSubstitute(sub.Options))
			return true
		}
	case domain.IntentChooseOmit:
		if sub := s.pendingSubstitution(); sub != nil {
			s.applyFollowupUpdate(ctx, FollowupOmit(sub.Missing), LineOmitUpdateFailed())
			return true
		}
	}
	return false
}

// captureSubstitution scans a follow-up reply for bullet-prefixed
// substitute candidates and, when present, records them together with
// the missing ingredient extracted from the user's own words.
func (s *Session) captureSubstitution(text, msg string) {
	options := conversation.ParseBulletOptions(msg)
	if len(options) == 0 {
		return
	}
	missing := conversation.ExtractMissing(text)
	s.mu.Lock()
	s.state.Substitution = &domain.Substitution{Missing: missing, Options: options}
	s.mu.Unlock()
	s.log.Debug("substitution offered for %q: %v", missing, options)
}

// enterCooking moves to the first step. The recipe must have steps;
// otherwise the user is told and the phase stays put.
func (s *Session) enterCooking() {
	s.mu.Lock()
	r := s.state.Recipe
	if r == nil || len(r.Steps) == 0 {
		s.mu.Unlock()
		s.chat.Append(domain.RoleAssistant, LineStep(0, nil))
		return
	}
	s.state.Phase = domain.PhaseCooking
	s.state.CurrentStepIndex = 0
	s.state.CompletedSteps = map[int]bool{}
	s.state.Substitution = nil
	s.mu.Unlock()

	s.chat.Append(domain.RoleAssistant, LineStep(0, r.Steps))
	s.armStepTimer(r.Steps[0])
}

// ── Step advancement ─────────────────────────────────────────────

// advance marks the current step completed (exactly once, repeats are
// harmless) and moves on, or finishes the session after the last step.
func (s *Session) advance() {
	s.mu.Lock()
	r := s.state.Recipe
	cur := s.state.CurrentStepIndex
	if !s.state.CompletedSteps[cur] {
		s.state.CompletedSteps[cur] = true
	}

	next := cur + 1
	if r == nil || next >= len(r.Steps) {
		s.state.Phase = domain.PhaseFinished
		s.mu.Unlock()
		s.chat.Append(domain.RoleAssistant, LineAllDone())
		return
	}

	s.state.CurrentStepIndex = next
	s.mu.Unlock()

	s.chat.Append(domain.RoleAssistant, LineStep(next, r.Steps))
	s.armStepTimer(r.Steps[next])
}

// armStepTimer starts a countdown when the step text names a
// duration, and clears any stale countdown when it doesn't.
func (s *Session) armStepTimer(stepText string) {
	if sec, ok := timer.ExtractSeconds(stepText); ok {
		s.chat.Append(domain.RoleAssistant, LineTimerStart(sec))
		s.timers.Start(sec)
	} else {
		s.timers.Cancel()
	}
}

// ── Substitution negotiation ─────────────────────────────────────

func (s *Session) handleSubstituteChoice(ctx context.Context, text string) {
	s.mu.Lock()
	sub := s.state.Substitution
	s.mu.Unlock()

	// A concurrent utterance may have resolved the choice already.
	if sub == nil {
		return
	}

	idx, ok := conversation.MatchOption(text, sub.Options)
	if !ok {
		s.chat.Append(domain.RoleAssistant, LineSubstituteUnclear())
		return
	}

	s.mu.Lock()
	s.state.Substitution = nil
	s.mu.Unlock()

	s.applyFollowupUpdate(ctx, FollowupReplace(sub.Missing, sub.Options[idx]), LineSubstituteUpdateFailed())
}

// applyFollowupUpdate sends a substitution or omission request,
// replaces the recipe wholesale, and emits the merged confirmation
// message with a single closing start prompt.
func (s *Session) applyFollowupUpdate(ctx context.Context, request, failureLine string) {
	current := s.recipe()
	msg, revised, err := s.svc.Followup(ctx, current, request, s.profile)
	if err != nil || revised == nil {
		s.log.Warn("recipe update failed for %q: %v", request, err)
		s.chat.Append(domain.RoleAssistant, failureLine)
		return
	}

	s.mu.Lock()
	s.state.Recipe = revised
	s.state.Substitution = nil
	s.mu.Unlock()

	s.chat.Append(domain.RoleAssistant, mergeUpdateMessage(msg, revised))
}

// mergeUpdateMessage combines the service's reply with the revised
// ingredient list. The reply's own start prompt, if any, is stripped
// first so the question appears exactly once, at the end.
func mergeUpdateMessage(msg string, r *domain.Recipe) string {
	var b strings.Builder

	clean := strings.TrimSpace(startPromptLine.ReplaceAllString(msg, ""))
	if clean != "" {
		b.WriteString(clean)
		b.WriteString("\n\n")
	}
	if r.Title != "" && len(r.IngredientLines) > 0 {
		b.WriteString(LineIngredients(r.Title, r.IngredientLines))
		b.WriteString("\n\n")
	}
	b.WriteString(LineStartPrompt())
	return b.String()
}

// ── Free-form follow-ups ─────────────────────────────────────────

// askFollowup forwards the utterance to the follow-up service,
// replaces the recipe when a revision comes back, and appends the
// reply. On failure, apology is appended and state stays unchanged.
func (s *Session) askFollowup(ctx context.Context, text, apology string) (string, bool) {
	current := s.recipe()
	msg, revised, err := s.svc.Followup(ctx, current, text, s.profile)
	if err != nil {
		s.log.Warn("followup failed: %v", err)
		s.chat.Append(domain.RoleAssistant, apology)
		return "", false
	}

	if revised != nil {
		s.mu.Lock()
		s.state.Recipe = revised
		s.mu.Unlock()
	}

	s.chat.Append(domain.RoleAssistant, msg)
	return msg, true
}

// ── Completion ───────────────────────────────────────────────────

// Complete builds the completed-recipe payload and hands it to the
// completion callback. The result is reported to the user; failures
// are not retried.
func (s *Session) Complete(ctx context.Context) error {
	r := s.recipe()
	if r == nil {
		return domain.ErrNoRecipe
	}

	payload := recipe.BuildCompleted(r, s.now())

	if s.onComplete != nil {
		if err := s.onComplete(payload); err != nil {
			s.log.Error("completion callback failed: %v", err)
			s.chat.Append(domain.RoleAssistant, LineCompletionFailed())
			return err
		}
	}

	s.chat.Append(domain.RoleAssistant, LineCompletionSaved())
	return nil
}

// ── State access ─────────────────────────────────────────────────

// Snapshot returns a copy of the session state for display purposes.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	snap.CompletedSteps = make(map[int]bool, len(s.state.CompletedSteps))
	for k, v := range s.state.CompletedSteps {
		snap.CompletedSteps[k] = v
	}
	if s.state.Substitution != nil {
		sub := *s.state.Substitution
		snap.Substitution = &sub
	}
	return snap
}

// Progress returns completed and total step counts.
func (s *Session) Progress() (completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Recipe != nil {
		total = len(s.state.Recipe.Steps)
	}
	return len(s.state.CompletedSteps), total
}

// Processing reports whether an utterance is being handled. The
// display shows a thinking indicator while this is true.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Session) setProcessing(v bool) {
	s.mu.Lock()
	s.processing = v
	s.mu.Unlock()
}

func (s *Session) phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

func (s *Session) recipe() *domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Recipe
}

func (s *Session) awaitingChoice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Substitution != nil && s.state.Substitution.AwaitingChoice && s.state.Recipe != nil
}

// pendingSubstitution returns the offered-but-unchosen substitution,
// if any.
func (s *Session) pendingSubstitution() *domain.Substitution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Substitution == nil || s.state.Substitution.AwaitingChoice {
		return nil
	}
	sub := *s.state.Substitution
	return &sub
}
