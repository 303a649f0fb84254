package domain

// Phase tracks where a cooking session is in its lifecycle.
type Phase int

const (
	// PhaseNoRecipe means no recipe has been loaded yet.
	PhaseNoRecipe Phase = iota
	// PhaseIngredientCheck means the recipe is loaded and the user is
	// confirming ingredients.
	PhaseIngredientCheck
	// PhaseCooking means the user is working through the steps.
	PhaseCooking
	// PhaseFinished means every step has been completed.
	PhaseFinished
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNoRecipe:
		return "no_recipe"
	case PhaseIngredientCheck:
		return "ingredient_check"
	case PhaseCooking:
		return "cooking"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SessionState is a snapshot of the dialogue session.
type SessionState struct {
	Phase            Phase
	Recipe           *Recipe
	CurrentStepIndex int
	CompletedSteps   map[int]bool
	Substitution     *Substitution
}

// Substitution tracks an in-flight ingredient substitution negotiation.
type Substitution struct {
	Missing        string   // the ingredient the user reported missing
	Options        []string // replacement candidates offered so far
	AwaitingChoice bool     // true once the user must pick an option
}

// TimerState is a snapshot of the step countdown.
type TimerState struct {
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
}
