package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	// IntentStart starts cooking from the ingredient check.
	IntentStart
	// IntentNext advances to the next step while cooking.
	IntentNext
	// IntentReady confirms every ingredient is available.
	IntentReady
	// IntentChooseReplace picks the "substitute it" path in a
	// substitution negotiation.
	IntentChooseReplace
	// IntentChooseOmit picks the "cook without it" path.
	IntentChooseOmit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentNext:
		return "next"
	case IntentReady:
		return "ready"
	case IntentChooseReplace:
		return "choose_replace"
	case IntentChooseOmit:
		return "choose_omit"
	default:
		return "unknown"
	}
}

// Intent represents a classified user utterance.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. the chosen option text
}
