package speech

import (
	"github.com/yackhyun/sorichef/internal/domain"
	"github.com/yackhyun/sorichef/internal/logger"
)

// Compile-time interface check.
var _ domain.Speaker = (*NoOpSpeaker)(nil)

// NoOpSpeaker swallows speech output. Used when audio is disabled.
type NoOpSpeaker struct {
	log *logger.Logger
}

// NewNoOpSpeaker creates a speaker that does nothing.
func NewNoOpSpeaker(log *logger.Logger) *NoOpSpeaker {
	return &NoOpSpeaker{log: log}
}

// Speak logs the text instead of voicing it.
func (n *NoOpSpeaker) Speak(text string) {
	n.log.Debug("speech disabled, would say %q", text)
}

// Stop does nothing.
func (n *NoOpSpeaker) Stop() {}
