// Package transcript keeps the append-only chat log shared by the
// dialogue session and the display.
package transcript

import (
	"fmt"
	"sync"
	"time"

	"github.com/yackhyun/sorichef/internal/domain"
)

// Option configures the transcript.
type Option func(*Transcript)

// WithOnChange registers a callback invoked for every appended
// message. The display uses this to refresh its scrollback.
func WithOnChange(fn func(domain.ChatMessage)) Option {
	return func(t *Transcript) {
		t.onChange = fn
	}
}

// Transcript is the append-only conversation log. Appending an
// assistant message speaks it as a side effect; every assistant line
// is both shown and spoken, duplicates included.
type Transcript struct {
	mu       sync.Mutex
	speaker  domain.Speaker
	onChange func(domain.ChatMessage)
	msgs     []domain.ChatMessage
	seq      int
}

// New creates a transcript that voices assistant messages through the
// given speaker.
func New(speaker domain.Speaker, opts ...Option) *Transcript {
	t := &Transcript{speaker: speaker}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Append records a message and returns it. Assistant messages are
// handed to the speaker before Append returns.
func (t *Transcript) Append(role domain.Role, text string) domain.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	msg := domain.ChatMessage{
		ID:        fmt.Sprintf("%s-%d-%d", role, time.Now().UnixMilli(), t.seq),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	t.msgs = append(t.msgs, msg)

	if role == domain.RoleAssistant {
		t.speaker.Speak(text)
	}
	if t.onChange != nil {
		t.onChange(msg)
	}
	return msg
}

// Messages returns a copy of the log in append order.
func (t *Transcript) Messages() []domain.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.ChatMessage(nil), t.msgs...)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.msgs)
}
