package speech

import (
	"context"
	"sync"
	"time"

	"github.com/yackhyun/sorichef/internal/domain"
	"github.com/yackhyun/sorichef/internal/logger"
)

// synthTimeout bounds a single synthesis request.
const synthTimeout = 30 * time.Second

// Compile-time interface check.
var _ domain.Speaker = (*Mouth)(nil)

// Mouth voices assistant text. It holds a single utterance slot:
// speaking something new cancels whatever is mid-playback, matching
// how the assistant always voices only its latest message.
type Mouth struct {
	tts    Synthesizer
	player *Player
	log    *logger.Logger

	mu       sync.Mutex
	gen      int
	speaking bool
}

// NewMouth creates the speaker.
func NewMouth(tts Synthesizer, player *Player, log *logger.Logger) *Mouth {
	return &Mouth{tts: tts, player: player, log: log}
}

// Speak voices the text, cancelling any utterance in flight.
// Non-blocking.
func (m *Mouth) Speak(text string) {
	if text == "" {
		return
	}

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	m.player.Stop()
	go m.speak(gen, text)
}

// Stop cuts the current utterance short without starting a new one.
func (m *Mouth) Stop() {
	m.mu.Lock()
	m.gen++
	m.mu.Unlock()

	m.player.Stop()
}

// IsSpeaking reports whether audio is being synthesized or played.
func (m *Mouth) IsSpeaking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speaking
}

func (m *Mouth) speak(gen int, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), synthTimeout)
	defer cancel()

	audio, err := m.tts.Synthesize(ctx, text)
	if err != nil {
		m.log.Error("synthesis failed: %v", err)
		return
	}

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.speaking = true
	m.mu.Unlock()

	if err := m.player.Play(audio); err != nil {
		m.log.Error("playback failed: %v", err)
	}

	m.mu.Lock()
	m.speaking = false
	m.mu.Unlock()
}
