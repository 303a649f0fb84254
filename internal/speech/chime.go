package speech

import (
	"encoding/binary"
	"math"

	"github.com/yackhyun/sorichef/internal/logger"
)

// Chime is the short beep played when a step timer finishes.
type Chime struct {
	player *Player
	log    *logger.Logger
	pcm    []byte
}

// NewChime pre-renders the beep so Play never allocates.
func NewChime(player *Player, log *logger.Logger) *Chime {
	return &Chime{
		player: player,
		log:    log,
		pcm:    renderBeep(880, 300),
	}
}

// Play plays the beep in the background. Errors are logged, never
// returned; a missed beep must not block the countdown announcement.
func (c *Chime) Play() {
	go func() {
		if err := c.player.PlayPCM(c.pcm); err != nil {
			c.log.Warn("chime playback failed: %v", err)
		}
	}()
}

// renderBeep synthesizes a sine tone with a linear fade-out as 16-bit
// mono PCM at the player's sample rate.
func renderBeep(freqHz float64, durationMs int) []byte {
	samples := SampleRate * durationMs / 1000
	pcm := make([]byte, samples*2)

	for i := 0; i < samples; i++ {
		fade := 1.0 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*freqHz*float64(i)/SampleRate) * fade * 0.4
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return pcm
}

// SilentChime satisfies the timer's chime dependency when audio output
// is disabled.
type SilentChime struct{}

// Play does nothing.
func (SilentChime) Play() {}
