package timer

import (
	"sync"
	"time"

	"github.com/yackhyun/sorichef/internal/domain"
	"github.com/yackhyun/sorichef/internal/logger"
)

// Chime plays the short alert sound when a countdown finishes.
type Chime interface {
	Play()
}

// Option configures the engine.
type Option func(*Engine)

// WithTickInterval sets how often the countdown decrements. Tests use
// a short interval to run countdowns in simulated time.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.tickInterval = d
	}
}

// Engine runs at most one countdown at a time. Starting a new
// countdown replaces any countdown already running. When a countdown
// reaches zero, the chime plays first and the elapsed announcement
// follows.
type Engine struct {
	chime        Chime
	announce     func(totalSeconds int)
	log          *logger.Logger
	tickInterval time.Duration

	mu        sync.Mutex
	gen       int
	total     int
	remaining int
	running   bool
	stop      chan struct{}
}

// New creates a countdown engine. announce is called with the original
// duration when a countdown completes.
func New(chime Chime, announce func(totalSeconds int), log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		chime:        chime,
		announce:     announce,
		log:          log,
		tickInterval: 1 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins a countdown of the given number of seconds, replacing
// any countdown in flight.
func (e *Engine) Start(seconds int) {
	if seconds <= 0 {
		return
	}

	e.mu.Lock()
	e.gen++
	if e.stop != nil {
		close(e.stop)
	}
	e.stop = make(chan struct{})
	e.total = seconds
	e.remaining = seconds
	e.running = true
	gen, stop := e.gen, e.stop
	e.mu.Unlock()

	e.log.Debug("timer started: %ds", seconds)
	go e.run(gen, seconds, stop)
}

// Cancel stops the countdown in flight, if any. Safe to call when
// nothing is running.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
	if e.running {
		e.log.Debug("timer cancelled with %ds remaining", e.remaining)
	}
	e.total = 0
	e.remaining = 0
	e.running = false
}

// Snapshot returns the current countdown state.
func (e *Engine) Snapshot() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return domain.TimerState{
		TotalSeconds:     e.total,
		RemainingSeconds: e.remaining,
		Running:          e.running,
	}
}

func (e *Engine) run(gen, total int, stop chan struct{}) {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fired, live := e.decrement(gen)
			if !live {
				return
			}
			if fired {
				e.chime.Play()
				e.announce(total)
				return
			}
		}
	}
}

// decrement ticks the countdown once. fired is true when it just hit
// zero; live is false when a newer countdown has taken over.
func (e *Engine) decrement(gen int) (fired, live bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.gen {
		return false, false
	}

	e.remaining--
	if e.remaining <= 0 {
		e.remaining = 0
		e.running = false
		e.stop = nil
		return true, true
	}
	return false, true
}
