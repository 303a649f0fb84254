package speech

import (
	"strings"
	"sync"
	"time"

	"github.com/yackhyun/sorichef/internal/conversation"
	"github.com/yackhyun/sorichef/internal/logger"
)

// Default wake phrases. Hearing any of these while dormant switches
// the controller to command capture.
var defaultWakeWords = []string{"안녕", "시작", "요리야", "요리도우미", "헤이요리"}

// ControllerOption configures the controller.
type ControllerOption func(*Controller)

// WithWakeWords overrides the default wake phrases.
func WithWakeWords(words ...string) ControllerOption {
	return func(c *Controller) { c.wakeWords = words }
}

// WithSilenceWindow sets how long the command capture waits after the
// last result before deciding the user is done.
func WithSilenceWindow(d time.Duration) ControllerOption {
	return func(c *Controller) { c.silenceWindow = d }
}

// WithHandoffDelay sets the pause between stopping the wake session
// and starting command capture.
func WithHandoffDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.handoffDelay = d }
}

// WithRestartDelay sets the pause before the wake session restarts
// after a command capture ends.
func WithRestartDelay(d time.Duration) ControllerOption {
	return func(c *Controller) { c.restartDelay = d }
}

// WithOnWake registers a hook fired the moment a wake word is heard,
// before command capture starts. Used to cut TTS playback short so the
// microphone doesn't hear the assistant.
func WithOnWake(fn func()) ControllerOption {
	return func(c *Controller) { c.onWake = fn }
}

// Controller runs the two-stage voice input cascade: a dormant wake
// session that scans for a wake phrase, and a command session that
// captures one utterance and hands it to onUtterance.
//
// Every session transition bumps an internal generation counter, and
// every callback captured a generation at session start. A callback
// whose generation is stale is ignored, so late events from a stopped
// session can never leak into the session that replaced it.
type Controller struct {
	rec         Recognizer
	log         *logger.Logger
	onUtterance func(string)
	onFatal     func(message string)
	onWake      func()

	wakeWords     []string
	silenceWindow time.Duration
	handoffDelay  time.Duration
	restartDelay  time.Duration

	mu        sync.Mutex
	gen       int
	active    bool // user toggle
	fatal     bool
	wakeLive  bool
	listening bool // command capture in flight
	session   Session
	silence   *time.Timer
	buffer    []string
}

// NewController creates the cascade. onUtterance receives each
// completed command; onFatal receives the user-facing message when a
// fatal recognition error shuts voice input down.
func NewController(rec Recognizer, onUtterance func(string), onFatal func(string), log *logger.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		rec:           rec,
		log:           log,
		onUtterance:   onUtterance,
		onFatal:       onFatal,
		wakeWords:     defaultWakeWords,
		silenceWindow: 2 * time.Second,
		handoffDelay:  500 * time.Millisecond,
		restartDelay:  300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start enables voice input and begins wake scanning. Clears any
// fatal error from a previous run.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.fatal = false
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.log.Info("voice input enabled")
	c.startWake(gen)
}

// Stop disables voice input and tears down any live session.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.active = false
	c.fatal = false
	c.gen++
	c.wakeLive = false
	c.listening = false
	session := c.session
	c.session = nil
	if c.silence != nil {
		c.silence.Stop()
		c.silence = nil
	}
	c.mu.Unlock()

	if session != nil {
		session.Stop()
	}
	c.log.Info("voice input disabled")
}

// Listening reports whether a command capture is in flight.
func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// WakeActive reports whether the wake scanner is live.
func (c *Controller) WakeActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wakeLive
}

func (c *Controller) stale(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen != c.gen
}

// bump invalidates all outstanding callbacks and returns the next
// generation.
func (c *Controller) bump() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return c.gen
}

// ── Wake scanning ────────────────────────────────────────────────

func (c *Controller) startWake(gen int) {
	if c.stale(gen) {
		return
	}

	session, err := c.rec.NewSession(RecognizerConfig{
		Lang:           "ko-KR",
		Continuous:     true,
		InterimResults: true,
	}, Handlers{
		OnResult: func(r Result) { c.onWakeResult(gen, r) },
		OnError:  func(code ErrorCode) { c.onSessionError(gen, code) },
		OnEnd:    func() { c.onWakeEnd(gen) },
	})
	if err != nil {
		c.log.Error("wake session start failed: %v", err)
		c.onSessionError(gen, CodeAudioCapture)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		session.Stop()
		return
	}
	c.session = session
	c.wakeLive = true
	c.mu.Unlock()

	c.log.Debug("wake scanning (words=%v)", c.wakeWords)
}

func (c *Controller) onWakeResult(gen int, r Result) {
	if c.stale(gen) {
		return
	}

	compact := conversation.Compact(r.Text)
	matched := false
	for _, w := range c.wakeWords {
		if strings.Contains(compact, w) {
			matched = true
			break
		}
	}
	if !matched {
		return
	}

	c.log.Info("wake word heard in %q", r.Text)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.gen++
	next := c.gen
	session := c.session
	c.session = nil
	c.wakeLive = false
	c.mu.Unlock()

	if c.onWake != nil {
		c.onWake()
	}
	if session != nil {
		session.Stop()
	}
	time.AfterFunc(c.handoffDelay, func() { c.startCommand(next) })
}

func (c *Controller) onWakeEnd(gen int) {
	if c.stale(gen) {
		return
	}

	// The engine gave up on its own. Restart unless the user turned
	// voice off or a fatal error hit in the meantime.
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.gen++
	next := c.gen
	c.wakeLive = false
	c.session = nil
	restart := c.active && !c.fatal
	c.mu.Unlock()

	if restart {
		time.AfterFunc(c.restartDelay, func() { c.startWake(next) })
	}
}

// ── Command capture ──────────────────────────────────────────────

func (c *Controller) startCommand(gen int) {
	if c.stale(gen) {
		return
	}

	c.mu.Lock()
	c.buffer = c.buffer[:0]
	c.mu.Unlock()

	session, err := c.rec.NewSession(RecognizerConfig{
		Lang:           "ko-KR",
		Continuous:     true,
		InterimResults: true,
	}, Handlers{
		OnStart:  func() { c.resetSilence(gen) },
		OnResult: func(r Result) { c.onCommandResult(gen, r) },
		OnError:  func(code ErrorCode) { c.onSessionError(gen, code) },
		OnEnd:    func() { c.onCommandEnd(gen) },
	})
	if err != nil {
		c.log.Error("command session start failed: %v", err)
		c.onSessionError(gen, CodeAudioCapture)
		return
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		session.Stop()
		return
	}
	c.session = session
	c.listening = true
	c.mu.Unlock()

	c.resetSilence(gen)
	c.log.Debug("command capture started")
}

func (c *Controller) onCommandResult(gen int, r Result) {
	if c.stale(gen) {
		return
	}

	c.resetSilence(gen)

	if !r.Final {
		return
	}

	c.mu.Lock()
	if gen == c.gen {
		c.buffer = append(c.buffer, r.Text)
	}
	c.mu.Unlock()
}

// resetSilence rearms the end-of-utterance timer. When it fires, the
// user has gone quiet and the command session is stopped.
func (c *Controller) resetSilence(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	if c.silence != nil {
		c.silence.Stop()
	}
	c.silence = time.AfterFunc(c.silenceWindow, func() { c.onSilence(gen) })
}

func (c *Controller) onSilence(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	session := c.session
	c.mu.Unlock()

	c.log.Debug("silence window elapsed, closing command capture")
	if session != nil {
		session.Stop()
	}
}

func (c *Controller) onCommandEnd(gen int) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.gen++
	next := c.gen
	c.listening = false
	c.session = nil
	if c.silence != nil {
		c.silence.Stop()
		c.silence = nil
	}
	joined := strings.Join(c.buffer, " ")
	c.buffer = nil
	restart := c.active && !c.fatal
	c.mu.Unlock()

	if text := conversation.Normalize(joined); text != "" {
		c.log.Info("command: %q", text)
		c.onUtterance(text)
	}

	if restart {
		time.AfterFunc(c.restartDelay, func() { c.startWake(next) })
	}
}

// ── Errors ───────────────────────────────────────────────────────

func (c *Controller) onSessionError(gen int, code ErrorCode) {
	if c.stale(gen) {
		return
	}
	if code == CodeAborted {
		return
	}

	if !code.Fatal() {
		// Benign codes like no-speech just end the session; OnEnd
		// handles the restart.
		c.log.Debug("recognition error ignored: %s", code)
		return
	}

	c.log.Error("fatal recognition error: %s", code)

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.fatal = true
	c.active = false
	c.wakeLive = false
	c.listening = false
	session := c.session
	c.session = nil
	if c.silence != nil {
		c.silence.Stop()
		c.silence = nil
	}
	c.mu.Unlock()

	if session != nil {
		session.Stop()
	}
	if c.onFatal != nil {
		c.onFatal(FatalMessage(code))
	}
}
