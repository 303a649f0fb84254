package speech

import (
	"sync"
	"testing"
	"time"

	"github.com/yackhyun/sorichef/internal/logger"
)

// fakeRecognizer hands out scriptable sessions.
type fakeRecognizer struct {
	mu       sync.Mutex
	sessions []*fakeSession
}

func (f *fakeRecognizer) NewSession(cfg RecognizerConfig, h Handlers) (Session, error) {
	s := &fakeSession{cfg: cfg, h: h}
	f.mu.Lock()
	f.sessions = append(f.sessions, s)
	f.mu.Unlock()
	if h.OnStart != nil {
		h.OnStart()
	}
	return s, nil
}

func (f *fakeRecognizer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *fakeRecognizer) session(i int) *fakeSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.sessions) {
		return nil
	}
	return f.sessions[i]
}

type fakeSession struct {
	cfg     RecognizerConfig
	h       Handlers
	mu      sync.Mutex
	stopped bool
	once    sync.Once
}

func (s *fakeSession) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.mu.Unlock()
		if s.h.OnEnd != nil {
			s.h.OnEnd()
		}
	})
}

func (s *fakeSession) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *fakeSession) emit(text string, final bool) {
	if s.h.OnResult != nil {
		s.h.OnResult(Result{Text: text, Final: final})
	}
}

func (s *fakeSession) fail(code ErrorCode) {
	if s.h.OnError != nil {
		s.h.OnError(code)
	}
}

// utteranceSink collects delivered commands.
type utteranceSink struct {
	mu    sync.Mutex
	texts []string
	fatal []string
}

func (u *utteranceSink) utterance(text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.texts = append(u.texts, text)
}

func (u *utteranceSink) fatalMsg(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.fatal = append(u.fatal, msg)
}

func (u *utteranceSink) utterances() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.texts...)
}

func (u *utteranceSink) fatalCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.fatal)
}

func newTestController(t *testing.T, opts ...ControllerOption) (*Controller, *fakeRecognizer, *utteranceSink) {
	t.Helper()
	rec := &fakeRecognizer{}
	sink := &utteranceSink{}
	log := logger.New(logger.LevelOff, nil)
	base := []ControllerOption{
		WithHandoffDelay(time.Millisecond),
		WithRestartDelay(time.Millisecond),
		WithSilenceWindow(time.Hour), // tests end sessions explicitly
	}
	c := NewController(rec, sink.utterance, sink.fatalMsg, log, append(base, opts...)...)
	return c, rec, sink
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestWakeThenCommandCascade(t *testing.T) {
	c, rec, sink := newTestController(t)
	c.Start()
	defer c.Stop()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	wake := rec.session(0)

	wake.emit("요리야", false)

	waitFor(t, "command session", func() bool { return rec.count() == 2 })
	if !wake.isStopped() {
		t.Fatal("wake session still live while command capture runs")
	}

	cmd := rec.session(1)
	waitFor(t, "listening state", c.Listening)

	cmd.emit("다음", true)
	cmd.Stop()

	waitFor(t, "utterance delivery", func() bool { return len(sink.utterances()) == 1 })
	if got := sink.utterances()[0]; got != "다음" {
		t.Fatalf("utterance = %q, want %q", got, "다음")
	}

	// Wake scanning resumes after the command.
	waitFor(t, "wake restart", func() bool { return rec.count() == 3 })
}

func TestCommandAccumulatesFinalsOnly(t *testing.T) {
	c, rec, sink := newTestController(t)
	c.Start()
	defer c.Stop()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	rec.session(0).emit("헤이요리", false)
	waitFor(t, "command session", func() bool { return rec.count() == 2 })

	cmd := rec.session(1)
	cmd.emit("다", false) // interim, must not stick
	cmd.emit("다음", true)
	cmd.emit("단계", true)
	cmd.Stop()

	waitFor(t, "utterance delivery", func() bool { return len(sink.utterances()) == 1 })
	if got := sink.utterances()[0]; got != "다음 단계" {
		t.Fatalf("utterance = %q, want %q", got, "다음 단계")
	}
}

func TestEmptyCommandProducesNoUtterance(t *testing.T) {
	c, rec, sink := newTestController(t)
	c.Start()
	defer c.Stop()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	rec.session(0).emit("안녕", false)
	waitFor(t, "command session", func() bool { return rec.count() == 2 })

	rec.session(1).Stop()

	waitFor(t, "wake restart", func() bool { return rec.count() == 3 })
	if got := sink.utterances(); len(got) != 0 {
		t.Fatalf("unexpected utterances: %v", got)
	}
}

func TestSilenceWindowClosesCommandCapture(t *testing.T) {
	c, rec, sink := newTestController(t, WithSilenceWindow(10*time.Millisecond))
	c.Start()
	defer c.Stop()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	rec.session(0).emit("요리도우미", false)
	waitFor(t, "command session", func() bool { return rec.count() == 2 })

	rec.session(1).emit("계속해", true)

	// No further speech; the silence window should end the capture.
	waitFor(t, "utterance delivery", func() bool { return len(sink.utterances()) == 1 })
	if got := sink.utterances()[0]; got != "계속해" {
		t.Fatalf("utterance = %q, want %q", got, "계속해")
	}
	waitFor(t, "wake restart", func() bool { return rec.count() == 3 })
}

func TestFatalErrorShutsVoiceDown(t *testing.T) {
	c, rec, sink := newTestController(t)
	c.Start()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	rec.session(0).fail(CodeNetwork)

	waitFor(t, "fatal callback", func() bool { return sink.fatalCount() == 1 })

	// No automatic restart after a fatal error.
	time.Sleep(20 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("sessions after fatal error = %d, want 1", rec.count())
	}
	if c.WakeActive() || c.Listening() {
		t.Fatal("controller still live after fatal error")
	}

	// A manual re-enable clears the fatal state.
	c.Start()
	waitFor(t, "wake session after re-enable", func() bool { return rec.count() == 2 })
	c.Stop()
}

func TestAbortedErrorIsIgnored(t *testing.T) {
	c, rec, sink := newTestController(t)
	c.Start()
	defer c.Stop()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	rec.session(0).fail(CodeAborted)

	time.Sleep(10 * time.Millisecond)
	if sink.fatalCount() != 0 {
		t.Fatal("aborted error surfaced to the user")
	}
	if !c.WakeActive() {
		t.Fatal("wake scanning stopped on aborted error")
	}
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	c, rec, sink := newTestController(t)
	c.Start()

	waitFor(t, "wake session", func() bool { return rec.count() == 1 })
	wake := rec.session(0)

	c.Stop()

	// Events from the torn-down session must not revive the cascade.
	wake.emit("요리야", false)
	wake.fail(CodeNetwork)

	time.Sleep(20 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("stale callbacks spawned sessions: %d", rec.count())
	}
	if sink.fatalCount() != 0 {
		t.Fatal("stale error surfaced to the user")
	}
}
