package timer

import (
	"sync"
	"testing"
	"time"

	"github.com/yackhyun/sorichef/internal/logger"
)

// mockChime records when the alert sound plays.
type mockChime struct {
	mu    sync.Mutex
	plays int
}

func (m *mockChime) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays++
}

func (m *mockChime) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plays
}

// announceRecorder captures completion announcements.
type announceRecorder struct {
	mu    sync.Mutex
	calls []int
}

func (a *announceRecorder) announce(total int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, total)
}

func (a *announceRecorder) totals() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]int(nil), a.calls...)
}

func newTestEngine(t *testing.T) (*Engine, *mockChime, *announceRecorder) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	chime := &mockChime{}
	rec := &announceRecorder{}
	eng := New(chime, rec.announce, log, WithTickInterval(5*time.Millisecond))
	return eng, chime, rec
}

func TestEngineCountsDownAndFires(t *testing.T) {
	eng, chime, rec := newTestEngine(t)

	eng.Start(3)

	if st := eng.Snapshot(); !st.Running || st.TotalSeconds != 3 {
		t.Fatalf("after start: running=%v total=%d, want running with total 3", st.Running, st.TotalSeconds)
	}

	time.Sleep(60 * time.Millisecond)

	if chime.count() != 1 {
		t.Fatalf("chime played %d times, want 1", chime.count())
	}
	if got := rec.totals(); len(got) != 1 || got[0] != 3 {
		t.Fatalf("announcements = %v, want [3]", got)
	}
	if st := eng.Snapshot(); st.Running || st.RemainingSeconds != 0 {
		t.Fatalf("after fire: running=%v remaining=%d, want stopped at 0", st.Running, st.RemainingSeconds)
	}
}

func TestEngineStartReplacesRunningCountdown(t *testing.T) {
	eng, chime, rec := newTestEngine(t)

	eng.Start(1000)
	eng.Start(2)

	time.Sleep(60 * time.Millisecond)

	// Only the second countdown should ever complete.
	if got := rec.totals(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("announcements = %v, want [2]", got)
	}
	if chime.count() != 1 {
		t.Fatalf("chime played %d times, want 1", chime.count())
	}
}

func TestEngineCancel(t *testing.T) {
	eng, chime, rec := newTestEngine(t)

	eng.Start(2)
	eng.Cancel()

	time.Sleep(40 * time.Millisecond)

	if chime.count() != 0 || len(rec.totals()) != 0 {
		t.Fatalf("cancelled countdown still fired (chime=%d, announcements=%v)", chime.count(), rec.totals())
	}
	if st := eng.Snapshot(); st.Running || st.TotalSeconds != 0 {
		t.Fatalf("after cancel: %+v, want zeroed state", st)
	}

	// Cancel with nothing running is a no-op.
	eng.Cancel()
}

func TestEngineIgnoresNonPositiveDurations(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	eng.Start(0)
	eng.Start(-5)

	if st := eng.Snapshot(); st.Running {
		t.Fatalf("engine running after non-positive starts: %+v", st)
	}
}
