// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar and an input prompt at
// the bottom of the terminal. The status bar shows the cooking phase,
// step progress, the running countdown, and the voice state, all pulled
// from a status callback once per second. All application output is
// printed above the rendered area via Program.Println / Printf, so
// concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yackhyun/sorichef/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	timerRunStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	listeningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	speakingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// ── Output styles (soft palette) ──

	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Assistant speech — soft sky blue.
	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	// Secondary text — dimmed zinc for hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	// Urgent — soft coral for errors/alerts.
	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	userEchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))
)

// Status is the snapshot the status bar renders. The UI pulls it once
// per second through the callback given to [NewUI].
type Status struct {
	Phase      domain.Phase
	StepDone   int
	StepTotal  int
	Timer      domain.TimerState
	Listening  bool
	Speaking   bool
	Processing bool
	WakeActive bool
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call the print helpers and read from [UI.InputChan] at any time
// after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	status  func() Status
	done    atomic.Bool
}

// NewUI creates the display. The status callback must be safe to call
// from the Bubble Tea goroutine. Call Run() to start.
func NewUI(status func() Status) *UI {
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe. If the program
// hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintMessage renders a chat message into the scrollback. Wire it to
// the transcript's change callback.
func (u *UI) PrintMessage(msg domain.ChatMessage) {
	switch msg.Role {
	case domain.RoleAssistant:
		for _, line := range strings.Split(msg.Text, "\n") {
			u.Println(assistantStyle.Render("  " + line))
		}
		u.Println("")
	case domain.RoleUser:
		u.Println(promptStyle.Render("나") + secondaryStyle.Render("> ") + userEchoStyle.Render(msg.Text))
	}
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an urgent/error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentStyle.Render("  " + text))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Use a plain-text prompt so the textinput width math stays correct.
	// Lipgloss-styled prompts add invisible ANSI bytes that break the
	// internal offset/scroll calculations for long input.
	ti.Prompt = "sori> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = userEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		status:  u.status,
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	status  func() Status
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	snap    Status
	width   int
}

type tickMsg time.Time

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		// Full width minus the prompt ("sori> " = 6 chars).
		const promptLen = 6
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case tickMsg:
		if m.status != nil {
			m.snap = m.status()
		}
		return m, tickCmd()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderBar())
	b.WriteByte('\n')

	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	s := m.snap
	var parts []string

	parts = append(parts, labelStyle.Render(phaseLabel(s.Phase)))

	if s.StepTotal > 0 {
		parts = append(parts, labelStyle.Render(fmt.Sprintf("단계 %d/%d", s.StepDone, s.StepTotal)))
	}

	if s.Timer.Running {
		parts = append(parts,
			labelStyle.Render("타이머 ")+
				timerRunStyle.Render(fmtSeconds(s.Timer.RemainingSeconds)))
	}

	switch {
	case s.Speaking:
		parts = append(parts, speakingStyle.Render("말하는 중"))
	case s.Processing:
		parts = append(parts, speakingStyle.Render("생각 중"))
	case s.Listening:
		parts = append(parts, listeningStyle.Render("듣는 중"))
	case s.WakeActive:
		parts = append(parts, labelStyle.Render("대기 중"))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "

	w := m.width
	if w <= 0 {
		w = 80
	}
	return barBg.Width(w).Render(content)
}

// ── Helpers ──────────────────────────────────────────────────────

func phaseLabel(p domain.Phase) string {
	switch p {
	case domain.PhaseIngredientCheck:
		return "재료 확인"
	case domain.PhaseCooking:
		return "요리 중"
	case domain.PhaseFinished:
		return "완료"
	default:
		return "대기"
	}
}

func fmtSeconds(sec int) string {
	if sec < 0 {
		sec = 0
	}
	m := sec / 60
	s := sec % 60
	if m == 0 {
		return fmt.Sprintf("%d초", s)
	}
	return fmt.Sprintf("%d분 %02d초", m, s)
}
