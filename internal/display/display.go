// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar and an input prompt at the
// bottom of the terminal. All application output is printed above the
// rendered area via Program.Println / Printf, so concurrent writes never
// garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	barValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fdba74")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

// ── Status ───────────────────────────────────────────────────────

// Status is what the bar at the bottom of the screen shows.
type Status struct {
	Recipe     string
	Servings   int
	Bookmarked bool
	Bookmarks  int
	Shopping   int
	Query      string
	Page       int
	Pages      int
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Println], [UI.Printf], and read from [UI.InputChan] at any time after
// [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	status  func() Status
	done    atomic.Bool
}

// NewUI creates the display. status is polled once a second from the
// Bubble Tea goroutine and must be safe to call concurrently.
func NewUI(status func() Status) *UI {
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Println prints a line above the prompt. Thread-safe. Before the program
// starts (or after it stops) it falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format, a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintBlock prints pre-styled multi-line text such as a page snapshot.
func (u *UI) PrintBlock(text string) {
	u.Println(strings.TrimRight(text, "\n"))
}

// PrintInfo prints a plain informational line.
func (u *UI) PrintInfo(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintSuccess prints a confirmation line.
func (u *UI) PrintSuccess(text string) {
	u.Println(successStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUrgent prints an error line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render("forkify") + secondaryStyle.Render("> ") + userInputEchoStyle.Render(text))
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
	// A plain-text prompt keeps the textinput width math correct; styled
	// prompts add invisible ANSI bytes.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		status:  u.status,
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn:  u.PrintUserInput,
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

const prompt = "forkify> "

type model struct {
	status  func() Status
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string)
	current Status
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
				// Echo from a Cmd so Println does not run inside Update.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(prompt) {
			m.input.Width = msg.Width - len(prompt)
		}
		return m, nil

	case tickMsg:
		if m.status != nil {
			m.current = m.status()
		}
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) titleStr() string {
	if m.current.Recipe == "" {
		return "forkify"
	}
	return "forkify | " + m.current.Recipe
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.current, m.width))
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func renderBar(s Status, width int) string {
	field := func(label, value string) string {
		return labelStyle.Render(label+": ") + barValueStyle.Render(value)
	}

	var parts []string
	if s.Recipe != "" {
		title := s.Recipe
		if s.Bookmarked {
			title = "★ " + title
		}
		parts = append(parts, field("recipe", title), field("serves", fmt.Sprint(s.Servings)))
	}
	if s.Query != "" {
		parts = append(parts, field("search", s.Query))
		if s.Pages > 1 {
			parts = append(parts, field("page", fmt.Sprintf("%d/%d", s.Page, s.Pages)))
		}
	}
	parts = append(parts,
		field("bookmarks", fmt.Sprint(s.Bookmarks)),
		field("shopping", fmt.Sprint(s.Shopping)),
	)

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}
