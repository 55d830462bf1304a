package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Layout constants
const (
	minWidthForSidebar = 60 // Minimum width to show the sidebar
	sidebarWidth       = 30 // Width of the sidebar including border
	helpHeight         = 1  // Rows reserved for the help line
	recentRuns         = 8  // Rows in the recent-runs table
)

// Options configures a game model.
type Options struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig // Screen size, frame rate and seed
	Ledger  *storage.Ledger    // Optional; finished runs are recorded here
	Logger  *log.Logger        // Optional; discards when nil
	Player  string             // Shown in the ledger; empty for local play
}

// Model is the Bubble Tea model for one flappy session.
type Model struct {
	session  *flappy.Session
	screen   *core.Screen
	ledger   *storage.Ledger
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	runs     table.Model
	player   string
	frames   int
	width    int
	height   int
	focus    Button
	flapped  bool // A flap is already queued for the next frame
	last     time.Time
	quitting bool
}

// NewModel creates a model with an idle session.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	frames := rt.TickRate
	if frames <= 0 {
		frames = opts.Game.Timing.TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		session: flappy.NewSession(opts.Game, rt.Seed),
		screen:  core.NewScreen(1, 1),
		ledger:  opts.Ledger,
		logger:  logger,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		runs:    newRunsTable(),
		player:  opts.Player,
		frames:  frames,
		width:   rt.ScreenW,
		height:  rt.ScreenH,
	}
	m.session.OnGameOver(m.recordRun)
	m.refreshRuns()
	return m
}

// recordRun stores and logs a finished run. It runs inside Session.Advance.
func (m Model) recordRun(r flappy.RunResult) {
	m.logger.Info("game over",
		"player", m.player,
		"score", r.Score,
		"highest", r.Highest,
		"pipes", r.PipesPassed,
		"ticks", r.Ticks,
		"cause", string(r.Cause),
	)
	if m.ledger == nil {
		return
	}
	_, err := m.ledger.RecordRun(storage.RunRecord{
		Player:      m.player,
		Score:       r.Score,
		Ticks:       r.Ticks,
		PipesPassed: r.PipesPassed,
		Cause:       string(r.Cause),
	})
	if err != nil {
		m.logger.Warn("could not record run", "error", err)
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.frames)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey turns a key press into a session command.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	cmd, focus := m.keys.Translate(msg, m.session.State(), m.focus)
	m.focus = focus
	if cmd == core.CommandNone {
		return m, nil
	}
	// Terminals send held keys as repeated presses. A flap sets the velocity
	// outright, so repeats inside one frame are dropped.
	if cmd == core.CommandFlap {
		if m.flapped {
			return m, nil
		}
		m.flapped = true
	}

	m.session.Submit(cmd)
	if cmd == core.CommandExit {
		// Apply now so the program does not wait for another frame.
		m.session.Advance(0)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick feeds the wall-clock time since the previous frame to the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var elapsed time.Duration
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now
	m.flapped = false

	before := m.session.State()
	m.session.Advance(elapsed)

	if m.session.Exited() {
		m.quitting = true
		return m, tea.Quit
	}
	if before != flappy.StateGameOver && m.session.State() == flappy.StateGameOver {
		m.focus = ButtonRestart
		m.refreshRuns()
	}

	return m, tickCmd(m.frames)
}

// Snapshot returns the current session snapshot.
func (m Model) Snapshot() flappy.Snapshot {
	return m.session.Snapshot()
}

// Focus returns the highlighted game-over button.
func (m Model) Focus() Button {
	return m.focus
}

// IsQuitting returns true if the user asked to exit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the playfield, the sidebar and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	fieldW, fieldH := m.width, m.height-helpHeight
	showSidebar := m.width >= minWidthForSidebar
	if showSidebar {
		fieldW -= sidebarWidth + 1
	}

	w, h := flappy.PlayfieldSize(snap.BoardW, snap.BoardH, fieldW, fieldH)
	m.screen.Resize(w, h)
	flappy.Render(snap, m.screen)
	m.drawOverlay(snap)

	body := RenderScreen(m.screen)
	if showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.sidebar(snap))
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return body + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// drawOverlay draws the Play panel while idle and the result panel after a game over.
func (m Model) drawOverlay(snap flappy.Snapshot) {
	switch snap.State {
	case flappy.StateIdle:
		flappy.DrawPanel(m.screen, "FLAPPY BIRD", "", "[ Play ]")
	case flappy.StateGameOver:
		flappy.DrawPanel(m.screen,
			"GAME OVER",
			"Score: "+flappy.FormatScore(snap.Score),
			"Highest: "+flappy.FormatScore(snap.Highest),
			"",
			buttonLabel(ButtonRestart, m.focus)+" "+buttonLabel(ButtonExit, m.focus),
		)
	}
}

// buttonLabel brackets the focused button.
func buttonLabel(b, focus Button) string {
	if b == focus {
		return "[ " + b.String() + " ]"
	}
	return "  " + b.String() + "  "
}

// sidebar renders the score box and the recent-runs table.
func (m Model) sidebar(snap flappy.Snapshot) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("FLAPPY"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Score:  "), flappy.FormatScore(snap.Score))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Highest:"), flappy.FormatScore(snap.Highest))
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Pipes:  "), snap.PipesPassed)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("State:  "), snap.State)
	if m.ledger != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent runs"))
		b.WriteString("\n")
		b.WriteString(m.runs.View())
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth-2).
		Padding(0, 1)
	return style.Render(b.String())
}

// newRunsTable creates the recent-runs table.
func newRunsTable() table.Model {
	columns := []table.Column{
		{Title: "Score", Width: 6},
		{Title: "Cause", Width: 6},
		{Title: "Ended", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(recentRuns+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// refreshRuns reloads the recent-runs table from the ledger.
func (m *Model) refreshRuns() {
	if m.ledger == nil {
		return
	}
	runs, err := m.ledger.RecentRuns(recentRuns)
	if err != nil {
		m.logger.Warn("could not load recent runs", "error", err)
		return
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			flappy.FormatScore(r.Score),
			r.Cause,
			r.EndedAt.Format("15:04:05"),
		}
	}
	m.runs.SetRows(rows)
}

// RunRows returns the rows currently shown in the recent-runs table.
func (m Model) RunRows() []table.Row {
	return m.runs.Rows()
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
