// Package tui is the interactive terminal shell for playing runs.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/lox/parallelpoker/internal/game"
	"github.com/lox/parallelpoker/internal/history"
)

// historyLines is how many settled rounds the history command shows.
const historyLines = 10

// Model is the Bubble Tea model for a play session
type Model struct {
	session *game.Session
	history *history.Recorder
	logger  *log.Logger
	cheats  bool

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool // Track if viewport has been properly sized

	// Test mode
	testMode    bool
	capturedLog []string // For test assertions
}

// Options configures a Model.
type Options struct {
	// History, when set, backs the sidebar totals and the history command.
	// It should be the recorder the session writes to.
	History *history.Recorder
	// Cheats enables the cheat command.
	Cheats bool
	// TestMode captures log entries as plain text and skips viewport updates.
	TestMode bool
}

// NewModel creates a model over session.
func NewModel(session *game.Session, logger *log.Logger, opts Options) *Model {
	// Will be properly sized when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = phaseHint(session.State().Phase)
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = bold(colorGreen)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.Prompt = "> "

	m := &Model{
		session:     session,
		history:     opts.History,
		logger:      logger.WithPrefix("tui"),
		cheats:      opts.Cheats,
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1, // Start with input focused
		testMode:    opts.TestMode,
	}
	m.AddLogEntry(HeaderStyle.Render(" PARALLEL POKER "))
	m.AddLogEntry(fmt.Sprintf("Rules: %s. Type 'help' for commands, Enter to start.", session.Engine().Config().Name))
	return m
}

// Run starts the program on the terminal and blocks until the player quits
// or ctx is cancelled.
func Run(ctx context.Context, session *game.Session, logger *log.Logger, opts Options) error {
	m := NewModel(session, logger, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				cont := m.Submit(m.actionInput.Value())
				m.actionInput.SetValue("")
				if !cont {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always update viewport (for scrolling)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit runs one line of input as if typed and reports whether the shell
// should keep running.
func (m *Model) Submit(input string) bool {
	cont := m.processAction(strings.TrimSpace(input))
	if !cont {
		m.quitting = true
	}
	m.actionInput.Placeholder = phaseHint(m.session.State().Phase)
	return cont
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)

	actionPane := paneStyle(m.focusedPane == 1).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1)).
		Render(actionContent)

	// Sidebar pane (right side of log pane, same height as log pane)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 28)
	paneHeight := max(m.height-actionHeight-4, 1) // Account for border x 2 and action pane

	sidebarPane := paneStyle(false).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Log pane (top, fills height minus action pane)
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := paneStyle(m.focusedPane == 0).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// paneStyle is the rounded border around each pane, green when focused.
func paneStyle(focused bool) lipgloss.Style {
	border := colorMuted
	if focused {
		border = colorGreen
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
}

// renderSidebarPane creates the sidebar content
func (m *Model) renderSidebarPane() string {
	s := m.session.State()
	e := m.session.Engine()
	var content strings.Builder

	if s.Phase == game.PhaseMenu {
		content.WriteString(InfoStyle.Render("No run in progress"))
		return content.String()
	}

	content.WriteString(WarningStyle.Render(fmt.Sprintf("Credits: %d", s.Credits)))
	content.WriteString("\n\n")
	round := fmt.Sprintf("Round: %d", s.Round)
	if s.IsEndlessMode {
		round += DevilStyle.Render(fmt.Sprintf(" (endless %d)", s.EndlessRound))
	}
	content.WriteString(round + "\n")
	fmt.Fprintf(&content, "Bet: %d (min %d)\n", s.BetAmount, s.MinimumBet)
	fmt.Fprintf(&content, "Hands: %d of %d\n", s.SelectedHandCount, s.HandCount)
	fmt.Fprintf(&content, "Deal cost: %d\n", s.DealCost())
	fmt.Fprintf(&content, "Draws: %d  Extra cards: %d\n", s.MaxDraws, s.ExtraCards)
	fmt.Fprintf(&content, "Deck: %d cards\n", len(s.DeckMods.Deck()))
	fmt.Fprintf(&content, "Streak peak: %d\n", s.PeakStreak)
	fmt.Fprintf(&content, "Devil's Deal: %.0f%%\n", e.DevilsDealChance(s))

	if s.IsEndlessMode {
		content.WriteString("\n")
		content.WriteString(InfoStyle.Render("Limits:"))
		content.WriteString("\n")
		for _, line := range conditionLines(e, s) {
			content.WriteString("  " + line + "\n")
		}
	}

	if m.history != nil {
		if t := m.history.Totals(); t.Rounds > 0 {
			content.WriteString("\n")
			content.WriteString(InfoStyle.Render("This run:"))
			content.WriteString("\n")
			fmt.Fprintf(&content, "  Won %d of %d hands\n", t.Wins, t.Hands)
			fmt.Fprintf(&content, "  Net %+d\n", t.Net)
		}
	}

	return content.String()
}

// renderActionPane renders the action input pane
func (m *Model) renderActionPane() string {
	s := m.session.State()
	var content strings.Builder

	switch s.Phase {
	case game.PhasePlaying:
		content.WriteString(HandInfoStyle.Render("Hand: "))
		content.WriteString(formatDealt(s))
		content.WriteString("\n")
		if s.DevilsDeal.Offer != nil {
			content.WriteString(describeOffer(s))
			content.WriteString("\n")
		}
		left := s.MaxDraws - s.DrawsUsed
		content.WriteString(ActionsStyle.Render(fmt.Sprintf("Holding %d • %d draw(s) left", s.HeldCount(), left)))
	case game.PhaseShop:
		content.WriteString(ActionsStyle.Render(fmt.Sprintf("Shop • %d item(s) on offer", len(s.ShopOptions))))
	case game.PhaseGameOver:
		content.WriteString(ErrorStyle.Render("Game over"))
	default:
		content.WriteString(HandInfoStyle.Render(string(s.Phase)))
	}
	content.WriteString("\n")

	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(help))

	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, ansi.Strip(entry))
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// AddBoldLogEntry adds a bold entry to the log
func (m *Model) AddBoldLogEntry(entry string) {
	m.AddLogEntry(lipgloss.NewStyle().Bold(true).Render(entry))
}

func (m *Model) addLines(lines []string) {
	for _, l := range lines {
		m.AddLogEntry(l)
	}
}

// ClearLog clears the game log
func (m *Model) ClearLog() {
	m.gameLog = nil
	m.capturedLog = nil
	m.logViewport.SetContent("")
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}
