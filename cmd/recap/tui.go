package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"recap/cmd/recap/ui"
	"recap/internal/logging"
	"recap/internal/studio"
	"recap/internal/transcript"
)

// pane identifies the focusable studio regions, in Tab order.
type pane int

const (
	paneCompose pane = iota
	paneChannels
	paneReview
	paneAnalysis
	paneCount
)

// Message types
type (
	// workflowDoneMsg reports a finished workflow. The session snapshot
	// carries the result; errors surface through snapshot.ErrorMessage.
	workflowDoneMsg struct{ err error }
)

// Layout constants
const (
	headerHeight = 2
	footerHeight = 2
)

// studioModel is the bubbletea model for the interactive studio.
type studioModel struct {
	session *studio.Session

	compose    textarea.Model // transcript entry
	review     textarea.Model // summary under review, editable before send
	analysis   viewport.Model
	agentInput textinput.Model // sentiment agent override
	spinner    spinner.Model
	styles     ui.Styles
	renderer   *glamour.TermRenderer

	focus    pane
	selected int // cursor row inside the channels pane
	width    int
	height   int
	ready    bool
	notice   string
	stats    transcript.Stats
}

// runStudio opens the interactive studio surface.
func runStudio() error {
	session, err := buildSession(context.Background())
	if err != nil {
		return err
	}

	styles := ui.NewStyles(ui.ThemeFromName(cfg.UI.Theme))
	logging.Get(logging.CategoryUI).Info("studio opened, theme=%s", cfg.UI.Theme)
	p := tea.NewProgram(newStudioModel(session, styles), tea.WithAltScreen())
	_, err = p.Run()
	logging.Get(logging.CategoryUI).Info("studio closed")
	return err
}

func newStudioModel(session *studio.Session, styles ui.Styles) studioModel {
	compose := textarea.New()
	compose.Placeholder = "Paste a chat transcript here..."
	compose.CharLimit = 0
	compose.ShowLineNumbers = false
	compose.Focus()

	review := textarea.New()
	review.Placeholder = "No summary yet."
	review.CharLimit = 0
	review.ShowLineNumbers = false

	agentInput := textinput.New()
	agentInput.Placeholder = "config route"
	agentInput.Prompt = "agent: "
	agentInput.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return studioModel{
		session:    session,
		compose:    compose,
		review:     review,
		analysis:   viewport.New(40, 10),
		agentInput: agentInput,
		spinner:    sp,
		styles:     styles,
		focus:      paneCompose,
	}
}

func (m studioModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.rebuildRenderer()
		m.applyLayout()
		m.refreshAnalysis()
		return m, nil

	case workflowDoneMsg:
		m.notice = ""
		if msg.err != nil && errors.Is(msg.err, context.Canceled) {
			m.notice = "workflow cancelled"
		}
		snap := m.session.Snapshot()
		if snap.Summary != nil && m.review.Value() != snap.Summary.Text {
			m.review.SetValue(snap.Summary.Text)
		}
		m.refreshStats()
		m.refreshAnalysis()
		m.applyLayout()
		return m, nil

	case spinner.TickMsg:
		if m.session.Busy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m studioModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	busy := m.session.Busy()

	switch msg.Type {
	case tea.KeyCtrlC:
		m.session.Cancel()
		return m, tea.Quit
	case tea.KeyEsc:
		if busy {
			m.session.Cancel()
			m.notice = "cancelling..."
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyTab:
		m.focus = (m.focus + 1) % paneCount
		return m, m.syncFocus()
	case tea.KeyShiftTab:
		m.focus = (m.focus + paneCount - 1) % paneCount
		return m, m.syncFocus()
	}

	// Workflow triggers. Ignored while one is in flight; the session
	// latch would reject the overlap anyway.
	switch msg.String() {
	case "ctrl+s":
		if busy {
			return m, nil
		}
		return m.startWorkflow(m.session.Summarize)
	case "ctrl+d":
		if busy {
			return m, nil
		}
		return m.startWorkflow(m.session.Distribute)
	case "ctrl+r":
		if busy {
			return m, nil
		}
		session := m.session
		agentID := m.agentInput.Value()
		return m.startWorkflow(func(ctx context.Context) error {
			return session.Analyze(ctx, agentID)
		})
	}

	if m.focus == paneChannels {
		return m.handleChannelKey(msg)
	}
	return m.updateFocused(msg)
}

func (m studioModel) handleChannelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	channels := m.session.Channels()
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(channels)-1 {
			m.selected++
		}
	case " ", "enter":
		if m.selected >= 0 && m.selected < len(channels) {
			m.session.ToggleChannel(channels[m.selected].ID)
		}
	}
	return m, nil
}

// updateFocused routes messages to the widget behind the active pane.
// The text widgets freeze while a workflow runs so the transcript the
// agent sees is the transcript on screen.
func (m studioModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case paneCompose:
		if m.session.Busy() {
			return m, nil
		}
		m.compose, cmd = m.compose.Update(msg)
		m.session.SetTranscript(m.compose.Value())
	case paneReview:
		if m.session.Busy() {
			return m, nil
		}
		m.review, cmd = m.review.Update(msg)
		m.session.SetSummaryText(m.review.Value())
	case paneAnalysis:
		// Arrows scroll the report; everything else edits the agent
		// override field.
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "up", "down", "pgup", "pgdown":
				m.analysis, cmd = m.analysis.Update(msg)
				return m, cmd
			}
		}
		m.agentInput, cmd = m.agentInput.Update(msg)
	}
	return m, cmd
}

// startWorkflow launches a session workflow off the UI goroutine.
func (m studioModel) startWorkflow(run func(context.Context) error) (tea.Model, tea.Cmd) {
	m.notice = ""
	m.refreshStats()
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return workflowDoneMsg{err: run(context.Background())}
	})
}

// syncFocus moves keyboard focus to the widget behind the active pane.
func (m *studioModel) syncFocus() tea.Cmd {
	m.refreshStats()
	m.compose.Blur()
	m.review.Blur()
	m.agentInput.Blur()
	switch m.focus {
	case paneCompose:
		return m.compose.Focus()
	case paneReview:
		return m.review.Focus()
	case paneAnalysis:
		return m.agentInput.Focus()
	}
	return nil
}

// refreshStats recomputes transcript stats. Not run per keystroke:
// language detection is too slow for the input path, so it happens on
// focus changes and workflow boundaries.
func (m *studioModel) refreshStats() {
	m.stats = transcript.Analyze(m.session.Transcript())
}

// rebuildRenderer recreates the markdown renderer for the current
// width and theme.
func (m *studioModel) rebuildRenderer() {
	wrap := m.rightWidth() - 6
	if wrap < 20 {
		wrap = 20
	}
	if m.styles.Theme.IsDark {
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	} else {
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
}

// refreshAnalysis re-renders the sentiment report into its viewport.
func (m *studioModel) refreshAnalysis() {
	snap := m.session.Snapshot()
	if snap.Sentiment == nil {
		m.analysis.SetContent("")
		return
	}
	m.analysis.SetContent(m.renderMarkdown(analysisMarkdown(snap.Sentiment.Report)))
}

// applyLayout sizes the widgets from the window dimensions. Pane chrome
// is a rounded border plus one cell of horizontal padding, and each pane
// spends one inner line on its title.
func (m *studioModel) applyLayout() {
	body := m.height - headerHeight - footerHeight
	if body < 8 {
		body = 8
	}
	snap := m.session.Snapshot()

	channelsOuter := len(snap.Channels) + 3
	composeOuter := body - channelsOuter
	if composeOuter < 5 {
		composeOuter = 5
	}
	m.compose.SetWidth(m.leftWidth() - 4)
	m.compose.SetHeight(composeOuter - 3)

	reviewOuter := body / 2
	analysisOuter := body - reviewOuter

	reviewReserve := 4 // border, title, metadata line
	if snap.Outcome != nil {
		for _, ch := range snap.Channels {
			if ch.Enabled {
				reviewReserve++
			}
		}
		reviewReserve += 2 // delivery heading and overall line
	}
	reviewInner := reviewOuter - reviewReserve
	if reviewInner < 3 {
		reviewInner = 3
	}
	m.review.SetWidth(m.rightWidth() - 4)
	m.review.SetHeight(reviewInner)

	m.agentInput.Width = m.rightWidth() - 16
	m.analysis.Width = m.rightWidth() - 4
	m.analysis.Height = analysisOuter - 4
	if m.analysis.Height < 3 {
		m.analysis.Height = 3
	}
}

func (m studioModel) leftWidth() int  { return m.width / 2 }
func (m studioModel) rightWidth() int { return m.width - m.leftWidth() }
