// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/promptchat/internal/api"
	"github.com/jeranaias/promptchat/internal/ui/components"
	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/widget"
)

// InputPlaceholder is shown in the empty question field.
const InputPlaceholder = "Your prompt..."

// =============================================================================
// WIDGET SYNC
// =============================================================================

// widgetSync receives widget notifications. It is shared by every copy of
// the Model, so observers registered once keep working after Bubble Tea
// copies the model.
type widgetSync struct {
	mu       sync.Mutex
	state    widget.State
	dirty    bool
	appended bool
}

func (s *widgetSync) observe(state widget.State) {
	s.mu.Lock()
	s.state = state
	s.dirty = true
	s.mu.Unlock()
}

func (s *widgetSync) onAppend(int, widget.Interaction) {
	s.mu.Lock()
	s.appended = true
	s.mu.Unlock()
}

// take returns the latest state and clears the pending flags.
func (s *widgetSync) take() (state widget.State, dirty, appended bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, dirty, appended = s.state, s.dirty, s.appended
	s.dirty, s.appended = false, false
	return state, dirty, appended
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Widget holds the session state. Required.
	Widget *widget.Widget

	// Asker answers questions. Required.
	Asker api.Asker

	// Models populates the model selector.
	Models []string

	// Markdown renders bot answers; nil shows them as plain text.
	Markdown *components.MarkdownRenderer

	// Context bounds outstanding requests; cancel it to abandon them on exit.
	Context context.Context
}

// Model is the Bubble Tea model binding a widget to the terminal.
type Model struct {
	theme *styles.Theme

	width  int
	height int

	widget *widget.Widget
	asker  api.Asker
	ctx    context.Context
	sync   *widgetSync
	state  widget.State

	// UI Components
	header     *components.Header
	transcript *components.Transcript
	statusBar  *components.StatusBar
	palette    *components.ModelPalette
	keyDialog  *components.KeyDialog
	viewport   viewport.Model
	input      textinput.Model
	spinner    components.Spinner
	pulse      components.Pulse
	help       help.Model

	keyMap   KeyMap
	showHelp bool

	// Rendered entries, rebuilt only when the transcript or width changes.
	entriesView  string
	entriesWidth int

	unsubscribe func()
}

// New creates a chat model over opts.Widget.
func New(theme *styles.Theme, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = InputPlaceholder
	// Questions are sent as typed, whatever their length.
	ti.CharLimit = 0
	ti.PromptStyle = theme.InputPrompt
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	ws := &widgetSync{}
	unsubscribe := opts.Widget.Subscribe(ws.observe)
	opts.Widget.OnAppend(ws.onAppend)

	state := opts.Widget.Snapshot()
	ti.SetValue(state.Question)

	h := help.New()
	h.ShowAll = true

	m := Model{
		theme:       theme,
		widget:      opts.Widget,
		asker:       opts.Asker,
		ctx:         opts.Context,
		sync:        ws,
		state:       state,
		header:      components.NewHeader(theme),
		transcript:  components.NewTranscript(theme, opts.Markdown),
		statusBar:   components.NewStatusBar(theme),
		palette:     components.NewModelPalette(opts.Models, theme),
		keyDialog:   components.NewKeyDialog(theme),
		viewport:    vp,
		input:       ti,
		spinner:     components.NewSpinner(),
		pulse:       components.NewPulse(),
		help:        h,
		keyMap:      DefaultKeyMap(),
		unsubscribe: unsubscribe,
	}
	m.statusBar.SetHints(m.keyMap.shortHelpLine())
	m.applyState(state, true)
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and the pulse.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pulse.Tick())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m, cmd = m.handleResize(msg)

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)

	case AnswerMsg:
		m, cmd = m.handleAnswer(msg)

	case components.ModelSelectedMsg:
		m.widget.SelectModel(msg.Model)
		cmd = m.focusInput()

	case components.APIKeySavedMsg:
		m.widget.SetAPIKey(msg.Key)
		cmd = m.focusInput()

	case components.APIKeyCancelledMsg:
		cmd = m.focusInput()

	case components.PulseMsg:
		m.pulse, cmd = m.pulse.Update(msg)
		m.refreshViewport()

	default:
		var cmds []tea.Cmd
		var c tea.Cmd
		m.spinner, c = m.spinner.Update(msg)
		cmds = append(cmds, c)
		if m.keyDialog.IsVisible() {
			c, _ = m.keyDialog.Update(msg)
		} else {
			m.input, c = m.input.Update(msg)
		}
		cmds = append(cmds, c)
		if m.spinner.IsActive() {
			m.refreshViewport()
		}
		cmd = tea.Batch(cmds...)
	}

	m.syncWidget()
	return m, cmd
}

// View renders the program.
func (m Model) View() string {
	return m.renderChat()
}

// Close detaches the model from its widget.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Layout: header + viewport + input (top border + line) + status bar.
	const (
		headerHeight    = 1
		inputAreaHeight = 2
		statusBarHeight = 1
	)

	viewportHeight := m.height - headerHeight - inputAreaHeight - statusBarHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	viewportWidth := m.width
	if viewportWidth < 1 {
		viewportWidth = 1
	}
	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight

	// Input container padding, prompt and the send button.
	inputWidth := m.width - 2 - 2 - sendButtonWidth - 1
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.palette.SetSize(m.width, m.height)
	m.keyDialog.SetSize(m.width, m.height)
	m.help.Width = m.width

	atBottom := m.viewport.AtBottom()
	m.refreshViewport()
	if atBottom {
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays are modal.
	if m.keyDialog.IsVisible() {
		cmd, _ := m.keyDialog.Update(msg)
		return m, cmd
	}
	if m.palette.IsVisible() {
		cmd, _ := m.palette.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		switch msg.String() {
		case "esc", "f1", "q", "enter":
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Model):
		m.palette.Show(m.state.Model)
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keyMap.APIKey):
		m.input.Blur()
		return m, m.keyDialog.Show(m.state.APIKey)

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()
	}

	// The form is disabled while a question is outstanding.
	if m.state.Processing {
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.widget.SetQuestion(value)
	}
	return m, cmd
}

// submit starts a question. Empty questions and questions sent while
// another is outstanding are dropped.
func (m Model) submit() (Model, tea.Cmd) {
	req, err := m.widget.Begin()
	if err != nil {
		return m, nil
	}

	m.input.Blur()
	return m, tea.Batch(
		askCmd(m.ctx, m.asker, req),
		m.spinner.Start(),
	)
}

func (m Model) handleAnswer(msg AnswerMsg) (Model, tea.Cmd) {
	m.widget.Settle(msg.Answer)
	m.spinner.Stop()
	return m, m.focusInput()
}

// focusInput returns keyboard focus to the question field unless a
// question is outstanding.
func (m *Model) focusInput() tea.Cmd {
	if m.widget.Processing() {
		return nil
	}
	return m.input.Focus()
}

// =============================================================================
// STATE SYNC
// =============================================================================

// syncWidget applies pending widget notifications.
func (m *Model) syncWidget() {
	state, dirty, appended := m.sync.take()
	if !dirty {
		return
	}
	m.applyState(state, appended)
}

// applyState copies state into the components. appended scrolls the
// transcript to the bottom.
func (m *Model) applyState(state widget.State, appended bool) {
	entriesChanged := len(state.Interactions) != len(m.state.Interactions) || m.entriesView == ""
	m.state = state

	m.header.SetModel(state.Model)
	m.header.SetHasKey(state.APIKey != "")

	if m.input.Value() != state.Question {
		m.input.SetValue(state.Question)
		m.input.CursorEnd()
	}

	switch {
	case state.Processing:
		m.statusBar.SetStatus(components.StatusWaiting, m.spinner.Elapsed())
	case state.LastFailed:
		m.statusBar.SetStatus(components.StatusNoAnswer, "")
	default:
		m.statusBar.SetStatus(components.StatusReady, "")
	}

	if entriesChanged {
		m.entriesView = ""
	}
	m.refreshViewport()
	if appended {
		m.viewport.GotoBottom()
	}
}

// refreshViewport rebuilds the viewport content. Rendered entries are
// cached; only the pending entry is redrawn on animation ticks.
func (m *Model) refreshViewport() {
	width := m.viewport.Width - 1
	if width < 10 {
		width = 10
	}
	if m.entriesView == "" || m.entriesWidth != width {
		m.transcript.SetWidth(width)
		m.transcript.SetEntries(m.state.Interactions)
		m.entriesView = m.transcript.View("")
		m.entriesWidth = width
	}

	content := m.entriesView
	if m.state.Processing {
		m.statusBar.SetStatus(components.StatusWaiting, m.spinner.Elapsed())
		pending := components.RenderPending(m.theme, m.spinner.View(), m.pulse.On())
		if content != "" {
			content += "\n\n"
		}
		content += pending
	}
	m.viewport.SetContent(content)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the widget state as last applied to the view.
func (m Model) State() widget.State {
	return m.state
}

// ShowingHelp reports whether the help overlay is open.
func (m Model) ShowingHelp() bool {
	return m.showHelp
}

// InputValue returns the text in the question field.
func (m Model) InputValue() string {
	return m.input.Value()
}

// InputFocused reports whether the question field has focus.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}

// AtBottom reports whether the transcript is scrolled to its end.
func (m Model) AtBottom() bool {
	return m.viewport.AtBottom()
}
