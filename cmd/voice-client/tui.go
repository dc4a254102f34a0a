package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	session "github.com/Pranav-shellkode/voice-agent-learning/core"
	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
)

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	partialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true)
)

type sessionEventMsg struct {
	event events.Event
}

type connectResultMsg struct {
	err error
}

type model struct {
	session *session.Session

	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int

	transcript []string
	partial    string

	connected   bool
	recording   bool
	turnOpen    bool
	playingBack bool
	errMessage  string
}

func newModel(conversation *session.Session) model {
	input := textinput.New()
	input.Placeholder = "Type a message, or ctrl+r to talk"
	input.Focus()

	return model{
		session: conversation,
		input:   input,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		return connectResultMsg{err: m.session.Connect(context.Background())}
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 1
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submitInput()
		case "ctrl+r":
			return m.toggleRecording()
		case "ctrl+l":
			m.session.ClearError()
			return m, nil
		}

	case connectResultMsg:
		if msg.err != nil {
			m.errMessage = msg.err.Error()
		}
		return m, nil

	case sessionEventMsg:
		m.applyEvent(msg.event)
		m.refreshViewport()
		return m, nil
	}

	var inputCmd, viewportCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	m.viewport, viewportCmd = m.viewport.Update(msg)
	return m, tea.Batch(inputCmd, viewportCmd)
}

func (m model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()

	conversation := m.session
	return m, func() tea.Msg {
		if err := conversation.SendText(context.Background(), text); err != nil {
			return sessionEventMsg{event: events.NewErrorRaised("input", err.Error())}
		}
		return nil
	}
}

func (m model) toggleRecording() (tea.Model, tea.Cmd) {
	conversation := m.session
	if m.recording {
		return m, func() tea.Msg {
			if err := conversation.StopRecording(context.Background()); err != nil {
				return sessionEventMsg{event: events.NewErrorRaised("input", err.Error())}
			}
			return nil
		}
	}
	return m, func() tea.Msg {
		if err := conversation.StartRecording(context.Background()); err != nil {
			return sessionEventMsg{event: events.NewErrorRaised("input", err.Error())}
		}
		return nil
	}
}

func (m *model) applyEvent(event events.Event) {
	switch typedEvent := event.(type) {
	case events.StatusChanged:
		m.connected = typedEvent.Connected
	case events.MessageAppended:
		m.transcript = append(m.transcript, renderMessage(typedEvent.Role, typedEvent.Text))
	case events.AssistantResponseStarted:
		m.partial = ""
	case events.AssistantResponseSegment:
		m.partial += typedEvent.Segment
	case events.AssistantResponseFinal:
		// The finished text arrives as a MessageAppended when the turn
		// completes; drop the partial then, not before.
	case events.RecordingStarted:
		m.recording = true
	case events.RecordingStopped:
		m.recording = false
	case events.TurnStarted:
		m.turnOpen = true
	case events.TurnCompleted:
		m.turnOpen = false
		m.partial = ""
	case events.TurnAborted:
		m.turnOpen = false
		m.partial = ""
	case events.AssistantPlaybackStarted:
		m.playingBack = true
	case events.AssistantPlaybackEnded:
		m.playingBack = false
	case events.ErrorRaised:
		m.errMessage = fmt.Sprintf("%s: %s", typedEvent.Scope, typedEvent.Message)
	case events.ErrorCleared:
		m.errMessage = ""
	}
}

func renderMessage(role, text string) string {
	label := userStyle.Render("you")
	if role == session.RoleAssistant {
		label = assistantStyle.Render("assistant")
	}
	return label + " " + text
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}

	lines := make([]string, 0, len(m.transcript)+1)
	lines = append(lines, m.transcript...)
	if m.partial != "" {
		lines = append(lines, partialStyle.Render(assistantStyle.Render("assistant")+" "+m.partial))
	}

	content := strings.Join(lines, "\n\n")
	if m.width > 0 {
		content = wordwrap.String(content, m.width)
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "starting..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s", m.statusLine(), m.viewport.View(), m.input.View(), m.helpLine())
}

func (m model) statusLine() string {
	parts := []string{}
	if m.connected {
		parts = append(parts, "connected")
	} else {
		parts = append(parts, "disconnected")
	}
	if m.recording {
		parts = append(parts, "recording")
	}
	if m.turnOpen {
		parts = append(parts, "waiting for assistant")
	}
	if m.playingBack {
		parts = append(parts, "playing audio")
	}

	line := statusStyle.Render(strings.Join(parts, " | "))
	if m.errMessage != "" {
		line += "  " + errorStyle.Render(m.errMessage)
	}
	return line
}

func (m model) helpLine() string {
	return statusStyle.Render("enter: send | ctrl+r: record | ctrl+l: dismiss error | ctrl+c: quit")
}
