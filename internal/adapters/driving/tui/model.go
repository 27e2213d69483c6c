// Package tui is the interactive terminal chat interface for the campus bot.
//
// It follows the Elm architecture via Bubbletea: a single Model, messages
// for every event, and a pure View. Answer generation runs asynchronously
// so the interface stays responsive while the model thinks.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
	"github.com/campuslabs/ubot/internal/core/ports/driving"
)

// Config wires the chat interface to the core services.
type Config struct {
	// Answers generates one answer per question.
	Answers driving.AnswerService

	// Sessions threads the conversation across questions.
	Sessions driven.SessionStore

	// TopK is the number of chunks retrieved per question.
	TopK int
}

// answerMsg carries one completed (or failed) answer back into Update.
type answerMsg struct {
	question string
	answer   domain.Answer
	err      error
}

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	sourceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the Bubbletea model for the chat interface.
type Model struct {
	cfg       Config
	ctx       context.Context
	sessionID string

	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	transcript []string
	status     string
	waiting    bool
	ready      bool
}

// Ensure Model implements tea.Model.
var _ tea.Model = Model{}

// New creates a chat model. Each model owns one fresh session.
func New(ctx context.Context, cfg Config) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the campus and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		cfg:       cfg,
		ctx:       ctx,
		sessionID: uuid.NewString(),
		input:     ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
		status:    "Ready. Esc or Ctrl+C to quit.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, frameH := transcriptStyle.GetFrameSize()
		_, inputH := inputStyle.GetFrameSize()
		reserved := 2 + inputH + frameH + 1
		height := msg.Height - reserved
		if height < 3 {
			height = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.transcript = append(m.transcript, questionStyle.Render("You: ")+question)
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.ask(question), m.spinner.Tick)
		}

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = errorStyle.Render("Error: " + msg.err.Error())
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		}
		m.status = "Ready. Esc or Ctrl+C to quit."
		entry := questionStyle.Render("Bot: ") + msg.answer.Text
		if len(msg.answer.Sources) > 0 {
			entry += "\n" + sourceStyle.Render(renderSources(msg.answer.Sources))
		}
		m.transcript = append(m.transcript, entry)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the header, transcript, input and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Campus Bot")
	status := statusStyle.Render(m.status)
	if m.waiting {
		status = m.spinner.View() + " Thinking..."
	}
	return header + "\n" +
		transcriptStyle.Render(m.viewport.View()) + "\n" +
		inputStyle.Render(m.input.View()) + "\n" +
		status
}

// ask runs one question through the answer pipeline off the Update loop.
// History is appended only after a successful answer, so a failed question
// never pollutes the session.
func (m Model) ask(question string) tea.Cmd {
	cfg := m.cfg
	ctx := m.ctx
	sessionID := m.sessionID

	return func() tea.Msg {
		history, err := cfg.Sessions.History(ctx, sessionID)
		if err != nil {
			return answerMsg{question: question, err: err}
		}

		answer, err := cfg.Answers.GenerateAnswer(ctx, question, history, cfg.TopK)
		if err != nil {
			return answerMsg{question: question, err: err}
		}

		turns := []domain.ConversationTurn{
			{Role: domain.RoleUser, Content: question},
			{Role: domain.RoleAssistant, Content: answer.Text},
		}
		if err := cfg.Sessions.Append(ctx, sessionID, turns...); err != nil {
			return answerMsg{question: question, err: err}
		}

		return answerMsg{question: question, answer: answer}
	}
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "Ask a question to get started."
	}
	return strings.Join(m.transcript, "\n\n")
}

// renderSources formats the source list shown under an answer.
func renderSources(sources []domain.Source) string {
	lines := make([]string, 0, len(sources))
	for i, src := range sources {
		line := fmt.Sprintf("  [%d] %s", i+1, src.Title)
		if src.URL != "" {
			line += " (" + src.URL + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
