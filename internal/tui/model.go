package tui

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"selectly/internal/domain"
)

// SessionPort is the TUI-facing subset of the analyzer session.
type SessionPort interface {
	LoadCSV(path string) error
	Ask(ctx context.Context, question string) domain.Turn
	Transcript() []domain.Turn
	Loaded() bool
	Source() string
}

// answerMsg signals that an in-flight question has been answered and the
// transcript holds the new turns.
type answerMsg struct{}

// Model is the Bubble Tea model for the chat application. It starts in
// the file picker when no CSV was preloaded and switches to the chat view
// after a successful load. While a question is in flight the input is
// locked, so at most one query is ever being processed.
type Model struct {
	session  SessionPort
	picker   filepicker.Model
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	picking  bool
	busy     bool
	ready    bool
	pending  string
	status   string
	width    int
}

// New creates the TUI model. The picker opens in the working directory and
// only offers .csv files.
func New(session SessionPort) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = `Ask anything... (e.g. "টপ 5 সাপ্লায়ার দেখাও")`
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	vp := viewport.New(0, 0)
	status := "Select a CSV file to begin."
	if session.Loaded() {
		status = "Loaded " + session.Source() + ". Ask away."
	}
	return Model{
		session:  session,
		picker:   fp,
		input:    ti,
		viewport: vp,
		spin:     sp,
		picking:  !session.Loaded(),
		status:   status,
	}
}

// Init starts the picker and the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), textinput.Blink)
}

// Update handles key, window, picker, and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = vh
		m.picker.Height = max(5, msg.Height-4)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.picking {
			break // the picker consumes keys below
		}
		switch msg.String() {
		case "ctrl+o":
			if !m.busy {
				m.picking = true
				m.status = "Select a CSV file."
				return m, m.picker.Init()
			}
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.busy && m.session.Loaded() {
				m.busy = true
				m.pending = q
				m.input.Reset()
				m.status = "Analyzing suppliers..."
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, tea.Batch(m.askCmd(q), m.spin.Tick)
			}
		}

	case answerMsg:
		m.busy = false
		m.pending = ""
		m.status = "Done. Ask another question, or ctrl+o to load a new CSV."
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			if err := m.session.LoadCSV(path); err != nil {
				m.status = "Error: " + err.Error()
				return m, cmd
			}
			m.picking = false
			m.status = "Loaded " + m.session.Source() + ". Ask away."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders either the picker or the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Selectly Supplier Selection")
	if m.picking {
		return header + "\n" + m.status + "\n\n" + m.picker.View()
	}
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	if m.busy {
		status = m.spin.View() + " " + status
	}
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) askCmd(question string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.Ask(context.Background(), question)
		return answerMsg{}
	}
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	for _, t := range m.session.Transcript() {
		if t.Role == domain.RoleUser {
			b.WriteString(userLabelStyle.Render("You") + "\n" + t.Content + "\n\n")
		} else {
			b.WriteString(assistantLabelStyle.Render("Selectly") + "\n" + t.Content + "\n\n")
		}
	}
	if m.pending != "" {
		b.WriteString(userLabelStyle.Render("You") + "\n" + m.pending + "\n\n")
	}
	if b.Len() == 0 {
		return "No messages yet."
	}
	return strings.TrimRight(b.String(), "\n")
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true)
	chatBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	spinnerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
