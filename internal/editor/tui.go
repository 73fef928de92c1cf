package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Acmi1/MS-Dos-Simulator/internal/tui"
	"github.com/Acmi1/MS-Dos-Simulator/pkg/dossim"
)

var _ dossim.Editor = (*TUI)(nil)

// TUI is the full-screen editor.
type TUI struct {
	in   io.Reader
	out  io.Writer
	keys tui.KeyMap
}

// NewTUI creates a TUI editor on the process terminal.
func NewTUI() *TUI {
	return &TUI{in: os.Stdin, out: os.Stdout, keys: tui.DefaultKeyMap()}
}

// Edit runs the editor until the user saves or quits.
func (e *TUI) Edit(ctx context.Context, name string, content []byte) ([]byte, bool, error) {
	m := newModel(name, string(content), e.keys)

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(e.in),
		tea.WithOutput(e.out),
	)
	final, err := p.Run()
	if err != nil {
		return content, false, fmt.Errorf("run editor: %w", err)
	}

	fm, ok := final.(model)
	if !ok || !fm.saved {
		return content, false, nil
	}
	return []byte(fm.result), true, nil
}

// model is the bubbletea model of the editor screen.
type model struct {
	name     string
	area     textarea.Model
	keys     tui.KeyMap
	original string
	result   string
	saved    bool
	width    int
}

func newModel(name, content string, keys tui.KeyMap) model {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(78)
	ta.SetHeight(20)
	ta.SetValue(content)
	ta.Focus()

	return model{
		name:     name,
		area:     ta,
		keys:     keys,
		original: content,
		width:    80,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.area.SetWidth(max(msg.Width-2, 10))
		m.area.SetHeight(max(msg.Height-4, 3))
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Save):
			m.result = m.area.Value()
			m.saved = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	title := " DOS-Simulator Editor - " + m.name + " "
	if m.area.Value() != m.original {
		title += tui.SymbolModified + " "
	}

	status := fmt.Sprintf(" Line: %d, Col: %d ", m.area.Line()+1, m.area.LineInfo().CharOffset+1)
	help := tui.HelpStyle.Render(m.keys.HelpText())

	return lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Width(m.width).Render(title),
		tui.BoxStyle.Render(m.area.View()),
		status+" "+help,
	)
}
