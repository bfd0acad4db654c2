package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shiroinock/pretty-history-for-claude-code/parser"
)

// ErrPickerCancelled is returned when the user quits the picker without
// choosing a session.
var ErrPickerCancelled = errors.New("no session selected")

const pickerVisibleRows = 15

// pickerModel is the interactive session chooser. It draws on stderr so
// the chosen session's rendered transcript on stdout stays pipeable.
type pickerModel struct {
	sessions []parser.SessionInfo
	filtered []parser.SessionInfo
	input    textinput.Model
	cursor   int
	offset   int
	choice   *parser.SessionInfo
	now      time.Time
}

func newPickerModel(sessions []parser.SessionInfo) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter sessions"
	ti.Prompt = "/ "
	ti.Focus()

	return pickerModel{
		sessions: sessions,
		filtered: sessions,
		input:    ti,
		now:      time.Now(),
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.cursor < len(m.filtered) {
				s := m.filtered[m.cursor]
				m.choice = &s
			}
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			m.clampOffset()
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			m.clampOffset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, cmd
}

func (m *pickerModel) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.sessions
	} else {
		var out []parser.SessionInfo
		for _, s := range m.sessions {
			if strings.Contains(strings.ToLower(s.Project), query) ||
				strings.Contains(strings.ToLower(s.Session), query) {
				out = append(out, s)
			}
		}
		m.filtered = out
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
		m.offset = 0
	}
	m.clampOffset()
}

func (m *pickerModel) clampOffset() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+pickerVisibleRows {
		m.offset = m.cursor - pickerVisibleRows + 1
	}
}

var (
	pickerTitleStyle    = lipgloss.NewStyle().Bold(true)
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ac("4", "75"))
	pickerMetaStyle     = lipgloss.NewStyle().Foreground(ac("245", "240"))
)

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render("Select a session") + "\n")
	b.WriteString(m.input.View() + "\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(pickerMetaStyle.Render("  no matching sessions") + "\n")
		return b.String()
	}

	end := m.offset + pickerVisibleRows
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := m.offset; i < end; i++ {
		s := m.filtered[i]
		line := fmt.Sprintf("%s  %s  %s",
			s.Project,
			pickerMetaStyle.Render(formatRelativeTime(s.ModTime, m.now)),
			pickerMetaStyle.Render(formatSize(s.Size)))
		if i == m.cursor {
			b.WriteString(pickerSelectedStyle.Render("▸ ") + pickerSelectedStyle.Render(s.Project) +
				strings.TrimPrefix(line, s.Project) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + pickerMetaStyle.Render(fmt.Sprintf("%d/%d  enter: open  esc: cancel", m.cursor+1, len(m.filtered))) + "\n")
	return b.String()
}

// pickSession runs the interactive chooser over the given sessions.
func pickSession(sessions []parser.SessionInfo) (parser.SessionInfo, error) {
	p := tea.NewProgram(newPickerModel(sessions), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return parser.SessionInfo{}, err
	}
	m, ok := final.(pickerModel)
	if !ok || m.choice == nil {
		return parser.SessionInfo{}, ErrPickerCancelled
	}
	return *m.choice, nil
}
