package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/beep-arcade/internal/core"
)

// DifficultyModel lets users pick a preset before a game starts.
type DifficultyModel struct {
	title     string
	names     []string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  string
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a selector over names, with the cursor on
// current when it is one of them.
func NewDifficultyModel(title string, names []string, current string, width, height int) DifficultyModel {
	cursor := 0
	for i, n := range names {
		if n == current {
			cursor = i
		}
	}
	return DifficultyModel{
		title:     title,
		names:     names,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.names) > 0 {
			m.selected = m.names[m.cursor]
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.back || m.selected != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, name := range m.names {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, name), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or "" if none was chosen.
func (m DifficultyModel) Selected() string {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector asks for one of names. ok is false when the player
// backed out or quit.
func RunDifficultySelector(title string, names []string, cfg core.RuntimeConfig) (name string, ok bool, err error) {
	model := NewDifficultyModel(title, names, cfg.Difficulty, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, isModel := finalModel.(DifficultyModel)
	if !isModel || m.IsQuitting() || m.WantsBack() {
		return "", false, nil
	}

	return m.Selected(), m.Selected() != "", nil
}
