package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-merge/internal/config"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

// Choice is what the user picked on the selector.
type Choice int

const (
	ChoiceCampaign Choice = iota
	ChoiceEndless
	ChoiceLevel // Campaign from a chosen level; only reported through Selection.Level
	ChoiceCodex
)

// Selection holds the user's selection from the selector.
type Selection struct {
	Choice     Choice
	Level      int // 0 = start from beginning, otherwise a 1-based level
	Difficulty config.DifficultyPreset
}

// GameID returns the registry id of the selected mode.
func (s Selection) GameID() string {
	if s.Choice == ChoiceEndless {
		return "2048_endless"
	}
	return "2048"
}

var (
	selectorTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectorCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	selectorHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// SelectorModel lets users choose a mode, a starting level and a difficulty.
type SelectorModel struct {
	levels        []t2048.Level
	presets       []config.DifficultyPreset
	cursor        int
	levelCursor   int
	presetCursor  int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     Selection
	choosing      bool
	quitting      bool
}

// NewSelectorModel creates a selector over the given campaign levels.
func NewSelectorModel(levels []t2048.Level, preset config.DifficultyPreset, width, height int) SelectorModel {
	presets := config.Presets()
	presetCursor := 0
	for i, p := range presets {
		if p == preset {
			presetCursor = i
		}
	}

	return SelectorModel{
		levels:       levels,
		presets:      presets,
		presetCursor: presetCursor,
		width:        width,
		height:       height,
		keyMapper:    NewKeyMapper(),
		choosing:     true,
	}
}

// Init initializes the model.
func (m SelectorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SelectorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m SelectorModel) modes() []string {
	return []string{
		fmt.Sprintf("Campaign (%d levels)", len(m.levels)),
		"Endless Mode",
		"Select Level...",
		"Tile Codex",
	}
}

func (m SelectorModel) choose(c Choice, level int) (tea.Model, tea.Cmd) {
	m.choosing = false
	m.selection = Selection{Choice: c, Level: level, Difficulty: m.presets[m.presetCursor]}
	return m, tea.Quit
}

func (m SelectorModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.modes())-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.presetCursor = (m.presetCursor + len(m.presets) - 1) % len(m.presets)
	case MenuActionRight:
		m.presetCursor = (m.presetCursor + 1) % len(m.presets)
	case MenuActionSelect:
		switch Choice(m.cursor) {
		case ChoiceCampaign:
			return m.choose(ChoiceCampaign, 0)
		case ChoiceEndless:
			return m.choose(ChoiceEndless, 0)
		case ChoiceLevel:
			if len(m.levels) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		case ChoiceCodex:
			return m.choose(ChoiceCodex, 0)
		}
	}

	return m, nil
}

func (m SelectorModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose(ChoiceCampaign, m.levelCursor+1)
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m SelectorModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m SelectorModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(selectorTitleStyle.Render(centerText("2 0 4 8", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i, mode := range m.modes() {
		line := centerText("  "+mode, m.width)
		if i == m.cursor {
			line = selectorCursorStyle.Render(centerText("> "+mode, m.width))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.presets[m.presetCursor]), m.width))
	b.WriteString("\n\n")
	b.WriteString(selectorHintStyle.Render(centerText("Enter: Select  |  ←/→: Difficulty  |  Q: Quit", m.width)))

	return b.String()
}

func (m SelectorModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(selectorTitleStyle.Render(centerText("SELECT LEVEL", m.width)))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		text := fmt.Sprintf("%2d. %s (Target: %d)", i+1, lvl.Name, lvl.Target)
		line := centerText("  "+text, m.width)
		if i == m.levelCursor {
			line = selectorCursorStyle.Render(centerText("> "+text, m.width))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.levelCursor < len(m.levels) {
		b.WriteString("\n")
		b.WriteString(centerText("Starts with: "+m.levels[m.levelCursor].Specials(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(selectorHintStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SelectorModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m SelectorModel) IsQuitting() bool {
	return m.quitting
}

// RunSelector runs the mode selection and returns the selection, or nil on quit.
func RunSelector(levels []t2048.Level, preset config.DifficultyPreset, cfg core.RuntimeConfig) (*Selection, error) {
	model := NewSelectorModel(levels, preset, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(SelectorModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
