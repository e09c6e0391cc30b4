package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-merge/internal/grid"
)

// Codex pages
const (
	pageTiles = iota
	pageMerges
	pageCount
)

// RuleHeaders are the column titles of the tile rule table.
var RuleHeaders = []string{"Tile", "Value", "Static", "On merge", "On remove", "Popup"}

// MergeHeaders are the column titles of the merge rule list.
var MergeHeaders = []string{"#", "Pair", "Merges", "Result"}

// RuleRows returns one row per tile kind, empty excluded.
func RuleRows() [][]string {
	var rows [][]string
	for _, a := range grid.RuleTable() {
		if a.Type == grid.TypeEmpty {
			continue
		}
		value := "-"
		if a.Value > 0 {
			value = strconv.Itoa(a.Value)
		}
		rows = append(rows, []string{
			a.Type.String(),
			value,
			yesNo(a.Static),
			effectString(a.OnMerge),
			effectString(a.OnRemove),
			yesNo(a.ShowsResultPopup),
		})
	}
	return rows
}

// MergeRows returns the merge rules in precedence order.
func MergeRows() [][]string {
	rules := grid.MergeRules()
	rows := make([][]string, len(rules))
	for i, r := range rules {
		rows[i] = []string{strconv.Itoa(i + 1), r.Name, yesNo(r.Allowed), r.Description}
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func effectString(e grid.Effect) string {
	if e.IsZero() {
		return "-"
	}
	return e.Visual + "/" + e.Animation
}

// CodexKeyMap defines the key bindings for the codex.
type CodexKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CodexKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CodexKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Back, k.Quit},
	}
}

// DefaultCodexKeyMap returns default key bindings.
func DefaultCodexKeyMap() CodexKeyMap {
	return CodexKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CodexModel is the Bubble Tea model for the tile codex screen.
type CodexModel struct {
	page      int
	table     table.Model
	help      help.Model
	keys      CodexKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewCodexModel creates a new codex model.
func NewCodexModel(width, height int) CodexModel {
	m := CodexModel{
		keys:   DefaultCodexKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// pageData returns the headers, rows and column widths of the current page.
func (m CodexModel) pageData() ([]string, [][]string, []int) {
	if m.page == pageMerges {
		descWidth := max(20, m.width-4-4-12-8-8)
		return MergeHeaders, MergeRows(), []int{4, 12, 8, descWidth}
	}
	return RuleHeaders, RuleRows(), []int{12, 6, 7, 17, 17, 6}
}

// createTable creates the table for the current page.
func (m CodexModel) createTable() table.Model {
	headers, rows, widths := m.pageData()

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the codex model.
func (m CodexModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the codex.
func (m CodexModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.page = (m.page + 1) % pageCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.page = (m.page + pageCount - 1) % pageCount
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the codex.
func (m CodexModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "TILE CODEX - Tiles"
	if m.page == pageMerges {
		title = "TILE CODEX - Merge rules"
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("page %d/%d", m.page+1, pageCount), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to the selector.
func (m CodexModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m CodexModel) IsQuitting() bool {
	return m.quitting
}

// RunCodex runs the codex screen.
// Returns true if user wants to go back to the selector, false if quitting.
func RunCodex(width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewCodexModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(CodexModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
