package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-quest/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the slot sidebar
	sidebarWidth       = 24  // Width of slot sidebar
	maxBattles         = 100 // Max battles to load
)

// HistorySource is the part of the store the history screen reads.
type HistorySource interface {
	ListSaves() ([]storage.Save, error)
	RecentBattles(slot string, limit int) ([]storage.BattleRecord, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextSlot key.Binding
	PrevSlot key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSlot, k.PrevSlot, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSlot, k.PrevSlot},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSlot: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next slot"),
		),
		PrevSlot: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev slot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists save slots and the recent battles of the selected one.
type HistoryModel struct {
	source      HistorySource
	saves       []storage.Save
	cursor      int
	battles     []storage.BattleRecord
	err         error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		source:      source,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	saves, err := source.ListSaves()
	if err != nil {
		m.err = err
		return m
	}
	m.saves = saves
	if len(m.saves) > 0 {
		m.loadBattles()
	}
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 10},
		{Title: "Enemy", Width: 16},
		{Title: "Outcome", Width: 9},
		{Title: "Turns", Width: 6},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
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

// loadBattles loads the battles of the selected slot.
func (m *HistoryModel) loadBattles() {
	battles, err := m.source.RecentBattles(m.saves[m.cursor].Slot, maxBattles)
	if err != nil {
		m.err = err
		m.battles = nil
	} else {
		m.err = nil
		m.battles = battles
	}

	rows := make([]table.Row, len(m.battles))
	for i, b := range m.battles {
		rows[i] = table.Row{
			b.LevelID,
			b.Enemy,
			b.Outcome,
			fmt.Sprintf("%d", b.Turns),
			b.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Selected returns the highlighted save, or nil.
func (m HistoryModel) Selected() *storage.Save {
	if m.cursor < 0 || m.cursor >= len(m.saves) {
		return nil
	}
	return &m.saves[m.cursor]
}

// Battles returns the battles shown in the table.
func (m HistoryModel) Battles() []storage.BattleRecord { return m.battles }

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextSlot):
			if len(m.saves) > 0 {
				m.cursor = (m.cursor + 1) % len(m.saves)
				m.loadBattles()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevSlot):
			if len(m.saves) > 0 {
				m.cursor = (m.cursor - 1 + len(m.saves)) % len(m.saves)
				m.loadBattles()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		rows := m.table.Rows()
		m.table = m.createTable()
		m.table.SetRows(rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "CHRONICLE"
	if s := m.Selected(); s != nil {
		title = fmt.Sprintf("CHRONICLE - %s", s.Slot)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		side := panelStyle.Width(sidebarWidth).Render(m.renderSidebar())
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", body)
	} else if s := m.Selected(); s != nil {
		b.WriteString(centerText(fmt.Sprintf("< %s >", s.Slot), m.width))
		b.WriteString("\n")
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar lists the slots with the hero of each.
func (m HistoryModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Saves\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.saves {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		line := fmt.Sprintf("%s (%s %d)", s.Slot, s.Player.Class, s.Player.Level)
		if maxLen := sidebarWidth - 6; len(line) > maxLen {
			line = line[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(cursor + line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.err != nil:
		return emptyStyle.Render("Could not read the chronicle:\n" + m.err.Error())
	case len(m.saves) == 0:
		return emptyStyle.Render("No saved games yet.\nPass a level to create one!")
	case len(m.battles) == 0:
		return emptyStyle.Render("No battles fought in this slot yet.")
	}
	return m.table.View()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunHistory runs the history screen.
func RunHistory(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
