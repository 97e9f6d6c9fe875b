package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hex/internal/registry"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the page sidebar
	sidebarWidth       = 24  // Width of the page sidebar
	maxRows            = 100 // Max rows to load per page
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
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
		NextPage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
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

type pageKind int

const (
	pageRecent  pageKind = iota // Latest finished games
	pageRecords                 // Human record per computer strength
	pageScores                  // High scores of one variant
)

type historyPage struct {
	kind   pageKind
	title  string
	gameID string // pageScores only
}

// HistoryModel is the Bubble Tea model for the history screen: recent
// games, the human's record per computer strength, and high scores.
type HistoryModel struct {
	pages       []historyPage
	page        int
	store       *storage.Store
	rows        []table.Row
	summary     string
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	pages := []historyPage{
		{kind: pageRecent, title: "Recent games"},
		{kind: pageRecords, title: "Record vs computer"},
	}
	for _, g := range registry.List() {
		pages = append(pages, historyPage{kind: pageScores, title: g.Title, gameID: g.ID})
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		pages:       pages,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// columns returns the table columns of a page.
func columns(kind pageKind) []table.Column {
	switch kind {
	case pageRecent:
		return []table.Column{
			{Title: "Date", Width: 12},
			{Title: "Board", Width: 18},
			{Title: "Computer", Width: 10},
			{Title: "Result", Width: 7},
			{Title: "Moves", Width: 5},
		}
	case pageRecords:
		return []table.Column{
			{Title: "Computer", Width: 10},
			{Title: "Won", Width: 5},
			{Title: "Lost", Width: 5},
			{Title: "Drawn", Width: 5},
			{Title: "Played", Width: 6},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 18},
		}
	}
}

// createTable creates a new table sized to the screen.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(columns(m.pages[m.page].kind)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, summary and help
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

// load reads the current page from the store and fills the table.
func (m *HistoryModel) load() {
	m.rows, m.summary, m.loadErr = nil, "", nil
	if m.store != nil {
		p := m.pages[m.page]
		switch p.kind {
		case pageRecent:
			m.rows, m.loadErr = m.recentRows()
		case pageRecords:
			m.rows, m.loadErr = m.recordRows()
		case pageScores:
			m.rows, m.summary, m.loadErr = m.scoreRows(p.gameID)
		}
	}

	// Rows go first so they never outnumber the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(columns(m.pages[m.page].kind))
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *HistoryModel) recentRows() ([]table.Row, error) {
	games, err := m.store.RecentGames(maxRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(games))
	for i, g := range games {
		result := g.HumanResult()
		if result == "" {
			result = "cpu " + g.Winner
		}
		rows[i] = table.Row{
			g.CreatedAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%s %dx%d", g.Shape, g.Size, g.Size),
			g.Strength,
			result,
			fmt.Sprintf("%d", g.MoveCount),
		}
	}
	return rows, nil
}

func (m *HistoryModel) recordRows() ([]table.Row, error) {
	records, err := m.store.StrengthRecords()
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{
			r.Strength,
			fmt.Sprintf("%d", r.Wins),
			fmt.Sprintf("%d", r.Losses),
			fmt.Sprintf("%d", r.Draws),
			fmt.Sprintf("%d", r.Played()),
		}
	}
	return rows, nil
}

func (m *HistoryModel) scoreRows(gameID string) ([]table.Row, string, error) {
	scores, err := m.store.TopScores(gameID, maxRows)
	if err != nil {
		return nil, "", err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	var summary string
	stats, err := m.store.AllVariantStats()
	if err != nil {
		return nil, "", err
	}
	if vs, ok := stats[gameID]; ok {
		summary = fmt.Sprintf("%d winning games  best %d  average %.0f", vs.GamesCount, vs.HighScore, vs.AvgScore)
	}
	return rows, summary, nil
}

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

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPage):
			m.page = (m.page + 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			m.page = (m.page + len(m.pages) - 1) % len(m.pages)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	title := fmt.Sprintf("HISTORY - %s", m.pages[m.page].title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.summary != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.summary, m.width))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the page list beside the table.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	for i, p := range m.pages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.page {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := p.title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current page name above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	b.WriteString(centerText("< "+activeTabStyle.Render(m.pages[m.page].title)+" >", m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an explanation when it is empty.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("History is unavailable:\nthe database could not be opened.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not read history:\n" + m.loadErr.Error())
	case len(m.rows) == 0 && m.pages[m.page].kind == pageScores:
		return emptyStyle.Render("No scores recorded yet.\nBeat the computer to set one!")
	case len(m.rows) == 0:
		return emptyStyle.Render("No games recorded yet.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
