package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/registry"
)

// MenuItem represents a selectable variant in the menu.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
}

// menuSizes are the board sizes offered by the menu.
var menuSizes = []int{5, 7, 9, 11, 13, 15, 19}

var menuSides = []hex.Side{hex.SideA, hex.SideB, hex.None}

// Option rows below the variant list.
const (
	optionSize = iota
	optionStrength
	optionSide
	optionCount
)

// MenuModel is the Bubble Tea model for the variant picker. Besides the
// variants it offers the board size, computer strength and human side.
type MenuModel struct {
	items       []MenuItem
	online      bool // Show the "Play online" row
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	settings    hexgame.Settings
	sizes       []int
	sizeIdx     int
	strengthIdx int
	sideIdx     int
	quitting    bool
	selected    *MenuItem
	wantsOnline bool
	openHistory bool
}

// NewMenuModel creates a menu starting from the given settings.
func NewMenuModel(settings hexgame.Settings, cfg core.RuntimeConfig, online bool) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title, Description: g.Description})
	}

	sizes := menuSizes
	if !slices.Contains(sizes, settings.Size) {
		sizes = append(slices.Clone(sizes), settings.Size)
		slices.Sort(sizes)
	}

	return MenuModel{
		items:       items,
		online:      online,
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		config:      cfg,
		keyMapper:   NewKeyMapper(),
		settings:    settings,
		sizes:       sizes,
		sizeIdx:     slices.Index(sizes, settings.Size),
		strengthIdx: max(slices.Index(hex.Strengths(), settings.Strength), 0),
		sideIdx:     max(slices.Index(menuSides, settings.HumanSide), 0),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) rows() int {
	n := len(m.items) + optionCount
	if m.online {
		n++
	}
	return n
}

// onlineRow returns the index of the "Play online" row, or -1.
func (m MenuModel) onlineRow() int {
	if !m.online {
		return -1
	}
	return len(m.items)
}

// optionAt returns which option row the cursor is on, or -1.
func (m MenuModel) optionAt(row int) int {
	first := len(m.items)
	if m.online {
		first++
	}
	if row < first {
		return -1
	}
	return row - first
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, m.rows())

	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, m.rows())

	case MenuActionPrev:
		m.cycle(-1)

	case MenuActionNext:
		m.cycle(1)

	case MenuActionSelect:
		switch {
		case m.cursor < len(m.items):
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		case m.cursor == m.onlineRow():
			m.wantsOnline = true
			return m, tea.Quit
		default:
			m.cycle(1)
		}

	case MenuActionHistory:
		m.openHistory = true
		return m, tea.Quit
	}

	return m, nil
}

// cycle steps the option under the cursor.
func (m *MenuModel) cycle(delta int) {
	switch m.optionAt(m.cursor) {
	case optionSize:
		m.sizeIdx = core.Wrap(m.sizeIdx+delta, len(m.sizes))
		m.settings.Size = m.sizes[m.sizeIdx]
	case optionStrength:
		strengths := hex.Strengths()
		m.strengthIdx = core.Wrap(m.strengthIdx+delta, len(strengths))
		m.settings.Strength = strengths[m.strengthIdx]
	case optionSide:
		m.sideIdx = core.Wrap(m.sideIdx+delta, len(menuSides))
		m.settings.HumanSide = menuSides[m.sideIdx]
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("  H E X  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a board", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		b.WriteString(m.line(i, item.Title))
	}
	if m.online {
		b.WriteString(m.line(m.onlineRow(), "Play online"))
	}

	b.WriteString("\n")
	first := m.rows() - optionCount
	b.WriteString(m.line(first+optionSize, fmt.Sprintf("Board size   < %dx%d >", m.settings.Size, m.settings.Size)))
	b.WriteString(m.line(first+optionStrength, fmt.Sprintf("Computer     < %s >", m.settings.Strength)))
	b.WriteString(m.line(first+optionSide, fmt.Sprintf("You play     < %s >", menuSideName(m.settings.HumanSide))))

	b.WriteString("\n")
	if m.cursor < len(m.items) {
		b.WriteString(centerText(theme.MenuDescription.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Play  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(theme.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) line(row int, text string) string {
	if row == m.cursor {
		return centerText(theme.MenuItemActive.Render("> "+text), m.width) + "\n"
	}
	return centerText(theme.MenuItemNormal.Render("  "+text), m.width) + "\n"
}

func menuSideName(s hex.Side) string {
	switch s {
	case hex.SideA:
		return "Red, top to bottom"
	case hex.SideB:
		return "Blue, left to right"
	default:
		return "nobody (watch)"
	}
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Settings returns the base settings with the menu's choices applied.
func (m MenuModel) Settings() hexgame.Settings {
	return m.settings
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the history screen.
func (m MenuModel) WantsHistory() bool {
	return m.openHistory
}

// WantsOnline returns true if user picked online play.
func (m MenuModel) WantsOnline() bool {
	return m.wantsOnline
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}
