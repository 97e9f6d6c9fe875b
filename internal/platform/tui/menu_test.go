package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/hex"
)

func testMenu(online bool) MenuModel {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 100, 30
	return NewMenuModel(hexgame.DefaultSettings(), cfg, online)
}

func pressMenu(t *testing.T, m MenuModel, keys ...tea.KeyMsg) (MenuModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(MenuModel)
	}
	return m, cmd
}

func TestMenuListsVariants(t *testing.T) {
	m := testMenu(false)
	if len(m.items) < 4 {
		t.Fatalf("menu lists %d variants, want at least 4", len(m.items))
	}

	m, cmd := pressMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().GameID != m.items[0].GameID {
		t.Fatalf("Selected() = %v, want %s", m.Selected(), m.items[0].GameID)
	}
	if cmd == nil {
		t.Error("selecting a variant should return a command")
	}
}

func TestMenuCyclesOptions(t *testing.T) {
	m := testMenu(false)
	down := tea.KeyMsg{Type: tea.KeyDown}
	right := tea.KeyMsg{Type: tea.KeyRight}
	left := tea.KeyMsg{Type: tea.KeyLeft}

	// Walk to the board size row.
	for range m.items {
		m, _ = pressMenu(t, m, down)
	}
	start := m.Settings().Size
	m, _ = pressMenu(t, m, right)
	if m.Settings().Size <= start {
		t.Errorf("size after right = %d, want more than %d", m.Settings().Size, start)
	}
	m, _ = pressMenu(t, m, left)
	if m.Settings().Size != start {
		t.Errorf("size after left = %d, want %d", m.Settings().Size, start)
	}

	m, _ = pressMenu(t, m, down, right)
	if m.Settings().Strength == hexgame.DefaultSettings().Strength {
		t.Error("strength did not change")
	}

	// Enter on an option row cycles it rather than starting a game.
	m, _ = pressMenu(t, m, down, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != nil {
		t.Error("enter on an option row selected a variant")
	}
	if m.Settings().HumanSide != hex.SideB {
		t.Errorf("HumanSide = %v, want side B", m.Settings().HumanSide)
	}

	// The cursor wraps back to the first variant.
	m, _ = pressMenu(t, m, down)
	if m.cursor != 0 {
		t.Errorf("cursor = %d after wrapping, want 0", m.cursor)
	}
}

func TestMenuKeepsCustomSize(t *testing.T) {
	settings := hexgame.DefaultSettings()
	settings.Size = 8
	m := NewMenuModel(settings, core.DefaultConfig(), false)
	if m.sizes[m.sizeIdx] != 8 {
		t.Errorf("size index points at %d, want 8", m.sizes[m.sizeIdx])
	}
}

func TestMenuHistoryAndOnline(t *testing.T) {
	m, _ := pressMenu(t, testMenu(false), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsHistory() {
		t.Error("tab should open the history")
	}

	m = testMenu(true)
	for range m.items {
		m, _ = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = pressMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.WantsOnline() {
		t.Error("enter on the online row should start online play")
	}

	m, _ = pressMenu(t, testMenu(false), tea.KeyMsg{Type: tea.KeyEsc})
	if m.IsQuitting() {
		t.Error("esc should not leave the main menu")
	}
	m, _ = pressMenu(t, m, runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}
}
