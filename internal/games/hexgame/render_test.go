package hexgame

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/hex"
)

func TestLayoutFitsLargestBoard(t *testing.T) {
	w, h := LayoutSize(hex.MaxSize)
	def := core.DefaultConfig()
	if w > def.ScreenW || h > def.ScreenH {
		t.Errorf("%dx%d board needs %dx%d, more than the default %dx%d screen",
			hex.MaxSize, hex.MaxSize, w, h, def.ScreenW, def.ScreenH)
	}
}

func TestLayoutCells(t *testing.T) {
	l, ok := NewLayout(3, 80, 24)
	if !ok {
		t.Fatal("3x3 board does not fit 80x24")
	}

	x00, y00 := l.Cell(hex.Coord{Row: 0, Col: 0})
	x01, _ := l.Cell(hex.Coord{Row: 0, Col: 1})
	x10, y10 := l.Cell(hex.Coord{Row: 1, Col: 0})
	if x01-x00 != 2 || x10-x00 != 1 || y10-y00 != 1 {
		t.Errorf("cells at (%d,%d) (%d) (%d,%d)", x00, y00, x01, x10, y10)
	}
	if !l.Area.Contains(x00-marginLeft, y00) {
		t.Error("row label outside the layout area")
	}
}

func TestRenderShowsStonesAndCursor(t *testing.T) {
	g := newTestGame(t, "hex", testSettings(3, hex.SideA))
	g.SetCursor(hex.Coord{Row: 0, Col: 0})
	g.Step(frame(core.ActionConfirm))
	stepUntil(t, g, func() bool { return g.Match().MoveCount() == 2 })

	cpu, _ := g.Match().LastMove()
	empty := hex.Coord{Row: -1}
	for c := range g.Match().Board().Empties() {
		empty = c
		break
	}
	g.SetCursor(empty)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	l, _ := NewLayout(3, 80, 24)

	x, y := l.Cell(hex.Coord{Row: 0, Col: 0})
	if cell := screen.GetCell(x, y); cell.Rune != 'X' || cell.Color != core.ColorSideA {
		t.Errorf("human stone drawn as %q in colour %d", cell.Rune, cell.Color)
	}

	x, y = l.Cell(cpu)
	if cell := screen.GetCell(x, y); cell.Rune != 'O' || cell.Color != core.ColorSideBHigh {
		t.Errorf("last computer stone drawn as %q in colour %d", cell.Rune, cell.Color)
	}

	x, y = l.Cell(empty)
	if screen.Get(x, y) != '.' || screen.Get(x-1, y) != '(' || screen.Get(x+1, y) != ')' {
		t.Errorf("cursor cell drawn as %q", screen.Row(y))
	}

	text := screen.String()
	for _, want := range []string{"Hex  3x3", "Your move", "enter place"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen is missing %q", want)
		}
	}
}

func TestRenderHighlightsWinningPath(t *testing.T) {
	m := NewMatch(3, hex.ShapeHexagon, hex.SideA)
	playAll(t, m,
		hex.Coord{Row: 0, Col: 2}, hex.Coord{Row: 0, Col: 0},
		hex.Coord{Row: 1, Col: 1}, hex.Coord{Row: 1, Col: 0},
		hex.Coord{Row: 2, Col: 1},
	)
	if m.Winner() != hex.SideA {
		t.Fatal("setup did not win for A")
	}

	screen := core.NewScreen(80, 24)
	DrawBoard(screen, m, BoardView{Title: "t", Status: "s"})
	l, _ := NewLayout(3, 80, 24)
	for _, c := range m.WinningPath() {
		x, y := l.Cell(c)
		if got := screen.GetCell(x, y).Color; got != core.ColorSideAHigh {
			t.Errorf("path cell %v colour %d, want highlight", c, got)
		}
	}
	x, y := l.Cell(hex.Coord{Row: 0, Col: 0})
	if got := screen.GetCell(x, y).Color; got != core.ColorSideB {
		t.Errorf("ordinary B stone colour %d", got)
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "hex", testSettings(11, hex.SideA))
	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Errorf("small screen shows:\n%s", screen.String())
	}
}
