package hexgame

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-hex/internal/config"
	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/multiplayer"
	"github.com/vovakirdan/tui-hex/internal/notation"
	"github.com/vovakirdan/tui-hex/internal/registry"
)

// Settings are the per-session choices for a local game.
type Settings struct {
	Size       int
	Shape      hex.Shape
	HumanSide  hex.Side // hex.None: the computer plays both sides
	First      hex.Side
	Strength   hex.Strength
	ThinkDelay time.Duration
	Ladder     config.LadderConfig
}

// SettingsFromConfig converts a validated configuration into Settings.
func SettingsFromConfig(cfg config.HexConfig) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	shape, err := cfg.BoardShape()
	if err != nil {
		return Settings{}, err
	}
	strength, err := cfg.Strength()
	if err != nil {
		return Settings{}, err
	}
	human, err := cfg.HumanSide()
	if err != nil {
		return Settings{}, err
	}
	first, err := cfg.FirstSide()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Size:       cfg.Board.Size,
		Shape:      shape,
		HumanSide:  human,
		First:      first,
		Strength:   strength,
		ThinkDelay: cfg.ThinkDelay(),
		Ladder:     cfg.CPU.Ladder,
	}, nil
}

// DefaultSettings returns the settings of the built-in configuration.
func DefaultSettings() Settings {
	s, err := SettingsFromConfig(config.DefaultHexConfig())
	if err != nil {
		panic(err)
	}
	return s
}

type variant struct {
	id          string
	title       string
	description string
	shape       hex.Shape
	fixedShape  bool
}

var variants = []variant{
	{"hex", "Hex", "Connect your two edges of the board before the computer does", hex.ShapeHexagon, false},
	{"hex_parallelogram", "Hex: Parallelogram", "The full rhombus board, never drawn", hex.ShapeParallelogram, true},
	{"hex_diamond", "Hex: Diamond", "Corners cut away; a full board can end drawn", hex.ShapeDiamond, true},
	{"hex_triangle", "Hex: Triangle", "Only the cells above the anti-diagonal", hex.ShapeTriangle, true},
}

func init() {
	for _, v := range variants {
		registry.Register(v.id, func() registry.Game { return newGame(v) })
	}
}

func lookupVariant(id string) (variant, bool) {
	for _, v := range variants {
		if v.id == id {
			return v, true
		}
	}
	return variant{}, false
}

// New creates the game for a registered variant id.
func New(id string) (*Game, error) {
	v, ok := lookupVariant(id)
	if !ok {
		return nil, fmt.Errorf("hexgame: unknown variant %q", id)
	}
	return newGame(v), nil
}

type computerMove struct {
	coord hex.Coord
	ok    bool
	stats hex.SearchStats
}

// Game is a local Hex game: a human with a cursor against the computer, or
// the computer against itself. Computer moves are worked out on a copy of
// the board in a goroutine so the tick loop never blocks.
type Game struct {
	variant  variant
	settings Settings
	cfg      core.RuntimeConfig
	rng      *rand.Rand

	match    *Match
	cursor   hex.Coord
	paused   bool
	message  string
	started  time.Time
	duration time.Duration
	score    int

	strength  hex.Strength
	ladder    *config.Ladder
	streak    int
	pending   chan computerMove // nil when the computer is not thinking
	wait      int               // ticks left before the computer starts thinking
	lastStats hex.SearchStats
}

func newGame(v variant) *Game {
	g := &Game{variant: v}
	g.Configure(DefaultSettings())
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the variant id.
func (g *Game) ID() string { return g.variant.id }

// Title returns the variant's display name.
func (g *Game) Title() string { return g.variant.title }

// Description returns a one-line summary for menus.
func (g *Game) Description() string { return g.variant.description }

// Configure replaces the session settings and starts a new game. Variants
// with a fixed outline keep it whatever shape the settings name.
func (g *Game) Configure(s Settings) {
	if g.variant.fixedShape {
		s.Shape = g.variant.shape
	}
	g.settings = s
	g.ladder = config.NewLadder(s.Ladder, s.Strength)
	g.streak = 0
	if g.match != nil {
		g.Reset(g.cfg)
	}
}

// Settings returns the active settings.
func (g *Game) Settings() Settings { return g.settings }

// Match returns the current match. Callers must not play moves on it.
func (g *Game) Match() *Match { return g.match }

// Strength returns the computer's strength for the current game, after the
// ladder has been applied.
func (g *Game) Strength() hex.Strength { return g.strength }

// Streak returns the human's current run of wins.
func (g *Game) Streak() int { return g.streak }

// LastSearch returns statistics for the computer's last move.
func (g *Game) LastSearch() hex.SearchStats { return g.lastStats }

// Cursor returns the cursor cell.
func (g *Game) Cursor() hex.Coord { return g.cursor }

// Reset starts a new game with the current settings. The win streak
// survives so the ladder can raise the computer's strength.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.strength = g.ladder.Strength(g.streak)
	g.match = NewMatch(g.settings.Size, g.settings.Shape, g.settings.First)
	g.cursor = StartCursor(g.match.Board())
	g.paused = false
	g.message = ""
	g.score = 0
	g.duration = 0
	g.started = time.Now()
	g.pending = nil
	g.lastStats = hex.SearchStats{}
	g.wait = g.cfg.TicksFor(g.settings.ThinkDelay)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(g.cfg)
		return core.StepResult{State: g.State()}
	}
	if g.match.Over() {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		g.undo()
	}
	g.handleCursor(in)
	if in.Has(core.ActionConfirm) && g.humanToMove() {
		g.play(g.cursor)
	}
	g.stepComputer()

	return core.StepResult{State: g.State()}
}

func (g *Game) handleCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}
}

func (g *Game) moveCursor(dr, dc int) {
	g.cursor = StepCursor(g.match.Board(), g.cursor, dr, dc)
}

// StartCursor returns the centre cell, or the first playable cell when the
// centre lies outside the board's shape.
func StartCursor(b *hex.Board) hex.Coord {
	c := hex.Coord{Row: b.Size() / 2, Col: b.Size() / 2}
	if b.Playable(c) {
		return c
	}
	for r := range b.Size() {
		for col := range b.Size() {
			if b.Playable(hex.Coord{Row: r, Col: col}) {
				return hex.Coord{Row: r, Col: col}
			}
		}
	}
	return c
}

// StepCursor moves from c one step in direction (dr, dc), wrapping at the
// edges and skipping cells outside the board's shape. It returns c when no
// playable cell lies in that direction.
func StepCursor(b *hex.Board, c hex.Coord, dr, dc int) hex.Coord {
	size := b.Size()
	next := c
	for range size {
		next = hex.Coord{Row: core.Wrap(next.Row+dr, size), Col: core.Wrap(next.Col+dc, size)}
		if b.Playable(next) {
			return next
		}
	}
	return c
}

// SetCursor moves the cursor to c if it is on the board.
func (g *Game) SetCursor(c hex.Coord) bool {
	if !g.match.Board().Playable(c) {
		return false
	}
	g.cursor = c
	return true
}

func (g *Game) humanToMove() bool {
	side := g.match.ToMove()
	return side.Valid() && side == g.settings.HumanSide
}

func (g *Game) computerToMove() bool {
	side := g.match.ToMove()
	return side.Valid() && side != g.settings.HumanSide
}

// play places the human's stone at c.
func (g *Game) play(c hex.Coord) {
	if err := g.match.Play(c); err != nil {
		g.message = Explain(err)
		return
	}
	g.message = ""
	g.afterMove()
}

func (g *Game) afterMove() {
	if g.match.Over() {
		g.finish()
		return
	}
	g.wait = g.cfg.TicksFor(g.settings.ThinkDelay)
}

func (g *Game) stepComputer() {
	if !g.computerToMove() {
		return
	}
	if g.pending != nil {
		select {
		case res := <-g.pending:
			g.pending = nil
			g.applyComputer(res)
		default:
		}
		return
	}
	if g.wait > 0 {
		g.wait--
		return
	}
	g.startThinking()
}

func (g *Game) startThinking() {
	board := g.match.Board().Clone()
	side := g.match.ToMove()
	cpu := hex.NewComputer(g.strength, rand.New(rand.NewSource(g.rng.Int63())))
	ch := make(chan computerMove, 1)
	g.pending = ch
	go func() {
		c, ok := cpu.NextMove(board, side)
		ch <- computerMove{coord: c, ok: ok, stats: cpu.LastSearch()}
	}()
}

func (g *Game) applyComputer(res computerMove) {
	if !res.ok {
		return
	}
	g.lastStats = res.stats
	if err := g.match.Play(res.coord); err != nil {
		g.message = Explain(err)
		return
	}
	g.afterMove()
}

// Abandon drops any computer move still being worked out. The game stays
// as it is; Reset or Step pick it up again.
func (g *Game) Abandon() {
	g.pending = nil
	g.wait = g.cfg.TicksFor(g.settings.ThinkDelay)
}

// undo takes back moves until it is the human's turn again, dropping any
// computer move still being worked out.
func (g *Game) undo() {
	human := g.settings.HumanSide
	if !human.Valid() {
		return
	}
	n := 2
	if g.match.ToMove() != human {
		n = 1
	}
	if err := g.match.Undo(n); err != nil {
		g.message = "Nothing to undo"
		return
	}
	g.pending = nil
	g.message = ""
	g.wait = g.cfg.TicksFor(g.settings.ThinkDelay)
}

func (g *Game) finish() {
	g.duration = time.Since(g.started)
	g.pending = nil

	human := g.settings.HumanSide
	if !human.Valid() {
		return
	}
	if g.match.Winner() == human {
		g.score = (g.match.Board().EmptyCount() + 1) * 10 * strengthMultiplier(g.strength)
		g.streak++
	} else {
		g.streak = 0
	}
}

func strengthMultiplier(s hex.Strength) int {
	switch s {
	case hex.StrengthSearch:
		return 4
	case hex.StrengthHeuristic:
		return 2
	default:
		return 1
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.match.Over(),
		Paused:   g.paused,
		Status:   g.status(),
	}
}

func (g *Game) status() string {
	m := g.match
	human := g.settings.HumanSide
	switch {
	case g.paused:
		return "Paused"
	case m.Draw():
		return "Draw: the board is full"
	case m.Winner() != hex.None && human.Valid():
		if m.Winner() == human {
			return fmt.Sprintf("You win! Score %d", g.score)
		}
		return "The computer wins"
	case m.Winner() != hex.None:
		return fmt.Sprintf("%s wins", sideName(m.Winner()))
	case g.message != "":
		return g.message
	case g.humanToMove():
		return fmt.Sprintf("Your move as %s", sideName(human))
	default:
		return fmt.Sprintf("Computer thinking as %s", sideName(m.ToMove()))
	}
}

// Record summarises a finished game for storage.
type Record struct {
	Variant   string
	Size      int
	Shape     string
	Strength  string
	HumanSide string
	First     string
	Winner    string // a, b, or none for a draw
	Moves     string
	MoveCount int
	Duration  time.Duration
}

// Record returns the summary of the current game.
func (g *Game) Record() Record {
	m := g.match
	return Record{
		Variant:   g.variant.id,
		Size:      m.Board().Size(),
		Shape:     m.Board().Shape().String(),
		Strength:  g.strength.String(),
		HumanSide: notation.FormatSide(g.settings.HumanSide),
		First:     notation.FormatSide(m.First()),
		Winner:    notation.FormatSide(m.Winner()),
		Moves:     notation.FormatMoves(m.History()),
		MoveCount: m.MoveCount(),
		Duration:  g.duration,
	}
}

// Explain turns a move error into a short message for the status line.
func Explain(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, hex.ErrOccupied):
		return "That cell is taken"
	case errors.Is(err, hex.ErrNotPlayable), errors.Is(err, hex.ErrOutOfBounds):
		return "That cell is not on the board"
	case errors.Is(err, ErrGameOver):
		return "The game is over"
	case errors.Is(err, multiplayer.ErrNotYourTurn):
		return "Not your turn"
	default:
		return err.Error()
	}
}

func sideName(s hex.Side) string {
	switch s {
	case hex.SideA:
		return "Red (top-bottom)"
	case hex.SideB:
		return "Blue (left-right)"
	default:
		return "nobody"
	}
}
