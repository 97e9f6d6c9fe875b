package hexgame

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-hex/internal/hex"
)

// BenchConfig describes a batch of computer-vs-computer games.
type BenchConfig struct {
	Games   int
	Size    int
	Shape   hex.Shape
	A, B    hex.Strength // A plays side A, B plays side B
	Workers int          // Games played at once; <= 0 means one
	Seed    int64        // 0 = time based
	Logger  *log.Logger  // Optional; each finished game is logged at debug level
}

// BenchResult tallies a finished batch.
type BenchResult struct {
	Games      int
	WinsA      int
	WinsB      int
	Draws      int
	FirstWins  int // Games won by the side that moved first
	TotalMoves int
	Elapsed    time.Duration
}

// AvgMoves returns the mean game length.
func (r BenchResult) AvgMoves() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalMoves) / float64(r.Games)
}

// SelfPlay plays one game between two move sources on a fresh board and
// returns the finished match. It stops early when ctx is cancelled.
func SelfPlay(ctx context.Context, size int, shape hex.Shape, first hex.Side, a, b hex.MoveSource) (*Match, error) {
	m := NewMatch(size, shape, first)
	for !m.Over() {
		if err := ctx.Err(); err != nil {
			return m, err
		}
		side := m.ToMove()
		src := a
		if side == hex.SideB {
			src = b
		}
		c, ok := src.NextMove(m.Board().Clone(), side)
		if !ok {
			return m, fmt.Errorf("hexgame: %s has no move after %d moves", side, m.MoveCount())
		}
		if err := m.Play(c); err != nil {
			return m, err
		}
	}
	return m, nil
}

// Bench plays cfg.Games games concurrently. Every game owns its board and
// random source, and the first move alternates between the sides.
func Bench(ctx context.Context, cfg BenchConfig) (BenchResult, error) {
	if cfg.Games <= 0 {
		return BenchResult{}, fmt.Errorf("hexgame: bench needs at least one game, got %d", cfg.Games)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := max(cfg.Workers, 1)

	type outcome struct {
		winner hex.Side
		first  hex.Side
		moves  int
	}
	outcomes := make([]outcome, cfg.Games)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Games {
		g.Go(func() error {
			first := hex.SideA
			if i%2 == 1 {
				first = hex.SideB
			}
			rng := rand.New(rand.NewSource(seed + int64(i)))
			a := hex.NewComputer(cfg.A, rand.New(rand.NewSource(rng.Int63())))
			b := hex.NewComputer(cfg.B, rand.New(rand.NewSource(rng.Int63())))

			m, err := SelfPlay(ctx, cfg.Size, cfg.Shape, first, a, b)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			outcomes[i] = outcome{winner: m.Winner(), first: first, moves: m.MoveCount()}
			if cfg.Logger != nil {
				cfg.Logger.Debug("game finished", "game", i+1, "first", first, "winner", m.Winner(), "moves", m.MoveCount())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BenchResult{}, err
	}

	res := BenchResult{Games: cfg.Games, Elapsed: time.Since(start)}
	for _, o := range outcomes {
		res.TotalMoves += o.moves
		switch o.winner {
		case hex.SideA:
			res.WinsA++
		case hex.SideB:
			res.WinsB++
		default:
			res.Draws++
		}
		if o.winner == o.first {
			res.FirstWins++
		}
	}
	return res, nil
}
