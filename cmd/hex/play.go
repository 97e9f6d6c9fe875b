package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hex/internal/config"
	"github.com/vovakirdan/tui-hex/internal/core"
	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/platform/tui"
	"github.com/vovakirdan/tui-hex/internal/registry"
)

var (
	flagPlayStrength string
	flagPlaySize     int
	flagPlaySide     string
	flagPlayFirst    string
	flagPlayLadder   bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game against the computer",
	Long: `Start a game of Hex against the computer. The variant defaults to "hex".

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Enter/Space       - Place a stone
  U/Backspace       - Undo your last move
  P                 - Pause
  R                 - Restart
  Esc/B             - Leave the game
  Ctrl+S            - Save the board as text under ~/.hex/screenshots
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - The computer picks random cells
  normal - The computer blocks and extends chains
  hard   - The computer searches ahead
  fixed  - Keep the configured strength, no ladder

Examples:
  hex play
  hex play hex_diamond --size 9
  hex play --side b --strength search
  hex play --side none               # Watch the computer play itself
  hex play --difficulty hard --ladder`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayStrength, "strength", "", "Computer strength: sampling, heuristic, search")
	playCmd.Flags().IntVar(&flagPlaySize, "size", 0, "Board size (1-19)")
	playCmd.Flags().StringVar(&flagPlaySide, "side", "", "Your side: a (red, top-bottom), b (blue, left-right), none")
	playCmd.Flags().StringVar(&flagPlayFirst, "first", "", "Side that moves first: a or b")
	playCmd.Flags().BoolVar(&flagPlayLadder, "ladder", false, "Raise the computer's strength as you win")
}

// applyPlayFlags lays explicit command line choices over the config file.
func applyPlayFlags(cmd *cobra.Command, cfg *config.HexConfig) {
	if flagPlayStrength != "" {
		cfg.CPU.Strength = flagPlayStrength
	}
	if flagPlaySize > 0 {
		cfg.Board.Size = flagPlaySize
	}
	if flagPlaySide != "" {
		cfg.Players.HumanSide = flagPlaySide
	}
	if flagPlayFirst != "" {
		cfg.Players.First = flagPlayFirst
	}
	if cmd.Flags().Changed("ladder") {
		cfg.CPU.Ladder.Enabled = flagPlayLadder
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "hex"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if the variant exists
	if !registry.Exists(gameID) {
		fail("unknown variant %q\nRun 'hex list' to see available variants.", gameID)
	}

	hexCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	applyPlayFlags(cmd, &hexCfg)

	settings, err := hexgame.SettingsFromConfig(hexCfg)
	if err != nil {
		fail("%v", err)
	}

	game, err := hexgame.New(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}
	game.Configure(settings)

	store := openStore()
	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
