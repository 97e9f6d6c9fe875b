// hex plays the connection game Hex in the terminal.
//
// Usage:
//
//	hex list                 - List board variants
//	hex play [variant]       - Play against the computer
//	hex menu                 - Pick variants and options interactively
//	hex suggest              - Ask the computer for a move in a position
//	hex bench                - Pit two computer strengths against each other
//	hex history              - Show finished games and your record
//	hex scores <variant>     - Show high scores for a variant
//	hex serve                - Start SSH server for remote and online play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set database path (default: ~/.hex/hex.db)
//	--config <path>      - Use a custom hex.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
//	--theme <name>       - default or mono
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hex/internal/config"
	"github.com/vovakirdan/tui-hex/internal/platform/tui"
	"github.com/vovakirdan/tui-hex/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagTheme      string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hex",
	Short: "Hex - the connection game in your terminal",
	Long: `Hex is played on a rhombus of hexagonal cells. Red connects the top
and bottom edges, Blue connects left and right. The first to link
their two edges with an unbroken chain wins.

Available commands:
  list     - Show all board variants
  play     - Play a game against the computer
  menu     - Interactive variant picker
  suggest  - Ask the computer for a move
  bench    - Computer vs computer matches
  history  - Finished games and your record
  scores   - High scores per variant
  serve    - Start SSH server for remote play

Examples:
  hex list
  hex play hex_diamond --size 9
  hex menu --difficulty hard
  hex suggest --size 7 --moves "d4 c5"
  hex serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hex",
			Level:           level,
		})

		theme, err := tui.ThemeByName(flagTheme)
		if err != nil {
			return err
		}
		tui.SetTheme(theme)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the games database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom hex.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads hex.yaml and applies the --difficulty preset.
func loadConfig() (config.HexConfig, error) {
	cfg, err := config.LoadHex(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyHexPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the database for interactive modes. Without it the game
// still works, it just forgets.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, history disabled", "error", err)
		return nil
	}
	return store
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
