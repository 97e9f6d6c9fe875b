package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hex/internal/games/hexgame"
	"github.com/vovakirdan/tui-hex/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start Hex in interactive menu mode.

Pick a variant, board size, computer strength and your side, then play.
After a game you return to the menu to play again.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change the option under the cursor
  Enter/Space     - Play the variant under the cursor
  Tab             - Game history
  Q               - Quit

Examples:
  hex menu
  hex menu --difficulty hard
  hex menu --db ./hex.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	hexCfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	settings, err := hexgame.SettingsFromConfig(hexCfg)
	if err != nil {
		fail("%v", err)
	}

	store := openStore()
	runErr := tui.RunSession(store, logger, settings, runtimeConfig())

	// Cleanup
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("%v", runErr)
	}
}
