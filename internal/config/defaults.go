package config

import (
	_ "embed"
)

//go:embed defaults/hex.yaml
var defaultHexYAML []byte

// DefaultHexConfig returns the default Hex configuration.
func DefaultHexConfig() HexConfig {
	return HexConfig{
		Board: BoardConfig{
			Size:  11,
			Shape: "hexagon",
		},
		Players: PlayersConfig{
			HumanSide: "a",
			First:     "a",
		},
		CPU: CPUConfig{
			Strength:     "heuristic",
			ThinkDelayMs: 300,
			Ladder: LadderConfig{
				Enabled:      false,
				WinsPerLevel: 2,
			},
		},
		Online: OnlineConfig{
			LobbyTimeoutSecs: 120,
			TurnTimeoutSecs:  0,
		},
	}
}
