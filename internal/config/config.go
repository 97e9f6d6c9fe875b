// Package config provides YAML-based game configuration loading and
// difficulty presets for the Hex platform.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-hex/internal/hex"
	"github.com/vovakirdan/tui-hex/internal/notation"
)

// HexConfig contains all configuration for a Hex game.
type HexConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Players PlayersConfig `yaml:"players"`
	CPU     CPUConfig     `yaml:"cpu"`
	Online  OnlineConfig  `yaml:"online"`
}

// BoardConfig defines the board dimensions.
type BoardConfig struct {
	Size  int    `yaml:"size"`
	Shape string `yaml:"shape"` // hexagon, parallelogram, diamond, triangle
}

// PlayersConfig defines who plays which side.
type PlayersConfig struct {
	HumanSide string `yaml:"human_side"` // a, b, or none for computer vs computer
	First     string `yaml:"first"`      // side that moves first
}

// CPUConfig defines the computer opponent.
type CPUConfig struct {
	Strength     string       `yaml:"strength"` // sampling, heuristic, search
	ThinkDelayMs int          `yaml:"think_delay_ms"`
	Ladder       LadderConfig `yaml:"ladder"`
}

// LadderConfig defines how the computer gets stronger as the human wins.
type LadderConfig struct {
	Enabled      bool `yaml:"enabled"`
	WinsPerLevel int  `yaml:"wins_per_level"` // Human wins needed per strength step
}

// OnlineConfig defines lobby and turn limits for online matches.
type OnlineConfig struct {
	LobbyTimeoutSecs int `yaml:"lobby_timeout_secs"`
	TurnTimeoutSecs  int `yaml:"turn_timeout_secs"` // 0 = no turn limit
}

// BoardShape returns the configured shape.
func (c HexConfig) BoardShape() (hex.Shape, error) {
	return hex.ParseShape(c.Board.Shape)
}

// Strength returns the configured computer strength.
func (c HexConfig) Strength() (hex.Strength, error) {
	return hex.ParseStrength(c.CPU.Strength)
}

// HumanSide returns the side the human plays, or hex.None.
func (c HexConfig) HumanSide() (hex.Side, error) {
	return notation.ParseSide(c.Players.HumanSide)
}

// FirstSide returns the side that moves first. It defaults to side A.
func (c HexConfig) FirstSide() (hex.Side, error) {
	s, err := notation.ParseSide(c.Players.First)
	if err != nil {
		return hex.None, err
	}
	if s == hex.None {
		return hex.SideA, nil
	}
	return s, nil
}

// ThinkDelay returns the computer's pause before moving.
func (c HexConfig) ThinkDelay() time.Duration {
	return time.Duration(c.CPU.ThinkDelayMs) * time.Millisecond
}

// LobbyTimeout returns how long an unjoined lobby lives.
func (c HexConfig) LobbyTimeout() time.Duration {
	return time.Duration(c.Online.LobbyTimeoutSecs) * time.Second
}

// TurnTimeout returns the online turn limit, zero when unlimited.
func (c HexConfig) TurnTimeout() time.Duration {
	return time.Duration(c.Online.TurnTimeoutSecs) * time.Second
}

// Validate checks that every field holds a usable value.
func (c HexConfig) Validate() error {
	if c.Board.Size < hex.MinSize || c.Board.Size > hex.MaxSize {
		return fmt.Errorf("config: board size %d outside %d..%d", c.Board.Size, hex.MinSize, hex.MaxSize)
	}
	if _, err := c.BoardShape(); err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	if _, err := c.Strength(); err != nil {
		return fmt.Errorf("config: cpu: %w", err)
	}
	if _, err := c.HumanSide(); err != nil {
		return fmt.Errorf("config: players: %w", err)
	}
	if _, err := c.FirstSide(); err != nil {
		return fmt.Errorf("config: players: %w", err)
	}
	if c.CPU.ThinkDelayMs < 0 {
		return fmt.Errorf("config: cpu: negative think delay %d", c.CPU.ThinkDelayMs)
	}
	if c.CPU.Ladder.Enabled && c.CPU.Ladder.WinsPerLevel < 1 {
		return fmt.Errorf("config: cpu: ladder needs wins_per_level >= 1, got %d", c.CPU.Ladder.WinsPerLevel)
	}
	if c.Online.LobbyTimeoutSecs < 0 || c.Online.TurnTimeoutSecs < 0 {
		return fmt.Errorf("config: online: negative timeout")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty converts a flag value into a preset.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// StrengthForPreset returns the computer strength for a difficulty preset.
func StrengthForPreset(preset DifficultyPreset) hex.Strength {
	switch preset {
	case DifficultyEasy:
		return hex.StrengthSampling
	case DifficultyHard:
		return hex.StrengthSearch
	default:
		return hex.StrengthHeuristic
	}
}

// IsFixedPreset returns true if the preset disables the strength ladder.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
