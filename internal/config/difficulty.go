package config

import "github.com/vovakirdan/tui-hex/internal/hex"

// Ladder raises the computer's strength as the human keeps winning.
type Ladder struct {
	cfg  LadderConfig
	base hex.Strength
}

// NewLadder creates a ladder starting at base.
func NewLadder(cfg LadderConfig, base hex.Strength) *Ladder {
	return &Ladder{cfg: cfg, base: base}
}

// SetEnabled enables or disables progression.
func (l *Ladder) SetEnabled(enabled bool) {
	l.cfg.Enabled = enabled
}

// IsEnabled returns whether progression is active.
func (l *Ladder) IsEnabled() bool {
	return l.cfg.Enabled && l.cfg.WinsPerLevel > 0
}

// Strength returns the strength to use after the human has won wins games
// in a row. It never drops below the base or rises past the strongest.
func (l *Ladder) Strength(wins int) hex.Strength {
	if !l.IsEnabled() || wins <= 0 {
		return l.base
	}
	all := hex.Strengths()
	step := int(l.base) + wins/l.cfg.WinsPerLevel
	if step >= len(all) {
		step = len(all) - 1
	}
	return all[step]
}
