package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHex loads Hex configuration.
// Search order: customPath -> ~/.hex/configs/hex.yaml -> ./configs/hex.yaml -> embedded default
//
// Each file is decoded over the defaults, so a file only needs the keys it
// changes.
func LoadHex(customPath string) (HexConfig, error) {
	cfg := DefaultHexConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("hex.yaml"), filepath.Join("configs", "hex.yaml")} {
		if path == "" {
			continue
		}
		if c, ok := readValid(path); ok {
			return c, nil
		}
	}

	// Use embedded default YAML
	cfg = DefaultHexConfig()
	if err := yaml.Unmarshal(defaultHexYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultHexConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readValid decodes an optional config file. Missing, unreadable or
// invalid files are skipped so the next location can be tried.
func readValid(path string) (HexConfig, bool) {
	cfg := DefaultHexConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hex", "configs", filename)
}

// ApplyHexPreset modifies the config based on a difficulty preset.
func ApplyHexPreset(cfg *HexConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.CPU.Ladder.Enabled = false
		return
	}
	cfg.CPU.Strength = StrengthForPreset(preset).String()

	// Search already takes visible time on large boards
	switch preset {
	case DifficultyEasy:
		cfg.CPU.ThinkDelayMs = 150
	case DifficultyHard:
		cfg.CPU.ThinkDelayMs = 0
	}
}
