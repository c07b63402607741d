package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/badges.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when nothing else loads.
func Default() Config {
	return Config{
		Storage: StorageConfig{Path: "~/.badges/badges.db"},
		Engine:  EngineConfig{Difficulty: DifficultyNormal},
		Log:     LogConfig{Level: "info"},
		Play:    PlayConfig{TickRate: 10, TickSecs: 60},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> ~/.badges/configs/badges.yaml -> ./configs/badges.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("badges.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/badges.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Engine.Difficulty < DifficultyEasiest || c.Engine.Difficulty > DifficultyHardest {
		return fmt.Errorf("config: difficulty %d out of range 0-4", c.Engine.Difficulty)
	}
	if c.Play.TickRate <= 0 {
		return fmt.Errorf("config: play.tick_rate must be positive, got %d", c.Play.TickRate)
	}
	if c.Play.TickSecs < 0 {
		return fmt.Errorf("config: play.tick_secs must not be negative, got %d", c.Play.TickSecs)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".badges", "configs", filename)
}
