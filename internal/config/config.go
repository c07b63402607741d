// Package config provides YAML-based configuration loading for the badge
// engine, with embedded defaults and environment overrides.
package config

// Config contains all configuration for the badges tool.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Engine  EngineConfig  `yaml:"engine"`
	Log     LogConfig     `yaml:"log"`
	Play    PlayConfig    `yaml:"play"`
}

// StorageConfig defines where user records live.
type StorageConfig struct {
	Path string `yaml:"path" env:"BADGES_DB_PATH"`
}

// EngineConfig defines defaults for new users and level generation.
type EngineConfig struct {
	Difficulty Difficulty `yaml:"difficulty" env:"BADGES_DIFFICULTY"`
	Seed       uint64     `yaml:"seed" env:"BADGES_SEED"` // 0 = seed from crypto/rand
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level" env:"BADGES_LOG_LEVEL"`
}

// PlayConfig defines the interactive simulator clock.
type PlayConfig struct {
	TickRate int   `yaml:"tick_rate"`                     // Ticks per real second
	TickSecs int64 `yaml:"tick_secs" env:"BADGES_TICK_SECS"` // Play seconds per tick
}
