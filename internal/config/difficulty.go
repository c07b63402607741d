package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Difficulty is a level from 0 (easiest) to 4 (hardest).
type Difficulty int

const (
	DifficultyEasiest Difficulty = iota
	DifficultyEasy
	DifficultyNormal
	DifficultyHard
	DifficultyHardest
)

var difficultyNames = [...]string{"easiest", "easy", "normal", "hard", "hardest"}

// String returns the preset name.
func (d Difficulty) String() string {
	if d < 0 || int(d) >= len(difficultyNames) {
		return strconv.Itoa(int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty accepts a preset name or a number 0-4.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range difficultyNames {
		if s == name {
			return Difficulty(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= len(difficultyNames) {
		return 0, fmt.Errorf("config: invalid difficulty %q (use 0-4 or %s)", s, strings.Join(difficultyNames[:], ", "))
	}
	return Difficulty(n), nil
}

// UnmarshalYAML accepts both names and numbers.
func (d *Difficulty) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseDifficulty(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalText lets environment overrides use names too.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
