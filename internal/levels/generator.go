// Package levels generates the badge sequence of each level.
//
// Levels 0-49 come from fixed per-tier tables. Later levels pick a template
// through a fixed index table and then top up grumpy cats, which is the only
// random step.
package levels

import (
	"github.com/vovakirdan/tui-badges/internal/badges"
)

// Generator produces level boards. It is safe to share only if its Source is.
type Generator struct {
	src Source
}

// New returns a Generator drawing extra cats from src.
func New(src Source) *Generator {
	if src == nil {
		src = NewSeededSource(0)
	}
	return &Generator{src: src}
}

var _ badges.LevelSource = (*Generator)(nil)

// Level returns the badge sequence of level index for the given difficulty.
// The returned slice is owned by the caller.
func (g *Generator) Level(difficulty, index int) []badges.BadgeID {
	if difficulty < 0 {
		difficulty = 0
	}
	if difficulty >= len(minGrumpyCats) {
		difficulty = len(minGrumpyCats) - 1
	}
	if index < 0 {
		index = 0
	}
	tier := tierOf(difficulty)
	table := templates[tier]

	switch {
	case index < len(introLevels[tier]):
		return clone(introLevels[tier][index])
	case index < 50:
		return clone(table[(index-6)%len(table)])
	}

	pick := pickTable[(index-6)%len(pickTable)] % len(table)
	out := clone(table[pick])
	required := minGrumpyCats[difficulty] + g.src.IntN(2)
	for count(out, badges.BadgeC0) < required {
		out = append(out, badges.BadgeC0)
	}
	return out
}

// IsProcedural reports whether level index goes through the pick table.
func IsProcedural(index int) bool {
	return index >= 50
}

func clone(ids []badges.BadgeID) []badges.BadgeID {
	out := make([]badges.BadgeID, len(ids))
	copy(out, ids)
	return out
}

func count(ids []badges.BadgeID, id badges.BadgeID) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}
