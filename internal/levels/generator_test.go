package levels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-badges/internal/badges"
	"github.com/vovakirdan/tui-badges/internal/levels"
)

func countC0(ids []badges.BadgeID) int {
	n := 0
	for _, id := range ids {
		if id == badges.BadgeC0 {
			n++
		}
	}
	return n
}

func TestLevelZeroPerTier(t *testing.T) {
	g := levels.New(levels.NewSeededSource(1))

	tests := []struct {
		difficulty int
		want       []badges.BadgeID
	}{
		{0, []badges.BadgeID{"f0", "s0", "s1"}},
		{1, []badges.BadgeID{"f0", "s0", "s1"}},
		{2, []badges.BadgeID{"f0", "s0", "s1", "c0"}},
		{3, []badges.BadgeID{"f0", "s0", "s1", "c0"}},
		{4, []badges.BadgeID{"f0", "s0", "s1", "c0", "c0"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Level(tt.difficulty, 0), "difficulty %d", tt.difficulty)
	}
}

func TestFixedLevelsAreDeterministic(t *testing.T) {
	a := levels.New(levels.NewSeededSource(1))
	b := levels.New(levels.NewSeededSource(999))

	for d := 0; d <= 4; d++ {
		for n := 0; n < 50; n++ {
			require.Equal(t, a.Level(d, n), b.Level(d, n), "difficulty %d level %d", d, n)
		}
	}
}

func TestTableLevelsCycle(t *testing.T) {
	g := levels.New(nil)
	// Templates repeat every 12 levels from level 6.
	assert.Equal(t, g.Level(2, 6), g.Level(2, 18))
	assert.NotEqual(t, g.Level(2, 6), g.Level(2, 7))
}

func TestProceduralLevelsMeetGrumpyCatFloor(t *testing.T) {
	minC0 := []int{0, 1, 2, 3, 4}
	g := levels.New(levels.NewSeededSource(42))

	for d := 0; d <= 4; d++ {
		for n := 50; n < 400; n++ {
			lvl := g.Level(d, n)
			require.GreaterOrEqual(t, countC0(lvl), minC0[d], "difficulty %d level %d", d, n)
			require.NotEmpty(t, lvl)
		}
	}
}

func TestProceduralLevelsDifferOnlyInGrumpyCats(t *testing.T) {
	a := levels.New(levels.NewSeededSource(7))
	b := levels.New(levels.NewSeededSource(8))

	strip := func(ids []badges.BadgeID) []badges.BadgeID {
		var out []badges.BadgeID
		for _, id := range ids {
			if id != badges.BadgeC0 {
				out = append(out, id)
			}
		}
		return out
	}

	for n := 50; n < 150; n++ {
		assert.Equal(t, strip(a.Level(3, n)), strip(b.Level(3, n)), "level %d", n)
	}
}

func TestSeededSourceReproducible(t *testing.T) {
	a := levels.New(levels.NewSeededSource(12345))
	b := levels.New(levels.NewSeededSource(12345))

	for n := 50; n < 100; n++ {
		assert.Equal(t, a.Level(4, n), b.Level(4, n))
	}
}

func TestLevelReturnsCopy(t *testing.T) {
	g := levels.New(nil)
	lvl := g.Level(2, 0)
	lvl[0] = badges.BadgeC2

	assert.Equal(t, badges.BadgeF0, g.Level(2, 0)[0])
}

func TestNewSource(t *testing.T) {
	src, err := levels.NewSource()
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		v := src.IntN(2)
		assert.True(t, v == 0 || v == 1)
	}
}
