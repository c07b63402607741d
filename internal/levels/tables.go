package levels

import "github.com/vovakirdan/tui-badges/internal/badges"

const (
	f0 = badges.BadgeF0
	s0 = badges.BadgeS0
	s1 = badges.BadgeS1
	s2 = badges.BadgeS2
	t0 = badges.BadgeT0
	c1 = badges.BadgeC1
	c2 = badges.BadgeC2
	c0 = badges.BadgeC0
)

// Difficulty tiers share level tables: {0,1}, {2,3} and {4}.
const tierCount = 3

func tierOf(difficulty int) int {
	switch {
	case difficulty <= 1:
		return 0
	case difficulty <= 3:
		return 1
	default:
		return 2
	}
}

// introLevels are levels 0-5 of each tier.
var introLevels = [tierCount][6][]badges.BadgeID{
	{
		{f0, s0, s1},
		{f0, s0, t0},
		{s0, s1, t0, c1},
		{f0, s0, s1, s2, c0},
		{f0, s0, t0, c1, c0},
		{s0, s1, s2, t0, c1, c0},
	},
	{
		{f0, s0, s1, c0},
		{f0, s0, t0, c0},
		{s0, s1, t0, c1, c0},
		{f0, s0, s1, s2, c1, c0},
		{f0, s0, t0, c1, c2, c0},
		{s0, s1, s2, t0, c2, c0, c0},
	},
	{
		{f0, s0, s1, c0, c0},
		{f0, s0, t0, c1, c0, c0},
		{s0, s1, t0, c1, c0, c0},
		{f0, s0, s1, s2, c1, c0, c0},
		{f0, s0, t0, c1, c2, c0, c0},
		{s0, s1, s2, t0, c1, c2, c0, c0},
	},
}

// templates cover levels 6-49 in order and feed the pick table beyond.
var templates = [tierCount][][]badges.BadgeID{
	{
		{f0, s0, s1, t0, c0},
		{s0, s1, s2, c1},
		{f0, t0, c1, c2},
		{f0, s0, s1, s2, t0},
		{s0, s1, c1, c2, c0},
		{f0, s0, t0, c2},
		{f0, s0, s1, s2, c1, c0},
		{s0, t0, c1, c2, c0},
		{f0, s0, s1, t0, c1},
		{f0, s0, s1, s2, c2, c0},
		{s0, s1, t0, c1, c2},
		{f0, s0, s1, s2, t0, c1, c2, c0},
	},
	{
		{f0, s0, s1, t0, c0},
		{s0, s1, s2, c1, c0},
		{f0, t0, c1, c2, c0},
		{f0, s0, s1, s2, t0, c0},
		{s0, s1, c1, c2, c0, c0},
		{f0, s0, t0, c2, c0},
		{f0, s0, s1, s2, c1, c0, c0},
		{s0, t0, c1, c2, c0},
		{f0, s0, s1, t0, c1, c0},
		{f0, s0, s1, s2, c2, c0, c0},
		{s0, s1, t0, c1, c2, c0},
		{f0, s0, s1, s2, t0, c1, c2, c0, c0},
	},
	{
		{f0, s0, s1, t0, c0, c0},
		{s0, s1, s2, c1, c0, c0},
		{f0, t0, c1, c2, c0, c0},
		{f0, s0, s1, s2, t0, c0, c0},
		{s0, s1, c1, c2, c0, c0, c0},
		{f0, s0, t0, c2, c0, c0},
		{f0, s0, s1, s2, c1, c0, c0, c0},
		{s0, t0, c1, c2, c0, c0},
		{f0, s0, s1, t0, c1, c0, c0},
		{f0, s0, s1, s2, c2, c0, c0, c0},
		{s0, s1, t0, c1, c2, c0, c0},
		{f0, s0, s1, s2, t0, c1, c2, c0, c0, c0},
	},
}

// pickTable chooses a template for levels 50 and above.
var pickTable = [100]int{
	622, 838, 789, 345, 265, 828, 153, 374, 735, 775,
	885, 377, 342, 17, 237, 717, 694, 311, 922, 608,
	127, 885, 51, 416, 366, 766, 306, 699, 616, 86,
	186, 127, 31, 207, 334, 3, 240, 307, 308, 844,
	425, 410, 215, 837, 997, 473, 636, 701, 747, 679,
	383, 422, 957, 992, 859, 252, 876, 727, 57, 967,
	765, 585, 264, 379, 285, 386, 233, 853, 223, 547,
	154, 957, 438, 702, 56, 837, 885, 681, 872, 385,
	30, 336, 837, 982, 955, 715, 531, 415, 370, 97,
	681, 425, 936, 734, 451, 339, 808, 900, 61, 119,
}

// minGrumpyCats is the c0 floor for generated levels before the random
// extra cat.
var minGrumpyCats = [...]int{0, 1, 2, 3, 4}
