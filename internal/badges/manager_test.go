package badges

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLevels serves fixed boards; indexes past the end repeat the last one.
type stubLevels [][]BadgeID

func (s stubLevels) Level(_, index int) []BadgeID {
	if index >= len(s) {
		index = len(s) - 1
	}
	out := make([]BadgeID, len(s[index]))
	copy(out, s[index])
	return out
}

var tier1Levels = stubLevels{
	{BadgeF0, BadgeS0, BadgeS1, BadgeC0},
	{BadgeF0, BadgeS0, BadgeT0, BadgeC0},
}

func TestFreshGameStartUnlocksFeather(t *testing.T) {
	m := New("", 2, tier1Levels)

	badge, ok := m.OnGameStarted(0)
	require.True(t, ok)
	assert.Equal(t, BadgeF0, badge)

	want := Board{
		{Badge: BadgeF0, IsActive: true, IsLastModified: true},
		{Badge: BadgeS0},
		{Badge: BadgeS1},
		{Badge: BadgeC0},
	}
	assert.Equal(t, want, m.Board())

	last, ok := m.LastBadge()
	require.True(t, ok)
	assert.Equal(t, BadgeF0, last)
}

func TestPenaltyReleasesGrumpyCat(t *testing.T) {
	m := New("", 2, tier1Levels)
	m.OnGameStarted(0)

	badge, ok := m.OnPenalty(61000)
	require.True(t, ok)
	assert.Equal(t, BadgeC0, badge)
	assert.Equal(t, 15, m.GrumpyCatHealthpoints())
	assert.Equal(t, 1, m.state.C0HPNextDelta)
	assert.Equal(t, int64(61000), m.state.C0LockStartedAt)
	assert.Equal(t, 1, m.CountActiveGrumpyCatsOnBoard())

	// The previous unlock is no longer marked.
	assert.False(t, m.Board()[0].IsLastModified)
	assert.True(t, m.Board()[3].IsLastModified)
}

func TestPenaltyVisitsEveryCounter(t *testing.T) {
	m := New("", 2, tier1Levels)
	m.OnGameStarted(0)
	require.Equal(t, "0,5", *m.state.Counters.Star)

	badge, ok := m.OnPenalty(100)
	require.True(t, ok)
	assert.Equal(t, BadgeC0, badge, "cat counter hits first")
	require.NotNil(t, m.state.Counters.Star)
	assert.True(t, strings.HasSuffix(*m.state.Counters.Star, ",skip_next"),
		"star counter still saw the penalty: %s", *m.state.Counters.Star)
}

func TestReviewStopsAtFirstCounterHit(t *testing.T) {
	stored := `{
		"badges_state": {
			"TimeBadgeCounter": "next_fire_at=100",
			"StarBadgeCounter": "2,5"
		},
		"board": [{"badge": "t0"}, {"badge": "s0"}]
	}`
	m := New(stored, 2, tier1Levels)

	badge, ok := m.OnReview(200)
	require.True(t, ok)
	assert.Equal(t, BadgeT0, badge)

	require.NotNil(t, m.state.Counters.Star)
	assert.Equal(t, "2,5", *m.state.Counters.Star, "star counter not visited")
	assert.Nil(t, m.state.Counters.Feather)
}

func TestPenaltyOnEasiestDifficultyKeepsCatAway(t *testing.T) {
	m := New("", 0, tier1Levels)
	m.OnGameStarted(0)

	_, ok := m.OnPenalty(100)
	assert.False(t, ok)
	assert.Zero(t, m.CountActiveGrumpyCatsOnBoard())
}

func TestReviewsShooGrumpyCat(t *testing.T) {
	stored := `{
		"board": [
			{"badge": "f0", "is_active": true, "is_last_modified": false},
			{"badge": "s0", "is_active": false, "is_last_modified": false},
			{"badge": "c0", "is_active": true, "is_last_modified": false},
			{"badge": "c0", "is_active": true, "is_last_modified": true}
		],
		"level": 0,
		"c0_hp": 14,
		"c0_hp_next_delta": 3,
		"c0_lock_started_at": 100
	}`
	m := New(stored, 2, tier1Levels)

	for i, want := range []int{11, 8, 5, 2} {
		_, ok := m.OnReview(int64(200 + i*100))
		require.False(t, ok)
		require.Equal(t, want, m.GrumpyCatHealthpoints())
	}

	badge, ok := m.OnReview(600)
	require.True(t, ok)
	assert.Equal(t, BadgeC0Removed, badge)
	assert.Equal(t, 15, m.GrumpyCatHealthpoints())
	assert.Equal(t, 1, m.CountActiveGrumpyCatsOnBoard())
	assert.True(t, m.Board()[2].IsLastModified)
	assert.False(t, m.Board()[2].IsActive)
	// One cat is still locked, so the lock keeps running.
	assert.Zero(t, m.state.C0ActiveTimePenalty)
}

func TestReviewsShooOnlyCat(t *testing.T) {
	stored := `{
		"board": [
			{"badge": "f0", "is_active": true},
			{"badge": "s0"},
			{"badge": "c0", "is_active": true}
		],
		"c0_hp": 14, "c0_hp_next_delta": 3, "c0_lock_started_at": 100
	}`
	m := New(stored, 2, tier1Levels)

	for i, want := range []int{11, 8, 5, 2} {
		_, ok := m.OnReview(int64(200 + i*100))
		require.False(t, ok)
		require.Equal(t, want, m.GrumpyCatHealthpoints())
	}

	badge, ok := m.OnReview(600)
	require.True(t, ok)
	assert.Equal(t, BadgeC0Removed, badge)
	// No cat left, so health drops to zero instead of resetting.
	assert.Zero(t, m.GrumpyCatHealthpoints())
	assert.Zero(t, m.CountActiveGrumpyCatsOnBoard())
	assert.Equal(t, int64(500), m.state.C0ActiveTimePenalty)
}

func TestLastCatShooedAccumulatesLockedTime(t *testing.T) {
	stored := `{
		"board": [{"badge": "s0"}, {"badge": "c0", "is_active": true}],
		"c0_hp": 2, "c0_hp_next_delta": 3, "c0_lock_started_at": 100
	}`
	m := New(stored, 2, tier1Levels)

	badge, ok := m.OnReview(600)
	require.True(t, ok)
	assert.Equal(t, BadgeC0Removed, badge)
	assert.Zero(t, m.GrumpyCatHealthpoints())
	assert.Equal(t, int64(500), m.state.C0ActiveTimePenalty)
}

func TestPenaltyStacksSecondCat(t *testing.T) {
	stored := `{
		"board": [{"badge": "s0"}, {"badge": "c0", "is_active": true}, {"badge": "c0"}],
		"c0_hp": 9, "c0_lock_started_at": 50
	}`
	m := New(stored, 3, tier1Levels)

	badge, ok := m.OnPenalty(70)
	require.True(t, ok)
	assert.Equal(t, BadgeC0, badge)
	assert.Equal(t, 2, m.CountActiveGrumpyCatsOnBoard())
	assert.Equal(t, 9, m.GrumpyCatHealthpoints(), "stacked cats share health")
	assert.Equal(t, int64(50), m.state.C0LockStartedAt)

	_, ok = m.OnPenalty(80)
	assert.False(t, ok, "no third cat slot")
}

func TestEventsBypassCountersWhileCatActive(t *testing.T) {
	m := New("", 2, tier1Levels)
	m.OnGameStarted(0)
	m.OnPenalty(10)
	before := m.state.Counters

	for _, ev := range []Event{EventFormulaUpdated, EventPrompt, EventGameStarted} {
		_, ok := m.OnEvent(ev, 20)
		assert.False(t, ok, ev.String())
	}
	assert.Equal(t, before, m.state.Counters)
	assert.Equal(t, 3, m.state.C0HPNextDelta)
}

func TestPromptSetsSmallerDamage(t *testing.T) {
	stored := `{"board": [{"badge": "s0"}, {"badge": "c0", "is_active": true}], "c0_hp": 10}`
	m := New(stored, 2, tier1Levels)

	m.OnPrompt(1)
	m.OnReview(2)
	assert.Equal(t, 8, m.GrumpyCatHealthpoints())
}

func TestShooCat(t *testing.T) {
	m := New("", 2, tier1Levels)

	_, err := m.OnShooCat(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.True(t, errors.Is(err, ErrNoGrumpyCat))

	m.OnGameStarted(0)
	m.OnPenalty(100)
	badge, err := m.OnShooCat(400)
	require.NoError(t, err)
	assert.Equal(t, BadgeC0Removed, badge)
	assert.Zero(t, m.CountActiveGrumpyCatsOnBoard())
	assert.Equal(t, int64(300), m.state.C0ActiveTimePenalty)
}

func TestForceBadgeOpen(t *testing.T) {
	m := New("", 2, tier1Levels)

	for _, want := range []BadgeID{BadgeF0, BadgeS0, BadgeS1} {
		got, err := m.OnForceBadgeOpen(0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.True(t, m.IsLevelCompleted())

	got, err := m.OnForceBadgeOpen(10)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Level())
	assert.Equal(t, BadgeF0, got)

	m.OnPenalty(20)
	_, err = m.OnForceBadgeOpen(30)
	assert.True(t, errors.Is(err, ErrGrumpyCatActive))
}

func TestForceBadgeOpenWithoutLockedBadge(t *testing.T) {
	m := New("", 2, stubLevels{{BadgeF0}, {BadgeC0}})

	_, err := m.OnForceBadgeOpen(0)
	require.NoError(t, err)

	_, err = m.OnForceBadgeOpen(1)
	assert.True(t, errors.Is(err, ErrNoLockedBadge))
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, 1, m.Level())
}

func TestLevelCompletionAdvances(t *testing.T) {
	m := New("", 2, stubLevels{{BadgeF0}, {BadgeS0, BadgeT0}})

	badge, ok := m.OnGameStarted(10)
	require.True(t, ok)
	assert.Equal(t, BadgeF0, badge)
	assert.True(t, m.IsLevelCompleted())
	assert.Equal(t, NewBoard([]BadgeID{BadgeS0, BadgeT0}), m.NextLevelBoard())

	_, ok = m.OnReview(5000)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Level())
	assert.Equal(t, NewBoard([]BadgeID{BadgeS0, BadgeT0}), m.Board())

	// Clocks restart at the last unlock, not at the advancing event.
	require.NotNil(t, m.state.Counters.Time)
	assert.Equal(t, fmt.Sprintf("next_fire_at=%d", 10+86400), *m.state.Counters.Time)
	require.NotNil(t, m.state.Counters.Star)
	assert.Equal(t, "1,5", *m.state.Counters.Star)
}

func TestLevelNotCompletedWhileCatActive(t *testing.T) {
	stored := `{"board": [{"badge": "s0", "is_active": true}, {"badge": "c0", "is_active": true}], "c0_hp": 10}`
	m := New(stored, 2, tier1Levels)
	assert.False(t, m.IsLevelCompleted())

	m.OnReview(1)
	assert.False(t, m.IsLevelCompleted())
	assert.Equal(t, 0, m.Level())
}

func TestGrumpyCatFreezesEffectiveTime(t *testing.T) {
	m := New("", 2, stubLevels{{BadgeT0, BadgeS0, BadgeC0}})
	m.OnGameStarted(0)

	badge, ok := m.OnPenalty(1000)
	require.True(t, ok)
	require.Equal(t, BadgeC0, badge)

	var last BadgeID
	for i := 0; i < 6; i++ {
		last, _ = m.OnReview(int64(2000 + i*1000))
	}
	require.Equal(t, BadgeC0Removed, last)
	require.Equal(t, int64(6000), m.state.C0ActiveTimePenalty)

	// 6000s were spent with the cat on the board.
	_, ok = m.OnReview(86400)
	assert.False(t, ok)

	badge, ok = m.OnReview(92400)
	require.True(t, ok)
	assert.Equal(t, BadgeT0, badge)
}

func TestProgress(t *testing.T) {
	m := New("", 2, tier1Levels)
	m.OnGameStarted(0)

	p := m.Progress(0)
	require.Contains(t, p, BadgeS0)
	assert.NotContains(t, p, BadgeS1, "superseded by s0")
	assert.NotContains(t, p, BadgeF0, "already open")
	assert.NotContains(t, p, BadgeC0)
	require.NotNil(t, p[BadgeS0].RemainingReviews)
	assert.Equal(t, 5, *p[BadgeS0].RemainingReviews)
	assert.Equal(t, 0, p[BadgeS0].Pct)

	m.OnPenalty(100)
	p = m.Progress(200)
	require.Contains(t, p, BadgeC0)
	assert.Equal(t, 6, *p[BadgeC0].RemainingReviews)
	assert.Equal(t, 0, p[BadgeC0].Pct)

	m.OnReview(300)
	p = m.Progress(300)
	assert.Equal(t, 5, *p[BadgeC0].RemainingReviews)
	assert.Equal(t, 6, p[BadgeC0].Pct)
}

func TestNewLevelEmptyProgressMatchesLevelStart(t *testing.T) {
	m := New("", 2, stubLevels{{BadgeF0}, {BadgeF0, BadgeS0}})

	_, ok := m.OnGameStarted(0)
	require.True(t, ok)
	require.True(t, m.IsLevelCompleted())

	preview := m.NewLevelEmptyProgress()
	require.Contains(t, preview, BadgeF0)
	assert.Zero(t, preview[BadgeF0].Pct)
	assert.Equal(t, int64(86400), *preview[BadgeF0].RemainingTimeSecs)

	_, ok = m.OnPrompt(0)
	require.False(t, ok)
	require.Equal(t, 1, m.Level())
	assert.Equal(t, preview, m.Progress(0))

	_, ok = m.OnFormulaUpdated(0)
	assert.False(t, ok, "feather cooldown starts with the level")
	badge, ok := m.OnFormulaUpdated(86400)
	require.True(t, ok)
	assert.Equal(t, BadgeF0, badge)
}

func TestNewLevelEmptyProgress(t *testing.T) {
	m := New("", 2, stubLevels{{BadgeF0}, {BadgeS1, BadgeT0, BadgeC0}})

	p := m.NewLevelEmptyProgress()
	require.Len(t, p, 2)
	assert.Equal(t, 10, *p[BadgeS1].RemainingReviews)
	assert.Equal(t, int64(86400), *p[BadgeT0].RemainingTimeSecs)
	assert.Zero(t, p[BadgeT0].Pct)
}

func TestSerializeRoundTrip(t *testing.T) {
	m := New("", 3, tier1Levels)
	m.OnGameStarted(0)
	m.OnReview(100)
	m.OnPrompt(200)
	m.OnPenalty(300)
	m.OnReview(400)

	data, err := m.Serialize()
	require.NoError(t, err)

	restored := New(data, 3, tier1Levels)
	assert.Equal(t, m.State(), restored.State())

	again, err := restored.Serialize()
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestSerializeKeys(t *testing.T) {
	m := New("", 2, tier1Levels)
	data, err := m.Serialize()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(data), &raw))
	for _, key := range []string{
		"badges_state", "board", "level", "c0_hp", "c0_hp_next_delta",
		"last_badge", "last_badge_at", "c0_active_time_penalty", "c0_lock_started_at",
	} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `{"CatBadgeCounter":null,"TimeBadgeCounter":null,"StarBadgeCounter":null,"FeatherBadgeCounter":null}`,
		string(raw["badges_state"]))
}

func TestDecodeDefaults(t *testing.T) {
	fresh := NewBoard(tier1Levels[0])

	tests := []struct {
		name   string
		stored string
		check  func(t *testing.T, st State)
	}{
		{"empty", "", func(t *testing.T, st State) {
			assert.Equal(t, fresh, st.Board)
			assert.Equal(t, 3, st.C0HPNextDelta)
		}},
		{"blank", "  \n", func(t *testing.T, st State) {
			assert.Equal(t, fresh, st.Board)
		}},
		{"garbage", "{not json", func(t *testing.T, st State) {
			assert.Equal(t, fresh, st.Board)
			assert.Zero(t, st.Level)
		}},
		{"negative fields", `{"level": -3, "c0_hp_next_delta": 0, "c0_hp": -1,
			"board": [{"badge": "c0", "is_active": true}],
			"c0_lock_started_at": -5, "c0_active_time_penalty": -9, "last_badge_at": -1}`,
			func(t *testing.T, st State) {
				assert.Zero(t, st.Level)
				assert.Equal(t, 3, st.C0HPNextDelta)
				assert.Equal(t, 15, st.C0HP, "active cat gets full health")
				assert.Zero(t, st.C0LockStartedAt)
				assert.Zero(t, st.C0ActiveTimePenalty)
				require.NotNil(t, st.LastBadgeAt)
				assert.Zero(t, *st.LastBadgeAt)
			}},
		{"hp without cat", `{"c0_hp": 7, "board": [{"badge": "s0"}]}`, func(t *testing.T, st State) {
			assert.Zero(t, st.C0HP)
		}},
		{"wrong types", `{"level": "abc", "board": "x", "badges_state": [1], "last_badge": 4}`, func(t *testing.T, st State) {
			assert.Zero(t, st.Level)
			assert.Equal(t, fresh, st.Board)
			assert.Nil(t, st.LastBadge)
			assert.Equal(t, CounterStates{}, st.Counters)
		}},
		{"unknown badges dropped", `{"board": [{"badge": "zz"}, {"badge": "t0", "is_active": true}]}`, func(t *testing.T, st State) {
			assert.Equal(t, Board{{Badge: BadgeT0, IsActive: true}}, st.Board)
		}},
		{"board regenerated for level", `{"level": 1, "board": []}`, func(t *testing.T, st State) {
			assert.Equal(t, 1, st.Level)
			assert.Equal(t, NewBoard(tier1Levels[1]), st.Board)
		}},
		{"counter states", `{"badges_state": {"StarBadgeCounter": "2,5", "Unknown": "x", "TimeBadgeCounter": null}}`, func(t *testing.T, st State) {
			require.NotNil(t, st.Counters.Star)
			assert.Equal(t, "2,5", *st.Counters.Star)
			assert.Nil(t, st.Counters.Time)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, New(tt.stored, 2, tier1Levels).State())
		})
	}
}

func TestRandomEventsKeepBoardConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	boards := stubLevels{
		{BadgeF0, BadgeS0, BadgeS1, BadgeC0},
		{BadgeS0, BadgeS1, BadgeS2, BadgeT0, BadgeC0, BadgeC0},
		{BadgeF0, BadgeC1, BadgeC2, BadgeT0, BadgeC0},
	}
	events := []Event{EventGameStarted, EventFormulaUpdated, EventPrompt, EventPenalty, EventReview}

	for difficulty := 0; difficulty <= 4; difficulty++ {
		m := New("", difficulty, boards)
		now := int64(0)
		for i := 0; i < 2000; i++ {
			now += rng.Int63n(4 * 3600)
			before := m.Board()
			level := m.Level()

			badge, ok := m.OnEvent(events[rng.Intn(len(events))], now)

			if m.Level() == level {
				changed := 0
				for j := range before {
					if before[j].IsActive != m.Board()[j].IsActive {
						changed++
					}
				}
				require.LessOrEqual(t, changed, 1)
				if !ok {
					require.Zero(t, changed)
				}
			}
			if ok {
				require.NotEmpty(t, badge)
			}

			st := m.State()
			require.GreaterOrEqual(t, st.Level, 0)
			require.Greater(t, st.C0HPNextDelta, 0)
			if m.CountActiveGrumpyCatsOnBoard() == 0 {
				require.Zero(t, st.C0HP)
			} else {
				require.False(t, m.IsLevelCompleted())
			}

			data, err := m.Serialize()
			require.NoError(t, err)
			require.Equal(t, st, New(data, difficulty, boards).State())
		}
	}
}
