package badges

import (
	"fmt"
	"strconv"
	"strings"
)

var starTiers = [...]BadgeID{BadgeS0, BadgeS1, BadgeS2}

// starFrequency is the review count of the s0 tier; s1 and s2 need two and
// three times as many.
func starFrequency(difficulty int) int {
	switch clampDifficulty(difficulty) {
	case 0, 1:
		return 3
	case 2, 3:
		return 5
	default:
		return 7
	}
}

func starThreshold(id BadgeID, difficulty int) int {
	for i, tier := range starTiers {
		if tier == id {
			return (i + 1) * starFrequency(difficulty)
		}
	}
	return 0
}

// starTarget returns the smallest star tier still locked.
func starTarget(locked BadgeSet) (BadgeID, bool) {
	for _, tier := range starTiers {
		if locked.Has(tier) {
			return tier, true
		}
	}
	return "", false
}

type starState struct {
	count     int
	threshold int
	skipNext  bool
}

func parseStarState(s *string) (starState, bool) {
	if s == nil {
		return starState{}, false
	}
	parts := strings.Split(*s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return starState{}, false
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 0 {
		return starState{}, false
	}
	threshold, err := strconv.Atoi(parts[1])
	if err != nil || threshold < 0 {
		return starState{}, false
	}
	st := starState{count: count, threshold: threshold}
	if len(parts) == 3 {
		if parts[2] != "skip_next" {
			return starState{}, false
		}
		st.skipNext = true
	}
	return st, true
}

func (st starState) format() *string {
	s := fmt.Sprintf("%d,%d", st.count, st.threshold)
	if st.skipNext {
		s += ",skip_next"
	}
	return &s
}

// retarget points the threshold at the smallest locked star, keeping the
// count. With no star left the counter idles at zero.
func (st *starState) retarget(locked BadgeSet, difficulty int) {
	target, ok := starTarget(locked)
	if !ok {
		st.count, st.threshold = 0, 0
		return
	}
	st.threshold = starThreshold(target, difficulty)
}

func starHandle(ev Event, in counterInput, state *string) advice {
	st, ok := parseStarState(state)
	if !ok {
		st = starState{}
	}
	st.retarget(in.locked, in.difficulty)

	switch ev {
	case EventPenalty:
		st.skipNext = true
	case EventReview:
		if st.skipNext {
			st.skipNext = false
			return advice{state: st.format()}
		}
		target, ok := starTarget(in.locked)
		if !ok {
			return advice{state: st.format()}
		}
		st.count++
		if st.count >= st.threshold {
			st.count = 0
			st.retarget(in.locked.without(target), in.difficulty)
			return advice{badge: target, state: st.format()}
		}
	}
	return advice{state: st.format()}
}

func starProgress(id BadgeID, in counterInput, state *string) (Progress, bool) {
	target, ok := starTarget(in.locked)
	if !ok || target != id {
		return Progress{}, false
	}
	st, ok := parseStarState(state)
	if !ok {
		st = starState{}
	}
	st.retarget(in.locked, in.difficulty)
	return reviewProgress(id, st.threshold, st.count), true
}
