package badges

import (
	"fmt"
)

// catState accumulates "clean" review time for c1 and c2. A penalty
// interrupts both accrual windows; a prompt interrupts only c2's.
type catState struct {
	c1Secs      int64
	c2Secs      int64
	lastUpdated int64
	reason      string
}

func parseCatState(s *string) (catState, bool) {
	if s == nil {
		return catState{}, false
	}
	kv := parseKV(*s)
	var st catState
	var ok bool
	if st.c1Secs, ok = kvInt(kv, "cumulative_c1_secs"); !ok {
		return catState{}, false
	}
	if st.c2Secs, ok = kvInt(kv, "cumulative_c2_secs"); !ok {
		return catState{}, false
	}
	if st.lastUpdated, ok = kvInt(kv, "counter_last_updated"); !ok {
		return catState{}, false
	}
	switch r := kv["update_reason"]; r {
	case "game_started", "prompt", "penalty", "review":
		st.reason = r
	default:
		return catState{}, false
	}
	return st, true
}

func (st catState) format() *string {
	return strPtr(fmt.Sprintf("cumulative_c1_secs=%d,cumulative_c2_secs=%d,counter_last_updated=%d,update_reason=%s",
		st.c1Secs, st.c2Secs, st.lastUpdated, st.reason))
}

// pending returns the accumulators as they would be after accruing up to now.
func (st catState) pending(in counterInput) (c1, c2 int64) {
	elapsed := in.now - st.lastUpdated
	if elapsed < 0 {
		elapsed = 0
	}
	if in.locked.Has(BadgeC1) {
		c1 = st.c1Secs
		if st.reason != "penalty" {
			c1 += elapsed
		}
	}
	if in.locked.Has(BadgeC2) {
		c2 = st.c2Secs
		if st.reason != "penalty" && st.reason != "prompt" {
			c2 += elapsed
		}
	}
	return c1, c2
}

func catStart(now int64) catState {
	return catState{lastUpdated: now, reason: EventGameStarted.String()}
}

func catHandle(ev Event, in counterInput, state *string) advice {
	st, ok := parseCatState(state)
	if !ok {
		st = catStart(in.now)
		if ev == EventGameStarted {
			return advice{state: st.format()}
		}
	}
	if ev == EventFormulaUpdated {
		return advice{state: st.format()}
	}

	st.c1Secs, st.c2Secs = st.pending(in)
	st.lastUpdated = in.now
	st.reason = ev.String()

	var badge BadgeID
	switch ev {
	case EventPenalty:
		if in.difficulty >= 1 && in.locked.Has(BadgeC0) {
			badge = BadgeC0
		}
	case EventReview:
		threshold := scaledSecs(catBaseSecs, in.difficulty)
		switch {
		case in.locked.Has(BadgeC1) && st.c1Secs >= threshold:
			badge = BadgeC1
			st.c1Secs = 0
		case in.locked.Has(BadgeC2) && st.c2Secs >= threshold:
			badge = BadgeC2
			st.c2Secs = 0
		}
	}
	return advice{badge: badge, state: st.format()}
}

func catProgress(id BadgeID, in counterInput, state *string) (Progress, bool) {
	if (id != BadgeC1 && id != BadgeC2) || !in.locked.Has(id) {
		return Progress{}, false
	}
	st, ok := parseCatState(state)
	if !ok {
		st = catStart(in.now)
	}
	c1, c2 := st.pending(in)
	done := c1
	if id == BadgeC2 {
		done = c2
	}
	return timeProgress(id, scaledSecs(catBaseSecs, in.difficulty), done), true
}
