package badges

import (
	"fmt"
)

// scheduleState is the pending-fire timestamp shared by the time and
// feather counters.
type scheduleState struct {
	nextFireAt int64
}

func parseScheduleState(s *string) (scheduleState, bool) {
	if s == nil {
		return scheduleState{}, false
	}
	next, ok := kvInt(parseKV(*s), "next_fire_at")
	if !ok {
		return scheduleState{}, false
	}
	return scheduleState{nextFireAt: next}, true
}

func (st scheduleState) format() *string {
	return strPtr(fmt.Sprintf("next_fire_at=%d", st.nextFireAt))
}

// progress reports a scheduled badge as done once the fire time has passed.
func (st scheduleState) progress(id BadgeID, period, now int64) Progress {
	remaining := st.nextFireAt - now
	if remaining < 0 {
		remaining = 0
	}
	return timeProgress(id, period, period-remaining)
}

// timeHandle fires t0 on a review once the scheduled play time has passed.
func timeHandle(ev Event, in counterInput, state *string) advice {
	period := scaledSecs(timeBaseSecs, in.difficulty)
	st, ok := parseScheduleState(state)
	if !ok || ev == EventGameStarted {
		st = scheduleState{nextFireAt: in.now + period}
	}
	if ev == EventReview && in.locked.Has(BadgeT0) && in.now >= st.nextFireAt {
		st.nextFireAt = in.now + period
		return advice{badge: BadgeT0, state: st.format()}
	}
	return advice{state: st.format()}
}

func timeProgressFor(id BadgeID, in counterInput, state *string) (Progress, bool) {
	if id != BadgeT0 || !in.locked.Has(id) {
		return Progress{}, false
	}
	period := scaledSecs(timeBaseSecs, in.difficulty)
	st, ok := parseScheduleState(state)
	if !ok {
		st = scheduleState{nextFireAt: in.now + period}
	}
	return st.progress(id, period, in.now), true
}
