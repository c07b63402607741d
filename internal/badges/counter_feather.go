package badges

// featherHandle fires f0 when the formula is touched and the cooldown has
// passed. Starting a game counts as a touch since it records the user's first
// formula, and a fresh counter has no cooldown.
func featherHandle(ev Event, in counterInput, state *string) advice {
	st, ok := parseScheduleState(state)
	if !ok {
		st = scheduleState{nextFireAt: in.now}
	}
	if ev != EventGameStarted && ev != EventFormulaUpdated {
		return advice{state: st.format()}
	}
	if in.locked.Has(BadgeF0) && in.now >= st.nextFireAt {
		st.nextFireAt = in.now + scaledSecs(featherBaseSecs, in.difficulty)
		return advice{badge: BadgeF0, state: st.format()}
	}
	return advice{state: st.format()}
}

func featherProgress(id BadgeID, in counterInput, state *string) (Progress, bool) {
	if id != BadgeF0 || !in.locked.Has(id) {
		return Progress{}, false
	}
	st, ok := parseScheduleState(state)
	if !ok {
		st = scheduleState{nextFireAt: in.now}
	}
	return st.progress(id, scaledSecs(featherBaseSecs, in.difficulty), in.now), true
}
