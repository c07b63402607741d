package badges

import (
	"strconv"
	"strings"
)

// Event is a gameplay event reported by the host.
type Event uint8

const (
	EventGameStarted Event = iota
	EventFormulaUpdated
	EventPrompt
	EventPenalty
	EventReview
)

// String returns the event name used in logs and counter state.
func (e Event) String() string {
	switch e {
	case EventGameStarted:
		return "game_started"
	case EventFormulaUpdated:
		return "formula_updated"
	case EventPrompt:
		return "prompt"
	case EventPenalty:
		return "penalty"
	case EventReview:
		return "review"
	default:
		return "unknown"
	}
}

// terminateIfFound reports whether dispatch stops at the first counter
// that advises a badge. Penalties visit every counter so each one can
// update its clock.
func (e Event) terminateIfFound() bool {
	return e != EventPenalty
}

// CounterKind enumerates the badge counters. Dispatch order is the
// declaration order.
type CounterKind uint8

const (
	CounterCat CounterKind = iota
	CounterTime
	CounterStar
	CounterFeather
)

var counterKinds = [...]CounterKind{CounterCat, CounterTime, CounterStar, CounterFeather}

// Name returns the key under which the counter state is stored.
func (k CounterKind) Name() string {
	switch k {
	case CounterCat:
		return "CatBadgeCounter"
	case CounterTime:
		return "TimeBadgeCounter"
	case CounterStar:
		return "StarBadgeCounter"
	case CounterFeather:
		return "FeatherBadgeCounter"
	default:
		return ""
	}
}

// counterInput is what every counter sees for one event.
type counterInput struct {
	now        int64 // effective play time
	difficulty int
	locked     BadgeSet
}

// advice is a counter's response to an event. An empty badge means
// nothing to unlock.
type advice struct {
	badge BadgeID
	state *string
}

// handle routes an event to the counter of the given kind.
func handle(k CounterKind, ev Event, in counterInput, state *string) advice {
	switch k {
	case CounterCat:
		return catHandle(ev, in, state)
	case CounterTime:
		return timeHandle(ev, in, state)
	case CounterStar:
		return starHandle(ev, in, state)
	case CounterFeather:
		return featherHandle(ev, in, state)
	}
	return advice{state: state}
}

// counterProgress asks the counter of the given kind about one badge.
func counterProgress(k CounterKind, id BadgeID, in counterInput, state *string) (Progress, bool) {
	switch k {
	case CounterCat:
		return catProgress(id, in, state)
	case CounterTime:
		return timeProgressFor(id, in, state)
	case CounterStar:
		return starProgress(id, in, state)
	case CounterFeather:
		return featherProgress(id, in, state)
	}
	return Progress{}, false
}

// ownerOf returns the counter that governs id. c0 is owned by the manager.
func ownerOf(id BadgeID) (CounterKind, bool) {
	switch id {
	case BadgeC1, BadgeC2:
		return CounterCat, true
	case BadgeT0:
		return CounterTime, true
	case BadgeS0, BadgeS1, BadgeS2:
		return CounterStar, true
	case BadgeF0:
		return CounterFeather, true
	}
	return 0, false
}

var difficultyCoefficients = [...]float64{0.5, 0.75, 1.0, 1.25, 1.5}

// scaledSecs scales a base duration by the difficulty coefficient.
func scaledSecs(base int64, difficulty int) int64 {
	return int64(float64(base) * difficultyCoefficients[clampDifficulty(difficulty)])
}

func clampDifficulty(d int) int {
	if d < 0 {
		return 0
	}
	if d >= len(difficultyCoefficients) {
		return len(difficultyCoefficients) - 1
	}
	return d
}

const (
	hourSecs = int64(3600)

	catBaseSecs     = 16 * hourSecs
	timeBaseSecs    = 24 * hourSecs
	featherBaseSecs = 24 * hourSecs
)

// parseKV splits a "key=value,key=value" blob.
func parseKV(s string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func kvInt(m map[string]string, key string) (int64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func strPtr(s string) *string { return &s }
