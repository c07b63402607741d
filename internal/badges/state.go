package badges

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// wireState is the stored JSON form of State.
type wireState struct {
	BadgesState         map[string]*string `json:"badges_state"`
	Board               []Cell             `json:"board"`
	Level               int                `json:"level"`
	C0HP                int                `json:"c0_hp"`
	C0HPNextDelta       int                `json:"c0_hp_next_delta"`
	LastBadge           *BadgeID           `json:"last_badge"`
	LastBadgeAt         *int64             `json:"last_badge_at"`
	C0ActiveTimePenalty int64              `json:"c0_active_time_penalty"`
	C0LockStartedAt     int64              `json:"c0_lock_started_at"`
}

// Serialize encodes the full state as JSON. Counters that have not run yet
// are stored as null.
func (m *Manager) Serialize() (string, error) {
	st := m.state
	w := wireState{
		BadgesState:         make(map[string]*string, len(counterKinds)),
		Board:               st.Board,
		Level:               st.Level,
		C0HP:                st.C0HP,
		C0HPNextDelta:       st.C0HPNextDelta,
		LastBadge:           st.LastBadge,
		LastBadgeAt:         st.LastBadgeAt,
		C0ActiveTimePenalty: st.C0ActiveTimePenalty,
		C0LockStartedAt:     st.C0LockStartedAt,
	}
	if w.Board == nil {
		w.Board = Board{}
	}
	for _, k := range counterKinds {
		w.BadgesState[k.Name()] = st.Counters.Get(k)
	}
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("badges: cannot encode state: %w", err)
	}
	return string(data), nil
}

func counterKindByName(name string) (CounterKind, bool) {
	for _, k := range counterKinds {
		if k.Name() == name {
			return k, true
		}
	}
	return 0, false
}

// decode reads a stored snapshot field by field. Anything missing or of the
// wrong type falls back to its default so a load never fails.
func (m *Manager) decode(s string) State {
	st := State{C0HPNextDelta: defaultNextDelta}
	if strings.TrimSpace(s) == "" {
		st.Board = NewBoard(m.levels.Level(m.difficulty, 0))
		return st
	}
	if !gjson.Valid(s) {
		m.logger.Warn("stored state is not valid JSON, starting fresh")
		st.Board = NewBoard(m.levels.Level(m.difficulty, 0))
		return st
	}
	root := gjson.Parse(s)

	if bs := root.Get("badges_state"); bs.IsObject() {
		bs.ForEach(func(key, value gjson.Result) bool {
			k, ok := counterKindByName(key.String())
			if ok && value.Type == gjson.String {
				st.Counters.set(k, strPtr(value.String()))
			}
			return true
		})
	}

	st.Level = int(intField(root, "level"))
	if st.Level < 0 {
		st.Level = 0
	}

	if b := root.Get("board"); b.IsArray() {
		b.ForEach(func(_, cell gjson.Result) bool {
			id := BadgeID(cell.Get("badge").String())
			if !id.Valid() {
				m.logger.Debug("dropping unknown board badge", "badge", id)
				return true
			}
			st.Board = append(st.Board, Cell{
				Badge:          id,
				IsActive:       cell.Get("is_active").Type == gjson.True,
				IsLastModified: cell.Get("is_last_modified").Type == gjson.True,
			})
			return true
		})
	}
	if len(st.Board) == 0 {
		m.logger.Debug("stored board is empty, regenerating", "level", st.Level)
		st.Board = NewBoard(m.levels.Level(m.difficulty, st.Level))
	}

	st.C0HPNextDelta = int(intField(root, "c0_hp_next_delta"))
	if st.C0HPNextDelta <= 0 {
		st.C0HPNextDelta = defaultNextDelta
	}

	st.C0HP = int(intField(root, "c0_hp"))
	switch {
	case st.Board.CountActive(BadgeC0) == 0:
		st.C0HP = 0
	case st.C0HP <= 0:
		st.C0HP = m.maxHP()
	}

	if lb := root.Get("last_badge"); lb.Type == gjson.String {
		id := BadgeID(lb.String())
		if id.Valid() || id == BadgeC0Removed {
			st.LastBadge = &id
		}
	}
	if at := root.Get("last_badge_at"); at.Type == gjson.Number {
		v := at.Int()
		if v < 0 {
			v = 0
		}
		st.LastBadgeAt = &v
	}

	st.C0ActiveTimePenalty = nonNegative(intField(root, "c0_active_time_penalty"))
	st.C0LockStartedAt = nonNegative(intField(root, "c0_lock_started_at"))
	return st
}

// intField returns a numeric field, or 0 when absent or not a number.
func intField(root gjson.Result, key string) int64 {
	r := root.Get(key)
	if r.Type != gjson.Number {
		return 0
	}
	return r.Int()
}

func nonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
