package badges

import (
	"io"

	"github.com/charmbracelet/log"
)

// LevelSource produces the badge sequence of a level.
type LevelSource interface {
	Level(difficulty, index int) []BadgeID
}

const defaultNextDelta = 3

// CounterStates holds the opaque state blob of each counter. A nil blob
// means the counter has not seen an event yet.
type CounterStates struct {
	Cat     *string
	Time    *string
	Star    *string
	Feather *string
}

// Get returns the blob owned by the given counter.
func (c *CounterStates) Get(k CounterKind) *string {
	switch k {
	case CounterCat:
		return c.Cat
	case CounterTime:
		return c.Time
	case CounterStar:
		return c.Star
	case CounterFeather:
		return c.Feather
	}
	return nil
}

func (c *CounterStates) set(k CounterKind, s *string) {
	switch k {
	case CounterCat:
		c.Cat = s
	case CounterTime:
		c.Time = s
	case CounterStar:
		c.Star = s
	case CounterFeather:
		c.Feather = s
	}
}

// State is the complete per-user progression state.
type State struct {
	Counters            CounterStates
	Board               Board
	Level               int
	C0HP                int
	C0HPNextDelta       int
	LastBadge           *BadgeID
	LastBadgeAt         *int64 // effective play time of the last unlock
	C0LockStartedAt     int64
	C0ActiveTimePenalty int64
}

// Manager applies gameplay events to one user's progression state.
// A Manager is built from a stored snapshot for each host call and is not
// safe for concurrent use.
type Manager struct {
	difficulty int
	levels     LevelSource
	logger     *log.Logger
	state      State
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New restores a manager from a serialized snapshot. An empty or damaged
// snapshot yields a usable state; see Serialize for the format.
func New(serialized string, difficulty int, levels LevelSource, opts ...Option) *Manager {
	m := &Manager{
		difficulty: clampDifficulty(difficulty),
		levels:     levels,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.state = m.decode(serialized)
	return m
}

// OnGameStarted handles the start of a game.
func (m *Manager) OnGameStarted(activePlayTimeSecs int64) (BadgeID, bool) {
	return m.onEvent(EventGameStarted, activePlayTimeSecs)
}

// OnFormulaUpdated handles a change to the user's formula.
func (m *Manager) OnFormulaUpdated(activePlayTimeSecs int64) (BadgeID, bool) {
	return m.onEvent(EventFormulaUpdated, activePlayTimeSecs)
}

// OnPrompt handles the user asking for a prompt.
func (m *Manager) OnPrompt(activePlayTimeSecs int64) (BadgeID, bool) {
	return m.onEvent(EventPrompt, activePlayTimeSecs)
}

// OnPenalty handles a penalty. At difficulty 1 and above it may release a
// grumpy cat onto the board.
func (m *Manager) OnPenalty(activePlayTimeSecs int64) (BadgeID, bool) {
	return m.onEvent(EventPenalty, activePlayTimeSecs)
}

// OnReview handles a completed review. While a grumpy cat is active the
// review damages the cat instead of reaching the counters.
func (m *Manager) OnReview(activePlayTimeSecs int64) (BadgeID, bool) {
	return m.onEvent(EventReview, activePlayTimeSecs)
}

// OnEvent dispatches ev like the dedicated On* methods.
func (m *Manager) OnEvent(ev Event, activePlayTimeSecs int64) (BadgeID, bool) {
	return m.onEvent(ev, activePlayTimeSecs)
}

func (m *Manager) onEvent(ev Event, now int64) (BadgeID, bool) {
	m.advanceIfCompleted(now)
	m.beginBatch()

	effective := m.effectiveTime(now)
	oldCats := m.CountActiveGrumpyCatsOnBoard()
	badge := m.dispatch(ev, now, effective)
	m.state.C0HPNextDelta = nextDeltaAfter(ev)

	if badge == "" {
		return "", false
	}
	if badge != BadgeC0Removed {
		if !m.state.Board.activateFirst(badge) {
			m.logger.Debug("advised badge is not locked", "badge", badge, "event", ev)
			return "", false
		}
		if badge == BadgeC0 && oldCats == 0 {
			m.state.C0HP = m.maxHP()
			m.state.C0LockStartedAt = now
		}
	}
	m.recordUnlock(badge, now)
	return badge, true
}

// dispatch decides which badge, if any, the event unlocks.
func (m *Manager) dispatch(ev Event, now, effective int64) BadgeID {
	if m.CountActiveGrumpyCatsOnBoard() > 0 {
		switch ev {
		case EventPenalty:
			if m.difficulty >= 1 && m.state.Board.Locked().Has(BadgeC0) {
				return BadgeC0
			}
		case EventReview:
			m.state.C0HP -= m.state.C0HPNextDelta
			if m.state.C0HP < 0 {
				m.state.C0HP = 0
			}
			if m.state.C0HP == 0 {
				m.shoo(now)
				return BadgeC0Removed
			}
		}
		return ""
	}

	in := counterInput{now: effective, difficulty: m.difficulty, locked: m.state.Board.Locked()}
	var found BadgeID
	for _, k := range counterKinds {
		if found != "" && ev.terminateIfFound() {
			break
		}
		adv := handle(k, ev, in, m.state.Counters.Get(k))
		m.state.Counters.set(k, adv.state)
		if found == "" && adv.badge != "" {
			found = adv.badge
		}
	}
	return found
}

// OnShooCat removes one active grumpy cat from the board.
func (m *Manager) OnShooCat(activePlayTimeSecs int64) (BadgeID, error) {
	if m.CountActiveGrumpyCatsOnBoard() == 0 {
		return "", ErrNoGrumpyCat
	}
	m.beginBatch()
	m.shoo(activePlayTimeSecs)
	m.recordUnlock(BadgeC0Removed, activePlayTimeSecs)
	return BadgeC0Removed, nil
}

// shoo deactivates the first active cat. The locked interval stops counting
// towards play time once the last cat is gone.
func (m *Manager) shoo(now int64) {
	m.state.Board.deactivateFirst(BadgeC0)
	if m.CountActiveGrumpyCatsOnBoard() > 0 {
		m.state.C0HP = m.maxHP()
		return
	}
	if locked := now - m.state.C0LockStartedAt; locked > 0 {
		m.state.C0ActiveTimePenalty += locked
	}
	m.state.C0HP = 0
	m.state.C0LockStartedAt = 0
}

// OnForceBadgeOpen unlocks the first locked regular badge regardless of
// counters.
func (m *Manager) OnForceBadgeOpen(activePlayTimeSecs int64) (BadgeID, error) {
	if m.CountActiveGrumpyCatsOnBoard() > 0 {
		return "", ErrGrumpyCatActive
	}
	m.advanceIfCompleted(activePlayTimeSecs)
	m.beginBatch()
	for _, c := range m.state.Board {
		if c.Badge == BadgeC0 || c.IsActive {
			continue
		}
		m.state.Board.activateFirst(c.Badge)
		m.recordUnlock(c.Badge, activePlayTimeSecs)
		return c.Badge, nil
	}
	return "", ErrNoLockedBadge
}

func (m *Manager) beginBatch() {
	m.state.Board.clearLastModified()
	m.state.LastBadge = nil
	m.state.LastBadgeAt = nil
}

func (m *Manager) recordUnlock(badge BadgeID, now int64) {
	at := m.effectiveTime(now)
	m.state.LastBadge = &badge
	m.state.LastBadgeAt = &at
	m.logger.Debug("badge unlocked", "badge", badge, "level", m.state.Level, "at", at)
}

// effectiveTime is the play clock minus every interval spent with a grumpy
// cat on the board, including the one in progress.
func (m *Manager) effectiveTime(now int64) int64 {
	t := now - m.state.C0ActiveTimePenalty
	if m.CountActiveGrumpyCatsOnBoard() > 0 && now > m.state.C0LockStartedAt {
		t -= now - m.state.C0LockStartedAt
	}
	return t
}

// advanceIfCompleted moves to the next level when the board is done.
// Counter clocks restart at the time of the last unlock.
func (m *Manager) advanceIfCompleted(now int64) {
	if !m.IsLevelCompleted() {
		return
	}
	at := m.effectiveTime(now)
	if m.state.LastBadgeAt != nil {
		at = *m.state.LastBadgeAt
	}

	m.state.Level++
	m.state.Board = NewBoard(m.levels.Level(m.difficulty, m.state.Level))
	m.state.Counters = m.startCounters(m.state.Board, at)
	m.state.C0HP = 0
	m.state.C0HPNextDelta = defaultNextDelta
	m.state.C0LockStartedAt = 0

	m.logger.Debug("level completed", "level", m.state.Level, "board_size", len(m.state.Board))
}

// startCounters replays a game start on every counter for a new board.
// Replayed advice only seeds the clocks; nothing is unlocked.
func (m *Manager) startCounters(b Board, at int64) CounterStates {
	var cs CounterStates
	in := counterInput{now: at, difficulty: m.difficulty, locked: b.Locked()}
	for _, k := range counterKinds {
		cs.set(k, handle(k, EventGameStarted, in, nil).state)
	}
	return cs
}

func nextDeltaAfter(ev Event) int {
	switch ev {
	case EventPrompt:
		return 2
	case EventPenalty:
		return 1
	default:
		return defaultNextDelta
	}
}

func (m *Manager) maxHP() int {
	return 5 * (m.difficulty + 1)
}

// Progress reports every locked badge's progress at the given play time.
func (m *Manager) Progress(activePlayTimeSecs int64) map[BadgeID]Progress {
	in := counterInput{
		now:        m.effectiveTime(activePlayTimeSecs),
		difficulty: m.difficulty,
		locked:     m.state.Board.Locked(),
	}
	out := make(map[BadgeID]Progress)
	for _, id := range vocabulary {
		if id == BadgeC0 {
			if p, ok := m.grumpyCatProgress(); ok {
				out[id] = p
			}
			continue
		}
		k, _ := ownerOf(id)
		if p, ok := counterProgress(k, id, in, m.state.Counters.Get(k)); ok {
			out[id] = p
		}
	}
	return out
}

// NewLevelEmptyProgress previews the next level as it looks right after
// the level change.
func (m *Manager) NewLevelEmptyProgress() map[BadgeID]Progress {
	next := m.NextLevelBoard()
	counters := m.startCounters(next, 0)
	in := counterInput{difficulty: m.difficulty, locked: next.Locked()}
	out := make(map[BadgeID]Progress)
	for _, id := range vocabulary {
		k, ok := ownerOf(id)
		if !ok {
			continue
		}
		if p, ok := counterProgress(k, id, in, counters.Get(k)); ok {
			out[id] = p
		}
	}
	return out
}

// grumpyCatProgress counts the reviews needed to shoo the current cat.
func (m *Manager) grumpyCatProgress() (Progress, bool) {
	if m.CountActiveGrumpyCatsOnBoard() == 0 {
		return Progress{}, false
	}
	maxHP := m.maxHP()
	hp := m.state.C0HP
	reviews := 0
	if hp > 0 {
		reviews = 1
		if rest := hp - m.state.C0HPNextDelta; rest > 0 {
			reviews += (rest + defaultNextDelta - 1) / defaultNextDelta
		}
	}
	challenge := (maxHP + defaultNextDelta - 1) / defaultNextDelta
	return Progress{
		Badge:            BadgeC0,
		Challenge:        int64(challenge),
		Pct:              pct(int64(maxHP-hp), int64(maxHP)),
		RemainingReviews: &reviews,
	}, true
}

// GrumpyCatHealthpoints returns the remaining health of the active cats.
func (m *Manager) GrumpyCatHealthpoints() int { return m.state.C0HP }

// Level returns the current zero-based level.
func (m *Manager) Level() int { return m.state.Level }

// Difficulty returns the difficulty the manager was built with.
func (m *Manager) Difficulty() int { return m.difficulty }

// Board returns a copy of the current board.
func (m *Manager) Board() Board { return m.state.Board.Clone() }

// LastBadge returns the badge unlocked by the most recent call, if any.
func (m *Manager) LastBadge() (BadgeID, bool) {
	if m.state.LastBadge == nil {
		return "", false
	}
	return *m.state.LastBadge, true
}

// CountActiveGrumpyCatsOnBoard returns the number of active c0 cells.
func (m *Manager) CountActiveGrumpyCatsOnBoard() int {
	return m.state.Board.CountActive(BadgeC0)
}

// IsLevelCompleted reports whether every regular badge is open and no
// grumpy cat is active.
func (m *Manager) IsLevelCompleted() bool {
	for _, c := range m.state.Board {
		if (c.Badge == BadgeC0) == c.IsActive {
			return false
		}
	}
	return true
}

// NextLevelBoard returns a fresh board for the level after the current one.
func (m *Manager) NextLevelBoard() Board {
	return NewBoard(m.levels.Level(m.difficulty, m.state.Level+1))
}

// State returns a copy of the full progression state.
func (m *Manager) State() State {
	st := m.state
	st.Board = m.state.Board.Clone()
	return st
}
