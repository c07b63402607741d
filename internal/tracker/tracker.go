// Package tracker runs badge engine events against stored users. Each call
// rebuilds a manager from the user's stored snapshot, applies one event and
// writes the new snapshot back.
package tracker

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-badges/internal/badges"
	"github.com/vovakirdan/tui-badges/internal/storage"
	"github.com/vovakirdan/tui-badges/internal/transport"
)

// ErrClockBackwards is returned when an event arrives with a play clock
// earlier than the last one stored for the user.
var ErrClockBackwards = errors.New("tracker: play clock moved backwards")

// EventKind is any host call that changes a user's state.
type EventKind int

const (
	KindGameStarted EventKind = iota
	KindFormulaUpdated
	KindPrompt
	KindPenalty
	KindReview
	KindShooCat
	KindForceOpen
)

var kindNames = [...]string{
	KindGameStarted:    "game_started",
	KindFormulaUpdated: "formula_updated",
	KindPrompt:         "prompt",
	KindPenalty:        "penalty",
	KindReview:         "review",
	KindShooCat:        "shoo_cat",
	KindForceOpen:      "force_open",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every event kind in order.
func Kinds() []EventKind {
	out := make([]EventKind, len(kindNames))
	for i := range kindNames {
		out[i] = EventKind(i)
	}
	return out
}

// ParseEventKind accepts the snake_case name or its dashed form.
func ParseEventKind(s string) (EventKind, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, name := range kindNames {
		if s == name {
			return EventKind(i), nil
		}
	}
	return 0, fmt.Errorf("tracker: unknown event %q (use %s)", s, strings.Join(kindNames[:], ", "))
}

// engineEvent maps the five gameplay kinds onto engine events.
func (k EventKind) engineEvent() (badges.Event, bool) {
	switch k {
	case KindGameStarted:
		return badges.EventGameStarted, true
	case KindFormulaUpdated:
		return badges.EventFormulaUpdated, true
	case KindPrompt:
		return badges.EventPrompt, true
	case KindPenalty:
		return badges.EventPenalty, true
	case KindReview:
		return badges.EventReview, true
	}
	return 0, false
}

// Store is the persistence the tracker needs.
type Store interface {
	User(ref string) (*storage.User, error)
	SaveProgress(userID, state string, playSecs int64, badge string, level int) error
}

// Tracker applies events to stored users. Calls are serialized so two
// events for one user never interleave.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	levels badges.LevelSource
	logger *log.Logger
}

// New creates a tracker. A nil logger discards output.
func New(store Store, levels badges.LevelSource, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{store: store, levels: levels, logger: logger}
}

// Result is the outcome of one applied event.
type Result struct {
	User     string
	Kind     EventKind
	Badge    badges.BadgeID // empty when nothing changed
	Level    int
	Board    badges.Board
	CatHP    int
	PlaySecs int64
}

// Unlocked reports whether the event changed a badge.
func (r Result) Unlocked() bool { return r.Badge != "" }

// Apply runs one event for the user at the given play clock and persists
// the result.
func (t *Tracker) Apply(userRef string, kind EventKind, secs int64) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, err := t.store.User(userRef)
	if err != nil {
		return Result{}, err
	}
	if secs < u.PlaySecs {
		return Result{}, fmt.Errorf("%w: %d < %d", ErrClockBackwards, secs, u.PlaySecs)
	}

	m := t.manager(u)
	badge, err := run(m, kind, secs)
	if err != nil {
		return Result{}, err
	}

	blob, err := m.Serialize()
	if err != nil {
		return Result{}, err
	}
	if err := t.store.SaveProgress(u.ID, blob, secs, string(badge), m.Level()); err != nil {
		return Result{}, err
	}
	if badge != "" {
		t.logger.Info("badge", "user", u.Name, "event", kind, "badge", badge, "level", m.Level())
	} else {
		t.logger.Debug("no badge", "user", u.Name, "event", kind, "secs", secs)
	}

	return Result{
		User:     u.Name,
		Kind:     kind,
		Badge:    badge,
		Level:    m.Level(),
		Board:    m.Board(),
		CatHP:    m.GrumpyCatHealthpoints(),
		PlaySecs: secs,
	}, nil
}

func run(m *badges.Manager, kind EventKind, secs int64) (badges.BadgeID, error) {
	if ev, ok := kind.engineEvent(); ok {
		badge, _ := m.OnEvent(ev, secs)
		return badge, nil
	}
	switch kind {
	case KindShooCat:
		return m.OnShooCat(secs)
	case KindForceOpen:
		return m.OnForceBadgeOpen(secs)
	}
	return "", fmt.Errorf("tracker: unsupported event %d", kind)
}

func (t *Tracker) manager(u *storage.User) *badges.Manager {
	return badges.New(u.State, u.Difficulty, t.levels,
		badges.WithLogger(t.logger.With("user", u.Name)))
}

// Snapshot is a read-only view of a user's progression.
type Snapshot struct {
	User         storage.User
	Level        int
	Board        badges.Board
	Progress     map[badges.BadgeID]badges.Progress
	Completed    bool
	Cats         int
	CatHP        int
	NextBoard    badges.Board
	NextProgress map[badges.BadgeID]badges.Progress
	Encoded      string // query fragment for the current board
}

// Snapshot reports the user's board and progress at the given play clock.
// Nothing is written back.
func (t *Tracker) Snapshot(userRef string, secs int64) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u, err := t.store.User(userRef)
	if err != nil {
		return Snapshot{}, err
	}
	if secs < u.PlaySecs {
		secs = u.PlaySecs
	}

	m := t.manager(u)
	progress := m.Progress(secs)
	encoded, err := transport.QueryFragment(m.Board(), progress)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		User:         *u,
		Level:        m.Level(),
		Board:        m.Board(),
		Progress:     progress,
		Completed:    m.IsLevelCompleted(),
		Cats:         m.CountActiveGrumpyCatsOnBoard(),
		CatHP:        m.GrumpyCatHealthpoints(),
		NextBoard:    m.NextLevelBoard(),
		NextProgress: m.NewLevelEmptyProgress(),
		Encoded:      encoded,
	}, nil
}
