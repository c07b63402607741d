// Package badges implements the badge progression engine: the per-user board,
// level advancement, the grumpy cat and the four badge counters that decide
// which badge a gameplay event unlocks.
//
// The engine is pure logic. It performs no I/O and keeps no clock of its own;
// every operation receives the host's monotonic play-time clock in seconds.
package badges

// BadgeID identifies a badge slot kind on the board.
type BadgeID string

const (
	BadgeF0 BadgeID = "f0" // formula updated
	BadgeS0 BadgeID = "s0" // review count, smallest tier
	BadgeS1 BadgeID = "s1"
	BadgeS2 BadgeID = "s2"
	BadgeT0 BadgeID = "t0" // play time
	BadgeC1 BadgeID = "c1" // clean reviews
	BadgeC2 BadgeID = "c2" // clean reviews without prompts
	BadgeC0 BadgeID = "c0" // grumpy cat

	// BadgeC0Removed is returned when a grumpy cat leaves the board.
	// It never occupies a cell.
	BadgeC0Removed BadgeID = "c0_removed"
)

var vocabulary = []BadgeID{BadgeF0, BadgeS0, BadgeS1, BadgeS2, BadgeT0, BadgeC1, BadgeC2, BadgeC0}

// All returns the fixed badge vocabulary in canonical order.
func All() []BadgeID {
	out := make([]BadgeID, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// Valid reports whether id belongs to the board vocabulary.
func (id BadgeID) Valid() bool {
	for _, b := range vocabulary {
		if b == id {
			return true
		}
	}
	return false
}

// Cell is one badge slot on the board.
type Cell struct {
	Badge          BadgeID `json:"badge"`
	IsActive       bool    `json:"is_active"`
	IsLastModified bool    `json:"is_last_modified"`
}

// Board is the ordered list of cells for the current level.
type Board []Cell

// NewBoard returns fresh inactive cells for the given badge sequence.
func NewBoard(ids []BadgeID) Board {
	b := make(Board, len(ids))
	for i, id := range ids {
		b[i] = Cell{Badge: id}
	}
	return b
}

// Clone returns a copy that shares no memory with b.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// Locked counts the inactive cells per badge.
func (b Board) Locked() BadgeSet {
	set := make(BadgeSet)
	for _, c := range b {
		if !c.IsActive {
			set[c.Badge]++
		}
	}
	return set
}

// CountActive returns the number of active cells holding id.
func (b Board) CountActive(id BadgeID) int {
	n := 0
	for _, c := range b {
		if c.Badge == id && c.IsActive {
			n++
		}
	}
	return n
}

// activateFirst activates the first inactive cell holding id.
func (b Board) activateFirst(id BadgeID) bool {
	for i := range b {
		if b[i].Badge == id && !b[i].IsActive {
			b[i].IsActive = true
			b[i].IsLastModified = true
			return true
		}
	}
	return false
}

// deactivateFirst deactivates the first active cell holding id.
func (b Board) deactivateFirst(id BadgeID) bool {
	for i := range b {
		if b[i].Badge == id && b[i].IsActive {
			b[i].IsActive = false
			b[i].IsLastModified = true
			return true
		}
	}
	return false
}

func (b Board) clearLastModified() {
	for i := range b {
		b[i].IsLastModified = false
	}
}

// BadgeSet is a multiset of badge ids.
type BadgeSet map[BadgeID]int

// Has reports whether id is in the set at least once.
func (s BadgeSet) Has(id BadgeID) bool {
	return s[id] > 0
}

// without returns a copy of s with one occurrence of id removed.
func (s BadgeSet) without(id BadgeID) BadgeSet {
	out := make(BadgeSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	if out[id] > 0 {
		out[id]--
	}
	return out
}

// Progress describes how close a locked badge is to being unlocked.
// Exactly one of RemainingTimeSecs and RemainingReviews is set.
type Progress struct {
	Badge             BadgeID
	Challenge         int64 // target in seconds or reviews
	Pct               int   // 0..100
	RemainingTimeSecs *int64
	RemainingReviews  *int
}

func timeProgress(id BadgeID, challenge, done int64) Progress {
	if done < 0 {
		done = 0
	}
	if done > challenge {
		done = challenge
	}
	remaining := challenge - done
	return Progress{
		Badge:             id,
		Challenge:         challenge,
		Pct:               pct(done, challenge),
		RemainingTimeSecs: &remaining,
	}
}

func reviewProgress(id BadgeID, challenge, done int) Progress {
	if done < 0 {
		done = 0
	}
	if done > challenge {
		done = challenge
	}
	remaining := challenge - done
	return Progress{
		Badge:            id,
		Challenge:        int64(challenge),
		Pct:              pct(int64(done), int64(challenge)),
		RemainingReviews: &remaining,
	}
}

func pct(done, total int64) int {
	if total <= 0 {
		return 100
	}
	p := int(done * 100 / total)
	if p > 100 {
		p = 100
	}
	return p
}
