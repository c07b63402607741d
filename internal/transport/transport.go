// Package transport encodes board and progress snapshots into the compact
// strings the front-end reads from URL query fragments (b1=..., bp1=...).
//
// Grammar:
//
//	cell     = badge ["a"] ["m"]          a: active, m: last modified
//	board    = cell *("_" cell)
//	entry    = badge "_" value "_" pct    value: seconds or reviews left
//	progress = entry *("--" entry)
package transport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-badges/internal/badges"
)

// ErrUnknownBadge is returned for badge ids outside the board vocabulary.
var ErrUnknownBadge = errors.New("transport: unknown badge")

// ErrMalformed is returned when an encoded string does not follow the grammar.
var ErrMalformed = errors.New("transport: malformed input")

const (
	cellSep  = "_"
	entrySep = "--"
)

// Metric names the value carried by a progress entry.
type Metric int

const (
	RemainingTimeSecs Metric = iota
	RemainingReviews
)

func (m Metric) String() string {
	switch m {
	case RemainingTimeSecs:
		return "remaining_time_secs"
	case RemainingReviews:
		return "remaining_reviews"
	default:
		return "unknown"
	}
}

// MetricFor returns the metric a badge reports.
func MetricFor(id badges.BadgeID) (Metric, error) {
	switch id {
	case badges.BadgeC1, badges.BadgeC2, badges.BadgeF0, badges.BadgeT0:
		return RemainingTimeSecs, nil
	case badges.BadgeS0, badges.BadgeS1, badges.BadgeS2, badges.BadgeC0:
		return RemainingReviews, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBadge, id)
}

// SerializeCell encodes one cell.
func SerializeCell(c badges.Cell) string {
	s := string(c.Badge)
	if c.IsActive {
		s += "a"
	}
	if c.IsLastModified {
		s += "m"
	}
	return s
}

// SerializeBoard encodes a board.
func SerializeBoard(b badges.Board) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = SerializeCell(c)
	}
	return strings.Join(parts, cellSep)
}

// SerializeProgress encodes a progress map. Entries follow the canonical
// badge order.
func SerializeProgress(progress map[badges.BadgeID]badges.Progress) (string, error) {
	for id := range progress {
		if _, err := MetricFor(id); err != nil {
			return "", err
		}
	}

	var parts []string
	for _, id := range badges.All() {
		p, ok := progress[id]
		if !ok {
			continue
		}
		metric, _ := MetricFor(id)
		var value int64
		switch metric {
		case RemainingTimeSecs:
			if p.RemainingTimeSecs != nil {
				value = *p.RemainingTimeSecs
			}
		case RemainingReviews:
			if p.RemainingReviews != nil {
				value = int64(*p.RemainingReviews)
			}
		}
		parts = append(parts, fmt.Sprintf("%s_%d_%d", id, value, p.Pct))
	}
	return strings.Join(parts, entrySep), nil
}

// QueryFragment joins the board and progress encodings as URL parameters.
func QueryFragment(b badges.Board, progress map[badges.BadgeID]badges.Progress) (string, error) {
	bp, err := SerializeProgress(progress)
	if err != nil {
		return "", err
	}
	return "b1=" + SerializeBoard(b) + "&bp1=" + bp, nil
}

// ParseBoard decodes a board encoding.
func ParseBoard(s string) (badges.Board, error) {
	if s == "" {
		return badges.Board{}, nil
	}
	parts := strings.Split(s, cellSep)
	b := make(badges.Board, 0, len(parts))
	for _, part := range parts {
		c, err := parseCell(part)
		if err != nil {
			return nil, err
		}
		b = append(b, c)
	}
	return b, nil
}

func parseCell(s string) (badges.Cell, error) {
	if len(s) < 2 {
		return badges.Cell{}, fmt.Errorf("%w: cell %q", ErrMalformed, s)
	}
	c := badges.Cell{Badge: badges.BadgeID(s[:2])}
	if !c.Badge.Valid() {
		return badges.Cell{}, fmt.Errorf("%w: %q", ErrUnknownBadge, c.Badge)
	}
	flags := s[2:]
	if strings.HasPrefix(flags, "a") {
		c.IsActive = true
		flags = flags[1:]
	}
	if strings.HasPrefix(flags, "m") {
		c.IsLastModified = true
		flags = flags[1:]
	}
	if flags != "" {
		return badges.Cell{}, fmt.Errorf("%w: cell %q", ErrMalformed, s)
	}
	return c, nil
}

// Entry is one decoded progress entry.
type Entry struct {
	Badge  badges.BadgeID
	Metric Metric
	Value  int64
	Pct    int
}

// ParseProgress decodes a progress encoding.
func ParseProgress(s string) ([]Entry, error) {
	if s == "" {
		return nil, nil
	}
	var out []Entry
	for _, part := range strings.Split(s, entrySep) {
		fields := strings.Split(part, "_")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: entry %q", ErrMalformed, part)
		}
		id := badges.BadgeID(fields[0])
		metric, err := MetricFor(id)
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, part, err)
		}
		pct, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", ErrMalformed, part, err)
		}
		out = append(out, Entry{Badge: id, Metric: metric, Value: value, Pct: pct})
	}
	return out, nil
}
