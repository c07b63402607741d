package transport

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-badges/internal/badges"
)

func TestSerializeCell(t *testing.T) {
	tests := []struct {
		cell badges.Cell
		want string
	}{
		{badges.Cell{Badge: "f0"}, "f0"},
		{badges.Cell{Badge: "s1", IsActive: true}, "s1a"},
		{badges.Cell{Badge: "c0", IsLastModified: true}, "c0m"},
		{badges.Cell{Badge: "t0", IsActive: true, IsLastModified: true}, "t0am"},
	}

	for _, tt := range tests {
		if got := SerializeCell(tt.cell); got != tt.want {
			t.Errorf("SerializeCell(%+v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestSerializeBoard(t *testing.T) {
	b := badges.Board{
		{Badge: "f0", IsActive: true, IsLastModified: true},
		{Badge: "s0"},
		{Badge: "s1"},
		{Badge: "c0"},
	}
	want := "f0am_s0_s1_c0"

	got := SerializeBoard(b)
	if got != want {
		t.Fatalf("SerializeBoard() = %q, want %q", got, want)
	}

	parsed, err := ParseBoard(got)
	if err != nil {
		t.Fatalf("ParseBoard() failed: %v", err)
	}
	if len(parsed) != len(b) {
		t.Fatalf("ParseBoard() returned %d cells, want %d", len(parsed), len(b))
	}
	for i := range b {
		if parsed[i] != b[i] {
			t.Errorf("cell %d = %+v, want %+v", i, parsed[i], b[i])
		}
	}

	if SerializeBoard(nil) != "" {
		t.Error("empty board should encode to empty string")
	}
}

func TestSerializeProgress(t *testing.T) {
	secs := int64(3600)
	reviews := 4
	progress := map[badges.BadgeID]badges.Progress{
		"s0": {Badge: "s0", Pct: 20, RemainingReviews: &reviews},
		"t0": {Badge: "t0", Pct: 95, RemainingTimeSecs: &secs},
		"c1": {Badge: "c1", Pct: 0},
	}

	got, err := SerializeProgress(progress)
	if err != nil {
		t.Fatalf("SerializeProgress() failed: %v", err)
	}
	want := "s0_4_20--t0_3600_95--c1_0_0"
	if got != want {
		t.Errorf("SerializeProgress() = %q, want %q", got, want)
	}

	entries, err := ParseProgress(got)
	if err != nil {
		t.Fatalf("ParseProgress() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Metric != RemainingTimeSecs || entries[1].Value != 3600 || entries[1].Pct != 95 {
		t.Errorf("unexpected t0 entry: %+v", entries[1])
	}
	if entries[0].Metric != RemainingReviews {
		t.Errorf("s0 should report remaining reviews, got %v", entries[0].Metric)
	}
}

func TestSerializeProgressUnknownBadge(t *testing.T) {
	progress := map[badges.BadgeID]badges.Progress{
		"c0_removed": {Badge: "c0_removed"},
	}
	if _, err := SerializeProgress(progress); !errors.Is(err, ErrUnknownBadge) {
		t.Errorf("expected ErrUnknownBadge, got %v", err)
	}
}

func TestMetricFor(t *testing.T) {
	for _, id := range badges.All() {
		if _, err := MetricFor(id); err != nil {
			t.Errorf("MetricFor(%q) failed: %v", id, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	boards := []string{"f", "zz", "f0x", "f0ma"}
	for _, s := range boards {
		if _, err := ParseBoard(s); err == nil {
			t.Errorf("ParseBoard(%q) should fail", s)
		}
	}

	entries := []string{"s0_1", "s0_x_1", "q1_1_1", "s0_1_y"}
	for _, s := range entries {
		if _, err := ParseProgress(s); err == nil {
			t.Errorf("ParseProgress(%q) should fail", s)
		}
	}
}

func TestQueryFragment(t *testing.T) {
	m := badges.New("", 2, fixedLevel{"f0", "s0", "s1", "c0"})
	m.OnGameStarted(0)

	got, err := QueryFragment(m.Board(), m.Progress(0))
	if err != nil {
		t.Fatalf("QueryFragment() failed: %v", err)
	}
	want := "b1=f0am_s0_s1_c0&bp1=s0_5_0"
	if got != want {
		t.Errorf("QueryFragment() = %q, want %q", got, want)
	}
}

type fixedLevel []badges.BadgeID

func (f fixedLevel) Level(_, _ int) []badges.BadgeID {
	out := make([]badges.BadgeID, len(f))
	copy(out, f)
	return out
}
