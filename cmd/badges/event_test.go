package main

import "testing"

func TestParseSecs(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"3600", 3600, false},
		{"90m", 5400, false},
		{"26h", 93600, false},
		{"1h30m15s", 5415, false},
		{"-1", 0, true},
		{"-5m", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := parseSecs(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSecs(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseSecs(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("debug"); err != nil {
		t.Errorf("newLogger(debug) failed: %v", err)
	}
	if _, err := newLogger("chatty"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestNewGeneratorSeeded(t *testing.T) {
	logger, _ := newLogger("error")
	a, err := newGenerator(42, logger)
	if err != nil {
		t.Fatalf("newGenerator() failed: %v", err)
	}
	b, _ := newGenerator(42, logger)

	for n := 50; n < 60; n++ {
		la, lb := a.Level(4, n), b.Level(4, n)
		if len(la) != len(lb) {
			t.Fatalf("level %d differs between equal seeds: %v vs %v", n, la, lb)
		}
	}
}
