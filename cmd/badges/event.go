package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-badges/internal/tracker"
	"github.com/vovakirdan/tui-badges/internal/transport"
)

var eventCmd = &cobra.Command{
	Use:   "event <user> <kind> <secs>",
	Short: "Apply a gameplay event",
	Long: `Apply one event to the user's board at the given play time.
Prints the badge that changed, or nothing.

Event kinds:
  game_started, formula_updated, prompt, penalty, review,
  shoo_cat, force_open

Examples:
  badges event ada game_started 0
  badges event ada penalty 4200
  badges event ada shoo_cat 4300`,
	Args: cobra.ExactArgs(3),
	Run:  runEvent,
}

func runEvent(_ *cobra.Command, args []string) {
	kind, err := tracker.ParseEventKind(args[1])
	if err != nil {
		fail("Error: %v", err)
	}
	secs, err := parseSecs(args[2])
	if err != nil {
		fail("Error: %v", err)
	}

	a := mustOpenApp()
	defer a.close()

	res, err := a.tracker.Apply(args[0], kind, secs)
	if err != nil {
		fail("Error: %v", err)
	}
	if res.Unlocked() {
		fmt.Println(res.Badge)
	}
	a.logger.Debug("board", "user", res.User, "level", res.Level, "encoded", transport.SerializeBoard(res.Board))
}

// parseSecs accepts plain seconds or a Go duration such as 26h.
func parseSecs(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("play time must not be negative: %d", n)
		}
		return n, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid play time %q: use seconds or a duration like 90m", s)
	}
	return int64(d / time.Second), nil
}
