package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-badges/internal/platform/tui"
)

var (
	flagTickSecs int64
	flagTickRate int
)

var playCmd = &cobra.Command{
	Use:   "play <user>",
	Short: "Interactive simulator",
	Long: `Open an interactive simulator for a user. A play clock runs from the
user's last stored time and every key press goes through the same path as
'badges event', so the stored board stays current.

Controls:
  G  - Game started        C      - Shoo grumpy cat
  F  - Formula updated     O      - Force a badge open
  P  - Prompt              Space  - Pause clock
  X  - Penalty             S      - Skip one hour
  R  - Review              Q/Esc  - Quit

Examples:
  badges play ada
  badges play ada --tick-secs 600`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagTickSecs, "tick-secs", 0, "Play seconds per tick (default: play.tick_secs)")
	playCmd.Flags().IntVar(&flagTickRate, "tick-rate", 0, "Ticks per second (default: play.tick_rate)")
}

func runPlay(_ *cobra.Command, args []string) {
	if !isTerminal() {
		fail("Error: play needs an interactive terminal")
	}

	a := mustOpenApp()
	defer a.close()

	u, err := a.store.User(args[0])
	if err != nil {
		fail("Error: %v", err)
	}

	opts := tui.Options{
		TickRate:  a.cfg.Play.TickRate,
		TickSecs:  a.cfg.Play.TickSecs,
		StartSecs: u.PlaySecs,
	}
	if flagTickSecs > 0 {
		opts.TickSecs = flagTickSecs
	}
	if flagTickRate > 0 {
		opts.TickRate = flagTickRate
	}

	// The TUI owns the terminal
	a.logger.SetOutput(io.Discard)

	if err := tui.Run(a.tracker, u.Name, opts); err != nil {
		fail("Error: %v", err)
	}
}
