package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-badges/internal/platform/tui"
	"github.com/vovakirdan/tui-badges/internal/transport"
)

var (
	flagEncoded bool
	flagAt      string
	flagNext    bool
)

var boardCmd = &cobra.Command{
	Use:   "board <user>",
	Short: "Show the current board",
	Long: `Show the user's board. Open badges are highlighted, locked ones are
bracketed and the last changed cell is marked with ^.

With --encoded the board and progress are printed as the b1/bp1 query
fragment used by web clients.

Examples:
  badges board ada
  badges board ada --encoded --at 7200`,
	Args: cobra.ExactArgs(1),
	Run:  runBoard,
}

var progressCmd = &cobra.Command{
	Use:   "progress <user> <secs>",
	Short: "Show progress towards locked badges",
	Long: `Show how close each locked badge is to opening at the given play time.
With --next, show the empty progress of the level after the current one.

Examples:
  badges progress ada 7200
  badges progress ada 7200 --next`,
	Args: cobra.ExactArgs(2),
	Run:  runProgress,
}

func init() {
	boardCmd.Flags().BoolVar(&flagEncoded, "encoded", false, "Print the b1/bp1 query fragment")
	boardCmd.Flags().StringVar(&flagAt, "at", "", "Play time for progress (default: last stored)")
	progressCmd.Flags().BoolVar(&flagNext, "next", false, "Preview the next level")
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func runBoard(_ *cobra.Command, args []string) {
	var secs int64
	if flagAt != "" {
		var err error
		if secs, err = parseSecs(flagAt); err != nil {
			fail("Error: %v", err)
		}
	}

	a := mustOpenApp()
	defer a.close()

	snap, err := a.tracker.Snapshot(args[0], secs)
	if err != nil {
		fail("Error: %v", err)
	}

	if flagEncoded {
		fmt.Println(snap.Encoded)
		return
	}
	if !isTerminal() {
		fmt.Println(transport.SerializeBoard(snap.Board))
		return
	}

	theme := tui.DefaultTheme()
	fmt.Printf("%s - level %d\n\n", snap.User.Name, snap.Level)
	fmt.Println(tui.RenderBoard(theme, snap.Board))
	if snap.Cats > 0 {
		fmt.Printf("\nGrumpy cats: %d (hp %d)\n", snap.Cats, snap.CatHP)
	}
	if snap.Completed {
		fmt.Println("\nLevel complete. Next level:")
		fmt.Println(tui.RenderBoard(theme, snap.NextBoard))
	}
}

func runProgress(_ *cobra.Command, args []string) {
	secs, err := parseSecs(args[1])
	if err != nil {
		fail("Error: %v", err)
	}

	a := mustOpenApp()
	defer a.close()

	snap, err := a.tracker.Snapshot(args[0], secs)
	if err != nil {
		fail("Error: %v", err)
	}

	progress := snap.Progress
	if flagNext {
		progress = snap.NextProgress
	}

	if !isTerminal() {
		encoded, err := transport.SerializeProgress(progress)
		if err != nil {
			fail("Error: %v", err)
		}
		fmt.Println(encoded)
		return
	}

	if flagNext {
		fmt.Printf("%s - level %d preview\n\n", snap.User.Name, snap.Level+1)
	} else {
		fmt.Printf("%s - level %d at %s\n\n", snap.User.Name, snap.Level, tui.FormatDuration(secs))
	}
	fmt.Println(tui.RenderProgress(tui.DefaultTheme(), progress))
}
