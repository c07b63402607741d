package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-badges/internal/platform/tui"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history <user>",
	Short: "Show recent unlocks",
	Long: `Display the most recent badge changes for a user, newest first.

Examples:
  badges history ada
  badges history ada --limit 50`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of entries to show")
}

func runHistory(_ *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.close()

	u, err := a.store.User(args[0])
	if err != nil {
		fail("Error: %v", err)
	}

	entries, err := a.store.Unlocks(u.ID, flagHistoryLimit)
	if err != nil {
		fail("Error retrieving history: %v", err)
	}

	fmt.Printf("History - %s\n", u.Name)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No badges yet.")
		fmt.Println()
		fmt.Printf("Run 'badges event %s game_started 0' to start.\n", u.Name)
		return
	}

	fmt.Printf("  %-10s  %-5s  %-10s  %s\n", "Badge", "Level", "Play time", "Date")
	fmt.Printf("  %-10s  %-5s  %-10s  %s\n", "-----", "-----", "---------", "----")
	for _, e := range entries {
		fmt.Printf("  %-10s  %-5d  %-10s  %s\n",
			e.Badge, e.Level, tui.FormatDuration(e.PlaySecs), e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
