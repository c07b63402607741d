package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-badges/internal/config"
	"github.com/vovakirdan/tui-badges/internal/platform/tui"
)

var flagUserDifficulty string

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a user",
	Long: `Create a user with an empty board. The difficulty is fixed for the
life of the user; it defaults to engine.difficulty from the config.

Examples:
  badges user create ada
  badges user create bob --difficulty hardest`,
	Args: cobra.ExactArgs(1),
	Run:  runUserCreate,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Args:  cobra.NoArgs,
	Run:   runUserList,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <user>",
	Short: "Delete a user and their history",
	Args:  cobra.ExactArgs(1),
	Run:   runUserDelete,
}

func init() {
	userCreateCmd.Flags().StringVar(&flagUserDifficulty, "difficulty", "", "Difficulty 0-4 or easiest, easy, normal, hard, hardest")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeleteCmd)
}

func runUserCreate(_ *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.close()

	difficulty := a.cfg.Engine.Difficulty
	if flagUserDifficulty != "" {
		d, err := config.ParseDifficulty(flagUserDifficulty)
		if err != nil {
			fail("Error: %v", err)
		}
		difficulty = d
	}

	u, err := a.store.CreateUser(args[0], int(difficulty))
	if err != nil {
		fail("Error: %v", err)
	}
	a.logger.Info("user created", "name", u.Name, "id", u.ID, "difficulty", difficulty)
	fmt.Println(u.ID)
}

func runUserList(_ *cobra.Command, _ []string) {
	a := mustOpenApp()
	defer a.close()

	users, err := a.store.Users()
	if err != nil {
		fail("Error retrieving users: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No users yet.")
		fmt.Println()
		fmt.Println("Run 'badges user create <name>' to add one.")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-10s  %s\n", "Name", "Difficulty", "Play time", "ID")
	fmt.Printf("  %-16s  %-10s  %-10s  %s\n", "----", "----------", "---------", "--")
	for _, u := range users {
		fmt.Printf("  %-16s  %-10s  %-10s  %s\n",
			u.Name, config.Difficulty(u.Difficulty), tui.FormatDuration(u.PlaySecs), u.ID)
	}
}

func runUserDelete(_ *cobra.Command, args []string) {
	a := mustOpenApp()
	defer a.close()

	u, err := a.store.User(args[0])
	if err != nil {
		fail("Error: %v", err)
	}
	if err := a.store.DeleteUser(u.ID); err != nil {
		fail("Error: %v", err)
	}
	a.logger.Info("user deleted", "name", u.Name, "id", u.ID)
}
