package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daily-tasks/internal/ui"
)

const Version = "0.2.0"

var profileFlag string

var rootCmd = &cobra.Command{
	Use:           "dailytasks",
	Short:         "Daily habit tracker with streaks, points and a Telegram bot",
	Long:          "Daily Tasks tracks recurring habits per day, keeps a streak of consecutive days and awards points for completions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Local profile to act on (default from PROFILE)")

	rootCmd.AddCommand(
		newBotCmd(),
		newTasksCmd(),
		newAddCmd(),
		newProgressCmd(),
		newDoneCmd(),
		newDeleteCmd(),
		newStatsCmd(),
		newRewardCmd(),
		newAchievementsCmd(),
		newLeaderboardCmd(),
		newModeCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
