package root

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"daily-tasks/internal/model"
	"daily-tasks/internal/tracker"
	"daily-tasks/internal/ui"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's progress, streak and the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				printStats(cmd.OutOrStdout(), tr.Summary(cmd.Context()))
				return nil
			})
		},
	}
}

func newRewardCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Claim today's streak reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				w := cmd.OutOrStdout()
				if !show {
					reward, err := tr.ClaimDailyReward(cmd.Context())
					switch {
					case errors.Is(err, tracker.ErrRewardClaimed):
						fmt.Fprintln(w, ui.Muted.Render("Today's reward is already claimed, come back tomorrow."))
					case err != nil:
						return err
					default:
						fmt.Fprintf(w, "%s %s\n", ui.Gold.Render(fmt.Sprintf("%s Day %d reward: +%d points", reward.Emoji, reward.Day, reward.Points)),
							ui.Muted.Render(fmt.Sprintf("(%s %d)", ui.IconStar, tr.Score())))
					}
					fmt.Fprintln(w, "")
				}
				printRewardCycle(w, tr.Streak())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Only show the reward cycle")
	return cmd
}

func newAchievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTracker(cmd.Context(), func(a *app, tr *tracker.Tracker) error {
				printAchievements(cmd.OutOrStdout(), tracker.Achievements(tr.Stats()))
				return nil
			})
		},
	}
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()
			printLeaderboard(cmd.OutOrStdout(), a.leaderboard.TopEntries(cmd.Context(), limit))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries")
	return cmd
}

func printStats(w io.Writer, sum tracker.Summary) {
	fmt.Fprintln(w, ui.Heading(ui.IconChart, "Today · "+sum.Today.String()))
	fmt.Fprintln(w, ui.Bar(sum.Progress), ui.Muted.Render(fmt.Sprintf("%d/%d done", sum.CompletedCount, len(sum.Tasks))))
	fmt.Fprintln(w, ui.LabelValue(ui.IconFire+" Streak", sum.Streak), " ", ui.LabelValue(ui.IconStar+" Score", sum.Score))
	fmt.Fprintln(w, ui.LabelValue(ui.IconDone+" Total done", sum.TasksCompleted), " ", ui.LabelValue("Days active", sum.DaysActive))

	if len(sum.Categories) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.H2.Render("By category"))
		for _, c := range tracker.Categories {
			pct, ok := sum.Categories[c]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%s %-9s %s\n", c.Emoji(), c.Title(), ui.Bar(pct))
		}
	}

	if len(sum.Week) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, ui.H2.Render("Last 7 days"))
		for _, rec := range sum.Week {
			fmt.Fprintf(w, "%s %s\n", ui.Muted.Render(rec.Date.Time().Format("Mon 02")), ui.Bar(rec.Percentage()))
		}
		fmt.Fprintln(w, ui.LabelValue("Weekly average", ui.Percent(sum.WeeklyAverage)))
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, ui.LabelValue(ui.IconTrophy+" Achievements", fmt.Sprintf("%d/%d", tracker.UnlockedCount(sum.Achievements), len(sum.Achievements))))
	if !sum.RewardClaimed {
		fmt.Fprintln(w, ui.Gold.Render(fmt.Sprintf("%s Daily reward ready: +%d (dailytasks reward)", ui.IconGift, sum.NextReward.Points)))
	}
	if sum.Degraded {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" Storage is unavailable, changes are kept only until exit."))
	}
}

func printRewardCycle(w io.Writer, streak int) {
	current := tracker.DailyReward(streak).Day
	fmt.Fprintln(w, ui.H2.Render("Weekly rewards"))
	for _, r := range tracker.RewardCycle() {
		line := fmt.Sprintf("Day %d %s +%d", r.Day, r.Emoji, r.Points)
		if r.Day == current {
			fmt.Fprintln(w, ui.Gold.Render(line+" ← today"))
			continue
		}
		fmt.Fprintln(w, ui.Muted.Render(line))
	}
}

func printAchievements(w io.Writer, list []tracker.Achievement) {
	fmt.Fprintln(w, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", tracker.UnlockedCount(list), len(list))))
	for _, a := range list {
		if a.Unlocked {
			fmt.Fprintf(w, "%s %s %s\n", a.Icon, ui.Good.Render(a.Title), ui.Muted.Render(a.Description))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", ui.IconLock, ui.Muted.Render(a.Title), ui.Muted.Render(a.Description))
	}
}

func printLeaderboard(w io.Writer, entries []model.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.Muted.Render("No scores yet."))
		return
	}
	fmt.Fprintln(w, ui.Heading(ui.IconTrophy, "Leaderboard"))
	for i, e := range entries {
		fmt.Fprintf(w, "%s %-20s %s %s\n", ui.Key.Render(fmt.Sprintf("%2d.", i+1)), e.DisplayName,
			ui.Gold.Render(fmt.Sprintf("%s %d", ui.IconStar, e.Score)), ui.Muted.Render(fmt.Sprintf("%s %d", ui.IconFire, e.Streak)))
	}
}
