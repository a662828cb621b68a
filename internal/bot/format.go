package bot

import (
	"fmt"
	"math"
	"strings"

	"daily-tasks/internal/model"
	"daily-tasks/internal/service"
	"daily-tasks/internal/tracker"
)

var medals = []string{"🥇", "🥈", "🥉"}

// userError turns a domain error into a chat reply.
func userError(err error) string {
	switch {
	case tracker.IsNotFound(err):
		return "Habit not found. Check /tasks for the numbers."
	case tracker.IsValidation(err):
		return "⚠️ " + escape(err.Error())
	default:
		return "Something went wrong: " + escape(err.Error())
	}
}

func progressLine(task tracker.Task) string {
	if task.IsBoolean() {
		if task.Completed {
			return "done"
		}
		return "not done"
	}
	line := fmt.Sprintf("%d/%d", task.Current, task.Target)
	if task.Unit != "" {
		line += " " + escape(task.Unit)
	}
	return line
}

func formatCreated(task tracker.Task) string {
	var sb strings.Builder
	sb.WriteString("✅ <b>Habit saved</b>\n")
	sb.WriteString(fmt.Sprintf("• <b>Name:</b> %s %s\n", task.Emoji, escape(task.Label)))
	sb.WriteString(fmt.Sprintf("• <b>Category:</b> %s %s\n", task.Category.Emoji(), task.Category.Title()))
	if !task.IsBoolean() {
		sb.WriteString(fmt.Sprintf("• <b>Target:</b> %s\n", progressLine(task)))
	}
	if task.IsRecurring {
		sb.WriteString("• <b>Repeats:</b> every day\n")
	} else {
		sb.WriteString("• <b>Repeats:</b> once\n")
	}
	return strings.TrimSpace(sb.String())
}

// formatTaskList shows pending habits first. Numbers are list positions for /progress, /done and /delete.
func formatTaskList(tasks []tracker.Task, progress float64) string {
	if len(tasks) == 0 {
		return "You have no habits yet. Add one with /newtask."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 <b>Today's habits</b>\n%s %d%%\n", service.ProgressBar(progress), int(math.Round(progress))))

	writeGroup := func(title string, completed bool) {
		first := true
		for i, task := range tasks {
			if task.Completed != completed {
				continue
			}
			if first {
				sb.WriteString(fmt.Sprintf("\n<b>%s</b>\n", title))
				first = false
			}
			sb.WriteString(fmt.Sprintf("%d. %s %s · %s", i+1, task.Emoji, escape(task.Label), progressLine(task)))
			if task.IsRecurring {
				sb.WriteString(" ♻️")
			}
			sb.WriteByte('\n')
		}
	}
	writeGroup("⏳ To do", false)
	writeGroup("✅ Done", true)

	return strings.TrimSpace(sb.String())
}

func formatOutcome(out tracker.Outcome, score int, celebration string) string {
	task := out.Task
	switch {
	case out.Completed:
		return fmt.Sprintf("🎉 %s\n%s <b>%s</b> done! +%d points · ⭐ %d", celebration, task.Emoji, escape(task.Label), out.Points, score)
	case task.Completed:
		return fmt.Sprintf("✅ %s %s is done.", task.Emoji, escape(task.Label))
	default:
		return fmt.Sprintf("%s %s: %s", task.Emoji, escape(task.Label), progressLine(task))
	}
}

func formatStats(sum tracker.Summary, rank int, ranked bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 <b>Today</b> · %s\n", sum.Today))
	sb.WriteString(fmt.Sprintf("%s %d%% · %d/%d done\n", service.ProgressBar(sum.Progress), int(math.Round(sum.Progress)), sum.CompletedCount, len(sum.Tasks)))
	sb.WriteString(fmt.Sprintf("🔥 Streak: %d · ⭐ Score: %d\n", sum.Streak, sum.Score))
	sb.WriteString(fmt.Sprintf("✅ Total done: %d · 📅 Days active: %d\n", sum.TasksCompleted, sum.DaysActive))
	if ranked {
		sb.WriteString(fmt.Sprintf("🏅 Leaderboard rank: #%d\n", rank))
	}

	if len(sum.Categories) > 0 {
		sb.WriteString("\n<b>By category</b>\n")
		for _, c := range tracker.Categories {
			pct, ok := sum.Categories[c]
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s %s %s %d%%\n", c.Emoji(), c.Title(), service.ProgressBar(pct), int(math.Round(pct))))
		}
	}

	if len(sum.Week) > 0 {
		sb.WriteString("\n<b>Last 7 days</b>\n")
		for _, rec := range sum.Week {
			pct := rec.Percentage()
			sb.WriteString(fmt.Sprintf("<code>%s</code> %s %d%%\n", rec.Date.Time().Format("Mon 02"), service.ProgressBar(pct), int(math.Round(pct))))
		}
		sb.WriteString(fmt.Sprintf("Weekly average: %.1f%%\n", sum.WeeklyAverage))
	}

	sb.WriteString(fmt.Sprintf("\n🏆 Achievements: %d/%d", tracker.UnlockedCount(sum.Achievements), len(sum.Achievements)))
	if sum.Degraded {
		sb.WriteString("\n⚠️ Storage is unavailable, changes are kept only until restart.")
	}
	return sb.String()
}

func formatRewardCycle(streak int) string {
	current := tracker.DailyReward(streak).Day
	var sb strings.Builder
	sb.WriteString("<b>Weekly rewards</b>\n")
	for _, r := range tracker.RewardCycle() {
		line := fmt.Sprintf("Day %d %s +%d", r.Day, r.Emoji, r.Points)
		if r.Day == current {
			line = "<b>" + line + " ← today</b>"
		}
		sb.WriteString(line + "\n")
	}
	return strings.TrimSpace(sb.String())
}

func formatAchievements(list []tracker.Achievement) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 <b>Achievements</b> %d/%d\n\n", tracker.UnlockedCount(list), len(list)))
	for _, a := range list {
		icon := "🔒"
		if a.Unlocked {
			icon = a.Icon
		}
		sb.WriteString(fmt.Sprintf("%s <b>%s</b> · %s\n", icon, escape(a.Title), escape(a.Description)))
	}
	return strings.TrimSpace(sb.String())
}

func formatLeaderboard(entries []model.LeaderboardEntry, userID int64, rank int, ranked bool) string {
	if len(entries) == 0 {
		return "🏆 No scores yet. Complete a habit to get on the board!"
	}
	var sb strings.Builder
	sb.WriteString("🏆 <b>Leaderboard</b>\n\n")
	for i, e := range entries {
		place := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			place = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s · ⭐ %d · 🔥 %d", place, escape(e.DisplayName), e.Score, e.Streak))
		if e.UserID == userID {
			sb.WriteString(" ← you")
		}
		sb.WriteByte('\n')
	}
	if ranked {
		sb.WriteString(fmt.Sprintf("\nYour rank: #%d", rank))
	} else {
		sb.WriteString("\nYou're not ranked yet.")
	}
	return strings.TrimSpace(sb.String())
}
