package service

import (
	"context"
	"fmt"
	"html"
	"math"
	"strings"
	"time"

	"daily-tasks/internal/model"
	"daily-tasks/internal/tracker"
)

const progressBarWidth = 10

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	sessions *SessionService
}

func NewReminderService(sessions *SessionService) *ReminderService {
	return &ReminderService{sessions: sessions}
}

// DailySummary renders the user's report from a read-only view of their session.
func (s *ReminderService) DailySummary(ctx context.Context, user model.User, now time.Time) (string, error) {
	sum, err := s.sessions.Peek(ctx, user.Namespace())
	if err != nil {
		return "", err
	}
	return FormatSummary(sum, now), nil
}

// FormatSummary renders the report as Telegram HTML.
func FormatSummary(sum tracker.Summary, now time.Time) string {
	var pending, done []tracker.Task
	for _, task := range sum.Tasks {
		if task.Completed {
			done = append(done, task)
		} else {
			pending = append(pending, task)
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Mon, 02 Jan 2006")))

	builder.WriteString(fmt.Sprintf("%s %d%% · %d/%d done\n",
		ProgressBar(sum.Progress), int(math.Round(sum.Progress)), sum.CompletedCount, len(sum.Tasks)))
	builder.WriteString(fmt.Sprintf("🔥 Streak: %d · ⭐ Score: %d\n", sum.Streak, sum.Score))

	builder.WriteString("\n⏳ <b>Still to do</b>\n")
	if len(pending) == 0 {
		if len(sum.Tasks) == 0 {
			builder.WriteString("— no tasks yet, add one with /newtask\n")
		} else {
			builder.WriteString("— everything is done 🎉\n")
		}
	} else {
		for _, task := range pending {
			builder.WriteString(FormatTaskLine(task))
		}
	}

	if len(done) > 0 {
		builder.WriteString("\n✅ <b>Done</b>\n")
		for _, task := range done {
			builder.WriteString(FormatTaskLine(task))
		}
	}

	if !sum.RewardClaimed {
		builder.WriteString(fmt.Sprintf("\n🎁 Daily reward ready: %s +%d (/reward)\n", sum.NextReward.Emoji, sum.NextReward.Points))
	}

	return strings.TrimSpace(builder.String())
}

// FormatTaskLine renders one task with its progress.
func FormatTaskLine(task tracker.Task) string {
	var sb strings.Builder

	icon := "⬜"
	if task.Completed {
		icon = "✅"
	}
	sb.WriteString(fmt.Sprintf("%s %s %s", icon, task.Emoji, html.EscapeString(task.Label)))

	if !task.IsBoolean() {
		sb.WriteString(fmt.Sprintf(" · %d/%d", task.Current, task.Target))
		if task.Unit != "" {
			sb.WriteString(" " + html.EscapeString(task.Unit))
		}
	}
	if task.IsRecurring {
		sb.WriteString(" ♻️")
	}
	sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", task.Category.Title()))

	sb.WriteByte('\n')
	return sb.String()
}

// ProgressBar draws a fixed-width bar for a 0..100 percentage.
func ProgressBar(percent float64) string {
	filled := int(math.Round(percent / 100 * progressBarWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressBarWidth-filled)
}
