package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"daily-tasks/internal/model"
	"daily-tasks/internal/tracker"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}

	if !msg.IsCommand() && isCancelDialogInput(msg.Text) {
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Cancelled. Pick something from the menu to start again.")
	}

	if !msg.IsCommand() {
		if handled, err := b.handleMenuAlias(ctx, msg); handled {
			return err
		}
	}

	if msg.IsCommand() {
		b.log.Info("command",
			zap.Int64("user", msg.From.ID),
			zap.String("command", msg.Command()),
			zap.String("args", msg.CommandArguments()))
		return b.handleCommand(ctx, msg)
	}

	if pending, ok := b.getConfirmation(msg.From.ID); ok {
		return b.handleConfirmationResponse(ctx, msg, pending)
	}

	if b.hasConversation(msg.From.ID) {
		b.log.Debug("conversation step", zap.Int64("user", msg.From.ID), zap.Int("stage", int(b.getConversation(msg.From.ID).stage)))
		return b.handleConversation(ctx, msg)
	}

	return b.sendText(msg.Chat.ID, "I didn't get that. Try /newtask to add a habit or /help for the command list.")
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(ctx, msg)
	case "help":
		return b.handleHelp(msg)
	case "newtask":
		return b.startNewTaskConversation(ctx, msg)
	case "tasks":
		return b.handleListTasks(ctx, msg)
	case "progress":
		return b.handleProgress(ctx, msg)
	case "done":
		return b.handleDone(ctx, msg)
	case "delete":
		return b.handleDelete(ctx, msg)
	case "stats":
		return b.handleStats(ctx, msg)
	case "reward":
		return b.handleReward(ctx, msg)
	case "achievements":
		return b.handleAchievements(ctx, msg)
	case "leaderboard":
		return b.handleLeaderboard(ctx, msg)
	case "mode":
		return b.handleMode(ctx, msg)
	case "report":
		return b.handleReport(ctx, msg)
	case "interval":
		return b.handleInterval(msg)
	case "cancel":
		b.clearConversation(msg.From.ID)
		b.clearConfirmation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "⏪ Cancelled.")
	default:
		return b.sendText(msg.Chat.ID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	var seeded []tracker.Task
	var streak int
	if err := b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		var err error
		seeded, err = tr.Onboard(ctx)
		streak = tr.Streak()
		return err
	}); err != nil {
		return err
	}
	if len(seeded) > 0 {
		b.log.Info("user onboarded", zap.Int64("user", msg.From.ID), zap.Int("tasks", len(seeded)))
	}

	name := strings.TrimSpace(msg.From.FirstName)
	if name == "" {
		name = "friend"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👋 Hi, %s!\n<b>I track your daily habits, streaks and points.</b>\n\n", escape(name)))
	if len(seeded) > 0 {
		sb.WriteString("I added a few habits to get you going:\n")
		for _, task := range seeded {
			sb.WriteString(fmt.Sprintf("• %s %s\n", task.Emoji, escape(task.Label)))
		}
		sb.WriteByte('\n')
	} else {
		sb.WriteString(fmt.Sprintf("🔥 Current streak: %d\n\n", streak))
	}
	sb.WriteString(helpText)
	return b.sendText(msg.Chat.ID, sb.String())
}

const helpText = "Commands:\n" +
	"• /newtask — add a habit step by step\n" +
	"• /tasks — today's habits with quick buttons\n" +
	"• /progress &lt;n&gt; &lt;value&gt; — set progress of habit n\n" +
	"• /done &lt;n&gt; — mark habit n done\n" +
	"• /delete &lt;n&gt; — remove habit n\n" +
	"• /stats — progress, categories and the last 7 days\n" +
	"• /reward — claim today's reward\n" +
	"• /achievements — badges\n" +
	"• /leaderboard — top scores\n" +
	"• /mode swipe|tap — how buttons check in\n" +
	"• /report — send the daily report now\n" +
	"• /interval &lt;hours&gt; — report frequency\n" +
	"• /cancel — cancel the current input"

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	return b.sendText(msg.Chat.ID, "ℹ️ <b>Help</b>\n"+helpText)
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	text, err := b.reminderSvc.DailySummary(ctx, *user, time.Now())
	if err != nil {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Could not build the report: %s", escape(err.Error())))
	}
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) startNewTaskConversation(ctx context.Context, msg *tgbotapi.Message) error {
	if _, err := b.ensureUser(ctx, msg.From); err != nil {
		return err
	}
	b.log.Info("start new task conversation", zap.Int64("user", msg.From.ID))
	b.setConversation(msg.From.ID, &conversationState{stage: stageLabel})
	return b.sendWithReplyMarkup(msg.Chat.ID, "🆕 New habit.\n<b>Step 1:</b> what should it be called?", cancelKeyboard())
}

func (b *Bot) handleConversation(ctx context.Context, msg *tgbotapi.Message) error {
	state := b.getConversation(msg.From.ID)
	if state == nil {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	switch state.stage {
	case stageLabel:
		if text == "" {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The name can't be empty. Try again.", cancelKeyboard())
		}
		state.input.Label = text
		state.stage = stageEmoji
		return b.sendWithReplyMarkup(msg.Chat.ID, "😀 Send an emoji for it (or skip).", emojiKeyboard())
	case stageEmoji:
		if !isSkipInput(text) {
			state.input.Emoji = text
		}
		state.stage = stageCategory
		return b.sendWithReplyMarkup(msg.Chat.ID, "🏷 Pick a category.", categoryKeyboard())
	case stageCategory:
		if !isSkipInput(text) {
			category, ok := parseCategoryInput(text)
			if !ok {
				return b.sendWithReplyMarkup(msg.Chat.ID, "Pick one of the categories below.", categoryKeyboard())
			}
			state.input.Category = category
		}
		state.stage = stageTarget
		return b.sendWithReplyMarkup(msg.Chat.ID, "🎯 What's the daily target? Send a number, or skip for a simple done/not done habit.", skipKeyboard())
	case stageTarget:
		target, err := parseTargetInput(text)
		if err != nil {
			return b.sendWithReplyMarkup(msg.Chat.ID, "The target must be a whole number of at least 1.", skipKeyboard())
		}
		state.input.Target = target
		if target <= 1 {
			state.stage = stageRecurring
			return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 Repeat every day?", yesNoKeyboard())
		}
		state.stage = stageUnit
		return b.sendWithReplyMarkup(msg.Chat.ID, "📏 Unit of the target, e.g. <code>min</code>, <code>glasses</code>, <code>pages</code> (or skip).", skipKeyboard())
	case stageUnit:
		if !isSkipInput(text) {
			state.input.Unit = text
		}
		state.stage = stageRecurring
		return b.sendWithReplyMarkup(msg.Chat.ID, "🔁 Repeat every day?", yesNoKeyboard())
	case stageRecurring:
		switch {
		case isYesInput(text):
			state.input.IsRecurring = true
		case isNoInput(text):
			state.input.IsRecurring = false
		default:
			return b.sendWithReplyMarkup(msg.Chat.ID, "Press «Yes» or «No».", yesNoKeyboard())
		}
		err := b.finishTaskCreation(ctx, msg.From, state.input, msg.Chat.ID)
		b.clearConversation(msg.From.ID)
		return err
	default:
		b.clearConversation(msg.From.ID)
		return b.sendText(msg.Chat.ID, "Input reset. Start again with /newtask.")
	}
}

func (b *Bot) finishTaskCreation(ctx context.Context, from *tgbotapi.User, input tracker.TaskInput, chatID int64) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}

	var task tracker.Task
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		task, err = tr.AddTask(ctx, input)
		return err
	})
	if err != nil {
		return b.sendTextWithRemove(chatID, fmt.Sprintf("Could not save the habit: %s", escape(err.Error())))
	}

	b.log.Info("task created", zap.String("task_id", task.ID), zap.Int64("user", from.ID), zap.Bool("recurring", task.IsRecurring))

	if err := b.sendTextWithRemove(chatID, formatCreated(task)); err != nil {
		return err
	}
	return b.sendTaskList(ctx, chatID, user)
}

func (b *Bot) handleListTasks(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	return b.sendTaskList(ctx, msg.Chat.ID, user)
}

func (b *Bot) taskListView(ctx context.Context, user *model.User) (string, tgbotapi.InlineKeyboardMarkup, bool, error) {
	var text string
	var tasks []tracker.Task
	var method tracker.CheckInMethod
	err := b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		tasks, method = tr.Tasks(), tr.Method()
		text = formatTaskList(tasks, tracker.ProgressPercentage(tasks, nil))
		return nil
	})
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, false, err
	}
	if len(tasks) == 0 {
		return text, tgbotapi.InlineKeyboardMarkup{}, false, nil
	}
	return text, tgbotapi.NewInlineKeyboardMarkup(taskButtons(tasks, method)...), true, nil
}

func (b *Bot) sendTaskList(ctx context.Context, chatID int64, user *model.User) error {
	text, markup, hasTasks, err := b.taskListView(ctx, user)
	if err != nil {
		return b.sendText(chatID, fmt.Sprintf("Could not load habits: %s", escape(err.Error())))
	}
	if !hasTasks {
		return b.sendText(chatID, text)
	}
	return b.sendWithReplyMarkup(chatID, text, markup)
}

// refreshTaskList redraws the list in place under the pressed button.
func (b *Bot) refreshTaskList(ctx context.Context, message *tgbotapi.Message, user *model.User) error {
	text, markup, hasTasks, err := b.taskListView(ctx, user)
	if err != nil {
		return err
	}
	var edit tgbotapi.EditMessageTextConfig
	if hasTasks {
		edit = tgbotapi.NewEditMessageTextAndMarkup(message.Chat.ID, message.MessageID, text, markup)
	} else {
		edit = tgbotapi.NewEditMessageText(message.Chat.ID, message.MessageID, text)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	_, err = b.api.Send(edit)
	return err
}

func (b *Bot) handleProgress(ctx context.Context, msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		return b.sendText(msg.Chat.ID, "Usage: /progress &lt;n&gt; &lt;value&gt;, e.g. /progress 2 5")
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return b.sendText(msg.Chat.ID, "The value must be a whole number.")
	}
	return b.mutateByPosition(ctx, msg, args[0], func(tr *tracker.Tracker, task tracker.Task) (tracker.Outcome, error) {
		return tr.SetProgress(ctx, task.ID, value)
	})
}

func (b *Bot) handleDone(ctx context.Context, msg *tgbotapi.Message) error {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		return b.sendText(msg.Chat.ID, "Tell me which habit: /done 1")
	}
	return b.mutateByPosition(ctx, msg, arg, func(tr *tracker.Tracker, task tracker.Task) (tracker.Outcome, error) {
		if task.Completed {
			return tracker.Outcome{Task: task}, nil
		}
		return tr.SetProgress(ctx, task.ID, task.Target)
	})
}

// mutateByPosition applies fn to the task at list position raw and reports the outcome.
func (b *Bot) mutateByPosition(
	ctx context.Context,
	msg *tgbotapi.Message,
	raw string,
	fn func(*tracker.Tracker, tracker.Task) (tracker.Outcome, error),
) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}

	var out tracker.Outcome
	var score int
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		task, err := tracker.TaskAt(tr.Tasks(), raw)
		if err != nil {
			return err
		}
		out, err = fn(tr, task)
		if err != nil {
			return err
		}
		score = tr.Score()
		if out.Completed {
			b.syncScore(ctx, user, tr)
		}
		return nil
	})
	if err != nil {
		return b.sendText(msg.Chat.ID, userError(err))
	}
	return b.sendText(msg.Chat.ID, formatOutcome(out, score, tracker.CelebrationMessage()))
}

func (b *Bot) handleDelete(ctx context.Context, msg *tgbotapi.Message) error {
	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		return b.sendText(msg.Chat.ID, "Tell me which habit: /delete 2")
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	var task tracker.Task
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		task, err = tracker.TaskAt(tr.Tasks(), arg)
		return err
	})
	if err != nil {
		return b.sendText(msg.Chat.ID, userError(err))
	}
	return b.askDeleteConfirmation(msg.Chat.ID, msg.From.ID, task)
}

func (b *Bot) askDeleteConfirmation(chatID, userID int64, task tracker.Task) error {
	b.setConfirmation(userID, confirmationRequest{taskID: task.ID, label: task.Label})
	text := fmt.Sprintf("Delete «%s %s»? Its progress for today will be lost.", task.Emoji, escape(task.Label))
	return b.sendWithReplyMarkup(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnConfirm, cbConfirmPrefix+task.ID),
			tgbotapi.NewInlineKeyboardButtonData(btnCancel, cbCancelPrefix+task.ID),
		),
	))
}

func (b *Bot) handleConfirmationResponse(ctx context.Context, msg *tgbotapi.Message, req confirmationRequest) error {
	text := strings.TrimSpace(msg.Text)
	switch {
	case isConfirmInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.deleteTask(ctx, msg.Chat.ID, msg.From, req.taskID)
	case isCancelInput(text):
		b.clearConfirmation(msg.From.ID)
		return b.sendMenuPlaceholder(msg.Chat.ID)
	default:
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Confirm or cancel deleting «%s» first.", escape(req.label)))
	}
}

func (b *Bot) deleteTask(ctx context.Context, chatID int64, from *tgbotapi.User, taskID string) error {
	user, err := b.ensureUser(ctx, from)
	if err != nil {
		return err
	}
	var task tracker.Task
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		task, err = tr.Task(taskID)
		if err != nil {
			return err
		}
		return tr.DeleteTask(ctx, taskID)
	})
	if err != nil {
		return b.sendText(chatID, userError(err))
	}

	b.log.Info("task deleted", zap.String("task_id", taskID), zap.Int64("user", from.ID))
	if err := b.sendText(chatID, fmt.Sprintf("🗑 «%s» deleted.", escape(task.Label))); err != nil {
		return err
	}
	return b.sendTaskList(ctx, chatID, user)
}

func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	sum, err := b.sessions.Summary(ctx, user.Namespace())
	if err != nil {
		return err
	}
	rank, ranked := 0, false
	if b.leaderboard != nil {
		rank, ranked = b.leaderboard.UserRank(ctx, user.TelegramID)
	}
	return b.sendText(msg.Chat.ID, formatStats(sum, rank, ranked))
}

func (b *Bot) handleReward(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	var reward tracker.Reward
	var score, streak int
	var claimErr error
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		reward, claimErr = tr.ClaimDailyReward(ctx)
		score, streak = tr.Score(), tr.Streak()
		if claimErr == nil {
			b.syncScore(ctx, user, tr)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if errors.Is(claimErr, tracker.ErrRewardClaimed) {
		return b.sendText(msg.Chat.ID, "🎁 You already claimed today's reward. Come back tomorrow!\n\n"+formatRewardCycle(streak))
	}
	text := fmt.Sprintf("%s <b>Day %d reward: +%d points!</b>\n⭐ Score: %d\n\n%s", reward.Emoji, reward.Day, reward.Points, score, formatRewardCycle(streak))
	return b.sendText(msg.Chat.ID, text)
}

func (b *Bot) handleAchievements(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	sum, err := b.sessions.Summary(ctx, user.Namespace())
	if err != nil {
		return err
	}
	return b.sendText(msg.Chat.ID, formatAchievements(sum.Achievements))
}

func (b *Bot) handleLeaderboard(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	if b.leaderboard == nil {
		return b.sendText(msg.Chat.ID, "The leaderboard is not available.")
	}
	limit := 10
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		if n, err := strconv.Atoi(arg); err == nil && n > 0 {
			limit = n
		}
	}
	entries := b.leaderboard.TopEntries(ctx, limit)
	rank, ranked := b.leaderboard.UserRank(ctx, user.TelegramID)
	return b.sendText(msg.Chat.ID, formatLeaderboard(entries, user.TelegramID, rank, ranked))
}

func (b *Bot) handleMode(ctx context.Context, msg *tgbotapi.Message) error {
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		return err
	}
	arg := strings.TrimSpace(msg.CommandArguments())
	var current tracker.CheckInMethod
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		if arg != "" {
			method, err := tracker.ParseCheckInMethod(arg)
			if err != nil {
				return err
			}
			if err := tr.SetCheckInMethod(ctx, method); err != nil {
				return err
			}
		}
		current = tr.Method()
		return nil
	})
	if err != nil {
		return b.sendText(msg.Chat.ID, userError(err))
	}
	if arg == "" {
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Check-in mode: <b>%s</b>. Change it with /mode swipe or /mode tap.", current))
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("Check-in mode set to <b>%s</b>.", current))
}

func (b *Bot) handleInterval(msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		current := "5 hours"
		if interval := b.ReportInterval(); interval > 0 {
			current = fmt.Sprintf("%d hours", int(interval.Hours()))
		}
		return b.sendText(msg.Chat.ID, fmt.Sprintf("Reports are sent every %s. Change it with e.g. /interval 4", current))
	}
	hours, err := strconv.Atoi(args)
	if err != nil || hours <= 0 {
		return b.sendText(msg.Chat.ID, "The interval must be a positive number of hours, e.g. /interval 6")
	}
	interval := time.Duration(hours) * time.Hour
	b.mu.Lock()
	if b.config != nil {
		b.config.ReportInterval = interval
	}
	hook := b.onInterval
	b.mu.Unlock()
	if hook != nil {
		if err := hook(interval); err != nil {
			b.log.Error("reschedule reports", zap.Error(err))
			return b.sendText(msg.Chat.ID, "Could not change the report schedule, try again later.")
		}
	}
	return b.sendText(msg.Chat.ID, fmt.Sprintf("Reports will be sent every %d hours.", hours))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}

	data := cb.Data
	b.log.Debug("callback", zap.Int64("user", cb.From.ID), zap.String("data", data))

	switch {
	case strings.HasPrefix(data, cbTogglePrefix):
		return b.checkInFromButton(ctx, cb, strings.TrimPrefix(data, cbTogglePrefix), func(tr *tracker.Tracker, id string) (tracker.Outcome, error) {
			return tr.CheckIn(ctx, id)
		})
	case strings.HasPrefix(data, cbIncrementPrefix):
		return b.checkInFromButton(ctx, cb, strings.TrimPrefix(data, cbIncrementPrefix), func(tr *tracker.Tracker, id string) (tracker.Outcome, error) {
			return tr.Increment(ctx, id, 1)
		})
	case strings.HasPrefix(data, cbDeletePrefix):
		b.ack(cb, "")
		user, err := b.ensureUser(ctx, cb.From)
		if err != nil {
			return err
		}
		var task tracker.Task
		err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
			task, err = tr.Task(strings.TrimPrefix(data, cbDeletePrefix))
			return err
		})
		if err != nil {
			return b.sendText(cb.Message.Chat.ID, userError(err))
		}
		return b.askDeleteConfirmation(cb.Message.Chat.ID, cb.From.ID, task)
	case strings.HasPrefix(data, cbConfirmPrefix):
		b.ack(cb, "")
		b.clearConfirmation(cb.From.ID)
		return b.deleteTask(ctx, cb.Message.Chat.ID, cb.From, strings.TrimPrefix(data, cbConfirmPrefix))
	case strings.HasPrefix(data, cbCancelPrefix):
		b.clearConfirmation(cb.From.ID)
		b.ack(cb, "Cancelled")
		return nil
	default:
		b.ack(cb, "")
		return nil
	}
}

func (b *Bot) checkInFromButton(
	ctx context.Context,
	cb *tgbotapi.CallbackQuery,
	taskID string,
	fn func(*tracker.Tracker, string) (tracker.Outcome, error),
) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		b.ack(cb, "")
		return err
	}

	var out tracker.Outcome
	var score int
	err = b.withSession(ctx, user, func(tr *tracker.Tracker) error {
		out, err = fn(tr, taskID)
		if err != nil {
			return err
		}
		score = tr.Score()
		if out.Completed {
			b.syncScore(ctx, user, tr)
		}
		return nil
	})
	if err != nil {
		b.ack(cb, html.UnescapeString(userError(err)))
		return nil
	}

	if out.Completed {
		b.ack(cb, fmt.Sprintf("+%d points!", out.Points))
		if err := b.sendText(cb.Message.Chat.ID, formatOutcome(out, score, tracker.CelebrationMessage())); err != nil {
			return err
		}
	} else {
		b.ack(cb, "")
	}
	return b.refreshTaskList(ctx, cb.Message, user)
}

func (b *Bot) handleMenuAlias(ctx context.Context, msg *tgbotapi.Message) (bool, error) {
	text := strings.TrimSpace(strings.ToLower(msg.Text))
	switch text {
	case strings.ToLower(menuLabelNewTask):
		return true, b.startNewTaskConversation(ctx, msg)
	case strings.ToLower(menuLabelTasks):
		return true, b.handleListTasks(ctx, msg)
	case strings.ToLower(menuLabelStats):
		return true, b.handleStats(ctx, msg)
	case strings.ToLower(menuLabelReward):
		return true, b.handleReward(ctx, msg)
	case strings.ToLower(menuLabelLeaderboard):
		return true, b.handleLeaderboard(ctx, msg)
	case strings.ToLower(menuLabelHelp):
		return true, b.handleHelp(msg)
	default:
		return false, nil
	}
}
