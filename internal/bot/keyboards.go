package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"daily-tasks/internal/tracker"
)

const (
	btnSkip              = "⏭️ Skip"
	btnYes               = "Yes"
	btnNo                = "No"
	btnConfirm           = "✅ Confirm"
	btnCancel            = "↩️ Cancel"
	btnCancelDialog      = "⏪ Cancel input"
	menuLabelNewTask     = "➕ New habit"
	menuLabelTasks       = "📋 Habits"
	menuLabelStats       = "📊 Stats"
	menuLabelReward      = "🎁 Reward"
	menuLabelLeaderboard = "🏆 Leaderboard"
	menuLabelHelp        = "ℹ️ Help"
)

var suggestedEmoji = []string{"🏃", "💧", "📚", "🧘", "✍️", "🥗"}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelNewTask),
			tgbotapi.NewKeyboardButton(menuLabelTasks),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelStats),
			tgbotapi.NewKeyboardButton(menuLabelReward),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuLabelLeaderboard),
			tgbotapi.NewKeyboardButton(menuLabelHelp),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}

func cancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func skipKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func emojiKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var row []tgbotapi.KeyboardButton
	for _, e := range suggestedEmoji {
		row = append(row, tgbotapi.NewKeyboardButton(e))
	}
	kb := tgbotapi.NewReplyKeyboard(
		row,
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSkip),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func yesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnYes),
			tgbotapi.NewKeyboardButton(btnNo),
			tgbotapi.NewKeyboardButton(btnCancelDialog),
		),
	)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func categoryKeyboard() tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var row []tgbotapi.KeyboardButton
	for _, c := range tracker.Categories {
		row = append(row, tgbotapi.NewKeyboardButton(categoryButton(c)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	row = append(row, tgbotapi.NewKeyboardButton(btnSkip))
	rows = append(rows, row, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCancelDialog)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

func categoryButton(c tracker.Category) string {
	return c.Emoji() + " " + c.Title()
}

// taskButtons builds one row per task. The first button checks in using the
// user's method; tap mode gets a separate +1 for counted habits.
func taskButtons(tasks []tracker.Task, method tracker.CheckInMethod) [][]tgbotapi.InlineKeyboardButton {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(tasks))
	for i, task := range tasks {
		n := strconv.Itoa(i + 1)
		var label string
		switch {
		case task.Completed:
			label = "✅ " + n + ". " + shortLabel(task.Label, 22)
		case method == tracker.CheckInTap || task.IsBoolean():
			label = "⬜ " + n + ". " + shortLabel(task.Label, 22)
		default:
			label = "➕ " + n + ". " + shortLabel(task.Label, 16) + " " + strconv.Itoa(task.Current) + "/" + strconv.Itoa(task.Target)
		}
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, cbTogglePrefix+task.ID),
		}
		if method == tracker.CheckInTap && !task.IsBoolean() && !task.Completed {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("+1", cbIncrementPrefix+task.ID))
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", cbDeletePrefix+task.ID))
		rows = append(rows, row)
	}
	return rows
}

func shortLabel(label string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(label, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func isSkipInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "" || value == "-" || value == strings.ToLower(btnSkip) || value == "skip"
}

func isYesInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "yes" || value == "y"
}

func isNoInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == "no" || value == "n" || value == "-"
}

func isConfirmInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnConfirm) || value == "confirm" || value == "yes"
}

func isCancelInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancel) || value == "cancel" || value == "no"
}

func isCancelDialogInput(text string) bool {
	value := strings.TrimSpace(strings.ToLower(text))
	return value == strings.ToLower(btnCancelDialog) || value == "cancel input"
}

// parseCategoryInput accepts a keyboard button, a title or a raw category name.
func parseCategoryInput(text string) (tracker.Category, bool) {
	value := strings.TrimSpace(strings.ToLower(text))
	for _, c := range tracker.Categories {
		if value == strings.ToLower(categoryButton(c)) {
			return c, true
		}
	}
	c, err := tracker.ParseCategory(value)
	if err != nil {
		return "", false
	}
	return c, true
}

// parseTargetInput returns 1 for a skipped target.
func parseTargetInput(text string) (int, error) {
	if isSkipInput(text) {
		return 1, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0, &tracker.ValidationError{Field: "target", Reason: "must be a whole number of at least 1"}
	}
	return n, nil
}
