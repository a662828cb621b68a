package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Daily Tasks theme for the CLI.

const (
	IconTasks   = "📋"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconPending = "⬜"
	IconFire    = "🔥"
	IconStar    = "⭐"
	IconTrophy  = "🏆"
	IconGift    = "🎁"
	IconChart   = "📊"
	IconLoop    = "♻️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconTrash   = "🗑"
	IconLock    = "🔒"
)

const barWidth = 20

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)

	barFilled = lipgloss.NewStyle().Foreground(cGood)
	barEmpty  = lipgloss.NewStyle().Foreground(cMuted)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Bar renders a 0..100 percentage as a colored bar followed by the rounded value.
func Bar(percent float64) string {
	filled := int(math.Round(percent / 100 * barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return barFilled.Render(strings.Repeat("█", filled)) +
		barEmpty.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %3d%%", int(math.Round(percent)))
}

// Percent colors a percentage by how close it is to done.
func Percent(percent float64) string {
	text := fmt.Sprintf("%.1f%%", percent)
	switch {
	case percent >= 100:
		return Good.Render(text)
	case percent >= 50:
		return Gold.Render(text)
	case percent > 0:
		return Warn.Render(text)
	default:
		return Muted.Render(text)
	}
}
