package tracker

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryHealth   Category = "health"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryFitness  Category = "fitness"
	CategoryLearning Category = "learning"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryHealth, CategoryWork, CategoryPersonal, CategoryFitness, CategoryLearning}

// DefaultCategory is used when user input is missing.
const DefaultCategory = CategoryPersonal

const defaultEmoji = "✨"

func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryWork, CategoryPersonal, CategoryFitness, CategoryLearning:
		return true
	default:
		return false
	}
}

func (c Category) Emoji() string {
	switch c {
	case CategoryHealth:
		return "💚"
	case CategoryWork:
		return "💼"
	case CategoryPersonal:
		return "✨"
	case CategoryFitness:
		return "💪"
	case CategoryLearning:
		return "📚"
	default:
		return "•"
	}
}

// Title is the display name, e.g. "Health".
func (c Category) Title() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ParseCategory(input string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(input)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q", input)
	}
	return c, nil
}

// Task is a single trackable habit for the current day.
type Task struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Emoji       string    `json:"emoji"`
	Category    Category  `json:"category"`
	Target      int       `json:"target"`
	Current     int       `json:"current"`
	Unit        string    `json:"unit,omitempty"`
	Completed   bool      `json:"completed"`
	IsRecurring bool      `json:"isRecurring"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsBoolean reports whether the task is a plain done/not-done item.
func (t Task) IsBoolean() bool {
	return t.Target <= 1
}

// Ratio is the task's progress in [0, 1].
func (t Task) Ratio() float64 {
	if t.Target <= 0 {
		return 0
	}
	r := float64(t.Current) / float64(t.Target)
	switch {
	case r > 1:
		return 1
	case r < 0:
		return 0
	default:
		return r
	}
}

// TaskInput carries the fields needed to create a task.
type TaskInput struct {
	Label       string
	Emoji       string
	Category    Category
	Target      int
	Unit        string
	IsRecurring bool
}

func (in TaskInput) normalize() (TaskInput, error) {
	in.Label = strings.TrimSpace(in.Label)
	if in.Label == "" {
		return in, &ValidationError{Field: "label", Reason: "must not be empty"}
	}
	if in.Target < 1 {
		return in, &ValidationError{Field: "target", Reason: fmt.Sprintf("must be at least 1, got %d", in.Target)}
	}
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if !in.Category.IsValid() {
		return in, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", in.Category)}
	}
	in.Emoji = strings.TrimSpace(in.Emoji)
	if in.Emoji == "" {
		in.Emoji = defaultEmoji
	}
	in.Unit = strings.TrimSpace(in.Unit)
	return in, nil
}

// DefaultTasks are seeded on onboarding.
func DefaultTasks() []TaskInput {
	return []TaskInput{
		{Label: "Morning workout", Emoji: "🏃", Category: CategoryFitness, Target: 30, Unit: "min", IsRecurring: true},
		{Label: "Drink water", Emoji: "💧", Category: CategoryHealth, Target: 8, Unit: "glasses", IsRecurring: true},
		{Label: "Read book", Emoji: "📚", Category: CategoryLearning, Target: 30, Unit: "pages", IsRecurring: true},
	}
}
