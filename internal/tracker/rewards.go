package tracker

import "math/rand"

// Reward is one step of the seven-day reward cycle.
type Reward struct {
	Day    int
	Points int
	Emoji  string
}

var rewardCycle = []Reward{
	{Day: 1, Points: 10, Emoji: "🎁"},
	{Day: 2, Points: 15, Emoji: "🎀"},
	{Day: 3, Points: 25, Emoji: "🎊"},
	{Day: 4, Points: 35, Emoji: "🎉"},
	{Day: 5, Points: 50, Emoji: "💎"},
	{Day: 6, Points: 75, Emoji: "👑"},
	{Day: 7, Points: 100, Emoji: "🏆"},
}

// DailyReward returns the reward for the given streak; the cycle repeats weekly.
func DailyReward(streak int) Reward {
	if streak < 1 {
		streak = 1
	}
	return rewardCycle[(streak-1)%len(rewardCycle)]
}

// RewardCycle returns the full weekly cycle.
func RewardCycle() []Reward {
	out := make([]Reward, len(rewardCycle))
	copy(out, rewardCycle)
	return out
}

// Stats feeds achievement evaluation.
type Stats struct {
	TasksCompleted int
	Score          int
	Streak         int
	DaysActive     int
}

type Achievement struct {
	ID          string
	Icon        string
	Title       string
	Description string
	Unlocked    bool
}

type achievementRule struct {
	Achievement
	met func(Stats) bool
}

var achievementRules = []achievementRule{
	{Achievement{ID: "first_task", Icon: "🎯", Title: "First Step", Description: "Complete your first task"}, func(s Stats) bool { return s.TasksCompleted >= 1 }},
	{Achievement{ID: "ten_tasks", Icon: "⭐", Title: "Getting Started", Description: "Complete 10 tasks"}, func(s Stats) bool { return s.TasksCompleted >= 10 }},
	{Achievement{ID: "fifty_tasks", Icon: "💪", Title: "Habit Builder", Description: "Complete 50 tasks"}, func(s Stats) bool { return s.TasksCompleted >= 50 }},
	{Achievement{ID: "hundred_tasks", Icon: "🏆", Title: "Centurion", Description: "Complete 100 tasks"}, func(s Stats) bool { return s.TasksCompleted >= 100 }},
	{Achievement{ID: "streak_3", Icon: "🔥", Title: "On Fire", Description: "3 day streak"}, func(s Stats) bool { return s.Streak >= 3 }},
	{Achievement{ID: "streak_7", Icon: "🌟", Title: "Week Warrior", Description: "7 day streak"}, func(s Stats) bool { return s.Streak >= 7 }},
	{Achievement{ID: "streak_14", Icon: "💎", Title: "Unstoppable", Description: "14 day streak"}, func(s Stats) bool { return s.Streak >= 14 }},
	{Achievement{ID: "streak_30", Icon: "👑", Title: "Legend", Description: "30 day streak"}, func(s Stats) bool { return s.Streak >= 30 }},
	{Achievement{ID: "score_100", Icon: "💯", Title: "Point Collector", Description: "Earn 100 points"}, func(s Stats) bool { return s.Score >= 100 }},
	{Achievement{ID: "score_500", Icon: "🚀", Title: "Rising Star", Description: "Earn 500 points"}, func(s Stats) bool { return s.Score >= 500 }},
	{Achievement{ID: "score_1000", Icon: "🌙", Title: "Moon Walker", Description: "Earn 1,000 points"}, func(s Stats) bool { return s.Score >= 1000 }},
	{Achievement{ID: "score_5000", Icon: "🌟", Title: "Superstar", Description: "Earn 5,000 points"}, func(s Stats) bool { return s.Score >= 5000 }},
}

// Achievements evaluates every achievement against stats.
func Achievements(stats Stats) []Achievement {
	out := make([]Achievement, 0, len(achievementRules))
	for _, r := range achievementRules {
		a := r.Achievement
		a.Unlocked = r.met(stats)
		out = append(out, a)
	}
	return out
}

func UnlockedCount(list []Achievement) int {
	n := 0
	for _, a := range list {
		if a.Unlocked {
			n++
		}
	}
	return n
}

var celebrationMessages = []string{
	"Amazing! 🌟",
	"You did it! 💪",
	"Superstar! ⚡",
	"Incredible! 🎉",
	"Bravo! 🏆",
	"Legendary! 🚀",
	"On fire! 🔥",
	"Crushing it! 👑",
}

// CelebrationMessage picks a cheer for a completed task.
func CelebrationMessage() string {
	return celebrationMessages[rand.Intn(len(celebrationMessages))]
}
