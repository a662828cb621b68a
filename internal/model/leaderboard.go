package model

import "time"

// LeaderboardEntry is a user's row on the shared leaderboard. Writes are last-writer-wins.
type LeaderboardEntry struct {
	UserID         int64 `gorm:"primaryKey;autoIncrement:false"`
	Username       string
	DisplayName    string
	AvatarURL      *string
	Score          int `gorm:"index"`
	TasksCompleted int
	Streak         int
	UpdatedAt      time.Time
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}
