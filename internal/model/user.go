package model

import (
	"strconv"
	"strings"
	"time"
)

// User stores Telegram user metadata.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	FirstName  string
	LastName   string
	Username   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DisplayName prefers the full name, then the username.
func (u User) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return "Anonymous"
}

// Namespace keys the user's tracker state in the key-value store.
func (u User) Namespace() string {
	return "tg:" + strconv.FormatInt(u.TelegramID, 10)
}
