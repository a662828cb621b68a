package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"daily-tasks/internal/model"
)

// LeaderboardRepository reads and writes the shared leaderboard table.
type LeaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// Upsert inserts or overwrites the row for entry.UserID.
func (r *LeaderboardRepository) Upsert(ctx context.Context, entry *model.LeaderboardEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "display_name", "avatar_url", "score", "tasks_completed", "streak", "updated_at",
		}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("upsert leaderboard entry: %w", err)
	}
	return nil
}

// Top returns up to limit entries by score, earliest update first on ties.
func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	if err := r.db.WithContext(ctx).Order("score DESC, updated_at ASC").Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list leaderboard: %w", err)
	}
	return entries, nil
}

func (r *LeaderboardRepository) FindByUserID(ctx context.Context, userID int64) (*model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Rank returns the 1-based position of userID in the Top ordering.
// found is false when the user has no row.
func (r *LeaderboardRepository) Rank(ctx context.Context, userID int64) (rank int, found bool, err error) {
	entry, err := r.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("find leaderboard entry: %w", err)
	}

	var ahead int64
	if err := r.db.WithContext(ctx).Model(&model.LeaderboardEntry{}).
		Where("score > ? OR (score = ? AND updated_at < ?)", entry.Score, entry.Score, entry.UpdatedAt).
		Count(&ahead).Error; err != nil {
		return 0, false, fmt.Errorf("count leaderboard rank: %w", err)
	}
	return int(ahead) + 1, true, nil
}
