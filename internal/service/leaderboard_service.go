package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
	"daily-tasks/internal/tracker"
)

// RemoteSyncError reports a failed leaderboard read or write.
type RemoteSyncError struct {
	Op  string
	Err error
}

func (e *RemoteSyncError) Error() string {
	return fmt.Sprintf("leaderboard %s: %v", e.Op, e.Err)
}

func (e *RemoteSyncError) Unwrap() error {
	return e.Err
}

// LeaderboardService syncs scores to the shared leaderboard. Failures never reach the caller's flow.
type LeaderboardService struct {
	repo    *repository.LeaderboardRepository
	log     *zap.Logger
	timeout time.Duration
	limit   int

	wg sync.WaitGroup

	mu     sync.RWMutex
	cached []model.LeaderboardEntry
}

func NewLeaderboardService(repo *repository.LeaderboardRepository, log *zap.Logger, timeout time.Duration, limit int) *LeaderboardService {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if limit <= 0 {
		limit = 50
	}
	return &LeaderboardService{repo: repo, log: log.Named("leaderboard"), timeout: timeout, limit: limit}
}

// EntryFor builds the leaderboard row of a user from their session summary.
func EntryFor(user model.User, sum tracker.Summary) model.LeaderboardEntry {
	return model.LeaderboardEntry{
		UserID:         user.TelegramID,
		Username:       user.Username,
		DisplayName:    user.DisplayName(),
		Score:          sum.Score,
		TasksCompleted: sum.TasksCompleted,
		Streak:         sum.Streak,
	}
}

// UpsertScore writes entry, last writer wins.
func (s *LeaderboardService) UpsertScore(ctx context.Context, entry model.LeaderboardEntry) error {
	if entry.UserID == 0 {
		return &RemoteSyncError{Op: "upsert", Err: fmt.Errorf("user id is required")}
	}
	if entry.Username == "" {
		entry.Username = "anonymous"
	}
	if entry.DisplayName == "" {
		entry.DisplayName = "Anonymous"
	}
	if err := s.repo.Upsert(ctx, &entry); err != nil {
		syncErr := &RemoteSyncError{Op: "upsert", Err: err}
		s.log.Warn("score sync failed", zap.Int64("user_id", entry.UserID), zap.Error(err))
		return syncErr
	}
	s.log.Debug("score synced", zap.Int64("user_id", entry.UserID), zap.Int("score", entry.Score))
	return nil
}

// SyncAsync upserts in the background with a bounded timeout.
func (s *LeaderboardService) SyncAsync(entry model.LeaderboardEntry) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.UpsertScore(ctx, entry)
	}()
}

// Wait blocks until background syncs finish.
func (s *LeaderboardService) Wait() {
	s.wg.Wait()
}

// TopEntries returns the best scores, or the last cached list when the read fails.
func (s *LeaderboardService) TopEntries(ctx context.Context, limit int) []model.LeaderboardEntry {
	if limit <= 0 {
		limit = s.limit
	}
	entries, err := s.repo.Top(ctx, limit)
	if err != nil {
		s.log.Warn("fetch leaderboard failed", zap.Error(&RemoteSyncError{Op: "top", Err: err}))
		return s.Cached(limit)
	}
	if limit >= s.limit {
		s.store(entries)
	}
	return entries
}

// UserRank returns the 1-based rank; ok is false when unranked or on error.
func (s *LeaderboardService) UserRank(ctx context.Context, userID int64) (int, bool) {
	rank, found, err := s.repo.Rank(ctx, userID)
	if err != nil {
		s.log.Warn("fetch rank failed", zap.Int64("user_id", userID), zap.Error(&RemoteSyncError{Op: "rank", Err: err}))
		return 0, false
	}
	return rank, found
}

// Refresh reloads the cached top list. Run periodically by the scheduler.
func (s *LeaderboardService) Refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	s.TopEntries(ctx, s.limit)
}

// Cached returns up to limit entries from the last successful fetch.
func (s *LeaderboardService) Cached(limit int) []model.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.cached) {
		limit = len(s.cached)
	}
	out := make([]model.LeaderboardEntry, limit)
	copy(out, s.cached[:limit])
	return out
}

func (s *LeaderboardService) store(entries []model.LeaderboardEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = make([]model.LeaderboardEntry, len(entries))
	copy(s.cached, entries)
}
