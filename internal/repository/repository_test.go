package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"daily-tasks/internal/model"
	"daily-tasks/internal/tracker"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestNewDBCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := NewDB(filepath.Join(dir, "tasks.db"), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestKVRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(newTestDB(t))

	_, ok, err := repo.Get(ctx, "tg:1", "streak")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "tg:1", "streak", []byte("3")))
	require.NoError(t, repo.Set(ctx, "tg:1", "streak", []byte("4")))
	require.NoError(t, repo.Set(ctx, "tg:2", "streak", []byte("9")))

	v, ok, err := repo.Get(ctx, "tg:1", "streak")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", string(v))

	keys, err := repo.Keys(ctx, "tg:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"streak"}, keys)

	require.NoError(t, repo.Delete(ctx, "tg:1", "streak"))
	_, ok, err = repo.Get(ctx, "tg:1", "streak")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err = repo.Get(ctx, "tg:2", "streak")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "9", string(v))
}

func TestKVRepositoryBacksTracker(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(newTestDB(t))
	store := repo.ForNamespace("tg:42")

	tr, err := tracker.Open(ctx, store, tracker.FixedClock("2025-03-10"), nil)
	require.NoError(t, err)
	task, err := tr.AddTask(ctx, tracker.TaskInput{Label: "Stretch", Target: 1, IsRecurring: true})
	require.NoError(t, err)
	_, err = tr.Toggle(ctx, task.ID)
	require.NoError(t, err)

	next, err := tracker.Open(ctx, store, tracker.FixedClock("2025-03-11"), nil)
	require.NoError(t, err)
	assert.False(t, next.Degraded())
	assert.Equal(t, 2, next.Streak())
	assert.Equal(t, 10, next.Score())

	rec, ok := next.History(ctx, "2025-03-10")
	require.True(t, ok)
	assert.Equal(t, tracker.DayRecord{Date: "2025-03-10", CompletedCount: 1, TotalCount: 1}, rec)

	keys, err := repo.Keys(ctx, "tg:42")
	require.NoError(t, err)
	assert.Contains(t, keys, "history:2025-03-10")
	assert.Contains(t, keys, "lastVisitDate")
}

func TestMemoryKVSeparatesNamespaces(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.ForNamespace("a").Set(ctx, "k", []byte("1")))

	_, ok, err := kv.ForNamespace("b").Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := kv.ForNamespace("a").Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", string(v))
}

func TestUserRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u, err := repo.UpsertFromTelegram(ctx, 1001, "Ada", "", "ada")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "Ada", u.DisplayName())

	again, err := repo.UpsertFromTelegram(ctx, 1001, "Ada", "Lovelace", "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "Ada Lovelace", again.DisplayName())

	_, err = repo.UpsertFromTelegram(ctx, 1002, "", "", "bob")
	require.NoError(t, err)

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "bob", users[1].DisplayName())
	assert.Equal(t, "tg:1002", users[1].Namespace())
}

func TestLeaderboardRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaderboardRepository(newTestDB(t))

	rows := []model.LeaderboardEntry{
		{UserID: 1, Username: "ada", DisplayName: "Ada", Score: 120, TasksCompleted: 12, Streak: 3},
		{UserID: 2, Username: "bob", DisplayName: "Bob", Score: 300, TasksCompleted: 20, Streak: 7},
		{UserID: 3, Username: "cy", DisplayName: "Cy", Score: 40, TasksCompleted: 4, Streak: 1},
	}
	for i := range rows {
		require.NoError(t, repo.Upsert(ctx, &rows[i]))
	}

	top, err := repo.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].UserID)
	assert.Equal(t, int64(1), top[1].UserID)

	rank, found, err := repo.Rank(ctx, 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, rank)

	_, found, err = repo.Rank(ctx, 99)
	require.NoError(t, err)
	assert.False(t, found)

	// Last write wins.
	update := model.LeaderboardEntry{UserID: 3, Username: "cy", DisplayName: "Cy", Score: 500, TasksCompleted: 30, Streak: 2}
	require.NoError(t, repo.Upsert(ctx, &update))

	rank, found, err = repo.Rank(ctx, 3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, rank)

	all, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 30, all[0].TasksCompleted)
}
