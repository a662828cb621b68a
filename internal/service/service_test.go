package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"daily-tasks/internal/model"
	"daily-tasks/internal/repository"
	"daily-tasks/internal/tracker"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repository.NewDB(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSessionServicePersistsPerNamespace(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	sessions := NewSessionService(kv, tracker.FixedClock("2024-03-10"), nil)

	err := sessions.With(ctx, "tg:1", func(tr *tracker.Tracker) error {
		_, err := tr.AddTask(ctx, tracker.TaskInput{Label: "Stretch", Target: 1})
		return err
	})
	require.NoError(t, err)

	sum, err := sessions.Summary(ctx, "tg:1")
	require.NoError(t, err)
	require.Len(t, sum.Tasks, 1)
	assert.Equal(t, "Stretch", sum.Tasks[0].Label)

	other, err := sessions.Summary(ctx, "tg:2")
	require.NoError(t, err)
	assert.Empty(t, other.Tasks)
}

func TestSessionServiceSerializesOwner(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(repository.NewMemoryKV(), tracker.FixedClock("2024-03-10"), nil)

	var id string
	require.NoError(t, sessions.With(ctx, "local", func(tr *tracker.Tracker) error {
		task, err := tr.AddTask(ctx, tracker.TaskInput{Label: "Pushups", Target: 50})
		id = task.ID
		return err
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sessions.With(ctx, "local", func(tr *tracker.Tracker) error {
				_, err := tr.Increment(ctx, id, 1)
				return err
			})
		}()
	}
	wg.Wait()

	sum, err := sessions.Summary(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, 20, sum.Tasks[0].Current)
}

func TestSessionServiceRollsOverBetweenDays(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()

	day1 := NewSessionService(kv, tracker.FixedClock("2024-03-10"), nil)
	require.NoError(t, day1.With(ctx, "local", func(tr *tracker.Tracker) error {
		task, err := tr.AddTask(ctx, tracker.TaskInput{Label: "Walk", Target: 1, IsRecurring: true})
		if err != nil {
			return err
		}
		_, err = tr.Toggle(ctx, task.ID)
		return err
	}))

	day2 := NewSessionService(kv, tracker.FixedClock("2024-03-11"), nil)
	sum, err := day2.Summary(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Streak)
	assert.False(t, sum.Tasks[0].Completed)
	assert.Equal(t, 100.0, sum.Week[5].Percentage())
}

func TestLeaderboardServiceUpsertAndRank(t *testing.T) {
	ctx := context.Background()
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(newTestDB(t)), nil, time.Second, 10)

	require.NoError(t, svc.UpsertScore(ctx, model.LeaderboardEntry{UserID: 1, Username: "ann", Score: 30}))
	require.NoError(t, svc.UpsertScore(ctx, model.LeaderboardEntry{UserID: 2, Score: 70}))
	require.NoError(t, svc.UpsertScore(ctx, model.LeaderboardEntry{UserID: 1, Username: "ann", Score: 90}))

	top := svc.TopEntries(ctx, 0)
	require.Len(t, top, 2)
	assert.Equal(t, int64(1), top[0].UserID)
	assert.Equal(t, 90, top[0].Score)
	assert.Equal(t, "anonymous", top[1].Username)
	assert.Equal(t, "Anonymous", top[1].DisplayName)

	rank, ok := svc.UserRank(ctx, 2)
	assert.True(t, ok)
	assert.Equal(t, 2, rank)

	_, ok = svc.UserRank(ctx, 99)
	assert.False(t, ok)
}

func TestLeaderboardServiceRejectsMissingUser(t *testing.T) {
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(newTestDB(t)), nil, time.Second, 10)
	err := svc.UpsertScore(context.Background(), model.LeaderboardEntry{Score: 10})
	var syncErr *RemoteSyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "upsert", syncErr.Op)
}

func TestLeaderboardServiceSyncAsync(t *testing.T) {
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(newTestDB(t)), nil, time.Second, 10)
	svc.SyncAsync(model.LeaderboardEntry{UserID: 5, Username: "bo", Score: 15})
	svc.Wait()

	top := svc.TopEntries(context.Background(), 5)
	require.Len(t, top, 1)
	assert.Equal(t, 15, top[0].Score)
}

func TestLeaderboardServiceFallsBackToCache(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewLeaderboardService(repository.NewLeaderboardRepository(db), nil, time.Second, 10)
	require.NoError(t, svc.UpsertScore(ctx, model.LeaderboardEntry{UserID: 1, Score: 5}))
	svc.Refresh(ctx)
	require.Len(t, svc.Cached(0), 1)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Len(t, svc.TopEntries(ctx, 0), 1)
	_, ok := svc.UserRank(ctx, 1)
	assert.False(t, ok)
	assert.Error(t, svc.UpsertScore(ctx, model.LeaderboardEntry{UserID: 2, Score: 1}))
}

func TestEntryFor(t *testing.T) {
	user := model.User{TelegramID: 42, Username: "kim", FirstName: "Kim"}
	entry := EntryFor(user, tracker.Summary{Score: 120, Streak: 3, TasksCompleted: 9})
	assert.Equal(t, int64(42), entry.UserID)
	assert.Equal(t, "Kim", entry.DisplayName)
	assert.Equal(t, 120, entry.Score)
	assert.Equal(t, 3, entry.Streak)
	assert.Equal(t, 9, entry.TasksCompleted)
	assert.Nil(t, entry.AvatarURL)
}

func TestFormatSummary(t *testing.T) {
	sum := tracker.Summary{
		Tasks: []tracker.Task{
			{Label: "Read <book>", Emoji: "📚", Category: tracker.CategoryLearning, Target: 30, Current: 10, Unit: "pages"},
			{Label: "Meditate", Emoji: "🧘", Category: tracker.CategoryHealth, Target: 1, Current: 1, Completed: true},
		},
		Streak:         4,
		Score:          85,
		CompletedCount: 1,
		Progress:       66.67,
		NextReward:     tracker.DailyReward(4),
	}
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	text := FormatSummary(sum, now)

	assert.Contains(t, text, "Daily report")
	assert.Contains(t, text, "Sun, 10 Mar 2024")
	assert.Contains(t, text, "67% · 1/2 done")
	assert.Contains(t, text, "Read &lt;book&gt; · 10/30 pages")
	assert.Contains(t, text, "✅ 🧘 Meditate")
	assert.Contains(t, text, "Daily reward ready")

	sum.RewardClaimed = true
	assert.NotContains(t, FormatSummary(sum, now), "Daily reward ready")
	assert.Contains(t, FormatSummary(tracker.Summary{}, now), "no tasks yet")
}

func TestReminderServiceDailySummary(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessionService(repository.NewMemoryKV(), tracker.FixedClock("2024-03-10"), nil)
	user := model.User{TelegramID: 7}
	require.NoError(t, sessions.With(ctx, user.Namespace(), func(tr *tracker.Tracker) error {
		_, err := tr.Onboard(ctx)
		return err
	}))

	text, err := NewReminderService(sessions).DailySummary(ctx, user, time.Now())
	require.NoError(t, err)
	assert.Contains(t, text, "Morning workout")
	assert.Contains(t, text, "0% · 0/3 done")
}

func TestScheduledReportsDoNotCountAsVisits(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	user := model.User{TelegramID: 7}

	first := NewSessionService(kv, tracker.FixedClock("2024-03-10"), nil)
	require.NoError(t, first.With(ctx, user.Namespace(), func(tr *tracker.Tracker) error {
		task, err := tr.AddTask(ctx, tracker.TaskInput{Label: "Walk", Target: 1, IsRecurring: true})
		if err != nil {
			return err
		}
		_, err = tr.Toggle(ctx, task.ID)
		return err
	}))

	for _, day := range []tracker.Date{"2024-03-11", "2024-03-12", "2024-03-13"} {
		reports := NewReminderService(NewSessionService(kv, tracker.FixedClock(day), nil))
		text, err := reports.DailySummary(ctx, user, time.Now())
		require.NoError(t, err)
		assert.Contains(t, text, "0% · 0/1 done", "recurring task is shown reset on %s", day)
	}

	back := NewSessionService(kv, tracker.FixedClock("2024-03-14"), nil)
	require.NoError(t, back.With(ctx, user.Namespace(), func(tr *tracker.Tracker) error {
		assert.Equal(t, tracker.TransitionGap, tr.Rollover().Transition)
		assert.Equal(t, 1, tr.Streak())
		assert.Equal(t, 2, tr.Stats().DaysActive)
		return nil
	}))
}

func TestSessionServicePeekKeepsStoredState(t *testing.T) {
	ctx := context.Background()
	kv := repository.NewMemoryKV()
	require.NoError(t, NewSessionService(kv, tracker.FixedClock("2024-03-10"), nil).With(ctx, "local", func(tr *tracker.Tracker) error {
		_, err := tr.AddTask(ctx, tracker.TaskInput{Label: "Walk", Target: 1})
		return err
	}))

	sum, err := NewSessionService(kv, tracker.FixedClock("2024-03-11"), nil).Peek(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Streak)
	assert.Equal(t, 1, sum.DaysActive)

	raw, ok, err := kv.ForNamespace("local").Get(ctx, "lastVisitDate")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"2024-03-10"`, string(raw))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "▱▱▱▱▱▱▱▱▱▱", ProgressBar(0))
	assert.Equal(t, "▰▰▰▰▰▱▱▱▱▱", ProgressBar(50))
	assert.Equal(t, "▰▰▰▰▰▰▰▰▰▰", ProgressBar(100))
	assert.Equal(t, "▰▰▰▰▰▰▰▰▰▰", ProgressBar(140))
}

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("07:30")
	require.NoError(t, err)
	assert.Equal(t, "0 30 7 * * *", spec)

	_, err = buildDailySpec("7.30")
	assert.Error(t, err)
}

func TestSchedulerServiceRegistersJobs(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)

	_, err := s.ScheduleInterval(0, func() {})
	assert.Error(t, err)

	daily, err := s.ScheduleDaily("21:00", func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(30*time.Second, func() {})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())

	s.Remove(daily)
	assert.Equal(t, 1, s.Len())
}

func TestSchedulerServiceRecoversPanics(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)
	ran := make(chan struct{}, 4)
	_, err := s.ScheduleInterval(time.Second, func() {
		ran <- struct{}{}
		panic("boom")
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
