package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// CheckInMethod selects how a check-in moves a task forward.
type CheckInMethod string

const (
	// CheckInSwipe advances progress one unit at a time.
	CheckInSwipe CheckInMethod = "swipe"
	// CheckInTap toggles the task between done and not done.
	CheckInTap CheckInMethod = "tap"
)

func ParseCheckInMethod(input string) (CheckInMethod, error) {
	m := CheckInMethod(strings.TrimSpace(strings.ToLower(input)))
	switch m {
	case CheckInSwipe, CheckInTap:
		return m, nil
	default:
		return "", &ValidationError{Field: "check-in method", Reason: fmt.Sprintf("expected swipe or tap, got %q", input)}
	}
}

// Outcome is the result of a progress mutation.
type Outcome struct {
	Task Task
	// Completed is true when the task went from pending to done in this call.
	Completed bool
	// Points awarded for the completion, zero otherwise.
	Points int
}

// Summary is a read-only view of the session for front ends.
type Summary struct {
	Today          Date
	Tasks          []Task
	Streak         int
	Score          int
	TasksCompleted int
	DaysActive     int
	CompletedCount int
	Progress       float64
	Categories     map[Category]float64
	Week           []DayRecord
	WeeklyAverage  float64
	Achievements   []Achievement
	NextReward     Reward
	RewardClaimed  bool
	CheckInMethod  CheckInMethod
	Degraded       bool
}

// Tracker is one user's session: the task store, streak and score bound to a key-value store.
// It is not safe for concurrent use.
type Tracker struct {
	store Store
	clock Clock
	log   *zap.Logger

	today           Date
	tasks           *TaskStore
	streak          int
	score           int
	tasksCompleted  int
	daysActive      int
	lastVisit       Date
	lastRewardClaim Date
	checkIn         CheckInMethod
	onboarded       bool

	degraded bool
	rollover RolloverResult

	// readOnly trackers never write; pending is the uncommitted record of the last visit day.
	readOnly bool
	pending  *DayRecord
}

// Open loads persisted state and runs the day rollover once.
// Storage failures never fail Open; the tracker falls back to memory instead.
func Open(ctx context.Context, store Store, clock Clock, log *zap.Logger) (*Tracker, error) {
	t, err := newTracker(ctx, store, clock, log)
	if err != nil {
		return nil, err
	}
	t.applyRollover(ctx)
	return t, nil
}

// Peek loads persisted state for display without counting as a visit.
// Nothing is written: a pending day change only resets recurring tasks in the
// returned view, while streak, score and lastVisitDate stay as last committed.
func Peek(ctx context.Context, store Store, clock Clock, log *zap.Logger) (*Tracker, error) {
	t, err := newTracker(ctx, store, clock, log)
	if err != nil {
		return nil, err
	}
	t.readOnly = true
	res := Rollover(State{Tasks: t.tasks.Tasks(), Streak: t.streak, LastVisit: t.lastVisit}, t.today)
	t.rollover = res
	if res.Record != nil {
		t.tasks = NewTaskStore(res.State.Tasks)
		t.pending = res.Record
	}
	return t, nil
}

func newTracker(ctx context.Context, store Store, clock Clock, log *zap.Logger) (*Tracker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	t := &Tracker{
		store:   store,
		clock:   clock,
		log:     log,
		today:   clock.Today(),
		checkIn: CheckInSwipe,
	}
	if err := t.load(ctx); err != nil {
		t.degrade(ctx, err)
	}
	return t, nil
}

func (t *Tracker) load(ctx context.Context) error {
	var tasks []Task
	if err := t.get(ctx, keyTasks, &tasks); err != nil {
		return err
	}
	t.tasks = NewTaskStore(tasks)

	fields := []struct {
		key string
		dst any
	}{
		{keyStreak, &t.streak},
		{keyScore, &t.score},
		{keyTasksCompleted, &t.tasksCompleted},
		{keyDaysActive, &t.daysActive},
		{keyLastVisitDate, &t.lastVisit},
		{keyLastRewardClaim, &t.lastRewardClaim},
		{keyCheckInMethod, &t.checkIn},
		{keyOnboarded, &t.onboarded},
	}
	for _, f := range fields {
		if err := t.get(ctx, f.key, f.dst); err != nil {
			return err
		}
	}
	if _, err := ParseCheckInMethod(string(t.checkIn)); err != nil {
		t.checkIn = CheckInSwipe
	}
	return nil
}

func (t *Tracker) applyRollover(ctx context.Context) {
	res := Rollover(State{Tasks: t.tasks.Tasks(), Streak: t.streak, LastVisit: t.lastVisit}, t.today)
	t.rollover = res

	switch res.Transition {
	case TransitionSameDay:
		return
	case TransitionClockSkew:
		t.log.Warn("clock is behind last visit, skipping rollover",
			zap.String("last_visit", t.lastVisit.String()),
			zap.String("today", t.today.String()),
			zap.Int("diff_days", res.DiffDays))
		return
	}

	t.tasks = NewTaskStore(res.State.Tasks)
	t.streak = res.State.Streak
	t.lastVisit = res.State.LastVisit
	t.daysActive++

	// lastVisitDate goes first: a failure after it loses this rollover, it never repeats it.
	t.put(ctx, keyLastVisitDate, t.lastVisit)
	if res.Record != nil {
		t.put(ctx, HistoryKey(res.Record.Date), res.Record)
	}
	t.put(ctx, keyTasks, t.tasks.Tasks())
	t.put(ctx, keyStreak, t.streak)
	t.put(ctx, keyDaysActive, t.daysActive)

	t.log.Info("day rollover",
		zap.String("transition", res.Transition.String()),
		zap.String("today", t.today.String()),
		zap.Int("streak", t.streak))
}

// Rollover reports what happened when the session was opened.
func (t *Tracker) Rollover() RolloverResult {
	return t.rollover
}

func (t *Tracker) Today() Date { return t.today }
func (t *Tracker) Tasks() []Task { return t.tasks.Tasks() }
func (t *Tracker) Streak() int { return t.streak }
func (t *Tracker) Score() int { return t.score }
func (t *Tracker) TasksCompleted() int { return t.tasksCompleted }
func (t *Tracker) LastVisit() Date { return t.lastVisit }
func (t *Tracker) Onboarded() bool { return t.onboarded }
func (t *Tracker) Degraded() bool { return t.degraded }
func (t *Tracker) Method() CheckInMethod { return t.checkIn }

func (t *Tracker) Task(id string) (Task, error) {
	return t.tasks.Get(id)
}

func (t *Tracker) AddTask(ctx context.Context, in TaskInput) (Task, error) {
	task, err := t.tasks.Add(in)
	if err != nil {
		return Task{}, err
	}
	t.saveTasks(ctx)
	t.log.Debug("task added", zap.String("task_id", task.ID), zap.Bool("recurring", task.IsRecurring))
	return task, nil
}

func (t *Tracker) DeleteTask(ctx context.Context, id string) error {
	if err := t.tasks.Delete(id); err != nil {
		return err
	}
	t.saveTasks(ctx)
	return nil
}

func (t *Tracker) SetProgress(ctx context.Context, id string, current int) (Outcome, error) {
	done, err := t.tasks.SetProgress(id, current)
	return t.finish(ctx, id, done, err)
}

func (t *Tracker) Increment(ctx context.Context, id string, delta int) (Outcome, error) {
	done, err := t.tasks.Increment(id, delta)
	return t.finish(ctx, id, done, err)
}

func (t *Tracker) Toggle(ctx context.Context, id string) (Outcome, error) {
	done, err := t.tasks.Toggle(id)
	return t.finish(ctx, id, done, err)
}

// CheckIn advances a task according to the configured check-in method.
// Boolean tasks are always toggled.
func (t *Tracker) CheckIn(ctx context.Context, id string) (Outcome, error) {
	task, err := t.tasks.Get(id)
	if err != nil {
		return Outcome{}, err
	}
	if t.checkIn == CheckInTap || task.IsBoolean() {
		return t.Toggle(ctx, id)
	}
	return t.Increment(ctx, id, 1)
}

func (t *Tracker) finish(ctx context.Context, id string, completed bool, err error) (Outcome, error) {
	if err != nil {
		return Outcome{}, err
	}
	task, _ := t.tasks.Get(id)
	out := Outcome{Task: task, Completed: completed}
	t.saveTasks(ctx)
	if completed {
		out.Points = PointsForCompletion(t.streak)
		t.score += out.Points
		t.tasksCompleted++
		t.put(ctx, keyScore, t.score)
		t.put(ctx, keyTasksCompleted, t.tasksCompleted)
		t.log.Info("task completed",
			zap.String("task_id", id),
			zap.Int("points", out.Points),
			zap.Int("score", t.score))
	}
	return out, nil
}

// RewardClaimed reports whether today's reward was taken.
func (t *Tracker) RewardClaimed() bool {
	return t.lastRewardClaim == t.today
}

// ClaimDailyReward adds today's reward points once per calendar day.
func (t *Tracker) ClaimDailyReward(ctx context.Context) (Reward, error) {
	reward := DailyReward(t.streak)
	if t.RewardClaimed() {
		return reward, ErrRewardClaimed
	}
	t.lastRewardClaim = t.today
	t.score += reward.Points
	t.put(ctx, keyLastRewardClaim, t.lastRewardClaim)
	t.put(ctx, keyScore, t.score)
	t.log.Info("daily reward claimed", zap.Int("day", reward.Day), zap.Int("points", reward.Points))
	return reward, nil
}

// Onboard seeds the default tasks the first time it is called.
// It returns the seeded tasks, or nil when the user was already onboarded.
func (t *Tracker) Onboard(ctx context.Context) ([]Task, error) {
	if t.onboarded {
		return nil, nil
	}
	var seeded []Task
	for _, in := range DefaultTasks() {
		task, err := t.tasks.Add(in)
		if err != nil {
			return nil, err
		}
		seeded = append(seeded, task)
	}
	t.onboarded = true
	t.saveTasks(ctx)
	t.put(ctx, keyOnboarded, true)
	return seeded, nil
}

func (t *Tracker) SetCheckInMethod(ctx context.Context, m CheckInMethod) error {
	if _, err := ParseCheckInMethod(string(m)); err != nil {
		return err
	}
	t.checkIn = m
	t.put(ctx, keyCheckInMethod, m)
	return nil
}

// History returns the stored record of a past day.
func (t *Tracker) History(ctx context.Context, d Date) (DayRecord, bool) {
	if t.pending != nil && t.pending.Date == d {
		return *t.pending, true
	}
	var rec DayRecord
	raw, ok, err := t.store.Get(ctx, HistoryKey(d))
	if err != nil {
		t.log.Warn("read history", zap.String("date", d.String()), zap.Error(err))
		return rec, false
	}
	if !ok {
		return rec, false
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		t.log.Warn("decode history", zap.String("date", d.String()), zap.Error(err))
		return rec, false
	}
	return rec, true
}

// Week returns the last seven days including today, oldest first.
func (t *Tracker) Week(ctx context.Context) []DayRecord {
	return Week(t.today, func(d Date) (DayRecord, bool) {
		return t.History(ctx, d)
	}, t.tasks.Tasks())
}

func (t *Tracker) Stats() Stats {
	return Stats{
		TasksCompleted: t.tasksCompleted,
		Score:          t.score,
		Streak:         t.streak,
		DaysActive:     t.daysActive,
	}
}

func (t *Tracker) Summary(ctx context.Context) Summary {
	tasks := t.tasks.Tasks()
	week := t.Week(ctx)
	return Summary{
		Today:          t.today,
		Tasks:          tasks,
		Streak:         t.streak,
		Score:          t.score,
		TasksCompleted: t.tasksCompleted,
		DaysActive:     t.daysActive,
		CompletedCount: CompletionCount(tasks),
		Progress:       ProgressPercentage(tasks, nil),
		Categories:     CategoryProgress(tasks),
		Week:           week,
		WeeklyAverage:  WeeklyAverage(week),
		Achievements:   Achievements(t.Stats()),
		NextReward:     DailyReward(t.streak),
		RewardClaimed:  t.RewardClaimed(),
		CheckInMethod:  t.checkIn,
		Degraded:       t.degraded,
	}
}

func (t *Tracker) saveTasks(ctx context.Context) {
	t.put(ctx, keyTasks, t.tasks.Tasks())
}

func (t *Tracker) get(ctx context.Context, key string, dst any) error {
	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		return &StorageError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// An unreadable value is dropped so the rest of the state still loads and saves.
		t.log.Warn("skip undecodable value", zap.String("key", key), zap.Error(err))
		v := reflect.ValueOf(dst).Elem()
		v.Set(reflect.Zero(v.Type()))
	}
	return nil
}

func (t *Tracker) put(ctx context.Context, key string, v any) {
	if t.readOnly {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		t.log.Error("encode value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := t.store.Set(ctx, key, raw); err != nil {
		t.degrade(ctx, &StorageError{Op: "set", Key: key, Err: err})
		_ = t.store.Set(ctx, key, raw)
	}
}

// degrade swaps the store for an in-memory one holding the current state.
func (t *Tracker) degrade(ctx context.Context, err error) {
	if t.tasks == nil {
		t.tasks = NewTaskStore(nil)
	}
	if t.degraded {
		return
	}
	t.log.Error("storage unavailable, continuing in memory", zap.Error(err))
	t.degraded = true
	t.store = NewMemoryStore()
	t.put(ctx, keyTasks, t.tasks.Tasks())
	t.put(ctx, keyStreak, t.streak)
	t.put(ctx, keyScore, t.score)
	t.put(ctx, keyTasksCompleted, t.tasksCompleted)
	t.put(ctx, keyDaysActive, t.daysActive)
	t.put(ctx, keyLastVisitDate, t.lastVisit)
	t.put(ctx, keyLastRewardClaim, t.lastRewardClaim)
	t.put(ctx, keyCheckInMethod, t.checkIn)
	t.put(ctx, keyOnboarded, t.onboarded)
}
