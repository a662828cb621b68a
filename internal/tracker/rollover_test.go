package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []Task {
	return []Task{
		{ID: "a", Label: "Workout", Category: CategoryFitness, Target: 30, Current: 30, Completed: true, IsRecurring: true},
		{ID: "b", Label: "Water", Category: CategoryHealth, Target: 8, Current: 3, IsRecurring: true},
		{ID: "c", Label: "Taxes", Category: CategoryWork, Target: 1, Current: 1, Completed: true, IsRecurring: false},
	}
}

func TestRolloverFirstRun(t *testing.T) {
	res := Rollover(State{Tasks: sampleTasks()}, "2025-03-10")

	assert.Equal(t, TransitionFirstRun, res.Transition)
	assert.Nil(t, res.Record)
	assert.Equal(t, 1, res.State.Streak)
	assert.Equal(t, Date("2025-03-10"), res.State.LastVisit)
	assert.Equal(t, sampleTasks(), res.State.Tasks)
	assert.True(t, res.Changed())
}

func TestRolloverSameDay(t *testing.T) {
	in := State{Tasks: sampleTasks(), Streak: 4, LastVisit: "2025-03-10"}
	res := Rollover(in, "2025-03-10")

	assert.Equal(t, TransitionSameDay, res.Transition)
	assert.Nil(t, res.Record)
	assert.Equal(t, in, res.State)
	assert.False(t, res.Changed())
}

func TestRolloverNextDay(t *testing.T) {
	in := State{Tasks: sampleTasks(), Streak: 4, LastVisit: "2025-03-10"}
	res := Rollover(in, "2025-03-11")

	assert.Equal(t, TransitionNextDay, res.Transition)
	assert.Equal(t, 5, res.State.Streak)
	assert.Equal(t, Date("2025-03-11"), res.State.LastVisit)

	require.NotNil(t, res.Record)
	assert.Equal(t, DayRecord{Date: "2025-03-10", CompletedCount: 2, TotalCount: 3}, *res.Record)

	tasks := res.State.Tasks
	require.Len(t, tasks, 3)
	assert.Equal(t, 0, tasks[0].Current)
	assert.False(t, tasks[0].Completed)
	assert.Equal(t, 0, tasks[1].Current)
	assert.True(t, tasks[2].Completed, "non-recurring task keeps its state")
	assert.Equal(t, 1, tasks[2].Current)

	assert.True(t, in.Tasks[0].Completed, "input is not modified")
}

func TestRolloverGapResetsStreak(t *testing.T) {
	in := State{Tasks: sampleTasks(), Streak: 9, LastVisit: "2025-03-10"}
	res := Rollover(in, "2025-03-13")

	assert.Equal(t, TransitionGap, res.Transition)
	assert.Equal(t, 3, res.DiffDays)
	assert.Equal(t, 1, res.State.Streak)
	require.NotNil(t, res.Record)
	assert.Equal(t, Date("2025-03-10"), res.Record.Date)
	assert.False(t, res.State.Tasks[0].Completed)
}

func TestRolloverClockSkew(t *testing.T) {
	in := State{Tasks: sampleTasks(), Streak: 6, LastVisit: "2025-03-10"}
	res := Rollover(in, "2025-03-08")

	assert.Equal(t, TransitionClockSkew, res.Transition)
	assert.Equal(t, -2, res.DiffDays)
	assert.Nil(t, res.Record)
	assert.Equal(t, in, res.State)
	assert.False(t, res.Changed())
}

func TestRolloverIdempotent(t *testing.T) {
	in := State{Tasks: sampleTasks(), Streak: 2, LastVisit: "2025-03-10"}
	first := Rollover(in, "2025-03-11")
	second := Rollover(first.State, "2025-03-11")

	assert.Equal(t, TransitionSameDay, second.Transition)
	assert.Nil(t, second.Record)
	assert.Equal(t, first.State, second.State)
}

func TestRolloverStreakArithmetic(t *testing.T) {
	cases := []struct {
		today  Date
		before int
		after  int
	}{
		{"2025-03-11", 0, 1},
		{"2025-03-11", 1, 2},
		{"2025-03-11", 41, 42},
		{"2025-03-12", 41, 1},
		{"2025-03-13", 5, 1},
		{"2026-03-10", 5, 1},
	}
	for _, tc := range cases {
		res := Rollover(State{Streak: tc.before, LastVisit: "2025-03-10"}, tc.today)
		assert.Equal(t, tc.after, res.State.Streak, "today=%s before=%d", tc.today, tc.before)
	}
}

func TestRolloverAcrossMonthAndYear(t *testing.T) {
	res := Rollover(State{Streak: 3, LastVisit: "2024-12-31"}, "2025-01-01")
	assert.Equal(t, TransitionNextDay, res.Transition)
	assert.Equal(t, 4, res.State.Streak)

	res = Rollover(State{Streak: 3, LastVisit: "2024-02-28"}, "2024-03-01")
	assert.Equal(t, TransitionGap, res.Transition, "2024 is a leap year")
}
