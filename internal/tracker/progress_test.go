package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressPercentage(t *testing.T) {
	tasks := []Task{
		{Current: 2, Target: 4, Category: CategoryHealth},
		{Current: 4, Target: 4, Completed: true, Category: CategoryWork},
	}
	assert.InDelta(t, 75.0, ProgressPercentage(tasks, nil), 1e-9)

	health := CategoryHealth
	assert.InDelta(t, 50.0, ProgressPercentage(tasks, &health), 1e-9)

	fitness := CategoryFitness
	assert.Equal(t, 0.0, ProgressPercentage(tasks, &fitness))
	assert.Equal(t, 0.0, ProgressPercentage(nil, nil))
}

func TestProgressPercentageCapsEachTask(t *testing.T) {
	tasks := []Task{
		{Current: 10, Target: 4},
		{Current: 0, Target: 4},
	}
	assert.InDelta(t, 50.0, ProgressPercentage(tasks, nil), 1e-9)
}

func TestCompletionCount(t *testing.T) {
	assert.Equal(t, 2, CompletionCount(sampleTasks()))
	assert.Equal(t, 0, CompletionCount(nil))
}

func TestPointsForCompletion(t *testing.T) {
	cases := map[int]int{
		-2: 10,
		0:  10,
		1:  10,
		2:  20,
		4:  40,
		5:  50,
		12: 50,
	}
	for streak, want := range cases {
		assert.Equal(t, want, PointsForCompletion(streak), "streak=%d", streak)
	}
}

func TestWeeklyAverage(t *testing.T) {
	empty := make([]DayRecord, 7)
	assert.Equal(t, 0.0, WeeklyAverage(empty))

	one := make([]DayRecord, 7)
	one[3] = DayRecord{CompletedCount: 5, TotalCount: 5}
	assert.InDelta(t, 14.29, WeeklyAverage(one), 0.01)

	assert.Equal(t, 0.0, WeeklyAverage(nil))
}

func TestWeek(t *testing.T) {
	history := map[Date]DayRecord{
		"2025-03-08": {CompletedCount: 1, TotalCount: 2},
		"2025-03-02": {CompletedCount: 3, TotalCount: 3},
	}
	lookup := func(d Date) (DayRecord, bool) {
		r, ok := history[d]
		return r, ok
	}
	today := []Task{{Completed: true, Current: 1, Target: 1}, {Target: 1}}

	week := Week("2025-03-10", lookup, today)
	require.Len(t, week, WeekDays)

	assert.Equal(t, Date("2025-03-04"), week[0].Date)
	assert.Equal(t, Date("2025-03-10"), week[6].Date)
	assert.Equal(t, DayRecord{Date: "2025-03-08", CompletedCount: 1, TotalCount: 2}, week[4])
	assert.Equal(t, DayRecord{Date: "2025-03-10", CompletedCount: 1, TotalCount: 2}, week[6])
	assert.Equal(t, DayRecord{Date: "2025-03-05"}, week[1])
	assert.InDelta(t, 100.0/7, WeeklyAverage(week), 1e-9)
}

func TestCategoryProgress(t *testing.T) {
	got := CategoryProgress(sampleTasks())
	assert.Len(t, got, 3)
	assert.InDelta(t, 100.0, got[CategoryFitness], 1e-9)
	assert.InDelta(t, 37.5, got[CategoryHealth], 1e-9)
	_, ok := got[CategoryLearning]
	assert.False(t, ok)
}
