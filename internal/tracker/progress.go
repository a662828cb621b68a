package tracker

const (
	// BasePoints is awarded per completed task before the streak bonus.
	BasePoints = 10
	// MaxStreakMultiplier caps the streak bonus.
	MaxStreakMultiplier = 5
	// WeekDays is the window used by weekly statistics.
	WeekDays = 7
)

// ProgressPercentage averages per-task progress over the tasks matching filter (nil = all).
// Each task contributes at most 100%.
func ProgressPercentage(tasks []Task, filter *Category) float64 {
	var sum float64
	n := 0
	for _, t := range tasks {
		if filter != nil && t.Category != *filter {
			continue
		}
		sum += t.Ratio()
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * 100
}

func CompletionCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// PointsForCompletion is 10 points times the streak, with the multiplier clamped to [1, 5].
func PointsForCompletion(streak int) int {
	mult := streak
	if mult < 1 {
		mult = 1
	}
	if mult > MaxStreakMultiplier {
		mult = MaxStreakMultiplier
	}
	return BasePoints * mult
}

// WeeklyAverage is the mean daily completion percentage.
func WeeklyAverage(records []DayRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.Percentage()
	}
	return sum / float64(len(records))
}

// HistoryLookup returns the stored record of a past day, if any.
type HistoryLookup func(Date) (DayRecord, bool)

// Week builds the seven records ending today, oldest first.
// Today is taken from the live task list; missing days count as empty.
func Week(today Date, lookup HistoryLookup, todayTasks []Task) []DayRecord {
	out := make([]DayRecord, 0, WeekDays)
	for i := WeekDays - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		if i == 0 {
			out = append(out, DayRecord{Date: day, CompletedCount: CompletionCount(todayTasks), TotalCount: len(todayTasks)})
			continue
		}
		if lookup != nil {
			if rec, ok := lookup(day); ok {
				rec.Date = day
				out = append(out, rec)
				continue
			}
		}
		out = append(out, DayRecord{Date: day})
	}
	return out
}

// CategoryProgress maps each category that has tasks to its progress percentage.
func CategoryProgress(tasks []Task) map[Category]float64 {
	out := make(map[Category]float64)
	for _, c := range Categories {
		c := c
		has := false
		for _, t := range tasks {
			if t.Category == c {
				has = true
				break
			}
		}
		if has {
			out[c] = ProgressPercentage(tasks, &c)
		}
	}
	return out
}
