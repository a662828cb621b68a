package tracker

// Transition classifies what a rollover did.
type Transition int

const (
	TransitionFirstRun Transition = iota
	TransitionSameDay
	TransitionNextDay
	TransitionGap
	// TransitionClockSkew means today is before the last visit. Nothing changes.
	TransitionClockSkew
)

func (t Transition) String() string {
	switch t {
	case TransitionFirstRun:
		return "first_run"
	case TransitionSameDay:
		return "same_day"
	case TransitionNextDay:
		return "next_day"
	case TransitionGap:
		return "gap"
	case TransitionClockSkew:
		return "clock_skew"
	default:
		return "unknown"
	}
}

// DayRecord is the immutable snapshot of one finished day.
type DayRecord struct {
	Date           Date `json:"date"`
	CompletedCount int  `json:"completed"`
	TotalCount     int  `json:"total"`
}

// Percentage is completed/total*100, or 0 for an empty day.
func (r DayRecord) Percentage() float64 {
	if r.TotalCount <= 0 {
		return 0
	}
	return float64(r.CompletedCount) / float64(r.TotalCount) * 100
}

// State is the input and output of a rollover.
type State struct {
	Tasks     []Task
	Streak    int
	LastVisit Date
}

type RolloverResult struct {
	Transition Transition
	DiffDays   int
	// Record is set on NextDay and Gap.
	Record *DayRecord
	State  State
}

// Changed reports whether the state must be persisted.
func (r RolloverResult) Changed() bool {
	switch r.Transition {
	case TransitionFirstRun, TransitionNextDay, TransitionGap:
		return true
	default:
		return false
	}
}

// Rollover advances streak and history when today differs from the last visit.
// It does not modify the input; calling it again with the same today is a no-op.
func Rollover(state State, today Date) RolloverResult {
	if state.LastVisit.IsZero() {
		next := State{Tasks: copyTasks(state.Tasks), Streak: 1, LastVisit: today}
		return RolloverResult{Transition: TransitionFirstRun, State: next}
	}

	diff := DaysBetween(state.LastVisit, today)
	switch {
	case diff == 0:
		return RolloverResult{Transition: TransitionSameDay, State: state}
	case diff < 0:
		return RolloverResult{Transition: TransitionClockSkew, DiffDays: diff, State: state}
	}

	ts := NewTaskStore(state.Tasks)
	record := DayRecord{
		Date:           state.LastVisit,
		CompletedCount: CompletionCount(state.Tasks),
		TotalCount:     len(state.Tasks),
	}
	ts.resetRecurring()

	next := State{Tasks: ts.Tasks(), LastVisit: today}
	transition := TransitionNextDay
	if diff == 1 {
		next.Streak = state.Streak + 1
	} else {
		transition = TransitionGap
		next.Streak = 1
	}
	return RolloverResult{Transition: transition, DiffDays: diff, Record: &record, State: next}
}

func copyTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
