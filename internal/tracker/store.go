package tracker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStore holds the current day's tasks and applies mutations to them.
// Mutations report completion transitions through return values only.
type TaskStore struct {
	tasks []Task
	newID func() string
	now   func() time.Time
}

func NewTaskStore(tasks []Task) *TaskStore {
	s := &TaskStore{
		newID: func() string { return uuid.NewString() },
		now:   time.Now,
	}
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
	return s
}

// Tasks returns a copy of the task list in insertion order.
func (s *TaskStore) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

func (s *TaskStore) Get(id string) (Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, &NotFoundError{TaskID: id}
	}
	return s.tasks[i], nil
}

func (s *TaskStore) Add(input TaskInput) (Task, error) {
	in, err := input.normalize()
	if err != nil {
		return Task{}, err
	}
	task := Task{
		ID:          s.newID(),
		Label:       in.Label,
		Emoji:       in.Emoji,
		Category:    in.Category,
		Target:      in.Target,
		Unit:        in.Unit,
		IsRecurring: in.IsRecurring,
		CreatedAt:   s.now().UTC(),
	}
	s.tasks = append(s.tasks, task)
	return task, nil
}

func (s *TaskStore) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return &NotFoundError{TaskID: id}
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// SetProgress clamps current to [0, target] and recomputes completion.
// It returns true when this call moved the task from pending to completed.
func (s *TaskStore) SetProgress(id string, current int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, &NotFoundError{TaskID: id}
	}
	t := &s.tasks[i]
	if current < 0 {
		current = 0
	}
	if current > t.Target {
		current = t.Target
	}
	was := t.Completed
	t.Current = current
	t.Completed = t.Current >= t.Target
	return !was && t.Completed, nil
}

// Increment moves progress by delta, clamped like SetProgress.
func (s *TaskStore) Increment(id string, delta int) (bool, error) {
	t, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return s.SetProgress(id, t.Current+delta)
}

// Toggle flips completion, pinning current to target or zero.
func (s *TaskStore) Toggle(id string) (bool, error) {
	t, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if t.Completed {
		return s.SetProgress(id, 0)
	}
	return s.SetProgress(id, t.Target)
}

// resetRecurring zeroes progress of every recurring task.
func (s *TaskStore) resetRecurring() {
	for i := range s.tasks {
		if s.tasks[i].IsRecurring {
			s.tasks[i].Current = 0
			s.tasks[i].Completed = false
		}
	}
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// TaskAt resolves a 1-based list position, as shown to users, to a task.
func TaskAt(tasks []Task, position string) (Task, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(position), "#"))
	if err != nil {
		return Task{}, &ValidationError{Field: "task number", Reason: fmt.Sprintf("%q is not a number", position)}
	}
	if n < 1 || n > len(tasks) {
		return Task{}, &NotFoundError{TaskID: position}
	}
	return tasks[n-1], nil
}
