package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addTask(t *testing.T, s *TaskStore, target int) Task {
	t.Helper()
	task, err := s.Add(TaskInput{Label: "Drink water", Emoji: "💧", Category: CategoryHealth, Target: target, Unit: "glasses", IsRecurring: true})
	require.NoError(t, err)
	return task
}

func assertCompletionConsistent(t *testing.T, s *TaskStore) {
	t.Helper()
	for _, task := range s.Tasks() {
		assert.Equal(t, task.Current >= task.Target, task.Completed, "task %s", task.ID)
		assert.GreaterOrEqual(t, task.Current, 0)
		assert.LessOrEqual(t, task.Current, task.Target)
	}
}

func TestAddTask(t *testing.T) {
	s := NewTaskStore(nil)
	task := addTask(t, s, 8)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 0, task.Current)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, 1, s.Len())

	other := addTask(t, s, 8)
	assert.NotEqual(t, task.ID, other.ID)
}

func TestAddTaskDefaults(t *testing.T) {
	s := NewTaskStore(nil)
	task, err := s.Add(TaskInput{Label: "  Stretch  ", Target: 1})
	require.NoError(t, err)
	assert.Equal(t, "Stretch", task.Label)
	assert.Equal(t, DefaultCategory, task.Category)
	assert.Equal(t, "✨", task.Emoji)
}

func TestAddTaskValidation(t *testing.T) {
	cases := []struct {
		name  string
		input TaskInput
		field string
	}{
		{"empty label", TaskInput{Label: "", Target: 1}, "label"},
		{"blank label", TaskInput{Label: "   ", Target: 1}, "label"},
		{"zero target", TaskInput{Label: "Run", Target: 0}, "target"},
		{"negative target", TaskInput{Label: "Run", Target: -3}, "target"},
		{"unknown category", TaskInput{Label: "Run", Target: 1, Category: "chores"}, "category"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewTaskStore(nil)
			_, err := s.Add(tc.input)
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestDeleteTask(t *testing.T) {
	s := NewTaskStore(nil)
	task := addTask(t, s, 1)

	require.NoError(t, s.Delete(task.ID))
	assert.Equal(t, 0, s.Len())

	err := s.Delete(task.ID)
	assert.True(t, IsNotFound(err))
}

func TestSetProgressClamps(t *testing.T) {
	s := NewTaskStore(nil)
	task := addTask(t, s, 8)

	_, err := s.SetProgress(task.ID, 12)
	require.NoError(t, err)
	got, _ := s.Get(task.ID)
	assert.Equal(t, 8, got.Current)
	assert.True(t, got.Completed)

	_, err = s.SetProgress(task.ID, -4)
	require.NoError(t, err)
	got, _ = s.Get(task.ID)
	assert.Equal(t, 0, got.Current)
	assert.False(t, got.Completed)
	assertCompletionConsistent(t, s)
}

func TestSetProgressTransition(t *testing.T) {
	s := NewTaskStore(nil)
	task := addTask(t, s, 4)

	done, err := s.SetProgress(task.ID, 2)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = s.SetProgress(task.ID, 4)
	require.NoError(t, err)
	assert.True(t, done, "reaching target completes the task")

	done, err = s.SetProgress(task.ID, 4)
	require.NoError(t, err)
	assert.False(t, done, "already completed")

	done, err = s.SetProgress(task.ID, 3)
	require.NoError(t, err)
	assert.False(t, done)
	assertCompletionConsistent(t, s)
}

func TestSetProgressUnknownTask(t *testing.T) {
	s := NewTaskStore(nil)
	_, err := s.SetProgress("missing", 1)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.TaskID)
}

func TestToggle(t *testing.T) {
	s := NewTaskStore(nil)
	task := addTask(t, s, 30)

	done, err := s.Toggle(task.ID)
	require.NoError(t, err)
	assert.True(t, done)
	got, _ := s.Get(task.ID)
	assert.Equal(t, 30, got.Current)

	done, err = s.Toggle(task.ID)
	require.NoError(t, err)
	assert.False(t, done)
	got, _ = s.Get(task.ID)
	assert.Equal(t, 0, got.Current)
	assert.False(t, got.Completed)

	_, err = s.Toggle("missing")
	assert.True(t, IsNotFound(err))
}

func TestIncrement(t *testing.T) {
	s := NewTaskStore(nil)
	task := addTask(t, s, 2)

	done, err := s.Increment(task.ID, 1)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = s.Increment(task.ID, 1)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = s.Increment(task.ID, 5)
	require.NoError(t, err)
	assert.False(t, done)
	assertCompletionConsistent(t, s)
}

func TestCompletionConsistentAfterMutations(t *testing.T) {
	s := NewTaskStore(nil)
	a := addTask(t, s, 3)
	b := addTask(t, s, 1)

	steps := []func() (bool, error){
		func() (bool, error) { return s.SetProgress(a.ID, 2) },
		func() (bool, error) { return s.Toggle(b.ID) },
		func() (bool, error) { return s.Increment(a.ID, 7) },
		func() (bool, error) { return s.Toggle(a.ID) },
		func() (bool, error) { return s.SetProgress(b.ID, -1) },
	}
	for _, step := range steps {
		_, err := step()
		require.NoError(t, err)
		assertCompletionConsistent(t, s)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := NewTaskStore(nil)
	addTask(t, s, 1)
	list := s.Tasks()
	list[0].Label = "changed"
	got := s.Tasks()
	assert.Equal(t, "Drink water", got[0].Label)
}

func TestTaskAt(t *testing.T) {
	s := NewTaskStore(nil)
	first := addTask(t, s, 8)
	second := addTask(t, s, 1)
	tasks := s.Tasks()

	got, err := TaskAt(tasks, "2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	got, err = TaskAt(tasks, " #1 ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = TaskAt(tasks, "3")
	assert.True(t, IsNotFound(err))
	_, err = TaskAt(tasks, "0")
	assert.True(t, IsNotFound(err))
	_, err = TaskAt(tasks, "two")
	assert.True(t, IsValidation(err))
}
