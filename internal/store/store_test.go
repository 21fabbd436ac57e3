package store

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := model.Day(fixedNow).AddDate(0, 0, offset)
	return &d
}

// newTestStore returns a store with priorities {Default, High} and categories {Work, Personal}.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithClock(func() time.Time { return fixedNow }))
	_, err := s.AddPriority("High")
	require.NoError(t, err)
	_, err = s.AddCategory("Work")
	require.NoError(t, err)
	_, err = s.AddCategory("Personal")
	require.NoError(t, err)
	return s
}

func mustAddTask(t *testing.T, s *Store, title, category, priority string, deadline *time.Time) model.Task {
	t.Helper()
	task, err := s.AddTask(model.NewTask(title, "", category, priority, deadline))
	require.NoError(t, err)
	return task
}

// requireIntegrity checks that every task references live entries and no
// reminder dangles.
func requireIntegrity(t *testing.T, s *Store) {
	t.Helper()
	categories := map[string]bool{}
	for _, c := range s.Categories() {
		categories[strings.ToLower(c.Name)] = true
	}
	priorities := map[string]bool{}
	for _, p := range s.Priorities() {
		priorities[strings.ToLower(p.Name)] = true
	}
	require.True(t, priorities[strings.ToLower(model.DefaultPriorityName)], "Default priority missing")
	tasks := map[string]model.Task{}
	for _, task := range s.Tasks() {
		tasks[task.ID] = task
		require.Truef(t, categories[strings.ToLower(task.Category)], "task %q has unknown category %q", task.Title, task.Category)
		require.Truef(t, priorities[strings.ToLower(task.Priority)], "task %q has unknown priority %q", task.Title, task.Priority)
	}
	for _, r := range s.Reminders() {
		task, ok := tasks[r.TaskID]
		require.Truef(t, ok, "reminder %s dangles", r.ID)
		require.NotEqual(t, model.StatusCompleted, task.Status)
	}
}

func TestNew_CreatesDefaultPriority(t *testing.T) {
	s := New()
	priorities := s.Priorities()
	require.Len(t, priorities, 1)
	assert.Equal(t, model.DefaultPriorityName, priorities[0].Name)
}

func TestAddTask_StatusFromDeadline(t *testing.T) {
	s := newTestStore(t)

	report := mustAddTask(t, s, "Report", "Work", "High", day(1))
	assert.Equal(t, model.StatusOpen, report.Status)
	assert.NotEmpty(t, report.ID)

	old := mustAddTask(t, s, "Old", "Work", "High", day(-1))
	assert.Equal(t, model.StatusDelayed, old.Status)

	noDeadline := mustAddTask(t, s, "Someday", "Work", "High", nil)
	assert.Equal(t, model.StatusOpen, noDeadline.Status)

	done := model.NewTask("Done long ago", "", "Work", "High", day(-30))
	done.Status = model.StatusCompleted
	stored, err := s.AddTask(done)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, stored.Status)

	requireIntegrity(t, s)
}

func TestAddTask_CanonicalisesReferences(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "Lowercase refs", "work", "HIGH", nil)
	assert.Equal(t, "Work", task.Category)
	assert.Equal(t, "High", task.Priority)
}

func TestAddTask_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		task model.Task
	}{
		{"unknown category", model.NewTask("A", "", "Errands", "High", nil)},
		{"unknown priority", model.NewTask("A", "", "Work", "Low", nil)},
		{"blank title", model.NewTask("   ", "", "Work", "High", nil)},
		{"duplicate title", model.NewTask("existing", "", "Work", "High", nil)},
		{"unknown status", model.Task{Title: "A", Category: "Work", Priority: "High", Status: "DONE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			mustAddTask(t, s, "Existing", "Work", "High", nil)
			before := s.Snapshot()

			_, err := s.AddTask(tt.task)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestRemoveTask_RemovesOnlyItsReminders(t *testing.T) {
	s := newTestStore(t)
	a := mustAddTask(t, s, "A", "Work", "High", day(10))
	b := mustAddTask(t, s, "B", "Work", "High", day(10))
	_, err := s.AddReminder("A", model.ReminderOneDayBefore, nil)
	require.NoError(t, err)
	_, err = s.AddReminder("A", model.ReminderOneWeekBefore, nil)
	require.NoError(t, err)
	keep, err := s.AddReminder("B", model.ReminderOneDayBefore, nil)
	require.NoError(t, err)

	require.NoError(t, s.RemoveTask(a.ID))

	reminders := s.Reminders()
	require.Len(t, reminders, 1)
	assert.Equal(t, keep.ID, reminders[0].ID)
	assert.Equal(t, b.ID, reminders[0].TaskID)
	requireIntegrity(t, s)

	err = s.RemoveTask(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTask_AppliesNonBlankFields(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "Task5", "Work", "High", day(1))

	updated, err := s.UpdateTask(task.ID, TaskUpdate{
		Title:       "New Task5",
		Description: "New Description",
		Category:    "personal",
		Deadline:    day(2),
	})
	require.NoError(t, err)
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "New Task5", updated.Title)
	assert.Equal(t, "New Description", updated.Description)
	assert.Equal(t, "Personal", updated.Category)
	assert.Equal(t, "High", updated.Priority)
	assert.Equal(t, day(2), updated.Deadline)

	untouched, err := s.UpdateTask(task.ID, TaskUpdate{Title: " ", Description: ""})
	require.NoError(t, err)
	assert.Equal(t, updated, untouched)
}

func TestUpdateTask_FailureLeavesTaskUnchanged(t *testing.T) {
	tests := []struct {
		name string
		upd  TaskUpdate
		err  error
	}{
		{"past deadline", TaskUpdate{Title: "Renamed", Deadline: day(-1)}, ErrValidation},
		{"unknown category", TaskUpdate{Title: "Renamed", Category: "Nope"}, ErrValidation},
		{"unknown priority", TaskUpdate{Description: "x", Priority: "Nope"}, ErrValidation},
		{"title taken", TaskUpdate{Title: "OTHER"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			task := mustAddTask(t, s, "Original", "Work", "High", day(3))
			mustAddTask(t, s, "Other", "Work", "High", nil)
			before := s.Snapshot()

			_, err := s.UpdateTask(task.ID, tt.upd)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, before, s.Snapshot())
		})
	}

	s := newTestStore(t)
	_, err := s.UpdateTask("missing", TaskUpdate{Title: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTask_KeepsOwnTitleWithDifferentCase(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "report", "Work", "High", nil)
	updated, err := s.UpdateTask(task.ID, TaskUpdate{Title: "Report"})
	require.NoError(t, err)
	assert.Equal(t, "Report", updated.Title)
}

func TestUpdateTaskStatus(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "Task6", "Work", "High", day(10))
	for _, kind := range []model.ReminderKind{model.ReminderOneDayBefore, model.ReminderOneWeekBefore} {
		_, err := s.AddReminder("Task6", kind, nil)
		require.NoError(t, err)
	}
	_, err := s.AddReminder("task6", model.ReminderCustomDate, day(0))
	require.NoError(t, err)
	require.Len(t, s.RemindersForTask(task.ID), 3)

	inProgress, err := s.UpdateTaskStatus(task.ID, model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, inProgress.Status)
	assert.Len(t, s.RemindersForTask(task.ID), 3)

	completed, err := s.UpdateTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
	assert.Empty(t, s.RemindersForTask(task.ID))
	assert.Empty(t, s.Reminders())

	_, err = s.UpdateTaskStatus(task.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateTaskStatus(task.ID, "FINISHED")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.UpdateTaskStatus("missing", model.StatusOpen)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTaskStatus_OverdueStaysDelayed(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "Late", "Work", "High", day(-2))
	require.Equal(t, model.StatusDelayed, task.Status)

	reopened, err := s.UpdateTaskStatus(task.ID, model.StatusOpen)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelayed, reopened.Status)

	completed, err := s.UpdateTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.Status)
}

func TestSearchTasks(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddPriority("Low")
	require.NoError(t, err)
	mustAddTask(t, s, "Email", "Work", "High", nil)
	mustAddTask(t, s, "Shopping", "Personal", "Low", nil)
	mustAddTask(t, s, "Meeting", "Work", "Low", nil)

	titles := func(tasks []model.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Email", "Meeting"}, titles(s.SearchTasks(TaskFilter{Title: "e"})))
	assert.Equal(t, []string{"Email", "Meeting"}, titles(s.SearchTasks(TaskFilter{Title: "E"})))
	assert.Equal(t, []string{"Email", "Shopping", "Meeting"}, titles(s.SearchTasks(TaskFilter{})))
	assert.Equal(t, []string{"Email", "Meeting"}, titles(s.SearchTasks(TaskFilter{Category: "work"})))
	assert.Equal(t, []string{"Meeting"}, titles(s.SearchTasks(TaskFilter{Category: "WORK", Priority: "low"})))
	assert.Equal(t, []string{"Shopping"}, titles(s.SearchTasks(TaskFilter{Title: "shop", Priority: "Low"})))

	none := s.SearchTasks(TaskFilter{Title: "zzz"})
	require.NotNil(t, none)
	assert.Empty(t, none)
	assert.Empty(t, s.SearchTasks(TaskFilter{Category: "Wor"}), "category match is exact")
}

func TestCategories(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddCategory("  ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddCategory("WORK")
	assert.ErrorIs(t, err, ErrValidation)

	studies, err := s.AddCategory(" Studies ")
	require.NoError(t, err)
	assert.Equal(t, "Studies", studies.Name)

	got, err := s.CategoryByName("studies")
	require.NoError(t, err)
	assert.Equal(t, studies, got)
	_, err = s.CategoryByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveCategory_Cascades(t *testing.T) {
	s := newTestStore(t)
	work, err := s.CategoryByName("Work")
	require.NoError(t, err)

	a := mustAddTask(t, s, "A", "Work", "High", day(5))
	b := mustAddTask(t, s, "B", "Work", "Default", day(5))
	keep := mustAddTask(t, s, "C", "Personal", "High", day(5))
	for _, title := range []string{"A", "B", "C"} {
		_, err := s.AddReminder(title, model.ReminderOneDayBefore, nil)
		require.NoError(t, err)
	}

	require.NoError(t, s.RemoveCategory(work.ID))

	tasks := s.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, keep, tasks[0])
	reminders := s.Reminders()
	require.Len(t, reminders, 1)
	assert.Equal(t, keep.ID, reminders[0].TaskID)
	_, err = s.Task(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Task(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	requireIntegrity(t, s)

	assert.ErrorIs(t, s.RemoveCategory(work.ID), ErrNotFound)
}

func TestRenameCategory(t *testing.T) {
	s := newTestStore(t)
	work, err := s.CategoryByName("Work")
	require.NoError(t, err)
	task := mustAddTask(t, s, "A", "Work", "High", nil)

	_, err = s.RenameCategory(work.ID, "personal")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.RenameCategory(work.ID, "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.RenameCategory("missing", "Office")
	assert.ErrorIs(t, err, ErrNotFound)

	renamed, err := s.RenameCategory(work.ID, "Office")
	require.NoError(t, err)
	assert.Equal(t, work.ID, renamed.ID)
	assert.Equal(t, "Office", renamed.Name)

	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", got.Category)
	requireIntegrity(t, s)

	recased, err := s.RenameCategory(work.ID, "OFFICE")
	require.NoError(t, err)
	assert.Equal(t, "OFFICE", recased.Name)
}

func TestPriorities(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddPriority("")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddPriority("high")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddPriority("default")
	assert.ErrorIs(t, err, ErrValidation)

	low, err := s.AddPriority("Low")
	require.NoError(t, err)
	got, err := s.PriorityByName("LOW")
	require.NoError(t, err)
	assert.Equal(t, low, got)
}

func TestRemovePriority_ReassignsToDefault(t *testing.T) {
	s := newTestStore(t)
	high, err := s.PriorityByName("High")
	require.NoError(t, err)
	def, err := s.PriorityByName(model.DefaultPriorityName)
	require.NoError(t, err)
	low, err := s.AddPriority("Low")
	require.NoError(t, err)

	a := mustAddTask(t, s, "A", "Work", "High", nil)
	b := mustAddTask(t, s, "B", "Personal", "High", nil)
	c := mustAddTask(t, s, "C", "Work", "Low", nil)

	require.NoError(t, s.RemovePriority(high.ID))

	for _, id := range []string{a.ID, b.ID} {
		task, err := s.Task(id)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultPriorityName, task.Priority)
	}
	untouched, err := s.Task(c.ID)
	require.NoError(t, err)
	assert.Equal(t, low.Name, untouched.Priority)
	requireIntegrity(t, s)

	assert.ErrorIs(t, s.RemovePriority(def.ID), ErrValidation)
	assert.ErrorIs(t, s.RemovePriority(high.ID), ErrNotFound)
	assert.Len(t, s.Priorities(), 2)
}

func TestRenamePriority(t *testing.T) {
	s := newTestStore(t)
	def, err := s.PriorityByName(model.DefaultPriorityName)
	require.NoError(t, err)
	high, err := s.PriorityByName("High")
	require.NoError(t, err)

	for _, name := range []string{"X", "", "Default", "Normal", "high"} {
		_, err := s.RenamePriority(def.ID, name)
		assert.ErrorIsf(t, err, ErrValidation, "rename Default to %q", name)
	}
	_, err = s.RenamePriority(high.ID, "default")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.RenamePriority(high.ID, " ")
	assert.ErrorIs(t, err, ErrValidation)

	task := mustAddTask(t, s, "A", "Work", "High", nil)
	renamed, err := s.RenamePriority(high.ID, "Urgent")
	require.NoError(t, err)
	assert.Equal(t, "Urgent", renamed.Name)
	got, err := s.Task(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Urgent", got.Priority)
	requireIntegrity(t, s)
}

func TestAddReminder(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "Report", "Work", "High", day(1))

	r, err := s.AddReminder("Report", model.ReminderOneDayBefore, nil)
	require.NoError(t, err, "reminder due today is not in the past")
	date, err := s.ReminderDate(r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Day(fixedNow), date)
	assert.Nil(t, r.CustomDate)

	_, err = s.AddReminder("Report", model.ReminderOneWeekBefore, nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReminder("Report", model.ReminderCustomDate, day(-1))
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReminder("Report", model.ReminderCustomDate, nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReminder("Report", "SOMETIME", nil)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.AddReminder("Nope", model.ReminderOneDayBefore, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	mustAddTask(t, s, "No deadline", "Work", "High", nil)
	_, err = s.AddReminder("No deadline", model.ReminderOneDayBefore, nil)
	assert.ErrorIs(t, err, ErrValidation)
	custom, err := s.AddReminder("no deadline", model.ReminderCustomDate, day(3))
	require.NoError(t, err)
	assert.Equal(t, day(3), custom.CustomDate)

	assert.Len(t, s.Reminders(), 2)
}

func TestAddReminder_CompletedTask(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "Done", "Work", "High", day(10))
	_, err := s.UpdateTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)

	_, err = s.AddReminder("Done", model.ReminderOneDayBefore, nil)
	assert.ErrorIs(t, err, ErrState)
	assert.Empty(t, s.Reminders())
}

func TestReminder_OneMonthBeforeClampsToMonthEnd(t *testing.T) {
	s := newTestStore(t)
	deadline := time.Date(2027, time.March, 31, 0, 0, 0, 0, time.UTC)
	mustAddTask(t, s, "Taxes", "Personal", "High", &deadline)

	r, err := s.AddReminder("Taxes", model.ReminderOneMonthBefore, nil)
	require.NoError(t, err)
	date, err := s.ReminderDate(r.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, time.February, 28, 0, 0, 0, 0, time.UTC), date)
}

func TestUpdateReminder(t *testing.T) {
	s := newTestStore(t)
	task := mustAddTask(t, s, "Trip", "Personal", "High", day(40))
	r, err := s.AddReminder("Trip", model.ReminderOneMonthBefore, nil)
	require.NoError(t, err)

	updated, err := s.UpdateReminder(r.ID, model.ReminderCustomDate, day(2))
	require.NoError(t, err)
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, model.ReminderCustomDate, updated.Kind)
	assert.Equal(t, day(2), updated.CustomDate)

	_, err = s.UpdateReminder(r.ID, model.ReminderCustomDate, day(-3))
	assert.ErrorIs(t, err, ErrValidation)
	got, err := s.Reminder(r.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got, "failed update must not mutate")

	back, err := s.UpdateReminder(r.ID, model.ReminderOneWeekBefore, day(5))
	require.NoError(t, err)
	assert.Nil(t, back.CustomDate, "custom date only kept for CUSTOM_DATE")

	_, err = s.UpdateReminder("missing", model.ReminderOneDayBefore, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	second, err := s.AddReminder("Trip", model.ReminderOneDayBefore, nil)
	require.NoError(t, err)
	_, err = s.UpdateTaskStatus(task.ID, model.StatusCompleted)
	require.NoError(t, err)
	_, err = s.UpdateReminder(second.ID, model.ReminderOneWeekBefore, nil)
	assert.ErrorIs(t, err, ErrNotFound, "completing the task dropped the reminder")
}

func TestRemoveReminder(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "A", "Work", "High", day(3))
	r, err := s.AddReminder("A", model.ReminderOneDayBefore, nil)
	require.NoError(t, err)

	require.NoError(t, s.RemoveReminder(r.ID))
	assert.Empty(t, s.Reminders())
	assert.ErrorIs(t, s.RemoveReminder(r.ID), ErrNotFound)
	_, err = s.Reminder(r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDueRemindersOn(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "Tomorrow", "Work", "High", day(1))
	mustAddTask(t, s, "Next week", "Work", "High", day(7))
	mustAddTask(t, s, "Later", "Work", "High", day(30))

	a, err := s.AddReminder("Tomorrow", model.ReminderOneDayBefore, nil)
	require.NoError(t, err)
	b, err := s.AddReminder("Next week", model.ReminderOneWeekBefore, nil)
	require.NoError(t, err)
	_, err = s.AddReminder("Later", model.ReminderOneWeekBefore, nil)
	require.NoError(t, err)
	c, err := s.AddReminder("Later", model.ReminderCustomDate, day(2))
	require.NoError(t, err)

	due := s.DueRemindersOn(fixedNow)
	require.Len(t, due, 2)
	assert.Equal(t, a.ID, due[0].Reminder.ID)
	assert.Equal(t, "Tomorrow", due[0].Task.Title)
	assert.Equal(t, b.ID, due[1].Reminder.ID)
	assert.Equal(t, model.Day(fixedNow), due[1].Date)

	later := s.DueRemindersOn(*day(2))
	require.Len(t, later, 1)
	assert.Equal(t, c.ID, later[0].Reminder.ID)

	assert.NotNil(t, s.DueRemindersOn(*day(100)))
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	mustAddTask(t, s, "Today", "Work", "High", day(0))
	mustAddTask(t, s, "Six days", "Work", "High", day(6))
	mustAddTask(t, s, "Seven days", "Work", "High", day(7))
	mustAddTask(t, s, "Late", "Work", "High", day(-1))
	done := mustAddTask(t, s, "Done", "Work", "High", nil)
	_, err := s.UpdateTaskStatus(done.ID, model.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, Stats{Total: 5, Completed: 1, Delayed: 1, DueSoon: 2}, s.Stats())
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			title := "Task " + string(rune('A'+i))
			if _, err := s.AddTask(model.NewTask(title, "", "Work", "High", day(5))); err != nil {
				t.Errorf("add %s: %v", title, err)
				return
			}
			_ = s.SearchTasks(TaskFilter{Title: "task"})
			_ = s.DueRemindersOn(fixedNow)
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.Tasks(), 20)
}

func TestRefreshDelayed_AfterMidnight(t *testing.T) {
	now := fixedNow
	s := New(WithClock(func() time.Time { return now }))
	_, err := s.AddCategory("Work")
	require.NoError(t, err)
	mustAddTask(t, s, "Today", "Work", "Default", day(0))
	done := mustAddTask(t, s, "Done", "Work", "Default", day(0))
	_, err = s.UpdateTaskStatus(done.ID, model.StatusCompleted)
	require.NoError(t, err)

	assert.Zero(t, s.RefreshDelayed())

	now = fixedNow.Add(24 * time.Hour)
	assert.Equal(t, 1, s.RefreshDelayed())
	task, err := s.TaskByTitle("Today")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelayed, task.Status)
	assert.Zero(t, s.RefreshDelayed())
}
