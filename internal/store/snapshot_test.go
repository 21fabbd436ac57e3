package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/model"
)

func TestSnapshot_LoadRoundTrip(t *testing.T) {
	src := newTestStore(t)
	mustAddTask(t, src, "Report", "Work", "High", day(5))
	mustAddTask(t, src, "Groceries", "Personal", "Default", nil)
	_, err := src.AddReminder("Report", model.ReminderOneDayBefore, nil)
	require.NoError(t, err)
	_, err = src.AddReminder("Groceries", model.ReminderCustomDate, day(1))
	require.NoError(t, err)

	snap := src.Snapshot()
	require.Len(t, snap.Reminders, 2)
	assert.Equal(t, "Report", snap.Reminders[0].TaskTitle)
	assert.Equal(t, "Groceries", snap.Reminders[1].TaskTitle)

	dst := New(WithClock(func() time.Time { return fixedNow }))
	result, err := dst.Load(snap)
	require.NoError(t, err)
	assert.Equal(t, LoadResult{}, result)

	assert.Equal(t, snap, dst.Snapshot())
	assert.Equal(t, src.Reminders(), dst.Reminders())
	requireIntegrity(t, dst)
}

func TestLoad_ReminderIDs(t *testing.T) {
	s := New(WithClock(func() time.Time { return fixedNow }))
	_, err := s.Load(Snapshot{
		Categories: []model.Category{{ID: "cat-1", Name: "Work"}},
		Tasks:      []model.Task{{ID: "task-1", Title: "A", Category: "Work", Priority: "Default", Status: model.StatusOpen}},
		Reminders: []ReminderRecord{
			{ID: "rem-1", TaskTitle: "A", Kind: model.ReminderCustomDate, CustomDate: day(2)},
			{ID: "rem-1", TaskTitle: "A", Kind: model.ReminderCustomDate, CustomDate: day(3)},
			{TaskTitle: "A", Kind: model.ReminderCustomDate, CustomDate: day(4)},
		},
	})
	require.NoError(t, err)

	reminders := s.Reminders()
	require.Len(t, reminders, 3)
	assert.Equal(t, "rem-1", reminders[0].ID)
	assert.NotEqual(t, "rem-1", reminders[1].ID, "duplicate id is replaced")
	assert.NotEmpty(t, reminders[2].ID)
	assert.NotEqual(t, reminders[1].ID, reminders[2].ID)

	category, err := s.CategoryByName("work")
	require.NoError(t, err)
	assert.Equal(t, "cat-1", category.ID)
	_, err = s.Task("task-1")
	require.NoError(t, err)
	_, err = s.Reminder("rem-1")
	require.NoError(t, err)
}

func TestLoad_StartupInvariants(t *testing.T) {
	s := New(WithClock(func() time.Time { return fixedNow }))
	completed := model.NewTask("Archived", "", "Work", "High", day(-5))
	completed.Status = model.StatusCompleted

	result, err := s.Load(Snapshot{
		Categories: []model.Category{{Name: "Work"}},
		Priorities: []model.Priority{{Name: "High"}},
		Tasks: []model.Task{
			model.NewTask("Overdue", "", "Work", "High", day(-1)),
			model.NewTask("Future", "", "work", "high", day(3)),
			completed,
		},
		Reminders: []ReminderRecord{
			{TaskTitle: "future", Kind: model.ReminderOneDayBefore},
			{TaskTitle: "Ghost", Kind: model.ReminderOneDayBefore},
			{TaskTitle: "Archived", Kind: model.ReminderCustomDate, CustomDate: day(2)},
			{TaskTitle: "Overdue", Kind: model.ReminderOneDayBefore},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.DefaultCreated)
	assert.Equal(t, 1, result.Delayed)
	assert.Equal(t, 2, result.DroppedReminders)

	overdue, err := s.TaskByTitle("Overdue")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelayed, overdue.Status)
	future, err := s.TaskByTitle("Future")
	require.NoError(t, err)
	assert.Equal(t, "Work", future.Category)
	assert.Equal(t, "High", future.Priority)
	archived, err := s.TaskByTitle("archived")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, archived.Status)

	_, err = s.PriorityByName(model.DefaultPriorityName)
	require.NoError(t, err)
	reminders := s.Reminders()
	require.Len(t, reminders, 2, "past reminders of live tasks are kept as persisted")
	assert.Equal(t, future.ID, reminders[0].TaskID)
	assert.Equal(t, overdue.ID, reminders[1].TaskID)
	requireIntegrity(t, s)
}

func TestLoad_MalformedLeavesStoreUntouched(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{
			Categories: []model.Category{{Name: "Work"}},
			Priorities: []model.Priority{{Name: "Default"}},
			Tasks:      []model.Task{model.NewTask("A", "", "Work", "Default", nil)},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"blank category", func(s *Snapshot) { s.Categories = append(s.Categories, model.Category{Name: " "}) }},
		{"duplicate category", func(s *Snapshot) { s.Categories = append(s.Categories, model.Category{Name: "WORK"}) }},
		{"duplicate priority", func(s *Snapshot) { s.Priorities = append(s.Priorities, model.Priority{Name: "default"}) }},
		{"unknown category", func(s *Snapshot) { s.Tasks[0].Category = "Home" }},
		{"unknown priority", func(s *Snapshot) { s.Tasks[0].Priority = "Urgent" }},
		{"unknown status", func(s *Snapshot) { s.Tasks[0].Status = "WAITING" }},
		{"duplicate title", func(s *Snapshot) { s.Tasks = append(s.Tasks, model.NewTask("a", "", "Work", "Default", nil)) }},
		{"unknown reminder kind", func(s *Snapshot) {
			s.Reminders = []ReminderRecord{{TaskTitle: "A", Kind: "HOURLY"}}
		}},
		{"custom reminder without date", func(s *Snapshot) {
			s.Reminders = []ReminderRecord{{TaskTitle: "A", Kind: model.ReminderCustomDate}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			mustAddTask(t, s, "Existing", "Work", "High", nil)
			before := s.Snapshot()

			snap := valid()
			tt.mutate(&snap)
			_, err := s.Load(snap)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, before, s.Snapshot())
		})
	}
}

func TestLoad_EmptySnapshot(t *testing.T) {
	s := New(WithClock(func() time.Time { return fixedNow }))
	result, err := s.Load(Snapshot{})
	require.NoError(t, err)
	assert.True(t, result.DefaultCreated)
	assert.Empty(t, s.Tasks())
	assert.Len(t, s.Priorities(), 1)
}
