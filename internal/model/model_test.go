package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDay_DropsClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	assert.Equal(t, date(2026, time.October, 15), Day(time.Date(2026, time.October, 15, 23, 59, 0, 0, loc)))
	assert.Nil(t, DayPtr(nil))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		in     time.Time
		months int
		want   time.Time
	}{
		{date(2027, time.March, 31), -1, date(2027, time.February, 28)},
		{date(2028, time.March, 31), -1, date(2028, time.February, 29)},
		{date(2026, time.January, 15), -1, date(2025, time.December, 15)},
		{date(2026, time.May, 31), -1, date(2026, time.April, 30)},
		{date(2026, time.January, 31), 1, date(2026, time.February, 28)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AddMonths(tt.in, tt.months), "%s %+d", tt.in.Format(DateLayout), tt.months)
	}
}

func TestReminderDate(t *testing.T) {
	deadline := date(2026, time.November, 10)
	custom := date(2026, time.October, 20)

	got, err := ReminderDate(ReminderOneDayBefore, &deadline, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.November, 9), got)

	got, err = ReminderDate(ReminderOneWeekBefore, &deadline, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.November, 3), got)

	got, err = ReminderDate(ReminderOneMonthBefore, &deadline, nil)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.October, 10), got)

	got, err = ReminderDate(ReminderCustomDate, nil, &custom)
	require.NoError(t, err)
	assert.Equal(t, custom, got)

	_, err = ReminderDate(ReminderCustomDate, &deadline, nil)
	assert.ErrorIs(t, err, ErrNoCustomDate)
	_, err = ReminderDate(ReminderOneDayBefore, nil, &custom)
	assert.ErrorIs(t, err, ErrNoDeadline)
	_, err = ReminderDate("NEVER", &deadline, nil)
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for raw, want := range map[string]Status{
		"open":        StatusOpen,
		"in progress": StatusInProgress,
		"In-Progress": StatusInProgress,
		" COMPLETED ": StatusCompleted,
		"postponed":   StatusPostponed,
		"delayed":     StatusDelayed,
	} {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseStatus("done")
	assert.Error(t, err)
}

func TestParseReminderKind(t *testing.T) {
	for raw, want := range map[string]ReminderKind{
		"day":              ReminderOneDayBefore,
		"Week":             ReminderOneWeekBefore,
		"one-month-before": ReminderOneMonthBefore,
		"CUSTOM_DATE":      ReminderCustomDate,
		"custom":           ReminderCustomDate,
	} {
		got, err := ParseReminderKind(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseReminderKind("hourly")
	assert.Error(t, err)
}

func TestTaskOverdue(t *testing.T) {
	today := date(2026, time.October, 15)
	yesterday := today.AddDate(0, 0, -1)

	task := NewTask("A", "", "Work", "Default", &yesterday)
	assert.True(t, task.Overdue(today))
	task.Status = StatusCompleted
	assert.False(t, task.Overdue(today))

	onTime := NewTask("B", "", "Work", "Default", &today)
	assert.False(t, onTime.Overdue(today))
	assert.False(t, NewTask("C", "", "Work", "Default", nil).Overdue(today))
}

func TestPriorityIsDefault(t *testing.T) {
	assert.True(t, Priority{Name: "default"}.IsDefault())
	assert.False(t, Priority{Name: "High"}.IsDefault())
}
