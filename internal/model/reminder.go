package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ReminderKind selects how a reminder date is derived.
type ReminderKind string

const (
	ReminderOneDayBefore   ReminderKind = "ONE_DAY_BEFORE"
	ReminderOneWeekBefore  ReminderKind = "ONE_WEEK_BEFORE"
	ReminderOneMonthBefore ReminderKind = "ONE_MONTH_BEFORE"
	ReminderCustomDate     ReminderKind = "CUSTOM_DATE"
)

var ReminderKinds = []ReminderKind{ReminderOneDayBefore, ReminderOneWeekBefore, ReminderOneMonthBefore, ReminderCustomDate}

var (
	ErrNoDeadline   = errors.New("task has no deadline")
	ErrNoCustomDate = errors.New("custom date is required")
)

var kindAliases = map[string]ReminderKind{
	"day":    ReminderOneDayBefore,
	"week":   ReminderOneWeekBefore,
	"month":  ReminderOneMonthBefore,
	"custom": ReminderCustomDate,
}

func (k ReminderKind) Valid() bool {
	for _, known := range ReminderKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ParseReminderKind accepts enum names in any case and the short forms day, week, month, custom.
func ParseReminderKind(raw string) (ReminderKind, error) {
	clean := strings.ToLower(strings.TrimSpace(raw))
	if kind, ok := kindAliases[clean]; ok {
		return kind, nil
	}
	kind := ReminderKind(strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToUpper(clean)))
	if !kind.Valid() {
		return "", fmt.Errorf("unknown reminder kind %q", raw)
	}
	return kind, nil
}

// Reminder is a scheduled notice for a task. TaskID is a back-reference; the
// store owns the task.
type Reminder struct {
	ID         string
	TaskID     string
	Kind       ReminderKind
	CustomDate *time.Time // set only for ReminderCustomDate
}

func (r Reminder) Clone() Reminder {
	r.CustomDate = DayPtr(r.CustomDate)
	return r
}

// ReminderDate computes the day a reminder of the given kind fires.
func ReminderDate(kind ReminderKind, deadline, custom *time.Time) (time.Time, error) {
	if kind == ReminderCustomDate {
		if custom == nil {
			return time.Time{}, ErrNoCustomDate
		}
		return Day(*custom), nil
	}
	if !kind.Valid() {
		return time.Time{}, fmt.Errorf("unknown reminder kind %q", kind)
	}
	if deadline == nil {
		return time.Time{}, ErrNoDeadline
	}
	d := Day(*deadline)
	switch kind {
	case ReminderOneDayBefore:
		return d.AddDate(0, 0, -1), nil
	case ReminderOneWeekBefore:
		return d.AddDate(0, 0, -7), nil
	default:
		return AddMonths(d, -1), nil
	}
}
