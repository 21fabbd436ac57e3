package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"task-tracker/internal/model"
	"task-tracker/internal/store"
)

// DefaultSnooze is how long a snoozed reminder stays quiet.
const DefaultSnooze = 5 * time.Minute

// ReminderService manages reminders, tracks which ones were already
// delivered today and builds the daily report.
type ReminderService struct {
	store   *store.Store
	persist *Persister
	logger  *zap.Logger
	snooze  time.Duration

	mu       sync.Mutex
	notified map[string]time.Time // reminder ID -> day it was last delivered
	snoozed  map[string]time.Time // reminder ID -> quiet until
}

func NewReminderService(st *store.Store, persist *Persister, snooze time.Duration, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if snooze <= 0 {
		snooze = DefaultSnooze
	}
	return &ReminderService{
		store:    st,
		persist:  persist,
		logger:   logger,
		snooze:   snooze,
		notified: make(map[string]time.Time),
		snoozed:  make(map[string]time.Time),
	}
}

func (s *ReminderService) CreateReminder(ctx context.Context, taskTitle string, kind model.ReminderKind, customDate *time.Time) (model.Reminder, error) {
	r, err := s.store.AddReminder(taskTitle, kind, customDate)
	if err != nil {
		return model.Reminder{}, err
	}
	s.logger.Info("reminder created", zap.String("task", taskTitle), zap.String("kind", string(kind)))
	return r, s.persist.Save(ctx)
}

func (s *ReminderService) UpdateReminder(ctx context.Context, id string, kind model.ReminderKind, customDate *time.Time) (model.Reminder, error) {
	r, err := s.store.UpdateReminder(id, kind, customDate)
	if err != nil {
		return model.Reminder{}, err
	}
	s.forget(id)
	return r, s.persist.Save(ctx)
}

func (s *ReminderService) DeleteReminder(ctx context.Context, id string) error {
	if err := s.store.RemoveReminder(id); err != nil {
		return err
	}
	s.forget(id)
	return s.persist.Save(ctx)
}

// Dismiss acknowledges a delivered reminder by deleting it.
func (s *ReminderService) Dismiss(ctx context.Context, id string) error {
	if err := s.DeleteReminder(ctx, id); err != nil {
		return err
	}
	s.logger.Info("reminder dismissed", zap.String("id", id))
	return nil
}

// Snooze silences a reminder until now plus the snooze duration. The next
// CheckDue after that delivers it again.
func (s *ReminderService) Snooze(id string, now time.Time) (time.Time, error) {
	if _, err := s.store.Reminder(id); err != nil {
		return time.Time{}, err
	}
	until := now.Add(s.snooze)
	s.mu.Lock()
	s.snoozed[id] = until
	s.mu.Unlock()
	s.logger.Info("reminder snoozed", zap.String("id", id), zap.Time("until", until))
	return until, nil
}

func (s *ReminderService) ListReminders() []model.Reminder {
	return s.store.Reminders()
}

func (s *ReminderService) RemindersForTask(taskID string) []model.Reminder {
	return s.store.RemindersForTask(taskID)
}

// DueOn lists reminders firing on date without marking them delivered.
func (s *ReminderService) DueOn(date time.Time) []store.DueReminder {
	return s.store.DueRemindersOn(date)
}

func (s *ReminderService) ReminderDate(id string) (time.Time, error) {
	return s.store.ReminderDate(id)
}

// CheckDue returns reminders firing today that have not been delivered yet.
// Each reminder is delivered once per day unless it was snoozed, in which case
// it comes back once the snooze has elapsed. Snoozes only hold for reminders
// due today: a snooze that runs past midnight is dropped with the day.
func (s *ReminderService) CheckDue(now time.Time) []store.DueReminder {
	due := s.store.DueRemindersOn(now)
	today := model.Day(now)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, day := range s.notified {
		if !day.Equal(today) {
			delete(s.notified, id)
		}
	}
	dueIDs := make(map[string]bool, len(due))
	for _, d := range due {
		dueIDs[d.Reminder.ID] = true
	}
	for id := range s.snoozed {
		if !dueIDs[id] {
			delete(s.snoozed, id)
		}
	}

	out := make([]store.DueReminder, 0, len(due))
	for _, d := range due {
		id := d.Reminder.ID
		if until, ok := s.snoozed[id]; ok {
			if now.Before(until) {
				continue
			}
			delete(s.snoozed, id)
		} else if day, ok := s.notified[id]; ok && day.Equal(today) {
			continue
		}
		s.notified[id] = today
		out = append(out, d)
	}
	return out
}

// Undelivered puts a reminder returned by CheckDue back in line for the next
// check, for when delivery failed.
func (s *ReminderService) Undelivered(id string) {
	s.mu.Lock()
	delete(s.notified, id)
	s.mu.Unlock()
}

func (s *ReminderService) forget(id string) {
	s.mu.Lock()
	delete(s.notified, id)
	delete(s.snoozed, id)
	s.mu.Unlock()
}

// DailySummary renders the HTML daily report: delayed tasks, tasks due this
// week and reminders firing today.
func (s *ReminderService) DailySummary(now time.Time) string {
	today := model.Day(now)
	horizon := today.AddDate(0, 0, 7)

	var delayed, upcoming []model.Task
	for _, task := range s.store.Tasks() {
		switch {
		case task.Status == model.StatusCompleted:
		case task.Status == model.StatusDelayed:
			delayed = append(delayed, task)
		case task.Deadline != nil && task.Deadline.Before(horizon):
			upcoming = append(upcoming, task)
		}
	}
	sortByDeadline(delayed)
	sortByDeadline(upcoming)

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", today.Format(model.DateLayout)))

	builder.WriteString("⚠️ <b>Delayed</b>\n")
	if len(delayed) == 0 {
		builder.WriteString("- nothing overdue\n")
	} else {
		for _, task := range delayed {
			builder.WriteString(FormatTask(task, today))
		}
	}

	builder.WriteString("\n⏳ <b>Due this week</b>\n")
	if len(upcoming) == 0 {
		builder.WriteString("- no deadlines in the next 7 days\n")
	} else {
		for _, task := range upcoming {
			builder.WriteString(FormatTask(task, today))
		}
	}

	builder.WriteString("\n🔔 <b>Reminders today</b>\n")
	due := s.store.DueRemindersOn(today)
	if len(due) == 0 {
		builder.WriteString("- none\n")
	} else {
		for _, d := range due {
			builder.WriteString(FormatReminder(d))
		}
	}

	return strings.TrimSpace(builder.String())
}

func sortByDeadline(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		switch {
		case tasks[i].Deadline == nil:
			return false
		case tasks[j].Deadline == nil:
			return true
		default:
			return tasks[i].Deadline.Before(*tasks[j].Deadline)
		}
	})
}

// FormatTask renders one task line in Telegram HTML.
func FormatTask(task model.Task, today time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	switch {
	case task.Status == model.StatusCompleted:
		icon = "✅"
	case task.Status == model.StatusDelayed:
		icon = "⚠️"
	case task.Deadline != nil && task.Deadline.Sub(today) <= 48*time.Hour:
		icon = "⏳"
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(task.Title)))
	sb.WriteString(fmt.Sprintf(" <i>(%s · %s)</i>", html.EscapeString(task.Category), html.EscapeString(task.Priority)))

	if task.Deadline != nil {
		d := *task.Deadline
		if d.Before(today) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ %s · <b>overdue</b>", d.Format(model.DateLayout)))
		} else {
			daysLeft := int(d.Sub(today).Hours() / 24)
			sb.WriteString(fmt.Sprintf("\n   ⏰ %s · %d d. left", d.Format(model.DateLayout), daysLeft))
		}
	}

	if desc := strings.TrimSpace(task.Description); desc != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(desc)))
	}

	sb.WriteByte('\n')
	return sb.String()
}

// FormatReminder renders a due reminder line in Telegram HTML.
func FormatReminder(d store.DueReminder) string {
	kind := strings.ToLower(strings.ReplaceAll(string(d.Reminder.Kind), "_", " "))
	line := fmt.Sprintf("🔔 %s <i>(%s)</i>", html.EscapeString(d.Task.Title), kind)
	if d.Task.Deadline != nil {
		line += fmt.Sprintf("\n   ⏰ deadline %s", d.Task.Deadline.Format(model.DateLayout))
	}
	return line + "\n"
}
