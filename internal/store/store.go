// Package store holds the in-memory task tracker: tasks, categories, priorities
// and reminders together with the rules that keep them consistent.
//
// A Store is safe for concurrent use. Every operation runs under one mutex and
// either succeeds completely or leaves the store unchanged.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-tracker/internal/model"
)

// Store owns all four collections. Tasks are keyed by a stable ID; titles are
// unique but mutable.
type Store struct {
	mu     sync.Mutex
	now    func() time.Time
	logger *zap.Logger

	tasks      map[string]*model.Task
	taskOrder  []string
	categories []*model.Category
	priorities []*model.Priority
	reminders  []*model.Reminder
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now; "today" is the calendar day of the returned time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty store that already holds the Default priority.
func New(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		logger: zap.NewNop(),
		tasks:  make(map[string]*model.Task),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ensureDefaultPriority()
	return s
}

func (s *Store) today() time.Time {
	return model.Day(s.now())
}

func newID() string {
	return uuid.NewString()
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// The helpers below expect s.mu to be held.

func (s *Store) ensureDefaultPriority() bool {
	if s.findPriority(model.DefaultPriorityName) != nil {
		return false
	}
	s.priorities = append(s.priorities, &model.Priority{ID: newID(), Name: model.DefaultPriorityName})
	return true
}

func (s *Store) findCategory(name string) *model.Category {
	for _, c := range s.categories {
		if sameName(c.Name, name) {
			return c
		}
	}
	return nil
}

func (s *Store) findPriority(name string) *model.Priority {
	for _, p := range s.priorities {
		if sameName(p.Name, name) {
			return p
		}
	}
	return nil
}

func (s *Store) findTaskByTitle(title string) *model.Task {
	for _, id := range s.taskOrder {
		if t := s.tasks[id]; sameName(t.Title, title) {
			return t
		}
	}
	return nil
}

func (s *Store) insertTask(t *model.Task) {
	s.tasks[t.ID] = t
	s.taskOrder = append(s.taskOrder, t.ID)
}

func (s *Store) deleteTasks(ids map[string]bool) {
	if len(ids) == 0 {
		return
	}
	kept := s.taskOrder[:0]
	for _, id := range s.taskOrder {
		if ids[id] {
			delete(s.tasks, id)
			continue
		}
		kept = append(kept, id)
	}
	s.taskOrder = kept
}

// removeReminders drops every reminder whose task is in ids and reports how many went.
func (s *Store) removeReminders(ids map[string]bool) int {
	kept := s.reminders[:0]
	removed := 0
	for _, r := range s.reminders {
		if ids[r.TaskID] {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	for i := len(kept); i < len(s.reminders); i++ {
		s.reminders[i] = nil
	}
	s.reminders = kept
	return removed
}

// markDelayed applies the automatic DELAYED transition.
func markDelayed(t *model.Task, today time.Time) bool {
	if t.Overdue(today) && t.Status != model.StatusDelayed {
		t.Status = model.StatusDelayed
		return true
	}
	return false
}

func (s *Store) markDelayedTasks() int {
	today := s.today()
	changed := 0
	for _, id := range s.taskOrder {
		if markDelayed(s.tasks[id], today) {
			changed++
		}
	}
	return changed
}

// RefreshDelayed re-runs the DELAYED scan against the current day. Long-running
// processes call it after midnight.
func (s *Store) RefreshDelayed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markDelayedTasks()
}
