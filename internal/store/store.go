package store

import (
	"errors"
	"strings"
	"time"

	"github.com/woodhull/taskmgr/internal/task"
)

// ErrNotFound is returned when a lookup or delete names no existing task.
var ErrNotFound = errors.New("task not found")

// Store is the in-memory ordered task collection plus the id allocator.
type Store struct {
	tasks  []*task.Task
	nextID int
	now    func() time.Time
}

// New creates an empty store using the wall clock for creation timestamps.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty store with an injectable clock. Tests use
// this to make ctime values deterministic.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Add appends a new task, assigning the next id and the creation
// timestamp. The returned pointer refers to the stored record.
func (s *Store) Add(t task.Task) *task.Task {
	created := s.now()
	t.ID = s.nextID
	t.Created = created
	t.Ctime = task.FormatCtime(created)
	s.nextID++

	stored := &t
	s.tasks = append(s.tasks, stored)
	return stored
}

// Get returns the task with the given id, or ErrNotFound.
func (s *Store) Get(id int) (*task.Task, error) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

// All returns the tasks in insertion order. The slice is a copy; the
// records are shared.
func (s *Store) All() []*task.Task {
	out := make([]*task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Match returns the tasks whose stringified property value equals val,
// compared case-insensitively, in insertion order.
func (s *Store) Match(p task.Property, val string) []*task.Task {
	var out []*task.Task
	for _, t := range s.tasks {
		if strings.EqualFold(t.Value(p), val) {
			out = append(out, t)
		}
	}
	return out
}

// Delete removes the task with the given id, or returns ErrNotFound.
func (s *Store) Delete(id int) error {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteMatching removes every task whose stringified property value
// equals val, compared case-insensitively. It returns the number of tasks
// removed, or ErrNotFound when nothing matched.
func (s *Store) DeleteMatching(p task.Property, val string) (int, error) {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if strings.EqualFold(t.Value(p), val) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return 0, ErrNotFound
	}
	s.tasks = kept
	return removed, nil
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Reset clears the tasks and the id counter. Used by test setup; ids
// restart at 0 afterwards.
func (s *Store) Reset() {
	s.tasks = nil
	s.nextID = 0
}
