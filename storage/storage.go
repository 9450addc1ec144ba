package storage

import (
	"sync"

	"taskboard/domain"
)

// Store keeps tasks in memory, in insertion order. It is the only
// shared mutable state in the process: every operation takes the same
// mutex, so concurrent requests cannot corrupt ordering or lose an id
// assignment. Ids come from a counter that only moves forward, so an
// id freed by Delete is never handed out again.
type Store struct {
	mu     sync.Mutex
	nextID int64
	tasks  []domain.Task
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// List returns all tasks in insertion order. The returned slice is a
// copy; callers never observe later store mutations through it.
func (s *Store) List() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns the task with the given id.
func (s *Store) Find(id int64) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

// Create appends a task under the next unused id and returns it.
// Title validation is the caller's concern.
func (s *Store) Create(title string) domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := domain.Task{ID: s.nextID, Title: title}
	s.tasks = append(s.tasks, t)
	return t
}

// Update replaces the title of the task with the given id, keeping its
// id and position. It reports whether the task existed.
func (s *Store) Update(id int64, title string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Title = title
			return s.tasks[i], true
		}
	}
	return domain.Task{}, false
}

// Delete removes the task with the given id and reports whether it
// existed. Deleting a missing id is a no-op, not an error.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}
