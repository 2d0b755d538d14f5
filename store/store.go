// Package store keeps submitted todos in memory for the life of the process.
package store

import (
	"strings"
	"sync"
)

// Store is an ordered list of todo texts. Every item is non-empty after
// trimming. It is safe for concurrent use; appends are ordered by lock
// acquisition.
type Store struct {
	lock  sync.RWMutex
	todos []string
}

func New() *Store {
	return &Store{todos: []string{}}
}

// Add trims raw and appends it. An empty result is rejected with
// ErrEmptyTodo and leaves the store untouched.
func (s *Store) Add(raw string) error {
	todo := strings.TrimSpace(raw)
	if todo == "" {
		return ErrEmptyTodo
	}

	s.lock.Lock()
	s.todos = append(s.todos, todo)
	s.lock.Unlock()

	return nil
}

// List returns a copy of the stored todos in insertion order.
func (s *Store) List() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]string, len(s.todos))
	copy(out, s.todos)
	return out
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.todos)
}
