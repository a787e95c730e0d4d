package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrIndexOutOfRange is returned for positions outside the list.
var ErrIndexOutOfRange = errors.New("task index out of range")

// Store is the ordered task list of a session.
type Store struct {
	backend Backend
	tasks   []Task
}

// NewStore creates an empty store backed by backend.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load replaces the list with the backend content.
func (s *Store) Load(ctx context.Context) error {
	encoded, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]Task, 0, len(encoded))
	for i, raw := range encoded {
		t, err := Decode(raw)
		if err != nil {
			return fmt.Errorf("decode task %d: %w", i+1, err)
		}
		tasks = append(tasks, t)
	}
	s.tasks = tasks
	log.Debug().Int("count", len(tasks)).Msg("tasks loaded")
	return nil
}

// Save writes the list to the backend.
func (s *Store) Save(ctx context.Context) error {
	encoded := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		encoded = append(encoded, Encode(t))
	}
	if err := s.backend.Save(ctx, encoded); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	log.Debug().Int("count", len(encoded)).Msg("tasks saved")
	return nil
}

// Add appends a task.
func (s *Store) Add(t Task) error {
	if t.Blank() {
		return ErrBlankTask
	}
	s.tasks = append(s.tasks, t)
	return nil
}

// Get returns the task at the 0-based index i.
func (s *Store) Get(i int) (Task, error) {
	if err := s.check(i); err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// Set replaces the task at index i.
func (s *Store) Set(i int, t Task) error {
	if err := s.check(i); err != nil {
		return err
	}
	if t.Blank() {
		return ErrBlankTask
	}
	s.tasks[i] = t
	return nil
}

// RemoveAt deletes the task at index i; later tasks move up by one.
func (s *Store) RemoveAt(i int) error {
	if err := s.check(i); err != nil {
		return err
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// All returns a copy of the list.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) check(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i+1)
	}
	return nil
}
