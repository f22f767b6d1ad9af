// Package store owns the task collection and writes every change through
// to a durable key-value slot before returning.
package store

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/focustasks/internal/kv"
	"github.com/idilsaglam/focustasks/internal/model"
	"github.com/idilsaglam/focustasks/internal/store/jsonstore"
)

// DefaultKey is the slot key used when none is configured.
const DefaultKey = "focustasks_0163"

// ErrDuplicateID is returned by Add when the id is already taken.
var ErrDuplicateID = errors.New("duplicate task id")

// TaskStore is the single source of truth for tasks. It is not safe for
// concurrent use; callers drive it from one goroutine.
type TaskStore struct {
	slot   kv.Slot
	key    string
	tasks  []model.Task
	logger *log.Logger
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithLogger sets the logger used for load and persist diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *TaskStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open loads the collection stored under key. A missing or malformed value
// yields an empty collection; only a failing slot read is an error.
func Open(slot kv.Slot, key string, opts ...Option) (*TaskStore, error) {
	if slot == nil {
		return nil, errors.New("store: nil slot")
	}
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	s := &TaskStore{
		slot:   slot,
		key:    key,
		tasks:  []model.Task{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := slot.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		s.logger.Debug("no stored tasks", "key", key)
		return s, nil
	}
	tasks, err := jsonstore.Decode(raw)
	if err != nil {
		s.logger.Info("discarding stored tasks", "key", key, "err", err)
		return s, nil
	}
	s.tasks = tasks
	s.logger.Debug("loaded tasks", "key", key, "count", len(tasks))
	return s, nil
}

// Key returns the slot key the store persists under.
func (s *TaskStore) Key() string { return s.key }

// List returns a snapshot of the collection.
func (s *TaskStore) List() []model.Task { return model.Clone(s.tasks) }

// Get looks a task up by id.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Add appends task and persists. The title is not validated here; callers
// must pass it through model.ValidateTitle.
func (s *TaskStore) Add(task model.Task) ([]model.Task, error) {
	if _, exists := s.Get(task.ID); exists {
		return s.List(), fmt.Errorf("%w: %q", ErrDuplicateID, task.ID)
	}
	next := make([]model.Task, 0, len(s.tasks)+1)
	next = append(next, s.tasks...)
	next = append(next, task)
	return s.commit(next)
}

// Toggle flips Done on the task with id. An unknown id leaves the
// collection as it was; it is still persisted.
func (s *TaskStore) Toggle(id string) ([]model.Task, error) {
	next := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		if t.ID == id {
			t.Done = !t.Done
		}
		next[i] = t
	}
	return s.commit(next)
}

// Remove drops the task with id. An unknown id is a no-op.
func (s *TaskStore) Remove(id string) ([]model.Task, error) {
	next := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			next = append(next, t)
		}
	}
	return s.commit(next)
}

// commit writes next to the slot and only then swaps it in, so a failed
// write leaves memory and storage in agreement.
func (s *TaskStore) commit(next []model.Task) ([]model.Task, error) {
	b, err := jsonstore.Encode(next)
	if err != nil {
		return s.List(), err
	}
	if err := s.slot.Set(s.key, b); err != nil {
		return s.List(), fmt.Errorf("persist %s: %w", s.key, err)
	}
	s.tasks = next
	s.logger.Debug("persisted tasks", "key", s.key, "count", len(next))
	return s.List(), nil
}
