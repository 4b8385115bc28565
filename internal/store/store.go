// Package store keeps the task collection in a local key-value medium.
//
// The whole collection is one JSON array under a single well-known key and
// every mutation rewrites it in full. The store assumes a single writer;
// two processes mutating the same database can clobber each other's last
// write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/baiirun/launchboard/internal/model"
)

// DefaultKey is the storage key holding the task collection.
const DefaultKey = "mgrow_tasks"

var (
	// ErrNotFound is returned when no stored task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrStorageUnavailable is returned when the collection cannot be written.
	ErrStorageUnavailable = errors.New("local storage unavailable")
)

// KV is the persistence medium. Implemented by *db.DB.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is the local task store.
type Store struct {
	kv          KV
	key         string
	logger      *logrus.Logger
	now         func() time.Time
	initialized bool
}

// New returns a store persisting under key. An empty key uses DefaultKey.
func New(kv KV, key string, logger *logrus.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		kv:     kv,
		key:    key,
		logger: logger,
		now:    time.Now,
	}
}

// Key returns the storage key the collection lives under.
func (s *Store) Key() string {
	return s.key
}

// Initialize seeds the sample tasks if the store is empty. Only the first
// call does any work.
func (s *Store) Initialize(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	tasks := s.load(ctx)
	if len(tasks) == 0 {
		s.logger.Info("no tasks in local storage, creating sample data")
		seeded, err := s.seed(ctx)
		if err != nil {
			return err
		}
		tasks = seeded
	}

	s.initialized = true
	s.logger.WithField("count", len(tasks)).Info("local storage initialized")
	return nil
}

// List returns the stored tasks in insertion order. It never fails: an
// absent, unreadable or corrupt collection reads as empty.
func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	return s.load(ctx), nil
}

// Create appends task, assigning an id if it has none and stamping both
// timestamps.
func (s *Store) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	tasks := s.load(ctx)

	now := s.now()
	if task.ID == "" {
		task.ID = model.GenerateID(now)
	}
	task.CreatedAt = model.MillisOf(now)
	task.UpdatedAt = task.CreatedAt

	tasks = append(tasks, task)
	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"id": task.ID, "title": task.Title}).Debug("added task")
	return &task, nil
}

// Update merges patch into the stored task and refreshes its updated_at.
// The merged record is normalized, so a task in the completed column stays
// completed whatever the patch says.
func (s *Store) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	tasks := s.load(ctx)

	idx := indexOf(tasks, id)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	patch.Apply(&tasks[idx])
	tasks[idx].Normalize()
	tasks[idx].ID = id
	tasks[idx].UpdatedAt = model.MillisOf(s.now())

	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}

	updated := tasks[idx]
	s.logger.WithFields(logrus.Fields{"id": id, "title": updated.Title}).Debug("updated task")
	return &updated, nil
}

// Delete removes the task with the given id. The collection is left
// untouched when the id is unknown.
func (s *Store) Delete(ctx context.Context, id string) error {
	tasks := s.load(ctx)

	idx := indexOf(tasks, id)
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	remaining := append(tasks[:idx:idx], tasks[idx+1:]...)
	if err := s.save(ctx, remaining); err != nil {
		return err
	}

	s.logger.WithField("id", id).Debug("deleted task")
	return nil
}

// Clear removes every task.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.logger.Info("all tasks cleared from local storage")
	return nil
}

func (s *Store) load(ctx context.Context) []model.Task {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read tasks from local storage")
		return []model.Task{}
	}
	if !ok {
		return []model.Task{}
	}

	tasks, err := Decode([]byte(raw))
	if err != nil {
		s.logger.WithError(err).Warn("stored tasks are corrupt, treating as empty")
		return []model.Task{}
	}
	return tasks
}

func (s *Store) save(ctx context.Context, tasks []model.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := s.kv.Put(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context) ([]model.Task, error) {
	tasks := SampleTasks()
	now := s.now()
	for i := range tasks {
		tasks[i].ID = model.GenerateID(now)
		tasks[i].CreatedAt = model.MillisOf(now)
		tasks[i].UpdatedAt = tasks[i].CreatedAt
	}
	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}
	s.logger.WithField("count", len(tasks)).Info("created sample launch tasks")
	return tasks, nil
}

func indexOf(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Encode serializes the collection as stored.
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a stored collection.
func Decode(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
