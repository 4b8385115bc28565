// Package board holds the task board's application logic: the backend
// facade that fails over from the remote collection to the local store,
// the in-memory task cache, and the controller that ties them together.
package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/baiirun/launchboard/internal/model"
	"github.com/baiirun/launchboard/internal/remote"
	"github.com/baiirun/launchboard/internal/store"
)

// DefaultListLimit is how many tasks List asks the remote for.
const DefaultListLimit = 1000

// RemoteClient is the remote task collection. Implemented by *remote.Client.
type RemoteClient interface {
	List(ctx context.Context, limit int) (*remote.ListResult, error)
	Create(ctx context.Context, task model.Task) (*model.Task, error)
	Replace(ctx context.Context, id string, task model.Task) (*model.Task, error)
	Patch(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	Probe(ctx context.Context) (*remote.ProbeResult, error)
}

// LocalStore is the local fallback. Implemented by *store.Store.
type LocalStore interface {
	Initialize(ctx context.Context) error
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task model.Task) (*model.Task, error)
	Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Mode is the backend the facade currently routes to.
type Mode int

const (
	ModeRemote Mode = iota
	ModeLocal
)

func (m Mode) String() string {
	switch m {
	case ModeRemote:
		return "remote"
	case ModeLocal:
		return "local"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Facade routes task operations to the remote collection until List finds
// it absent or unreachable, then to the local store for the rest of the
// session. The switch is one-way: nothing moves the facade back to remote.
type Facade struct {
	remote    RemoteClient
	local     LocalStore
	logger    *logrus.Logger
	listLimit int
	mode      Mode
}

// NewFacade returns a facade in remote mode.
func NewFacade(rc RemoteClient, local LocalStore, logger *logrus.Logger, listLimit int) *Facade {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Facade{
		remote:    rc,
		local:     local,
		logger:    logger,
		listLimit: listLimit,
		mode:      ModeRemote,
	}
}

// Mode returns the active backend.
func (f *Facade) Mode() Mode {
	return f.mode
}

// UsingLocal reports whether the facade has failed over to the local store.
func (f *Facade) UsingLocal() bool {
	return f.mode == ModeLocal
}

// List returns the whole collection from the active backend.
//
// In remote mode an absent (404), unreachable or non-API backend triggers
// the switch to local storage and the local collection is returned. Any other
// remote failure is logged and reads as an empty board; it does not switch
// backends, since the backend exists and is merely erroring.
func (f *Facade) List(ctx context.Context) ([]model.Task, error) {
	if f.UsingLocal() {
		return f.local.List(ctx)
	}

	result, err := f.remote.List(ctx, f.listLimit)
	switch {
	case err == nil:
		f.logger.WithFields(logrus.Fields{
			"loaded": len(result.Data),
			"total":  result.Total,
		}).Debug("loaded tasks from remote")
		return result.Data, nil

	case errors.Is(err, remote.ErrBackendAbsent), errors.Is(err, remote.ErrUnreachable), errors.Is(err, remote.ErrNotAPI):
		f.logger.WithError(err).Warn("remote backend not available, switching to local storage")
		if err := f.switchToLocal(ctx); err != nil {
			return nil, err
		}
		return f.local.List(ctx)

	default:
		f.logger.WithError(err).Error("failed to load tasks from remote")
		return []model.Task{}, nil
	}
}

func (f *Facade) switchToLocal(ctx context.Context) error {
	if err := f.local.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize local storage: %w", err)
	}
	f.mode = ModeLocal
	return nil
}

// Create validates task and stores it on the active backend.
func (f *Facade) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	task.Normalize()
	if err := validateTask(task); err != nil {
		return nil, err
	}
	task.ID = ""
	task.CreatedAt, task.UpdatedAt = 0, 0

	if f.UsingLocal() {
		return f.local.Create(ctx, task)
	}
	created, err := f.remote.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

// Update replaces every editable field of the task with the given id.
func (f *Facade) Update(ctx context.Context, id string, task model.Task) (*model.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing task id", ErrInvalidTask)
	}
	task.Normalize()
	if err := validateTask(task); err != nil {
		return nil, err
	}

	if f.UsingLocal() {
		return f.local.Update(ctx, id, model.PatchFromTask(task))
	}
	updated, err := f.remote.Replace(ctx, id, task)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Patch changes only the fields set in patch. A status change drags week
// along, and moving into the completed column marks the task completed.
func (f *Facade) Patch(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing task id", ErrInvalidTask)
	}
	patch.Normalize()
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	if f.UsingLocal() {
		return f.local.Update(ctx, id, patch)
	}
	updated, err := f.remote.Patch(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return updated, nil
}

// Delete removes the task with the given id.
func (f *Facade) Delete(ctx context.Context, id string) error {
	if f.UsingLocal() {
		return f.local.Delete(ctx, id)
	}
	if err := f.remote.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Clear removes every task and returns how many were removed. The remote
// collection is emptied one delete at a time; failures are collected and
// the rest still attempted.
func (f *Facade) Clear(ctx context.Context) (int, error) {
	if f.UsingLocal() {
		tasks, _ := f.local.List(ctx)
		if err := f.local.Clear(ctx); err != nil {
			return 0, err
		}
		return len(tasks), nil
	}

	result, err := f.remote.List(ctx, f.listLimit)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch tasks to delete: %w", err)
	}

	var errs []error
	deleted := 0
	for _, task := range result.Data {
		if err := f.remote.Delete(ctx, task.ID); err != nil {
			f.logger.WithError(err).WithField("id", task.ID).Warn("failed to delete task")
			errs = append(errs, err)
			continue
		}
		deleted++
	}
	f.logger.WithField("deleted", deleted).Info("cleared remote tasks")
	return deleted, errors.Join(errs...)
}

// Seed adds the sample launch plan to the active backend, whatever is
// already there, and returns how many tasks were created.
func (f *Facade) Seed(ctx context.Context) (int, error) {
	var errs []error
	created := 0
	for _, task := range store.SampleTasks() {
		if _, err := f.Create(ctx, task); err != nil {
			f.logger.WithError(err).WithField("title", task.Title).Warn("failed to create sample task")
			errs = append(errs, err)
			continue
		}
		created++
	}
	f.logger.WithFields(logrus.Fields{"created": created, "mode": f.mode}).Info("sample tasks created")
	return created, errors.Join(errs...)
}

// Probe sends a diagnostic request to the remote collection regardless of
// the current mode.
func (f *Facade) Probe(ctx context.Context) (*remote.ProbeResult, error) {
	return f.remote.Probe(ctx)
}
