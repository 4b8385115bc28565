package board

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/baiirun/launchboard/internal/model"
)

// DragEvent is emitted when a card is dropped: which task moved, the
// column it landed in, and its new position in that column.
type DragEvent struct {
	ItemID       string
	TargetColumn model.Status
	NewIndex     int
}

// Stats summarizes the cached board.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Progress  int // percent, rounded
	Counts    map[model.Status]int
}

// Board is the board controller. It owns the facade and the cache; after
// every mutation it reloads the full list from the active backend instead
// of trusting local patches.
type Board struct {
	facade *Facade
	cache  *Cache
	logger *logrus.Logger
}

// New returns a board over the given facade with an empty cache.
func New(facade *Facade, logger *logrus.Logger) *Board {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Board{
		facade: facade,
		cache:  NewCache(),
		logger: logger,
	}
}

// Cache exposes the cached task list for rendering.
func (b *Board) Cache() *Cache {
	return b.cache
}

// Mode returns the facade's active backend.
func (b *Board) Mode() Mode {
	return b.facade.Mode()
}

// Facade returns the backend facade.
func (b *Board) Facade() *Facade {
	return b.facade
}

// Load rebuilds the cache from the active backend.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.facade.List(ctx)
	if err != nil {
		return err
	}
	b.cache.Replace(tasks)
	b.logger.WithFields(logrus.Fields{
		"tasks": len(tasks),
		"mode":  b.facade.Mode(),
	}).Debug("board loaded")
	return nil
}

// Start loads the board and, if it comes up empty, creates the sample
// launch plan and loads again.
func (b *Board) Start(ctx context.Context) error {
	if err := b.Load(ctx); err != nil {
		return err
	}
	if b.cache.Len() > 0 {
		return nil
	}

	b.logger.Info("no tasks found, creating sample data")
	if _, err := b.facade.Seed(ctx); err != nil {
		b.logger.WithError(err).Warn("sample data only partially created")
	}
	return b.Load(ctx)
}

// Submit saves the form: a new task when editingID is empty, otherwise a
// full update of that task. Editing keeps the task's position and its
// completed flag.
func (b *Board) Submit(ctx context.Context, editingID string, form model.Form) (*model.Task, error) {
	task, err := form.Task()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTask, err)
	}

	var saved *model.Task
	if editingID == "" {
		saved, err = b.facade.Create(ctx, task)
	} else {
		if existing, ok := b.cache.Find(editingID); ok {
			task.Order = existing.Order
			task.Completed = existing.Completed || task.Status == model.StatusCompleted
		}
		saved, err = b.facade.Update(ctx, editingID, task)
	}
	if err != nil {
		return nil, err
	}

	if err := b.Load(ctx); err != nil {
		return saved, err
	}
	return saved, nil
}

// Move handles a drop: the task takes the target column and position, and
// its completed flag follows whether that column is the completed one. On
// failure the board is reloaded so the card snaps back.
func (b *Board) Move(ctx context.Context, ev DragEvent) error {
	if ev.ItemID == "" || ev.TargetColumn == "" {
		return fmt.Errorf("%w: drop event needs a task and a column", ErrInvalidTask)
	}
	if !ev.TargetColumn.IsValid() {
		return fmt.Errorf("%w: unknown column %q", ErrInvalidTask, ev.TargetColumn)
	}

	status := ev.TargetColumn
	order := ev.NewIndex
	completed := status == model.StatusCompleted
	patch := model.TaskPatch{Status: &status, Order: &order, Completed: &completed}

	if _, err := b.facade.Patch(ctx, ev.ItemID, patch); err != nil {
		b.logger.WithError(err).WithField("id", ev.ItemID).Error("failed to move task")
		if reloadErr := b.Load(ctx); reloadErr != nil {
			b.logger.WithError(reloadErr).Warn("failed to reload board after failed move")
		}
		return err
	}

	b.cache.Patch(ev.ItemID, patch)
	return b.Load(ctx)
}

// SetCompleted toggles the completed checkbox. The task stays in its
// column; only dropping it on the completed column moves it there.
// Unchecking a task in the completed column sends it back to the backlog,
// since that column only holds completed tasks.
func (b *Board) SetCompleted(ctx context.Context, id string, completed bool) error {
	patch := model.TaskPatch{Completed: &completed}
	if task, ok := b.cache.Find(id); ok && !completed && task.Status == model.StatusCompleted {
		backlog := model.StatusBacklog
		patch.Status = &backlog
	}
	if _, err := b.facade.Patch(ctx, id, patch); err != nil {
		return err
	}
	b.cache.Patch(id, patch)
	return b.Load(ctx)
}

// Delete removes a task and reloads.
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.facade.Delete(ctx, id); err != nil {
		return err
	}
	return b.Load(ctx)
}

// ClearAll deletes every task on the active backend and reloads.
func (b *Board) ClearAll(ctx context.Context) (int, error) {
	n, err := b.facade.Clear(ctx)
	if loadErr := b.Load(ctx); err == nil {
		err = loadErr
	}
	return n, err
}

// Seed adds the sample launch plan and reloads.
func (b *Board) Seed(ctx context.Context) (int, error) {
	n, err := b.facade.Seed(ctx)
	if loadErr := b.Load(ctx); err == nil {
		err = loadErr
	}
	return n, err
}

// DiagnosticTask is the throwaway task CreateTestTask adds, parked at the
// bottom of the backlog.
func DiagnosticTask(now time.Time) model.Task {
	return model.Task{
		Title:       fmt.Sprintf("🧪 Test Task %d", now.UnixMilli()),
		Description: "This is a test task created for debugging",
		Status:      model.StatusBacklog,
		Priority:    model.PriorityMedium,
		Assignee:    "Debug User",
		Tags:        []string{"test", "debug"},
		Order:       999,
	}
}

// CreateTestTask adds a DiagnosticTask to the active backend and reloads.
func (b *Board) CreateTestTask(ctx context.Context) (*model.Task, error) {
	created, err := b.facade.Create(ctx, DiagnosticTask(time.Now()))
	if err != nil {
		return nil, err
	}
	return created, b.Load(ctx)
}

// Stats summarizes the cached tasks.
func (b *Board) Stats() Stats {
	return b.cache.Stats()
}
