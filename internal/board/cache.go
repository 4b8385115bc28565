package board

import (
	"math"
	"sort"

	"github.com/baiirun/launchboard/internal/model"
)

// Cache is the in-memory mirror of the task collection as last listed.
// It is never the system of record: every mutation round-trip ends with
// Replace, so a Patch only lasts until the next reload.
type Cache struct {
	tasks []model.Task
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tasks: []model.Task{}}
}

// Replace swaps in a freshly listed collection.
func (c *Cache) Replace(tasks []model.Task) {
	c.tasks = append(make([]model.Task, 0, len(tasks)), tasks...)
}

// Tasks returns a copy of the cached tasks in listed order.
func (c *Cache) Tasks() []model.Task {
	return append([]model.Task(nil), c.tasks...)
}

// Len returns the number of cached tasks.
func (c *Cache) Len() int {
	return len(c.tasks)
}

// Find returns the cached task with the given id.
func (c *Cache) Find(id string) (model.Task, bool) {
	for _, task := range c.tasks {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

// Patch applies patch to the cached copy of a task. It reports false when
// the id is not cached.
func (c *Cache) Patch(id string, patch model.TaskPatch) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			patch.Apply(&c.tasks[i])
			return true
		}
	}
	return false
}

// Counts returns the number of tasks per column. Every column is present;
// tasks with an unknown status are not counted.
func (c *Cache) Counts() map[model.Status]int {
	counts := make(map[model.Status]int, len(model.Statuses))
	for _, s := range model.Statuses {
		counts[s] = 0
	}
	for _, task := range c.tasks {
		if _, ok := counts[task.Status]; ok {
			counts[task.Status]++
		}
	}
	return counts
}

// CompletedCount returns how many tasks are marked completed, in any column.
func (c *Cache) CompletedCount() int {
	n := 0
	for _, task := range c.tasks {
		if task.Completed {
			n++
		}
	}
	return n
}

// Progress returns the rounded percentage of completed tasks, 0 for an
// empty board.
func (c *Cache) Progress() int {
	if len(c.tasks) == 0 {
		return 0
	}
	return int(math.Round(float64(c.CompletedCount()) / float64(len(c.tasks)) * 100))
}

// Column returns the tasks in one column sorted by order, keeping listed
// order for ties.
func (c *Cache) Column(status model.Status) []model.Task {
	var column []model.Task
	for _, task := range c.tasks {
		if task.Status == status {
			column = append(column, task)
		}
	}
	sort.SliceStable(column, func(i, j int) bool {
		return column[i].Order < column[j].Order
	})
	return column
}

// Stats summarizes the cached tasks.
func (c *Cache) Stats() Stats {
	completed := c.CompletedCount()
	return Stats{
		Total:     len(c.tasks),
		Completed: completed,
		Pending:   len(c.tasks) - completed,
		Progress:  c.Progress(),
		Counts:    c.Counts(),
	}
}
