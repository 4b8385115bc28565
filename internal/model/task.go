// Package model defines the task board's data types.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusBacklog   Status = "backlog"
	StatusWeek1     Status = "week1"
	StatusWeek2     Status = "week2"
	StatusWeek3     Status = "week3"
	StatusWeek4     Status = "week4"
	StatusCompleted Status = "completed"
)

// Statuses lists the board columns in display order.
var Statuses = []Status{
	StatusBacklog,
	StatusWeek1,
	StatusWeek2,
	StatusWeek3,
	StatusWeek4,
	StatusCompleted,
}

// IsValid returns true if s is one of the board columns.
func (s Status) IsValid() bool {
	return s.Week() >= 0
}

// Week returns the column's position: 0 for backlog, 1-4 for the weeks,
// 5 for completed. Unknown statuses return -1.
func (s Status) Week() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Label returns the column heading.
func (s Status) Label() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusCompleted:
		return "Completed"
	}
	if w := s.Week(); w > 0 {
		return fmt.Sprintf("Week %d", w)
	}
	return string(s)
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// IsValid returns true if p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// UntitledTask is shown in place of an empty title.
const UntitledTask = "Untitled Task"

// Task is a card on the board. CreatedAt and UpdatedAt are owned by the
// storage backend; callers never set them.
type Task struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status" validate:"required,oneof=backlog week1 week2 week3 week4 completed"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Assignee    string   `json:"assignee,omitempty"`
	Tags        []string `json:"tags"`
	DueDate     *Millis  `json:"due_date"`
	Completed   bool     `json:"completed"`
	Week        int      `json:"week" validate:"min=0,max=5"`
	Order       int      `json:"order"`
	CreatedAt   Millis   `json:"created_at,omitempty"`
	UpdatedAt   Millis   `json:"updated_at,omitempty"`
}

// DisplayTitle returns the title, or a placeholder when it is empty.
func (t *Task) DisplayTitle() string {
	if strings.TrimSpace(t.Title) == "" {
		return UntitledTask
	}
	return t.Title
}

// HasDueDate reports whether the task carries a due date.
func (t *Task) HasDueDate() bool {
	return t.DueDate != nil && !t.DueDate.IsZero()
}

// Normalize fills defaults and re-derives the denormalized fields:
// priority defaults to medium, week follows status, and the completed
// column always implies Completed. Completed alone never moves the task.
func (t *Task) Normalize() {
	if t.Status == "" {
		t.Status = StatusBacklog
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if w := t.Status.Week(); w >= 0 {
		t.Week = w
	}
	if t.Status == StatusCompleted {
		t.Completed = true
	}
	t.Tags = CleanTags(t.Tags)
}

// CleanTags trims each tag and drops empty ones. Order and duplicates are kept.
func CleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// GenerateID returns a locally synthesized task ID: "task_", the creation
// time in epoch milliseconds, and 9 random hex characters.
func GenerateID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("task_%d_%s", now.UnixMilli(), suffix[:9])
}
