package model

import (
	"fmt"
	"strings"
)

// Form holds the raw strings submitted from the task form.
type Form struct {
	Title       string
	Description string
	Status      string
	Priority    string
	Assignee    string
	Tags        string // comma-separated
	DueDate     string // YYYY-MM-DD, empty for none
}

// ParseTags splits a comma-separated tag string.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return CleanTags(strings.Split(s, ","))
}

// Task converts the form into a new task. The result is normalized but not
// validated; an unknown status or priority is kept as entered.
func (f Form) Task() (Task, error) {
	t := Task{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      Status(strings.TrimSpace(f.Status)),
		Priority:    Priority(strings.TrimSpace(f.Priority)),
		Assignee:    strings.TrimSpace(f.Assignee),
		Tags:        ParseTags(f.Tags),
	}

	if due := strings.TrimSpace(f.DueDate); due != "" {
		ms, err := ParseMillis(due)
		if err != nil {
			return Task{}, fmt.Errorf("invalid due date: %w", err)
		}
		t.DueDate = &ms
	}

	t.Normalize()
	return t, nil
}
