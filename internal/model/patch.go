package model

// TaskPatch carries a partial update. Nil fields are left alone.
// A DueDate pointing at zero clears the due date; an epoch-0 date is
// indistinguishable from that marker and clears it too.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	DueDate     *Millis   `json:"due_date,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Week        *int      `json:"week,omitempty"`
	Order       *int      `json:"order,omitempty"`
}

// PatchFromTask builds a patch that overwrites every caller-editable field
// of a stored task with the values in t.
func PatchFromTask(t Task) TaskPatch {
	tags := t.Tags
	due := Millis(0)
	if t.DueDate != nil {
		due = *t.DueDate
	}
	return TaskPatch{
		Title:       &t.Title,
		Description: &t.Description,
		Status:      &t.Status,
		Priority:    &t.Priority,
		Assignee:    &t.Assignee,
		Tags:        &tags,
		DueDate:     &due,
		Completed:   &t.Completed,
		Week:        &t.Week,
		Order:       &t.Order,
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.Assignee == nil && p.Tags == nil &&
		p.DueDate == nil && p.Completed == nil && p.Week == nil && p.Order == nil
}

// Normalize keeps the denormalized fields consistent with a status change:
// week follows status, and moving into the completed column sets Completed.
func (p *TaskPatch) Normalize() {
	if p.Tags != nil {
		cleaned := CleanTags(*p.Tags)
		p.Tags = &cleaned
	}
	if p.Status == nil {
		return
	}
	if w := p.Status.Week(); w >= 0 {
		p.Week = &w
	}
	if *p.Status == StatusCompleted {
		done := true
		p.Completed = &done
	}
}

// Apply merges the patch into t. Timestamps are not touched.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			t.DueDate = p.DueDate.Ptr()
		}
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Week != nil {
		t.Week = *p.Week
	}
	if p.Order != nil {
		t.Order = *p.Order
	}
}
