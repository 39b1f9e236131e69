package task

import "time"

// New creates a pending task with medium priority and no deadline.
func New(id int, ownerID, text, category string, now time.Time) *Task {
	return &Task{
		ID:        id,
		Text:      text,
		Category:  category,
		Priority:  PriorityMedium,
		OwnerID:   ownerID,
		CreatedAt: now,
	}
}

// Toggle flips the completion state and returns the new value.
func Toggle(t *Task) bool {
	t.Completed = !t.Completed
	return t.Completed
}

// SetText replaces the task text after validation. It reports whether the
// text changed.
func SetText(t *Task, text string) (bool, error) {
	trimmed, err := ValidateText(text)
	if err != nil {
		return false, err
	}
	if trimmed == t.Text {
		return false, nil
	}
	t.Text = trimmed
	return true, nil
}

// FindByID returns the task with the given ID, or a TASK_NOT_FOUND error.
func FindByID(tasks []*Task, id int) (*Task, error) {
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, NotFound(id)
}

// Remove returns tasks without the one carrying id, and whether it was found.
func Remove(tasks []*Task, id int) ([]*Task, bool) {
	for i, t := range tasks {
		if t.ID == id {
			out := make([]*Task, 0, len(tasks)-1)
			out = append(out, tasks[:i]...)
			return append(out, tasks[i+1:]...), true
		}
	}
	return tasks, false
}
