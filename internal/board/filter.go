// Package board provides board-level operations on task collections.
package board

import (
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Categories []string
	Priorities []task.Priority
	Completed  *bool          // nil=no filter, true=only completed, false=only pending
	Urgency    []urgency.Kind // match any of these classifications
	Search     string         // case-insensitive substring match on the task text
	Now        time.Time      // reference instant for the Urgency filter
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions) bool {
	if len(opts.Categories) > 0 && !containsStr(opts.Categories, t.Category) {
		return false
	}
	if len(opts.Priorities) > 0 && !containsPriority(opts.Priorities, t.Priority.OrDefault()) {
		return false
	}
	if opts.Completed != nil && t.Completed != *opts.Completed {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	if len(opts.Urgency) > 0 && !matchesUrgency(t, opts.Urgency, opts.Now) {
		return false
	}
	return true
}

// matchesSearch performs case-insensitive substring matching on the task text.
func matchesSearch(t *task.Task, query string) bool {
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(query))
}

func matchesUrgency(t *task.Task, kinds []urgency.Kind, now time.Time) bool {
	// Unusable deadlines classify as none.
	st, _ := urgency.ClassifyTask(t, now)
	for _, k := range kinds {
		if st.Kind == k {
			return true
		}
	}
	return false
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func containsPriority(slice []task.Priority, item task.Priority) bool {
	for _, p := range slice {
		if p == item {
			return true
		}
	}
	return false
}
