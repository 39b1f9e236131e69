package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/date"
)

// ValidateText trims text and rejects it when nothing is left.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", clierr.New(clierr.EmptyText, "task text must not be empty")
	}
	return trimmed, nil
}

// ValidatePriority checks that a priority is one of low, medium, high.
func ValidatePriority(priority string) (Priority, error) {
	for _, p := range Priorities {
		if string(p) == priority {
			return p, nil
		}
	}
	allowed := make([]string, len(Priorities))
	for i, p := range Priorities {
		allowed[i] = string(p)
	}
	return "", clierr.Newf(clierr.InvalidPriority, "invalid priority %q", priority).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  allowed,
		})
}

// ValidateCategory checks that a category is in the configured catalog.
func ValidateCategory(category string, allowed []string) error {
	for _, c := range allowed {
		if c == category {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidCategory, "invalid category %q", category).
		WithDetails(map[string]any{
			"category": category,
			"allowed":  allowed,
		})
}

// ValidateDeadline rejects a time of day without a date.
func ValidateDeadline(d Deadline) error {
	if d.Date == nil && d.Time != nil {
		return clierr.Newf(clierr.TimeWithoutDate,
			"deadline time %s given without a date", d.Time).
			WithDetails(map[string]any{"time": d.Time.String()})
	}
	return nil
}

// ParseDeadline builds a Deadline from raw date and time strings.
// An empty string leaves that part unset.
func ParseDeadline(dateStr, timeStr string) (Deadline, error) {
	var d Deadline
	if strings.TrimSpace(dateStr) != "" {
		parsed, err := date.Parse(dateStr)
		if err != nil {
			return Deadline{}, invalidDeadline("date", dateStr, err)
		}
		d.Date = &parsed
	}
	if strings.TrimSpace(timeStr) != "" {
		parsed, err := date.ParseTime(timeStr)
		if err != nil {
			return Deadline{}, invalidDeadline("time", timeStr, err)
		}
		d.Time = &parsed
	}
	if err := ValidateDeadline(d); err != nil {
		return Deadline{}, err
	}
	return d, nil
}

// ValidateTaskID returns an error for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// NotFound returns the error for a task ID missing from the owner's set.
func NotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: #%d", id).
		WithDetails(map[string]any{"id": id})
}

func invalidDeadline(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDeadline, "invalid deadline %s: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}
