// Package task defines the task record and its write-path rules.
package task

import (
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/date"
)

// Priority is the declared importance of a task.
type Priority string

// Priority levels. An empty priority reads as medium.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the allowed priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank returns the sort weight of the priority: high=3, medium=2, low=1.
// Unset or unknown values weigh as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3 //nolint:mnd // priority weight
	case PriorityLow:
		return 1
	default:
		return 2 //nolint:mnd // priority weight
	}
}

// OrDefault returns p, or medium when p is empty.
func (p Priority) OrDefault() Priority {
	if p == "" {
		return PriorityMedium
	}
	return p
}

// Task is a single to-do item owned by one user.
type Task struct {
	ID           int             `yaml:"id" json:"id"`
	Text         string          `yaml:"text" json:"text"`
	Completed    bool            `yaml:"completed" json:"completed"`
	Category     string          `yaml:"category" json:"category"`
	DeadlineDate *date.Date      `yaml:"deadline_date,omitempty" json:"deadline_date,omitempty"`
	DeadlineTime *date.TimeOfDay `yaml:"deadline_time,omitempty" json:"deadline_time,omitempty"`
	Priority     Priority        `yaml:"priority,omitempty" json:"priority"`
	OwnerID      string          `yaml:"owner_id" json:"owner_id"`
	CreatedAt    time.Time       `yaml:"created_at" json:"created_at"`
}

// Deadline returns the task's deadline fields as a value.
func (t *Task) Deadline() Deadline {
	return Deadline{Date: t.DeadlineDate, Time: t.DeadlineTime}
}

// SetDeadline replaces the task's deadline fields.
func (t *Task) SetDeadline(d Deadline) {
	t.DeadlineDate = d.Date
	t.DeadlineTime = d.Time
}

// Deadline is an optional calendar date with an optional time of day.
type Deadline struct {
	Date *date.Date
	Time *date.TimeOfDay
}

// IsSet reports whether the deadline has a date. A time alone does not count.
func (d Deadline) IsSet() bool {
	return d.Date != nil
}

// String renders the deadline as "YYYY-MM-DD", "YYYY-MM-DD HH:MM", or "".
func (d Deadline) String() string {
	if d.Date == nil {
		return ""
	}
	if d.Time == nil {
		return d.Date.String()
	}
	return d.Date.String() + " " + d.Time.String()
}
