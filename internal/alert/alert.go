// Package alert groups a user's pending tasks into overdue, urgent and
// due-today buckets and tracks which buckets the user has dismissed.
package alert

import (
	"fmt"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// UrgentWindow is how far ahead a deadline lands in the urgent bucket. It is
// wider than the classifier's own urgent variant.
const UrgentWindow = 2 * time.Hour

// InlineLimit is the largest bucket whose task texts are shown inline.
// Larger buckets only show a count.
const InlineLimit = 2

// Kind identifies an alert bucket.
type Kind int

// Bucket kinds, in display order.
const (
	Overdue Kind = iota
	Urgent
	Today

	numKinds
)

// Kinds lists every bucket kind in display order.
var Kinds = [numKinds]Kind{Overdue, Urgent, Today}

var kindNames = [numKinds]string{"overdue", "urgent", "today"}

var kindTitles = [numKinds]string{"Overdue", "Due within 2 hours", "Due today"}

// String returns the lowercase bucket name.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("bucket(%d)", int(k))
	}
	return kindNames[k]
}

// Title returns the banner heading of the bucket.
func (k Kind) Title() string {
	if !k.valid() {
		return k.String()
	}
	return kindTitles[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

// ParseKind resolves a bucket by name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown alert bucket %q (allowed: overdue, urgent, today)", s)
}

// Bucket is one alert group.
type Bucket struct {
	Kind      Kind         `json:"kind"`
	Tasks     []*task.Task `json:"tasks"`
	Dismissed bool         `json:"dismissed"`
}

// Count returns the number of tasks in the bucket.
func (b Bucket) Count() int {
	return len(b.Tasks)
}

// Visible reports whether the bucket should be shown.
func (b Bucket) Visible() bool {
	return !b.Dismissed && len(b.Tasks) > 0
}

// Inline reports whether each task's text should be listed under the banner.
func (b Bucket) Inline() bool {
	return len(b.Tasks) > 0 && len(b.Tasks) <= InlineLimit
}

// Alerts holds all three buckets.
type Alerts struct {
	Overdue Bucket `json:"overdue"`
	Urgent  Bucket `json:"urgent"`
	Today   Bucket `json:"today"`
}

// Buckets returns the buckets in display order.
func (a Alerts) Buckets() []Bucket {
	return []Bucket{a.Overdue, a.Urgent, a.Today}
}

// Bucket returns the bucket of kind k.
func (a *Alerts) Bucket(k Kind) *Bucket {
	switch k {
	case Overdue:
		return &a.Overdue
	case Urgent:
		return &a.Urgent
	default:
		return &a.Today
	}
}

// Visible returns the buckets that are neither dismissed nor empty.
func (a Alerts) Visible() []Bucket {
	var out []Bucket
	for _, b := range a.Buckets() {
		if b.Visible() {
			out = append(out, b)
		}
	}
	return out
}

// Aggregate sorts pending, dated tasks into buckets. Each task lands in at
// most one bucket: overdue wins over urgent, and urgent over today.
func Aggregate(tasks []*task.Task, now time.Time) Alerts {
	a := Alerts{
		Overdue: Bucket{Kind: Overdue},
		Urgent:  Bucket{Kind: Urgent},
		Today:   Bucket{Kind: Today},
	}
	today := date.Of(now)

	for _, t := range tasks {
		if t.Completed {
			continue
		}
		st, err := urgency.ClassifyTask(t, now)
		if err != nil || st.Kind == urgency.KindNone {
			continue
		}
		at, _ := urgency.Instant(t.Deadline(), now)
		delta := at.Sub(now)

		switch {
		case st.Kind == urgency.KindOverdue:
			a.Overdue.Tasks = append(a.Overdue.Tasks, t)
		case delta >= 0 && delta < UrgentWindow:
			a.Urgent.Tasks = append(a.Urgent.Tasks, t)
		case t.DeadlineDate.Equal(today):
			a.Today.Tasks = append(a.Today.Tasks, t)
		}
	}
	return a
}
