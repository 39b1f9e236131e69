// Package urgency classifies task deadlines relative to the current instant.
//
// Classification is a pure function of the deadline and now. Date-only
// deadlines resolve to the start of their calendar day, so a task due today
// without a time is already overdue once midnight has passed.
package urgency

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

// Sentinel classification errors.
var (
	ErrTimeWithoutDate = errors.New("deadline time set without a date")
	ErrInvalidDeadline = errors.New("invalid deadline")
)

const day = 24 * time.Hour

// Kind is the urgency variant of a task.
type Kind int

// Urgency kinds. The zero value is KindNone.
const (
	KindNone Kind = iota
	KindOverdue
	KindUrgent
	KindToday
	KindTomorrow
	KindSoon
	KindWeek
	KindFuture
)

var kindNames = [...]string{
	KindNone:     "none",
	KindOverdue:  "overdue",
	KindUrgent:   "urgent",
	KindToday:    "today",
	KindTomorrow: "tomorrow",
	KindSoon:     "soon",
	KindWeek:     "week",
	KindFuture:   "future",
}

// ANSI 256 color hints, one per kind.
var kindColors = [...]string{
	KindNone:     "241",
	KindOverdue:  "196",
	KindUrgent:   "202",
	KindToday:    "208",
	KindTomorrow: "214",
	KindSoon:     "220",
	KindWeek:     "33",
	KindFuture:   "245",
}

var kindRanks = [...]int{
	KindNone:     -1,
	KindOverdue:  5, //nolint:mnd // urgency rank
	KindUrgent:   4, //nolint:mnd // urgency rank
	KindToday:    3, //nolint:mnd // urgency rank
	KindTomorrow: 2, //nolint:mnd // urgency rank
	KindSoon:     1,
	KindWeek:     0,
	KindFuture:   -1,
}

// Kinds lists every kind in display order, most pressing first.
var Kinds = []Kind{KindOverdue, KindUrgent, KindToday, KindTomorrow, KindSoon, KindWeek, KindFuture, KindNone}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Color returns the color hint for the kind.
func (k Kind) Color() string {
	if k < 0 || int(k) >= len(kindColors) {
		return kindColors[KindNone]
	}
	return kindColors[k]
}

// Rank returns the sort weight of the kind. Higher is more pressing.
// Future and none share the lowest rank.
func (k Kind) Rank() int {
	if k < 0 || int(k) >= len(kindRanks) {
		return kindRanks[KindNone]
	}
	return kindRanks[k]
}

// Urgent reports whether the kind demands visual attention.
func (k Kind) Urgent() bool {
	return k == KindOverdue || k == KindUrgent || k == KindToday
}

// ParseKind resolves a kind by name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return KindNone, fmt.Errorf("unknown urgency %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Status describes a deadline relative to now.
type Status struct {
	Kind  Kind   `json:"kind"`
	Label string `json:"label"`
	Color string `json:"color"`
	// Urgent is true for overdue, urgent and today.
	Urgent bool `json:"urgent"`
	// Days, Hours and Minutes hold the magnitude the label was built from.
	// For overdue it is the elapsed time, otherwise the remaining time.
	Days    int `json:"days,omitempty"`
	Hours   int `json:"hours,omitempty"`
	Minutes int `json:"minutes,omitempty"`
	// Remaining is the signed distance from now to the deadline.
	Remaining time.Duration `json:"-"`
}

// None is the status of a task without a deadline.
func None() Status {
	return newStatus(KindNone, "no deadline")
}

func newStatus(k Kind, label string) Status {
	return Status{Kind: k, Label: label, Color: k.Color(), Urgent: k.Urgent()}
}

// Instant resolves a deadline to a point in time in now's location. The
// second result is false when the deadline has no date.
func Instant(d task.Deadline, now time.Time) (time.Time, bool) {
	if d.Date == nil || d.Date.IsZero() {
		return time.Time{}, false
	}
	return d.Date.At(d.Time, now.Location()), true
}

// Classify computes the status of a deadline at now.
//
// A time without a date yields None together with ErrTimeWithoutDate. A zero
// date or an out-of-range time yields ErrInvalidDeadline.
func Classify(d task.Deadline, now time.Time) (Status, error) {
	if d.Date == nil {
		if d.Time != nil {
			return None(), ErrTimeWithoutDate
		}
		return None(), nil
	}
	if d.Date.IsZero() {
		return Status{}, fmt.Errorf("%w: zero date", ErrInvalidDeadline)
	}
	if d.Time != nil && !d.Time.Valid() {
		return Status{}, fmt.Errorf("%w: time %s out of range", ErrInvalidDeadline, d.Time)
	}

	at, _ := Instant(d, now)
	st := classifyDelta(at.Sub(now))
	return st, nil
}

// ClassifyTask classifies the deadline of t.
func ClassifyTask(t *task.Task, now time.Time) (Status, error) {
	return Classify(t.Deadline(), now)
}

// ClassifyRaw parses YYYY-MM-DD and HH:MM strings and classifies the result.
// Empty strings mean the part is absent.
func ClassifyRaw(dateStr, timeStr string, now time.Time) (Status, error) {
	var d task.Deadline
	if dateStr != "" {
		parsed, err := date.Parse(dateStr)
		if err != nil {
			return Status{}, fmt.Errorf("%w: %w", ErrInvalidDeadline, err)
		}
		d.Date = &parsed
	}
	if timeStr != "" {
		parsed, err := date.ParseTime(timeStr)
		if err != nil {
			return Status{}, fmt.Errorf("%w: %w", ErrInvalidDeadline, err)
		}
		d.Time = &parsed
	}
	return Classify(d, now)
}

func classifyDelta(delta time.Duration) Status {
	switch {
	case delta < 0:
		return overdue(-delta, delta)
	case delta < time.Hour:
		minutes := int(delta / time.Minute)
		st := newStatus(KindUrgent, fmt.Sprintf("%d min", minutes))
		st.Minutes = minutes
		st.Remaining = delta
		return st
	case delta < day:
		hours := int(delta / time.Hour)
		st := newStatus(KindToday, fmt.Sprintf("%dh left", hours))
		st.Hours = hours
		st.Remaining = delta
		return st
	}

	daysCeil := int(math.Ceil(float64(delta) / float64(day)))
	var st Status
	switch {
	case daysCeil == 1:
		st = newStatus(KindTomorrow, "tomorrow")
	case daysCeil <= 3: //nolint:mnd // soon window
		st = newStatus(KindSoon, fmt.Sprintf("%d days", daysCeil))
	case daysCeil <= 7: //nolint:mnd // week window
		st = newStatus(KindWeek, fmt.Sprintf("%d days", daysCeil))
	default:
		st = newStatus(KindFuture, fmt.Sprintf("%d days", daysCeil))
	}
	st.Days = daysCeil
	st.Remaining = delta
	return st
}

func overdue(elapsed, delta time.Duration) Status {
	days := int(elapsed / day)
	hours := int(elapsed/time.Hour) % 24 //nolint:mnd // hours per day

	var label string
	switch {
	case days > 0 && hours > 0:
		label = fmt.Sprintf("overdue by %dd %dh", days, hours)
	case days > 0:
		label = fmt.Sprintf("overdue by %dd", days)
	case hours > 0:
		label = fmt.Sprintf("overdue by %dh", hours)
	default:
		label = "overdue by <1h"
	}

	st := newStatus(KindOverdue, label)
	st.Days = days
	st.Hours = hours
	st.Remaining = delta
	return st
}
