package board

import (
	"sort"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// sortKey caches the per-task values the comparator needs so each task is
// classified once per Order call.
type sortKey struct {
	t           *task.Task
	rank        int
	priority    int
	at          time.Time
	hasDeadline bool
}

// Order returns a stably sorted copy of tasks. The input slice is left as is.
//
// Keys, in order: pending before completed, urgency rank descending, priority
// descending, then deadline instant ascending with dated tasks ahead of
// undated ones. Ties keep their input order.
func Order(tasks []*task.Task, now time.Time) []*task.Task {
	keys := make([]sortKey, len(tasks))
	for i, t := range tasks {
		keys[i] = keyFor(t, now)
	}

	sort.SliceStable(keys, func(i, j int) bool {
		return lessKey(keys[i], keys[j])
	})

	out := make([]*task.Task, len(keys))
	for i, k := range keys {
		out[i] = k.t
	}
	return out
}

func keyFor(t *task.Task, now time.Time) sortKey {
	k := sortKey{t: t, priority: t.Priority.Rank(), rank: urgency.KindNone.Rank()}
	// Classification errors leave the task ranked as having no deadline.
	if st, err := urgency.ClassifyTask(t, now); err == nil {
		k.rank = st.Kind.Rank()
	}
	if at, ok := urgency.Instant(t.Deadline(), now); ok {
		k.at = at
		k.hasDeadline = true
	}
	return k
}

func lessKey(a, b sortKey) bool {
	if a.t.Completed != b.t.Completed {
		return !a.t.Completed
	}
	if a.rank != b.rank {
		return a.rank > b.rank
	}
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return compareDeadline(a, b)
}

func compareDeadline(a, b sortKey) bool {
	if !a.hasDeadline && !b.hasDeadline {
		return false
	}
	if !a.hasDeadline {
		return false // undated sorts last
	}
	if !b.hasDeadline {
		return true
	}
	return a.at.Before(b.at)
}
