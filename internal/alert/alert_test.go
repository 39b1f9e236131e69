package alert

import (
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// 09:00 leaves room for a same-day deadline five hours out.
var now = time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC)

func dueIn(id int, offset time.Duration) *task.Task {
	at := now.Add(offset)
	d := date.Of(at)
	tod := date.NewTime(at.Hour(), at.Minute())
	t := task.New(id, "owner", "task", "work", now)
	t.SetDeadline(task.Deadline{Date: &d, Time: &tod})
	return t
}

func ids(b Bucket) []int {
	out := make([]int, len(b.Tasks))
	for i, t := range b.Tasks {
		out[i] = t.ID
	}
	return out
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAggregateBuckets(t *testing.T) {
	done := dueIn(5, -time.Hour)
	done.Completed = true

	tasks := []*task.Task{
		dueIn(1, -26*time.Hour),                // overdue
		dueIn(2, 30*time.Minute),               // urgent
		dueIn(3, 5*time.Hour),                  // today
		task.New(4, "owner", "x", "work", now), // no deadline
		done,                                   // completed, ignored
		dueIn(6, 3*24*time.Hour),               // later this week
	}

	a := Aggregate(tasks, now)
	if got := ids(a.Overdue); !sameIDs(got, []int{1}) {
		t.Errorf("overdue = %v", got)
	}
	if got := ids(a.Urgent); !sameIDs(got, []int{2}) {
		t.Errorf("urgent = %v", got)
	}
	if got := ids(a.Today); !sameIDs(got, []int{3}) {
		t.Errorf("today = %v", got)
	}
}

func TestUrgentWindowIsWiderThanClassifier(t *testing.T) {
	tk := dueIn(1, 90*time.Minute)

	st, err := urgency.ClassifyTask(tk, now)
	if err != nil {
		t.Fatal(err)
	}
	if st.Kind != urgency.KindToday {
		t.Errorf("classifier kind = %s, want today", st.Kind)
	}

	a := Aggregate([]*task.Task{tk}, now)
	if a.Urgent.Count() != 1 || a.Today.Count() != 0 {
		t.Errorf("90 min task: urgent=%d today=%d, want 1/0", a.Urgent.Count(), a.Today.Count())
	}
}

func TestBucketsAreExclusivePerTask(t *testing.T) {
	// One overdue task must not suppress an unrelated due-today task.
	tasks := []*task.Task{dueIn(1, -2*time.Hour), dueIn(2, 6*time.Hour)}
	a := Aggregate(tasks, now)

	if a.Overdue.Count() != 1 || a.Today.Count() != 1 {
		t.Fatalf("overdue=%d today=%d, want 1/1", a.Overdue.Count(), a.Today.Count())
	}
	seen := map[int]int{}
	for _, b := range a.Buckets() {
		for _, tk := range b.Tasks {
			seen[tk.ID]++
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("task %d in %d buckets", id, n)
		}
	}
}

func TestDateOnlyTodayIsOverdue(t *testing.T) {
	d := date.Of(now)
	tk := task.New(1, "owner", "x", "work", now)
	tk.SetDeadline(task.Deadline{Date: &d})

	a := Aggregate([]*task.Task{tk}, now)
	if a.Overdue.Count() != 1 || a.Today.Count() != 0 {
		t.Errorf("date-only today: overdue=%d today=%d", a.Overdue.Count(), a.Today.Count())
	}
}

func TestTimeWithoutDateIsSkipped(t *testing.T) {
	tod := date.NewTime(10, 0)
	tk := task.New(1, "owner", "x", "work", now)
	tk.DeadlineTime = &tod

	a := Aggregate([]*task.Task{tk}, now)
	for _, b := range a.Buckets() {
		if b.Count() != 0 {
			t.Errorf("%s bucket holds a dateless task", b.Kind)
		}
	}
}

func TestInline(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{{0, false}, {1, true}, {2, true}, {3, false}}
	for _, tt := range tests {
		b := Bucket{Tasks: make([]*task.Task, tt.n)}
		if b.Inline() != tt.want {
			t.Errorf("Inline() with %d tasks = %v", tt.n, b.Inline())
		}
	}
}

func TestSessionDismissal(t *testing.T) {
	tasks := []*task.Task{dueIn(1, -time.Hour), dueIn(2, 30*time.Minute)}
	s := NewSession()

	a := s.Aggregate(tasks, now)
	if len(a.Visible()) != 2 {
		t.Fatalf("visible = %d, want 2", len(a.Visible()))
	}

	s.Dismiss(Overdue)
	a = s.Aggregate(tasks, now)
	if !a.Overdue.Dismissed || a.Urgent.Dismissed {
		t.Errorf("dismissal not bucket scoped: overdue=%v urgent=%v", a.Overdue.Dismissed, a.Urgent.Dismissed)
	}
	if len(a.Visible()) != 1 || a.Visible()[0].Kind != Urgent {
		t.Errorf("visible after dismiss = %v", a.Visible())
	}

	// Editing a task keeps the count and the dismissal.
	tasks[0].Text = "renamed"
	a = s.Aggregate(tasks, now)
	if !a.Overdue.Dismissed {
		t.Error("edit reset dismissal")
	}

	// Adding a task changes the count and resets.
	tasks = append(tasks, task.New(3, "owner", "new", "work", now))
	a = s.Aggregate(tasks, now)
	if a.Overdue.Dismissed || s.Dismissed(Overdue) {
		t.Error("count change did not reset dismissal")
	}

	// Deleting resets too.
	s.Dismiss(Urgent)
	a = s.Aggregate(tasks[:2], now)
	if a.Urgent.Dismissed {
		t.Error("delete did not reset dismissal")
	}
}

func TestObserveReportsReset(t *testing.T) {
	s := NewSession()
	if s.Observe(3) {
		t.Error("first observation reported a reset")
	}
	s.Dismiss(Today)
	if s.Observe(3) {
		t.Error("unchanged count reported a reset")
	}
	if !s.Observe(4) {
		t.Error("count change with a dismissal should report a reset")
	}
	if s.Observe(5) {
		t.Error("count change with nothing dismissed reported a reset")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("tomorrow"); err == nil {
		t.Error("ParseKind(tomorrow) should fail")
	}
}
