package urgency

import (
	"errors"
	"testing"
	"time"

	"github.com/twiced-technology-gmbh/duewatch/internal/date"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// deadlineAt builds a dated, timed deadline at now+offset.
func deadlineAt(offset time.Duration) task.Deadline {
	at := now.Add(offset)
	d := date.Of(at)
	tod := date.NewTime(at.Hour(), at.Minute())
	return task.Deadline{Date: &d, Time: &tod}
}

func dateOnly(y int, m time.Month, dd int) task.Deadline {
	d := date.New(y, m, dd)
	return task.Deadline{Date: &d}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		d     task.Deadline
		kind  Kind
		label string
	}{
		{"no deadline", task.Deadline{}, KindNone, "no deadline"},
		{"one minute past", deadlineAt(-time.Minute), KindOverdue, "overdue by <1h"},
		{"five hours past", deadlineAt(-5 * time.Hour), KindOverdue, "overdue by 5h"},
		{"two days three hours past", deadlineAt(-(51 * time.Hour)), KindOverdue, "overdue by 2d 3h"},
		{"exactly one day past", deadlineAt(-24 * time.Hour), KindOverdue, "overdue by 1d"},
		{"exactly now", deadlineAt(0), KindUrgent, "0 min"},
		{"in 45 minutes", deadlineAt(45 * time.Minute), KindUrgent, "45 min"},
		{"in 90 minutes", deadlineAt(90 * time.Minute), KindToday, "1h left"},
		{"in 23h59m", deadlineAt(23*time.Hour + 59*time.Minute), KindToday, "23h left"},
		{"in exactly 24h", deadlineAt(24 * time.Hour), KindTomorrow, "tomorrow"},
		{"in 25h", deadlineAt(25 * time.Hour), KindSoon, "2 days"},
		{"in 3 days", deadlineAt(72 * time.Hour), KindSoon, "3 days"},
		{"in 3 days 1 min", deadlineAt(72*time.Hour + time.Minute), KindWeek, "4 days"},
		{"in 7 days", deadlineAt(7 * 24 * time.Hour), KindWeek, "7 days"},
		{"in 8 days", deadlineAt(8 * 24 * time.Hour), KindFuture, "8 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Classify(tt.d, now)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if st.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", st.Kind, tt.kind)
			}
			if st.Label != tt.label {
				t.Errorf("label = %q, want %q", st.Label, tt.label)
			}
			if st.Urgent != tt.kind.Urgent() {
				t.Errorf("urgent = %v for %s", st.Urgent, st.Kind)
			}
			if st.Color != tt.kind.Color() {
				t.Errorf("color = %q, want %q", st.Color, tt.kind.Color())
			}
		})
	}
}

func TestDateOnlyIsStartOfDay(t *testing.T) {
	// Due today without a time: midnight has passed, so it is overdue by 12h.
	st, err := Classify(dateOnly(2026, 3, 10), now)
	if err != nil {
		t.Fatal(err)
	}
	if st.Kind != KindOverdue || st.Hours != 12 || st.Days != 0 {
		t.Errorf("date-only today = %s days=%d hours=%d", st.Kind, st.Days, st.Hours)
	}

	// Due tomorrow without a time: 12h away, which is still today.
	st, _ = Classify(dateOnly(2026, 3, 11), now)
	if st.Kind != KindToday || st.Hours != 12 {
		t.Errorf("date-only tomorrow = %s hours=%d", st.Kind, st.Hours)
	}
}

func TestClassifyUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	local := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)
	tod := date.NewTime(8, 30)
	d := date.New(2026, 3, 10)

	st, err := Classify(task.Deadline{Date: &d, Time: &tod}, local)
	if err != nil {
		t.Fatal(err)
	}
	if st.Kind != KindUrgent || st.Minutes != 30 {
		t.Errorf("got %s %d min, want urgent 30 min", st.Kind, st.Minutes)
	}
}

func TestClassifyErrors(t *testing.T) {
	tod := date.NewTime(9, 0)
	st, err := Classify(task.Deadline{Time: &tod}, now)
	if !errors.Is(err, ErrTimeWithoutDate) {
		t.Errorf("time without date err = %v", err)
	}
	if st.Kind != KindNone {
		t.Errorf("time without date kind = %s, want none", st.Kind)
	}

	zero := date.Date{}
	if _, err := Classify(task.Deadline{Date: &zero}, now); !errors.Is(err, ErrInvalidDeadline) {
		t.Errorf("zero date err = %v", err)
	}

	bad := date.NewTime(25, 0)
	d := date.New(2026, 3, 10)
	if _, err := Classify(task.Deadline{Date: &d, Time: &bad}, now); !errors.Is(err, ErrInvalidDeadline) {
		t.Errorf("out of range time err = %v", err)
	}
}

func TestClassifyRaw(t *testing.T) {
	st, err := ClassifyRaw("2026-03-10", "12:30", now)
	if err != nil || st.Kind != KindUrgent {
		t.Errorf("ClassifyRaw = %v, %v", st.Kind, err)
	}
	for _, in := range [][2]string{{"2026-02-30", ""}, {"tomorrow", ""}, {"2026-03-10", "24:61"}} {
		if _, err := ClassifyRaw(in[0], in[1], now); !errors.Is(err, ErrInvalidDeadline) {
			t.Errorf("ClassifyRaw(%q, %q) err = %v", in[0], in[1], err)
		}
	}
	if _, err := ClassifyRaw("", "10:00", now); !errors.Is(err, ErrTimeWithoutDate) {
		t.Errorf("raw time without date err = %v", err)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	d := deadlineAt(3*time.Hour + 17*time.Minute)
	first, _ := Classify(d, now)
	for range 5 {
		again, _ := Classify(d, now)
		if again != first {
			t.Fatalf("Classify changed result: %+v then %+v", first, again)
		}
	}
}

func TestRanksAndColors(t *testing.T) {
	want := map[Kind]int{
		KindOverdue: 5, KindUrgent: 4, KindToday: 3, KindTomorrow: 2,
		KindSoon: 1, KindWeek: 0, KindFuture: -1, KindNone: -1,
	}
	seen := map[string]Kind{}
	for _, k := range Kinds {
		if k.Rank() != want[k] {
			t.Errorf("%s rank = %d, want %d", k, k.Rank(), want[k])
		}
		if other, dup := seen[k.Color()]; dup {
			t.Errorf("%s and %s share color %s", k, other, k.Color())
		}
		seen[k.Color()] = k
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("later"); err == nil {
		t.Error("ParseKind(later) should fail")
	}
}
