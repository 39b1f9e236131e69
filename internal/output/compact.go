package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, views []board.TaskView) {
	if len(views) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, v := range views {
		fmt.Fprintln(w, formatTaskLine(v))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, v board.TaskView) {
	fmt.Fprintln(w, formatTaskLine(v))
	fmt.Fprintln(w, "  created:"+v.CreatedAt.Format("2006-01-02")+" owner:"+v.OwnerID)
	if v.Warning != "" {
		fmt.Fprintln(w, "  warning: "+v.Warning)
	}
}

// OverviewCompact renders a board summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%s (%d tasks, %d done, %d overdue, %d due today)\n",
		s.BoardName, s.TotalTasks, s.Completed, s.Overdue, s.DueToday)

	for _, c := range s.Categories {
		line := "  " + c.ID + ": " + strconv.Itoa(c.Completed) + "/" + strconv.Itoa(c.Total)
		if c.Urgent > 0 {
			line += " (" + strconv.Itoa(c.Urgent) + " urgent)"
		}
		fmt.Fprintln(w, line)
	}
}

// AlertsCompact renders one line per visible bucket.
func AlertsCompact(w io.Writer, a alert.Alerts) {
	for _, b := range a.Visible() {
		line := b.Kind.String() + ": " + strconv.Itoa(b.Count())
		if b.Inline() {
			ids := make([]string, len(b.Tasks))
			for i, t := range b.Tasks {
				ids[i] = "#" + strconv.Itoa(t.ID)
			}
			line += " " + strings.Join(ids, " ")
		}
		fmt.Fprintln(w, line)
	}
}

// UserCompact renders one line per user.
func UserCompact(w io.Writer, users []*store.User) {
	for _, u := range users {
		line := u.Email + " " + u.ID
		if u.FullName != "" {
			line += " (" + u.FullName + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(v board.TaskView) string {
	mark := "[ ]"
	if v.Completed {
		mark = "[x]"
	}
	line := "#" + strconv.Itoa(v.ID) + " " + mark + " [" + v.Category + "/" + string(v.Priority.OrDefault()) + "] " + v.Text

	if d := v.Deadline().String(); d != "" {
		line += " due:" + d
	}
	if !v.Completed && v.Status.Kind != urgency.KindNone {
		line += " " + v.Status.Kind.String() + ":" + strings.ReplaceAll(v.Status.Label, " ", "_")
	}

	return line
}
