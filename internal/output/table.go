package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

const maxText = 48

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// Priority colors matching TUI priority palette.
	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	colorEnabled = true
)

// DisableColor strips all styling from table output.
func DisableColor() {
	colorEnabled = false
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
	priorityStyles = map[string]lipgloss.Style{}
}

// StatusStyle returns the style for an urgency status.
func StatusStyle(st urgency.Status) lipgloss.Style {
	if !colorEnabled {
		return lipgloss.NewStyle()
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(st.Color))
	if st.Urgent {
		s = s.Bold(true)
	}
	return s
}

// TaskTable renders a list of classified tasks as a formatted table.
func TaskTable(w io.Writer, views []board.TaskView, cfg *config.Config) {
	if len(views) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, prioW, catW, textW, dueW := 4, 10, 10, 6, 10
	for _, v := range views {
		idW = max(idW, len(strconv.Itoa(v.ID))+pad)
		catW = max(catW, lipgloss.Width(categoryLabel(cfg, v.Category))+pad)
		textW = max(textW, min(len(v.Text)+pad, maxText+pad))
		dueW = max(dueW, len(v.Deadline().String())+pad)
	}

	header := fmt.Sprintf("%-*s %-6s %-*s %-*s %-*s %-*s %s",
		idW, "ID", "DONE", prioW, "PRIORITY", catW, "CATEGORY",
		textW, "TEXT", dueW, "DEADLINE", "STATUS")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, v := range views {
		done := dimStyle.Render("[ ]")
		if v.Completed {
			done = doneStyle.Render("[x]")
		}
		due := v.Deadline().String()
		if due == "" {
			due = dimStyle.Render("--")
		}

		row := fmt.Sprintf("%-*d %s %s %s %s %s %s",
			idW, v.ID,
			padRight(done, 6), //nolint:mnd // column width
			padRight(styledValue(string(v.Priority.OrDefault()), priorityStyles), prioW),
			padRight(categoryLabel(cfg, v.Category), catW),
			padRight(truncate(v.Text, maxText), textW),
			padRight(due, dueW),
			statusCell(v))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single classified task with full detail.
func TaskDetail(w io.Writer, v board.TaskView, cfg *config.Config) {
	titleLine := fmt.Sprintf("Task #%d: %s", v.ID, v.Text)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	state := "pending"
	if v.Completed {
		state = doneStyle.Render("completed")
	}
	printField(w, "State", state)
	printField(w, "Category", categoryLabel(cfg, v.Category))
	printField(w, "Priority", styledValue(string(v.Priority.OrDefault()), priorityStyles))
	printField(w, "Deadline", stringOrDash(v.Deadline().String()))
	printField(w, "Status", statusCell(v))
	printField(w, "Created", v.CreatedAt.Format("2006-01-02 15:04"))
}

// OverviewTable renders a board summary as a formatted dashboard.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(s.BoardName))
	fmt.Fprintf(w, "Total: %d  Completed: %d  Pending: %d  Overdue: %d  Due today: %d\n\n",
		s.TotalTasks, s.Completed, s.Pending, s.Overdue, s.DueToday)

	const catColW = 18
	header := fmt.Sprintf("%-*s %8s %8s %8s", catColW, "CATEGORY", "DONE", "TOTAL", "URGENT")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, c := range s.Categories {
		urgent := dimStyle.Render("--")
		if c.Urgent > 0 {
			urgent = warnStyle.Render(strconv.Itoa(c.Urgent))
		}
		label := c.Name
		if c.Icon != "" {
			label = c.Icon + " " + c.Name
		}
		fmt.Fprintf(w, "%s %8d %8d %s\n",
			padRight(label, catColW), c.Completed, c.Total, padLeft(urgent, 8)) //nolint:mnd // column width
	}
}

// AlertsTable renders each visible bucket as a banner. Buckets with more
// than alert.InlineLimit tasks only show their count.
func AlertsTable(w io.Writer, a alert.Alerts) {
	visible := a.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No alerts."))
		return
	}
	for i, b := range visible {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, BucketStyle(b.Kind).Render(BannerText(b)))
		if b.Inline() {
			for _, t := range b.Tasks {
				fmt.Fprintf(w, "  #%d %s\n", t.ID, truncate(t.Text, maxText))
			}
		}
	}
}

// BannerText is the one-line heading of a bucket.
func BannerText(b alert.Bucket) string {
	noun := "tasks"
	if b.Count() == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%s: %d %s", b.Kind.Title(), b.Count(), noun)
}

// BucketStyle returns the banner style of a bucket kind.
func BucketStyle(k alert.Kind) lipgloss.Style {
	if !colorEnabled {
		return lipgloss.NewStyle()
	}
	colors := map[alert.Kind]urgency.Kind{
		alert.Overdue: urgency.KindOverdue,
		alert.Urgent:  urgency.KindUrgent,
		alert.Today:   urgency.KindToday,
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors[k].Color()))
}

// UserTable renders the user registry.
func UserTable(w io.Writer, users []*store.User) {
	if len(users) == 0 {
		fmt.Fprintln(os.Stderr, "No users registered.")
		return
	}
	emailW := len("EMAIL") + 2
	for _, u := range users {
		emailW = max(emailW, len(u.Email)+2) //nolint:mnd // padding
	}
	header := fmt.Sprintf("%-*s %-24s %s", emailW, "EMAIL", "NAME", "ID")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, u := range users {
		fmt.Fprintf(w, "%-*s %-24s %s\n", emailW, u.Email, truncate(stringOrDash(u.FullName), 22), dimStyle.Render(u.ID)) //nolint:mnd // column width
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func statusCell(v board.TaskView) string {
	if v.Completed {
		return dimStyle.Render("done")
	}
	cell := StatusStyle(v.Status).Render(v.Status.Label)
	if v.Warning != "" {
		cell += " " + warnStyle.Render("(warning: "+v.Warning+")")
	}
	return cell
}

func categoryLabel(cfg *config.Config, id string) string {
	if cfg != nil {
		if c := cfg.CategoryByID(id); c != nil {
			if c.Icon != "" {
				return c.Icon + " " + c.Name
			}
			return c.Name
		}
	}
	return id
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func padLeft(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", width-visible) + s
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
