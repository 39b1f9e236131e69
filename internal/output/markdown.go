package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
)

const markdownWrap = 80

// TaskMarkdown builds a markdown document describing a task.
func TaskMarkdown(v board.TaskView, cfg *config.Config) string {
	var b strings.Builder

	check := "[ ]"
	if v.Completed {
		check = "[x]"
	}
	fmt.Fprintf(&b, "# %s #%d %s\n\n", check, v.ID, v.Text)

	status := v.Status.Label
	if v.Completed {
		status = "done"
	}
	b.WriteString("| field | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| category | %s |\n", categoryLabel(cfg, v.Category))
	fmt.Fprintf(&b, "| priority | %s |\n", v.Priority.OrDefault())
	fmt.Fprintf(&b, "| deadline | %s |\n", orDash(v.Deadline().String()))
	fmt.Fprintf(&b, "| status | %s |\n", status)
	fmt.Fprintf(&b, "| created | %s |\n", v.CreatedAt.Format("2006-01-02 15:04"))

	if v.Warning != "" {
		fmt.Fprintf(&b, "\n> **warning:** %s\n", v.Warning)
	}
	return b.String()
}

// Markdown renders md for a terminal with glamour. When styled is false the
// plain-text "notty" style is used.
func Markdown(w io.Writer, md string, styled bool) error {
	style := glamour.WithStandardStyle("notty")
	if styled && colorEnabled {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(markdownWrap))
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}
