package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var addPriority task.Priority

var addCmd = &cobra.Command{
	Use:     "add TEXT",
	Aliases: []string{"create"},
	Short:   "Add a task",
	Long: `Adds a task for the current user. All arguments are joined into the task text.

A deadline is a date (YYYY-MM-DD) with an optional time of day (HH:MM).
A time without a date is rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringP("category", "c", "", "category id (default from config)")
	addCmd.Flags().VarP(newPriorityValue(&addPriority), "priority", "p", priorityFlagUsage("task priority"))
	addCmd.Flags().String("date", "", "deadline date (YYYY-MM-DD)")
	addCmd.Flags().String("time", "", "deadline time of day (HH:MM, needs --date)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	t, err := newTaskFromFlags(cmd, s.cfg, strings.Join(args, " "), s.clock.Now())
	if err != nil {
		return err
	}

	err = s.update(func(doc *store.Document) error {
		doc.Add(s.user.ID, t)
		return nil
	})
	if err != nil {
		return err
	}
	s.logActivity(board.ActionCreate, t.ID, t.Text)

	view := board.Views([]*task.Task{t}, s.clock.Now())[0]
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, view)
	}

	output.Messagef(os.Stdout, "Added task #%d: %s", t.ID, t.Text)
	output.Messagef(os.Stdout, "  Category: %s | Priority: %s", t.Category, t.Priority)
	if d := t.Deadline(); d.IsSet() {
		output.Messagef(os.Stdout, "  Deadline: %s (%s)", d, view.Status.Label)
	}
	return nil
}

// newTaskFromFlags validates the write-path inputs and builds an unsaved task.
func newTaskFromFlags(cmd *cobra.Command, cfg *config.Config, rawText string, now time.Time) (*task.Task, error) {
	text, err := task.ValidateText(rawText)
	if err != nil {
		return nil, err
	}

	category, _ := cmd.Flags().GetString("category")
	if category == "" {
		category = cfg.Defaults.Category
	}
	if err := task.ValidateCategory(category, cfg.CategoryIDs()); err != nil {
		return nil, err
	}

	t := task.New(0, "", text, category, now)
	t.Priority = task.Priority(cfg.Defaults.Priority).OrDefault()
	if cmd.Flags().Changed("priority") {
		t.Priority = addPriority
	}

	dateStr, _ := cmd.Flags().GetString("date")
	timeStr, _ := cmd.Flags().GetString("time")
	d, err := task.ParseDeadline(dateStr, timeStr)
	if err != nil {
		return nil, err
	}
	t.SetDeadline(d)
	return t, nil
}
