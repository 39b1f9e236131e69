package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var editPriority task.Priority

var editCmd = &cobra.Command{
	Use:   "edit ID[,ID,...]",
	Short: "Edit a task",
	Long: `Modifies fields of an existing task. Only specified fields are changed.
--date and --time replace their part of the deadline; --clear-deadline removes it.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("text", "", "new task text")
	editCmd.Flags().StringP("category", "c", "", "new category id")
	editCmd.Flags().VarP(newPriorityValue(&editPriority), "priority", "p", priorityFlagUsage("new priority"))
	editCmd.Flags().String("date", "", "new deadline date (YYYY-MM-DD)")
	editCmd.Flags().String("time", "", "new deadline time of day (HH:MM)")
	editCmd.Flags().Bool("clear-deadline", false, "remove the deadline")
	editCmd.Flags().Bool("clear-time", false, "keep the deadline date but drop its time")
	editCmd.MarkFlagsMutuallyExclusive("clear-deadline", "date")
	editCmd.MarkFlagsMutuallyExclusive("clear-deadline", "time")
	editCmd.MarkFlagsMutuallyExclusive("clear-time", "time")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	if len(ids) > 1 {
		return runBatch(ids, func(id int) error {
			_, err := executeEdit(cmd, s, id)
			return err
		})
	}

	t, err := executeEdit(cmd, s, ids[0])
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, board.Views([]*task.Task{t}, s.clock.Now())[0])
	}
	output.Messagef(os.Stdout, "Updated task #%d: %s", t.ID, t.Text)
	return nil
}

// executeEdit applies the flag changes to one task under the board lock.
func executeEdit(cmd *cobra.Command, s *session, id int) (*task.Task, error) {
	var edited *task.Task
	var changes []string
	err := s.update(func(doc *store.Document) error {
		t, err := doc.Find(id)
		if err != nil {
			return err
		}
		changes, err = applyEditChanges(cmd, s.cfg, t)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return clierr.Newf(clierr.NoChanges, "no changes for task #%d", id).
				WithDetails(map[string]any{"id": id})
		}
		edited = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(board.ActionEdit, id, strings.Join(changes, ","))
	return edited, nil
}

// applyEditChanges mutates t and returns the names of the fields that
// actually changed.
func applyEditChanges(cmd *cobra.Command, cfg *config.Config, t *task.Task) ([]string, error) {
	var changes []string

	if cmd.Flags().Changed("text") {
		v, _ := cmd.Flags().GetString("text")
		changed, err := task.SetText(t, v)
		if err != nil {
			return nil, err
		}
		if changed {
			changes = append(changes, "text")
		}
	}

	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		if err := task.ValidateCategory(v, cfg.CategoryIDs()); err != nil {
			return nil, err
		}
		if v != t.Category {
			t.Category = v
			changes = append(changes, "category")
		}
	}

	if cmd.Flags().Changed("priority") && editPriority != t.Priority.OrDefault() {
		t.Priority = editPriority
		changes = append(changes, "priority")
	}

	next, err := editedDeadline(cmd, t.Deadline())
	if err != nil {
		return nil, err
	}
	if next.String() != t.Deadline().String() {
		t.SetDeadline(next)
		changes = append(changes, "deadline")
	}

	return changes, nil
}

// editedDeadline returns the deadline after applying the deadline flags to cur.
func editedDeadline(cmd *cobra.Command, cur task.Deadline) (task.Deadline, error) {
	if dropAll, _ := cmd.Flags().GetBool("clear-deadline"); dropAll {
		return task.Deadline{}, nil
	}

	dateStr, _ := cmd.Flags().GetString("date")
	timeStr, _ := cmd.Flags().GetString("time")
	parsedDate, err := task.ParseDeadline(dateStr, "")
	if err != nil {
		return task.Deadline{}, err
	}
	// Parse the time against a placeholder date so a bare --time is checked
	// against the task's existing date below.
	parsedTime, err := task.ParseDeadline("2000-01-01", timeStr)
	if err != nil {
		return task.Deadline{}, err
	}

	next := cur
	if parsedDate.Date != nil {
		next.Date = parsedDate.Date
	}
	if parsedTime.Time != nil {
		next.Time = parsedTime.Time
	}
	if dropTime, _ := cmd.Flags().GetBool("clear-time"); dropTime {
		next.Time = nil
	}

	if err := task.ValidateDeadline(next); err != nil {
		return task.Deadline{}, err
	}
	return next, nil
}
