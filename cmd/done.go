package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var doneCmd = &cobra.Command{
	Use:     "done ID[,ID,...]",
	Aliases: []string{"toggle"},
	Short:   "Toggle task completion",
	Long: `Flips tasks between pending and completed.
Multiple IDs can be provided as a comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(_ *cobra.Command, args []string) error {
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
			_, err := executeToggle(s, id)
			return err
		})
	}

	t, err := executeToggle(s, ids[0])
	if err != nil {
		return err
	}
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	state := "pending"
	if t.Completed {
		state = "done"
	}
	output.Messagef(os.Stdout, "Task #%d %s: %s", t.ID, state, t.Text)
	return nil
}

// executeToggle flips one task under the board lock and logs it.
func executeToggle(s *session, id int) (*task.Task, error) {
	var toggled *task.Task
	err := s.update(func(doc *store.Document) error {
		t, err := doc.Find(id)
		if err != nil {
			return err
		}
		task.Toggle(t)
		toggled = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	detail := "pending"
	if toggled.Completed {
		detail = "done"
	}
	s.logActivity(board.ActionToggle, id, detail)
	return toggled, nil
}
