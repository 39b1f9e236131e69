package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var deleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Permanently removes a task. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq,
			"batch delete requires --yes")
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	if len(ids) == 1 {
		return deleteSingleTask(s, ids[0], yes)
	}

	return runBatch(ids, func(id int) error {
		_, err := executeDelete(s, id)
		return err
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(s *session, id int, yes bool) error {
	doc, err := s.tasks.Load(s.user.ID)
	if err != nil {
		return err
	}
	t, err := doc.Find(id)
	if err != nil {
		return err
	}

	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task #%d %q? [y/N] ", t.ID, t.Text)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	deleted, err := executeDelete(s, id)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "deleted",
			"id":     deleted.ID,
			"text":   deleted.Text,
		})
	}

	output.Messagef(os.Stdout, "Deleted task #%d: %s", deleted.ID, deleted.Text)
	return nil
}

// executeDelete removes one task under the board lock and logs it.
func executeDelete(s *session, id int) (*task.Task, error) {
	var removed *task.Task
	err := s.update(func(doc *store.Document) error {
		t, err := doc.Find(id)
		if err != nil {
			return err
		}
		removed = t
		return doc.Delete(id)
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(board.ActionDelete, id, removed.Text)
	return removed, nil
}
