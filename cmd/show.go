package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long: `Displays full details of a single task with its current urgency.
On a terminal the detail is rendered as markdown; --markdown prints the source.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Bool("markdown", false, "print the markdown source instead of rendering it")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return task.ValidateTaskID(args[0])
	}

	s, err := openSession()
	if err != nil {
		return err
	}

	doc, err := s.tasks.Load(s.user.ID)
	if err != nil {
		return err
	}
	t, err := doc.Find(id)
	if err != nil {
		return err
	}
	v := board.Views([]*task.Task{t}, s.clock.Now())[0]

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, v)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, v)
		return nil
	}

	if raw, _ := cmd.Flags().GetBool("markdown"); raw {
		_, err := fmt.Fprint(os.Stdout, output.TaskMarkdown(v, s.cfg))
		return err
	}
	if !flagTable && term.IsTerminal(int(os.Stdout.Fd())) {
		return output.Markdown(os.Stdout, output.TaskMarkdown(v, s.cfg), true)
	}

	output.TaskDetail(os.Stdout, v, s.cfg)
	return nil
}
