package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/task"
	"github.com/twiced-technology-gmbh/duewatch/internal/urgency"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks by urgency",
	Long: `Lists the current user's tasks, most urgent first: pending before completed,
then by urgency, priority and deadline.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceP("category", "c", nil, "filter by category (comma-separated)")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().StringSlice("status", nil, "filter by urgency (overdue, urgent, today, tomorrow, soon, week, future, none)")
	listCmd.Flags().Bool("pending", false, "show only pending tasks")
	listCmd.Flags().Bool("done", false, "show only completed tasks")
	listCmd.Flags().StringP("search", "s", "", "search task text (case-insensitive)")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	listCmd.MarkFlagsMutuallyExclusive("pending", "done")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	filter, err := listFilter(cmd, s.cfg.CategoryIDs())
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	doc, err := s.tasks.Load(s.user.ID)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	views := board.Views(board.List(doc.Tasks, board.ListOptions{Filter: filter, Limit: limit}, now), now)
	printWarnings(views)

	return outputTaskList(views, s)
}

func listFilter(cmd *cobra.Command, categories []string) (board.FilterOptions, error) {
	var filter board.FilterOptions

	cats, _ := cmd.Flags().GetStringSlice("category")
	for _, c := range cats {
		if err := task.ValidateCategory(c, categories); err != nil {
			return filter, err
		}
	}
	filter.Categories = cats

	priorities, _ := cmd.Flags().GetStringSlice("priority")
	for _, raw := range priorities {
		p, err := task.ValidatePriority(raw)
		if err != nil {
			return filter, err
		}
		filter.Priorities = append(filter.Priorities, p)
	}

	statuses, _ := cmd.Flags().GetStringSlice("status")
	for _, raw := range statuses {
		k, err := urgency.ParseKind(raw)
		if err != nil {
			return filter, clierr.New(clierr.InvalidInput, err.Error()).
				WithDetails(map[string]any{"status": raw})
		}
		filter.Urgency = append(filter.Urgency, k)
	}

	if pending, _ := cmd.Flags().GetBool("pending"); pending {
		v := false
		filter.Completed = &v
	}
	if done, _ := cmd.Flags().GetBool("done"); done {
		v := true
		filter.Completed = &v
	}

	filter.Search, _ = cmd.Flags().GetString("search")
	return filter, nil
}

func outputTaskList(views []board.TaskView, s *session) error {
	switch outputFormat() {
	case output.FormatJSON:
		if views == nil {
			views = []board.TaskView{}
		}
		return output.JSON(os.Stdout, views)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, views)
	default:
		output.TaskTable(os.Stdout, views, s.cfg)
	}
	return nil
}
