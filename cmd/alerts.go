package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/alert"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show deadline alerts",
	Long: `Shows the overdue, urgent and due-today alert buckets for the current user.
Each invocation is a fresh session, so no bucket is dismissed.

Use --watch to re-render whenever tasks change on disk. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runAlerts,
}

func init() {
	alertsCmd.Flags().BoolP("watch", "w", false, "live-update alerts on file changes")
	rootCmd.AddCommand(alertsCmd)
}

func runAlerts(cmd *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if err := renderAlerts(s); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); !watch {
		return nil
	}
	return watchAndRender(s, renderAlerts)
}

func renderAlerts(s *session) error {
	doc, err := s.tasks.Load(s.user.ID)
	if err != nil {
		return err
	}

	alerts := alert.NewSession().Aggregate(doc.Tasks, s.clock.Now())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, output.SummarizeAlerts(alerts))
	case output.FormatCompact:
		output.AlertsCompact(os.Stdout, alerts)
	default:
		output.AlertsTable(os.Stdout, alerts)
	}
	return nil
}
