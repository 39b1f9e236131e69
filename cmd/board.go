package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
	"github.com/twiced-technology-gmbh/duewatch/internal/watcher"
)

var flagWatch bool

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show board summary",
	Long: `Displays a summary of the current user's board: total, completed, pending,
overdue and due-today counts, and progress per category.

Use --watch to keep the display live-updating. The board re-renders automatically
whenever task files change on disk. Press Ctrl+C to stop.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the board on file changes")
}

func runBoard(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}

	if err := renderBoard(s); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}

	return watchAndRender(s, renderBoard)
}

func renderBoard(s *session) error {
	doc, err := s.tasks.Load(s.user.ID)
	if err != nil {
		return err
	}

	summary := board.Summary(s.cfg, doc.Tasks, s.clock.Now())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, summary)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, summary)
	default:
		output.OverviewTable(os.Stdout, summary)
	}
	return nil
}

// watchAndRender re-runs render whenever the board changes on disk, until
// interrupted. The config is reloaded on each change.
func watchAndRender(s *session, render func(*session) error) error {
	watchPaths := []string{s.cfg.TasksPath(), s.cfg.Dir()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watcher.New(watchPaths, func() {
		clearScreen()
		fresh := *s
		freshCfg, loadErr := config.Load(s.cfg.Dir())
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading config: %v\n", loadErr)
		} else {
			fresh.cfg = freshCfg
			fresh.tasks = store.NewTaskStore(freshCfg)
		}
		if renderErr := render(&fresh); renderErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering: %v\n", renderErr)
		}
	}, board.LogFileName)
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
