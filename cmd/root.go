// Package cmd implements the duewatch CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/duewatch/internal/board"
	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/clock"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
)

// version is set at build time via ldflags.
var version = "dev"

// envUser names the current user when --user is not given.
const envUser = "DUEWATCH_USER"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagUser    string
	flagNoColor bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "duewatch",
	Short: "Deadline-aware personal task board",
	Long: `duewatch keeps a personal task list per user and ranks it by how close
each deadline is. Run duewatch without a command to open the live board.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to board directory")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "email of the current user (env "+envUser+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
}

// flagAliases maps alternative spellings to canonical flag names.
var flagAliases = map[string]string{
	"due":      "date",
	"due-date": "date",
	"due-time": "time",
	"at":       "time",
}

// normalizeFlag accepts underscores in flag names (--no_color, --clear_deadline)
// and resolves flagAliases.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); (err == nil && dbg) || flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError: exit with its code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	if outputFormat() == output.FormatJSON {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown errors are reported as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/duewatch.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", config.DefaultDir), nil
}

// resolveDir returns the absolute path to the board directory.
// Falls back to ~/.config/duewatch if no board is found in the current directory tree.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	return defaultHomeDir()
}

// loadConfig finds and loads the board config.
// If the resolved directory is ~/.config/duewatch and it doesn't exist yet,
// it is auto-created with the default categories.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}

	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, clierr.Newf(clierr.BoardNotFound, "no board in %s (run 'duewatch init' to create one)", dir).
			WithDetails(map[string]any{"dir": dir})
	}
	return config.Init(homeDir, config.DefaultDir)
}

// boardClock returns the wall clock in the board's configured location.
func boardClock(cfg *config.Config) (clock.Clock, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, clierr.New(clierr.InvalidInput, err.Error())
	}
	return clock.System(loc), nil
}

// currentEmail returns the email selected by --user, the environment or the
// board default, in that order.
func currentEmail(cfg *config.Config) string {
	if flagUser != "" {
		return flagUser
	}
	if v := os.Getenv(envUser); v != "" {
		return v
	}
	return cfg.Defaults.User
}

// currentUser resolves the current user through the registry.
func currentUser(cfg *config.Config) (*store.User, error) {
	email := strings.TrimSpace(currentEmail(cfg))
	if email == "" {
		return nil, clierr.New(clierr.UserRequired,
			"no user selected (pass --user, set "+envUser+" or run 'duewatch config set defaults.user EMAIL')")
	}
	return store.NewUserStore(cfg).Get(email)
}

// session bundles what most task commands need.
type session struct {
	cfg   *config.Config
	user  *store.User
	tasks *store.TaskStore
	clock clock.Clock
}

// openSession loads the config, the current user and the board clock.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	user, err := currentUser(cfg)
	if err != nil {
		return nil, err
	}
	clk, err := boardClock(cfg)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, user: user, tasks: store.NewTaskStore(cfg), clock: clk}, nil
}

// update runs fn on the user's document under the board lock.
func (s *session) update(fn func(*store.Document) error) error {
	return s.tasks.Update(s.user.ID, fn)
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func (s *session) logActivity(action string, taskID int, detail string) {
	board.LogMutation(s.cfg.Dir(), action, s.user.ID, taskID, detail)
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes classification warnings to stderr.
func printWarnings(views []board.TaskView) {
	for _, v := range views {
		if v.Warning != "" {
			fmt.Fprintf(os.Stderr, "Warning: task #%d: %s\n", v.ID, v.Warning)
		}
	}
}

// parseIDs splits a comma-separated ID string into deduplicated int IDs.
func parseIDs(arg string) ([]int, error) {
	return board.ParseIDs(arg)
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []int, fn func(int) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: task #%d: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
