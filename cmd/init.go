package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/clierr"
	"github.com/twiced-technology-gmbh/duewatch/internal/config"
	"github.com/twiced-technology-gmbh/duewatch/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new board",
	Long:  `Creates a board directory with config.yml and a tasks/ subdirectory.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (defaults to current directory name)")
	initCmd.Flags().String("location", "", "IANA time zone deadlines are resolved in (default Local)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		dir = config.DefaultDir
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	// Check if already initialized.
	if _, err := os.Stat(filepath.Join(absDir, config.ConfigFileName)); err == nil {
		return clierr.Newf(clierr.BoardAlreadyExists, "board already initialized in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		name = filepath.Base(cwd)
	}

	cfg, err := config.Init(absDir, name)
	if err != nil {
		return err
	}

	if loc, _ := cmd.Flags().GetString("location"); loc != "" {
		cfg.LocationName = loc
		if err := cfg.Validate(); err != nil {
			return clierr.New(clierr.InvalidInput, err.Error())
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status":     "initialized",
			"dir":        absDir,
			"name":       name,
			"config":     cfg.ConfigPath(),
			"tasks":      cfg.TasksPath(),
			"location":   cfg.LocationName,
			"categories": strings.Join(cfg.CategoryIDs(), ","),
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", name, absDir)
	output.Messagef(os.Stdout, "  Config:     %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "  Tasks:      %s", cfg.TasksPath())
	output.Messagef(os.Stdout, "  Categories: %s", strings.Join(cfg.CategoryIDs(), ", "))
	output.Messagef(os.Stdout, "  Hint:       Register yourself with: duewatch user add EMAIL --name NAME")
	return nil
}
