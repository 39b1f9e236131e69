package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/output"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the user registry",
}

var userAddCmd = &cobra.Command{
	Use:   "add EMAIL",
	Short: "Register a user",
	Long: `Registers a user by email. Each user has a private task list.
Use --default to make the new user the board's default.`,
	Args: cobra.ExactArgs(1),
	RunE: runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered users",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

func init() {
	userAddCmd.Flags().String("name", "", "full name")
	userAddCmd.Flags().Bool("default", false, "make this user the board default")
	userCmd.AddCommand(userAddCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	u, err := store.NewUserStore(cfg).Register(args[0], name, "", time.Now())
	if err != nil {
		return err
	}

	if makeDefault, _ := cmd.Flags().GetBool("default"); makeDefault || cfg.Defaults.User == "" {
		cfg.Defaults.User = u.Email
		if err := cfg.Save(); err != nil {
			return err
		}
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, u)
	}
	output.Messagef(os.Stdout, "Registered %s (%s)", u.Email, u.ID)
	if cfg.Defaults.User == u.Email {
		output.Messagef(os.Stdout, "  Default user for this board")
	}
	return nil
}

func runUserList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	users, err := store.NewUserStore(cfg).List()
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, users)
	case output.FormatCompact:
		output.UserCompact(os.Stdout, users)
	default:
		output.UserTable(os.Stdout, users)
	}
	return nil
}
