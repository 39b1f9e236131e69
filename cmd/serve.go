package cmd

import (
	"context"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/duewatch/internal/server"
	"github.com/twiced-technology-gmbh/duewatch/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serves ordered tasks and per-session alert buckets over HTTP.
Callers identify themselves with the X-User-Email header; alert dismissals are
tracked per X-Session-ID.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	clk, err := boardClock(cfg)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")

	e := server.New(server.Deps{
		Config: cfg,
		Users:  store.NewUserStore(cfg),
		Tasks:  store.NewTaskStore(cfg),
		Clock:  clk,
		Log:    log.StandardLogger(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{"addr": addr, "board": cfg.Dir()}).Info("serving duewatch API")
	return server.Run(ctx, e, addr)
}
