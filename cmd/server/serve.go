package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yuru-sha/roguelike-sub000/internal/server"
	"github.com/yuru-sha/roguelike-sub000/internal/version"
	"github.com/yuru-sha/roguelike-sub000/pkg/logger"
)

var (
	port     string
	noSaving bool
	cheatsOn bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket server",
	Long:  `Start the HTTP server: /ws plays one game per connection, /health and /version report status.`,
	RunE:  runServe,
}

func init() {
	defaultPort := os.Getenv("CD_PORT")
	if defaultPort == "" {
		defaultPort = "8080"
	}
	serveCmd.Flags().StringVar(&port, "port", defaultPort, "HTTP port")
	serveCmd.Flags().BoolVar(&noSaving, "no-saves", false, "disable SAVE/LOAD and auto-save")
	serveCmd.Flags().BoolVar(&cheatsOn, "cheats", false, "enable ADMIN_* commands (also ENABLE_CHEATS)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cheatsOn {
		cfg.Cheats = true
	}
	logger.Log.Info(version.String())
	logger.Log.WithField("seed", cfg.Seed).Info("Starting dungeon server")

	var saves server.SaveStore
	if !noSaving {
		m, err := openSaves(ctx)
		if err != nil {
			return err
		}
		defer m.Close()
		saves = m
	}

	srv := server.New(cfg, saves, logger.Log)
	if err := srv.Run(ctx, ":"+port); err != nil {
		return err
	}
	logger.Log.Info("Done.")
	return nil
}
