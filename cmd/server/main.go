// Package main — точка входа: сервер, безголовая симуляция и утилиты сохранений.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/internal/errors"
	"github.com/yuru-sha/roguelike-sub000/internal/infrastructure/storage"
	"github.com/yuru-sha/roguelike-sub000/internal/version"
	"github.com/yuru-sha/roguelike-sub000/pkg/logger"
)

var (
	cfg  engine.Config
	seed int64
)

var rootCmd = &cobra.Command{
	Use:           "dungeon",
	Short:         "Turn-based dungeon simulation",
	Long:          `dungeon serves the simulation over websocket, plays it headless with a bot and manages save slots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()

		loaded, err := engine.LoadConfig()
		if err != nil {
			return err
		}
		if seed != 0 {
			loaded.Seed = seed
		}
		cfg = loaded
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "world seed (0: SEED env or current time)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(versionCmd)
}

// openSaves открывает хранилище по конфигурации.
func openSaves(ctx context.Context) (*storage.Manager, error) {
	return storage.Open(ctx, cfg.StorageConfig(version.String()), logger.Log)
}

// parseSlot принимает номер слота или "auto".
func parseSlot(s string) (int, error) {
	slot, ok := storage.ParseSlotName(s)
	if !ok {
		return 0, errors.InvalidArgumentf("invalid slot %q: want a number >= 0 or \"auto\"", s)
	}
	return slot, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}
