package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yuru-sha/roguelike-sub000/internal/agent"
	"github.com/yuru-sha/roguelike-sub000/internal/engine"
	"github.com/yuru-sha/roguelike-sub000/pkg/logger"
)

var (
	simTicks    int
	simLoadSlot string
	simSaveSlot string
	simAutoSave bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let the headless bot play",
	Long: `Run a game with the headless bot for a number of ticks.
The game can start from a save slot and be written to a slot at the end.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simTicks, "ticks", 500, "maximum number of ticks to play")
	simulateCmd.Flags().StringVar(&simLoadSlot, "load", "", "start from this slot instead of a new game")
	simulateCmd.Flags().StringVar(&simSaveSlot, "save", "", "save the final state to this slot")
	simulateCmd.Flags().BoolVar(&simAutoSave, "autosave", false, "auto-save every AUTO_SAVE_INTERVAL ticks")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	needSaves := simLoadSlot != "" || simSaveSlot != "" || simAutoSave
	var g *engine.Game
	if !needSaves {
		created, err := engine.NewGame(cfg, logger.Log)
		if err != nil {
			return err
		}
		g = created
	} else {
		saves, err := openSaves(ctx)
		if err != nil {
			return err
		}
		defer saves.Close()

		if simLoadSlot != "" {
			slot, err := parseSlot(simLoadSlot)
			if err != nil {
				return err
			}
			res, err := saves.Load(ctx, slot)
			if err != nil {
				return err
			}
			if res.RecoveredFromBackup {
				logger.Log.WithField("backup", res.Backup).Warn("Loaded from backup")
			}
			if g, err = engine.Resume(cfg, res.State, logger.Log); err != nil {
				return err
			}
		} else if g, err = engine.NewGame(cfg, logger.Log); err != nil {
			return err
		}
		if simAutoSave {
			g.SetSaver(saves)
		}
		defer func() {
			if simSaveSlot == "" {
				return
			}
			slot, err := parseSlot(simSaveSlot)
			if err == nil {
				err = saves.Save(context.Background(), g.State(), slot)
			}
			if err != nil {
				logger.Log.WithError(err).Error("Final save failed")
				return
			}
			logger.Log.WithFields(logrus.Fields{"slot": simSaveSlot, "turn": g.Turn()}).Info("Game saved")
		}()
	}

	bot := agent.NewBot(logger.Log)
	stats, err := bot.Play(ctx, g, simTicks, func(res engine.TickResult) {
		for _, m := range res.Messages {
			logger.Log.WithFields(logrus.Fields{"turn": m.Turn, "kind": m.Kind}).Debug(m.Text)
		}
		if res.SaveErr != nil {
			logger.Log.WithError(res.SaveErr).Warn("Auto-save failed")
		}
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run:       %s\n", g.RunID())
	fmt.Fprintf(out, "seed:      %d\n", cfg.Seed)
	fmt.Fprintf(out, "ticks:     %d (rejected %d)\n", stats.Ticks, stats.Rejected)
	fmt.Fprintf(out, "depth:     %d (max %d)\n", g.Depth(), stats.MaxDepth)
	fmt.Fprintf(out, "died:      %t\n", stats.Died)
	fmt.Fprintf(out, "autosaves: %d\n", stats.Saved)
	return nil
}
