package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [slot]",
	Short: "List save slots or show one slot",
	Long: `Without arguments, list every occupied slot.
With a slot ("auto" or a number), load it and print a summary with its backups.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		saves, err := openSaves(ctx)
		if err != nil {
			return err
		}
		defer saves.Close()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			list, err := saves.ListSaves(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(out, "no saves")
				return nil
			}
			for _, s := range list {
				fmt.Fprintf(out, "%-5s %8d bytes  %s  backups: %d\n",
					s.Name, s.Size, s.Modified.Format(time.RFC3339), s.Backups)
			}
			return nil
		}

		slot, err := parseSlot(args[0])
		if err != nil {
			return err
		}
		res, err := saves.Load(ctx, slot)
		if err != nil {
			return err
		}
		rec := res.Record
		fmt.Fprintf(out, "slot:      %s\n", args[0])
		fmt.Fprintf(out, "version:   %s (stored as %s)\n", rec.Version, res.FromVersion)
		if res.RecoveredFromBackup {
			fmt.Fprintf(out, "recovered: from backup %d\n", res.Backup)
		}
		fmt.Fprintf(out, "written:   %s by %q\n", time.Unix(rec.Timestamp, 0).Format(time.RFC3339), rec.Metadata.WrittenBy)
		fmt.Fprintf(out, "run:       %s\n", res.State.RunID)
		fmt.Fprintf(out, "depth:     %d\n", res.State.Depth)
		fmt.Fprintf(out, "turn:      %d\n", res.State.Turn)
		fmt.Fprintf(out, "map:       %dx%d\n", res.State.Grid.Width(), res.State.Grid.Height())
		fmt.Fprintf(out, "entities:  %d\n", res.State.Store.Len())

		backups, err := saves.ListBackups(ctx, slot)
		if err != nil {
			return err
		}
		for _, b := range backups {
			fmt.Fprintf(out, "backup %d:  %d bytes  %s\n", b.Number, b.Size, b.Modified.Format(time.RFC3339))
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore [slot] [backup]",
	Short: "Replace a slot with one of its backups",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errors.InvalidArgumentf("invalid backup number %q", args[1])
		}

		ctx := cmd.Context()
		saves, err := openSaves(ctx)
		if err != nil {
			return err
		}
		defer saves.Close()

		if err := saves.RestoreBackup(ctx, slot, n); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "slot %s restored from backup %d\n", args[0], n)
		return nil
	},
}

var repairCmd = &cobra.Command{
	Use:   "repair [slot]",
	Short: "Verify a slot and restore the newest intact backup if it is corrupt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := parseSlot(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		saves, err := openSaves(ctx)
		if err != nil {
			return err
		}
		defer saves.Close()

		n, err := saves.Repair(ctx, slot)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "slot %s is intact\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "slot %s repaired from backup %d\n", args[0], n)
		return nil
	},
}

var pruneOlderThan time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete backups older than --older-than",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		saves, err := openSaves(ctx)
		if err != nil {
			return err
		}
		defer saves.Close()

		removed, err := saves.PruneBackups(ctx, pruneOlderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d backups removed\n", removed)
		return nil
	},
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "age threshold")
}
