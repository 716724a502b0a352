package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pitkeeper/internal/app"
)

func parseEnvID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid environment id %q: %w", arg, err)
	}
	return id, nil
}

func newCheckpointCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Schedule, build and inspect tree checkpoints",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schedule <envID>",
		Short: "Enqueue a tree checkpoint compaction for the environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envID, err := parseEnvID(args[0])
			if err != nil {
				return err
			}

			e, err := connect(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			defer e.close()

			svc, err := app.NewServices(e.log, e.cfg, e.pool)
			if err != nil {
				return err
			}
			if err := svc.Checkpoint.ScheduleTreeCheckpoint(cmd.Context(), envID); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "scheduled tree checkpoint for %s\n", envID)
			return nil
		},
	})

	var commitArg string
	create := &cobra.Command{
		Use:   "create <envID>",
		Short: "Build a tree checkpoint now, ignoring the environment lock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envID, err := parseEnvID(args[0])
			if err != nil {
				return err
			}

			var anchor *uuid.UUID
			if commitArg != "" {
				id, err := uuid.Parse(commitArg)
				if err != nil {
					return fmt.Errorf("invalid commit id %q: %w", commitArg, err)
				}
				anchor = &id
			}

			e, err := connect(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			defer e.close()

			svc, err := app.NewServices(e.log, e.cfg, e.pool)
			if err != nil {
				return err
			}
			res, err := svc.Checkpoint.CreateFolderTreeCheckpoint(cmd.Context(), envID, anchor)
			if err != nil {
				return err
			}
			return printJSON(e.out, res)
		},
	}
	create.Flags().StringVar(&commitArg, "commit", "", "anchor commit id (default: latest commit of the environment)")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "latest <envID>",
		Short: "Print the newest tree checkpoint of the environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envID, err := parseEnvID(args[0])
			if err != nil {
				return err
			}

			e, err := connect(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			defer e.close()

			svc, err := app.NewServices(e.log, e.cfg, e.pool)
			if err != nil {
				return err
			}
			cp, rows, err := svc.Checkpoint.GetLatestTreeCheckpoint(cmd.Context(), envID)
			if err != nil {
				return err
			}
			return printJSON(e.out, map[string]any{"checkpoint": cp, "folders": rows})
		},
	})

	return cmd
}
