package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pitkeeper/internal/app"
	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/service/checkpoint"
)

func newLockCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock",
		Short: "Inspect or break the compaction lock of an environment",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show <envID>",
			Short: "Print the token holding the compaction lock",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withLock(cmd, flags, args[0], func(svc *app.Services, e *env, key string) error {
					token, err := svc.Locks.GetItem(cmd.Context(), key)
					if errors.Is(err, domain.ErrNotFound) {
						return printJSON(e.out, map[string]any{"key": key, "held": false})
					}
					if err != nil {
						return err
					}
					return printJSON(e.out, map[string]any{"key": key, "held": true, "token": token})
				})
			},
		},
		&cobra.Command{
			Use:   "release <envID>",
			Short: "Force-release the compaction lock",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withLock(cmd, flags, args[0], func(svc *app.Services, e *env, key string) error {
					if err := svc.Locks.DeleteItem(cmd.Context(), key); err != nil {
						return err
					}
					e.log.Info("lock released", "key", key)
					return nil
				})
			},
		},
	)

	return cmd
}

func withLock(cmd *cobra.Command, flags *globalFlags, rawEnvID string, fn func(*app.Services, *env, string) error) error {
	envID, err := parseEnvID(rawEnvID)
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
	return fn(svc, e, checkpoint.LockKey(envID))
}
