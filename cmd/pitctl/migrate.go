package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			defer e.close()

			return postgres.Migrate(cmd.Context(), e.pool, e.log)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			defer e.close()

			provider, db, err := postgres.NewMigrator(e.pool)
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := provider.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("goose status: %w", err)
			}
			for _, s := range statuses {
				applied := "pending"
				if !s.AppliedAt.IsZero() {
					applied = s.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(e.out, "%-8s %-40s %s\n", s.State, s.Source.Path, applied)
			}
			return nil
		},
	})

	return cmd
}
