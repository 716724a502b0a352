package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pitkeeper/internal/app"
	"github.com/heartmarshall/pitkeeper/internal/service/checkpoint"
)

func newQueueCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect background jobs",
	}

	var name string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print job counts by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect(cmd.Context(), cmd, flags)
			if err != nil {
				return err
			}
			defer e.close()

			svc, err := app.NewServices(e.log, e.cfg, e.pool)
			if err != nil {
				return err
			}
			s, err := svc.Queue.Stats(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printJSON(e.out, s)
		},
	}
	stats.Flags().StringVar(&name, "queue", checkpoint.QueueName, "queue name")
	cmd.AddCommand(stats)

	return cmd
}
