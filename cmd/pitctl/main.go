// Command pitctl is the operator CLI: it applies migrations and triggers or
// inspects tree checkpoints without going through the HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/app"
	"github.com/heartmarshall/pitkeeper/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
}

// env is what a command needs after the config is loaded and the database
// connected. The caller must call close.
type env struct {
	cfg  *config.Config
	log  *slog.Logger
	pool *pgxpool.Pool
	out  io.Writer
}

func (e *env) close() { e.pool.Close() }

func connect(ctx context.Context, cmd *cobra.Command, flags *globalFlags) (*env, error) {
	path := flags.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, err
	}

	logger := app.NewLogger(cfg.Log)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &env{cfg: cfg, log: logger, pool: pool, out: cmd.OutOrStdout()}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:          "pitctl",
		Short:        "Operate point-in-time checkpoints",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml (default: $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		newMigrateCmd(flags),
		newCheckpointCmd(flags),
		newQueueCmd(flags),
		newLockCmd(flags),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printJSON(cmd.OutOrStdout(), app.Info())
		},
	}
}
