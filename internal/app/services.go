package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/folder"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/foldercheckpoint"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/foldercommit"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/jobqueue"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/keystore"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/treecheckpoint"
	"github.com/heartmarshall/pitkeeper/internal/adapter/postgres/treecheckpointresource"
	"github.com/heartmarshall/pitkeeper/internal/config"
	"github.com/heartmarshall/pitkeeper/internal/metrics"
	"github.com/heartmarshall/pitkeeper/internal/queue"
	"github.com/heartmarshall/pitkeeper/internal/service/checkpoint"
	"github.com/heartmarshall/pitkeeper/internal/service/commit"
)

// Services is the wired service layer shared by the server and pitctl.
type Services struct {
	Queue      *queue.Service
	Checkpoint *checkpoint.Service
	Commit     *commit.Service
	Locks      *keystore.Store
	Metrics    *metrics.Collector
	Registry   *prometheus.Registry
}

// NewServices wires the stores over pool into the services. The compaction
// handler is registered on the queue, which still has to be Run to process
// jobs.
func NewServices(log *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) (*Services, error) {
	clock := clockwork.NewRealClock()

	m := metrics.NewCollector()
	registry := prometheus.NewRegistry()
	if err := registry.Register(m); err != nil {
		return nil, err
	}

	commits := foldercommit.New(pool)
	folders := folder.New(pool)
	trees := treecheckpoint.New(pool)
	tx := postgres.NewTxManager(pool)
	locks := keystore.New(pool, keystore.WithPollInterval(cfg.Lock.PollInitial, cfg.Lock.PollMax))

	jobs := queue.NewService(log, jobqueue.New(pool), clock, queue.Config{
		PollInterval: cfg.Queue.PollInterval,
		Concurrency:  cfg.Queue.Concurrency,
		BatchSize:    cfg.Queue.BatchSize,
		StaleAfter:   cfg.Queue.StaleAfter,
	}, m)

	checkpoints := checkpoint.NewService(log, checkpoint.Deps{
		Commits:   commits,
		Trees:     trees,
		Resources: treecheckpointresource.New(pool),
		Folders:   folders,
		Tx:        tx,
		Locker:    keystoreLocker{store: locks},
		Queue:     jobs,
		Clock:     clock,
		Metrics:   m,
	}, checkpoint.Config{
		Window:         cfg.PIT.TreeCheckpointWindow,
		ShortLockTTL:   cfg.Lock.ShortTTL,
		LongLockTTL:    cfg.Lock.LongTTL,
		MaxLockRetries: cfg.PIT.MaxLockRetries,
		JobAttempts:    cfg.Queue.JobAttempts,
		JobBackoff:     cfg.Queue.JobBackoff,
	})
	checkpoints.Register(jobs)

	commitSvc := commit.NewService(log, commit.Deps{
		Commits:           commits,
		Folders:           folders,
		FolderCheckpoints: foldercheckpoint.New(pool),
		Resources:         commits,
		Trees:             trees,
		Checkpoints:       checkpoints,
		Tx:                tx,
	}, commit.Config{CheckpointWindow: cfg.PIT.CheckpointWindow})

	return &Services{
		Queue:      jobs,
		Checkpoint: checkpoints,
		Commit:     commitSvc,
		Locks:      locks,
		Metrics:    m,
		Registry:   registry,
	}, nil
}
