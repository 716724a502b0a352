// Package checkpoint builds tree checkpoints: per-environment snapshots that
// record, for every folder, the folder's latest commit. Builds run as
// background jobs serialized per environment by a distributed lock.
package checkpoint

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/metrics"
	"github.com/heartmarshall/pitkeeper/internal/queue"
)

const (
	// QueueName is the job queue carrying compaction jobs.
	QueueName = "folder-tree-checkpoint"
	// JobName names compaction jobs inside QueueName.
	JobName = "create-folder-tree-checkpoint"

	lockKeyPrefix = "folder-tree-checkpoint-"
)

// LockKey returns the keystore key guarding compaction of envID.
func LockKey(envID uuid.UUID) string {
	return lockKeyPrefix + envID.String()
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type commitRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error)
	FindLatestEnvCommit(ctx context.Context, envID uuid.UUID) (*domain.FolderCommit, error)
	GetEnvNumberOfCommitsSince(ctx context.Context, envID, commitID uuid.UUID) (int, error)
	FindMultipleLatestCommits(ctx context.Context, folderIDs []uuid.UUID) (map[uuid.UUID]domain.FolderCommit, error)
}

type treeCheckpointRepo interface {
	Create(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderTreeCheckpoint, error)
	FindLatestByEnvID(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, error)
}

type treeCheckpointResourceRepo interface {
	InsertMany(ctx context.Context, rows []domain.FolderTreeCheckpointResource) error
	FindByTreeCheckpointID(ctx context.Context, id uuid.UUID) ([]domain.FolderTreeCheckpointResource, error)
}

type folderRepo interface {
	FindByEnvID(ctx context.Context, envID uuid.UUID) ([]domain.SecretFolder, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type jobQueue interface {
	Queue(ctx context.Context, name, jobName string, payload any, opts queue.JobOptions) error
}

type workerRegistry interface {
	Start(name string, h queue.Handler)
}

// Lock is a held distributed lock.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker acquires distributed locks and force-deletes stale ones.
type Locker interface {
	AcquireLock(ctx context.Context, keys []string, ttl time.Duration) (Lock, error)
	DeleteItem(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config tunes compaction.
type Config struct {
	// Window is the number of commits since the last checkpoint that makes
	// a new one worth building.
	Window int
	// ShortLockTTL is the lock lease and wait budget for attempts 1-3.
	ShortLockTTL time.Duration
	// LongLockTTL is used from the fourth attempt on.
	LongLockTTL time.Duration
	// MaxLockRetries caps rescheduling after failed lock acquisition.
	MaxLockRetries int
	// JobAttempts and JobBackoff configure queue-level retry of failed builds.
	JobAttempts int
	JobBackoff  time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Window:         100,
		ShortLockTTL:   15 * time.Second,
		LongLockTTL:    60 * time.Second,
		MaxLockRetries: 10,
		JobAttempts:    3,
		JobBackoff:     5 * time.Second,
	}
}

// Service schedules and builds tree checkpoints.
type Service struct {
	log       *slog.Logger
	commits   commitRepo
	trees     treeCheckpointRepo
	resources treeCheckpointResourceRepo
	folders   folderRepo
	tx        txManager
	locker    Locker
	queue     jobQueue
	clock     clockwork.Clock
	metrics   *metrics.Collector
	cfg       Config

	// jitter returns a value in [0, 1).
	jitter func() float64
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Commits   commitRepo
	Trees     treeCheckpointRepo
	Resources treeCheckpointResourceRepo
	Folders   folderRepo
	Tx        txManager
	Locker    Locker
	Queue     jobQueue
	Clock     clockwork.Clock
	Metrics   *metrics.Collector
}

// NewService creates a new checkpoint service. Zero config fields take
// their DefaultConfig value.
func NewService(log *slog.Logger, deps Deps, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.ShortLockTTL <= 0 {
		cfg.ShortLockTTL = def.ShortLockTTL
	}
	if cfg.LongLockTTL <= 0 {
		cfg.LongLockTTL = def.LongLockTTL
	}
	if cfg.MaxLockRetries <= 0 {
		cfg.MaxLockRetries = def.MaxLockRetries
	}
	if cfg.JobAttempts <= 0 {
		cfg.JobAttempts = def.JobAttempts
	}
	if cfg.JobBackoff <= 0 {
		cfg.JobBackoff = def.JobBackoff
	}

	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Service{
		log:       log.With("service", "checkpoint"),
		commits:   deps.Commits,
		trees:     deps.Trees,
		resources: deps.Resources,
		folders:   deps.Folders,
		tx:        deps.Tx,
		locker:    deps.Locker,
		queue:     deps.Queue,
		clock:     clock,
		metrics:   deps.Metrics,
		cfg:       cfg,
		jitter:    rand.Float64,
	}
}

// Register attaches the compaction handler to the job queue workers.
func (s *Service) Register(w workerRegistry) {
	w.Start(QueueName, s.HandleJob)
}
