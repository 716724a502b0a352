// Package commit records folder commits and serves the commit history.
package commit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/service/checkpoint"
)

type commitRepo interface {
	Create(ctx context.Context, c domain.FolderCommit) (*domain.FolderCommit, error)
	InsertChanges(ctx context.Context, changes []domain.FolderCommitChange) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error)
	FindByFolderID(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCommit, error)
	FindChangesByCommitID(ctx context.Context, commitID uuid.UUID) ([]domain.FolderCommitChange, error)
	FindLatestCommit(ctx context.Context, folderID uuid.UUID) (*domain.FolderCommit, error)
	GetNumberOfCommitsSince(ctx context.Context, folderID, commitID uuid.UUID) (int, error)
}

type folderRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SecretFolder, error)
}

type folderCheckpointRepo interface {
	Create(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderCheckpoint, error)
	InsertResources(ctx context.Context, rows []domain.FolderCheckpointResource) error
	FindByFolderID(ctx context.Context, folderID uuid.UUID, limit int) ([]domain.FolderCheckpoint, error)
	FindLatestByFolderID(ctx context.Context, folderID uuid.UUID) (*domain.FolderCheckpoint, error)
	FindResources(ctx context.Context, checkpointID uuid.UUID) ([]domain.FolderCheckpointResource, error)
}

// resourceProvider lists the versions a folder holds at the moment of the
// call. Returned rows carry no checkpoint id.
type resourceProvider interface {
	FindFolderResources(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCheckpointResource, error)
}

type treeCheckpointRepo interface {
	FindLatestByEnvID(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, error)
}

type checkpointer interface {
	CreateFolderTreeCheckpoint(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (checkpoint.BuildResult, error)
	ScheduleTreeCheckpoint(ctx context.Context, envID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefaultCheckpointWindow is the number of folder commits after which a new
// folder checkpoint is taken.
const DefaultCheckpointWindow = 100

// Config tunes the commit service.
type Config struct {
	// CheckpointWindow is the number of commits since a folder's latest
	// checkpoint that triggers a new one.
	CheckpointWindow int
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Commits           commitRepo
	Folders           folderRepo
	FolderCheckpoints folderCheckpointRepo
	Resources         resourceProvider
	Trees             treeCheckpointRepo
	Checkpoints       checkpointer
	Tx                txManager
}

// Service provides folder commit operations.
type Service struct {
	commits           commitRepo
	folders           folderRepo
	folderCheckpoints folderCheckpointRepo
	resources         resourceProvider
	trees             treeCheckpointRepo
	checkpoints       checkpointer
	tx                txManager
	cfg               Config
	log               *slog.Logger
}

// NewService creates a new commit service. A non-positive CheckpointWindow
// becomes DefaultCheckpointWindow.
func NewService(log *slog.Logger, deps Deps, cfg Config) *Service {
	if cfg.CheckpointWindow <= 0 {
		cfg.CheckpointWindow = DefaultCheckpointWindow
	}

	return &Service{
		commits:           deps.Commits,
		folders:           deps.Folders,
		folderCheckpoints: deps.FolderCheckpoints,
		resources:         deps.Resources,
		trees:             deps.Trees,
		checkpoints:       deps.Checkpoints,
		tx:                deps.Tx,
		cfg:               cfg,
		log:               log.With("service", "commit"),
	}
}
