package commit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// CreateFolderCheckpoint snapshots the folder at its latest commit. Unless
// force is set, nothing is created while the folder has fewer than
// CheckpointWindow commits since its latest checkpoint; a nil checkpoint is
// returned in that case.
func (s *Service) CreateFolderCheckpoint(ctx context.Context, folderID uuid.UUID, force bool) (*domain.FolderCheckpoint, error) {
	if _, err := s.folders.FindByID(ctx, folderID); err != nil {
		return nil, fmt.Errorf("find folder: %w", err)
	}

	latest, err := s.commits.FindLatestCommit(ctx, folderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("folder_id", "folder has no commits")
	}
	if err != nil {
		return nil, fmt.Errorf("find latest commit: %w", err)
	}

	var cp *domain.FolderCheckpoint
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		cp, err = s.createFolderCheckpoint(ctx, folderID, latest.ID, force)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cp, nil
}

// GetFolderCheckpoints returns up to limit checkpoints of the folder, newest
// first. Returns domain.ErrNotFound if the folder does not exist.
func (s *Service) GetFolderCheckpoints(ctx context.Context, folderID uuid.UUID, limit int) ([]domain.FolderCheckpoint, error) {
	if _, err := s.folders.FindByID(ctx, folderID); err != nil {
		return nil, err
	}
	return s.folderCheckpoints.FindByFolderID(ctx, folderID, limit)
}

// createFolderCheckpoint must run inside a transaction so the checkpoint and
// its resources are written together.
func (s *Service) createFolderCheckpoint(ctx context.Context, folderID, commitID uuid.UUID, force bool) (*domain.FolderCheckpoint, error) {
	if !force {
		latest, err := s.folderCheckpoints.FindLatestByFolderID(ctx, folderID)
		switch {
		case err == nil:
			since, err := s.commits.GetNumberOfCommitsSince(ctx, folderID, latest.FolderCommitID)
			if err != nil {
				return nil, fmt.Errorf("count commits since folder checkpoint: %w", err)
			}
			if since < s.cfg.CheckpointWindow {
				return nil, nil
			}
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("find latest folder checkpoint: %w", err)
		}
	}

	resources, err := s.resources.FindFolderResources(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list folder resources: %w", err)
	}

	cp, err := s.folderCheckpoints.Create(ctx, commitID)
	if err != nil {
		return nil, fmt.Errorf("create folder checkpoint: %w", err)
	}

	for i := range resources {
		resources[i].FolderCheckpointID = cp.ID
	}
	if err := s.folderCheckpoints.InsertResources(ctx, resources); err != nil {
		return nil, fmt.Errorf("insert folder checkpoint resources: %w", err)
	}

	s.log.InfoContext(ctx, "folder checkpoint created",
		slog.String("checkpoint_id", cp.ID.String()),
		slog.String("folder_id", folderID.String()),
		slog.Int("resources", len(resources)))

	return cp, nil
}
