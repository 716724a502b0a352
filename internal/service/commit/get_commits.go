package commit

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// GetCommitByID returns a single commit.
func (s *Service) GetCommitByID(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error) {
	return s.commits.FindByID(ctx, id)
}

// GetCommitsByFolderID returns the folder's commits, newest first.
// Returns domain.ErrNotFound if the folder does not exist.
func (s *Service) GetCommitsByFolderID(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCommit, error) {
	if _, err := s.folders.FindByID(ctx, folderID); err != nil {
		return nil, err
	}
	return s.commits.FindByFolderID(ctx, folderID)
}

// GetCommitChanges returns the changes recorded by a commit.
func (s *Service) GetCommitChanges(ctx context.Context, commitID uuid.UUID) ([]domain.FolderCommitChange, error) {
	if _, err := s.commits.FindByID(ctx, commitID); err != nil {
		return nil, err
	}
	return s.commits.FindChangesByCommitID(ctx, commitID)
}

// GetLatestFolderCheckpoint returns the folder's newest checkpoint and the
// resources it captured.
func (s *Service) GetLatestFolderCheckpoint(ctx context.Context, folderID uuid.UUID) (*domain.FolderCheckpoint, []domain.FolderCheckpointResource, error) {
	cp, err := s.folderCheckpoints.FindLatestByFolderID(ctx, folderID)
	if err != nil {
		return nil, nil, err
	}

	resources, err := s.folderCheckpoints.FindResources(ctx, cp.ID)
	if err != nil {
		return nil, nil, err
	}
	return cp, resources, nil
}
