package commit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// CreateCommit appends a commit for the folder with its changes.
//
// In the same transaction the folder is checkpointed when it has no
// checkpoint yet or CheckpointWindow commits accumulated since the last one.
//
// The first commit on a root folder of an environment without any tree
// checkpoint also builds that environment's first tree checkpoint, in the
// same transaction. Once the commit is durable a compaction is scheduled for
// the environment; failing to schedule is logged and not returned.
func (s *Service) CreateCommit(ctx context.Context, input CreateCommitInput) (*domain.FolderCommit, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	folder, err := s.folders.FindByID(ctx, input.FolderID)
	if err != nil {
		return nil, fmt.Errorf("find folder: %w", err)
	}

	metadata := input.ActorMetadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	var created *domain.FolderCommit
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		c, err := s.commits.Create(ctx, domain.FolderCommit{
			FolderID:      folder.ID,
			EnvID:         folder.EnvID,
			ActorType:     input.ActorType,
			ActorMetadata: metadata,
			Message:       input.Message,
		})
		if err != nil {
			return fmt.Errorf("create commit: %w", err)
		}

		changes := make([]domain.FolderCommitChange, len(input.Changes))
		for i, ch := range input.Changes {
			changes[i] = domain.FolderCommitChange{
				FolderCommitID:  c.ID,
				ChangeType:      ch.Type,
				IsUpdate:        ch.IsUpdate,
				SecretVersionID: ch.SecretVersionID,
				FolderVersionID: ch.FolderVersionID,
			}
		}
		if err := s.commits.InsertChanges(ctx, changes); err != nil {
			return fmt.Errorf("insert commit changes: %w", err)
		}

		if _, err := s.createFolderCheckpoint(ctx, folder.ID, c.ID, false); err != nil {
			return err
		}

		if folder.IsRoot() {
			if err := s.ensureFirstTreeCheckpoint(ctx, c); err != nil {
				return err
			}
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "commit created",
		slog.String("commit_id", created.ID.String()),
		slog.Int64("seq", created.CommitID),
		slog.String("folder_id", folder.ID.String()),
		slog.Int("changes", len(input.Changes)))

	if err := s.checkpoints.ScheduleTreeCheckpoint(ctx, folder.EnvID); err != nil {
		s.log.ErrorContext(ctx, "schedule tree checkpoint after commit",
			slog.String("env_id", folder.EnvID.String()),
			slog.String("error", err.Error()))
	}

	return created, nil
}

// ensureFirstTreeCheckpoint does not lock the environment: concurrent first
// commits on root folders may each build a first checkpoint, and the next
// compaction supersedes the extras.
func (s *Service) ensureFirstTreeCheckpoint(ctx context.Context, c *domain.FolderCommit) error {
	_, err := s.trees.FindLatestByEnvID(ctx, c.EnvID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("find latest tree checkpoint: %w", err)
	}

	if _, err := s.checkpoints.CreateFolderTreeCheckpoint(ctx, c.EnvID, &c.ID); err != nil {
		return fmt.Errorf("create first tree checkpoint: %w", err)
	}
	return nil
}
