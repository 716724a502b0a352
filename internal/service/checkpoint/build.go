package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/metrics"
)

// BuildResult describes what a build did.
type BuildResult struct {
	// Outcome is one of metrics.OutcomeCreated, OutcomeSkippedFresh or
	// OutcomeSkippedNoCommit.
	Outcome    string
	Checkpoint *domain.FolderTreeCheckpoint
	Resources  []domain.FolderTreeCheckpointResource
}

// CreateFolderTreeCheckpoint builds a tree checkpoint for envID right away,
// without the environment lock. It joins the transaction carried by ctx when
// there is one. folderCommitID anchors the checkpoint; nil means the
// environment's latest commit.
//
// The checkpoint gets one resource row per non-reserved folder of the
// environment that has at least one commit, pointing at that folder's latest
// commit. Folders without commits get no row.
func (s *Service) CreateFolderTreeCheckpoint(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (BuildResult, error) {
	res, err := s.buildInTx(ctx, envID, folderCommitID)
	if err != nil {
		s.metrics.Compaction(metrics.OutcomeFailed)
		return BuildResult{}, fmt.Errorf("create tree checkpoint for env %s: %w", envID, err)
	}
	s.metrics.Compaction(res.Outcome)
	return res, nil
}

func (s *Service) buildInTx(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (BuildResult, error) {
	var res BuildResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.build(ctx, envID, folderCommitID)
		return err
	})
	return res, err
}

// build writes the checkpoint marker and its per-folder rows. It must run
// inside a transaction so the checkpoint is never observed half-written.
func (s *Service) build(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (BuildResult, error) {
	log := s.log.With(slog.String("env_id", envID.String()))

	target, err := s.resolveTarget(ctx, envID, folderCommitID)
	if errors.Is(err, domain.ErrNotFound) && folderCommitID == nil {
		log.InfoContext(ctx, "no commits to checkpoint")
		return BuildResult{Outcome: metrics.OutcomeSkippedNoCommit}, nil
	}
	if err != nil {
		return BuildResult{}, err
	}

	latest, err := s.trees.FindLatestByEnvID(ctx, envID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		latest = nil
	case err != nil:
		return BuildResult{}, fmt.Errorf("find latest tree checkpoint: %w", err)
	}

	if latest != nil {
		since, err := s.commits.GetEnvNumberOfCommitsSince(ctx, envID, latest.FolderCommitID)
		if err != nil {
			return BuildResult{}, fmt.Errorf("count commits since checkpoint: %w", err)
		}
		if since < s.cfg.Window {
			log.DebugContext(ctx, "tree checkpoint still fresh",
				slog.Int("commits_since", since), slog.Int("window", s.cfg.Window))
			return BuildResult{Outcome: metrics.OutcomeSkippedFresh, Checkpoint: latest}, nil
		}
	}

	folders, err := s.folders.FindByEnvID(ctx, envID)
	if err != nil {
		return BuildResult{}, fmt.Errorf("list folders: %w", err)
	}

	// Sorting before dropping reserved folders keeps their children at
	// their real depth.
	sorted := SortFoldersByHierarchy(folders)
	ids := make([]uuid.UUID, 0, len(sorted))
	for _, f := range sorted {
		if !f.IsReserved {
			ids = append(ids, f.ID)
		}
	}

	latestCommits, err := s.commits.FindMultipleLatestCommits(ctx, ids)
	if err != nil {
		return BuildResult{}, fmt.Errorf("find latest folder commits: %w", err)
	}

	cp, err := s.trees.Create(ctx, target.ID)
	if err != nil {
		return BuildResult{}, fmt.Errorf("create tree checkpoint: %w", err)
	}

	rows := make([]domain.FolderTreeCheckpointResource, 0, len(latestCommits))
	for _, id := range ids {
		commit, ok := latestCommits[id]
		if !ok {
			continue
		}
		rows = append(rows, domain.FolderTreeCheckpointResource{
			FolderTreeCheckpointID: cp.ID,
			FolderID:               id,
			FolderCommitID:         commit.ID,
			CommitID:               commit.CommitID,
		})
	}

	if err := s.resources.InsertMany(ctx, rows); err != nil {
		return BuildResult{}, fmt.Errorf("insert tree checkpoint resources: %w", err)
	}

	log.InfoContext(ctx, "tree checkpoint created",
		slog.String("checkpoint_id", cp.ID.String()),
		slog.Int64("commit_id", target.CommitID),
		slog.Int("folders", len(rows)))

	return BuildResult{Outcome: metrics.OutcomeCreated, Checkpoint: cp, Resources: rows}, nil
}

// resolveTarget returns the anchor commit: folderCommitID when given (it must
// belong to envID), else the environment's latest commit.
func (s *Service) resolveTarget(ctx context.Context, envID uuid.UUID, folderCommitID *uuid.UUID) (*domain.FolderCommit, error) {
	if folderCommitID == nil {
		commit, err := s.commits.FindLatestEnvCommit(ctx, envID)
		if err != nil {
			return nil, fmt.Errorf("find latest env commit: %w", err)
		}
		return commit, nil
	}

	commit, err := s.commits.FindByID(ctx, *folderCommitID)
	if err != nil {
		return nil, fmt.Errorf("find anchor commit: %w", err)
	}
	if commit.EnvID != envID {
		return nil, domain.NewValidationError("folder_commit_id", "commit belongs to another environment")
	}
	return commit, nil
}

// GetLatestTreeCheckpoint returns the environment's most recently created
// tree checkpoint with its per-folder rows.
// Returns domain.ErrNotFound if the environment has none.
func (s *Service) GetLatestTreeCheckpoint(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, []domain.FolderTreeCheckpointResource, error) {
	cp, err := s.trees.FindLatestByEnvID(ctx, envID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.resources.FindByTreeCheckpointID(ctx, cp.ID)
	if err != nil {
		return nil, nil, err
	}
	return cp, rows, nil
}
