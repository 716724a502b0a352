// Package treecheckpoint stores whole-environment snapshot markers. The
// latest marker of an environment is a query (newest created_at), never a
// stored pointer.
package treecheckpoint

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// Repo provides tree checkpoint persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tree checkpoint store.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO folder_tree_checkpoints (folder_commit_id)
VALUES ($1)
RETURNING id, folder_commit_id, created_at`

const findByCommitIDSQL = `
SELECT id, folder_commit_id, created_at
FROM folder_tree_checkpoints
WHERE folder_commit_id = $1
ORDER BY created_at DESC
LIMIT 1`

const findLatestByEnvIDSQL = `
SELECT ftc.id, ftc.folder_commit_id, ftc.created_at
FROM folder_tree_checkpoints ftc
JOIN folder_commits fc ON fc.id = ftc.folder_commit_id
WHERE fc.env_id = $1
ORDER BY ftc.created_at DESC, fc.commit_id DESC
LIMIT 1`

const findNearestCheckpointSQL = `
SELECT ftc.id, ftc.folder_commit_id, ftc.created_at, fc.commit_id
FROM folder_tree_checkpoints ftc
JOIN folder_commits fc ON fc.id = ftc.folder_commit_id
WHERE fc.env_id = $1
  AND fc.commit_id <= $2
ORDER BY fc.commit_id DESC, ftc.created_at DESC
LIMIT 1`

// Create inserts a tree checkpoint anchored at folderCommitID.
func (r *Repo) Create(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderTreeCheckpoint, error) {
	var cp domain.FolderTreeCheckpoint
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &cp, createSQL, folderCommitID); err != nil {
		return nil, postgres.MapError(err, "treecheckpoint.Create")
	}
	return &cp, nil
}

// FindByCommitID returns the checkpoint anchored at folderCommitID.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) FindByCommitID(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderTreeCheckpoint, error) {
	var cp domain.FolderTreeCheckpoint
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &cp, findByCommitIDSQL, folderCommitID); err != nil {
		return nil, postgres.MapError(err, "treecheckpoint.FindByCommitID")
	}
	return &cp, nil
}

// FindLatestByEnvID returns the environment's most recently created checkpoint.
// Returns domain.ErrNotFound if the environment has none.
func (r *Repo) FindLatestByEnvID(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, error) {
	var cp domain.FolderTreeCheckpoint
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &cp, findLatestByEnvIDSQL, envID); err != nil {
		return nil, postgres.MapError(err, "treecheckpoint.FindLatestByEnvID")
	}
	return &cp, nil
}

// FindNearestCheckpoint returns the checkpoint to start replay from for a
// target commit sequence: the one with the greatest anchor sequence that is
// not after commitSeq. Returns domain.ErrNotFound if there is none.
func (r *Repo) FindNearestCheckpoint(ctx context.Context, commitSeq int64, envID uuid.UUID) (*domain.FolderTreeCheckpointWithCommit, error) {
	var cp domain.FolderTreeCheckpointWithCommit
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &cp, findNearestCheckpointSQL, envID, commitSeq); err != nil {
		return nil, postgres.MapError(err, "treecheckpoint.FindNearestCheckpoint")
	}
	return &cp, nil
}
