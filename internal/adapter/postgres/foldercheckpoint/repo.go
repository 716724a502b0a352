// Package foldercheckpoint stores single-folder snapshots used to replay a
// folder's log from a recent point instead of from its first commit.
package foldercheckpoint

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// Repo provides folder checkpoint persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new folder checkpoint store.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const createSQL = `
INSERT INTO folder_checkpoints (folder_commit_id)
VALUES ($1)
RETURNING id, folder_commit_id, created_at`

const findByFolderIDSQL = `
SELECT fcp.id, fcp.folder_commit_id, fcp.created_at
FROM folder_checkpoints fcp
JOIN folder_commits fc ON fc.id = fcp.folder_commit_id
WHERE fc.folder_id = $1
ORDER BY fcp.created_at DESC
LIMIT $2`

const findResourcesSQL = `
SELECT id, folder_checkpoint_id, secret_version_id, folder_version_id, created_at
FROM folder_checkpoint_resources
WHERE folder_checkpoint_id = $1
ORDER BY created_at, id`

// Create inserts a folder checkpoint anchored at folderCommitID.
func (r *Repo) Create(ctx context.Context, folderCommitID uuid.UUID) (*domain.FolderCheckpoint, error) {
	var cp domain.FolderCheckpoint
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &cp, createSQL, folderCommitID); err != nil {
		return nil, postgres.MapError(err, "foldercheckpoint.Create")
	}
	return &cp, nil
}

// InsertResources bulk-inserts the resources captured by a checkpoint.
func (r *Repo) InsertResources(ctx context.Context, rows []domain.FolderCheckpointResource) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	for _, chunk := range postgres.Chunk(rows, postgres.DefaultChunkSize) {
		insert := postgres.Builder().
			Insert("folder_checkpoint_resources").
			Columns("folder_checkpoint_id", "secret_version_id", "folder_version_id")

		for _, row := range chunk {
			insert = insert.Values(row.FolderCheckpointID, row.SecretVersionID, row.FolderVersionID)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("foldercheckpoint.InsertResources: build query: %w", err)
		}

		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "foldercheckpoint.InsertResources")
		}
	}

	return nil
}

// FindByFolderID returns up to limit checkpoints of a folder, newest first.
func (r *Repo) FindByFolderID(ctx context.Context, folderID uuid.UUID, limit int) ([]domain.FolderCheckpoint, error) {
	if limit <= 0 {
		limit = 50
	}

	var cps []domain.FolderCheckpoint
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &cps, findByFolderIDSQL, folderID, limit); err != nil {
		return nil, postgres.MapError(err, "foldercheckpoint.FindByFolderID")
	}

	if cps == nil {
		cps = []domain.FolderCheckpoint{}
	}

	return cps, nil
}

// FindLatestByFolderID returns the folder's most recent checkpoint.
// Returns domain.ErrNotFound if the folder has none.
func (r *Repo) FindLatestByFolderID(ctx context.Context, folderID uuid.UUID) (*domain.FolderCheckpoint, error) {
	var cp domain.FolderCheckpoint
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &cp, findByFolderIDSQL, folderID, 1); err != nil {
		return nil, postgres.MapError(err, "foldercheckpoint.FindLatestByFolderID")
	}
	return &cp, nil
}

// FindResources returns the resources captured by a checkpoint.
func (r *Repo) FindResources(ctx context.Context, checkpointID uuid.UUID) ([]domain.FolderCheckpointResource, error) {
	var rows []domain.FolderCheckpointResource
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, findResourcesSQL, checkpointID); err != nil {
		return nil, postgres.MapError(err, "foldercheckpoint.FindResources")
	}

	if rows == nil {
		rows = []domain.FolderCheckpointResource{}
	}

	return rows, nil
}
