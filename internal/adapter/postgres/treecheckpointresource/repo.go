// Package treecheckpointresource stores the per-folder rows of a tree checkpoint.
package treecheckpointresource

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// Repo provides tree checkpoint resource persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tree checkpoint resource store.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const findByTreeCheckpointIDSQL = `
SELECT r.id, r.folder_tree_checkpoint_id, r.folder_id, r.folder_commit_id, r.created_at, fc.commit_id
FROM folder_tree_checkpoint_resources r
JOIN folder_commits fc ON fc.id = r.folder_commit_id
WHERE r.folder_tree_checkpoint_id = $1
ORDER BY fc.commit_id, r.folder_id`

// InsertMany bulk-inserts resource rows. Callers run it in the same
// transaction as the parent checkpoint's Create.
func (r *Repo) InsertMany(ctx context.Context, rows []domain.FolderTreeCheckpointResource) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	for _, chunk := range postgres.Chunk(rows, postgres.DefaultChunkSize) {
		insert := postgres.Builder().
			Insert("folder_tree_checkpoint_resources").
			Columns("folder_tree_checkpoint_id", "folder_id", "folder_commit_id")

		for _, row := range chunk {
			insert = insert.Values(row.FolderTreeCheckpointID, row.FolderID, row.FolderCommitID)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("treecheckpointresource.InsertMany: build query: %w", err)
		}

		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "treecheckpointresource.InsertMany")
		}
	}

	return nil
}

// FindByTreeCheckpointID returns the checkpoint's rows, each annotated with
// the sequence of the commit it captured.
func (r *Repo) FindByTreeCheckpointID(ctx context.Context, id uuid.UUID) ([]domain.FolderTreeCheckpointResource, error) {
	var rows []domain.FolderTreeCheckpointResource
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, findByTreeCheckpointIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "treecheckpointresource.FindByTreeCheckpointID")
	}

	if rows == nil {
		rows = []domain.FolderTreeCheckpointResource{}
	}

	return rows, nil
}
