// Package foldercommit implements the commit store: the append-only,
// sequence-numbered commit log of an environment's folders.
package foldercommit

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// Repo provides commit log persistence backed by PostgreSQL.
// Every method reads through the transaction carried by ctx when present.
type Repo struct {
	db postgres.Querier
}

// New creates a new commit store.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const commitColumns = `id, commit_id, folder_id, env_id, actor_type, actor_metadata, message, created_at`

var commitColumnList = []string{
	"id", "commit_id", "folder_id", "env_id", "actor_type", "actor_metadata", "message", "created_at",
}

const findByFolderIDSQL = `
SELECT ` + commitColumns + `
FROM folder_commits
WHERE folder_id = $1
ORDER BY commit_id DESC`

const findByIDSQL = `
SELECT ` + commitColumns + `
FROM folder_commits
WHERE id = $1`

const findLatestCommitSQL = `
SELECT ` + commitColumns + `
FROM folder_commits
WHERE folder_id = $1
ORDER BY commit_id DESC
LIMIT 1`

const findLatestEnvCommitSQL = `
SELECT ` + commitColumns + `
FROM folder_commits
WHERE env_id = $1
ORDER BY commit_id DESC
LIMIT 1`

// The anchor's sequence is resolved in a sub-select; an unknown anchor
// yields NULL and therefore a count of zero.
const envCommitsSinceSQL = `
SELECT count(*)
FROM folder_commits
WHERE env_id = $1
  AND commit_id > (SELECT commit_id FROM folder_commits WHERE id = $2)`

const folderCommitsSinceSQL = `
SELECT count(*)
FROM folder_commits
WHERE folder_id = $1
  AND commit_id > (SELECT commit_id FROM folder_commits WHERE id = $2)`

// A version is live when a non-delete change recorded it and no delete
// change of the same folder, at the same or a later sequence, removed it.
const findFolderResourcesSQL = `
SELECT c.secret_version_id, c.folder_version_id
FROM folder_commit_changes c
JOIN folder_commits fc ON fc.id = c.folder_commit_id
WHERE fc.folder_id = $1
  AND c.change_type <> 'delete'
  AND NOT EXISTS (
      SELECT 1
      FROM folder_commit_changes d
      JOIN folder_commits dc ON dc.id = d.folder_commit_id
      WHERE dc.folder_id = $1
        AND d.change_type = 'delete'
        AND dc.commit_id >= fc.commit_id
        AND (d.secret_version_id = c.secret_version_id OR d.folder_version_id = c.folder_version_id))
GROUP BY c.secret_version_id, c.folder_version_id
ORDER BY min(fc.commit_id), c.secret_version_id, c.folder_version_id`

const createSQL = `
INSERT INTO folder_commits (folder_id, env_id, actor_type, actor_metadata, message)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + commitColumns

const findChangesByCommitIDSQL = `
SELECT id, folder_commit_id, change_type, is_update, secret_version_id, folder_version_id, created_at
FROM folder_commit_changes
WHERE folder_commit_id = $1
ORDER BY created_at, id`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// FindByFolderID returns the folder's commits, newest first.
// Returns an empty slice (not nil) when the folder has no commits.
func (r *Repo) FindByFolderID(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCommit, error) {
	var commits []domain.FolderCommit
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &commits, findByFolderIDSQL, folderID); err != nil {
		return nil, postgres.MapError(err, "foldercommit.FindByFolderID")
	}

	if commits == nil {
		commits = []domain.FolderCommit{}
	}

	return commits, nil
}

// FindByID returns a commit by primary key.
// Returns domain.ErrNotFound if the commit does not exist.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.FolderCommit, error) {
	return r.getOne(ctx, "foldercommit.FindByID", findByIDSQL, id)
}

// FindLatestCommit returns the folder's most recent commit.
// Returns domain.ErrNotFound if the folder has no commits.
func (r *Repo) FindLatestCommit(ctx context.Context, folderID uuid.UUID) (*domain.FolderCommit, error) {
	return r.getOne(ctx, "foldercommit.FindLatestCommit", findLatestCommitSQL, folderID)
}

// FindLatestEnvCommit returns the most recent commit anywhere in the environment.
// Returns domain.ErrNotFound if the environment has no commits.
func (r *Repo) FindLatestEnvCommit(ctx context.Context, envID uuid.UUID) (*domain.FolderCommit, error) {
	return r.getOne(ctx, "foldercommit.FindLatestEnvCommit", findLatestEnvCommitSQL, envID)
}

// GetEnvNumberOfCommitsSince counts the environment's commits whose sequence
// is greater than the sequence of commitID.
func (r *Repo) GetEnvNumberOfCommitsSince(ctx context.Context, envID, commitID uuid.UUID) (int, error) {
	return r.count(ctx, "foldercommit.GetEnvNumberOfCommitsSince", envCommitsSinceSQL, envID, commitID)
}

// GetNumberOfCommitsSince counts the folder's commits whose sequence is
// greater than the sequence of commitID.
func (r *Repo) GetNumberOfCommitsSince(ctx context.Context, folderID, commitID uuid.UUID) (int, error) {
	return r.count(ctx, "foldercommit.GetNumberOfCommitsSince", folderCommitsSinceSQL, folderID, commitID)
}

// FindFolderResources replays the folder's change log and returns the
// versions it currently holds, in the order they were first recorded. The
// rows carry no checkpoint id.
func (r *Repo) FindFolderResources(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCheckpointResource, error) {
	var rows []domain.FolderCheckpointResource
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, findFolderResourcesSQL, folderID); err != nil {
		return nil, postgres.MapError(err, "foldercommit.FindFolderResources")
	}

	if rows == nil {
		rows = []domain.FolderCheckpointResource{}
	}

	return rows, nil
}

// FindMultipleLatestCommits returns, for each folder that has commits, its
// most recent commit. Folders without commits are absent from the map.
func (r *Repo) FindMultipleLatestCommits(ctx context.Context, folderIDs []uuid.UUID) (map[uuid.UUID]domain.FolderCommit, error) {
	result := make(map[uuid.UUID]domain.FolderCommit, len(folderIDs))
	if len(folderIDs) == 0 {
		return result, nil
	}

	query := postgres.Builder().
		Select(commitColumnList...).
		Options("DISTINCT ON (folder_id)").
		From("folder_commits").
		Where(sq.Eq{"folder_id": folderIDs}).
		OrderBy("folder_id", "commit_id DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("foldercommit.FindMultipleLatestCommits: build query: %w", err)
	}

	var commits []domain.FolderCommit
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &commits, sql, args...); err != nil {
		return nil, postgres.MapError(err, "foldercommit.FindMultipleLatestCommits")
	}

	for _, c := range commits {
		result[c.FolderID] = c
	}

	return result, nil
}

// FindChangesByCommitID returns the changes recorded by a commit.
func (r *Repo) FindChangesByCommitID(ctx context.Context, commitID uuid.UUID) ([]domain.FolderCommitChange, error) {
	var changes []domain.FolderCommitChange
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &changes, findChangesByCommitIDSQL, commitID); err != nil {
		return nil, postgres.MapError(err, "foldercommit.FindChangesByCommitID")
	}

	if changes == nil {
		changes = []domain.FolderCommitChange{}
	}

	return changes, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create appends a commit to the log. ID, CommitID and CreatedAt are assigned
// by the database.
func (r *Repo) Create(ctx context.Context, c domain.FolderCommit) (*domain.FolderCommit, error) {
	metadata := c.ActorMetadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	var created domain.FolderCommit
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &created, createSQL,
		c.FolderID, c.EnvID, string(c.ActorType), metadata, c.Message,
	)
	if err != nil {
		return nil, postgres.MapError(err, "foldercommit.Create")
	}
	return &created, nil
}

// InsertChanges bulk-inserts commit changes in chunks of postgres.DefaultChunkSize.
func (r *Repo) InsertChanges(ctx context.Context, changes []domain.FolderCommitChange) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	for _, chunk := range postgres.Chunk(changes, postgres.DefaultChunkSize) {
		insert := postgres.Builder().
			Insert("folder_commit_changes").
			Columns("folder_commit_id", "change_type", "is_update", "secret_version_id", "folder_version_id")

		for _, c := range chunk {
			insert = insert.Values(c.FolderCommitID, string(c.ChangeType), c.IsUpdate, c.SecretVersionID, c.FolderVersionID)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("foldercommit.InsertChanges: build query: %w", err)
		}

		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "foldercommit.InsertChanges")
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (r *Repo) getOne(ctx context.Context, op, sql string, args ...any) (*domain.FolderCommit, error) {
	var c domain.FolderCommit
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &c, sql, args...); err != nil {
		return nil, postgres.MapError(err, op)
	}
	return &c, nil
}

func (r *Repo) count(ctx context.Context, op, sql string, args ...any) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, op)
	}
	return n, nil
}
