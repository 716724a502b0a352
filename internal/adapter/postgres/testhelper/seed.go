package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedFolder inserts a non-reserved folder into envID under parentID (nil for a root).
func SeedFolder(t *testing.T, pool *pgxpool.Pool, envID uuid.UUID, parentID *uuid.UUID) domain.SecretFolder {
	t.Helper()
	return seedFolder(t, pool, envID, parentID, false)
}

// SeedReservedFolder inserts a reserved (internal) folder.
func SeedReservedFolder(t *testing.T, pool *pgxpool.Pool, envID uuid.UUID, parentID *uuid.UUID) domain.SecretFolder {
	t.Helper()
	return seedFolder(t, pool, envID, parentID, true)
}

func seedFolder(t *testing.T, pool *pgxpool.Pool, envID uuid.UUID, parentID *uuid.UUID, reserved bool) domain.SecretFolder {
	t.Helper()

	folder := domain.SecretFolder{
		ID:         uuid.New(),
		EnvID:      envID,
		ParentID:   parentID,
		Name:       "folder-" + uniqueSuffix(),
		IsReserved: reserved,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO secret_folders (id, env_id, parent_id, name, is_reserved, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		folder.ID, folder.EnvID, folder.ParentID, folder.Name, folder.IsReserved, folder.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFolder: %v", err)
	}

	return folder
}

// SeedCommit appends a platform commit for folder and returns it with its
// assigned sequence number.
func SeedCommit(t *testing.T, pool *pgxpool.Pool, folder domain.SecretFolder) domain.FolderCommit {
	t.Helper()

	commit := domain.FolderCommit{
		ID:            uuid.New(),
		FolderID:      folder.ID,
		EnvID:         folder.EnvID,
		ActorType:     domain.ActorTypePlatform,
		ActorMetadata: map[string]any{},
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO folder_commits (id, folder_id, env_id, actor_type, actor_metadata)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING commit_id, created_at`,
		commit.ID, commit.FolderID, commit.EnvID, string(commit.ActorType), commit.ActorMetadata,
	).Scan(&commit.CommitID, &commit.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedCommit: %v", err)
	}

	return commit
}

// SeedCommits appends n commits for folder, oldest first.
func SeedCommits(t *testing.T, pool *pgxpool.Pool, folder domain.SecretFolder, n int) []domain.FolderCommit {
	t.Helper()

	commits := make([]domain.FolderCommit, 0, n)
	for range n {
		commits = append(commits, SeedCommit(t, pool, folder))
	}
	return commits
}

// CountTreeCheckpoints returns the number of tree checkpoints anchored in envID.
func CountTreeCheckpoints(t *testing.T, pool *pgxpool.Pool, envID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*)
		 FROM folder_tree_checkpoints ftc
		 JOIN folder_commits fc ON fc.id = ftc.folder_commit_id
		 WHERE fc.env_id = $1`,
		envID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountTreeCheckpoints: %v", err)
	}
	return n
}
