package domain

import (
	"time"

	"github.com/google/uuid"
)

// FolderCheckpoint is a snapshot of a single folder's resources as of a commit.
type FolderCheckpoint struct {
	ID             uuid.UUID `db:"id"`
	FolderCommitID uuid.UUID `db:"folder_commit_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// FolderCheckpointResource is one resource captured by a FolderCheckpoint.
type FolderCheckpointResource struct {
	ID                 uuid.UUID  `db:"id"`
	FolderCheckpointID uuid.UUID  `db:"folder_checkpoint_id"`
	SecretVersionID    *uuid.UUID `db:"secret_version_id"`
	FolderVersionID    *uuid.UUID `db:"folder_version_id"`
	CreatedAt          time.Time  `db:"created_at"`
}

// FolderTreeCheckpoint marks a whole-environment snapshot anchored at a commit.
// The latest tree checkpoint of an environment is the most recently created one.
type FolderTreeCheckpoint struct {
	ID             uuid.UUID `db:"id"`
	FolderCommitID uuid.UUID `db:"folder_commit_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// FolderTreeCheckpointWithCommit is a tree checkpoint annotated with the
// sequence number of its anchor commit.
type FolderTreeCheckpointWithCommit struct {
	FolderTreeCheckpoint
	CommitID int64 `db:"commit_id"`
}

// FolderTreeCheckpointResource records, for one folder, the latest commit of
// that folder at the time the tree checkpoint was built.
type FolderTreeCheckpointResource struct {
	ID                     uuid.UUID `db:"id"`
	FolderTreeCheckpointID uuid.UUID `db:"folder_tree_checkpoint_id"`
	FolderID               uuid.UUID `db:"folder_id"`
	FolderCommitID         uuid.UUID `db:"folder_commit_id"`
	CreatedAt              time.Time `db:"created_at"`

	// CommitID is the sequence of FolderCommitID. Only populated on reads.
	CommitID int64 `db:"commit_id"`
}
