package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType is the kind of change recorded by a FolderCommitChange.
type ChangeType string

const (
	ChangeTypeAdd    ChangeType = "add"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

func (c ChangeType) String() string { return string(c) }

func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeTypeAdd, ChangeTypeUpdate, ChangeTypeDelete:
		return true
	}
	return false
}

// ActorType identifies who produced a commit.
type ActorType string

const (
	ActorTypeUser     ActorType = "user"
	ActorTypeIdentity ActorType = "identity"
	ActorTypePlatform ActorType = "platform"
)

func (a ActorType) String() string { return string(a) }

func (a ActorType) IsValid() bool {
	switch a {
	case ActorTypeUser, ActorTypeIdentity, ActorTypePlatform:
		return true
	}
	return false
}

// FolderCommit is an immutable entry of an environment's commit log.
// CommitID is the sequence number: strictly increasing, never reused.
type FolderCommit struct {
	ID            uuid.UUID      `db:"id"`
	CommitID      int64          `db:"commit_id"`
	FolderID      uuid.UUID      `db:"folder_id"`
	EnvID         uuid.UUID      `db:"env_id"`
	ActorType     ActorType      `db:"actor_type"`
	ActorMetadata map[string]any `db:"actor_metadata"`
	Message       *string        `db:"message"`
	CreatedAt     time.Time      `db:"created_at"`
}

// FolderCommitChange describes one resource touched by a commit.
// Exactly one of SecretVersionID and FolderVersionID is set.
type FolderCommitChange struct {
	ID              uuid.UUID  `db:"id"`
	FolderCommitID  uuid.UUID  `db:"folder_commit_id"`
	ChangeType      ChangeType `db:"change_type"`
	IsUpdate        bool       `db:"is_update"`
	SecretVersionID *uuid.UUID `db:"secret_version_id"`
	FolderVersionID *uuid.UUID `db:"folder_version_id"`
	CreatedAt       time.Time  `db:"created_at"`
}

// HasSingleTarget reports whether exactly one version id is set.
func (c FolderCommitChange) HasSingleTarget() bool {
	return (c.SecretVersionID == nil) != (c.FolderVersionID == nil)
}
