package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecretFolder is a node of an environment's folder hierarchy.
// ParentID is nil for the root folder.
type SecretFolder struct {
	ID         uuid.UUID  `db:"id"`
	EnvID      uuid.UUID  `db:"env_id"`
	ParentID   *uuid.UUID `db:"parent_id"`
	Name       string     `db:"name"`
	IsReserved bool       `db:"is_reserved"`
	CreatedAt  time.Time  `db:"created_at"`
}

// IsRoot reports whether the folder has no parent.
func (f SecretFolder) IsRoot() bool { return f.ParentID == nil }
