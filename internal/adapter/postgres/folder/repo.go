// Package folder reads the secret folder hierarchy of an environment.
// Folder mutations belong to the secret management services; Create exists
// for seeding and operator tooling.
package folder

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pitkeeper/internal/adapter/postgres"
	"github.com/heartmarshall/pitkeeper/internal/domain"
)

// Repo provides folder persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new folder repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const folderColumns = `id, env_id, parent_id, name, is_reserved, created_at`

const findByEnvIDSQL = `
SELECT ` + folderColumns + `
FROM secret_folders
WHERE env_id = $1
ORDER BY created_at, id`

const findByIDSQL = `
SELECT ` + folderColumns + `
FROM secret_folders
WHERE id = $1`

const createSQL = `
INSERT INTO secret_folders (env_id, parent_id, name, is_reserved)
VALUES ($1, $2, $3, $4)
RETURNING ` + folderColumns

// FindByEnvID returns every folder of the environment, reserved ones included.
// Returns an empty slice (not nil) when the environment has no folders.
func (r *Repo) FindByEnvID(ctx context.Context, envID uuid.UUID) ([]domain.SecretFolder, error) {
	var folders []domain.SecretFolder
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &folders, findByEnvIDSQL, envID); err != nil {
		return nil, postgres.MapError(err, "folder.FindByEnvID")
	}

	if folders == nil {
		folders = []domain.SecretFolder{}
	}

	return folders, nil
}

// FindByID returns a folder by primary key.
// Returns domain.ErrNotFound if the folder does not exist.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*domain.SecretFolder, error) {
	var f domain.SecretFolder
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &f, findByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "folder.FindByID")
	}
	return &f, nil
}

// Create inserts a folder and returns the persisted row.
func (r *Repo) Create(ctx context.Context, f domain.SecretFolder) (*domain.SecretFolder, error) {
	var created domain.SecretFolder
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &created, createSQL,
		f.EnvID, f.ParentID, f.Name, f.IsReserved,
	)
	if err != nil {
		return nil, postgres.MapError(err, "folder.Create")
	}
	return &created, nil
}
