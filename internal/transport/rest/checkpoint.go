package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
)

type checkpointService interface {
	ScheduleTreeCheckpoint(ctx context.Context, envID uuid.UUID) error
	GetLatestTreeCheckpoint(ctx context.Context, envID uuid.UUID) (*domain.FolderTreeCheckpoint, []domain.FolderTreeCheckpointResource, error)
}

// CheckpointHandler serves tree checkpoint endpoints.
type CheckpointHandler struct {
	svc checkpointService
	log *slog.Logger
}

// NewCheckpointHandler creates a CheckpointHandler.
func NewCheckpointHandler(svc checkpointService, logger *slog.Logger) *CheckpointHandler {
	return &CheckpointHandler{svc: svc, log: logger.With("handler", "checkpoint")}
}

type treeCheckpointResponse struct {
	ID             string                   `json:"id"`
	FolderCommitID string                   `json:"folderCommitId"`
	CreatedAt      time.Time                `json:"createdAt"`
	Folders        []treeCheckpointResource `json:"folders"`
}

type treeCheckpointResource struct {
	FolderID       string `json:"folderId"`
	FolderCommitID string `json:"folderCommitId"`
	CommitID       int64  `json:"commitId"`
}

// Schedule enqueues a compaction of the environment.
// POST /admin/environments/{envID}/tree-checkpoints
func (h *CheckpointHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	envID, ok := pathUUID(w, r, "envID")
	if !ok {
		return
	}

	if err := h.svc.ScheduleTreeCheckpoint(r.Context(), envID); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// Latest returns the environment's newest tree checkpoint with its folders.
// GET /admin/environments/{envID}/tree-checkpoints/latest
func (h *CheckpointHandler) Latest(w http.ResponseWriter, r *http.Request) {
	envID, ok := pathUUID(w, r, "envID")
	if !ok {
		return
	}

	cp, rows, err := h.svc.GetLatestTreeCheckpoint(r.Context(), envID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := treeCheckpointResponse{
		ID:             cp.ID.String(),
		FolderCommitID: cp.FolderCommitID.String(),
		CreatedAt:      cp.CreatedAt,
		Folders:        make([]treeCheckpointResource, len(rows)),
	}
	for i, row := range rows {
		resp.Folders[i] = treeCheckpointResource{
			FolderID:       row.FolderID.String(),
			FolderCommitID: row.FolderCommitID.String(),
			CommitID:       row.CommitID,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
