package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pitkeeper/internal/domain"
	"github.com/heartmarshall/pitkeeper/internal/service/commit"
)

type commitService interface {
	CreateCommit(ctx context.Context, input commit.CreateCommitInput) (*domain.FolderCommit, error)
	GetCommitsByFolderID(ctx context.Context, folderID uuid.UUID) ([]domain.FolderCommit, error)
	CreateFolderCheckpoint(ctx context.Context, folderID uuid.UUID, force bool) (*domain.FolderCheckpoint, error)
	GetFolderCheckpoints(ctx context.Context, folderID uuid.UUID, limit int) ([]domain.FolderCheckpoint, error)
}

// CommitHandler serves folder commit endpoints.
type CommitHandler struct {
	svc commitService
	log *slog.Logger
}

// NewCommitHandler creates a CommitHandler.
func NewCommitHandler(svc commitService, logger *slog.Logger) *CommitHandler {
	return &CommitHandler{svc: svc, log: logger.With("handler", "commit")}
}

type createCommitRequest struct {
	Actor struct {
		Type     string         `json:"type"`
		Metadata map[string]any `json:"metadata"`
	} `json:"actor"`
	Message *string               `json:"message"`
	Changes []commitChangeRequest `json:"changes"`
}

type commitChangeRequest struct {
	Type            string     `json:"type"`
	IsUpdate        bool       `json:"isUpdate"`
	SecretVersionID *uuid.UUID `json:"secretVersionId"`
	FolderVersionID *uuid.UUID `json:"folderVersionId"`
}

type commitResponse struct {
	ID            string         `json:"id"`
	CommitID      int64          `json:"commitId"`
	FolderID      string         `json:"folderId"`
	EnvID         string         `json:"envId"`
	ActorType     string         `json:"actorType"`
	ActorMetadata map[string]any `json:"actorMetadata,omitempty"`
	Message       *string        `json:"message,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// List returns the folder's commits, newest first.
// GET /admin/folders/{folderID}/commits
func (h *CommitHandler) List(w http.ResponseWriter, r *http.Request) {
	folderID, ok := pathUUID(w, r, "folderID")
	if !ok {
		return
	}

	commits, err := h.svc.GetCommitsByFolderID(r.Context(), folderID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := make([]commitResponse, len(commits))
	for i := range commits {
		resp[i] = toCommitResponse(&commits[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create records a commit on the folder.
// POST /admin/folders/{folderID}/commits
func (h *CommitHandler) Create(w http.ResponseWriter, r *http.Request) {
	folderID, ok := pathUUID(w, r, "folderID")
	if !ok {
		return
	}

	var req createCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := commit.CreateCommitInput{
		FolderID:      folderID,
		ActorType:     domain.ActorType(req.Actor.Type),
		ActorMetadata: req.Actor.Metadata,
		Message:       req.Message,
		Changes:       make([]commit.ChangeInput, len(req.Changes)),
	}
	for i, c := range req.Changes {
		input.Changes[i] = commit.ChangeInput{
			Type:            domain.ChangeType(c.Type),
			IsUpdate:        c.IsUpdate,
			SecretVersionID: c.SecretVersionID,
			FolderVersionID: c.FolderVersionID,
		}
	}

	created, err := h.svc.CreateCommit(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommitResponse(created))
}

type folderCheckpointResponse struct {
	ID             string    `json:"id"`
	FolderCommitID string    `json:"folderCommitId"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateCheckpoint snapshots the folder at its latest commit. Without
// ?force=true nothing is created inside the checkpoint window and 200 is
// returned with "created": false.
// POST /admin/folders/{folderID}/checkpoints
func (h *CommitHandler) CreateCheckpoint(w http.ResponseWriter, r *http.Request) {
	folderID, ok := pathUUID(w, r, "folderID")
	if !ok {
		return
	}

	var force bool
	if raw := r.URL.Query().Get("force"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid force")
			return
		}
		force = v
	}

	cp, err := h.svc.CreateFolderCheckpoint(r.Context(), folderID, force)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	if cp == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"created": false})
		return
	}
	writeJSON(w, http.StatusCreated, toFolderCheckpointResponse(cp))
}

// ListCheckpoints returns the folder's checkpoints, newest first.
// GET /admin/folders/{folderID}/checkpoints?limit=N
func (h *CommitHandler) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	folderID, ok := pathUUID(w, r, "folderID")
	if !ok {
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = v
	}

	cps, err := h.svc.GetFolderCheckpoints(r.Context(), folderID, limit)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := make([]folderCheckpointResponse, len(cps))
	for i := range cps {
		resp[i] = toFolderCheckpointResponse(&cps[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

func toFolderCheckpointResponse(cp *domain.FolderCheckpoint) folderCheckpointResponse {
	return folderCheckpointResponse{
		ID:             cp.ID.String(),
		FolderCommitID: cp.FolderCommitID.String(),
		CreatedAt:      cp.CreatedAt,
	}
}

func toCommitResponse(c *domain.FolderCommit) commitResponse {
	return commitResponse{
		ID:            c.ID.String(),
		CommitID:      c.CommitID,
		FolderID:      c.FolderID.String(),
		EnvID:         c.EnvID.String(),
		ActorType:     c.ActorType.String(),
		ActorMetadata: c.ActorMetadata,
		Message:       c.Message,
		CreatedAt:     c.CreatedAt,
	}
}
