package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/pitkeeper/internal/transport/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health     *HealthHandler
	Checkpoint *CheckpointHandler
	Commit     *CommitHandler
	// Metrics serves the Prometheus exposition format. Optional.
	Metrics http.Handler
}

// NewRouter mounts every route behind the request-id, logging and recovery
// middleware.
func NewRouter(h Handlers, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("POST /admin/environments/{envID}/tree-checkpoints", h.Checkpoint.Schedule)
	mux.HandleFunc("GET /admin/environments/{envID}/tree-checkpoints/latest", h.Checkpoint.Latest)

	mux.HandleFunc("GET /admin/folders/{folderID}/commits", h.Commit.List)
	mux.HandleFunc("POST /admin/folders/{folderID}/commits", h.Commit.Create)
	mux.HandleFunc("GET /admin/folders/{folderID}/checkpoints", h.Commit.ListCheckpoints)
	mux.HandleFunc("POST /admin/folders/{folderID}/checkpoints", h.Commit.CreateCheckpoint)

	return middleware.Wrap(mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
	)
}
