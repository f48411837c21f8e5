package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/vi-sinh-loi-be/internal/http/respond"
	"github.com/hongminglow/vi-sinh-loi-be/internal/notify"
)

// HealthHandler returns uptime and basic status.
type HealthHandler struct {
	startedAt time.Time
	storage   string
	stats     func() notify.Stats
}

// NewHealthHandler creates a health endpoint handler. stats may be nil.
func NewHealthHandler(startedAt time.Time, storageDriver string, stats func() notify.Stats) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, storage: storageDriver, stats: stats}
}

// Register wires the handler into a router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
		"storage": h.storage,
	}
	if h.stats != nil {
		body["notifications"] = h.stats()
	}
	respond.JSON(w, http.StatusOK, "ok", body)
}
