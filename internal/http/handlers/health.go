package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/ubu-lite/internal/http/respond"
)

// HealthHandler reports uptime and how much state the mock holds.
type HealthHandler struct {
	startedAt time.Time
	stats     func() map[string]int
}

// NewHealthHandler creates a health endpoint handler. stats may be nil.
func NewHealthHandler(startedAt time.Time, stats func() map[string]int) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, stats: stats}
}

func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handle)
}

type healthReport struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime"`
	Stats  map[string]int `json:"stats,omitempty"`
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	report := healthReport{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	if h.stats != nil {
		report.Stats = h.stats()
	}
	respond.JSON(w, http.StatusOK, report)
}
