package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
)

const checkTimeout = 2 * time.Second

// Response состояние сервиса и зависимостей
type Response struct {
	Status string            `json:"status"` // ok | degraded
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	deps   map[string]Pinger
	logger Logger
}

func NewHandler(deps map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		deps:   deps,
		logger: logger,
	}
}

// Handle GET /healthz
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := Response{Status: "ok", Checks: make(map[string]string, len(names))}
	for _, name := range names {
		if err := h.deps[name].PingContext(ctx); err != nil {
			h.logger.Warn("GET /healthz - %s unavailable: %v", name, err)
			resp.Status = "degraded"
			resp.Checks[name] = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}

// PingFunc адаптер функции к Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error {
	return f(ctx)
}
