package run_sweep

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/TableReservationService/internal/api/handlers"
	"github.com/m04kA/TableReservationService/internal/scheduler"
)

const msgUnknownJob = "неизвестная задача"

type Handler struct {
	runner SweepRunner
	logger Logger
}

func NewHandler(runner SweepRunner, logger Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Handle POST /api/v1/cron/{job}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	job := mux.Vars(r)["job"]

	processed, err := h.runner.Run(r.Context(), job)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrUnknownJob):
			h.logger.Warn("POST /cron/{job} - Unknown job: %s", job)
			handlers.RespondNotFound(w, msgUnknownJob)

		default:
			h.logger.Error("POST /cron/{job} - Job failed: job=%s, error=%v", job, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SweepResponse{Processed: processed})
}
