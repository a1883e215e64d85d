package printqueue

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// Handler exposes the admin print queue endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the print queue handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the print queue routes on the admin router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/print-jobs", h.handleEnqueue)
	r.Get("/print-jobs", h.handleHistory)
	r.Get("/print-jobs/supplies", h.handleSupplies)
}

func (h *Handler) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "malformed print job request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	visualizationID, err := domain.ParseVisualizationID(req.VisualizationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	job, err := h.service.Enqueue(r.Context(), visualizationID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "visualization not found"))
		case dErrors.Is(err, dErrors.CodeUnavailable):
			httputil.WriteError(w, err)
		default:
			h.logger.ErrorContext(r.Context(), "print job failed", "error", err)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "queue print job"))
		}
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, job)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.History(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "listing print jobs failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "list print jobs"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Jobs: jobs, Count: len(jobs)})
}

func (h *Handler) handleSupplies(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.CheckSupplies(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "supplies check failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "check supplies"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, status)
}
