package conditions

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// Handler exposes the conditions endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the conditions handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the read-side conditions routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/conditions/{source}", h.handleLatest)
}

// RegisterAdmin mounts the ETL trigger.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/etl/conditions", h.handleRunETL)
}

func (h *Handler) handleRunETL(w http.ResponseWriter, r *http.Request) {
	result := h.service.RunETL(r.Context())
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	source, err := ParseSource(chi.URLParam(r, "source"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	snap, err := h.service.Latest(r.Context(), source)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "no snapshot for source"))
			return
		}
		h.logger.ErrorContext(r.Context(), "loading conditions snapshot failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "load snapshot"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}
