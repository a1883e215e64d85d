package quality

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
)

// Handler exposes the admin review endpoint.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the quality handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the quality routes on the admin router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/quality/review", h.handleReview)
}

func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
	// The body is optional; with nothing observed every area scores zero
	// and the review raises suggestions up to the per-run cap.
	var obs Observed
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "malformed review request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	review := h.service.Review(r.Context(), obs)
	httputil.WriteJSON(w, http.StatusOK, review)
}
