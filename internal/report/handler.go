package report

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// Handler exposes the admin report endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the report handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the report routes on the admin router.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/reports/weekly", h.handleRunWeekly)
	r.Get("/reports/{id}", h.handleGetReport)
}

type runWeeklyRequest struct {
	Period string `json:"period"`
}

func (h *Handler) handleRunWeekly(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an empty body reports on the default period.
	var req runWeeklyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "malformed report request", "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	period := domain.PeriodCretaceous
	if req.Period != "" {
		parsed, err := domain.ParsePeriod(req.Period)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		period = parsed
	}

	result := h.service.RunWeekly(r.Context(), period)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := domain.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	report, err := h.service.Report(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "report not found"))
			return
		}
		h.logger.ErrorContext(r.Context(), "report lookup failed", "report_id", reportID.String(), "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "load report"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}
