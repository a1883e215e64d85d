// Package handler exposes the visualization endpoints.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/john-holland/heycern-m87hey/internal/visualization/models"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
	"github.com/john-holland/heycern-m87hey/pkg/requestcontext"
)

// Service defines the visualization operations the handler exposes.
type Service interface {
	Generate(ctx context.Context, period domain.Period) (models.Artifact, error)
	GenerateEvolution(ctx context.Context) models.EvolutionResult
	Artifact(ctx context.Context, id domain.VisualizationID) (models.Artifact, error)
	Artifacts(ctx context.Context, limit int) ([]models.Artifact, error)
	Epochs() []models.EpochRecord
	Spectrum(ctx context.Context, period domain.Period) (models.SpectrumResponse, error)
}

// Handler handles the visualization endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a visualization Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the visualization and catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/visualizations", h.handleGenerate)
	r.Post("/visualizations/evolution", h.handleEvolution)
	r.Get("/visualizations", h.handleList)
	r.Get("/visualizations/{id}", h.handleGet)
	r.Get("/epochs", h.handleEpochs)
	r.Get("/spectra/{epoch}", h.handleSpectrum)
}

// handleGenerate runs the pipeline for one epoch and returns the stored
// artifact metadata. Clients fetch the frame bytes by ID.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var genReq models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&genReq); err != nil {
		h.logger.WarnContext(ctx, "invalid generate request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	period, err := domain.ParsePeriod(genReq.Period)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	artifact, err := h.service.Generate(ctx, period)
	if err != nil {
		h.writeServiceError(ctx, w, err, "generate visualization failed")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, artifact.WithoutImage())
}

// handleEvolution runs the pipeline for every epoch, oldest first. Partial
// failure is a 200; each entry carries its own outcome.
func (h *Handler) handleEvolution(w http.ResponseWriter, r *http.Request) {
	result := h.service.GenerateEvolution(r.Context())
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	artifacts, err := h.service.Artifacts(ctx, limit)
	if err != nil {
		h.writeServiceError(ctx, w, err, "list visualizations failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, models.ListResponse{
		Visualizations: artifacts,
		Count:          len(artifacts),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseVisualizationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	artifact, err := h.service.Artifact(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "visualization not found"))
			return
		}
		h.writeServiceError(ctx, w, err, "load visualization failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, artifact)
}

func (h *Handler) handleEpochs(w http.ResponseWriter, r *http.Request) {
	epochs := h.service.Epochs()
	httputil.WriteJSON(w, http.StatusOK, models.EpochListResponse{
		Epochs: epochs,
		Count:  len(epochs),
	})
}

func (h *Handler) handleSpectrum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period, err := domain.ParsePeriod(chi.URLParam(r, "epoch"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	spectrum, err := h.service.Spectrum(ctx, period)
	if err != nil {
		h.writeServiceError(ctx, w, err, "lensed spectrum failed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, spectrum)
}

// writeServiceError logs server-side failures and passes coded errors
// through. Service errors always carry a code; anything uncoded maps to 500.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodeUnavailable, dErrors.CodeTimeout:
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	default:
		h.logger.WarnContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}
