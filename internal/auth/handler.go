package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	id "github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
	"github.com/john-holland/heycern-m87hey/pkg/platform/httputil"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
	"github.com/john-holland/heycern-m87hey/pkg/requestcontext"
)

// Handler exposes the token management endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs the token handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterAdmin mounts the token routes. All of them sit behind the admin
// token gate; issuance is how the very first bearer credential comes to be.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/tokens", h.handleIssue)
	r.Delete("/tokens/{id}", h.handleRevoke)
	r.Get("/tokens/checklist", h.handleChecklist)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "malformed token request",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	issued, err := h.service.Issue(r.Context(), req)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(r.Context(), "token issuance failed",
				"error", err,
				"request_id", requestcontext.RequestID(r.Context()),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, issued)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	tokenID, err := id.ParseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Revoke(r.Context(), tokenID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "api token not found"))
			return
		}
		h.logger.ErrorContext(r.Context(), "token revocation failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "revoke token"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Checklist(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "building token checklist failed",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "build checklist"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ChecklistResponse{
		Checklist: entries,
		Count:     len(entries),
	})
}
