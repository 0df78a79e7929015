package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"civreg/internal/analytics/models"
	authmodels "civreg/internal/authentication/models"
	registrymodels "civreg/internal/registry/models"
	"civreg/pkg/platform/httputil"
)

// Service defines the read-only analytics operations.
type Service interface {
	ComputeInsights(ctx context.Context) (*models.Insights, error)
	ListAuthLog(ctx context.Context) ([]*authmodels.Attempt, error)
	ListConflicts(ctx context.Context) ([]*registrymodels.Conflict, error)
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/insights", h.handleInsights)
	r.Get("/auth-log", h.handleAuthLog)
	r.Get("/conflicts", h.handleConflicts)
}

type AuthLogResponse struct {
	Attempts []*authmodels.Attempt `json:"attempts"`
	Total    int                   `json:"total"`
}

type ConflictsResponse struct {
	Conflicts []*registrymodels.Conflict `json:"conflicts"`
	Total     int                        `json:"total"`
}

func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.ComputeInsights(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, insights)
}

func (h *Handler) handleAuthLog(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.service.ListAuthLog(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if attempts == nil {
		attempts = []*authmodels.Attempt{}
	}
	httputil.WriteJSON(w, http.StatusOK, AuthLogResponse{Attempts: attempts, Total: len(attempts)})
}

func (h *Handler) handleConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := h.service.ListConflicts(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if conflicts == nil {
		conflicts = []*registrymodels.Conflict{}
	}
	httputil.WriteJSON(w, http.StatusOK, ConflictsResponse{Conflicts: conflicts, Total: len(conflicts)})
}
