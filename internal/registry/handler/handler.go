package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"civreg/internal/registry/models"
	"civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/platform/httputil"
	request "civreg/pkg/platform/middleware/request"
)

// Service defines the registry operations the handler calls.
type Service interface {
	Enroll(ctx context.Context, cmd models.EnrollCommand) *models.Outcome
	UpdateDetails(ctx context.Context, cmd models.UpdateCommand) *models.Outcome
	Delete(ctx context.Context, id domain.NationalID) *models.Outcome
	ListAll(ctx context.Context) ([]*models.Resident, error)
}

// Handler exposes resident enrollment and maintenance.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the resident routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Post("/residents", h.handleEnroll)
	r.Get("/residents", h.handleList)
	r.Patch("/residents/{nationalID}", h.handleUpdate)
	r.Delete("/residents/{nationalID}", h.handleDelete)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	var req EnrollRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid enroll request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	req.Normalize()
	cmd, err := req.ToCommand()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.writeOutcome(w, h.service.Enroll(ctx, cmd))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseNationalID(chi.URLParam(r, "nationalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req UpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid update request",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	cmd, err := req.ToCommand(id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.writeOutcome(w, h.service.UpdateDetails(ctx, cmd))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseNationalID(chi.URLParam(r, "nationalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeOutcome(w, h.service.Delete(r.Context(), id))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	residents, err := h.service.ListAll(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := ListResidentsResponse{
		Residents: make([]ResidentResponse, 0, len(residents)),
		Total:     len(residents),
	}
	for _, res := range residents {
		resp.Residents = append(resp.Residents, toResidentResponse(res))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeOutcome(w http.ResponseWriter, out *models.Outcome) {
	httputil.WriteJSON(w, outcomeStatus(out), out)
}

func outcomeStatus(out *models.Outcome) int {
	switch out.Status {
	case models.OutcomeCreated:
		return http.StatusCreated
	case models.OutcomeConflict:
		return http.StatusConflict
	case models.OutcomeUpdated, models.OutcomeDeleted:
		return http.StatusOK
	default:
		return dErrors.ToHTTPStatus(out.Code)
	}
}
