package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"civreg/internal/authentication/models"
	"civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/platform/httputil"
	request "civreg/pkg/platform/middleware/request"
)

// Service defines the authentication operation the handler calls.
type Service interface {
	Authenticate(ctx context.Context, nationalID, token string) *models.Result
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts POST /authenticate on r. Callers wrap r with rate limiting.
func (h *Handler) Register(r chi.Router) {
	r.Post("/authenticate", h.handleAuthenticate)
}

type AuthenticateRequest struct {
	NationalID     string `json:"national_id"`
	BiometricToken string `json:"biometric_token"`
}

const dateLayout = "2006-01-02"

type AuthenticateResponse struct {
	Success bool          `json:"success"`
	EKYC    *EKYCResponse `json:"ekyc,omitempty"`
}

// EKYCResponse renders dates as calendar days, matching the residents listing.
type EKYCResponse struct {
	FullName       string        `json:"full_name"`
	DateOfBirth    string        `json:"date_of_birth"`
	Gender         domain.Gender `json:"gender"`
	CurrentAddress string        `json:"current_address"`
}

func toEKYCResponse(d *models.EKYCDetails) *EKYCResponse {
	if d == nil {
		return nil
	}
	return &EKYCResponse{
		FullName:       d.FullName,
		DateOfBirth:    d.DateOfBirth.Format(dateLayout),
		Gender:         d.Gender,
		CurrentAddress: d.CurrentAddress,
	}
}

// Validate trims both fields the way enrollment does and checks presence
// only. A malformed identifier is still a claim and is decided, and audited,
// as not found.
func (r *AuthenticateRequest) Validate() error {
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.BiometricToken = strings.TrimSpace(r.BiometricToken)
	if r.NationalID == "" {
		return dErrors.New(dErrors.CodeValidation, "national_id is required")
	}
	if r.BiometricToken == "" {
		return dErrors.New(dErrors.CodeValidation, "biometric_token is required")
	}
	return nil
}

func (h *Handler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AuthenticateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid authenticate request",
			"request_id", request.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "invalid authenticate request",
			"request_id", request.GetRequestID(ctx),
			"national_id", domain.MaskIdentifier(req.NationalID),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	res := h.service.Authenticate(ctx, req.NationalID, req.BiometricToken)
	httputil.WriteJSON(w, http.StatusOK, AuthenticateResponse{
		Success: res.Success,
		EKYC:    toEKYCResponse(res.Details),
	})
}
