package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"govassets/internal/permissions"
	id "govassets/pkg/domain"
	dErrors "govassets/pkg/domain-errors"
	"govassets/pkg/platform/httputil"
	"govassets/pkg/platform/middleware/request"
)

// Service evaluates wallet permissions.
type Service interface {
	Evaluate(ctx context.Context, realm, wallet id.PublicKey) (*permissions.Result, error)
}

// Handler serves wallet permissions for a loaded realm.
type Handler struct {
	permissions Service
	logger      *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{permissions: svc, logger: logger}
}

// Register registers the permission routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/realms/{realm}/permissions", h.handleGetPermissions)
}

func (h *Handler) handleGetPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	realm, err := id.ParsePublicKey(chi.URLParam(r, "realm"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rawWallet := r.URL.Query().Get("wallet")
	if rawWallet == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "wallet is required"))
		return
	}
	wallet, err := id.ParsePublicKey(rawWallet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.permissions.Evaluate(ctx, realm, wallet)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.WarnContext(ctx, "permissions for unloaded realm", "request_id", requestID, "realm", realm.String())
		} else {
			h.logger.ErrorContext(ctx, "failed to evaluate permissions", "request_id", requestID, "realm", realm.String(), "error", err.Error())
		}
		httputil.WriteError(w, err)
		return
	}
	if res.Instructions == nil {
		res.Instructions = []permissions.InstructionOption{}
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}
